// Package source acquires the inputs of an analysis run: the two feature
// name tables and the page trace.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/zeebo/errs/v2"

	"loov.dev/featurecheck/usage"
)

// Error is the class of acquisition failures.
const Error = errs.Tag("source")

// NameSource provides a feature id to name mapping.
type NameSource interface {
	Names(ctx context.Context) (usage.NameMapping, error)
}

// TraceSource provides the raw bytes of a page trace.
type TraceSource interface {
	Trace(ctx context.Context) ([]byte, error)
}

// NamesAt returns a source for the name table at location, which is either
// an http(s) URL or a file path.
func NamesAt(location string, client *http.Client) NameSource {
	if isURL(location) {
		return &HTTPNames{URL: location, Client: client}
	}
	return FileNames(location)
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// FileNames reads a name table from disk.
type FileNames string

func (path FileNames) Names(ctx context.Context) (usage.NameMapping, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return ParseNames(data)
}

// HTTPNames downloads a name table.
type HTTPNames struct {
	URL    string
	Client *http.Client
}

func (src *HTTPNames) Names(ctx context.Context) (usage.NameMapping, error) {
	data, err := get(ctx, src.Client, src.URL)
	if err != nil {
		return nil, err
	}
	return ParseNames(data)
}

// FileTrace reads a previously captured trace.
type FileTrace string

func (path FileTrace) Trace(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(string(path))
	return data, Error.Wrap(err)
}

// HTTPTrace asks a capture service to load Page and return its trace.
type HTTPTrace struct {
	// Endpoint is queried as Endpoint?url=Page.
	Endpoint string
	Page     string
	Client   *http.Client
}

func (src *HTTPTrace) Trace(ctx context.Context) ([]byte, error) {
	if src.Page == "" {
		return nil, Error.Errorf("no page to capture")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Endpoint, nil)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	q := req.URL.Query()
	q.Set("url", src.Page)
	req.URL.RawQuery = q.Encode()

	return do(src.Client, req)
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return do(client, req)
}

func do(client *http.Client, req *http.Request) (_ []byte, err error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, Error.Errorf("%s %s: %s", req.Method, req.URL.Redacted(), resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, Error.Wrap(fmt.Errorf("failed to read %s: %w", req.URL.Redacted(), err))
	}
	return data, nil
}
