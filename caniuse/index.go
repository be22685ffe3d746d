// Package caniuse answers support questions from a caniuse-db dataset.
package caniuse

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/zeebo/errs/v2"
)

// Error is the class of dataset errors.
const Error = errs.Tag("caniuse")

// Feature is a single dataset entry.
type Feature struct {
	Title string `json:"title"`
	// Stats maps engine -> version -> support code, e.g. "y", "n d #2", "a x".
	Stats map[string]map[string]string `json:"stats"`
}

// Verdict is the outcome of a support lookup.
type Verdict byte

const (
	// Unknown means the dataset has no entry for the feature.
	Unknown = Verdict(iota)
	Unsupported
	Supported
)

func (v Verdict) String() string {
	switch v {
	case Supported:
		return "supported"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Index is a read-only view of the dataset.
type Index struct {
	features map[string]Feature
}

func New(features map[string]Feature) *Index {
	if features == nil {
		features = map[string]Feature{}
	}
	return &Index{features: features}
}

// Load reads either the complete caniuse-db data.json, where the features
// live under "data", or a bare feature map.
func Load(r io.Reader) (*Index, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, Error.Wrap(err)
	}

	// a bare map may contain a feature called "data", which has stats
	if raw, ok := root["data"]; ok && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(raw, &inner); err == nil {
			if _, isFeature := inner["stats"]; !isFeature {
				data = raw
			}
		}
	}

	var features map[string]Feature
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, Error.Wrap(err)
	}
	return New(features), nil
}

func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Len returns the number of features in the dataset.
func (index *Index) Len() int { return len(index.features) }

// Title returns the human readable title of the feature.
func (index *Index) Title(id string) (string, bool) {
	f, ok := index.features[id]
	return f.Title, ok
}

// Lookup checks whether the feature is supported by the engine version.
//
// Only a support code of exactly "y" counts. Partial support, prefixes,
// notes, polyfills and a missing engine or version entry are unsupported:
// crawlers do not load polyfills.
func (index *Index) Lookup(id, engine, version string) Verdict {
	f, ok := index.features[id]
	if !ok {
		return Unknown
	}
	if f.Stats[engine][version] != "y" {
		return Unsupported
	}
	return Supported
}
