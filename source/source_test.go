package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loov.dev/featurecheck/usage"
)

func TestParseNames(t *testing.T) {
	for _, tc := range []struct {
		name string
		data string
	}{
		{"pairs", `[[42, "Fetch"], [7, "CSSGridLayout"]]`},
		{"string ids", `[["42", "Fetch"], ["7", "CSSGridLayout"]]`},
		{"rows", `[{"bucket_id": 42, "property_name": "Fetch", "day_percentage": 0.5}, {"bucket_id": 7, "property_name": "CSSGridLayout"}]`},
		{"xssi", ")]}'\n" + `[[42, "Fetch"], [7, "CSSGridLayout"]]`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			names, err := ParseNames([]byte(tc.data))
			require.NoError(t, err)
			assert.Equal(t, usage.NameMapping{42: "Fetch", 7: "CSSGridLayout"}, names)
		})
	}
}

func TestParseNamesErrors(t *testing.T) {
	for _, data := range []string{
		``,
		`{}`,
		`[[1]]`,
		`[[1, 2]]`,
		`[["one", "Fetch"]]`,
		`[{"property_name": "Fetch"}]`,
		`[true]`,
	} {
		_, err := ParseNames([]byte(data))
		require.Error(t, err, data)
		assert.ErrorIs(t, err, Error, data)
	}
}

func TestFormatNames(t *testing.T) {
	names := usage.NameMapping{7: "CSSGridLayout", 42: `Quoted"Name`}
	data := FormatNames(names)
	assert.Equal(t, "[[7,\"CSSGridLayout\"],\n [42,\"Quoted\\\"Name\"]]\n", string(data))

	back, err := ParseNames(data)
	require.NoError(t, err)
	assert.Equal(t, names, back)
}

func TestHTTPNames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data/featurepopularity":
			_, _ = w.Write([]byte(")]}'\n[{\"bucket_id\": 1, \"property_name\": \"PageDestruction\"}]"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ctx := context.Background()

	names, err := NamesAt(server.URL+"/data/featurepopularity", server.Client()).Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, usage.NameMapping{1: "PageDestruction"}, names)

	_, err = NamesAt(server.URL+"/missing", server.Client()).Names(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, Error)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPNamesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&HTTPNames{URL: "http://127.0.0.1:1/names"}).Names(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, Error)
}

func TestFileNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "css.json")
	require.NoError(t, os.WriteFile(path, []byte(`[[3, "contain"]]`), 0o644))

	src := NamesAt(path, nil)
	require.IsType(t, FileNames(""), src)

	names, err := src.Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, usage.NameMapping{3: "contain"}, names)

	_, err = FileNames(filepath.Join(t.TempDir(), "missing.json")).Names(context.Background())
	assert.ErrorIs(t, err, Error)
}

func TestFileTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"traceEvents": []}`), 0o644))

	data, err := FileTrace(path).Trace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"traceEvents": []}`, string(data))

	_, err = FileTrace(path + ".missing").Trace(context.Background())
	assert.ErrorIs(t, err, Error)
}

func TestHTTPTrace(t *testing.T) {
	var page string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trace" {
			http.NotFound(w, r)
			return
		}
		page = r.URL.Query().Get("url")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"traceEvents": []}`))
	}))
	defer server.Close()

	src := &HTTPTrace{Endpoint: server.URL + "/trace", Page: "https://example.com/?q=a&b", Client: server.Client()}
	data, err := src.Trace(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"traceEvents": []}`, string(data))
	assert.Equal(t, "https://example.com/?q=a&b", page)

	_, err = (&HTTPTrace{Endpoint: server.URL + "/trace"}).Trace(context.Background())
	assert.ErrorIs(t, err, Error)

	_, err = (&HTTPTrace{Endpoint: server.URL + "/other", Page: "https://example.com", Client: server.Client()}).Trace(context.Background())
	assert.ErrorIs(t, err, Error)
}
