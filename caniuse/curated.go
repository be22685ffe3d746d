package caniuse

import (
	"bytes"
	_ "embed"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed curated.yaml
var curatedYAML []byte

// ExternalIDs maps internal feature names (Blink use counter and CSS
// property names) to caniuse feature ids. It is hand maintained and
// necessarily incomplete.
type ExternalIDs map[string]string

// DefaultExternalIDs returns a copy of the built-in table.
func DefaultExternalIDs() ExternalIDs {
	ids, err := ReadExternalIDs(nil, bytes.NewReader(curatedYAML))
	if err != nil {
		panic(err)
	}
	return ids
}

// ReadExternalIDs reads a YAML mapping of name to caniuse id on top of base.
// A null or empty id removes the name from the result. base is not modified.
func ReadExternalIDs(base ExternalIDs, r io.Reader) (ExternalIDs, error) {
	var overrides map[string]*string
	if err := yaml.NewDecoder(r).Decode(&overrides); err != nil && err != io.EOF {
		return nil, Error.Wrap(err)
	}

	ids := make(ExternalIDs, len(base)+len(overrides))
	for name, id := range base {
		ids[name] = id
	}
	for name, id := range overrides {
		if id == nil || *id == "" {
			delete(ids, name)
			continue
		}
		ids[name] = *id
	}
	return ids, nil
}

// LoadExternalIDs reads overrides for base from the file at path.
func LoadExternalIDs(base ExternalIDs, path string) (ExternalIDs, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	defer func() { _ = f.Close() }()

	return ReadExternalIDs(base, f)
}

// Lookup returns the caniuse id for the feature name.
func (ids ExternalIDs) Lookup(name string) (string, bool) {
	id, ok := ids[name]
	return id, ok && id != ""
}
