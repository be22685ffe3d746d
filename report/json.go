package report

import (
	"encoding/json"
	"io"
)

// JSON renders the report for machine consumption.
type JSON struct{}

type jsonReport struct {
	Label   string `json:"label,omitempty"`
	Engine  string `json:"engine"`
	Version string `json:"version"`

	Counts struct {
		HTMLJS int `json:"html_js"`
		CSS    int `json:"css"`
	} `json:"counts"`

	Flagged []jsonEntry `json:"flagged"`
	All     []jsonEntry `json:"all"`
}

type jsonEntry struct {
	Kind       string `json:"kind"`
	ID         int64  `json:"id"`
	Name       string `json:"name,omitempty"`
	ExternalID string `json:"external_id,omitempty"`
	Verdict    string `json:"verdict,omitempty"`
	DocsURL    string `json:"docs_url,omitempty"`
	Timestamp  int64  `json:"ts"`
}

func (JSON) Format(w io.Writer, r *Report) error {
	out := jsonReport{
		Label:   r.Target.Label,
		Engine:  r.Target.Engine,
		Version: r.Target.Version,
		Flagged: jsonEntries(r.Flagged),
		All:     jsonEntries(r.All),
	}
	out.Counts.HTMLJS = r.HTMLJSCount
	out.Counts.CSS = r.CSSCount

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return Error.Wrap(enc.Encode(out))
}

func jsonEntries(entries []Entry) []jsonEntry {
	list := make([]jsonEntry, 0, len(entries))
	for _, e := range entries {
		j := jsonEntry{
			Kind:       e.Kind.String(),
			ID:         e.ID,
			Name:       e.Name,
			ExternalID: e.ExternalID,
			DocsURL:    e.DocsURL,
			Timestamp:  int64(e.Timestamp),
		}
		if e.ExternalID != "" {
			j.Verdict = e.Verdict.String()
		}
		list = append(list, j)
	}
	return list
}
