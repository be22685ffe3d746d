// Package report joins observed features with compatibility data.
package report

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"loov.dev/featurecheck/caniuse"
	"loov.dev/featurecheck/usage"
)

// DefaultDocsURL is prefixed to caniuse ids to link to their documentation.
const DefaultDocsURL = "https://caniuse.com/#feat="

// Target describes the engine the page is checked against.
type Target struct {
	// Label names the consumer running the engine, e.g. a crawler.
	Label   string
	Engine  string
	Version string
	// InfoURL points to documentation about the consumer's rendering.
	InfoURL string
}

// EngineName returns the engine for display, "chrome" becomes "Chrome".
func (target Target) EngineName() string {
	r, size := utf8.DecodeRuneInString(target.Engine)
	if r == utf8.RuneError {
		return target.Engine
	}
	return string(unicode.ToUpper(r)) + target.Engine[size:]
}

// Consumer names who runs the engine: the label, or the engine and version
// when there is no label.
func (target Target) Consumer() string {
	if target.Label != "" {
		return target.Label
	}
	return strings.TrimSpace(target.EngineName() + " " + target.Version)
}

// Entry is a single observed feature.
type Entry struct {
	usage.Feature

	// ExternalID is the caniuse id, empty when the feature has no curated id.
	ExternalID string
	Verdict    caniuse.Verdict
	// DocsURL is set when ExternalID is known.
	DocsURL string
}

func (e Entry) IsCSS() bool { return e.Kind == usage.CSS }

// Flagged reports whether the feature is known to be unsupported.
func (e Entry) Flagged() bool {
	return e.ExternalID != "" && e.Verdict == caniuse.Unsupported
}

// Report is the outcome of a single analysis.
type Report struct {
	Target Target

	HTMLJSCount int
	CSSCount    int

	// Flagged lists unsupported features, in the same order as All.
	Flagged []Entry
	// All lists every observed feature ordered by name.
	All []Entry
}

// Reporter checks feature usage against a target engine.
type Reporter struct {
	Index       *caniuse.Index
	ExternalIDs caniuse.ExternalIDs
	Target      Target
	// DocsURL defaults to DefaultDocsURL.
	DocsURL string
}

// Build creates the report for the usage.
func (reporter *Reporter) Build(u *usage.Usage) *Report {
	r := &Report{
		Target:      reporter.Target,
		HTMLJSCount: len(u.HTMLJS),
		CSSCount:    len(u.CSS),
	}

	docs := reporter.DocsURL
	if docs == "" {
		docs = DefaultDocsURL
	}

	r.All = make([]Entry, 0, len(u.HTMLJS)+len(u.CSS))
	for _, list := range [][]usage.Feature{u.HTMLJS, u.CSS} {
		for _, f := range list {
			entry := Entry{Feature: f}
			if f.Resolved {
				if id, ok := reporter.ExternalIDs.Lookup(f.Name); ok {
					entry.ExternalID = id
					entry.DocsURL = docs + id
					entry.Verdict = reporter.lookup(id)
				}
			}
			r.All = append(r.All, entry)
		}
	}

	slices.SortStableFunc(r.All, compareEntries)

	for _, entry := range r.All {
		if entry.Flagged() {
			r.Flagged = append(r.Flagged, entry)
		}
	}

	return r
}

func (reporter *Reporter) lookup(id string) caniuse.Verdict {
	if reporter.Index == nil {
		return caniuse.Unknown
	}
	return reporter.Index.Lookup(id, reporter.Target.Engine, reporter.Target.Version)
}

// compareEntries orders by name; unresolved features go last.
func compareEntries(a, b Entry) int {
	switch {
	case a.Resolved && b.Resolved:
		return strings.Compare(a.Name, b.Name)
	case a.Resolved:
		return -1
	case b.Resolved:
		return 1
	}
	return 0
}
