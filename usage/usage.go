// Package usage extracts web platform feature usage from a page trace.
package usage

import (
	"fmt"

	"loov.dev/featurecheck/trace"
)

// Category is recorded by Blink for first use of a platform feature.
const Category = trace.DisabledByDefault + "blink.feature_usage"

const (
	// MarkerEvent is emitted on the main thread of the page under test
	// when capture starts.
	MarkerEvent = "TracingStartedInPage"

	FeatureFirstUsed = "FeatureFirstUsed"
	CSSFirstUsed     = "CSSFirstUsed"
)

// Kind separates the two feature id spaces.
type Kind byte

const (
	HTMLJS = Kind(iota)
	CSS
)

func (kind Kind) String() string {
	switch kind {
	case HTMLJS:
		return "html_js"
	case CSS:
		return "css"
	default:
		return fmt.Sprintf("Kind(%d)", byte(kind))
	}
}

// KindOf returns the kind of a feature usage event name.
func KindOf(eventName string) (Kind, bool) {
	switch eventName {
	case FeatureFirstUsed:
		return HTMLJS, true
	case CSSFirstUsed:
		return CSS, true
	}
	return 0, false
}

// Identity identifies a feature. IDs of different kinds are unrelated.
type Identity struct {
	Kind Kind
	ID   int64
}

func (id Identity) String() string { return fmt.Sprintf("%v#%d", id.Kind, id.ID) }

// Feature is a deduplicated and resolved feature usage.
type Feature struct {
	Identity
	// Name is empty when Resolved is false.
	Name     string
	Resolved bool
	// Timestamp of the first usage.
	Timestamp trace.Time
}

// Label returns the name or a placeholder for unresolved features.
func (f Feature) Label() string {
	if f.Resolved {
		return f.Name
	}
	return fmt.Sprintf("(unknown %v feature %d)", f.Kind, f.ID)
}

// Usage is the feature inventory of a single capture.
type Usage struct {
	HTMLJS []Feature
	CSS    []Feature

	// Skipped counts feature usage events without a usable feature id.
	Skipped int
}

// Features returns the features of the given kind.
func (u *Usage) Features(kind Kind) []Feature {
	if kind == CSS {
		return u.CSS
	}
	return u.HTMLJS
}

// Unresolved counts features of the given kind without a name.
func (u *Usage) Unresolved(kind Kind) int {
	n := 0
	for _, f := range u.Features(kind) {
		if !f.Resolved {
			n++
		}
	}
	return n
}
