// Package tef decodes Chrome's Trace Event Format, as written by
// chrome://tracing, DevTools and headless captures.
package tef

import (
	"bytes"
	"encoding/json"
	"math"
)

/*
{
  "traceEvents": [
    {"name": "TracingStartedInPage", "cat": "disabled-by-default-devtools.timeline", "ph": "I", "pid": 22630, "tid": 775, "ts": 829},
    {"name": "FeatureFirstUsed", "cat": "disabled-by-default-blink.feature_usage", "ph": "I", "pid": 22630, "tid": 775, "ts": 833, "args": {"feature": 1048}}
  ],
  "metadata": {...}
}
*/

type File struct {
	TraceEvents []Event `json:"traceEvents"`
	// Metadata holds browser and OS details of the capture.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Product returns the browser that recorded the trace, when it is known.
func (file *File) Product() string {
	product, _ := file.Metadata["product"].(string)
	return product
}

type Event struct {
	Name string `json:"name"`
	// Category is a comma separated list.
	Category string `json:"cat"`
	Phase    Phase  `json:"ph"`

	Timestamp Micros `json:"ts"`
	// Duration is only set on Complete events.
	Duration Micros `json:"dur,omitempty"`

	ProcessID int64 `json:"pid"`
	ThreadID  int64 `json:"tid"`

	Args map[string]any `json:"args,omitempty"`
}

// Micros is a microsecond timestamp. Chrome emits integers, other producers
// emit fractional values; fractions are truncated.
type Micros int64

func (m *Micros) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if v, err := n.Int64(); err == nil {
		*m = Micros(v)
		return nil
	}
	v, err := n.Float64()
	if err != nil {
		return err
	}
	*m = Micros(math.Trunc(v))
	return nil
}

// Phase is the single character event type.
type Phase string

// Phases that affect conversion. Others pass through unchanged.
const (
	Complete Phase = "X"
	Instant  Phase = "i"
	// InstantLegacy is still written by Chrome for page level markers.
	InstantLegacy Phase = "I"
	Metadata      Phase = "M"
)
