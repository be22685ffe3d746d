package trace

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Time in microseconds, the granularity of the tracing clock.
type Time int64

func (t Time) Std() time.Duration { return time.Duration(t) * time.Microsecond }

// Log is a captured sequence of events in arrival order.
type Log struct {
	Events []Event
	TimeRange
}

type ProcessID int64
type ThreadID int64

// Thread identifies the thread that emitted an event.
type Thread struct {
	ProcessID ProcessID
	ThreadID  ThreadID
}

type Event struct {
	Name string
	// Categories is the comma separated category list of the event.
	Categories string
	Thread
	Timestamp Time
	Args      map[string]any
}

// DisabledByDefault prefixes categories that are only recorded when
// requested explicitly.
const DisabledByDefault = "disabled-by-default-"

// HasCategory reports whether cat is one of the event's categories.
// The disabled-by-default prefix is not significant for the comparison.
func (ev *Event) HasCategory(cat string) bool {
	cat = strings.TrimPrefix(strings.TrimSpace(cat), DisabledByDefault)
	for _, c := range strings.Split(ev.Categories, ",") {
		if strings.TrimPrefix(strings.TrimSpace(c), DisabledByDefault) == cat {
			return true
		}
	}
	return false
}

// IntArg returns the named argument as an integer.
func (ev *Event) IntArg(name string) (int64, bool) {
	v, ok := ev.Args[name]
	if !ok {
		return 0, false
	}
	switch v := v.(type) {
	case float64:
		// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case int:
		return int64(v), true
	case int64:
		return v, true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// Find returns the first event with the specified name.
func (log *Log) Find(name string) (*Event, bool) {
	for i := range log.Events {
		if log.Events[i].Name == name {
			return &log.Events[i], true
		}
	}
	return nil, false
}

// TimeRange is the window covered by a log; InvalidRange is the empty window
// that any Expand replaces.
type TimeRange struct {
	Start  Time
	Finish Time
}

var InvalidRange = TimeRange{
	Start:  math.MaxInt64,
	Finish: math.MinInt64,
}

func (a TimeRange) Duration() Time {
	if a.Finish < a.Start {
		return 0
	}
	return a.Finish - a.Start
}

func (a TimeRange) Expand(t Time) TimeRange {
	return TimeRange{
		Start:  min(a.Start, t),
		Finish: max(a.Finish, t),
	}
}
