package usage

import (
	"github.com/zeebo/errs/v2"

	"loov.dev/featurecheck/trace"
)

// ErrMalformedTrace is the class of traces that did not start capturing
// the page correctly.
const ErrMalformedTrace = errs.Tag("malformed trace")

// Filter returns the feature usage events emitted by the main thread of the
// page under test, in trace order. Events from other processes, tabs and
// browser threads are dropped.
func Filter(log *trace.Log) ([]trace.Event, error) {
	marker, ok := log.Find(MarkerEvent)
	if !ok {
		return nil, ErrMalformedTrace.Errorf("no %s event among %d events", MarkerEvent, len(log.Events))
	}
	page := marker.Thread

	var events []trace.Event
	for i := range log.Events {
		ev := &log.Events[i]
		if ev.Thread != page || !ev.HasCategory(Category) {
			continue
		}
		events = append(events, *ev)
	}
	return events, nil
}
