package tef

import (
	"bytes"
	"encoding/json"

	"github.com/zeebo/errs/v2"

	"loov.dev/featurecheck/trace"
)

// Error is the class of trace decoding errors.
const Error = errs.Tag("tef")

// Parse decodes a trace in either the JSON Object Format ({"traceEvents": [...]})
// or the JSON Array Format ([...]).
func Parse(data []byte) (File, error) {
	var file File

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return file, Error.Errorf("empty trace")
	}

	if data[0] == '[' {
		if err := json.Unmarshal(data, &file.TraceEvents); err != nil {
			return file, Error.Wrap(err)
		}
		return file, nil
	}

	if err := json.Unmarshal(data, &file); err != nil {
		return file, Error.Wrap(err)
	}
	return file, nil
}

// Convert converts files into a single log, preserving arrival order.
func Convert(files ...File) trace.Log {
	var log trace.Log
	log.TimeRange = trace.InvalidRange

	for i := range files {
		file := &files[i]
		for k := range file.TraceEvents {
			ev := &file.TraceEvents[k]
			node := trace.Event{
				Name:       ev.Name,
				Categories: ev.Category,
				Thread: trace.Thread{
					ProcessID: trace.ProcessID(ev.ProcessID),
					ThreadID:  trace.ThreadID(ev.ThreadID),
				},
				Timestamp: trace.Time(ev.Timestamp),
				Args:      ev.Args,
			}
			log.Events = append(log.Events, node)

			switch ev.Phase {
			case Metadata:
			case Complete:
				log.TimeRange = log.TimeRange.Expand(node.Timestamp)
				log.TimeRange = log.TimeRange.Expand(node.Timestamp + trace.Time(ev.Duration))
			default:
				log.TimeRange = log.TimeRange.Expand(node.Timestamp)
			}
		}
	}

	return log
}
