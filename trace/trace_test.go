package trace

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCategory(t *testing.T) {
	ev := Event{Categories: "devtools.timeline, disabled-by-default-blink.feature_usage"}

	assert.True(t, ev.HasCategory("blink.feature_usage"))
	assert.True(t, ev.HasCategory("disabled-by-default-blink.feature_usage"))
	assert.True(t, ev.HasCategory("devtools.timeline"))
	assert.False(t, ev.HasCategory("blink"))
	assert.False(t, (&Event{}).HasCategory("blink.feature_usage"))
}

func TestIntArg(t *testing.T) {
	ev := Event{Args: map[string]any{
		"float":    float64(42),
		"fraction": 4.5,
		"number":   json.Number("7"),
		"string":   "13",
		"word":     "fetch",
		"huge":     1e20,
		"negative": -1e19,
		"edge":     float64(math.MaxInt64),
		"infinite": math.Inf(1),
		"nan":      math.NaN(),
		"min":      float64(math.MinInt64),
	}}

	for _, tc := range []struct {
		name string
		want int64
		ok   bool
	}{
		{"float", 42, true},
		{"fraction", 0, false},
		{"number", 7, true},
		{"string", 13, true},
		{"word", 0, false},
		{"huge", 0, false},
		{"negative", 0, false},
		{"edge", 0, false},
		{"infinite", 0, false},
		{"nan", 0, false},
		{"min", math.MinInt64, true},
		{"missing", 0, false},
	} {
		got, ok := ev.IntArg(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestFind(t *testing.T) {
	log := Log{Events: []Event{
		{Name: "A", Timestamp: 1},
		{Name: "B", Timestamp: 2},
		{Name: "B", Timestamp: 3},
	}}

	ev, ok := log.Find("B")
	require.True(t, ok)
	assert.Equal(t, Time(2), ev.Timestamp)

	_, ok = log.Find("C")
	assert.False(t, ok)
}

func TestTimeRange(t *testing.T) {
	r := InvalidRange
	assert.Equal(t, Time(0), r.Duration())

	r = r.Expand(10).Expand(4).Expand(7)
	assert.Equal(t, TimeRange{Start: 4, Finish: 10}, r)
	assert.Equal(t, 6*time.Microsecond, r.Duration().Std())
}
