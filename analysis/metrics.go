package analysis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"loov.dev/featurecheck/caniuse"
	"loov.dev/featurecheck/report"
	"loov.dev/featurecheck/usage"
)

const namespace = "featurecheck"

// Metrics counts what analysis runs observe. A nil *Metrics records nothing.
type Metrics struct {
	runs         *prometheus.CounterVec
	duration     prometheus.Histogram
	eventsSeen   prometheus.Counter
	eventsKept   prometheus.Counter
	features     *prometheus.CounterVec
	unresolved   *prometheus.CounterVec
	flagged      prometheus.Counter
	unknown      prometheus.Counter
	skippedEvent prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "runs_total",
			Help: "Analysis runs by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "run_duration_seconds",
			Help:    "Duration of analysis runs, including acquisition.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		eventsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "trace", Name: "events_total",
			Help: "Trace events read.",
		}),
		eventsKept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "trace", Name: "events_retained_total",
			Help: "Feature usage events on the page thread.",
		}),
		features: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "features_total",
			Help: "Distinct features used, by kind.",
		}, []string{"kind"}),
		unresolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "features_unresolved_total",
			Help: "Features without a known name, by kind.",
		}, []string{"kind"}),
		flagged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "features_flagged_total",
			Help: "Features unsupported by the target engine.",
		}),
		unknown: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "features_unknown_compat_total",
			Help: "Curated features missing from the compatibility data.",
		}),
		skippedEvent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "trace", Name: "events_skipped_total",
			Help: "Usage events without a feature id.",
		}),
	}

	for _, kind := range []usage.Kind{usage.HTMLJS, usage.CSS} {
		m.features.WithLabelValues(kind.String())
		m.unresolved.WithLabelValues(kind.String())
	}

	if reg != nil {
		for _, c := range m.collectors() {
			if err := reg.Register(c); err != nil {
				return nil, Error.Wrap(err)
			}
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.runs, m.duration,
		m.eventsSeen, m.eventsKept, m.skippedEvent,
		m.features, m.unresolved,
		m.flagged, m.unknown,
	}
}

func (m *Metrics) finished(start time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.runs.WithLabelValues(result).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) events(seen, kept int) {
	if m == nil {
		return
	}
	m.eventsSeen.Add(float64(seen))
	m.eventsKept.Add(float64(kept))
}

func (m *Metrics) usage(u *usage.Usage) {
	if m == nil {
		return
	}
	for _, kind := range []usage.Kind{usage.HTMLJS, usage.CSS} {
		m.features.WithLabelValues(kind.String()).Add(float64(len(u.Features(kind))))
		m.unresolved.WithLabelValues(kind.String()).Add(float64(u.Unresolved(kind)))
	}
	m.skippedEvent.Add(float64(u.Skipped))
}

func (m *Metrics) report(r *report.Report) {
	if m == nil {
		return
	}
	m.flagged.Add(float64(len(r.Flagged)))
	for _, entry := range r.All {
		if entry.ExternalID != "" && entry.Verdict == caniuse.Unknown {
			m.unknown.Inc()
		}
	}
}
