// Package analysis runs the whole feature compatibility check for a page:
// acquire the inputs, extract usage from the trace and build the report.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/errs/v2"
	"golang.org/x/sync/errgroup"

	"loov.dev/featurecheck/import/tef"
	"loov.dev/featurecheck/report"
	"loov.dev/featurecheck/source"
	"loov.dev/featurecheck/usage"
)

// Error is the class of analysis failures.
const Error = errs.Tag("analysis")

// Runner wires the inputs of an analysis run.
type Runner struct {
	HTMLNames source.NameSource
	CSSNames  source.NameSource
	Trace     source.TraceSource

	Reporter *report.Reporter

	// Metrics and Log are optional.
	Metrics *Metrics
	Log     logrus.FieldLogger
}

// Run acquires the name tables and the trace concurrently and builds the
// report. Any failed acquisition fails the run; there are no partial results.
func (runner *Runner) Run(ctx context.Context) (rep *report.Report, err error) {
	start := time.Now()
	defer func() { runner.Metrics.finished(start, err) }()

	log := runner.logger().WithField("run", uuid.NewString())
	if runner.Reporter != nil {
		log = log.WithFields(logrus.Fields{
			"engine":  runner.Reporter.Target.Engine,
			"version": runner.Reporter.Target.Version,
		})
	}

	if runner.HTMLNames == nil || runner.CSSNames == nil || runner.Trace == nil || runner.Reporter == nil {
		return nil, Error.Errorf("runner is missing an input")
	}

	var htmljs, css usage.NameMapping
	var raw []byte

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		names, err := runner.HTMLNames.Names(gctx)
		if err != nil {
			return fmt.Errorf("failed to load html/js names: %w", err)
		}
		htmljs = names
		return nil
	})
	group.Go(func() error {
		names, err := runner.CSSNames.Names(gctx)
		if err != nil {
			return fmt.Errorf("failed to load css names: %w", err)
		}
		css = names
		return nil
	})
	group.Go(func() error {
		data, err := runner.Trace.Trace(gctx)
		if err != nil {
			return fmt.Errorf("failed to capture trace: %w", err)
		}
		raw = data
		return nil
	})
	if err := group.Wait(); err != nil {
		log.WithError(err).Error("acquisition failed")
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"html_js_names": len(htmljs),
		"css_names":     len(css),
		"trace_bytes":   len(raw),
	}).Debug("inputs acquired")

	file, err := tef.Parse(raw)
	if err != nil {
		log.WithError(err).Error("unreadable trace")
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}
	tracelog := tef.Convert(file)
	if product := file.Product(); product != "" {
		log = log.WithField("browser", product)
	}
	log.WithFields(logrus.Fields{
		"events":         len(tracelog.Events),
		"capture_window": tracelog.Duration().Std().String(),
	}).Debug("trace decoded")

	events, err := usage.Filter(&tracelog)
	if err != nil {
		log.WithError(err).Error("malformed trace")
		return nil, err
	}
	runner.Metrics.events(len(tracelog.Events), len(events))

	u := usage.Aggregate(events, usage.NewResolver(htmljs, css))
	runner.Metrics.usage(&u)
	if u.Skipped > 0 {
		log.WithField("skipped", u.Skipped).Warn("usage events without a feature id")
	}
	for _, kind := range []usage.Kind{usage.HTMLJS, usage.CSS} {
		if n := u.Unresolved(kind); n > 0 {
			log.WithFields(logrus.Fields{"kind": kind.String(), "count": n}).Warn("unresolved features")
		}
	}

	rep = runner.Reporter.Build(&u)
	runner.Metrics.report(rep)

	log.WithFields(logrus.Fields{
		"html_js":        rep.HTMLJSCount,
		"css":            rep.CSSCount,
		"flagged":        len(rep.Flagged),
		"capture_window": tracelog.Duration().Std().String(),
		"elapsed":        time.Since(start).String(),
	}).Info("analysis finished")

	return rep, nil
}

func (runner *Runner) logger() logrus.FieldLogger {
	if runner.Log != nil {
		return runner.Log
	}
	return logrus.StandardLogger()
}
