package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/clingy"

	"loov.dev/featurecheck/analysis"
	"loov.dev/featurecheck/caniuse"
	"loov.dev/featurecheck/config"
	"loov.dev/featurecheck/report"
	"loov.dev/featurecheck/source"
)

type cmdAnalyze struct {
	target targetFlags

	trace    string
	page     string
	endpoint string

	htmlNames string
	cssNames  string
	curated   string

	format      string
	out         string
	metricsFile string
	verbose     bool
}

// targetFlags are shared by the commands that consult compatibility data.
type targetFlags struct {
	config  string
	engine  string
	version string
	caniuse string
}

func (t *targetFlags) setup(params clingy.Parameters) {
	t.config = params.Flag("config", "configuration file", "").(string)
	t.engine = params.Flag("engine", "target engine, as named by caniuse", "").(string)
	t.version = params.Flag("version", "target engine version", "").(string)
	t.caniuse = params.Flag("caniuse", "path of caniuse-db data.json", "").(string)
}

// load reads the configuration with the flags applied on top.
func (t *targetFlags) load() (config.Config, error) {
	cfg, err := config.Load(t.config)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	override(&cfg.Target.Engine, t.engine)
	override(&cfg.Target.Version, t.version)
	override(&cfg.Caniuse.Data, t.caniuse)
	return cfg, nil
}

func override(dst *string, flag string) {
	if flag != "" {
		*dst = flag
	}
}

func (c *cmdAnalyze) Setup(params clingy.Parameters) {
	c.target.setup(params)

	c.trace = params.Flag("trace", "previously captured trace file", "").(string)
	c.page = params.Flag("page", "page to capture with the trace endpoint", "").(string)
	c.endpoint = params.Flag("endpoint", "trace capture service", "").(string)

	c.htmlNames = params.Flag("html-names", "html/js feature name table, url or file", "").(string)
	c.cssNames = params.Flag("css-names", "css property name table, url or file", "").(string)
	c.curated = params.Flag("curated", "yaml file extending the feature to caniuse id table", "").(string)

	c.format = params.Flag("format", fmt.Sprintf("report format %v", report.FormatNames()), "").(string)
	c.out = params.Flag("out", "write the report to this file", "").(string)
	c.metricsFile = params.Flag("metrics-file", "write run metrics in text exposition format", "").(string)
	c.verbose = params.Flag("verbose", "log progress to stderr", false,
		clingy.Short('v'),
		clingy.Transform(strconv.ParseBool),
		clingy.Boolean,
	).(bool)
}

func (c *cmdAnalyze) Execute(ctx context.Context) error {
	return c.run(ctx, clingy.Stdout(ctx), clingy.Stderr(ctx))
}

func (c *cmdAnalyze) run(ctx context.Context, stdout, stderr io.Writer) (err error) {
	cfg, err := c.target.load()
	if err != nil {
		return err
	}
	override(&cfg.Names.HTML, c.htmlNames)
	override(&cfg.Names.CSS, c.cssNames)
	override(&cfg.Caniuse.Curated, c.curated)
	override(&cfg.Trace.Endpoint, c.endpoint)
	override(&cfg.Format, c.format)

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)
	if c.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	formatter, err := report.FormatterFor(cfg.Format)
	if err != nil {
		return err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	client := &http.Client{}
	var trace source.TraceSource
	switch {
	case c.trace != "":
		trace = source.FileTrace(c.trace)
	case c.page != "" && cfg.Trace.Endpoint != "":
		trace = &source.HTTPTrace{Endpoint: cfg.Trace.Endpoint, Page: c.page, Client: client}
	default:
		return fmt.Errorf("either --trace or --page with a trace endpoint is required")
	}

	index, err := caniuse.LoadFile(cfg.Caniuse.Data)
	if err != nil {
		return fmt.Errorf("failed to load compatibility data: %w", err)
	}
	log.WithField("features", index.Len()).Debug("compatibility data loaded")

	ids := caniuse.DefaultExternalIDs()
	if cfg.Caniuse.Curated != "" {
		ids, err = caniuse.LoadExternalIDs(ids, cfg.Caniuse.Curated)
		if err != nil {
			return fmt.Errorf("failed to load curated ids: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	metrics, err := analysis.NewMetrics(registry)
	if err != nil {
		return err
	}
	if c.metricsFile != "" {
		defer func() {
			if werr := prometheus.WriteToTextfile(c.metricsFile, registry); werr != nil && err == nil {
				err = fmt.Errorf("failed to write metrics: %w", werr)
			}
		}()
	}

	runner := &analysis.Runner{
		HTMLNames: source.NamesAt(cfg.Names.HTML, client),
		CSSNames:  source.NamesAt(cfg.Names.CSS, client),
		Trace:     trace,
		Reporter: &report.Reporter{
			Index:       index,
			ExternalIDs: ids,
			Target: report.Target{
				Label:   cfg.Target.Label,
				Engine:  cfg.Target.Engine,
				Version: cfg.Target.Version,
				InfoURL: cfg.Target.Info,
			},
			DocsURL: cfg.Caniuse.Docs,
		},
		Metrics: metrics,
		Log:     log,
	}

	rep, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if c.out == "" {
		return formatter.Format(stdout, rep)
	}

	f, err := os.Create(c.out)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", c.out, err)
	}
	if err := formatter.Format(f, rep); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %q: %w", c.out, err)
	}
	return f.Close()
}
