package main

import (
	"context"
	"fmt"
	"io"

	"github.com/zeebo/clingy"

	"loov.dev/featurecheck/caniuse"
	"loov.dev/featurecheck/report"
)

type cmdLookup struct {
	target  targetFlags
	curated string
	feature string
}

func (c *cmdLookup) Setup(params clingy.Parameters) {
	c.target.setup(params)
	c.curated = params.Flag("curated", "yaml file extending the feature to caniuse id table", "").(string)
	c.feature = params.Arg("feature", "caniuse id or feature name, e.g. fetch or CSSGridLayout").(string)
}

func (c *cmdLookup) Execute(ctx context.Context) error {
	return c.run(ctx, clingy.Stdout(ctx))
}

func (c *cmdLookup) run(ctx context.Context, stdout io.Writer) error {
	cfg, err := c.target.load()
	if err != nil {
		return err
	}
	override(&cfg.Caniuse.Curated, c.curated)

	index, err := caniuse.LoadFile(cfg.Caniuse.Data)
	if err != nil {
		return fmt.Errorf("failed to load compatibility data: %w", err)
	}

	id := c.feature
	if _, known := index.Title(id); !known {
		ids := caniuse.DefaultExternalIDs()
		if cfg.Caniuse.Curated != "" {
			ids, err = caniuse.LoadExternalIDs(ids, cfg.Caniuse.Curated)
			if err != nil {
				return fmt.Errorf("failed to load curated ids: %w", err)
			}
		}
		if mapped, ok := ids.Lookup(id); ok {
			id = mapped
		}
	}

	target := report.Target{Engine: cfg.Target.Engine, Version: cfg.Target.Version}
	verdict := index.Lookup(id, target.Engine, target.Version)

	title, _ := index.Title(id)
	if title == "" {
		title = id
	}
	_, err = fmt.Fprintf(stdout, "%s (%s%s): %v in %s %s\n",
		title, cfg.Caniuse.Docs, id, verdict, target.EngineName(), target.Version)
	return err
}
