package main

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/zeebo/clingy"

	"loov.dev/featurecheck/config"
	"loov.dev/featurecheck/source"
)

type cmdNames struct {
	config string
	kind   string
}

func (c *cmdNames) Setup(params clingy.Parameters) {
	c.config = params.Flag("config", "configuration file", "").(string)
	c.kind = params.Arg("kind", "html or css").(string)
}

func (c *cmdNames) Execute(ctx context.Context) error {
	return c.run(ctx, clingy.Stdout(ctx))
}

func (c *cmdNames) run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load(c.config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var location string
	switch c.kind {
	case "html", "js", "html_js":
		location = cfg.Names.HTML
	case "css":
		location = cfg.Names.CSS
	default:
		return fmt.Errorf("unknown name table %q, expected html or css", c.kind)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	names, err := source.NamesAt(location, &http.Client{}).Names(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s names: %w", c.kind, err)
	}

	_, err = stdout.Write(source.FormatNames(names))
	return err
}
