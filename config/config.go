// Package config loads the analysis configuration from defaults, an
// optional config file and the environment.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/zeebo/errs/v2"
)

// Error is the class of configuration errors.
const Error = errs.Tag("config")

// EnvPrefix prefixes environment overrides, e.g. FEATURECHECK_TARGET_VERSION.
const EnvPrefix = "FEATURECHECK"

type Config struct {
	Target  Target  `mapstructure:"target"`
	Names   Names   `mapstructure:"names"`
	Caniuse Caniuse `mapstructure:"caniuse"`
	Trace   Trace   `mapstructure:"trace"`

	Format  string        `mapstructure:"format"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Target struct {
	Label   string `mapstructure:"label"`
	Engine  string `mapstructure:"engine"`
	Version string `mapstructure:"version"`
	Info    string `mapstructure:"info"`
}

// Names locates the id to name tables, by URL or file path.
type Names struct {
	HTML string `mapstructure:"html"`
	CSS  string `mapstructure:"css"`
}

type Caniuse struct {
	// Data is the path of caniuse-db data.json.
	Data string `mapstructure:"data"`
	// Curated is an optional YAML file extending the built-in name to id table.
	Curated string `mapstructure:"curated"`
	Docs    string `mapstructure:"docs"`
}

type Trace struct {
	// Endpoint of a capture service, queried with ?url=<page>.
	Endpoint string `mapstructure:"endpoint"`
}

var defaults = map[string]any{
	"target.label":   "Google Search crawler",
	"target.engine":  "chrome",
	"target.version": "41",
	"target.info":    "https://developers.google.com/search/docs/guides/rendering",
	"names.html":     "https://chromestatus.com/data/featurepopularity",
	"names.css":      "https://chromestatus.com/data/csspopularity",
	"caniuse.data":   "data.json",
	"caniuse.docs":   "https://caniuse.com/#feat=",
	"format":         "html",
	"timeout":        "2m",
}

// Load reads the configuration. path may be empty.
func Load(path string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// crawler deployments historically configure the version this way
	if err := v.BindEnv("target.version", EnvPrefix+"_TARGET_VERSION", EnvPrefix+"_VERSION", "CHROME_VERSION"); err != nil {
		return Config{}, Error.Wrap(err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, Error.Wrap(err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, Error.Wrap(err)
	}
	if cfg.Target.Engine == "" || cfg.Target.Version == "" {
		return Config{}, Error.Errorf("target engine and version are required")
	}
	return cfg, nil
}
