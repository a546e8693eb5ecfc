// Package config loads viewer settings from defaults, a YAML file, the
// environment and command line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kk-code-lab/imgview/internal/decode"
	"github.com/kk-code-lab/imgview/internal/layout"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. IMGVIEW_VIEW_GAP=2.
const EnvPrefix = "IMGVIEW"

// Config is the effective configuration.
type Config struct {
	View struct {
		Mode     string `mapstructure:"mode" yaml:"mode"`         // paged or continuous
		Reversed bool   `mapstructure:"reversed" yaml:"reversed"` // right-to-left reading in paged mode
		Gap      int    `mapstructure:"gap" yaml:"gap"`           // pixels between entries
		Prefetch int    `mapstructure:"prefetch" yaml:"prefetch"` // entries kept per side
	} `mapstructure:"view" yaml:"view"`
	Animation struct {
		Enabled       bool          `mapstructure:"enabled" yaml:"enabled"`
		OnKey         bool          `mapstructure:"on_key" yaml:"on_key"`
		MaxDuration   time.Duration `mapstructure:"max_duration" yaml:"max_duration"`
		PerPixel      time.Duration `mapstructure:"per_pixel" yaml:"per_pixel"`
		FrameInterval time.Duration `mapstructure:"frame_interval" yaml:"frame_interval"`
		Easing        string        `mapstructure:"easing" yaml:"easing"`
	} `mapstructure:"animation" yaml:"animation"`
	Navigation struct {
		PageThreshold   int     `mapstructure:"page_threshold" yaml:"page_threshold"`
		ScrollThreshold int     `mapstructure:"scroll_threshold" yaml:"scroll_threshold"`
		FlingVelocity   float64 `mapstructure:"fling_velocity" yaml:"fling_velocity"` // pixels per millisecond
		WheelStep       int     `mapstructure:"wheel_step" yaml:"wheel_step"`
	} `mapstructure:"navigation" yaml:"navigation"`
	Catalog struct {
		Locale        string   `mapstructure:"locale" yaml:"locale"`
		IncludeHidden bool     `mapstructure:"include_hidden" yaml:"include_hidden"`
		Watch         bool     `mapstructure:"watch" yaml:"watch"`
		Extensions    []string `mapstructure:"extensions" yaml:"extensions"`
	} `mapstructure:"catalog" yaml:"catalog"`
	Decode struct {
		Async     bool `mapstructure:"async" yaml:"async"`
		MaxPixels int  `mapstructure:"max_pixels" yaml:"max_pixels"`
	} `mapstructure:"decode" yaml:"decode"`
	Theme struct {
		Background  string `mapstructure:"background" yaml:"background"`
		MenuBar     string `mapstructure:"menu_bar" yaml:"menu_bar"`
		MenuText    string `mapstructure:"menu_text" yaml:"menu_text"`
		MenuActive  string `mapstructure:"menu_active" yaml:"menu_active"`
		StatusBar   string `mapstructure:"status_bar" yaml:"status_bar"`
		StatusText  string `mapstructure:"status_text" yaml:"status_text"`
		Placeholder string `mapstructure:"placeholder" yaml:"placeholder"`
		Error       string `mapstructure:"error" yaml:"error"`
	} `mapstructure:"theme" yaml:"theme"`
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"` // text or json
		File   string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"log" yaml:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// Options selects where configuration comes from.
type Options struct {
	// File is an explicit config file. It must exist.
	File string
	// SearchPaths are searched for config.yaml when File is empty.
	// Defaults to DefaultDir().
	SearchPaths []string
	// Flags overrides keys listed in FlagKeys when the flag was set.
	Flags *pflag.FlagSet
}

// FlagKeys maps command line flag names to configuration keys.
var FlagKeys = map[string]string{
	"mode":      "view.mode",
	"reversed":  "view.reversed",
	"gap":       "view.gap",
	"prefetch":  "view.prefetch",
	"animate":   "animation.enabled",
	"hidden":    "catalog.include_hidden",
	"watch":     "catalog.watch",
	"async":     "decode.async",
	"locale":    "catalog.locale",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// DefaultDir returns ~/.config/imgview.
func DefaultDir() string {
	dir, err := homedir.Expand(filepath.Join("~", ".config", "imgview"))
	if err != nil {
		return "."
	}
	return dir
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("view.mode", "paged")
	v.SetDefault("view.reversed", true)
	v.SetDefault("view.gap", 1)
	v.SetDefault("view.prefetch", 5)

	v.SetDefault("animation.enabled", true)
	v.SetDefault("animation.on_key", true)
	v.SetDefault("animation.max_duration", 300*time.Millisecond)
	v.SetDefault("animation.per_pixel", 3*time.Millisecond)
	v.SetDefault("animation.frame_interval", 16*time.Millisecond)
	v.SetDefault("animation.easing", "in-out-cubic")

	v.SetDefault("navigation.page_threshold", 4)
	v.SetDefault("navigation.scroll_threshold", 2)
	v.SetDefault("navigation.fling_velocity", 0.08)
	v.SetDefault("navigation.wheel_step", 4)

	v.SetDefault("catalog.locale", "")
	v.SetDefault("catalog.include_hidden", false)
	v.SetDefault("catalog.watch", true)
	v.SetDefault("catalog.extensions", decode.Formats)

	v.SetDefault("decode.async", true)
	v.SetDefault("decode.max_pixels", 64*1024*1024)

	v.SetDefault("theme.background", "#101010")
	v.SetDefault("theme.menu_bar", "#30343c")
	v.SetDefault("theme.menu_text", "#d0d0d0")
	v.SetDefault("theme.menu_active", "#87d7ff")
	v.SetDefault("theme.status_bar", "#30343c")
	v.SetDefault("theme.status_text", "#d0d0d0")
	v.SetDefault("theme.placeholder", "#3a3a3a")
	v.SetDefault("theme.error", "#ff5f5f")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// Load builds the effective configuration. A missing config file in the
// search paths is not an error; a missing explicit file is.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if opts.File != "" {
		path, err := homedir.Expand(opts.File)
		if err != nil {
			return nil, fmt.Errorf("cannot expand config path %s: %w", opts.File, err)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		paths := opts.SearchPaths
		if len(paths) == 0 {
			paths = []string{DefaultDir()}
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			if f := opts.Flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("cannot bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.View.Mode = strings.ToLower(strings.TrimSpace(cfg.View.Mode))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns the configuration without any file, env or flag input.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	_ = v.Unmarshal(cfg)
	return cfg
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := layout.ParseMode(c.View.Mode); err != nil {
		return fmt.Errorf("view.mode must be paged or continuous, got %q", c.View.Mode)
	}
	if c.View.Gap < 0 {
		return fmt.Errorf("view.gap must be >= 0, got %d", c.View.Gap)
	}
	if c.View.Prefetch < 0 {
		return fmt.Errorf("view.prefetch must be >= 0, got %d", c.View.Prefetch)
	}
	if c.Animation.FrameInterval <= 0 {
		return fmt.Errorf("animation.frame_interval must be positive, got %s", c.Animation.FrameInterval)
	}
	if c.Animation.MaxDuration < 0 || c.Animation.PerPixel < 0 {
		return errors.New("animation durations must not be negative")
	}
	if c.Navigation.PageThreshold < 0 || c.Navigation.ScrollThreshold < 0 || c.Navigation.WheelStep <= 0 {
		return errors.New("navigation thresholds must not be negative and wheel_step must be positive")
	}
	if c.Navigation.FlingVelocity < 0 {
		return fmt.Errorf("navigation.fling_velocity must be >= 0, got %g", c.Navigation.FlingVelocity)
	}
	if len(c.Catalog.Extensions) == 0 {
		return errors.New("catalog.extensions must not be empty")
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// YAML renders the configuration the way it would be written to a file.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("cannot render config: %w", err)
	}
	return out, nil
}
