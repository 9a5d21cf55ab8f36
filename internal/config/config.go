// Package config loads menu settings from defaults, a TOML file, RMENU_
// environment variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kk-code-lab/rmenu/internal/layout"
	"github.com/kk-code-lab/rmenu/internal/plugins"
	"github.com/kk-code-lab/rmenu/internal/plugins/calc"
	"github.com/kk-code-lab/rmenu/internal/plugins/spell"
)

// ErrInvalidWidthPolicy reports a bad render.default_width value.
var ErrInvalidWidthPolicy = layout.ErrInvalidWidthPolicy

// ErrInvalidConfig reports a value outside its allowed range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds application configuration.
type Config struct {
	Lines         int          `mapstructure:"lines"`
	Prompt        string       `mapstructure:"prompt"`
	CaseSensitive bool         `mapstructure:"case_sensitive"`
	Bottom        bool         `mapstructure:"bottom"`
	NoStdin       bool         `mapstructure:"nostdin"`
	Render        RenderConfig `mapstructure:"render"`
	Plugins       []string     `mapstructure:"plugins"`
	Calc          CalcConfig   `mapstructure:"calc"`
	MaxLength     int          `mapstructure:"maxlength"`
	Lookup        LookupConfig `mapstructure:"lookup"`
	Spell         SpellConfig  `mapstructure:"spell"`
	Log           LogConfig    `mapstructure:"log"`
}

// RenderConfig holds layout switches. Policy is parsed from DefaultWidth.
type RenderConfig struct {
	DefaultWidth string             `mapstructure:"default_width"`
	Flex         bool               `mapstructure:"flex"`
	Overrun      bool               `mapstructure:"overrun"`
	RightAlign   bool               `mapstructure:"rightalign"`
	Policy       layout.WidthPolicy `mapstructure:"-"`
}

// CalcConfig holds expression evaluation settings.
type CalcConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// LookupConfig holds the web search engine name.
type LookupConfig struct {
	Engine string `mapstructure:"engine"`
}

// SpellConfig holds spelling suggestion settings.
type SpellConfig struct {
	MaxDistance int `mapstructure:"max_distance"`
}

// LogConfig holds the log destination. An empty File discards logs.
type LogConfig struct {
	File  string     `mapstructure:"file"`
	Level string     `mapstructure:"level"`
	Lvl   slog.Level `mapstructure:"-"`
}

// Flags registers the command-line flags Load understands.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("rmenu", pflag.ContinueOnError)
	fs.IntP("lines", "l", 0, "list candidates vertically, N per page")
	fs.StringP("prompt", "p", "", "prompt shown left of the input")
	fs.BoolP("insensitive", "i", false, "match case-insensitively")
	fs.BoolP("bottom", "b", false, "draw the menu on the bottom row")
	fs.Bool("nostdin", false, "do not read candidates from stdin")
	fs.String("render-default-width", "", "input width policy: min, items, max or custom=N")
	fs.Bool("render-flex", false, "let the input grow into unused space")
	fs.Bool("render-overrun", false, "draw the whole query even over candidates")
	fs.Bool("render-rightalign", false, "right-align candidates")
	fs.StringArray("plugin", nil, "enable a plugin (repeatable)")
	fs.Int("maxlength", 0, "commit once the query has N graphemes (maxlength plugin)")
	fs.String("engine", "", "search engine for the lookup plugin")
	fs.CountP("version", "v", "print version; twice to list plugins")
	fs.BoolP("help", "h", false, "show this help")
	return fs
}

var flagKeys = map[string]string{
	"lines":                "lines",
	"prompt":               "prompt",
	"bottom":               "bottom",
	"nostdin":              "nostdin",
	"render-default-width": "render.default_width",
	"render-flex":          "render.flex",
	"render-overrun":       "render.overrun",
	"render-rightalign":    "render.rightalign",
	"plugin":               "plugins",
	"maxlength":            "maxlength",
	"engine":               "lookup.engine",
}

// Load reads configuration from file and env. Env var overrides use prefix
// RMENU_. fs may be nil.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("lines", 0)
	v.SetDefault("prompt", "")
	v.SetDefault("case_sensitive", true)
	v.SetDefault("bottom", false)
	v.SetDefault("nostdin", false)
	v.SetDefault("render.default_width", "items")
	v.SetDefault("render.flex", false)
	v.SetDefault("render.overrun", false)
	v.SetDefault("render.rightalign", false)
	v.SetDefault("plugins", []string{})
	v.SetDefault("calc.timeout", calc.DefaultTimeout)
	v.SetDefault("maxlength", 0)
	v.SetDefault("lookup.engine", "")
	v.SetDefault("spell.max_distance", spell.DefaultMaxDistance)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("RMENU_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("RMENU")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if flag := fs.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
		if fs.Changed("insensitive") {
			v.Set("case_sensitive", false)
		}
	}

	// Plugins adjust defaults before anything user-provided is applied.
	names := pluginNames(v.GetStringSlice("plugins"))
	for _, name := range names {
		p, ok := plugins.Registry[name]
		if !ok {
			return Config{}, fmt.Errorf("%w: %q", plugins.ErrUnknownPlugin, name)
		}
		for key, value := range p.Defaults {
			v.SetDefault(key, value)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Plugins = names
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Lines < 0 {
		return fmt.Errorf("%w: lines must be >= 0, got %d", ErrInvalidConfig, c.Lines)
	}
	if c.MaxLength < 0 {
		return fmt.Errorf("%w: maxlength must be >= 0, got %d", ErrInvalidConfig, c.MaxLength)
	}
	if c.Calc.Timeout <= 0 {
		return fmt.Errorf("%w: calc.timeout must be positive", ErrInvalidConfig)
	}

	policy, err := layout.ParseWidthPolicy(c.Render.DefaultWidth)
	if err != nil {
		return err
	}
	c.Render.Policy = policy
	if policy.Kind == layout.WidthMax {
		c.Render.RightAlign = true
	}
	if c.Render.Overrun {
		c.Render.Flex = true
	}

	if err := c.Log.Lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}

	// A configured engine means the engine is not read from stdin.
	if c.Lookup.Engine != "" && c.HasPlugin("lookup") {
		c.NoStdin = true
	}
	return nil
}

// HasPlugin reports whether name is enabled.
func (c Config) HasPlugin(name string) bool {
	for _, p := range c.Plugins {
		if p == name {
			return true
		}
	}
	return false
}

// pluginNames accepts both list values and comma separated strings, as env
// variables arrive.
func pluginNames(raw []string) []string {
	var names []string
	seen := map[string]bool{}
	for _, item := range raw {
		for _, name := range strings.Split(item, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "rmenu")
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "rmenu")
}
