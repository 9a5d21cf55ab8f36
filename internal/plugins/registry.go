// Package plugins holds the alternative hook strategies and composes the
// active hook set from a list of plugin names.
package plugins

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/kk-code-lab/rmenu/internal/hooks"
	"github.com/kk-code-lab/rmenu/internal/plugins/autoselect"
	"github.com/kk-code-lab/rmenu/internal/plugins/calc"
	"github.com/kk-code-lab/rmenu/internal/plugins/fuzzy"
	"github.com/kk-code-lab/rmenu/internal/plugins/lookup"
	"github.com/kk-code-lab/rmenu/internal/plugins/maxlength"
	"github.com/kk-code-lab/rmenu/internal/plugins/password"
	"github.com/kk-code-lab/rmenu/internal/plugins/regex"
	"github.com/kk-code-lab/rmenu/internal/plugins/spell"
)

// ErrUnknownPlugin reports a plugin name missing from the registry.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Options carry the settings plugin factories read.
type Options struct {
	CaseSensitive    bool
	CalcTimeout      time.Duration
	MaxLength        int
	Engine           string
	SpellMaxDistance int

	// Width measures synthesized candidates.
	Width  func(string) int
	Out    io.Writer
	Logger *slog.Logger
}

// Factory builds a plugin's hook overrides.
type Factory func(opts Options) (hooks.Overrides, error)

// Plugin is a registry entry. Defaults are configuration values the plugin
// wants unless the user set them.
type Plugin struct {
	About    string
	Defaults map[string]any
	New      Factory
}

// Registry lists every plugin by name.
var Registry = map[string]Plugin{
	"fuzzy": {
		About: "rank candidates by fuzzy subsequence score",
		New: func(Options) (hooks.Overrides, error) {
			return hooks.Overrides{Matcher: fuzzy.New()}, nil
		},
	},
	"regex": {
		About: "treat the query as a regular expression",
		New: func(opts Options) (hooks.Overrides, error) {
			return hooks.Overrides{Matcher: regex.New(opts.CaseSensitive)}, nil
		},
	},
	"calc": {
		About: "evaluate the query as an expression",
		Defaults: map[string]any{
			"nostdin": true,
		},
		New: func(opts Options) (hooks.Overrides, error) {
			return hooks.Overrides{Matcher: calc.New(opts.CalcTimeout, opts.Width, opts.Logger)}, nil
		},
	},
	"spell": {
		About: "suggest spellings from a word list on stdin",
		Defaults: map[string]any{
			"render.flex":          true,
			"render.default_width": "custom=15",
		},
		New: func(opts Options) (hooks.Overrides, error) {
			checker := spell.New(opts.SpellMaxDistance, opts.Width)
			return hooks.Overrides{Matcher: checker, Stdin: checker}, nil
		},
	},
	"autoselect": {
		About: "commit as soon as one candidate is left",
		New: func(Options) (hooks.Overrides, error) {
			return hooks.Overrides{Post: autoselect.New()}, nil
		},
	},
	"maxlength": {
		About: "commit once the query reaches --maxlength graphemes",
		Defaults: map[string]any{
			"nostdin": true,
		},
		New: func(opts Options) (hooks.Overrides, error) {
			post, err := maxlength.New(opts.MaxLength)
			if err != nil {
				return hooks.Overrides{}, err
			}
			return hooks.Overrides{Post: post}, nil
		},
	},
	"password": {
		About: "mask the query",
		New: func(Options) (hooks.Overrides, error) {
			return hooks.Overrides{Formatter: password.New()}, nil
		},
	},
	"lookup": {
		About: "open a web search for the query",
		New: func(opts Options) (hooks.Overrides, error) {
			l, err := lookup.New(opts.Engine, opts.Out)
			if err != nil {
				return hooks.Overrides{}, err
			}
			return hooks.Overrides{Stdin: l, Disposer: l}, nil
		},
	},
}

// Names returns the registered plugin names in order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compose starts from the default hooks and applies each named plugin in
// turn. Two plugins claiming the same hook is an error.
func Compose(names []string, opts Options) (*hooks.Set, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	set := hooks.Defaults(opts.CaseSensitive, opts.Out)
	for _, name := range names {
		p, ok := Registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
		}
		overrides, err := p.New(opts)
		if err != nil {
			return nil, fmt.Errorf("plugin %s: %w", name, err)
		}
		if err := set.Apply(name, overrides); err != nil {
			return nil, err
		}
		logger.Debug("plugin enabled", "plugin", name)
	}
	return set, nil
}
