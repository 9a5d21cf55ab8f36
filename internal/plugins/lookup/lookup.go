// Package lookup turns the menu into a search box for a web search engine.
// Nothing is listed; committing prints the engine URL for the query.
package lookup

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
)

// ErrUnknownEngine reports an engine name missing from the table.
var ErrUnknownEngine = errors.New("unknown search engine")

// Lookup is the stdin processor, prompt setter and disposer of the plugin.
type Lookup struct {
	engine Engine
	key    string
	w      io.Writer
}

// New resolves name when given. An empty name defers the choice to the first
// stdin line.
func New(name string, w io.Writer) (*Lookup, error) {
	l := &Lookup{w: w}
	if name != "" {
		if err := l.use(name); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Engines lists the known engine names.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Lookup) use(name string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	engine, ok := engines[key]
	if !ok {
		return fmt.Errorf("%w: %q (known: %s)", ErrUnknownEngine, name, strings.Join(Engines(), ", "))
	}
	l.key, l.engine = key, engine
	return nil
}

// ProcessStdin picks the engine from the first line unless one was
// configured, and never yields candidates.
func (l *Lookup) ProcessStdin(lines []string) ([]string, error) {
	if l.key != "" {
		return nil, nil
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: no engine on stdin", ErrUnknownEngine)
	}
	if err := l.use(lines[0]); err != nil {
		return nil, err
	}
	return nil, nil
}

func (l *Lookup) Prompt(string) string {
	return fmt.Sprintf("[Search %s]", l.engine.Title)
}

// URL returns the search address for query.
func (l *Lookup) URL(query string) string {
	return strings.Replace(l.engine.URL, "%s", url.QueryEscape(query), 1)
}

func (l *Lookup) Dispose(text string, recommendExit bool) (bool, error) {
	if _, err := fmt.Fprintln(l.w, l.URL(text)); err != nil {
		return false, fmt.Errorf("write search url: %w", err)
	}
	return recommendExit, nil
}
