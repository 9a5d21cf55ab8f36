package hooks

import (
	"fmt"
	"io"

	"github.com/kk-code-lab/rmenu/internal/search"
)

// Overrides is the part of a Set a plugin replaces. Nil fields keep whatever
// is already installed.
type Overrides struct {
	Matcher   Matcher
	Formatter InputFormatter
	Stdin     StdinProcessor
	Post      MatchPostprocessor
	Disposer  Disposer
}

// Set is the active strategy table.
type Set struct {
	Matcher   Matcher
	Formatter InputFormatter
	Stdin     StdinProcessor
	Post      MatchPostprocessor
	Disposer  Disposer

	owners map[string]string
}

// Defaults returns the built-in strategies: literal matching, identity
// formatting and postprocessing, and line output to w.
func Defaults(caseSensitive bool, w io.Writer) *Set {
	return &Set{
		Matcher:   search.LiteralMatcher{CaseSensitive: caseSensitive},
		Formatter: Identity{},
		Stdin:     Identity{},
		Post:      Identity{},
		Disposer:  LineDisposer{W: w},
		owners:    map[string]string{},
	}
}

// Apply installs a plugin's overrides. A hook may be overridden once.
func (s *Set) Apply(plugin string, o Overrides) error {
	if s.owners == nil {
		s.owners = map[string]string{}
	}
	claims := []struct {
		hook string
		set  bool
	}{
		{"matcher", o.Matcher != nil},
		{"input formatter", o.Formatter != nil},
		{"stdin processor", o.Stdin != nil},
		{"match postprocessor", o.Post != nil},
		{"disposer", o.Disposer != nil},
	}
	for _, c := range claims {
		if !c.set {
			continue
		}
		if owner, taken := s.owners[c.hook]; taken {
			return fmt.Errorf("%w: %s claimed by %s and %s", ErrHookConflict, c.hook, owner, plugin)
		}
	}
	for _, c := range claims {
		if c.set {
			s.owners[c.hook] = plugin
		}
	}
	if o.Matcher != nil {
		s.Matcher = o.Matcher
	}
	if o.Formatter != nil {
		s.Formatter = o.Formatter
	}
	if o.Stdin != nil {
		s.Stdin = o.Stdin
	}
	if o.Post != nil {
		s.Post = o.Post
	}
	if o.Disposer != nil {
		s.Disposer = o.Disposer
	}
	return nil
}

// Owner returns the plugin that overrode hook, or "" for the default.
func (s *Set) Owner(hook string) string {
	return s.owners[hook]
}
