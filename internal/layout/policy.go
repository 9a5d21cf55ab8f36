package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidWidthPolicy reports an unparseable input-width policy.
var ErrInvalidWidthPolicy = errors.New("invalid input width policy")

// PolicyKind selects how the input box width is derived.
type PolicyKind int

const (
	// WidthMin sizes the input to the smallest of the widest match, a third
	// of the line and the query.
	WidthMin PolicyKind = iota
	// WidthItems sizes the input to the widest source candidate, capped at a
	// third of the line.
	WidthItems
	// WidthMax gives the input everything the selected candidate leaves.
	WidthMax
	// WidthCustom uses a fixed percentage of the line.
	WidthCustom
)

// WidthPolicy is an input-width policy; Percent is only used by WidthCustom.
type WidthPolicy struct {
	Kind    PolicyKind
	Percent int
}

func (p WidthPolicy) String() string {
	switch p.Kind {
	case WidthItems:
		return "items"
	case WidthMax:
		return "max"
	case WidthCustom:
		return fmt.Sprintf("custom=%d", p.Percent)
	default:
		return "min"
	}
}

// ParseWidthPolicy accepts "min", "items", "max" or "custom=N" with N in
// [0,100].
func ParseWidthPolicy(s string) (WidthPolicy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "min", "":
		return WidthPolicy{Kind: WidthMin}, nil
	case "items":
		return WidthPolicy{Kind: WidthItems}, nil
	case "max":
		return WidthPolicy{Kind: WidthMax}, nil
	}
	value, ok := strings.CutPrefix(name, "custom=")
	if !ok {
		return WidthPolicy{}, fmt.Errorf("%w: %q", ErrInvalidWidthPolicy, s)
	}
	pct, err := strconv.Atoi(value)
	if err != nil || pct < 0 || pct > 100 {
		return WidthPolicy{}, fmt.Errorf("%w: %q wants a percentage", ErrInvalidWidthPolicy, s)
	}
	return WidthPolicy{Kind: WidthCustom, Percent: pct}, nil
}

// reservesBack reports whether pages after the first leave room for the back
// glyph.
func (p WidthPolicy) reservesBack() bool {
	return p.Kind != WidthMin
}
