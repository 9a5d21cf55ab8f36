// Package calc evaluates the query as a Lua expression and offers the result
// as the only candidate.
package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/kk-code-lab/rmenu/internal/search"
)

// DefaultTimeout bounds a single evaluation.
const DefaultTimeout = 250 * time.Millisecond

var errNoValue = errors.New("expression produced no value")

// Matcher evaluates queries in a fresh sandboxed Lua state on a worker
// goroutine. When evaluation fails or runs out of time the raw query is
// offered instead.
type Matcher struct {
	timeout time.Duration
	width   func(string) int
	logger  *slog.Logger
}

// New builds the calc matcher. width measures the synthesized candidate.
func New(timeout time.Duration, width func(string) int, logger *slog.Logger) *Matcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Matcher{timeout: timeout, width: width, logger: logger}
}

func (m *Matcher) Match(_ []search.Candidate, query string) ([]search.Candidate, error) {
	text := query
	if query != "" {
		value, err := m.Eval(query)
		if err != nil {
			m.logger.Debug("calc fallback", "query", query, "err", err)
		} else {
			text = value
		}
	}
	c := search.Candidate{Text: text, Index: -1}
	if m.width != nil {
		c.Width = m.width(text)
	}
	return []search.Candidate{c}, nil
}

type outcome struct {
	value string
	err   error
}

// Eval runs expr under the matcher's timeout. A late result is dropped.
func (m *Matcher) Eval(expr string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		value, err := evaluate(ctx, expr)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		return out.value, out.err
	case <-ctx.Done():
		return "", fmt.Errorf("evaluate %q: %w", expr, ctx.Err())
	}
}

func evaluate(ctx context.Context, expr string) (value string, err error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	openSafeLibraries(L)
	L.SetContext(ctx)

	if err := L.DoString("return " + expr); err != nil {
		return "", fmt.Errorf("evaluate %q: %w", expr, err)
	}
	if L.GetTop() == 0 {
		return "", errNoValue
	}
	result := L.Get(-1)
	switch result.Type() {
	case lua.LTNumber, lua.LTString, lua.LTBool:
		return result.String(), nil
	default:
		return "", fmt.Errorf("evaluate %q: unsupported result type %s", expr, result.Type())
	}
}

// openSafeLibraries loads base, math and string, then strips the base
// functions that reach the file system or load code.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenMath(L)
	lua.OpenString(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module", "collectgarbage"} {
		L.SetGlobal(name, lua.LNil)
	}
}
