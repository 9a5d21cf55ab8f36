package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rmenu/internal/layout"
	statepkg "github.com/kk-code-lab/rmenu/internal/state"
	textutil "github.com/kk-code-lab/rmenu/internal/textutil"
)

// Options are the placement switches fixed for the session.
type Options struct {
	// Bottom anchors the menu to the last rows of the terminal.
	Bottom bool
	// Lines is the vertical list height; 0 packs items on the prompt row.
	Lines int
}

// Renderer handles all UI rendering
type Renderer struct {
	screen  tcell.Screen
	theme   ColorTheme
	opts    Options
	measure Measurer
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen, opts Options) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		opts:   opts,
	}
}

// Render draws one frame of the menu.
func (r *Renderer) Render(v layout.View) {
	r.screen.Clear()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		r.screen.Show()
		return
	}

	top := r.topRow(h)
	r.fill(0, w, top, r.theme.norm())

	if v.PromptWidth > 0 {
		r.drawLabel(0, top, min(v.PromptWidth, w), v.Prompt, r.theme.sel())
	}
	r.drawInput(v, top, w)

	for _, item := range v.Items {
		y := top + item.Y
		if y >= h {
			break
		}
		r.drawLabel(item.X, y, min(item.Width, w-item.X), item.Text, r.itemStyle(item))
	}

	if v.ShowBack {
		r.drawGlyph(v.BackX, top, w, statepkg.BackGlyph)
	}
	if v.ShowMore {
		r.drawGlyph(v.MoreX, top, w, statepkg.MoreGlyph)
	}

	r.screen.Show()
}

// PromptRow returns the screen row the prompt line is drawn on.
func (r *Renderer) PromptRow() int {
	_, h := r.screen.Size()
	return r.topRow(h)
}

// topRow returns the screen row of the prompt line.
func (r *Renderer) topRow(h int) int {
	if !r.opts.Bottom {
		return 0
	}
	rows := 0
	if r.opts.Lines > 0 {
		rows = min(r.opts.Lines, h-1)
	}
	return max(h-1-rows, 0)
}

func (r *Renderer) itemStyle(item layout.Item) tcell.Style {
	switch {
	case item.Selected:
		return r.theme.sel()
	case item.Out:
		return r.theme.out()
	default:
		return r.theme.norm()
	}
}

func (r *Renderer) drawGlyph(x, y, w int, glyph string) {
	width := min(r.measure.TextWidth(glyph), w-x)
	r.drawLabel(x, y, width, glyph, r.theme.norm())
}

// drawInput draws the formatted query, the last matcher error and the text
// cursor inside the input field.
func (r *Renderer) drawInput(v layout.View, y, w int) {
	start := v.InputX + Padding
	end := min(v.InputX+v.InputWidth, w) - Padding
	if end <= start {
		r.screen.HideCursor()
		return
	}

	norm := r.theme.norm()
	text, cursor := scrollInput(textutil.SanitizeTerminalText(v.Input), v.Cursor, end-start)
	x := r.drawTextLine(start, y, end, text, norm)

	if v.Error != "" && x+1 < end {
		msg := textutil.TruncateToWidth(textutil.SanitizeTerminalText(v.Error), end-x-1)
		r.drawTextLine(x+1, y, end, msg, norm.Foreground(r.theme.ErrorFg))
	}

	r.screen.ShowCursor(min(start+cursor, end-1), y)
}

// scrollInput drops leading clusters until the cursor fits in width cells.
// It returns the visible text and the cursor offset inside it.
func scrollInput(text string, cursor, width int) (string, int) {
	if cursor < width {
		return text, cursor
	}
	clusters := textutil.Graphemes(text)
	i := 0
	for cursor >= width && i < len(clusters) {
		cursor -= textutil.DisplayWidth(clusters[i])
		i++
	}
	return strings.Join(clusters[i:], ""), max(cursor, 0)
}
