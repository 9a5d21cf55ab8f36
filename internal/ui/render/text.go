package render

import (
	"github.com/gdamore/tcell/v2"
	textutil "github.com/kk-code-lab/rmenu/internal/textutil"
)

// Padding is the number of blank cells drawn on each side of a label.
const Padding = 1

// Measurer reports label widths the way the renderer draws them: the text's
// cell width plus the padding on both sides.
type Measurer struct{}

// TextWidth implements layout.Measurer.
func (Measurer) TextWidth(text string) int {
	return textutil.DisplayWidth(textutil.SanitizeTerminalText(text)) + 2*Padding
}

// drawTextLine draws text starting at startX and stops before maxX. Clusters
// that would straddle maxX are dropped. It returns the x after the last cell
// drawn.
func (r *Renderer) drawTextLine(startX, y, maxX int, text string, style tcell.Style) int {
	x := startX
	for _, cluster := range textutil.Graphemes(text) {
		w := textutil.DisplayWidth(cluster)
		if x+w > maxX {
			break
		}
		runes := []rune(cluster)
		r.screen.SetContent(x, y, runes[0], runes[1:], style)
		for i := 1; i < w; i++ {
			r.screen.SetContent(x+i, y, ' ', nil, style)
		}
		x += w
	}
	return x
}

// fill paints cells [startX, endX) of row y.
func (r *Renderer) fill(startX, endX, y int, style tcell.Style) {
	for x := startX; x < endX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawLabel paints a padded box of width cells and the sanitized text
// inside it, truncated with an ellipsis when it does not fit.
func (r *Renderer) drawLabel(x, y, width int, text string, style tcell.Style) {
	if width <= 0 {
		return
	}
	r.fill(x, x+width, y, style)
	inner := width - 2*Padding
	if inner <= 0 {
		return
	}
	text = textutil.TruncateToWidth(textutil.SanitizeTerminalText(text), inner)
	r.drawTextLine(x+Padding, y, x+width-Padding, text, style)
}
