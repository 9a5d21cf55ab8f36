package render

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/rmenu/internal/layout"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("failed to init screen: %v", err)
	}
	t.Cleanup(func() {
		screen.Fini()
	})
	screen.SetSize(w, h)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		mainc, combc, _, _ := screen.GetContent(x, y)
		if mainc == 0 {
			mainc = ' '
		}
		b.WriteRune(mainc)
		for _, c := range combc {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func styleAt(screen tcell.Screen, x, y int) tcell.Style {
	_, _, style, _ := screen.GetContent(x, y)
	return style
}

func TestMeasurerAddsPadding(t *testing.T) {
	m := Measurer{}
	if got := m.TextWidth("abc"); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	if got := m.TextWidth("日本"); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
	if got := m.TextWidth(""); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestRenderFlowRow(t *testing.T) {
	screen := newTestScreen(t, 40, 5)
	r := NewRenderer(screen, Options{})

	r.Render(layout.View{
		Prompt:      "run",
		PromptWidth: 5,
		Input:       "ab",
		InputX:      5,
		InputWidth:  10,
		Cursor:      2,
		Items: []layout.Item{
			{Text: "one", X: 15, Width: 5, Selected: true},
			{Text: "two", X: 20, Width: 5},
		},
		ShowMore: true,
		MoreX:    37,
	})

	want := " run " + " ab" + strings.Repeat(" ", 7) + " one " + " two " + strings.Repeat(" ", 12) + " > "
	if got := rowText(screen, 0); got != want {
		t.Fatalf("row mismatch\n got %q\nwant %q", got, want)
	}

	theme := GetColorTheme()
	if styleAt(screen, 1, 0) != theme.sel() {
		t.Fatalf("expected prompt in selected style")
	}
	if styleAt(screen, 16, 0) != theme.sel() {
		t.Fatalf("expected selected item in selected style")
	}
	if styleAt(screen, 21, 0) != theme.norm() {
		t.Fatalf("expected plain item in normal style")
	}

	x, y, visible := screen.GetCursor()
	if !visible || x != 8 || y != 0 {
		t.Fatalf("cursor = (%d,%d,%v), want (8,0,true)", x, y, visible)
	}
}

func TestRenderBackGlyph(t *testing.T) {
	screen := newTestScreen(t, 30, 3)
	r := NewRenderer(screen, Options{})

	r.Render(layout.View{
		InputWidth: 6,
		Items:      []layout.Item{{Text: "z", X: 9, Width: 3}},
		ShowBack:   true,
		BackX:      6,
	})

	row := rowText(screen, 0)
	if row[6:12] != " <  z " {
		t.Fatalf("unexpected row %q", row)
	}
}

func TestRenderTruncatesItems(t *testing.T) {
	screen := newTestScreen(t, 20, 2)
	r := NewRenderer(screen, Options{})

	r.Render(layout.View{
		InputWidth: 4,
		Items:      []layout.Item{{Text: "verylongname", X: 4, Width: 6}},
	})

	row := []rune(rowText(screen, 0))
	if got := string(row[4:10]); got != " ver… " {
		t.Fatalf("expected truncated label, got %q", got)
	}
}

func TestRenderOutItems(t *testing.T) {
	screen := newTestScreen(t, 20, 2)
	r := NewRenderer(screen, Options{})

	r.Render(layout.View{
		InputWidth: 4,
		Items: []layout.Item{
			{Text: "a", X: 4, Width: 3, Out: true},
			{Text: "b", X: 7, Width: 3, Out: true, Selected: true},
		},
	})

	theme := GetColorTheme()
	if styleAt(screen, 5, 0) != theme.out() {
		t.Fatalf("expected out style for committed item")
	}
	if styleAt(screen, 8, 0) != theme.sel() {
		t.Fatalf("selection should win over out style")
	}
}

func TestRenderVerticalAtBottom(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewRenderer(screen, Options{Bottom: true, Lines: 3})

	r.Render(layout.View{
		Input:      "q",
		InputWidth: 20,
		Cursor:     1,
		Items: []layout.Item{
			{Text: "first", Y: 1, Width: 20, Selected: true},
			{Text: "second", Y: 2, Width: 20},
		},
	})

	if got := strings.TrimSpace(rowText(screen, 6)); got != "q" {
		t.Fatalf("expected prompt row at 6, got %q", got)
	}
	if got := strings.TrimSpace(rowText(screen, 7)); got != "first" {
		t.Fatalf("expected first item on row 7, got %q", got)
	}
	if got := strings.TrimSpace(rowText(screen, 8)); got != "second" {
		t.Fatalf("expected second item on row 8, got %q", got)
	}
	if got := strings.TrimSpace(rowText(screen, 0)); got != "" {
		t.Fatalf("expected empty top row, got %q", got)
	}
	_, y, _ := screen.GetCursor()
	if y != 6 {
		t.Fatalf("cursor row = %d, want 6", y)
	}
}

func TestRenderShowsMatcherError(t *testing.T) {
	screen := newTestScreen(t, 40, 2)
	r := NewRenderer(screen, Options{})

	r.Render(layout.View{
		Input:      "(",
		InputWidth: 40,
		Cursor:     1,
		Error:      "bad pattern",
	})

	row := rowText(screen, 0)
	if !strings.HasPrefix(row, " ( bad pattern") {
		t.Fatalf("expected error after input, got %q", row)
	}
	if styleAt(screen, 4, 0) != GetColorTheme().norm().Foreground(tcell.ColorRed) {
		t.Fatalf("expected error style")
	}
}

func TestRenderSanitizesControlRunes(t *testing.T) {
	screen := newTestScreen(t, 20, 2)
	r := NewRenderer(screen, Options{})

	r.Render(layout.View{
		InputWidth: 4,
		Items:      []layout.Item{{Text: "a\x1b[2Jb", X: 4, Width: 10}},
	})

	row := rowText(screen, 0)
	if !strings.Contains(row, "a?[2Jb") {
		t.Fatalf("expected escape replaced, got %q", row)
	}
}

func TestScrollInput(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		width      int
		wantText   string
		wantCursor int
	}{
		{"fits", "abc", 3, 5, "abc", 3},
		{"scrolls", "abcdef", 6, 4, "def", 3},
		{"cursor mid", "abcdef", 4, 4, "bcdef", 3},
		{"wide clusters", "日本語", 6, 4, "語", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, cursor := scrollInput(tt.text, tt.cursor, tt.width)
			if text != tt.wantText || cursor != tt.wantCursor {
				t.Fatalf("got (%q,%d), want (%q,%d)", text, cursor, tt.wantText, tt.wantCursor)
			}
		})
	}
}
