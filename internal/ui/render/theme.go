package render

import "github.com/gdamore/tcell/v2"

// ColorTheme defines the fixed menu colors.
type ColorTheme struct {
	NormBg  tcell.Color
	NormFg  tcell.Color
	SelBg   tcell.Color
	SelFg   tcell.Color
	OutBg   tcell.Color
	OutFg   tcell.Color
	ErrorFg tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		NormBg:  tcell.ColorDefault,
		NormFg:  tcell.ColorDefault,
		SelBg:   tcell.Color33,
		SelFg:   tcell.ColorWhite,
		OutBg:   tcell.Color51,
		OutFg:   tcell.ColorBlack,
		ErrorFg: tcell.ColorRed,
	}
}

func (t ColorTheme) norm() tcell.Style {
	return tcell.StyleDefault.Background(t.NormBg).Foreground(t.NormFg)
}

func (t ColorTheme) sel() tcell.Style {
	return tcell.StyleDefault.Background(t.SelBg).Foreground(t.SelFg)
}

func (t ColorTheme) out() tcell.Style {
	return tcell.StyleDefault.Background(t.OutBg).Foreground(t.OutFg)
}
