// Package password masks the query in the input box.
package password

import (
	"strings"

	textutil "github.com/kk-code-lab/rmenu/internal/textutil"
)

type Formatter struct{}

func New() Formatter {
	return Formatter{}
}

// FormatInput draws one asterisk per grapheme so the cursor still lines up.
func (Formatter) FormatInput(text string) string {
	return strings.Repeat("*", textutil.GraphemeCount(text))
}
