// Package editline implements the single-line query buffer. The cursor is a
// grapheme cluster index; byte offsets only appear when slicing the text.
package editline

import (
	"slices"
	"strings"

	textutil "github.com/kk-code-lab/rmenu/internal/textutil"
)

// Buffer holds the query text and the cursor position.
type Buffer struct {
	text   string
	cursor int
	// merge records the last Insert whose text fused with a neighbouring
	// cluster, so the next DeleteLeft can take back exactly that text.
	merge *mergedInsert
}

type mergedInsert struct {
	before       string
	beforeCursor int
	after        string
	afterCursor  int
}

// New returns a buffer containing text with the cursor at the end.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// Text returns the current query.
func (b *Buffer) Text() string {
	return b.text
}

// Cursor returns the cursor position in grapheme clusters.
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Len returns the number of grapheme clusters in the buffer.
func (b *Buffer) Len() int {
	return textutil.GraphemeCount(b.text)
}

// AtEnd reports whether the cursor sits after the last cluster.
func (b *Buffer) AtEnd() bool {
	return b.cursor >= b.Len()
}

// BeforeCursor returns the text left of the cursor.
func (b *Buffer) BeforeCursor() string {
	return b.text[:b.offset(b.cursor)]
}

// AfterCursor returns the text right of the cursor.
func (b *Buffer) AfterCursor() string {
	return b.text[b.offset(b.cursor):]
}

// SetText replaces the whole buffer and moves the cursor to the end.
func (b *Buffer) SetText(text string) bool {
	changed := b.text != text
	b.text = text
	b.cursor = textutil.GraphemeCount(text)
	return changed
}

// Insert splices text at the cursor and moves the cursor past it.
func (b *Buffer) Insert(text string) bool {
	if text == "" {
		return false
	}
	before, beforeCursor := b.text, b.cursor
	left, right := b.BeforeCursor(), b.AfterCursor()
	head := left + text
	b.text = head + right
	// The cursor is a cluster index, so a combining mark or a second regional
	// indicator that fuses with the cluster before it leaves the cursor after
	// the fused cluster rather than advancing it.
	b.cursor = min(textutil.GraphemeCount(head), b.Len())

	b.merge = nil
	if fuses(left, text, right) {
		b.merge = &mergedInsert{before: before, beforeCursor: beforeCursor, after: b.text, afterCursor: b.cursor}
	}
	return true
}

// fuses reports whether joining parts regroups clusters across a seam.
func fuses(parts ...string) bool {
	var separate []string
	for _, part := range parts {
		separate = append(separate, textutil.Graphemes(part)...)
	}
	return !slices.Equal(textutil.Graphemes(strings.Join(parts, "")), separate)
}

// Paste inserts clipboard text after stripping line breaks and expanding tabs.
func (b *Buffer) Paste(text string) bool {
	return b.Insert(textutil.SanitizePaste(text))
}

// DeleteLeft removes the cluster before the cursor. Right after an Insert that
// fused with a neighbouring cluster it removes only the inserted text.
func (b *Buffer) DeleteLeft() bool {
	if b.cursor == 0 {
		return false
	}
	if m := b.merge; m != nil && m.after == b.text && m.afterCursor == b.cursor {
		b.text, b.cursor = m.before, m.beforeCursor
		b.merge = nil
		return true
	}
	b.cut(b.cursor-1, b.cursor)
	b.cursor--
	return true
}

// DeleteRight removes the cluster under the cursor.
func (b *Buffer) DeleteRight() bool {
	if b.AtEnd() {
		return false
	}
	b.cut(b.cursor, b.cursor+1)
	return true
}

// DeleteWordLeft removes the spaces and then the word left of the cursor.
func (b *Buffer) DeleteWordLeft() bool {
	start := b.wordStartLeft()
	if start == b.cursor {
		return false
	}
	b.cut(start, b.cursor)
	b.cursor = start
	return true
}

// DeleteWordRight removes the spaces and then the word right of the cursor.
func (b *Buffer) DeleteWordRight() bool {
	end := b.wordEndRight()
	if end == b.cursor {
		return false
	}
	b.cut(b.cursor, end)
	return true
}

// ClearLeft drops everything left of the cursor.
func (b *Buffer) ClearLeft() bool {
	if b.cursor == 0 {
		return false
	}
	b.text = b.AfterCursor()
	b.cursor = 0
	return true
}

// ClearRight drops everything right of the cursor.
func (b *Buffer) ClearRight() bool {
	if b.AtEnd() {
		return false
	}
	b.text = b.BeforeCursor()
	return true
}

// Move shifts the cursor by delta clusters, clamped to the buffer. It reports
// whether the cursor moved.
func (b *Buffer) Move(delta int) bool {
	next := clamp(b.cursor+delta, 0, b.Len())
	if next == b.cursor {
		return false
	}
	b.cursor = next
	return true
}

// WordLeft moves the cursor to the start of the previous word.
func (b *Buffer) WordLeft() bool {
	return b.moveTo(b.wordStartLeft())
}

// WordRight moves the cursor past the end of the next word.
func (b *Buffer) WordRight() bool {
	return b.moveTo(b.wordEndRight())
}

// Home moves the cursor to the start of the buffer.
func (b *Buffer) Home() bool {
	return b.moveTo(0)
}

// End moves the cursor to the end of the buffer.
func (b *Buffer) End() bool {
	return b.moveTo(b.Len())
}

func (b *Buffer) moveTo(pos int) bool {
	if pos == b.cursor {
		return false
	}
	b.cursor = pos
	return true
}

// wordStartLeft scans left from the cursor over spaces, then over the word.
func (b *Buffer) wordStartLeft() int {
	clusters := textutil.Graphemes(b.text)
	i := b.cursor
	for i > 0 && isSpace(clusters[i-1]) {
		i--
	}
	for i > 0 && !isSpace(clusters[i-1]) {
		i--
	}
	return i
}

// wordEndRight scans right from the cursor over spaces, then over the word.
func (b *Buffer) wordEndRight() int {
	clusters := textutil.Graphemes(b.text)
	i := b.cursor
	for i < len(clusters) && isSpace(clusters[i]) {
		i++
	}
	for i < len(clusters) && !isSpace(clusters[i]) {
		i++
	}
	return i
}

// cut removes clusters [from, to).
func (b *Buffer) cut(from, to int) {
	start := b.offset(from)
	end := b.offset(to)
	b.text = b.text[:start] + b.text[end:]
}

func (b *Buffer) offset(index int) int {
	return textutil.GraphemeOffset(b.text, index)
}

func isSpace(cluster string) bool {
	return strings.TrimSpace(cluster) == ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
