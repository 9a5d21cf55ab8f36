package textutil

import (
	"reflect"
	"testing"
)

func TestGraphemesKeepsClustersWhole(t *testing.T) {
	text := "ae\u0301\U0001f44d\U0001f3fbz"
	want := []string{"a", "e\u0301", "\U0001f44d\U0001f3fb", "z"}
	if got := Graphemes(text); !reflect.DeepEqual(got, want) {
		t.Fatalf("Graphemes(%q)=%q want %q", text, got, want)
	}
	if got := GraphemeCount(text); got != 4 {
		t.Fatalf("GraphemeCount=%d want 4", got)
	}
	if Graphemes("") != nil {
		t.Fatalf("expected nil clusters for empty text")
	}
}

func TestGraphemeOffset(t *testing.T) {
	text := "ae\u0301b"
	tests := []struct {
		index int
		want  int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{2, 4},
		{3, 5},
		{10, 5},
	}
	for _, tt := range tests {
		if got := GraphemeOffset(text, tt.index); got != tt.want {
			t.Fatalf("GraphemeOffset(%d)=%d want %d", tt.index, got, tt.want)
		}
	}
	if got := TakeGraphemes(text, 2); got != "ae\u0301" {
		t.Fatalf("TakeGraphemes=%q", got)
	}
}
