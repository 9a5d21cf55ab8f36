package maxlength

import "testing"

func TestDisposesAtLimit(t *testing.T) {
	p, err := New(3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if res := p.PostprocessMatches("ab", nil); res.Dispose {
		t.Fatalf("disposed early: %+v", res)
	}
	if res := p.PostprocessMatches("abc", nil); !res.Dispose || res.Text != "abc" {
		t.Fatalf("at limit: %+v", res)
	}
	if res := p.PostprocessMatches("a\U0001f44d\U0001f3fbcdef", nil); !res.Dispose || res.Text != "a\U0001f44d\U0001f3fbc" {
		t.Fatalf("overshoot: %+v", res)
	}
}

func TestZeroLimitDisables(t *testing.T) {
	p, _ := New(0)
	if res := p.PostprocessMatches("anything at all", nil); res.Dispose {
		t.Fatalf("zero limit disposed: %+v", res)
	}
}

func TestNegativeLimitRejected(t *testing.T) {
	if _, err := New(-1); err == nil {
		t.Fatalf("expected error")
	}
}
