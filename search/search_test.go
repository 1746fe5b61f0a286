package search

import (
	"strings"
	"testing"
)

func TestCompileLoose(t *testing.T) {
	t.Run("empty and whitespace terms give no pattern", func(t *testing.T) {
		for _, term := range []string{"", "   ", "\n\t"} {
			if re := CompileLoose(term); re != nil {
				t.Errorf("CompileLoose(%q) = %v, want nil", term, re)
			}
		}
	})

	t.Run("matches across whitespace", func(t *testing.T) {
		re := CompileLoose("helloworld")
		if re == nil {
			t.Fatal("expected a pattern")
		}
		text := "hello   world"
		spans := FindAllSpans(re, text)
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		// The loose pattern must cover the whole phrase, whitespace included.
		if spans[0].Start != 0 || spans[0].End != len(text)-1 {
			t.Errorf("span = %+v, want [0,%d]", spans[0], len(text)-1)
		}
	})

	t.Run("internal whitespace in the term is ignored", func(t *testing.T) {
		re := CompileLoose("  he l\nlo ")
		if re == nil {
			t.Fatal("expected a pattern")
		}
		if spans := FindAllSpans(re, "hello"); len(spans) != 1 {
			t.Errorf("expected 1 span in %q, got %v", "hello", spans)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		re := CompileLoose("GoLang")
		if spans := FindAllSpans(re, "golang rocks"); len(spans) != 1 || spans[0].Start != 0 {
			t.Errorf("expected case-insensitive match at 0, got %v", spans)
		}
	})

	t.Run("metacharacters are escaped", func(t *testing.T) {
		re := CompileLoose("a.b*c")
		if re == nil {
			t.Fatal("expected a pattern")
		}
		if spans := FindAllSpans(re, "a.b*c"); len(spans) != 1 {
			t.Errorf("expected literal match, got %v", spans)
		}
		if spans := FindAllSpans(re, "axbxc"); spans != nil {
			t.Errorf("dot must not match arbitrary chars, got %v", spans)
		}
	})
}

func TestFindAllSpans(t *testing.T) {
	t.Run("nil pattern", func(t *testing.T) {
		if spans := FindAllSpans(nil, "text"); spans != nil {
			t.Errorf("expected nil, got %v", spans)
		}
	})

	t.Run("repeated non-overlapping matches in order", func(t *testing.T) {
		re := CompileLoose("ab")
		spans := FindAllSpans(re, "ab xx ab xx ab")
		if len(spans) != 3 {
			t.Fatalf("expected 3 spans, got %d: %v", len(spans), spans)
		}
		for i := 1; i < len(spans); i++ {
			if spans[i].Start <= spans[i-1].End {
				t.Errorf("spans overlap or out of order: %v", spans)
			}
		}
		want := []Span{{0, 1}, {6, 7}, {12, 13}}
		for i, sp := range spans {
			if sp != want[i] {
				t.Errorf("span %d = %+v, want %+v", i, sp, want[i])
			}
		}
	})
}

func TestHighlight(t *testing.T) {
	m := HTMLMarker

	t.Run("no spans returns text unchanged", func(t *testing.T) {
		if got := Highlight("hello", nil, m); got != "hello" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("wraps spans", func(t *testing.T) {
		got := Highlight("hello world", []Span{{0, 4}}, m)
		want := "<mark>hello</mark> world"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("clamps end to text bounds", func(t *testing.T) {
		got := Highlight("abc", []Span{{1, 99}}, m)
		want := "a<mark>bc</mark>"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("tolerates unsorted and overlapping spans", func(t *testing.T) {
		got := Highlight("abcdef", []Span{{3, 4}, {0, 1}, {2, 3}}, m)
		// After sorting, {2,3} lands exactly on the cursor and applies;
		// {3,4} is then behind the cursor and gets skipped.
		want := "<mark>ab</mark><mark>cd</mark>ef"
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("stripping markers restores the original", func(t *testing.T) {
		texts := []string{"", "a", "hello world", "안녕 세계", strings.Repeat("xy", 50)}
		spanSets := [][]Span{nil, {{0, 0}}, {{2, 5}, {7, 9}}, {{0, 3}, {4, 200}}}
		for _, text := range texts {
			for _, spans := range spanSets {
				out := Highlight(text, spans, m)
				stripped := strings.ReplaceAll(strings.ReplaceAll(out, m.Open, ""), m.Close, "")
				if stripped != text {
					t.Errorf("coverage broken for %q/%v: %q", text, spans, out)
				}
			}
		}
	})
}
