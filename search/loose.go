package search

import (
	"regexp"
	"strings"
)

// Span marks a matched run of text. Start and End are byte offsets into the
// string the span was found in; End is the index of the last matched byte
// (inclusive).
type Span struct {
	Start int
	End   int
}

// CompileLoose builds a pattern that matches the term's characters in their
// original order anywhere in a target string, with any amount of whitespace
// (including none) allowed between consecutive characters. This is the
// highlighting side of the search: the fuzzy engine finds records against
// whitespace-stripped shadows, and this pattern re-locates the term in the
// original, unstripped text.
//
// Returns nil when there is nothing to match (empty or all-whitespace term)
// or when compilation fails. Highlighting is best-effort; a nil pattern just
// means plain text.
func CompileLoose(term string) *regexp.Regexp {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return nil
	}
	noSpaces := strings.Join(strings.Fields(trimmed), "")
	if noSpaces == "" {
		return nil
	}

	parts := make([]string, 0, len(noSpaces))
	for _, r := range noSpaces {
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}

	re, err := regexp.Compile("(?i)" + strings.Join(parts, `\s*`))
	if err != nil {
		return nil
	}
	return re
}

// FindAllSpans locates every non-overlapping match of the pattern in text,
// left to right. Each search resumes at the previous match's end, so spans
// never overlap; a zero-width match advances by one byte to guarantee
// forward progress.
func FindAllSpans(re *regexp.Regexp, text string) []Span {
	if re == nil || text == "" {
		return nil
	}

	var spans []Span
	offset := 0
	for offset <= len(text) {
		loc := re.FindStringIndex(text[offset:])
		if loc == nil {
			break
		}
		start, end := offset+loc[0], offset+loc[1]
		if end > start {
			spans = append(spans, Span{Start: start, End: end - 1})
			offset = end
		} else {
			offset = start + 1
		}
	}
	return spans
}
