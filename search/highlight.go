package search

import (
	"sort"
	"strings"
)

// Marker is the emphasis wrapper emitted around each highlighted span. Open
// and Close are written verbatim, so a marker can be HTML tags or terminal
// escape codes.
type Marker struct {
	Open  string
	Close string
}

// HTMLMarker is the marker for the HTML fragment output.
var HTMLMarker = Marker{Open: "<mark>", Close: "</mark>"}

// Highlight wraps each span of text in the marker. Spans may arrive unsorted,
// overlapping, or out of bounds: they are sorted by start, a span behind the
// cursor is skipped, and End is clamped to the last byte of text. Every byte
// of text appears in the output exactly once, inside or outside a marker.
func Highlight(text string, spans []Span, m Marker) string {
	if len(spans) == 0 || text == "" {
		return text
	}

	sorted := make([]Span, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	cursor := 0
	for _, sp := range sorted {
		if sp.Start < cursor || sp.Start >= len(text) {
			continue
		}
		end := sp.End
		if end > len(text)-1 {
			end = len(text) - 1
		}
		if end < sp.Start {
			continue
		}
		b.WriteString(text[cursor:sp.Start])
		b.WriteString(m.Open)
		b.WriteString(text[sp.Start : end+1])
		b.WriteString(m.Close)
		cursor = end + 1
	}
	b.WriteString(text[cursor:])
	return b.String()
}
