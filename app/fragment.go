package app

import (
	"fmt"
	"strings"
)

// Fragment builders reproduce the widget's HTML contract: a clickable
// post-entry item whose anchor carries the permalink, a header with the
// highlighted title, and for posts an entry-content block when a snippet was
// found. Hit text is emitted as-is; the marker is part of the markup.

// TagFragment renders one tag hit. Tags get a "#" prefix in the header.
func TagFragment(h Hit) string {
	return fmt.Sprintf("\n<li class=\"post-entry\"><header class=\"entry-header\"># %s</header><a href=%q aria-label=%q></a></li>",
		h.Title, h.Permalink, h.Label)
}

// CategoryFragment renders one category hit.
func CategoryFragment(h Hit) string {
	return fmt.Sprintf("\n<li class=\"post-entry\"><header class=\"entry-header\">%s</header><a href=%q aria-label=%q></a></li>",
		h.Title, h.Permalink, h.Label)
}

// PostFragment renders one post hit, with the snippet block when present.
func PostFragment(h Hit) string {
	snippet := ""
	if h.Snippet != "" {
		snippet = fmt.Sprintf("<div class=\"entry-content\">%s</div>", h.Snippet)
	}
	return fmt.Sprintf("\n<li class=\"post-entry\"><header class=\"entry-header\">%s&nbsp;»</header>%s<a href=%q aria-label=%q></a></li>",
		h.Title, snippet, h.Permalink, h.Label)
}

// RenderList concatenates builder output for each hit, or emits a single
// placeholder item when there are none. The returned count feeds the
// aggregate zero-check; it is 0 for the placeholder case.
func RenderList(hits []Hit, build func(Hit) string, placeholder string) (string, int) {
	if len(hits) == 0 {
		return fmt.Sprintf("<li class=\"no-results\">%s</li>", placeholder), 0
	}
	var b strings.Builder
	for _, h := range hits {
		b.WriteString(build(h))
	}
	return b.String(), len(hits)
}
