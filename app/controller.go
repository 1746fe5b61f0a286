package app

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/montrey/fastsearch/index"
	"github.com/montrey/fastsearch/search"
)

// Outcome is what a keystroke's search decided the view should do.
type Outcome int

const (
	// OutcomeReset: the query is empty. Show per-list empty states and hide
	// the overall banner.
	OutcomeReset Outcome = iota
	// OutcomeNoOp: the query normalized to nothing. Leave the previous
	// render untouched.
	OutcomeNoOp
	// OutcomeRender: the lists and banner flag below are authoritative.
	OutcomeRender
)

// Hit is one renderable result with highlighting already applied.
type Hit struct {
	Title     string // highlighted display text (post title or tag/category name)
	Snippet   string // highlighted content excerpt with ellipses, posts only
	Permalink string
	Label     string // plain text, for labels
}

// Results is the full outcome of one keystroke cycle.
type Results struct {
	Outcome    Outcome
	Tags       []Hit
	Categories []Hit
	Posts      []Hit
	ShowBanner bool
}

// Total is the hit count across all three lists.
func (r Results) Total() int {
	return len(r.Tags) + len(r.Categories) + len(r.Posts)
}

// snippetPad is how many characters of original content surround a matched
// run in a post snippet, on each side.
const snippetPad = 40

// Controller owns the index store and the three engines built over it. It is
// the whole pipeline for one keystroke: normalize the query, fan out to the
// engines, map hits back to original records, highlight, and decide the
// empty-state presentation.
type Controller struct {
	store  *index.Store
	posts  *search.Engine
	tags   *search.Engine
	cats   *search.Engine
	limit  int
	marker search.Marker
}

// New builds a controller for a loaded store. A nil store behaves as an empty
// one: every search lands on the overall "no results" state.
func New(store *index.Store, opts search.Options, limit int, marker search.Marker) *Controller {
	if store == nil {
		store = &index.Store{}
	}
	if limit <= 0 {
		limit = search.DefaultLimit
	}

	postDocs := make([]search.Doc, 0, len(store.PostsN))
	for i, p := range store.PostsN {
		postDocs = append(postDocs, search.Doc{ID: i, Fields: map[string]string{
			"title_n":   p.TitleN,
			"summary_n": p.SummaryN,
			"content_n": p.ContentN,
		}})
	}
	tagDocs := make([]search.Doc, 0, len(store.TagsN))
	for i, t := range store.TagsN {
		tagDocs = append(tagDocs, search.Doc{ID: i, Fields: map[string]string{"name_n": t.NameN}})
	}
	catDocs := make([]search.Doc, 0, len(store.CategoriesN))
	for i, c := range store.CategoriesN {
		catDocs = append(catDocs, search.Doc{ID: i, Fields: map[string]string{"name_n": c.NameN}})
	}

	return &Controller{
		store:  store,
		posts:  search.NewEngine(postDocs, []string{"title_n", "summary_n", "content_n"}, opts),
		tags:   search.NewEngine(tagDocs, []string{"name_n"}, opts),
		cats:   search.NewEngine(catDocs, []string{"name_n"}, opts),
		limit:  limit,
		marker: marker,
	}
}

// Search runs one full keystroke cycle for the raw input value. The engines
// see the whitespace-stripped query; highlighting and snippets come from an
// independent loose-pattern scan of the original text, so a fuzzy-only hit
// can render with a plain title and no snippet.
func (c *Controller) Search(raw string) Results {
	term := strings.TrimSpace(raw)
	if term == "" {
		return Results{Outcome: OutcomeReset}
	}

	sanitized := index.Normalize(term)
	if sanitized == "" {
		// TrimSpace and Normalize strip the same character class, so a
		// non-empty term shouldn't normalize to nothing. If it somehow
		// does, keep the previous render.
		return Results{Outcome: OutcomeNoOp}
	}

	loose := search.CompileLoose(term)

	tagMatches := c.tags.Search(sanitized, c.limit)
	catMatches := c.cats.Search(sanitized, c.limit)
	postMatches := c.posts.Search(sanitized, c.limit)

	res := Results{Outcome: OutcomeRender}
	if len(tagMatches)+len(catMatches)+len(postMatches) == 0 {
		// Nothing matched anywhere: only the overall banner, no per-list
		// placeholders, to avoid duplicate messaging.
		res.ShowBanner = true
		return res
	}

	for _, m := range tagMatches {
		orig := c.store.LookupTag(c.store.TagsN[m.ID])
		res.Tags = append(res.Tags, Hit{
			Title:     search.Highlight(orig.Name, search.FindAllSpans(loose, orig.Name), c.marker),
			Permalink: orig.Permalink,
			Label:     orig.Name,
		})
	}
	for _, m := range catMatches {
		orig := c.store.LookupCategory(c.store.CategoriesN[m.ID])
		res.Categories = append(res.Categories, Hit{
			Title:     search.Highlight(orig.Name, search.FindAllSpans(loose, orig.Name), c.marker),
			Permalink: orig.Permalink,
			Label:     orig.Name,
		})
	}
	for _, m := range postMatches {
		orig := c.store.LookupPost(c.store.PostsN[m.ID])
		res.Posts = append(res.Posts, Hit{
			Title:     search.Highlight(orig.Title, search.FindAllSpans(loose, orig.Title), c.marker),
			Snippet:   c.snippet(orig.Content, loose),
			Permalink: orig.Permalink,
			Label:     orig.Title,
		})
	}

	// Defensive double-check after rendering; with hits above this stays
	// false.
	res.ShowBanner = res.Total() == 0
	return res
}

// snippet returns a highlighted excerpt around the first loose match in
// content: snippetPad original characters on each side of the matched run, with
// ellipsis markers where the excerpt was clamped. Empty when the pattern
// finds nothing in the content.
func (c *Controller) snippet(content string, loose *regexp.Regexp) string {
	spans := search.FindAllSpans(loose, content)
	if len(spans) == 0 {
		return ""
	}
	first := spans[0]

	// Pad by characters, not bytes, so multibyte content keeps a full
	// window.
	s := first.Start
	for n := 0; n < snippetPad && s > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(content[:s])
		s -= size
	}
	e := first.End + 1
	if e > len(content) {
		e = len(content)
	}
	for n := 0; n < snippetPad && e < len(content); n++ {
		_, size := utf8.DecodeRuneInString(content[e:])
		e += size
	}

	slice := content[s:e]
	out := search.Highlight(slice, search.FindAllSpans(loose, slice), c.marker)
	if s > 0 {
		out = "..." + out
	}
	if e < len(content) {
		out += "..."
	}
	return out
}
