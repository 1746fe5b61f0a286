package search

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// DefaultLimit caps a search when the caller doesn't set one.
const DefaultLimit = 30

// Options is the recognized tuning surface for an Engine. The zero value is
// not useful; start from DefaultOptions.
//
// Scores are normalized distances: 0 is a perfect match, 1 the worst
// accepted. A field that contains the query outright scores 0 no matter
// where the occurrence sits; a scattered subsequence is scored by how
// contiguous it is relative to the query matched against itself. Threshold
// keeps matches scoring at or below it. Location and Distance only apply
// when IgnoreLocation is false: the match's offset from Location, scaled by
// Distance, is added as a penalty. FindAllMatches is accepted for
// configuration parity; the matcher always scores the whole field.
type Options struct {
	IsCaseSensitive    bool
	IncludeScore       bool
	IncludeMatches     bool
	MinMatchCharLength int
	ShouldSort         bool
	FindAllMatches     bool
	Location           int
	Threshold          float64
	Distance           int
	IgnoreLocation     bool
}

// DefaultOptions is the built-in profile used when no external configuration
// is present.
func DefaultOptions() Options {
	return Options{
		MinMatchCharLength: 1,
		ShouldSort:         true,
		Threshold:          0.4,
		Distance:           100,
		IgnoreLocation:     true,
	}
}

// Doc is one searchable record: an ID the caller maps back to its own data,
// plus named field values (normalized by the caller before indexing).
type Doc struct {
	ID     int
	Fields map[string]string
}

// Match is one ranked result. Key names the field that produced the best
// score for the doc. Spans are byte offsets into that field's (normalized)
// text and are only populated when IncludeMatches is set.
type Match struct {
	ID    int
	Key   string
	Score float64
	Spans []Span
}

// Engine is a ranked fuzzy matcher over a fixed set of docs and keys, built
// on sahilm/fuzzy. One engine per record type; the docs are read-only after
// construction.
type Engine struct {
	docs []Doc
	keys []string
	opts Options
}

func NewEngine(docs []Doc, keys []string, opts Options) *Engine {
	return &Engine{docs: docs, keys: keys, opts: opts}
}

// fieldSource adapts one key's values to fuzzy.Source.
type fieldSource struct {
	docs []Doc
	key  string
}

func (s fieldSource) String(i int) string { return s.docs[i].Fields[s.key] }
func (s fieldSource) Len() int            { return len(s.docs) }

// Search returns ranked matches for the query, best first when ShouldSort is
// set, capped at limit (DefaultLimit when limit <= 0). Each doc appears at
// most once, scored by its best field.
func (e *Engine) Search(query string, limit int) []Match {
	if e == nil || query == "" || len(e.docs) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if minLen := e.opts.MinMatchCharLength; minLen > 1 && utf8.RuneCountInString(query) < minLen {
		return nil
	}

	// The query matched against itself is the scoring ceiling: a full
	// adjacency chain with no positional terms. Scaling against it turns a
	// match's chain score into a 0-is-perfect distance so Threshold behaves
	// the way the option promises.
	baseline := chainScore(query, runeStarts(query))

	best := make(map[int]Match)
	for _, key := range e.keys {
		src := fieldSource{docs: e.docs, key: key}
		for _, fm := range fuzzy.FindFrom(query, src) {
			field := src.String(fm.Index)

			var score float64
			var spans []Span
			if pos := containsAt(field, query, e.opts.IsCaseSensitive); pos >= 0 {
				// The field contains the query outright: a perfect match
				// wherever it sits. The library's own score would bury this
				// under its leading-offset and field-length penalties.
				if e.opts.IncludeMatches {
					spans = []Span{{Start: pos, End: pos + len(query) - 1}}
				}
				if !e.opts.IgnoreLocation && e.opts.Distance > 0 {
					score = math.Abs(float64(pos-e.opts.Location)) / float64(e.opts.Distance)
				}
			} else {
				if e.opts.IsCaseSensitive && !caseExact(field, query, fm.MatchedIndexes) {
					continue
				}
				score = 1
				if baseline > 0 {
					score = 1 - float64(chainScore(field, fm.MatchedIndexes))/float64(baseline)
					score = math.Max(0, math.Min(1, score))
				}
				if !e.opts.IgnoreLocation && e.opts.Distance > 0 && len(fm.MatchedIndexes) > 0 {
					score += math.Abs(float64(fm.MatchedIndexes[0]-e.opts.Location)) / float64(e.opts.Distance)
				}
				if e.opts.IncludeMatches {
					spans = spansFromIndexes(fm.MatchedIndexes, e.opts.MinMatchCharLength)
				}
			}
			if score > e.opts.Threshold {
				continue
			}

			id := e.docs[fm.Index].ID
			if prev, ok := best[id]; ok && prev.Score <= score {
				continue
			}
			best[id] = Match{ID: id, Key: key, Score: score, Spans: spans}
		}
	}

	matches := make([]Match, 0, len(best))
	for _, m := range best {
		matches = append(matches, m)
	}
	if e.opts.ShouldSort {
		sort.SliceStable(matches, func(i, j int) bool {
			if matches[i].Score != matches[j].Score {
				return matches[i].Score < matches[j].Score
			}
			return matches[i].ID < matches[j].ID
		})
	} else {
		// Map iteration order is random; restore corpus order.
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	}
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Bonus terms mirrored from sahilm/fuzzy, so a match can be rescored without
// the terms that depend on where it sits in the field.
const (
	adjacentBonus  = 5
	separatorBonus = 20
	camelBonus     = 20
)

// containsAt returns the byte offset of query inside field, or -1. Folded
// lookup unless the engine is case-sensitive.
func containsAt(field, query string, caseSensitive bool) int {
	if caseSensitive {
		return strings.Index(field, query)
	}
	return strings.Index(strings.ToLower(field), strings.ToLower(query))
}

// chainScore replays the library's content bonuses over a match's indexes:
// compounding adjacency, camelCase, and match-after-separator. The terms
// that grow with the match's offset (leading-char penalty, first-char bonus)
// and with the field's byte length (unmatched-character penalty) are left
// out, so equal runs score equally wherever they sit, in however long a
// field.
func chainScore(text string, idxs []int) int {
	score, curr := 0, 0
	prevEnd := -1
	for _, idx := range idxs {
		if idx < 0 || idx >= len(text) {
			continue
		}
		r, size := utf8.DecodeRuneInString(text[idx:])
		if idx > 0 {
			last, _ := utf8.DecodeLastRuneInString(text[:idx])
			if unicode.IsLower(last) && unicode.IsUpper(r) {
				score += camelBonus
			}
			if strings.ContainsRune(`/-_ .\`, last) {
				score += separatorBonus
			}
		}
		if prevEnd == idx {
			bonus := curr*2 + adjacentBonus
			score += bonus
			curr += bonus
		}
		prevEnd = idx + size
	}
	return score
}

// runeStarts lists the byte index of every rune in s: the matched-index set
// of a string matched against itself.
func runeStarts(s string) []int {
	idxs := make([]int, 0, len(s))
	for i := range s {
		idxs = append(idxs, i)
	}
	return idxs
}

// caseExact reports whether every matched position in field carries the query
// rune with its original case. The library matches case-insensitively; this
// re-checks when the engine is configured case-sensitive.
func caseExact(field, query string, idxs []int) bool {
	runes := []rune(query)
	if len(idxs) != len(runes) {
		return false
	}
	for i, idx := range idxs {
		if idx < 0 || idx >= len(field) {
			return false
		}
		r, _ := utf8.DecodeRuneInString(field[idx:])
		if r != runes[i] {
			return false
		}
	}
	return true
}

// spansFromIndexes groups consecutive matched indexes into spans, dropping
// runs shorter than minLen when minLen > 1.
func spansFromIndexes(idxs []int, minLen int) []Span {
	if len(idxs) == 0 {
		return nil
	}
	var spans []Span
	cur := Span{Start: idxs[0], End: idxs[0]}
	for _, idx := range idxs[1:] {
		if idx == cur.End+1 {
			cur.End = idx
			continue
		}
		spans = append(spans, cur)
		cur = Span{Start: idx, End: idx}
	}
	spans = append(spans, cur)

	if minLen > 1 {
		kept := spans[:0]
		for _, sp := range spans {
			if sp.End-sp.Start+1 >= minLen {
				kept = append(kept, sp)
			}
		}
		spans = kept
	}
	if len(spans) == 0 {
		return nil
	}
	return spans
}
