package index

// Post is one article from the site index.
type Post struct {
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Content   string `json:"content"`
	Permalink string `json:"permalink"`
}

// Tag and Category are name+link records. They are distinct types because the
// widget renders them into separate lists with different fragments.
type Tag struct {
	Name      string `json:"name"`
	Permalink string `json:"permalink"`
}

type Category struct {
	Name      string `json:"name"`
	Permalink string `json:"permalink"`
}

// Document is the shape of the fetched index JSON. Missing arrays decode to
// nil, which every consumer treats as empty.
type Document struct {
	Posts      []Post     `json:"posts"`
	Tags       []Tag      `json:"tags"`
	Categories []Category `json:"categories"`
}

// NormalizedPost carries a post plus its whitespace-stripped shadow fields.
// The shadows are what the fuzzy engine searches; they are never shown.
type NormalizedPost struct {
	Post
	TitleN   string
	SummaryN string
	ContentN string
}

type NormalizedTag struct {
	Tag
	NameN string
}

type NormalizedCategory struct {
	Category
	NameN string
}

// Store holds the original records and their normalized shadows. Built once
// when the index document arrives, read-only afterwards.
type Store struct {
	Posts      []Post
	Tags       []Tag
	Categories []Category

	PostsN      []NormalizedPost
	TagsN       []NormalizedTag
	CategoriesN []NormalizedCategory
}

// NewStore builds the normalized shadow copies for a fetched document.
func NewStore(doc Document) *Store {
	s := &Store{
		Posts:      doc.Posts,
		Tags:       doc.Tags,
		Categories: doc.Categories,
	}
	for _, p := range doc.Posts {
		s.PostsN = append(s.PostsN, NormalizedPost{
			Post:     p,
			TitleN:   Normalize(p.Title),
			SummaryN: Normalize(p.Summary),
			ContentN: Normalize(p.Content),
		})
	}
	for _, t := range doc.Tags {
		s.TagsN = append(s.TagsN, NormalizedTag{Tag: t, NameN: Normalize(t.Name)})
	}
	for _, c := range doc.Categories {
		s.CategoriesN = append(s.CategoriesN, NormalizedCategory{Category: c, NameN: Normalize(c.Name)})
	}
	return s
}

// LookupPost resolves a normalized match back to its original post. Title
// alone is ambiguous (two posts can normalize to the same title), so the
// permalink has to match too. Falls back to the embedded original if nothing
// matches exactly; that shouldn't happen for a store-built record.
func (s *Store) LookupPost(n NormalizedPost) Post {
	permN := Normalize(n.Permalink)
	for _, p := range s.Posts {
		if Normalize(p.Title) == n.TitleN && Normalize(p.Permalink) == permN {
			return p
		}
	}
	return n.Post
}

func (s *Store) LookupTag(n NormalizedTag) Tag {
	for _, t := range s.Tags {
		if Normalize(t.Name) == n.NameN {
			return t
		}
	}
	return n.Tag
}

func (s *Store) LookupCategory(n NormalizedCategory) Category {
	for _, c := range s.Categories {
		if Normalize(c.Name) == n.NameN {
			return c
		}
	}
	return n.Category
}
