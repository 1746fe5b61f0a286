package index

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "no whitespace", input: "abc", want: "abc"},
		{name: "spaces and newline deleted", input: "a b\nc", want: "abc"},
		{name: "tabs and runs", input: "  foo\t\tbar  ", want: "foobar"},
		{name: "only whitespace", input: " \n\t ", want: ""},
		{name: "unicode space", input: "a\u00a0b", want: "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
			// Idempotence: normalizing a normalized string changes nothing.
			if again := Normalize(got); again != got {
				t.Errorf("Normalize not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNewStoreBuildsShadows(t *testing.T) {
	doc := Document{
		Posts: []Post{
			{Title: "Hello World", Summary: "a b", Content: "line\none", Permalink: "/p/hello/"},
		},
		Tags:       []Tag{{Name: "go lang", Permalink: "/tags/go-lang/"}},
		Categories: []Category{{Name: "dev notes", Permalink: "/categories/dev/"}},
	}

	s := NewStore(doc)

	if len(s.PostsN) != 1 || len(s.TagsN) != 1 || len(s.CategoriesN) != 1 {
		t.Fatalf("unexpected shadow counts: %d/%d/%d", len(s.PostsN), len(s.TagsN), len(s.CategoriesN))
	}
	p := s.PostsN[0]
	if p.TitleN != "HelloWorld" || p.SummaryN != "ab" || p.ContentN != "lineone" {
		t.Errorf("post shadows wrong: %q %q %q", p.TitleN, p.SummaryN, p.ContentN)
	}
	if p.Title != "Hello World" {
		t.Errorf("original title must be preserved, got %q", p.Title)
	}
	if s.TagsN[0].NameN != "golang" {
		t.Errorf("tag shadow wrong: %q", s.TagsN[0].NameN)
	}
	if s.CategoriesN[0].NameN != "devnotes" {
		t.Errorf("category shadow wrong: %q", s.CategoriesN[0].NameN)
	}
}

func TestLookupPostDisambiguatesByPermalink(t *testing.T) {
	// Two posts with identical normalized titles must resolve to their own
	// originals, never to each other's.
	doc := Document{
		Posts: []Post{
			{Title: "Same Title", Content: "first", Permalink: "/p/one/"},
			{Title: "SameTitle", Content: "second", Permalink: "/p/two/"},
		},
	}
	s := NewStore(doc)

	for i, want := range doc.Posts {
		got := s.LookupPost(s.PostsN[i])
		if got.Permalink != want.Permalink || got.Content != want.Content {
			t.Errorf("post %d resolved to %+v, want %+v", i, got, want)
		}
	}
}

func TestLookupFallsBackToEmbeddedOriginal(t *testing.T) {
	s := NewStore(Document{Tags: []Tag{{Name: "go", Permalink: "/tags/go/"}}})

	// A normalized record not present in the store resolves to itself.
	stray := NormalizedTag{Tag: Tag{Name: "rust", Permalink: "/tags/rust/"}, NameN: "rust"}
	if got := s.LookupTag(stray); got.Name != "rust" {
		t.Errorf("expected fallback to embedded original, got %+v", got)
	}
}

func TestFetch(t *testing.T) {
	t.Run("success with missing arrays", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"posts":[{"title":"A","permalink":"/a/"}]}`))
		}))
		defer srv.Close()

		doc, err := Fetch(srv.Client(), srv.URL)
		if err != nil {
			t.Fatalf("Fetch failed: %v", err)
		}
		if len(doc.Posts) != 1 {
			t.Errorf("expected 1 post, got %d", len(doc.Posts))
		}
		// Absent tags/categories default to empty collections.
		if len(doc.Tags) != 0 || len(doc.Categories) != 0 {
			t.Errorf("expected empty tags/categories, got %d/%d", len(doc.Tags), len(doc.Categories))
		}
	})

	t.Run("non-success status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		if _, err := Fetch(srv.Client(), srv.URL); err == nil {
			t.Fatal("expected an error for 404")
		}
	})

	t.Run("bad json is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"posts":`))
		}))
		defer srv.Close()

		if _, err := Fetch(srv.Client(), srv.URL); err == nil {
			t.Fatal("expected an error for truncated json")
		}
	})
}
