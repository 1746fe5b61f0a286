package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/fastsearch/app"
	"github.com/montrey/fastsearch/search"
)

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	bannerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	matchStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// MatchMarker returns a search.Marker that styles matched runs for the
// terminal. It renders a sentinel through the match style and splits around
// it, so the marker follows the active color profile (and degrades to no-op
// markers when colors are off).
func MatchMarker() search.Marker {
	const sentinel = "\x00"
	parts := strings.SplitN(matchStyle.Render(sentinel), sentinel, 2)
	if len(parts) != 2 {
		return search.Marker{}
	}
	return search.Marker{Open: parts[0], Close: parts[1]}
}

// Model renders the three result lists plus the overall "no results" banner,
// and tracks a selection across them. The hit text arrives already
// highlighted; selection is shown by the cursor prefix so the two stylings
// don't fight.
type Model struct {
	Width  int
	Height int

	// Placeholder is the per-list empty-state message; Banner the overall
	// one.
	Placeholder string
	Banner      string

	tags       []app.Hit
	categories []app.Hit
	posts      []app.Hit
	showBanner bool
	selected   int
}

func NewModel(width, height int, placeholder, banner string) Model {
	return Model{Width: width, Height: height, Placeholder: placeholder, Banner: banner}
}

// SetResults replaces the lists with a rendered search outcome.
func (m *Model) SetResults(r app.Results) {
	m.tags = r.Tags
	m.categories = r.Categories
	m.posts = r.Posts
	m.showBanner = r.ShowBanner
	m.selected = 0
}

// Reset returns to the empty-query state: per-list placeholders, no banner.
func (m *Model) Reset() {
	m.tags = nil
	m.categories = nil
	m.posts = nil
	m.showBanner = false
	m.selected = 0
}

func (m Model) total() int {
	return len(m.tags) + len(m.categories) + len(m.posts)
}

// SelectedHit returns the hit under the cursor, or false when there is none.
func (m Model) SelectedHit() (app.Hit, bool) {
	i := m.selected
	if i < 0 || i >= m.total() {
		return app.Hit{}, false
	}
	if i < len(m.tags) {
		return m.tags[i], true
	}
	i -= len(m.tags)
	if i < len(m.categories) {
		return m.categories[i], true
	}
	i -= len(m.categories)
	return m.posts[i], true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up":
			if m.selected > 0 {
				m.selected--
			}
		case "down":
			if m.selected < m.total()-1 {
				m.selected++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var lines []string
	selectedLine := 0
	cursor := 0

	section := func(title string, hits []app.Hit, post bool) {
		lines = append(lines, headerStyle.Render(title))
		if len(hits) == 0 {
			if !m.showBanner {
				lines = append(lines, "  "+placeholderStyle.Render(m.Placeholder))
			}
			return
		}
		for _, h := range hits {
			prefix := "  "
			if cursor == m.selected {
				prefix = selectedStyle.Render("> ")
				selectedLine = len(lines)
			}
			lines = append(lines, prefix+h.Title)
			if post && h.Snippet != "" {
				lines = append(lines, "    "+h.Snippet)
			}
			lines = append(lines, "    "+dimStyle.Render(h.Permalink))
			cursor++
		}
	}

	section("Tags", m.tags, false)
	section("Categories", m.categories, false)
	section("Posts", m.posts, true)

	if m.showBanner {
		lines = append(lines, "", bannerStyle.Render(m.Banner))
	}

	// Keep the selection visible when the lists outgrow the window.
	if m.Height > 0 && len(lines) > m.Height {
		start := selectedLine - m.Height/2
		if start < 0 {
			start = 0
		}
		if start+m.Height > len(lines) {
			start = len(lines) - m.Height
		}
		lines = lines[start : start+m.Height]
	}

	return strings.Join(lines, "\n")
}
