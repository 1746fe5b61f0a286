package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/montrey/fastsearch/app"
	"github.com/montrey/fastsearch/config"
	"github.com/montrey/fastsearch/index"
	"github.com/montrey/fastsearch/search"
	"github.com/montrey/fastsearch/store"
	"github.com/montrey/fastsearch/ui"
)

const overallBanner = "Nothing matched your search."

type indexLoadedMsg struct {
	store *index.Store
}

type indexFailedMsg struct {
	err error
}

type model struct {
	db      *sql.DB
	cfg     *config.Config
	input   textinput.Model
	results ui.Model
	ctrl    *app.Controller
	openCmd string

	width  int
	height int

	loaded  bool
	loadErr error
	opened  string // permalink opened on quit, printed for scripting
}

// loadIndex fetches the site index once. The fetch is the only suspension
// point; everything after the message lands runs on the event loop.
func loadIndex(cfg *config.Config) tea.Cmd {
	return func() tea.Msg {
		doc, err := index.Fetch(nil, cfg.IndexURL)
		if err != nil {
			return indexFailedMsg{err: err}
		}
		return indexLoadedMsg{store: index.NewStore(doc)}
	}
}

func initialModel(db *sql.DB, cfg *config.Config, openCmd string) model {
	ti := textinput.New()
	ti.Placeholder = "Search posts, tags, categories..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	// An empty controller until the index arrives: searching an unloaded
	// store degrades to "no results" instead of erroring.
	ctrl := app.New(nil, cfg.EngineOptions(), cfg.Limit(), ui.MatchMarker())

	return model{
		db:      db,
		cfg:     cfg,
		input:   ti,
		results: ui.NewModel(80, 20, cfg.NoResultsText, overallBanner),
		ctrl:    ctrl,
		openCmd: openCmd,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadIndex(m.cfg))
}

// runSearch executes one full keystroke cycle synchronously: fuzzy search,
// highlighting, and list updates all happen before the next event.
func (m *model) runSearch() {
	res := m.ctrl.Search(m.input.Value())
	switch res.Outcome {
	case app.OutcomeReset:
		m.results.Reset()
	case app.OutcomeNoOp:
		// Previous render stays.
	case app.OutcomeRender:
		m.results.SetResults(res)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case indexLoadedMsg:
		m.ctrl = app.New(msg.store, m.cfg.EngineOptions(), m.cfg.Limit(), ui.MatchMarker())
		m.loaded = true
		// Re-run whatever is typed so the lists catch up with the load.
		m.runSearch()

	case indexFailedMsg:
		// Non-fatal: the store stays empty for the session and searches
		// show the overall empty state.
		m.loadErr = msg.err
		m.loaded = true

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.results.Width = msg.Width
		m.results.Height = msg.Height - 4

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			// The widget's clear affordance.
			m.input.SetValue("")
			m.runSearch()
			return m, nil

		case "enter":
			hit, ok := m.results.SelectedHit()
			if !ok {
				return m, nil
			}
			if m.db != nil {
				_ = store.RecordVisit(m.db, hit.Permalink)
			}
			_ = openPermalink(m.openCmd, hit.Permalink)
			m.opened = hit.Permalink
			return m, tea.Quit

		case "up", "down":
			m.results, cmd = m.results.Update(msg)
			cmds = append(cmds, cmd)

		default:
			oldValue := m.input.Value()
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
			if m.input.Value() != oldValue {
				m.runSearch()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	status := ""
	if !m.loaded {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("loading index...")
	} else if m.loadErr != nil {
		status = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Render("index load failed: " + m.loadErr.Error())
	}

	help := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).
		Render("Enter: open • Esc: clear • Ctrl+C: quit")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.input.View(),
		m.results.View(),
		status,
		help,
	)
}

// openPermalink runs the configured open command with {url} substituted.
func openPermalink(cmdTemplate, url string) error {
	if cmdTemplate == "" || url == "" {
		return nil
	}
	cmdStr := strings.ReplaceAll(cmdTemplate, "{url}", url)
	cmd := exec.Command("bash", "-lc", cmdStr)
	return cmd.Start()
}

// runQuery is the non-interactive mode: one search, HTML fragments on
// stdout, exit status 1 when nothing matched.
func runQuery(cfg *config.Config, term string) int {
	var st *index.Store
	doc, err := index.Fetch(nil, cfg.IndexURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fastsearch: %v\n", err)
		st = &index.Store{}
	} else {
		st = index.NewStore(doc)
	}

	ctrl := app.New(st, cfg.EngineOptions(), cfg.Limit(), search.HTMLMarker)
	res := ctrl.Search(term)
	if res.Outcome != app.OutcomeRender {
		fmt.Fprintln(os.Stderr, "fastsearch: empty query")
		return 1
	}

	tagsHTML, _ := app.RenderList(res.Tags, app.TagFragment, cfg.NoResultsText)
	catsHTML, _ := app.RenderList(res.Categories, app.CategoryFragment, cfg.NoResultsText)
	postsHTML, _ := app.RenderList(res.Posts, app.PostFragment, cfg.NoResultsText)

	if res.ShowBanner {
		fmt.Println(overallBanner)
		return 1
	}
	fmt.Println(tagsHTML)
	fmt.Println(catsHTML)
	fmt.Println(postsHTML)
	return 0
}

func main() {
	configPath := flag.String("config", config.DefaultPath(), "Path to config file")
	indexURL := flag.String("index", "", "Index document URL (overrides config)")
	openCmdFlag := flag.String("open", "", "Open command template, {url} is the link (persisted)")
	query := flag.String("q", "", "Run one search and print HTML fragments")
	recent := flag.Bool("recent", false, "Print recently visited results and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fastsearch: %v\n", err)
		os.Exit(1)
	}
	if *indexURL != "" {
		cfg.IndexURL = *indexURL
	}

	if *query != "" {
		os.Exit(runQuery(cfg, *query))
	}

	home, _ := os.UserHomeDir()
	dbPath := filepath.Join(home, ".local", "share", "fastsearch", "fastsearch.db")
	db, err := store.InitDB(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fastsearch: failed to init db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if *recent {
		visits, err := store.GetRecentVisits(db, 20)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fastsearch: %v\n", err)
			os.Exit(1)
		}
		for _, v := range visits {
			fmt.Printf("%s\t%d\t%s\n", v.Permalink, v.Frequency, v.LastVisited.Format("2006-01-02 15:04"))
		}
		return
	}

	openCmd := cfg.OpenCmd
	if v, _ := store.OpenCmd(db); v != "" {
		openCmd = v
	}
	if *openCmdFlag != "" {
		openCmd = *openCmdFlag
		_ = store.SetOpenCmd(db, openCmd)
	}

	p := tea.NewProgram(initialModel(db, cfg, openCmd), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fastsearch: %v\n", err)
		os.Exit(1)
	}

	if m, ok := finalModel.(model); ok && m.opened != "" {
		fmt.Println(m.opened)
	}
}
