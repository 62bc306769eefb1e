package tui

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsdesk/internal/analytics"
	"github.com/matheuskafuri/newsdesk/internal/api"
	"github.com/matheuskafuri/newsdesk/internal/browser"
	"github.com/matheuskafuri/newsdesk/internal/cache"
	"github.com/matheuskafuri/newsdesk/internal/logger"
	"github.com/matheuskafuri/newsdesk/internal/news"
	"github.com/matheuskafuri/newsdesk/internal/query"
	"github.com/matheuskafuri/newsdesk/internal/render"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenAnalytics
)

// Client is the part of the API the screens read from.
type Client interface {
	analytics.Source
	ListArticles(ctx context.Context, q api.ArticleQuery) (news.ArticlePage, error)
	GetArticle(ctx context.Context, id news.ID) (news.Article, error)
	ListCategories(ctx context.Context) ([]news.Category, error)
	ListSourceNames(ctx context.Context) ([]string, error)
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Client Client
	Prefs  cache.PrefStore
	Logger logger.Logger
	// Query seeds the list screen, e.g. "page=2&category=3".
	Query       url.Values
	PageSize    int
	TopKeywords int
	TrendDays   int
	// Open opens a URL in the system browser; browser.Open when nil.
	Open func(url string) error
}

type App struct {
	client      Client
	prefs       cache.PrefStore
	log         logger.Logger
	renderer    *render.Renderer
	open        func(string) error
	topKeywords int
	trendDays   int

	// ctx is the parent of every screen context; cancel stops the current
	// screen generation.
	ctx     context.Context
	stop    context.CancelFunc
	cancel  context.CancelFunc
	gen     int
	pending int

	state  appState
	screen screen
	help   bool

	list      listScreen
	detail    detailScreen
	dashboard dashboardScreen

	spinner     spinner.Model
	width       int
	height      int
	currentDate string
}

func NewApp(opts RunOpts) *App {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	prefs := opts.Prefs
	if prefs == nil {
		prefs = &cache.MemoryStore{}
	}
	open := opts.Open
	if open == nil {
		open = browser.Open
	}

	q := url.Values{}
	for k, v := range opts.Query {
		q[k] = append([]string(nil), v...)
	}
	if q.Get(query.KeySize) == "" && opts.PageSize > 0 && opts.PageSize != query.DefaultSize {
		q.Set(query.KeySize, strconv.Itoa(opts.PageSize))
	}

	dark, err := prefs.DarkMode()
	if err != nil {
		log.Warn("reading theme preference", logger.Error(err))
	}
	applyTheme(dark)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	trendDays := opts.TrendDays
	if trendDays < 1 {
		trendDays = api.DefaultTrendDays
	}

	ctx, stop := context.WithCancel(context.Background())

	return &App{
		client:      opts.Client,
		prefs:       prefs,
		log:         log,
		renderer:    render.New(),
		open:        open,
		topKeywords: opts.TopKeywords,
		trendDays:   trendDays,
		ctx:         ctx,
		stop:        stop,
		state:       appState{dark: dark},
		screen:      screenList,
		list:        newListScreen(q),
		spinner:     sp,
		currentDate: time.Now().Format("Jan 2"),
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadList()
}

func (a *App) quit() tea.Cmd {
	a.stop()
	return tea.Quit
}

func (a *App) reload() tea.Cmd {
	switch a.screen {
	case screenDetail:
		return a.loadDetail()
	case screenAnalytics:
		return a.loadDashboard()
	default:
		return a.loadList()
	}
}

func (a *App) toggleTheme() tea.Cmd {
	dark := !a.state.dark
	a.state = a.state.withDark(dark)
	applyTheme(dark)
	a.refreshDetail()
	a.refreshDashboard()

	prefs := a.prefs
	return guard(a.log, "theme", 0, func() tea.Msg {
		return themeSavedMsg{err: prefs.SetDarkMode(dark)}
	})
}

// fail records a primary fetch failure on the current screen and in the
// banner.
func (a *App) fail(err error) {
	switch a.screen {
	case screenDetail:
		a.detail.err = err
	case screenAnalytics:
		a.dashboard.err = err
	default:
		a.list.err = err
	}
	a.state = a.state.withErr(err)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.state = a.state.withErr(nil)
		return a.handleKey(msg)

	case articlesMsg:
		if !a.current(msg.gen) {
			return a, nil
		}
		a.settle()
		if msg.err != nil {
			a.fail(msg.err)
			return a, nil
		}
		a.list.page = msg.page
		if a.list.cursor >= len(a.list.page.Content) {
			a.list.cursor = max(0, len(a.list.page.Content)-1)
		}
		return a, nil

	case categoriesMsg:
		if !a.current(msg.gen) {
			return a, nil
		}
		a.settle()
		if msg.err != nil {
			a.fail(msg.err)
			return a, nil
		}
		a.list.categories.setTabs(categoryTabs(msg.categories))
		return a, nil

	case sourcesMsg:
		if !a.current(msg.gen) {
			return a, nil
		}
		a.settle()
		if msg.err != nil {
			a.fail(msg.err)
			return a, nil
		}
		a.list.sources.setTabs(sourceTabs(msg.names))
		return a, nil

	case articleMsg:
		if !a.current(msg.gen) {
			return a, nil
		}
		a.settle()
		if msg.err != nil {
			a.fail(msg.err)
			return a, nil
		}
		a.detail.article = msg.article
		a.detail.loaded = true
		a.refreshDetail()
		a.detail.viewport.GotoTop()
		return a, nil

	case dashboardMsg:
		if !a.current(msg.gen) {
			return a, nil
		}
		a.settle()
		if msg.err != nil {
			a.fail(msg.err)
			return a, nil
		}
		a.dashboard.data = msg.dashboard
		a.dashboard.loaded = true
		a.refreshDashboard()
		return a, nil

	case failureMsg:
		if msg.gen != 0 {
			if !a.current(msg.gen) {
				return a, nil
			}
			a.settle()
			a.fail(msg.err)
			return a, nil
		}
		a.log.Warn("command failed", logger.Error(msg.err))
		a.state = a.state.withErr(msg.err)
		return a, nil

	case themeSavedMsg:
		if msg.err != nil {
			a.log.Warn("saving theme preference", logger.Error(msg.err))
			a.state = a.state.withErr(fmt.Errorf("saving theme: %w", msg.err))
		}
		return a, nil

	case spinner.TickMsg:
		if a.state.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return a, a.quit()
	}

	if a.help {
		switch msg.String() {
		case "?", "esc", "q":
			a.help = false
		}
		return a, nil
	}

	// Text entry and pick modes own every key
	if a.screen == screenList {
		switch a.list.mode {
		case listSearch:
			return a.handleSearchKey(msg)
		case listPickCategory, listPickSource:
			return a.handlePickKey(msg)
		}
	}

	switch msg.String() {
	case "q":
		return a, a.quit()
	case "?":
		a.help = true
		return a, nil
	case "t":
		return a, a.toggleTheme()
	case "r":
		return a, a.reload()
	case "a":
		if a.screen != screenAnalytics {
			return a, a.openAnalytics()
		}
		return a, nil
	}

	switch a.screen {
	case screenDetail:
		return a.handleDetailKey(msg)
	case screenAnalytics:
		return a.handleDashboardKey(msg)
	default:
		return a.handleListKey(msg)
	}
}

// viewportHeight leaves room for the header and the status bar.
func (a *App) viewportHeight() int {
	return max(a.height-2, 3)
}

func (a *App) resize() {
	w, h := a.width, a.viewportHeight()
	a.detail.viewport.Width, a.detail.viewport.Height = w, h
	a.dashboard.viewport.Width, a.dashboard.viewport.Height = w, h
	a.list.search.Width = max(w-4, 10)
	a.refreshDetail()
	a.refreshDashboard()
}

func (a *App) renderHeader(title string) string {
	headerLeft := headerStyle.Render("newsdesk") + itemTimeStyle.Render(" · "+title)
	headerRight := headerDateStyle.Render(a.currentDate)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	return headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight
}

func (a *App) withBottomBar(content string, hints string) string {
	bar := renderStatusBar(a.statusLeft(), hints, a.width)
	lines := strings.Split(content, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) >= a.height {
		lines = lines[:max(a.height-1, 0)]
	}
	lines = append(lines, bar)
	return strings.Join(lines, "\n")
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newsdesk")
	}

	if a.help {
		return a.withBottomBar(a.renderHelp(), "? close  q quit")
	}

	switch a.screen {
	case screenDetail:
		return a.viewDetail()
	case screenAnalytics:
		return a.viewDashboard()
	default:
		return a.viewList()
	}
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("newsdesk")
	dim := helpDimStyle

	help := title + dim.Render(" · keyboard shortcuts") + "\n\n" +
		dim.Render("Articles") + "\n" +
		"  j/k, ↑/↓      Move through the list\n" +
		"  enter         Open article\n" +
		"  ←/→, p/n      Previous / next page\n" +
		"  /             Search\n" +
		"  c / s         Pick category / source\n" +
		"  x             Reset category and source\n" +
		"  o             Cycle sort order\n" +
		"  esc           Back to the previous query\n\n" +
		dim.Render("Article") + "\n" +
		"  j/k, pgup/pgdn Scroll\n" +
		"  o             Open source in browser\n" +
		"  esc           Back to the list\n\n" +
		dim.Render("General") + "\n" +
		"  a             Analytics\n" +
		"  r             Retry / reload\n" +
		"  t             Toggle dark theme\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c     Quit"

	card := helpCardStyle.Render(help)

	return lipgloss.Place(a.width, a.height-1, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	defer app.stop()
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
