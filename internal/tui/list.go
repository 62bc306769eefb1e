package tui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsdesk/internal/news"
	"github.com/matheuskafuri/newsdesk/internal/query"
)

type listMode int

const (
	listBrowse listMode = iota
	listSearch
	listPickCategory
	listPickSource
)

type listScreen struct {
	query   url.Values
	history []url.Values

	page   news.ArticlePage
	cursor int
	mode   listMode
	err    error

	categories filterBar
	sources    filterBar
	search     textinput.Model
}

func newListScreen(q url.Values) listScreen {
	ti := textinput.New()
	ti.Placeholder = "Search articles..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	return listScreen{
		query:      q,
		categories: newFilterBar("category"),
		sources:    newFilterBar("source"),
		search:     ti,
	}
}

func (l *listScreen) state() query.State {
	return query.Decode(l.query)
}

func (l *listScreen) selected() (news.Article, bool) {
	if l.cursor < 0 || l.cursor >= len(l.page.Content) {
		return news.Article{}, false
	}
	return l.page.Content[l.cursor], true
}

// loadList fetches articles, categories and source names as three
// independent requests of one generation; each result fills only its own
// part of the screen.
func (a *App) loadList() tea.Cmd {
	ctx, gen := a.begin(3)
	a.list.err = nil
	req := a.list.state().Request()
	c := a.client

	return tea.Batch(
		guard(a.log, "articles", gen, func() tea.Msg {
			page, err := c.ListArticles(ctx, req)
			return articlesMsg{gen: gen, page: page, err: err}
		}),
		guard(a.log, "categories", gen, func() tea.Msg {
			categories, err := c.ListCategories(ctx)
			return categoriesMsg{gen: gen, categories: categories, err: err}
		}),
		guard(a.log, "sources", gen, func() tea.Msg {
			names, err := c.ListSourceNames(ctx)
			return sourcesMsg{gen: gen, names: names, err: err}
		}),
		a.spinner.Tick,
	)
}

// navigate replaces the list query, remembering the old one for esc.
func (a *App) navigate(next url.Values) tea.Cmd {
	a.list.history = append(a.list.history, a.list.query)
	a.list.query = next
	a.list.cursor = 0
	return a.loadList()
}

func (a *App) back() tea.Cmd {
	n := len(a.list.history)
	if n == 0 {
		return nil
	}
	a.list.query = a.list.history[n-1]
	a.list.history = a.list.history[:n-1]
	a.list.cursor = 0
	return a.loadList()
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := &a.list
	st := l.state()

	switch msg.String() {
	case "j", "down":
		if l.cursor < len(l.page.Content)-1 {
			l.cursor++
		}
		return a, nil
	case "k", "up":
		if l.cursor > 0 {
			l.cursor--
		}
		return a, nil
	case "enter":
		if art, ok := l.selected(); ok && !art.ID.IsZero() {
			return a, a.openDetail(art.ID)
		}
		return a, nil
	case "/":
		l.mode = listSearch
		l.search.SetValue(st.Search)
		l.search.CursorEnd()
		l.search.Focus()
		return a, textinput.Blink
	case "c":
		if len(l.categories.tabs) > 0 {
			l.mode = listPickCategory
			l.categories.filterMode = true
		}
		return a, nil
	case "s":
		if len(l.sources.tabs) > 0 {
			l.mode = listPickSource
			l.sources.filterMode = true
		}
		return a, nil
	case "x":
		if st.Category != "" || st.Source != "" {
			return a, a.navigate(query.ResetFilters(l.query))
		}
		return a, nil
	case "o":
		return a, a.navigate(query.WithSort(l.query, query.NextSort(st.Sort)))
	case "right", "n":
		if l.page.HasNext() {
			return a, a.navigate(query.WithPage(l.query, st.Page+1))
		}
		return a, nil
	case "left", "p":
		if st.Page > 0 {
			return a, a.navigate(query.WithPage(l.query, st.Page-1))
		}
		return a, nil
	case "esc", "backspace":
		return a, a.back()
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := &a.list
	switch msg.String() {
	case "esc":
		l.mode = listBrowse
		l.search.Blur()
		return a, nil
	case "enter":
		l.mode = listBrowse
		l.search.Blur()
		value := strings.TrimSpace(l.search.Value())
		if value == l.state().Search {
			return a, nil
		}
		return a, a.navigate(query.WithSearch(l.query, value))
	}

	var cmd tea.Cmd
	l.search, cmd = l.search.Update(msg)
	return a, cmd
}

func (a *App) handlePickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	l := &a.list
	st := l.state()

	bar, active, apply := &l.categories, st.Category, query.WithCategory
	if l.mode == listPickSource {
		bar, active, apply = &l.sources, st.Source, query.WithSource
	}
	done := func() {
		l.mode = listBrowse
		bar.filterMode = false
	}

	switch key := msg.String(); key {
	case "esc", "c", "s":
		done()
		return a, nil
	case "left", "h":
		bar.left()
		return a, nil
	case "right", "l":
		bar.right()
		return a, nil
	case " ", "enter":
		if value, ok := bar.pick(bar.filterCursor, active); ok {
			done()
			return a, a.navigate(apply(l.query, value))
		}
		return a, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if value, ok := bar.pick(idx, active); ok {
			bar.filterCursor = idx
			done()
			return a, a.navigate(apply(l.query, value))
		}
		return a, nil
	}
	return a, nil
}

func categoryTabs(categories []news.Category) []tab {
	tabs := make([]tab, 0, len(categories))
	for _, c := range categories {
		if c.ID.IsZero() || c.Name == "" {
			continue
		}
		tabs = append(tabs, tab{label: c.Name, value: c.ID.String()})
	}
	return tabs
}

func sourceTabs(names []string) []tab {
	tabs := make([]tab, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		tabs = append(tabs, tab{label: n, value: n})
	}
	return tabs
}

func (a *App) viewList() string {
	l := &a.list
	st := l.state()

	header := a.renderHeader("articles")
	categories := l.categories.render(st.Category, a.width)
	sources := l.sources.render(st.Source, a.width)

	line := renderQueryLine(st, &l.categories)
	if l.mode == listSearch {
		line = l.search.View()
	}

	// header, two filter rows, query line, page line, status bar
	bodyHeight := max(a.height-6, 3)
	var body string
	switch {
	case l.err != nil:
		body = renderErrorState(l.err, a.width, bodyHeight)
	case a.state.loading && len(l.page.Content) == 0:
		body = lipglossCenter(a.spinner.View()+" Loading articles...", a.width, bodyHeight)
	default:
		body = renderList(l.page.Content, l.cursor, bodyHeight, a.width-2)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	content := lipgloss.JoinVertical(lipgloss.Left,
		header, categories, sources, line, body, renderPageLine(st, l.page))

	hints := "/ search  c category  s source  o sort  ←/→ page  a analytics  ? help"
	switch l.mode {
	case listSearch:
		hints = "esc cancel  enter search"
	case listPickCategory, listPickSource:
		hints = "←/→ move  enter select  1-9 pick  esc done"
	}
	return a.withBottomBar(content, hints)
}

func renderQueryLine(st query.State, categories *filterBar) string {
	parts := []string{"sort: " + query.SortLabel(st.Sort)}
	if st.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", st.Search))
	}
	if st.Category != "" {
		parts = append(parts, "category: "+categories.labelOf(st.Category))
	}
	if st.Source != "" {
		parts = append(parts, "source: "+st.Source)
	}
	return itemTimeStyle.Render(" " + strings.Join(parts, " · "))
}

func renderPageLine(st query.State, page news.ArticlePage) string {
	total := max(page.TotalPages, 1)
	line := fmt.Sprintf(" page %d of %d · %d articles", st.Page+1, total, page.TotalElements)
	return itemTimeStyle.Render(line)
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

func renderListItem(a news.Article, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(a.Title, width-4))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(a.Title, width-4))
	}

	var meta []string
	if a.Category != "" {
		meta = append(meta, itemCategoryStyle.Render(a.Category))
	}
	if a.SourceName != "" {
		meta = append(meta, itemSourceStyle.Render(a.SourceName))
	}
	if ago := relativeTime(a.PublishedAt); ago != "" {
		meta = append(meta, itemTimeStyle.Render(ago))
	}

	return title + "\n  " + strings.Join(meta, itemTimeStyle.Render(" · "))
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(articles []news.Article, cursor int, height int, width int) string {
	if len(articles) == 0 {
		return lipglossCenter("No articles found", width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	// Calculate scroll offset
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(articles[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}

func renderErrorState(err error, width, height int) string {
	msg := errorTitleStyle.Render("✗ " + errorText(err))
	hint := helpDimStyle.Render("press r to retry")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, msg, "", hint))
}
