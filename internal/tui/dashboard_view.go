package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matheuskafuri/newsdesk/internal/analytics"
)

type dashboardScreen struct {
	data     analytics.Dashboard
	loaded   bool
	err      error
	viewport viewport.Model
}

func (a *App) openAnalytics() tea.Cmd {
	a.screen = screenAnalytics
	a.dashboard = dashboardScreen{viewport: viewport.New(a.width, a.viewportHeight())}
	return a.loadDashboard()
}

func (a *App) loadDashboard() tea.Cmd {
	ctx, gen := a.begin(1)
	a.dashboard.err = nil
	opts := analytics.Options{
		TopKeywords: a.topKeywords,
		TrendDays:   a.trendDays,
		Logger:      a.log,
	}
	c := a.client

	return tea.Batch(
		guard(a.log, "analytics", gen, func() tea.Msg {
			d, err := analytics.Load(ctx, c, opts)
			return dashboardMsg{gen: gen, dashboard: d, err: err}
		}),
		a.spinner.Tick,
	)
}

func (a *App) refreshDashboard() {
	if !a.dashboard.loaded {
		return
	}
	a.dashboard.viewport.SetContent(dashboardContent(a.dashboard.data, a.trendDays, a.width-2))
}

func (a *App) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		a.screen = screenList
		return a, a.loadList()
	}

	var cmd tea.Cmd
	a.dashboard.viewport, cmd = a.dashboard.viewport.Update(msg)
	return a, cmd
}

func (a *App) viewDashboard() string {
	header := a.renderHeader("analytics")

	var body string
	switch {
	case a.dashboard.err != nil:
		body = renderErrorState(a.dashboard.err, a.width, a.viewportHeight())
	case !a.dashboard.loaded:
		body = lipglossCenter(a.spinner.View()+" Loading analytics...", a.width, a.viewportHeight())
	default:
		body = a.dashboard.viewport.View()
	}

	hints := "j/k scroll  r reload  esc back  t theme  ? help"
	return a.withBottomBar(lipgloss.JoinVertical(lipgloss.Left, header, body), hints)
}

func dashboardContent(d analytics.Dashboard, trendDays, width int) string {
	if width < 30 {
		width = 30
	}

	sections := []string{
		sectionTitleStyle.Render("Total articles"),
		"  " + bigNumberStyle.Render(strconv.FormatInt(d.TotalArticles, 10)),
		sectionTitleStyle.Render("Articles by category"),
		renderBars(d.Categories, width),
		sectionTitleStyle.Render("Top keywords"),
		renderBars(d.TopKeywords, width),
		sectionTitleStyle.Render("Top personalities"),
		renderBars(d.TopPersonalities, width),
		sectionTitleStyle.Render(fmt.Sprintf("Keyword trends, last %d days", trendDays)),
		renderTrends(d.Trends, width),
		sectionTitleStyle.Render("Trending articles"),
		renderTrending(d, width),
	}
	return strings.Join(sections, "\n")
}

func renderBars(bars []analytics.Bar, width int) string {
	if len(bars) == 0 {
		return helpDimStyle.Render("  No data")
	}

	labelW := 0
	for _, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Name))
	}
	labelW = min(labelW, width/3)

	top := analytics.Max(bars)
	barW := max(width-labelW-12, 5)

	lines := make([]string, 0, len(bars))
	for _, b := range bars {
		n := 0
		if top > 0 {
			n = int(float64(b.Count) / float64(top) * float64(barW))
		}
		if b.Count > 0 && n == 0 {
			n = 1
		}
		lines = append(lines, "  "+
			barLabelStyle.Width(labelW).Render(truncateStr(b.Name, labelW))+" "+
			barStyle.Render(strings.Repeat("█", n))+" "+
			countStyle.Render(strconv.FormatInt(b.Count, 10)))
	}
	return strings.Join(lines, "\n")
}

func renderTrends(t analytics.TrendTable, width int) string {
	if t.Empty() {
		return helpDimStyle.Render("  No data")
	}

	tbl := newTable(width).Headers(append([]string{"date"}, t.Keywords...)...)
	for _, row := range t.Rows {
		cells := []string{row.Date}
		for _, k := range t.Keywords {
			if v, ok := row.Value(k); ok {
				cells = append(cells, strconv.FormatInt(v, 10))
			} else {
				cells = append(cells, "-")
			}
		}
		tbl.Row(cells...)
	}
	return tbl.Render()
}

func renderTrending(d analytics.Dashboard, width int) string {
	if len(d.Trending) == 0 {
		return helpDimStyle.Render("  No data")
	}

	tbl := newTable(width).Headers("title", "category", "views", "created")
	titleW := max(width/2, 20)
	for _, a := range d.Trending {
		created := ""
		if !a.CreatedAt.IsZero() {
			created = a.CreatedAt.Local().Format("Jan 2 15:04")
		}
		tbl.Row(truncateStr(a.Title, titleW), a.Category, strconv.FormatInt(a.Views, 10), created)
	}
	return tbl.Render()
}

func newTable(width int) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(colorText).Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Width(width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
}
