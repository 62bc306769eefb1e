package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsdesk/internal/news"
	"github.com/matheuskafuri/newsdesk/internal/render"
)

type detailScreen struct {
	id       news.ID
	article  news.Article
	loaded   bool
	err      error
	viewport viewport.Model
}

func (a *App) openDetail(id news.ID) tea.Cmd {
	a.screen = screenDetail
	a.detail = detailScreen{
		id:       id,
		viewport: viewport.New(a.width, a.viewportHeight()),
	}
	return a.loadDetail()
}

func (a *App) loadDetail() tea.Cmd {
	ctx, gen := a.begin(1)
	a.detail.err = nil
	id := a.detail.id
	c := a.client

	return tea.Batch(
		guard(a.log, "article", gen, func() tea.Msg {
			article, err := c.GetArticle(ctx, id)
			return articleMsg{gen: gen, article: article, err: err}
		}),
		a.spinner.Tick,
	)
}

// refreshDetail re-renders the article for the current width and theme.
func (a *App) refreshDetail() {
	if !a.detail.loaded {
		return
	}
	a.detail.viewport.SetContent(detailContent(a.detail.article, a.renderer, a.width-2, a.state.dark))
}

func (a *App) openSource() tea.Cmd {
	u := a.detail.article.SourceURL
	if !a.detail.loaded || u == "" {
		return nil
	}
	open := a.open
	return guard(a.log, "open", 0, func() tea.Msg {
		if err := open(u); err != nil {
			return failureMsg{err: fmt.Errorf("opening %s: %w", u, err)}
		}
		return nil
	})
}

func (a *App) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "o":
		return a, a.openSource()
	case "esc", "backspace":
		a.screen = screenList
		return a, a.loadList()
	}

	var cmd tea.Cmd
	a.detail.viewport, cmd = a.detail.viewport.Update(msg)
	return a, cmd
}

func (a *App) viewDetail() string {
	header := a.renderHeader("article")

	var body string
	switch {
	case a.detail.err != nil:
		body = renderErrorState(a.detail.err, a.width, a.viewportHeight())
	case !a.detail.loaded:
		body = lipglossCenter(a.spinner.View()+" Loading article...", a.width, a.viewportHeight())
	default:
		body = a.detail.viewport.View()
	}

	hints := "j/k scroll  o open source  esc back  t theme  ? help"
	return a.withBottomBar(lipgloss.JoinVertical(lipgloss.Left, header, body), hints)
}

func detailContent(art news.Article, r *render.Renderer, width int, dark bool) string {
	if width < 20 {
		width = 20
	}

	var lines []string
	lines = append(lines, detailTitleStyle.Width(width).Render(art.Title))

	var meta []string
	if art.Category != "" {
		meta = append(meta, art.Category)
	}
	if art.SourceName != "" {
		meta = append(meta, art.SourceName)
	}
	if !art.PublishedAt.IsZero() {
		meta = append(meta, art.PublishedAt.Local().Format("Jan 2, 2006 15:04"))
	}
	if art.HasViews {
		meta = append(meta, fmt.Sprintf("%d views", art.Views))
	}
	if len(meta) > 0 {
		lines = append(lines, detailMetaStyle.Render(strings.Join(meta, " · ")))
	}

	if len(art.Keywords) > 0 {
		var tags []string
		for _, k := range art.Keywords {
			tags = append(tags, keywordStyle.Render(k.Name+" "+strings.ToLower(string(k.Type))))
		}
		lines = append(lines, "", lipgloss.NewStyle().Width(width).Render(strings.Join(tags, " ")))
	}

	if art.SourceURL != "" {
		lines = append(lines, "", detailLinkStyle.Render("Source: "+art.SourceURL))
	}

	if doc := r.Document(art); doc != "" {
		body, err := render.Terminal(doc, width, dark)
		if err != nil {
			body = doc
		}
		lines = append(lines, body)
	}

	return strings.Join(lines, "\n")
}
