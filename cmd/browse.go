package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdesk/internal/api"
	"github.com/matheuskafuri/newsdesk/internal/news"
	"github.com/matheuskafuri/newsdesk/internal/query"
	"github.com/matheuskafuri/newsdesk/internal/render"
)

const titleWidth = 60

var (
	flagPage     int
	flagSize     int
	flagSort     string
	flagSearch   string
	flagCategory string
	flagSource   string
)

var articlesCmd = &cobra.Command{
	Use:   "articles",
	Short: "List articles",
	Long: `Print one page of articles as a table.

Sort values: createdAt,desc (default), createdAt,asc, title,asc, title,desc.
--category takes a category id, --source a source name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		req := articlesRequest(flagPage, flagSize, e.cfg.PageSize, flagSort, flagSearch, flagCategory, flagSource)
		page, err := e.client.ListArticles(contextOf(cmd), req)
		if err != nil {
			return err
		}
		writeArticles(cmd.OutOrStdout(), page, req)
		return nil
	},
}

var articleCmd = &cobra.Command{
	Use:   "article <id>",
	Short: "Show one article",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		a, err := e.client.GetArticle(contextOf(cmd), news.ID(args[0]))
		if err != nil {
			return err
		}
		return writeArticle(cmd.OutOrStdout(), render.New(), a)
	},
}

func init() {
	f := articlesCmd.Flags()
	f.IntVar(&flagPage, "page", 0, "zero-based page number")
	f.IntVar(&flagSize, "size", 0, "articles per page (default: page_size from config)")
	f.StringVar(&flagSort, "sort", query.DefaultSort, "sort order")
	f.StringVar(&flagSearch, "search", "", "full-text search")
	f.StringVar(&flagCategory, "category", "", "category id")
	f.StringVar(&flagSource, "source", "", "source name")
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// articlesRequest applies the same defaults as the reader's list screen.
func articlesRequest(page, size, defaultSize int, sort, search, category, source string) api.ArticleQuery {
	if size < 1 {
		size = defaultSize
	}
	if size < 1 {
		size = query.DefaultSize
	}
	if strings.TrimSpace(sort) == "" {
		sort = query.DefaultSort
	}
	st := query.State{
		Page:     max(page, 0),
		Size:     size,
		Sort:     sort,
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
		Source:   strings.TrimSpace(source),
	}
	return st.Request()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func writeArticles(w io.Writer, page news.ArticlePage, req api.ArticleQuery) {
	if len(page.Content) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}

	t := newTable(w)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: titleWidth},
	})
	t.AppendHeader(table.Row{"ID", "Title", "Category", "Source", "Published"})
	for _, a := range page.Content {
		t.AppendRow(table.Row{a.ID, a.Title, a.Category, a.SourceName, formatTime(a.PublishedAt)})
	}
	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("page %d of %d", req.Page+1, max(page.TotalPages, 1)),
		fmt.Sprintf("%d articles", page.TotalElements),
		"",
		query.SortLabel(req.Sort),
	})
	t.Render()
}

func writeArticle(w io.Writer, r *render.Renderer, a news.Article) error {
	fmt.Fprintln(w, a.Title)

	var meta []string
	for _, s := range []string{a.Category, a.SourceName, formatTime(a.PublishedAt)} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	if len(meta) > 0 {
		fmt.Fprintln(w, strings.Join(meta, " · "))
	}
	if a.SourceURL != "" {
		fmt.Fprintln(w, a.SourceURL)
	}

	if len(a.Keywords) > 0 {
		t := newTable(w)
		t.AppendHeader(table.Row{"Keyword", "Type"})
		for _, k := range a.Keywords {
			t.AppendRow(table.Row{k.Name, k.Type})
		}
		t.Render()
	}

	doc := r.Document(a)
	if doc == "" {
		return nil
	}
	body, err := render.Plain(doc, 80)
	if err != nil {
		return fmt.Errorf("rendering article: %w", err)
	}
	fmt.Fprint(w, body)
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}
