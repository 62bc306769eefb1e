package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdesk/internal/analytics"
)

var (
	flagDays  int
	flagLimit int
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Print the analytics dashboard",
	Long: `Print total articles, articles per category, top keywords and personalities,
keyword trends and trending articles.

Keyword trends are fetched for the top keywords; when that fetch fails the
trend table is left empty.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		defer e.Close()

		days, limit := e.cfg.TrendDays, e.cfg.TopKeywords
		if flagDays > 0 {
			days = flagDays
		}
		if flagLimit > 0 {
			limit = flagLimit
		}

		d, err := analytics.Load(contextOf(cmd), e.client, analytics.Options{
			TopKeywords: limit,
			TrendDays:   days,
			Logger:      e.log,
		})
		if err != nil {
			return err
		}
		writeDashboard(cmd.OutOrStdout(), d, days)
		return nil
	},
}

func init() {
	analyticsCmd.Flags().IntVar(&flagDays, "days", 0, "keyword trend window in days (default: trend_days from config)")
	analyticsCmd.Flags().IntVar(&flagLimit, "limit", 0, "number of top keywords (default: top_keywords from config)")
}

func writeDashboard(w io.Writer, d analytics.Dashboard, days int) {
	fmt.Fprintf(w, "Total articles: %d\n\n", d.TotalArticles)

	writeBars(w, "Articles by category", "Category", d.Categories)
	writeBars(w, "Top keywords", "Keyword", d.TopKeywords)
	writeBars(w, "Top personalities", "Person", d.TopPersonalities)

	fmt.Fprintf(w, "Keyword trends, last %d days\n", days)
	writeTrends(w, d.Trends)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Trending articles")
	if len(d.Trending) == 0 {
		fmt.Fprintln(w, "  no data")
		return
	}
	t := newTable(w)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, WidthMax: titleWidth}})
	t.AppendHeader(table.Row{"Title", "Category", "Views", "Created"})
	for _, a := range d.Trending {
		t.AppendRow(table.Row{a.Title, a.Category, a.Views, formatTime(a.CreatedAt)})
	}
	t.Render()
}

func writeBars(w io.Writer, title, column string, bars []analytics.Bar) {
	fmt.Fprintln(w, title)
	if len(bars) == 0 {
		fmt.Fprintln(w, "  no data")
		fmt.Fprintln(w)
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{column, "Count"})
	for _, b := range bars {
		t.AppendRow(table.Row{b.Name, b.Count})
	}
	t.Render()
	fmt.Fprintln(w)
}

// writeTrends prints one row per day and one column per keyword; "-" marks
// a keyword with no point on that day.
func writeTrends(w io.Writer, tt analytics.TrendTable) {
	if tt.Empty() {
		fmt.Fprintln(w, "  no data")
		return
	}
	t := newTable(w)
	header := table.Row{"Date"}
	for _, k := range tt.Keywords {
		header = append(header, k)
	}
	t.AppendHeader(header)
	for _, r := range tt.Rows {
		row := table.Row{r.Date}
		for _, k := range tt.Keywords {
			if v, ok := r.Value(k); ok {
				row = append(row, v)
			} else {
				row = append(row, "-")
			}
		}
		t.AppendRow(row)
	}
	t.Render()
}
