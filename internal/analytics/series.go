// Package analytics shapes analytics responses for display and loads the
// dashboard from its independent datasets.
package analytics

import (
	"sort"
	"strings"

	"github.com/matheuskafuri/newsdesk/internal/news"
)

// Bar is one labelled value of a bar chart.
type Bar struct {
	Name  string
	Count int64
}

// CategorySeries keeps server order and drops unnamed categories.
func CategorySeries(stats news.CategoryStats) []Bar {
	bars := make([]Bar, 0, len(stats))
	for _, c := range stats {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		bars = append(bars, Bar{Name: c.Name, Count: c.Count})
	}
	return bars
}

// RankingSeries drops unnamed entries from a top-N ranking.
func RankingSeries(ranking []news.KeywordCount) []Bar {
	bars := make([]Bar, 0, len(ranking))
	for _, k := range ranking {
		if strings.TrimSpace(k.Name) == "" {
			continue
		}
		bars = append(bars, Bar{Name: k.Name, Count: k.Count})
	}
	return bars
}

// Max returns the largest count in bars, or 0.
func Max(bars []Bar) int64 {
	var m int64
	for _, b := range bars {
		if b.Count > m {
			m = b.Count
		}
	}
	return m
}

// TrendRow holds every keyword's count for one day. A keyword absent from
// Values had no point on that day.
type TrendRow struct {
	Date   string
	Values map[string]int64
}

func (r TrendRow) Value(keyword string) (int64, bool) {
	v, ok := r.Values[keyword]
	return v, ok
}

// TrendTable is the day-by-keyword matrix behind the trend chart.
type TrendTable struct {
	Keywords []string
	Rows     []TrendRow
}

func (t TrendTable) Empty() bool { return len(t.Rows) == 0 }

// MergeTrends outer-joins the series on date. Rows are in ascending date
// order; within one series a later point for the same date overwrites an
// earlier one.
func MergeTrends(series []news.KeywordTrend) TrendTable {
	table := TrendTable{Keywords: []string{}, Rows: []TrendRow{}}
	byDate := make(map[string]*TrendRow)
	seen := make(map[string]bool)

	for _, s := range series {
		if !seen[s.Keyword] {
			seen[s.Keyword] = true
			table.Keywords = append(table.Keywords, s.Keyword)
		}
		for _, p := range s.Trends {
			if p.Date == "" {
				continue
			}
			row, ok := byDate[p.Date]
			if !ok {
				row = &TrendRow{Date: p.Date, Values: make(map[string]int64)}
				byDate[p.Date] = row
			}
			row.Values[s.Keyword] = p.Count
		}
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		table.Rows = append(table.Rows, *byDate[d])
	}
	return table
}

// TrendingRows drops untitled entries.
func TrendingRows(articles []news.TrendingArticle) []news.TrendingArticle {
	out := make([]news.TrendingArticle, 0, len(articles))
	for _, a := range articles {
		if strings.TrimSpace(a.Title) == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}
