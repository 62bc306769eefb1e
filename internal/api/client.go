package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/matheuskafuri/newsdesk/internal/news"
	"github.com/matheuskafuri/newsdesk/internal/normalize"
)

const (
	DefaultTopLimit  = 10
	DefaultTrendDays = 30
)

// ArticleQuery is one request for a page of articles. Empty fields are
// left out of the query string.
type ArticleQuery struct {
	Page     int
	Size     int
	Sort     string
	Search   string
	Category string
	Sources  []string
}

func (q ArticleQuery) Values() url.Values {
	v := url.Values{}
	page := q.Page
	if page < 0 {
		page = 0
	}
	v.Set("page", strconv.Itoa(page))
	if q.Size >= 1 {
		v.Set("size", strconv.Itoa(q.Size))
	}
	if s := strings.TrimSpace(q.Sort); s != "" {
		v.Set("sort", s)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	if s := strings.TrimSpace(q.Category); s != "" {
		v.Set("category", s)
	}
	var sources []string
	for _, s := range q.Sources {
		if s = strings.TrimSpace(s); s != "" {
			sources = append(sources, s)
		}
	}
	if len(sources) > 0 {
		v.Set("sources", strings.Join(sources, ","))
	}
	return v
}

func (c *Client) ListArticles(ctx context.Context, q ArticleQuery) (news.ArticlePage, error) {
	var w wireArticlePage
	if err := c.fetchJSON(ctx, epArticles, "/articles", q.Values(), &w); err != nil {
		return news.ArticlePage{}, err
	}
	return toArticlePage(w), nil
}

func (c *Client) GetArticle(ctx context.Context, id news.ID) (news.Article, error) {
	if id.IsZero() {
		return news.Article{}, &Error{Kind: KindOther, Endpoint: epArticle.name, Message: MsgArticle}
	}
	var w wireArticle
	path := "/articles/" + url.PathEscape(strings.TrimSpace(id.String()))
	if err := c.fetchJSON(ctx, epArticle, path, nil, &w); err != nil {
		return news.Article{}, err
	}
	a := toArticle(w)
	if a.ID.IsZero() {
		a.ID = id
	}
	return a, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]news.Category, error) {
	var w normalize.List[wireCategory]
	if err := c.fetchJSON(ctx, epCategories, "/categories", nil, &w); err != nil {
		return nil, err
	}
	out := make([]news.Category, 0, len(w))
	for _, cat := range w {
		out = append(out, news.Category{ID: toID(cat.ID), Name: cat.Name.String()})
	}
	return out, nil
}

func (c *Client) ListSources(ctx context.Context) ([]news.NewsSource, error) {
	var w normalize.List[wireSource]
	if err := c.fetchJSON(ctx, epSources, "/sources", nil, &w); err != nil {
		return nil, err
	}
	out := make([]news.NewsSource, 0, len(w))
	for _, s := range w {
		out = append(out, toSource(s))
	}
	return out, nil
}

// ListSourceNames returns the non-empty source names.
func (c *Client) ListSourceNames(ctx context.Context) ([]string, error) {
	var w normalize.List[normalize.Text]
	if err := c.fetchJSON(ctx, epSourceNames, "/sources/names", nil, &w); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(w))
	for _, name := range w {
		if name != "" {
			out = append(out, name.String())
		}
	}
	return out, nil
}

func (c *Client) GetAnalyticsSummary(ctx context.Context) (news.AnalyticsSummary, error) {
	var w wireSummary
	if err := c.fetchJSON(ctx, epAnalytics, "/analytics", nil, &w); err != nil {
		return news.AnalyticsSummary{}, err
	}
	trending := make([]news.TrendingArticle, 0, len(w.TrendingArticles))
	for _, t := range w.TrendingArticles {
		trending = append(trending, toTrending(t))
	}
	return news.AnalyticsSummary{
		TotalArticles:    w.TotalArticles.Count(),
		CategoryStats:    categoryStatsOf(w.CategoryStats),
		TopKeywords:      rankingOf(w.TopKeywords),
		TrendingArticles: trending,
	}, nil
}

func (c *Client) GetCategoryStats(ctx context.Context) (news.CategoryStats, error) {
	var raw json.RawMessage
	if err := c.fetchJSON(ctx, epCategoryStats, "/analytics/categories/stats", nil, &raw); err != nil {
		return nil, err
	}
	return categoryStatsOf(raw), nil
}

func (c *Client) GetTopKeywords(ctx context.Context, limit int) ([]news.KeywordCount, error) {
	return c.ranking(ctx, epTopKeywords, "/analytics/keywords/top", limit)
}

func (c *Client) GetTopPersonalities(ctx context.Context, limit int) ([]news.KeywordCount, error) {
	return c.ranking(ctx, epTopPersonalities, "/analytics/personalities/top", limit)
}

func (c *Client) ranking(ctx context.Context, ep endpoint, path string, limit int) ([]news.KeywordCount, error) {
	if limit < 1 {
		limit = DefaultTopLimit
	}
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	var w normalize.List[normalize.Entries]
	if err := c.fetchJSON(ctx, ep, path, params, &w); err != nil {
		return nil, err
	}
	return rankingOf(w), nil
}

// GetKeywordTrends returns one series per keyword over the last days days.
// With no keywords it returns an empty result without calling the service.
func (c *Client) GetKeywordTrends(ctx context.Context, keywords []string, days int) ([]news.KeywordTrend, error) {
	var names []string
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			names = append(names, k)
		}
	}
	if len(names) == 0 {
		c.metrics.RecordSkipped(epKeywordTrends.name)
		return []news.KeywordTrend{}, nil
	}
	if days < 1 {
		days = DefaultTrendDays
	}

	params := url.Values{
		"keywords": {strings.Join(names, ",")},
		"days":     {strconv.Itoa(days)},
	}
	var w normalize.Entries
	if err := c.fetchJSON(ctx, epKeywordTrends, "/analytics/keywords/trends", params, &w); err != nil {
		return nil, err
	}
	return trendsOf(w), nil
}
