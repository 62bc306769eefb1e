package analytics

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matheuskafuri/newsdesk/internal/logger"
	"github.com/matheuskafuri/newsdesk/internal/news"
)

// Source is the subset of the API client the dashboard reads from.
type Source interface {
	GetCategoryStats(ctx context.Context) (news.CategoryStats, error)
	GetTopKeywords(ctx context.Context, limit int) ([]news.KeywordCount, error)
	GetAnalyticsSummary(ctx context.Context) (news.AnalyticsSummary, error)
	GetKeywordTrends(ctx context.Context, keywords []string, days int) ([]news.KeywordTrend, error)
	GetTopPersonalities(ctx context.Context, limit int) ([]news.KeywordCount, error)
}

type Options struct {
	TopKeywords int
	TrendDays   int
	Logger      logger.Logger
}

func (o Options) withDefaults() Options {
	if o.TopKeywords < 1 {
		o.TopKeywords = 10
	}
	if o.TrendDays < 1 {
		o.TrendDays = 30
	}
	if o.Logger == nil {
		o.Logger = logger.NewNop()
	}
	return o
}

type Dashboard struct {
	TotalArticles    int64
	Categories       []Bar
	TopKeywords      []Bar
	TopPersonalities []Bar
	Trends           TrendTable
	Trending         []news.TrendingArticle
}

// Load fetches category stats, top keywords and the summary together; any
// of them failing fails the dashboard. Keyword trends and top personalities
// are fetched afterwards only when there are top keywords, and their
// failures only leave those sections empty.
func Load(ctx context.Context, src Source, opts Options) (Dashboard, error) {
	opts = opts.withDefaults()

	var (
		stats   news.CategoryStats
		top     []news.KeywordCount
		summary news.AnalyticsSummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = src.GetCategoryStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		top, err = src.GetTopKeywords(gctx, opts.TopKeywords)
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = src.GetAnalyticsSummary(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("loading analytics: %w", err)
	}

	d := Dashboard{
		TotalArticles:    summary.TotalArticles,
		Categories:       CategorySeries(stats),
		TopKeywords:      RankingSeries(top),
		TopPersonalities: []Bar{},
		Trends:           MergeTrends(nil),
		Trending:         TrendingRows(summary.TrendingArticles),
	}
	if len(d.TopKeywords) == 0 {
		return d, nil
	}

	names := make([]string, len(d.TopKeywords))
	for i, b := range d.TopKeywords {
		names[i] = b.Name
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		trends, err := src.GetKeywordTrends(ctx, names, opts.TrendDays)
		if err != nil {
			opts.Logger.Warn("keyword trends unavailable", logger.Strings("keywords", names), logger.Error(err))
			return
		}
		d.Trends = MergeTrends(trends)
	}()
	go func() {
		defer wg.Done()
		people, err := src.GetTopPersonalities(ctx, opts.TopKeywords)
		if err != nil {
			opts.Logger.Warn("top personalities unavailable", logger.Error(err))
			return
		}
		d.TopPersonalities = RankingSeries(people)
	}()
	wg.Wait()

	return d, nil
}
