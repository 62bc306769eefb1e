package analytics

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/matheuskafuri/newsdesk/internal/api"
	"github.com/matheuskafuri/newsdesk/internal/logger"
	"github.com/matheuskafuri/newsdesk/internal/news"
)

func TestMergeTrends(t *testing.T) {
	got := MergeTrends([]news.KeywordTrend{
		{Keyword: "A", Trends: []news.TrendPoint{{Date: "2024-01-01", Count: 3}, {Date: "2024-01-02", Count: 5}}},
		{Keyword: "B", Trends: []news.TrendPoint{{Date: "2024-01-01", Count: 2}}},
	})

	require.Equal(t, []string{"A", "B"}, got.Keywords)
	require.Equal(t, []TrendRow{
		{Date: "2024-01-01", Values: map[string]int64{"A": 3, "B": 2}},
		{Date: "2024-01-02", Values: map[string]int64{"A": 5}},
	}, got.Rows)

	_, ok := got.Rows[1].Value("B")
	require.False(t, ok)
}

func TestMergeTrendsOrderAndDuplicates(t *testing.T) {
	got := MergeTrends([]news.KeywordTrend{
		{Keyword: "go", Trends: []news.TrendPoint{
			{Date: "2024-03-02", Count: 1},
			{Date: "2024-03-01", Count: 4},
			{Date: "2024-03-02", Count: 9},
			{Date: "", Count: 7},
		}},
		{Keyword: "go", Trends: []news.TrendPoint{{Date: "2024-02-28", Count: 2}}},
		{Keyword: "rust", Trends: nil},
	})

	require.Equal(t, []string{"go", "rust"}, got.Keywords)
	require.Len(t, got.Rows, 3)
	require.Equal(t, "2024-02-28", got.Rows[0].Date)
	require.Equal(t, "2024-03-01", got.Rows[1].Date)
	require.Equal(t, "2024-03-02", got.Rows[2].Date)
	v, _ := got.Rows[2].Value("go")
	require.Equal(t, int64(9), v)
}

func TestMergeTrendsEmpty(t *testing.T) {
	got := MergeTrends(nil)
	require.True(t, got.Empty())
	require.NotNil(t, got.Keywords)
	require.NotNil(t, got.Rows)
}

func TestCategorySeries(t *testing.T) {
	got := CategorySeries(news.CategoryStats{{Name: "Politics", Count: 5}, {Name: " ", Count: 3}, {Name: "Sport", Count: 0}})
	require.Equal(t, []Bar{{Name: "Politics", Count: 5}, {Name: "Sport", Count: 0}}, got)
	require.Equal(t, int64(5), Max(got))
	require.Equal(t, int64(0), Max(nil))
}

func TestTrendingRows(t *testing.T) {
	got := TrendingRows([]news.TrendingArticle{{ID: "1", Title: "A"}, {ID: "2"}})
	require.Equal(t, []news.TrendingArticle{{ID: "1", Title: "A"}}, got)
}

type fakeSource struct {
	stats       news.CategoryStats
	statsErr    error
	top         []news.KeywordCount
	topErr      error
	summary     news.AnalyticsSummary
	summaryErr  error
	trends      []news.KeywordTrend
	trendsErr   error
	people      []news.KeywordCount
	peopleErr   error
	trendCalls  atomic.Int32
	peopleCalls atomic.Int32
	gotKeywords []string
	gotDays     int
}

func (f *fakeSource) GetCategoryStats(context.Context) (news.CategoryStats, error) {
	return f.stats, f.statsErr
}

func (f *fakeSource) GetTopKeywords(context.Context, int) ([]news.KeywordCount, error) {
	return f.top, f.topErr
}

func (f *fakeSource) GetAnalyticsSummary(context.Context) (news.AnalyticsSummary, error) {
	return f.summary, f.summaryErr
}

func (f *fakeSource) GetKeywordTrends(_ context.Context, keywords []string, days int) ([]news.KeywordTrend, error) {
	f.trendCalls.Add(1)
	f.gotKeywords = keywords
	f.gotDays = days
	return f.trends, f.trendsErr
}

func (f *fakeSource) GetTopPersonalities(context.Context, int) ([]news.KeywordCount, error) {
	f.peopleCalls.Add(1)
	return f.people, f.peopleErr
}

func TestLoad(t *testing.T) {
	src := &fakeSource{
		stats:   news.CategoryStats{{Name: "Politics", Count: 5}},
		top:     []news.KeywordCount{{Name: "ai", Count: 12}, {Name: "", Count: 1}, {Name: "science", Count: 7}},
		summary: news.AnalyticsSummary{TotalArticles: 40, TrendingArticles: []news.TrendingArticle{{ID: "1", Title: "Hot"}}},
		trends: []news.KeywordTrend{
			{Keyword: "ai", Trends: []news.TrendPoint{{Date: "2024-01-01", Count: 1}}},
		},
		people: []news.KeywordCount{{Name: "Ada", Count: 2}},
	}

	d, err := Load(context.Background(), src, Options{TrendDays: 14})
	require.NoError(t, err)
	require.Equal(t, int64(40), d.TotalArticles)
	require.Equal(t, []Bar{{Name: "Politics", Count: 5}}, d.Categories)
	require.Equal(t, []Bar{{Name: "ai", Count: 12}, {Name: "science", Count: 7}}, d.TopKeywords)
	require.Equal(t, []Bar{{Name: "Ada", Count: 2}}, d.TopPersonalities)
	require.Equal(t, []string{"ai", "science"}, src.gotKeywords)
	require.Equal(t, 14, src.gotDays)
	require.Len(t, d.Trends.Rows, 1)
	require.Len(t, d.Trending, 1)
}

func TestLoadPrimaryFailureSurfaces(t *testing.T) {
	for name, src := range map[string]*fakeSource{
		"stats":    {statsErr: &api.Error{Kind: api.KindServer, Message: "stats down"}},
		"keywords": {topErr: &api.Error{Kind: api.KindNetwork, Message: api.MsgNetwork}},
		"summary":  {summaryErr: &api.Error{Kind: api.KindServer, Message: "summary down"}},
	} {
		t.Run(name, func(t *testing.T) {
			src.top = append(src.top, news.KeywordCount{Name: "ai", Count: 1})
			_, err := Load(context.Background(), src, Options{})
			require.Error(t, err)
			var apiErr *api.Error
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, int32(0), src.trendCalls.Load())
		})
	}
}

func TestLoadSkipsTrendsWithoutKeywords(t *testing.T) {
	src := &fakeSource{top: []news.KeywordCount{{Name: "  "}}}

	d, err := Load(context.Background(), src, Options{})
	require.NoError(t, err)
	require.Equal(t, int32(0), src.trendCalls.Load())
	require.Equal(t, int32(0), src.peopleCalls.Load())
	require.True(t, d.Trends.Empty())
	require.Empty(t, d.TopPersonalities)
}

func TestLoadSwallowsSecondaryFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	src := &fakeSource{
		top:       []news.KeywordCount{{Name: "ai", Count: 3}},
		trendsErr: &api.Error{Kind: api.KindServer, Message: "trends down"},
		peopleErr: errors.New("boom"),
	}

	d, err := Load(context.Background(), src, Options{Logger: logger.FromZap(zap.New(core))})
	require.NoError(t, err)
	require.Equal(t, int32(1), src.trendCalls.Load())
	require.True(t, d.Trends.Empty())
	require.NotNil(t, d.TopPersonalities)
	require.Empty(t, d.TopPersonalities)
	require.Equal(t, []Bar{{Name: "ai", Count: 3}}, d.TopKeywords)

	require.Equal(t, 1, logs.FilterMessage("keyword trends unavailable").Len())
	require.Equal(t, 1, logs.FilterMessage("top personalities unavailable").Len())
}
