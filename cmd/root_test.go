package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matheuskafuri/newsdesk/internal/analytics"
	"github.com/matheuskafuri/newsdesk/internal/news"
	"github.com/matheuskafuri/newsdesk/internal/render"
)

func TestParseTheme(t *testing.T) {
	tests := []struct {
		current bool
		arg     string
		want    bool
		err     bool
	}{
		{false, "dark", true, false},
		{true, "light", false, false},
		{false, "toggle", true, false},
		{true, "toggle", false, false},
		{false, " DARK ", true, false},
		{true, "blue", true, true},
		{false, "", false, true},
	}

	for _, tt := range tests {
		got, err := parseTheme(tt.current, tt.arg)
		if tt.err {
			if err == nil {
				t.Errorf("parseTheme(%v, %q): expected error, got %v", tt.current, tt.arg, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseTheme(%v, %q): unexpected error: %v", tt.current, tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTheme(%v, %q) = %v, want %v", tt.current, tt.arg, got, tt.want)
		}
	}
}

func TestArticlesRequestDefaults(t *testing.T) {
	req := articlesRequest(-2, 0, 25, "", "  go  ", "", "Wire")
	if req.Page != 0 {
		t.Errorf("expected negative page clamped to 0, got %d", req.Page)
	}
	if req.Size != 25 {
		t.Errorf("expected config page size, got %d", req.Size)
	}
	if req.Sort != "createdAt,desc" {
		t.Errorf("expected default sort, got %q", req.Sort)
	}
	if req.Search != "go" {
		t.Errorf("expected trimmed search, got %q", req.Search)
	}
	if len(req.Sources) != 1 || req.Sources[0] != "Wire" {
		t.Errorf("expected one source, got %v", req.Sources)
	}

	req = articlesRequest(3, 0, 0, "title,asc", "", "7", "")
	if req.Size != 10 || req.Page != 3 || req.Category != "7" || req.Sources != nil {
		t.Errorf("unexpected request: %+v", req)
	}
}

func TestWriteTrends(t *testing.T) {
	table := analytics.MergeTrends([]news.KeywordTrend{
		{Keyword: "ai", Trends: []news.TrendPoint{{Date: "2024-01-01", Count: 5}, {Date: "2024-01-02", Count: 7}}},
		{Keyword: "ml", Trends: []news.TrendPoint{{Date: "2024-01-02", Count: 3}}},
	})

	var buf bytes.Buffer
	writeTrends(&buf, table)
	out := buf.String()

	lines := strings.Split(out, "\n")
	var first string
	for _, l := range lines {
		if strings.Contains(l, "2024-01-01") {
			first = l
		}
	}
	if first == "" {
		t.Fatalf("missing first day row:\n%s", out)
	}
	cells := strings.FieldsFunc(first, func(r rune) bool { return r == '│' || r == ' ' })
	if strings.Join(cells, ",") != "2024-01-01,5,-" {
		t.Errorf("expected ai=5 and a gap for ml on the first day, got %q", first)
	}

	buf.Reset()
	writeTrends(&buf, analytics.MergeTrends(nil))
	if !strings.Contains(buf.String(), "no data") {
		t.Errorf("expected empty marker, got %q", buf.String())
	}
}

func TestWriteArticles(t *testing.T) {
	page := news.ArticlePage{
		Content:       []news.Article{{ID: "42", Title: "Budget passes", Category: "Politics", SourceName: "Wire"}},
		TotalPages:    3,
		TotalElements: 21,
	}
	var buf bytes.Buffer
	writeArticles(&buf, page, articlesRequest(1, 10, 10, "", "", "", ""))
	out := buf.String()

	for _, want := range []string{"42", "Budget passes", "Politics", "Wire"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(strings.ToLower(out), "page 2 of 3") {
		t.Errorf("expected page footer:\n%s", out)
	}

	buf.Reset()
	writeArticles(&buf, news.ArticlePage{}, articlesRequest(0, 0, 0, "", "", "", ""))
	if !strings.Contains(buf.String(), "No articles found.") {
		t.Errorf("expected empty message, got %q", buf.String())
	}
}

func TestWriteArticleSanitises(t *testing.T) {
	a := news.Article{
		Title:     "Storm warning",
		Summary:   "<p>Heavy rain expected<script>steal()</script></p>",
		SourceURL: "https://example.com/storm",
		Keywords:  []news.Keyword{{Name: "Met Office", Type: news.Organization}},
	}
	var buf bytes.Buffer
	if err := writeArticle(&buf, render.New(), a); err != nil {
		t.Fatalf("writeArticle: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Storm warning", "https://example.com/storm", "Met Office", "Heavy rain"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "steal()") {
		t.Error("script content should not be printed")
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2024-05-01")
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	if got := buf.String(); got != "newsdesk 1.2.3 (commit: abc123, built: 2024-05-01)\n" {
		t.Errorf("version output = %q", got)
	}
}
