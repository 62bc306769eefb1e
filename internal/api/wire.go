package api

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/matheuskafuri/newsdesk/internal/news"
	"github.com/matheuskafuri/newsdesk/internal/normalize"
)

// Wire schemas. Every field is optional and lenient; the to* functions turn
// them into fully defaulted news values.

type wireCategory struct {
	ID   normalize.Text `json:"id"`
	Name normalize.Text `json:"name"`
}

type wireKeyword struct {
	ID    normalize.Text   `json:"id"`
	Name  normalize.Text   `json:"name"`
	Type  normalize.Text   `json:"type"`
	Count normalize.Number `json:"count"`
}

type wireArticle struct {
	ID           normalize.Text                 `json:"id"`
	Title        normalize.Text                 `json:"title"`
	Summary      normalize.Text                 `json:"summary"`
	Content      normalize.Text                 `json:"content"`
	Category     json.RawMessage                `json:"category"`
	CategoryName normalize.Text                 `json:"categoryName"`
	CategoryID   normalize.Text                 `json:"categoryId"`
	ImageURLs    normalize.List[normalize.Text] `json:"imageUrls"`
	PublishedAt  normalize.Text                 `json:"publishedAt"`
	CreatedAt    normalize.Text                 `json:"createdAt"`
	SourceName   normalize.Text                 `json:"sourceName"`
	SourceURL    normalize.Text                 `json:"sourceUrl"`
	URL          normalize.Text                 `json:"url"`
	Views        normalize.Number               `json:"views"`
	Keywords     normalize.List[wireKeyword]    `json:"keywords"`
}

type wireArticlePage struct {
	Content       normalize.List[wireArticle] `json:"content"`
	TotalPages    normalize.Number            `json:"totalPages"`
	TotalElements normalize.Number            `json:"totalElements"`
	Size          normalize.Number            `json:"size"`
	Number        normalize.Number            `json:"number"`
}

type wireSource struct {
	ID              normalize.Text `json:"id"`
	Name            normalize.Text `json:"name"`
	URL             normalize.Text `json:"url"`
	AllArticlesLink normalize.Text `json:"allArticlesLink"`
}

type wireTrending struct {
	ID           normalize.Text   `json:"id"`
	Title        normalize.Text   `json:"title"`
	Category     json.RawMessage  `json:"category"`
	CategoryName normalize.Text   `json:"categoryName"`
	CreatedAt    normalize.Text   `json:"createdAt"`
	Views        normalize.Number `json:"views"`
}

type wireSummary struct {
	TotalArticles    normalize.Number                  `json:"totalArticles"`
	CategoryStats    json.RawMessage                   `json:"categoryStats"`
	TopKeywords      normalize.List[normalize.Entries] `json:"topKeywords"`
	TrendingArticles normalize.List[wireTrending]      `json:"trendingArticles"`
}

func toID(t normalize.Text) news.ID {
	return news.ID(strings.TrimSpace(t.String()))
}

// categoryOf reads a category that is either a plain name or an {id, name}
// object. fallbackName is used when the field is missing.
func categoryOf(raw json.RawMessage, fallbackName normalize.Text, fallbackID normalize.Text) news.Category {
	c := news.Category{ID: toID(fallbackID), Name: fallbackName.String()}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return c
	}
	switch raw[0] {
	case '{':
		var w wireCategory
		if json.Unmarshal(raw, &w) == nil {
			if name := w.Name.String(); name != "" {
				c.Name = name
			}
			if id := toID(w.ID); !id.IsZero() {
				c.ID = id
			}
		}
	case '"':
		var name normalize.Text
		if json.Unmarshal(raw, &name) == nil && name != "" {
			c.Name = name.String()
		}
	}
	return c
}

func toKeyword(w wireKeyword) news.Keyword {
	return news.Keyword{
		ID:    toID(w.ID),
		Name:  w.Name.String(),
		Type:  news.ParseKeywordType(w.Type.String()),
		Count: w.Count.Count(),
	}
}

func toArticle(w wireArticle) news.Article {
	cat := categoryOf(w.Category, w.CategoryName, w.CategoryID)

	published, ok := normalize.Time(w.PublishedAt.String())
	if !ok {
		published, _ = normalize.Time(w.CreatedAt.String())
	}

	sourceURL := w.SourceURL.String()
	if sourceURL == "" {
		sourceURL = w.URL.String()
	}

	images := make([]string, 0, len(w.ImageURLs))
	for _, u := range w.ImageURLs {
		if s := strings.TrimSpace(u.String()); s != "" {
			images = append(images, s)
		}
	}

	keywords := make([]news.Keyword, 0, len(w.Keywords))
	for _, k := range w.Keywords {
		keywords = append(keywords, toKeyword(k))
	}

	return news.Article{
		ID:          toID(w.ID),
		Title:       w.Title.String(),
		Summary:     w.Summary.String(),
		Content:     w.Content.String(),
		Category:    cat.Name,
		CategoryID:  cat.ID,
		ImageURLs:   images,
		PublishedAt: published,
		SourceName:  w.SourceName.String(),
		SourceURL:   sourceURL,
		Views:       w.Views.Count(),
		HasViews:    w.Views.Valid,
		Keywords:    keywords,
	}
}

func toArticlePage(w wireArticlePage) news.ArticlePage {
	content := make([]news.Article, 0, len(w.Content))
	for _, a := range w.Content {
		content = append(content, toArticle(a))
	}
	return news.ArticlePage{
		Content:       content,
		TotalPages:    int(w.TotalPages.Count()),
		TotalElements: w.TotalElements.Count(),
		Size:          int(w.Size.Count()),
		Number:        int(w.Number.Count()),
	}
}

func toSource(w wireSource) news.NewsSource {
	u := w.URL.String()
	if u == "" {
		u = w.AllArticlesLink.String()
	}
	return news.NewsSource{ID: toID(w.ID), Name: w.Name.String(), URL: u}
}

func toTrending(w wireTrending) news.TrendingArticle {
	cat := categoryOf(w.Category, w.CategoryName, "")
	created, _ := normalize.Time(w.CreatedAt.String())
	return news.TrendingArticle{
		ID:        toID(w.ID),
		Title:     w.Title.String(),
		Category:  cat.Name,
		CreatedAt: created,
		Views:     w.Views.Count(),
	}
}

// categoryStatsOf accepts either a name->count object or a list of
// {name, count} records.
func categoryStatsOf(raw json.RawMessage) news.CategoryStats {
	stats := news.CategoryStats{}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return stats
	}
	switch raw[0] {
	case '{':
		var entries normalize.Entries
		_ = json.Unmarshal(raw, &entries)
		for _, e := range entries {
			stats = append(stats, news.CategoryCount{Name: e.Key, Count: normalize.NumberOf(e.Value).Count()})
		}
	case '[':
		var records normalize.List[struct {
			Name  normalize.Text   `json:"name"`
			Count normalize.Number `json:"count"`
		}]
		_ = json.Unmarshal(raw, &records)
		for _, r := range records {
			stats = append(stats, news.CategoryCount{Name: r.Name.String(), Count: r.Count.Count()})
		}
	}
	return stats
}

// rankingOf reads a top-N list. Each record is either a single-entry
// {"name": count} object or a {name, count} record. Empty and non-object
// records are dropped.
func rankingOf(records normalize.List[normalize.Entries]) []news.KeywordCount {
	out := make([]news.KeywordCount, 0, len(records))
	for _, rec := range records {
		if len(rec) == 0 {
			continue
		}
		if kc, ok := namedRecord(rec); ok {
			out = append(out, kc)
			continue
		}
		out = append(out, news.KeywordCount{
			Name:  rec[0].Key,
			Count: normalize.NumberOf(rec[0].Value).Count(),
		})
	}
	return out
}

func namedRecord(rec normalize.Entries) (news.KeywordCount, bool) {
	var (
		kc      news.KeywordCount
		hasName bool
	)
	for _, e := range rec {
		switch e.Key {
		case "name":
			var name normalize.Text
			_ = json.Unmarshal(e.Value, &name)
			kc.Name = name.String()
			hasName = true
		case "count":
			kc.Count = normalize.NumberOf(e.Value).Count()
		}
	}
	return kc, hasName && len(rec) > 1
}

// trendsOf turns {keyword: [[date, count], ...]} into series, keeping the
// server's keyword order. Pairs may also be {date, count} objects.
func trendsOf(entries normalize.Entries) []news.KeywordTrend {
	out := make([]news.KeywordTrend, 0, len(entries))
	for _, e := range entries {
		var pairs normalize.List[json.RawMessage]
		_ = json.Unmarshal(e.Value, &pairs)

		points := make([]news.TrendPoint, 0, len(pairs))
		for _, p := range pairs {
			if pt, ok := trendPointOf(p); ok {
				points = append(points, pt)
			}
		}
		out = append(out, news.KeywordTrend{Keyword: e.Key, Trends: points})
	}
	return out
}

func trendPointOf(raw json.RawMessage) (news.TrendPoint, bool) {
	var (
		date  normalize.Text
		count normalize.Number
	)
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return news.TrendPoint{}, false
	}
	switch raw[0] {
	case '[':
		var pair []json.RawMessage
		if json.Unmarshal(raw, &pair) != nil || len(pair) == 0 {
			return news.TrendPoint{}, false
		}
		_ = json.Unmarshal(pair[0], &date)
		if len(pair) > 1 {
			count = normalize.NumberOf(pair[1])
		}
	case '{':
		var obj struct {
			Date  normalize.Text   `json:"date"`
			Count normalize.Number `json:"count"`
		}
		if json.Unmarshal(raw, &obj) != nil {
			return news.TrendPoint{}, false
		}
		date, count = obj.Date, obj.Count
	default:
		return news.TrendPoint{}, false
	}

	day := normalize.Day(date.String())
	if day == "" {
		return news.TrendPoint{}, false
	}
	return news.TrendPoint{Date: day, Count: count.Count()}, true
}
