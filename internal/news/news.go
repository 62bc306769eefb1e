package news

import (
	"strings"
	"time"
)

// ID identifies any remote entity. The service sends ids as numbers in some
// payloads and strings in others; both become an ID at the API boundary.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

type KeywordType string

const (
	Person       KeywordType = "PERSON"
	Organization KeywordType = "ORGANIZATION"
	Location     KeywordType = "LOCATION"
	Event        KeywordType = "EVENT"
	Concept      KeywordType = "CONCEPT"
	Other        KeywordType = "OTHER"
)

// KeywordTypes lists the fixed set in display order.
var KeywordTypes = []KeywordType{Person, Organization, Location, Event, Concept, Other}

// ParseKeywordType maps s onto the fixed set; anything unknown is Other.
func ParseKeywordType(s string) KeywordType {
	t := KeywordType(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range KeywordTypes {
		if t == known {
			return t
		}
	}
	return Other
}

type Keyword struct {
	ID    ID
	Name  string
	Type  KeywordType
	Count int64
}

type Category struct {
	ID   ID
	Name string
}

type NewsSource struct {
	ID   ID
	Name string
	URL  string
}

type Article struct {
	ID          ID
	Title       string
	Summary     string // HTML, sanitise before display
	Content     string
	Category    string
	CategoryID  ID
	ImageURLs   []string
	PublishedAt time.Time
	SourceName  string
	SourceURL   string
	Views       int64
	HasViews    bool
	Keywords    []Keyword
}

type ArticlePage struct {
	Content       []Article
	TotalPages    int
	TotalElements int64
	Size          int
	Number        int
}

// HasNext reports whether a page after this one exists.
func (p ArticlePage) HasNext() bool {
	return p.Number+1 < p.TotalPages
}

type CategoryCount struct {
	Name  string
	Count int64
}

// CategoryStats keeps the order the server sent.
type CategoryStats []CategoryCount

func (s CategoryStats) Map() map[string]int64 {
	m := make(map[string]int64, len(s))
	for _, c := range s {
		m[c.Name] = c.Count
	}
	return m
}

func (s CategoryStats) Total() int64 {
	var n int64
	for _, c := range s {
		n += c.Count
	}
	return n
}

// KeywordCount is one entry of a top-keywords or top-personalities ranking.
type KeywordCount struct {
	Name  string
	Count int64
}

type TrendingArticle struct {
	ID        ID
	Title     string
	Category  string
	CreatedAt time.Time
	Views     int64
}

type TrendPoint struct {
	Date  string // YYYY-MM-DD
	Count int64
}

type KeywordTrend struct {
	Keyword string
	Trends  []TrendPoint
}

type AnalyticsSummary struct {
	TotalArticles    int64
	CategoryStats    CategoryStats
	TopKeywords      []KeywordCount
	TrendingArticles []TrendingArticle
}
