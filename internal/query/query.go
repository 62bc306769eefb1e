// Package query maps the list view's persisted query string to the request
// it describes, and applies user interactions back onto that string.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/matheuskafuri/newsdesk/internal/api"
)

const (
	KeyPage     = "page"
	KeySize     = "size"
	KeySort     = "sort"
	KeySearch   = "search"
	KeyCategory = "category"
	KeySource   = "source"
)

const (
	DefaultSize = 10
	DefaultSort = "createdAt,desc"
)

type SortOption struct {
	Value string
	Label string
}

var SortOptions = []SortOption{
	{Value: "createdAt,desc", Label: "Newest first"},
	{Value: "createdAt,asc", Label: "Oldest first"},
	{Value: "title,asc", Label: "Title A-Z"},
	{Value: "title,desc", Label: "Title Z-A"},
}

// SortLabel returns the display label for value, or value itself.
func SortLabel(value string) string {
	for _, o := range SortOptions {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// NextSort returns the option after current, wrapping around.
func NextSort(current string) string {
	for i, o := range SortOptions {
		if o.Value == current {
			return SortOptions[(i+1)%len(SortOptions)].Value
		}
	}
	return SortOptions[0].Value
}

// State is the decoded list request. Empty strings mean "no filter".
type State struct {
	Page     int
	Size     int
	Sort     string
	Search   string
	Category string
	Source   string
}

func Decode(v url.Values) State {
	s := State{
		Page:     intOr(v.Get(KeyPage), 0),
		Size:     intOr(v.Get(KeySize), DefaultSize),
		Sort:     v.Get(KeySort),
		Search:   v.Get(KeySearch),
		Category: v.Get(KeyCategory),
		Source:   v.Get(KeySource),
	}
	if s.Page < 0 {
		s.Page = 0
	}
	if s.Size < 1 {
		s.Size = DefaultSize
	}
	if s.Sort == "" {
		s.Sort = DefaultSort
	}
	return s
}

// Parse decodes a raw query string, with or without the leading "?".
// Malformed pairs are ignored.
func Parse(raw string) State {
	return Decode(Values(raw))
}

// Values parses raw into url.Values, keeping whatever pairs are well formed.
func Values(raw string) url.Values {
	v, _ := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(raw), "?"))
	if v == nil {
		v = url.Values{}
	}
	return v
}

func intOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return def
	}
	return n
}

func (s State) Request() api.ArticleQuery {
	q := api.ArticleQuery{
		Page:     s.Page,
		Size:     s.Size,
		Sort:     s.Sort,
		Search:   s.Search,
		Category: s.Category,
	}
	if s.Source != "" {
		q.Sources = []string{s.Source}
	}
	return q
}

func (s State) HasFilters() bool {
	return s.Category != "" || s.Source != ""
}

// Each With* function returns a copy of v with one interaction applied.
// Every change except WithPage sends the user back to the first page.

func WithSearch(v url.Values, search string) url.Values {
	return withField(v, KeySearch, strings.TrimSpace(search))
}

func WithCategory(v url.Values, category string) url.Values {
	return withField(v, KeyCategory, category)
}

func WithSource(v url.Values, source string) url.Values {
	return withField(v, KeySource, source)
}

func WithSort(v url.Values, sort string) url.Values {
	return withField(v, KeySort, sort)
}

func WithPage(v url.Values, page int) url.Values {
	if page < 0 {
		page = 0
	}
	out := clone(v)
	out.Set(KeyPage, strconv.Itoa(page))
	return out
}

// ResetFilters clears category and source. Search and sort are kept.
func ResetFilters(v url.Values) url.Values {
	out := clone(v)
	out.Del(KeyCategory)
	out.Del(KeySource)
	out.Set(KeyPage, "0")
	return out
}

func withField(v url.Values, key, value string) url.Values {
	out := clone(v)
	if value == "" {
		out.Del(key)
	} else {
		out.Set(key, value)
	}
	out.Set(KeyPage, "0")
	return out
}

func clone(v url.Values) url.Values {
	out := make(url.Values, len(v)+1)
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
