package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matheuskafuri/newsdesk/internal/api"
)

func TestDecodeDefaults(t *testing.T) {
	require.Equal(t, State{Page: 0, Size: 10, Sort: "createdAt,desc"}, Decode(url.Values{}))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		raw  string
		want State
	}{
		{"page=3&size=20&sort=title,asc&search=go&category=4&source=lenta",
			State{Page: 3, Size: 20, Sort: "title,asc", Search: "go", Category: "4", Source: "lenta"}},
		{"?page=2", State{Page: 2, Size: 10, Sort: DefaultSort}},
		{"page=-4&size=0", State{Page: 0, Size: 10, Sort: DefaultSort}},
		{"page=abc&size=-1", State{Page: 0, Size: 10, Sort: DefaultSort}},
		{"search=%D0%BD%D0%BE%D0%B2%D0%BE%D1%81%D1%82%D0%B8", State{Size: 10, Sort: DefaultSort, Search: "новости"}},
		{"%zz&page=1", State{Page: 1, Size: 10, Sort: DefaultSort}},
		{"", State{Size: 10, Sort: DefaultSort}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Parse(tt.raw), tt.raw)
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	v := Values("page=3&search=go&sort=title,asc")

	tests := []struct {
		name string
		got  url.Values
		key  string
		want string
	}{
		{"category", WithCategory(v, "5"), KeyCategory, "5"},
		{"source", WithSource(v, "ria"), KeySource, "ria"},
		{"search", WithSearch(v, "  rust "), KeySearch, "rust"},
		{"sort", WithSort(v, "createdAt,asc"), KeySort, "createdAt,asc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Decode(tt.got)
			require.Equal(t, 0, s.Page)
			require.Equal(t, tt.want, tt.got.Get(tt.key))
		})
	}

	// The input is never modified.
	require.Equal(t, "3", v.Get(KeyPage))
	require.Empty(t, v.Get(KeyCategory))
}

func TestPageChangeKeepsFilters(t *testing.T) {
	v := Values("page=1&search=go&category=2&source=lenta&sort=title,desc&size=20")

	got := Decode(WithPage(v, 4))
	require.Equal(t, State{Page: 4, Size: 20, Sort: "title,desc", Search: "go", Category: "2", Source: "lenta"}, got)

	require.Equal(t, 0, Decode(WithPage(v, -1)).Page)
}

func TestClearingAFieldRemovesIt(t *testing.T) {
	v := Values("page=2&search=go&category=2")
	got := WithSearch(v, "")
	_, ok := got[KeySearch]
	require.False(t, ok)
	require.Equal(t, "2", got.Get(KeyCategory))
	require.Equal(t, "0", got.Get(KeyPage))
}

func TestResetFilters(t *testing.T) {
	v := Values("page=3&search=go&category=2&source=lenta&sort=title,asc")
	got := Decode(ResetFilters(v))
	require.Equal(t, State{Page: 0, Size: 10, Sort: "title,asc", Search: "go"}, got)
	require.False(t, got.HasFilters())
	require.True(t, Decode(v).HasFilters())
}

func TestRequest(t *testing.T) {
	s := Parse("page=1&size=5&category=3&source=ria&search=x")
	require.Equal(t, api.ArticleQuery{
		Page: 1, Size: 5, Sort: DefaultSort, Search: "x", Category: "3", Sources: []string{"ria"},
	}, s.Request())

	require.Nil(t, Parse("").Request().Sources)
}

func TestNextSortCycles(t *testing.T) {
	seen := map[string]bool{}
	cur := DefaultSort
	for range SortOptions {
		seen[cur] = true
		cur = NextSort(cur)
	}
	require.Equal(t, DefaultSort, cur)
	require.Len(t, seen, len(SortOptions))
	require.Equal(t, SortOptions[0].Value, NextSort("unknown"))
	require.Equal(t, "Title A-Z", SortLabel("title,asc"))
	require.Equal(t, "views,desc", SortLabel("views,desc"))
}
