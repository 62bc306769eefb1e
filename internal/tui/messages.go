package tui

import (
	"github.com/matheuskafuri/newsdesk/internal/analytics"
	"github.com/matheuskafuri/newsdesk/internal/news"
)

// Every fetch result carries the generation of the screen that asked for
// it. Results from an earlier generation are dropped in Update.

type articlesMsg struct {
	gen  int
	page news.ArticlePage
	err  error
}

type categoriesMsg struct {
	gen        int
	categories []news.Category
	err        error
}

type sourcesMsg struct {
	gen   int
	names []string
	err   error
}

type articleMsg struct {
	gen     int
	article news.Article
	err     error
}

type dashboardMsg struct {
	gen       int
	dashboard analytics.Dashboard
	err       error
}

// failureMsg reports an error raised outside a fetch result, such as a
// panicking command. It shows in the banner until the next key press. A
// non-zero gen ties it to that screen generation.
type failureMsg struct {
	gen int
	err error
}

type themeSavedMsg struct {
	err error
}
