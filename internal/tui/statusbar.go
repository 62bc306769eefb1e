package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/newsdesk/internal/api"
)

func renderStatusBar(left, hints string, width int) string {
	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

// statusLeft is the banner error if any, else the loading spinner, else
// the theme name.
func (a *App) statusLeft() string {
	switch {
	case a.state.err != nil:
		return bannerStyle.Render("✗ " + errorText(a.state.err))
	case a.state.loading:
		return a.spinner.View() + " loading"
	case a.state.dark:
		return "dark"
	default:
		return "light"
	}
}

// errorText is the user-facing message of err: the API message when the
// error came from the client, else the error itself.
func errorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
