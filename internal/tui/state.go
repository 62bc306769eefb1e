package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matheuskafuri/newsdesk/internal/logger"
)

const unexpectedError = "an unexpected error occurred"

var errUnexpected = errors.New(unexpectedError)

// appState is shared by all screens. It is replaced, never mutated in
// place, and only App.Update replaces it.
type appState struct {
	dark    bool
	err     error
	loading bool
}

func (s appState) withDark(dark bool) appState {
	s.dark = dark
	return s
}

func (s appState) withErr(err error) appState {
	s.err = err
	return s
}

func (s appState) withLoading(loading bool) appState {
	s.loading = loading
	return s
}

// begin starts a new screen generation. The previous generation's context
// is cancelled so its in-flight requests stop, and its results will no
// longer match a.gen.
func (a *App) begin(pending int) (context.Context, int) {
	if a.cancel != nil {
		a.cancel()
	}
	a.gen++
	ctx, cancel := context.WithCancel(a.ctx)
	a.cancel = cancel
	a.pending = pending
	a.state = a.state.withLoading(pending > 0)
	return ctx, a.gen
}

// settle accounts for one finished request of a current-generation screen.
func (a *App) settle() {
	if a.pending > 0 {
		a.pending--
	}
	a.state = a.state.withLoading(a.pending > 0)
}

func (a *App) current(gen int) bool {
	return gen == a.gen
}

// guard runs fn as a tea.Cmd, turning a panic into a failureMsg for gen.
func guard(log logger.Logger, name string, gen int, fn func() tea.Msg) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("command panicked",
					logger.String("command", name),
					logger.String("panic", fmt.Sprint(r)),
				)
				msg = failureMsg{gen: gen, err: errUnexpected}
			}
		}()
		return fn()
	}
}
