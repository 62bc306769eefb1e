package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// tab is one choice of a filter bar; value is what goes into the query.
type tab struct {
	label string
	value string
}

// filterBar is a single-select row of tabs. An empty active value means
// "All".
type filterBar struct {
	name         string
	tabs         []tab
	filterMode   bool
	filterCursor int
}

func newFilterBar(name string) filterBar {
	return filterBar{name: name}
}

func (f *filterBar) setTabs(tabs []tab) {
	f.tabs = tabs
	if f.filterCursor >= len(tabs) {
		f.filterCursor = max(0, len(tabs)-1)
	}
}

func (f *filterBar) left() {
	if f.filterCursor > 0 {
		f.filterCursor--
	}
}

func (f *filterBar) right() {
	if f.filterCursor < len(f.tabs)-1 {
		f.filterCursor++
	}
}

// pick returns the value to apply when the tab at i is chosen while active
// is selected: choosing the active tab again clears the filter.
func (f *filterBar) pick(i int, active string) (string, bool) {
	if i < 0 || i >= len(f.tabs) {
		return "", false
	}
	if f.tabs[i].value == active {
		return "", true
	}
	return f.tabs[i].value, true
}

func (f *filterBar) labelOf(value string) string {
	for _, t := range f.tabs {
		if t.value == value {
			return t.label
		}
	}
	return value
}

func (f *filterBar) render(active string, width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	if active == "" {
		parts = append(parts, tabActiveStyle.Render("All"))
	} else {
		parts = append(parts, tabInactiveStyle.Render("All"))
	}

	for i, t := range f.tabs {
		style := tabInactiveStyle
		if t.value == active {
			style = tabActiveStyle
		}
		label := t.label
		if f.filterMode && i == f.filterCursor {
			label = "[" + t.label + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	row := tabLabelStyle.Render(f.name)
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && i > 0 {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
