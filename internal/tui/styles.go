package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors; applyTheme picks the side.
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorText      = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#E4E4E4"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorTabActive = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorTabBg     = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A3E"}
	colorSurface   = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#1E1E2E"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorError     = lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF5F6D"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerDateStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Align(lipgloss.Right)

	itemTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	itemSourceStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	itemCategoryStyle = lipgloss.NewStyle().
				Foreground(colorSecondary)

	itemTimeStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	detailMetaStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	detailLinkStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	keywordStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorTabBg).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorTabActive).
			Padding(0, 1).
			Bold(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Background(colorTabBg).
				Padding(0, 1)

	tabSeparatorStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	tabLabelStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Width(10)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				MarginTop(1)

	barStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	barLabelStyle = lipgloss.NewStyle().
			Foreground(colorText)

	countStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	bigNumberStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	bannerStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	errorTitleStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	searchPromptStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	helpCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 3)
)

// applyTheme points every adaptive color at the light or dark side.
func applyTheme(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}
