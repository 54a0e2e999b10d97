package regtui

import "github.com/charmbracelet/lipgloss"

// Page colors.
const (
	accentColor  = lipgloss.Color("#667eea")
	successColor = lipgloss.Color("#155724")
	errorColor   = lipgloss.Color("#721c24")
	mutedColor   = lipgloss.Color("#666666")
)

const (
	sidePanelWidth = 46
	minChartCols   = 20
	minChartRows   = 8
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(sidePanelWidth - 2)

	successBoxStyle = boxStyle.BorderForeground(successColor)
	errorBoxStyle   = boxStyle.BorderForeground(errorColor)

	trainedStyle    = lipgloss.NewStyle().Foreground(successColor)
	notTrainedStyle = lipgloss.NewStyle().Foreground(errorColor)

	chartStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(mutedColor)
)
