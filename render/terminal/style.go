package terminal

import "github.com/charmbracelet/lipgloss"

var (
	// Card colors: emerald for credentialed assets, slate for placeholders.
	colorCard  = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}
	colorMuted = lipgloss.AdaptiveColor{Light: "#64748b", Dark: "#94a3b8"}
	colorError = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}

	// UI colors.
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorAI     = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#a78bfa"} // purple
)

var (
	styleTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta  = lipgloss.NewStyle().Foreground(colorDim)

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCard).
			Padding(0, 1)
	styleMutedCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleCardTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleLabel     = lipgloss.NewStyle().Foreground(colorDim)
	styleNote      = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	styleAI        = lipgloss.NewStyle().Foreground(colorAI)

	styleConnector = lipgloss.NewStyle().Foreground(colorDim)
	styleError     = lipgloss.NewStyle().Foreground(colorError).Bold(true)
)
