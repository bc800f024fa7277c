// Package output renders flat trees for the terminal and for machine consumers.
package output

import "github.com/charmbracelet/lipgloss"

var (
	colorMuted     = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#5F5F5F"}
	colorKeyText   = lipgloss.AdaptiveColor{Light: "#303030", Dark: "#D0D0D0"}
	colorKeyBg     = lipgloss.AdaptiveColor{Light: "#E4E4E4", Dark: "#303030"}
	colorSelectBg  = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	colorSelectFg  = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}
	colorDirectory = lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#8BE9FD"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
)

// Styles groups the lipgloss styles used to draw a tree.
type Styles struct {
	Connector   lipgloss.Style
	Key         lipgloss.Style
	SelectedKey lipgloss.Style
	Directory   lipgloss.Style
	File        lipgloss.Style
	Pruned      lipgloss.Style
	Status      lipgloss.Style
	Input       lipgloss.Style
}

// NewStyles builds styles bound to renderer, which decides the color profile.
func NewStyles(renderer *lipgloss.Renderer) Styles {
	return Styles{
		Connector:   renderer.NewStyle().Foreground(colorMuted),
		Key:         renderer.NewStyle().Foreground(colorKeyText).Background(colorKeyBg),
		SelectedKey: renderer.NewStyle().Foreground(colorSelectFg).Background(colorSelectBg).Bold(true),
		Directory:   renderer.NewStyle().Foreground(colorDirectory).Bold(true),
		File:        renderer.NewStyle(),
		Pruned:      renderer.NewStyle().Foreground(colorMuted).Italic(true),
		Status:      renderer.NewStyle().Background(colorStatusBg),
		Input:       renderer.NewStyle().Bold(true),
	}
}
