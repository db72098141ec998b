package display

import "github.com/charmbracelet/lipgloss"

// Styles contains styling for console output
type Styles struct {
	Title      lipgloss.Style
	Commitment lipgloss.Style
	MenuIndex  lipgloss.Style
	Prompt     lipgloss.Style
	Win        lipgloss.Style
	Lose       lipgloss.Style
	Draw       lipgloss.Style
	Key        lipgloss.Style
	Error      lipgloss.Style
	Info       lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles creates styles bound to renderer r.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Commitment: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")).
			Bold(true),
		MenuIndex: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Win: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Lose: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Draw: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Key: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Header: r.NewStyle().
			Bold(true).
			Padding(0, 1).
			Align(lipgloss.Center),
		Cell: r.NewStyle().
			Padding(0, 1).
			Align(lipgloss.Center),
		Border: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
