// Package styles holds the lipgloss styles shared by the terminal UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Checkbox glyphs for task rows.
const (
	IconOpen = "☐"
	IconDone = "☑"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

var (
	TitleStyle lipgloss.Style
	CountStyle lipgloss.Style

	TaskStyle         lipgloss.Style
	TaskDoneStyle     lipgloss.Style
	TaskSelectedStyle lipgloss.Style
	CursorStyle       lipgloss.Style
	EmptyStyle        lipgloss.Style

	InputLabelStyle lipgloss.Style
	InputBoxStyle   lipgloss.Style

	ModalStyle               lipgloss.Style
	ModalTitleStyle          lipgloss.Style
	ModalHelpStyle           lipgloss.Style
	ModalButtonStyle         lipgloss.Style
	ModalButtonSelectedStyle lipgloss.Style

	StatusInfoStyle  lipgloss.Style
	StatusErrorStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	TitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	CountStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	TaskStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	TaskDoneStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Strikethrough(true)
	TaskSelectedStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	CursorStyle = lipgloss.NewStyle().
		Foreground(p.Primary)
	EmptyStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Italic(true)

	InputLabelStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)
	InputBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Error).
		Padding(1, 2)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Foreground)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		MarginTop(1)
	ModalButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Muted)
	ModalButtonSelectedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Surface).
		Bold(true)

	StatusInfoStyle = lipgloss.NewStyle().
		Foreground(p.Success)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
