package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/taskr/internal/core/styles"
)

// Modal is a yes/no confirmation dialog.
type Modal struct {
	title           string
	message         string
	confirmSelected bool // true = confirm button selected, false = cancel button selected
}

// NewModal creates a modal with the confirm button selected.
func NewModal(title, message string) Modal {
	return Modal{
		title:           title,
		message:         message,
		confirmSelected: true,
	}
}

// ToggleSelection switches the selected button.
func (m *Modal) ToggleSelection() {
	m.confirmSelected = !m.confirmSelected
}

// ConfirmSelected returns true if the confirm button is selected.
func (m Modal) ConfirmSelected() bool {
	return m.confirmSelected
}

// View renders the dialog box.
func (m Modal) View() string {
	confirmBtn := styles.ModalButtonStyle.Render("Yes")
	cancelBtn := styles.ModalButtonStyle.Render("No")
	if m.confirmSelected {
		confirmBtn = styles.ModalButtonSelectedStyle.Render("Yes")
	} else {
		cancelBtn = styles.ModalButtonSelectedStyle.Render("No")
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center, confirmBtn, "  ", cancelBtn)
	buttonRow := lipgloss.NewStyle().MarginTop(1).Render(buttons)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		buttonRow,
		styles.ModalHelpStyle.Render("y/n answer  ←/→ select  enter confirm  esc cancel"),
	)

	return styles.ModalStyle.Render(content)
}

// Overlay centers the dialog in a width x height area, replacing the
// background. Without a known size the dialog is appended below it.
func (m Modal) Overlay(background string, width, height int) string {
	if width <= 0 || height <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, background, "", m.View())
	}

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		m.View(),
	)
}
