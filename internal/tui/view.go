package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"

	"github.com/hay-kot/taskr/internal/core/notify"
	"github.com/hay-kot/taskr/internal/core/styles"
	"github.com/hay-kot/taskr/internal/core/task"
)

func (m *Model) View() string {
	snap := m.tasks.Snapshot()

	open, done := snap.Tasks.Counts()
	header := styles.TitleStyle.Render("taskr") + "  " +
		styles.CountStyle.Render(fmt.Sprintf("%d open · %d done", open, done))
	if m.saver != nil && m.saver.Dirty() {
		header += "  " + styles.StatusInfoStyle.Render("● unsaved")
	}
	lines := []string{header, ""}

	if len(snap.Tasks) == 0 {
		lines = append(lines, styles.EmptyStyle.Render("No tasks yet. Press a to add one."))
	}
	for i, t := range snap.Tasks {
		lines = append(lines, m.renderRow(i, t, snap.Pending))
	}
	lines = append(lines, "")

	if m.inputOpen {
		lines = append(lines, m.renderInput(snap.Mode))
	}
	if status := m.renderStatus(); status != "" {
		lines = append(lines, status)
	}

	var keys help.KeyMap = m.keys
	if m.inputOpen {
		keys = inputKeys{m.keys}
	}
	lines = append(lines, m.help.View(keys))

	view := strings.Join(lines, "\n")
	if m.modal != nil {
		return m.modal.Overlay(view, m.width, m.height)
	}
	return view
}

func (m *Model) renderRow(i int, t task.Task, pending task.PendingAction) string {
	cursor := "  "
	if i == m.cursor {
		cursor = styles.CursorStyle.Render("› ")
	}

	icon := styles.IconOpen
	text := styles.TaskStyle.Render(t.Text)
	switch {
	case t.Completed:
		icon = styles.IconDone
		text = styles.TaskDoneStyle.Render(t.Text)
	case i == m.cursor:
		text = styles.TaskSelectedStyle.Render(t.Text)
	}

	row := cursor + icon + " " + text
	if pending.TaskID == t.ID && pending.Kind == task.PendingEdit {
		row += styles.CountStyle.Render("  (editing)")
	}
	return row
}

func (m *Model) renderInput(mode task.Mode) string {
	label := composePrompt
	if mode == task.ModeEdit {
		label = editPrompt
	}
	return styles.InputBoxStyle.Render(styles.InputLabelStyle.Render(label) + "\n" + m.input.View())
}

func (m *Model) renderStatus() string {
	if m.status == nil {
		return ""
	}
	if m.status.Level == notify.LevelInfo {
		return styles.StatusInfoStyle.Render(m.status.Message)
	}
	return styles.StatusErrorStyle.Render("! " + m.status.Message)
}
