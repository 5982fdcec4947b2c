package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hay-kot/taskr/pkg/tuitest"
)

func TestModal_Selection(t *testing.T) {
	m := NewModal("Delete?", "buy milk")
	assert.True(t, m.ConfirmSelected())

	m.ToggleSelection()
	assert.False(t, m.ConfirmSelected())
}

func TestModal_View(t *testing.T) {
	out := tuitest.StripANSI(NewModal(deletePrompt, "buy milk").View())

	assert.Contains(t, out, deletePrompt)
	assert.Contains(t, out, "buy milk")
	assert.Contains(t, out, "Yes")
	assert.Contains(t, out, "No")
}

func TestModal_OverlayCenters(t *testing.T) {
	out := NewModal("Delete?", "x").Overlay("background", 80, 24)

	assert.NotContains(t, out, "background")
	assert.Len(t, splitLines(out), 24)
}

func TestModal_OverlayWithoutSize(t *testing.T) {
	out := tuitest.StripANSI(NewModal("Delete?", "x").Overlay("background", 0, 0))

	assert.Contains(t, out, "background")
	assert.Contains(t, out, "Delete?")
}
