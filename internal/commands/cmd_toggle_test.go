package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskr/internal/core/task"
)

func TestToggleCmd_ByPosition(t *testing.T) {
	h := newHarness(t)
	h.seed("one", "two")

	out := h.mustRun("toggle", "2")
	assert.Contains(t, out, "Completed: two")
	assert.True(t, h.app.Tasks.Tasks()[1].Completed)

	out = h.mustRun("done", "2")
	assert.Contains(t, out, "Reopened: two")
	assert.False(t, h.app.Tasks.Tasks()[1].Completed)
}

func TestToggleCmd_ByIDPrefix(t *testing.T) {
	h := newHarness(t)
	h.seed("one")
	id := h.app.Tasks.Tasks()[0].ID

	h.mustRun("toggle", id[:6])
	assert.True(t, h.app.Tasks.Tasks()[0].Completed)
}

func TestToggleCmd_UnknownRef(t *testing.T) {
	h := newHarness(t)
	h.seed("one")

	_, _, err := h.run("toggle", "7")
	require.ErrorIs(t, err, task.ErrNotFound)
	assert.False(t, h.app.Tasks.Tasks()[0].Completed)

	_, _, err = h.run("toggle")
	assert.ErrorContains(t, err, "missing task reference")
}
