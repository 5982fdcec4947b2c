package commands

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/taskr/internal/core/task"
)

func TestRmCmd_Confirmed(t *testing.T) {
	h := newHarness(t)
	h.seed("one", "two", "three")
	h.prompt.confirm = true

	out := h.mustRun("rm", "2")

	assert.Equal(t, []string{deletePrompt}, h.prompt.asked)
	assert.Equal(t, "two", h.prompt.value)
	assert.Contains(t, out, "Deleted: two")

	tasks := h.app.Tasks.Tasks()
	require.Len(t, tasks, 2)
	assert.Equal(t, "one", tasks[0].Text)
	assert.Equal(t, "three", tasks[1].Text)
}

func TestRmCmd_Declined(t *testing.T) {
	tests := []struct {
		name       string
		confirmErr error
	}{
		{name: "answered no"},
		{name: "aborted", confirmErr: huh.ErrUserAborted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.seed("one")
			h.prompt.confirmErr = tt.confirmErr

			out := h.mustRun("rm", "1")

			assert.Contains(t, out, "Delete cancelled")
			assert.Len(t, h.app.Tasks.Tasks(), 1)
			assert.Equal(t, task.NoPending, h.app.Tasks.Snapshot().Pending)
		})
	}
}

func TestRmCmd_PromptError(t *testing.T) {
	h := newHarness(t)
	h.seed("one")
	h.prompt.confirmErr = errors.New("tty gone")

	_, _, err := h.run("rm", "1")
	assert.ErrorContains(t, err, "tty gone")
	assert.Len(t, h.app.Tasks.Tasks(), 1)
}

func TestRmCmd_Yes(t *testing.T) {
	h := newHarness(t)
	h.seed("one")
	h.prompt.interactive = false

	h.mustRun("rm", "--yes", "1")

	assert.Empty(t, h.app.Tasks.Tasks())
	assert.Empty(t, h.prompt.asked)
}

func TestRmCmd_NonInteractiveWithoutYes(t *testing.T) {
	h := newHarness(t)
	h.seed("one")
	h.prompt.interactive = false

	_, _, err := h.run("rm", "1")
	assert.ErrorContains(t, err, "--yes")
	assert.Len(t, h.app.Tasks.Tasks(), 1)
	assert.Equal(t, task.NoPending, h.app.Tasks.Snapshot().Pending)
}

func TestRmCmd_DeletedIDNotReused(t *testing.T) {
	h := newHarness(t)
	h.seed("one")
	deleted := h.app.Tasks.Tasks()[0].ID

	h.mustRun("rm", "-y", "1")
	h.mustRun("add", "replacement")

	assert.NotEqual(t, deleted, h.app.Tasks.Tasks()[0].ID)
}
