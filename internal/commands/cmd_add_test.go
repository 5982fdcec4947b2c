package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "  buy", "milk  ")

	tasks := h.app.Tasks.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Text)
	assert.False(t, tasks[0].Completed)
	assert.Contains(t, out, "Added 1: buy milk")
}

func TestAddCmd_BlankText(t *testing.T) {
	h := newHarness(t)

	_, _, err := h.run("add", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
	assert.Empty(t, h.app.Tasks.Tasks())
}

func TestAddCmd_JSON(t *testing.T) {
	h := newHarness(t)
	h.seed("first")

	out := h.mustRun("add", "--json", "second")

	var info taskInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, 2, info.Position)
	assert.Equal(t, "second", info.Text)
	assert.NotEmpty(t, info.ID)
	assert.False(t, info.Completed)
}
