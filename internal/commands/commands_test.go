package commands

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/core/config"
	"github.com/hay-kot/taskr/internal/taskr"
)

// fakePrompter answers prompts with canned values and records what it was
// asked.
type fakePrompter struct {
	interactive bool

	input    string
	inputErr error

	confirm    bool
	confirmErr error

	asked []string
	value string
}

func (p *fakePrompter) Input(title, value string) (string, error) {
	p.asked = append(p.asked, title)
	p.value = value
	return p.input, p.inputErr
}

func (p *fakePrompter) Confirm(title, description string) (bool, error) {
	p.asked = append(p.asked, title)
	p.value = description
	return p.confirm, p.confirmErr
}

func (p *fakePrompter) Interactive() bool {
	return p.interactive
}

type harness struct {
	t      *testing.T
	app    *taskr.App
	flags  *Flags
	prompt *fakePrompter
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Backend = config.BackendMemory

	app, err := taskr.Open(context.Background(), &cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Close(ctx)
	})

	return &harness{
		t:      t,
		app:    app,
		flags:  &Flags{Config: &cfg},
		prompt: &fakePrompter{interactive: true},
	}
}

// run executes the root command with args and returns stdout and stderr.
func (h *harness) run(args ...string) (string, string, error) {
	h.t.Helper()

	var out, errOut bytes.Buffer
	root := &cli.Command{Name: "taskr", Writer: &out, ErrWriter: &errOut}
	root = NewAddCmd(h.flags, h.app).Register(root)
	root = NewLsCmd(h.flags, h.app).Register(root)
	root = NewToggleCmd(h.flags, h.app).Register(root)
	root = NewEditCmd(h.flags, h.app, h.prompt).Register(root)
	root = NewRmCmd(h.flags, h.app, h.prompt).Register(root)
	root = NewImportCmd(h.flags, h.app).Register(root)
	root = NewConfigValidateCmd(h.flags).Register(root)

	err := root.Run(context.Background(), append([]string{"taskr"}, args...))
	return out.String(), errOut.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, _, err := h.run(args...)
	require.NoError(h.t, err)
	return out
}

func (h *harness) seed(texts ...string) {
	h.t.Helper()
	for _, text := range texts {
		h.app.Tasks.AddTask(text)
	}
	require.NoError(h.t, h.app.Flush(context.Background()))
}
