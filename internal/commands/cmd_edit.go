package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/core/logging"
	"github.com/hay-kot/taskr/internal/taskr"
)

// editPrompt is shown above the input when editing interactively.
const editPrompt = "Edit the task below:"

type EditCmd struct {
	flags  *Flags
	app    *taskr.App
	prompt Prompter
}

// NewEditCmd creates a new edit command
func NewEditCmd(flags *Flags, app *taskr.App, prompt Prompter) *EditCmd {
	return &EditCmd{flags: flags, app: app, prompt: prompt}
}

// Register adds the edit command to the application
func (cmd *EditCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Change the text of a task",
		UsageText: "taskr edit <position|id> [text...]",
		Description: `Replaces the text of a task, keeping its id, status and position.

With no text arguments an input prefilled with the current text is shown.
Submitting blank text leaves the task unchanged.`,
		ShellComplete: TaskRefCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *EditCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "edit")
	tasks := cmd.app.Tasks

	target, err := resolveRef(c, tasks)
	if err != nil {
		return err
	}
	ctx = logging.WithTaskID(ctx, target.ID)

	tasks.RequestEdit(target)

	text := strings.Join(c.Args().Tail(), " ")
	if text == "" {
		if !cmd.prompt.Interactive() {
			tasks.Cancel()
			return errors.New("no text given and stdin is not a terminal")
		}

		text, err = cmd.prompt.Input(editPrompt, tasks.Snapshot().Draft)
		if err != nil {
			tasks.Cancel()
			if errors.Is(err, huh.ErrUserAborted) {
				_, _ = fmt.Fprintln(c.Root().Writer, "Edit cancelled")
				return nil
			}
			return fmt.Errorf("prompt: %w", err)
		}
	}

	tasks.ConfirmEdit(text)

	updated, _ := tasks.Tasks().Get(target.ID)
	if updated.Text == target.Text {
		_, _ = fmt.Fprintln(c.Root().Writer, "Task unchanged")
		return nil
	}

	if err := cmd.app.Flush(ctx); err != nil {
		return err
	}
	log.Debug().Ctx(ctx).Msg("task edited")

	_, _ = fmt.Fprintf(c.Root().Writer, "Updated: %s\n", updated.Text)
	return nil
}
