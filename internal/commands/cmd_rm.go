package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/core/logging"
	"github.com/hay-kot/taskr/internal/taskr"
)

// deletePrompt is the question asked before a task is removed.
const deletePrompt = "Are you sure you want to delete this task?"

type RmCmd struct {
	flags  *Flags
	app    *taskr.App
	prompt Prompter

	// flags
	yes bool
}

// NewRmCmd creates a new rm command
func NewRmCmd(flags *Flags, app *taskr.App, prompt Prompter) *RmCmd {
	return &RmCmd{flags: flags, app: app, prompt: prompt}
}

// Register adds the rm command to the application
func (cmd *RmCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "rm",
		Aliases:     []string{"delete"},
		Usage:       "Delete a task",
		UsageText:   "taskr rm [--yes] <position|id>",
		Description: "Removes a task after confirmation. Use --yes to skip the prompt.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "delete without asking",
				Destination: &cmd.yes,
			},
		},
		ShellComplete: TaskRefCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *RmCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "rm")
	tasks := cmd.app.Tasks
	out := c.Root().Writer

	target, err := resolveRef(c, tasks)
	if err != nil {
		return err
	}
	ctx = logging.WithTaskID(ctx, target.ID)

	tasks.RequestDelete(target)

	if !cmd.yes {
		if !cmd.prompt.Interactive() {
			tasks.Cancel()
			return errors.New("stdin is not a terminal; pass --yes to delete without confirmation")
		}

		confirmed, err := cmd.prompt.Confirm(deletePrompt, target.Text)
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			tasks.Cancel()
			return fmt.Errorf("prompt: %w", err)
		}
		if !confirmed {
			tasks.Cancel()
			_, _ = fmt.Fprintln(out, "Delete cancelled")
			return nil
		}
	}

	tasks.ConfirmDelete()
	if err := cmd.app.Flush(ctx); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Deleted: %s\n", target.Text)
	return nil
}
