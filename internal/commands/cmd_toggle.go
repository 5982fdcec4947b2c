package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/core/logging"
	"github.com/hay-kot/taskr/internal/taskr"
)

type ToggleCmd struct {
	flags *Flags
	app   *taskr.App
}

// NewToggleCmd creates a new toggle command
func NewToggleCmd(flags *Flags, app *taskr.App) *ToggleCmd {
	return &ToggleCmd{flags: flags, app: app}
}

// Register adds the toggle command to the application
func (cmd *ToggleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:          "toggle",
		Aliases:       []string{"done"},
		Usage:         "Mark a task done, or open again",
		UsageText:     "taskr toggle <position|id>",
		Description:   "Flips the completed flag of a task. The task keeps its place in the list.",
		ShellComplete: TaskRefCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *ToggleCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "toggle")

	target, err := resolveRef(c, cmd.app.Tasks)
	if err != nil {
		return err
	}
	ctx = logging.WithTaskID(ctx, target.ID)

	cmd.app.Tasks.ToggleCompletion(target.ID)
	if err := cmd.app.Flush(ctx); err != nil {
		return err
	}

	verb := "Completed"
	if target.Completed {
		verb = "Reopened"
	}
	_, _ = fmt.Fprintf(c.Root().Writer, "%s: %s\n", verb, target.Text)
	return nil
}
