package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/core/logging"
	"github.com/hay-kot/taskr/internal/taskr"
	"github.com/hay-kot/taskr/pkg/iojson"
)

type AddCmd struct {
	flags *Flags
	app   *taskr.App

	// flags
	jsonOutput bool
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *taskr.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		UsageText: "taskr add [--json] <text...>",
		Description: `Appends a new open task to the end of the list.

All arguments are joined with spaces. Leading and trailing whitespace is
trimmed; blank text is rejected.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print the new task as a JSON line",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "add")

	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return errors.New("task text cannot be empty")
	}

	tasks := cmd.app.Tasks
	tasks.AddTask(text)

	all := tasks.Tasks()
	added := all[len(all)-1]
	ctx = logging.WithTaskID(ctx, added.ID)

	if err := cmd.app.Flush(ctx); err != nil {
		return err
	}
	log.Debug().Ctx(ctx).Msg("task added")

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteLine(out, newTaskInfo(all, added))
	}

	_, _ = fmt.Fprintf(out, "Added %d: %s (%s)\n", len(all), added.Text, shortID(added.ID))
	return nil
}
