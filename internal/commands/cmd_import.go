package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/core/logging"
	"github.com/hay-kot/taskr/internal/core/task"
	"github.com/hay-kot/taskr/internal/taskr"
	"github.com/hay-kot/taskr/pkg/iojson"
)

type ImportCmd struct {
	flags *Flags
	app   *taskr.App
	input iojson.FileReader[json.RawMessage]
}

// NewImportCmd creates a new import command
func NewImportCmd(flags *Flags, app *taskr.App) *ImportCmd {
	return &ImportCmd{flags: flags, app: app}
}

// Register adds the import command to the application
func (cmd *ImportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "import",
		Usage:     "Append tasks from a JSON array",
		UsageText: "taskr import [-f file.json]",
		Description: `Reads a JSON array of {"id", "text", "completed"} records and appends
each one as a new task. Ids in the input are ignored; every imported task gets
a fresh id. Records without text are skipped.

Reads from stdin unless -f is given. The output of 'taskr ls --json' wrapped in
brackets, or a copy of the stored "tasks" value, are both accepted.`,
		Flags:  []cli.Flag{cmd.input.Flag()},
		Action: cmd.run,
	})

	return app
}

func (cmd *ImportCmd) run(ctx context.Context, c *cli.Command) error {
	ctx = logging.WithCommand(ctx, "import")

	raw, err := cmd.input.Read()
	if err != nil {
		return err
	}

	incoming, err := task.Decode(raw)
	if err != nil {
		return err
	}

	tasks := cmd.app.Tasks
	for _, t := range incoming {
		tasks.AddTask(t.Text)
		if t.Completed {
			all := tasks.Tasks()
			tasks.ToggleCompletion(all[len(all)-1].ID)
		}
	}

	if err := cmd.app.Flush(ctx); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "Imported %d task(s)\n", len(incoming))
	return nil
}
