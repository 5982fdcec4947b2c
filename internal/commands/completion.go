package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/taskr"
)

// TaskRefCompleter returns a ShellCompleteFunc that suggests task ids as
// positional completions, with the task text as the description for shells
// that show one. Open tasks are listed before completed ones.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TaskRefCompleter(app *taskr.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		// Delegate to default flag completion when typing a flag
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app == nil || app.Tasks == nil {
			return
		}

		w := cmd.Root().Writer
		tasks := app.Tasks.Tasks()
		for _, done := range []bool{false, true} {
			for _, t := range tasks {
				if t.Completed != done {
					continue
				}
				_, _ = fmt.Fprintf(w, "%s:%s\n", shortID(t.ID), t.Text)
			}
		}
	}
}
