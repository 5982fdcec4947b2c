package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/core/task"
	"github.com/hay-kot/taskr/internal/taskr"
	"github.com/hay-kot/taskr/pkg/iojson"
)

const (
	statusAll  = "all"
	statusOpen = "open"
	statusDone = "done"
)

type LsCmd struct {
	flags *Flags
	app   *taskr.App

	// flags
	jsonOutput bool
	status     string
	match      string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *taskr.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List tasks",
		UsageText: "taskr ls [--json] [--status all|open|done] [--match <glob>]",
		Description: `Displays tasks in the order they were added.

--match filters by a glob pattern against the task text, ignoring case.
Use --json for one JSON object per line.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
			&cli.StringFlag{
				Name:        "status",
				Usage:       "filter by status (all, open, done)",
				Value:       statusAll,
				Destination: &cmd.status,
			},
			&cli.StringFlag{
				Name:        "match",
				Aliases:     []string{"m"},
				Usage:       "glob pattern the task text must match, e.g. '*milk*'",
				Destination: &cmd.match,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	filter, err := cmd.filter()
	if err != nil {
		return err
	}

	all := cmd.app.Tasks.Tasks()
	out := c.Root().Writer

	var shown task.Collection
	for _, t := range all {
		if filter(t) {
			shown = append(shown, t)
		}
	}

	if cmd.jsonOutput {
		for _, t := range shown {
			if err := iojson.WriteLine(out, newTaskInfo(all, t)); err != nil {
				return fmt.Errorf("encode task: %w", err)
			}
		}
		return nil
	}

	if len(shown) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tDONE\tID\tTEXT")
	for _, t := range shown {
		done := "[ ]"
		if t.Completed {
			done = "[x]"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", all.Index(t.ID)+1, done, shortID(t.ID), t.Text)
	}

	return w.Flush()
}

// filter builds the predicate selected by the --status and --match flags.
func (cmd *LsCmd) filter() (func(task.Task) bool, error) {
	var byStatus func(task.Task) bool
	switch cmd.status {
	case statusAll, "":
		byStatus = func(task.Task) bool { return true }
	case statusOpen:
		byStatus = func(t task.Task) bool { return !t.Completed }
	case statusDone:
		byStatus = func(t task.Task) bool { return t.Completed }
	default:
		return nil, fmt.Errorf("invalid --status %q: must be one of all, open, done", cmd.status)
	}

	if cmd.match == "" {
		return byStatus, nil
	}

	pattern := strings.ToLower(cmd.match)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid --match pattern %q", cmd.match)
	}

	return func(t task.Task) bool {
		if !byStatus(t) {
			return false
		}
		ok, _ := doublestar.Match(pattern, strings.ToLower(t.Text))
		return ok
	}, nil
}
