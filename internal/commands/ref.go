package commands

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/taskr/internal/core/task"
)

// shortIDLen is how much of an id the table views print.
const shortIDLen = 8

// taskInfo is the JSON output format for a single task.
type taskInfo struct {
	Position  int    `json:"position"`
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func newTaskInfo(tasks task.Collection, t task.Task) taskInfo {
	return taskInfo{
		Position:  tasks.Index(t.ID) + 1,
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Completed,
	}
}

// resolveRef finds the task named by the first positional argument.
func resolveRef(c *cli.Command, tasks *task.Controller) (task.Task, error) {
	ref := c.Args().First()
	if ref == "" {
		return task.Task{}, errors.New("missing task reference (position or id prefix)")
	}

	t, err := tasks.Find(ref)
	if err != nil {
		return task.Task{}, fmt.Errorf("%q: %w", ref, err)
	}
	return t, nil
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}
