// Package task defines the task list domain model and the controller that
// owns it.
package task

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when a reference matches no task.
	ErrNotFound = errors.New("task not found")
	// ErrAmbiguous is returned when an id prefix matches more than one task.
	ErrAmbiguous = errors.New("task reference is ambiguous")
)

// Task is a single entry in the list. Tasks are values: every mutation
// produces a new Task that replaces the old one in the collection.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// WithText returns a copy of t with its text replaced.
func (t Task) WithText(text string) Task {
	t.Text = text
	return t
}

// Toggled returns a copy of t with its completion flipped.
func (t Task) Toggled() Task {
	t.Completed = !t.Completed
	return t
}

// Collection is the ordered task list. Order is insertion order and is
// never changed by completion state or text.
type Collection []Task

// Clone returns an independent copy. A nil collection clones to an empty,
// non-nil one so that it encodes as [] rather than null.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}

// Index returns the position of the task with the given id, or -1.
func (c Collection) Index(id string) int {
	for i, t := range c {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with the given id.
func (c Collection) Get(id string) (Task, bool) {
	if i := c.Index(id); i >= 0 {
		return c[i], true
	}
	return Task{}, false
}

// Resolve finds a task by a user supplied reference: either a 1-based
// position in the list or an id prefix. An exact id match always wins over
// a prefix match.
func (c Collection) Resolve(ref string) (Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Task{}, ErrNotFound
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(c) {
		return c[n-1], nil
	}

	if t, ok := c.Get(ref); ok {
		return t, nil
	}

	var (
		match Task
		found int
	)
	for _, t := range c {
		if strings.HasPrefix(t.ID, ref) {
			match = t
			found++
		}
	}

	switch found {
	case 0:
		return Task{}, ErrNotFound
	case 1:
		return match, nil
	default:
		return Task{}, ErrAmbiguous
	}
}

// Counts returns the number of open and completed tasks.
func (c Collection) Counts() (open, done int) {
	for _, t := range c {
		if t.Completed {
			done++
		} else {
			open++
		}
	}
	return open, done
}
