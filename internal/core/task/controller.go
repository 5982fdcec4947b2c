package task

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxIDAttempts bounds how many candidates are drawn from the generator
// before falling back to a UUID.
const maxIDAttempts = 64

// Loader reads the persisted collection. Implementations never fail; a
// missing or unreadable value yields an empty collection.
type Loader interface {
	Load(ctx context.Context) Collection
}

// Scheduler accepts a snapshot to persist in the background. Schedule must
// not block on I/O.
type Scheduler interface {
	Schedule(tasks Collection)
}

// Notifier observes committed state changes. All methods are called on the
// controller's goroutine.
type Notifier interface {
	TasksChanged(tasks Collection)
	PendingChanged(old, next PendingAction)
}

// Deps holds the controller's collaborators.
type Deps struct {
	Store    Loader
	Saver    Scheduler
	IDs      IDGenerator // defaults to UUIDs
	Notifier Notifier    // optional
	Logger   zerolog.Logger
}

// Controller owns the task collection, the draft text buffer and the pending
// confirmation. It is the only writer of that state.
//
// A Controller is not safe for concurrent use. Intents are expected to arrive
// one at a time from a single event loop; persistence runs elsewhere on
// copies handed to the Scheduler.
type Controller struct {
	store  Loader
	saver  Scheduler
	ids    IDGenerator
	notify Notifier
	log    zerolog.Logger

	initialized bool
	tasks       Collection
	draft       string
	pending     PendingAction
	seen        map[string]struct{}
}

// NewController creates a controller with an empty collection. Call
// Initialize to load persisted tasks.
func NewController(deps Deps) *Controller {
	c := &Controller{
		store:  deps.Store,
		saver:  deps.Saver,
		ids:    deps.IDs,
		notify: deps.Notifier,
		log:    deps.Logger.With().Str("component", "task-controller").Logger(),
		tasks:  Collection{},
		seen:   make(map[string]struct{}),
	}

	if c.ids == nil {
		c.ids = UUIDs{}
	}
	if c.saver == nil {
		c.saver = discard{}
	}
	if c.notify == nil {
		c.notify = discard{}
	}

	return c
}

// Initialize loads the persisted collection. It runs once; later calls are
// no-ops. Records with empty or duplicate ids are given fresh ids in memory,
// and the repaired collection is written back.
func (c *Controller) Initialize(ctx context.Context) {
	if c.initialized {
		return
	}
	c.initialized = true

	if c.store == nil {
		return
	}

	loaded := c.store.Load(ctx)
	tasks := make(Collection, 0, len(loaded))
	repaired := 0
	for _, t := range loaded {
		if _, dup := c.seen[t.ID]; t.ID == "" || dup {
			t.ID = c.newID()
			repaired++
		} else {
			c.seen[t.ID] = struct{}{}
		}
		tasks = append(tasks, t)
	}
	c.tasks = tasks

	c.log.Debug().Int("count", len(tasks)).Int("repaired", repaired).Msg("tasks loaded")

	c.notify.TasksChanged(c.tasks.Clone())
	if repaired > 0 {
		c.saver.Schedule(c.tasks.Clone())
	}
}

// AddTask appends a new open task. Blank text is ignored.
func (c *Controller) AddTask(raw string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return
	}

	t := Task{ID: c.newID(), Text: text}
	c.tasks = append(c.tasks, t)
	c.draft = ""

	c.log.Debug().Str("task_id", t.ID).Msg("task added")
	c.commit()
}

// ToggleCompletion flips the completed flag of the task with id. Unknown ids
// are ignored.
func (c *Controller) ToggleCompletion(id string) {
	i := c.tasks.Index(id)
	if i < 0 {
		return
	}

	c.tasks = c.replaced(i, c.tasks[i].Toggled())
	c.commit()
}

// RequestEdit opens the edit confirmation for t and loads its text into the
// draft. Any open confirmation is replaced.
func (c *Controller) RequestEdit(t Task) {
	current, ok := c.tasks.Get(t.ID)
	if !ok {
		return
	}

	c.draft = current.Text
	c.setPending(PendingAction{Kind: PendingEdit, TaskID: current.ID})
}

// RequestDelete opens the delete confirmation for t and clears the draft.
// Any open confirmation is replaced.
func (c *Controller) RequestDelete(t Task) {
	if c.tasks.Index(t.ID) < 0 {
		return
	}

	c.draft = ""
	c.setPending(PendingAction{Kind: PendingDelete, TaskID: t.ID})
}

// ConfirmEdit applies newText to the edit target and closes the
// confirmation. Blank text closes the confirmation without changing the task.
// Without an open edit confirmation this does nothing.
func (c *Controller) ConfirmEdit(newText string) {
	if c.pending.Kind != PendingEdit {
		return
	}

	target := c.pending.TaskID
	text := strings.TrimSpace(newText)

	c.draft = ""
	c.setPending(NoPending)

	if text == "" {
		return
	}

	i := c.tasks.Index(target)
	if i < 0 {
		return
	}

	c.tasks = c.replaced(i, c.tasks[i].WithText(text))
	c.commit()
}

// ConfirmDelete removes the delete target and closes the confirmation.
// Without an open delete confirmation this does nothing.
func (c *Controller) ConfirmDelete() {
	if c.pending.Kind != PendingDelete {
		return
	}

	target := c.pending.TaskID
	c.setPending(NoPending)

	i := c.tasks.Index(target)
	if i < 0 {
		return
	}

	next := make(Collection, 0, len(c.tasks)-1)
	next = append(next, c.tasks[:i]...)
	next = append(next, c.tasks[i+1:]...)
	c.tasks = next

	c.log.Debug().Str("task_id", target).Msg("task deleted")
	c.commit()
}

// Cancel closes any open confirmation and clears the draft.
func (c *Controller) Cancel() {
	c.draft = ""
	c.setPending(NoPending)
}

// SetDraft replaces the draft text buffer.
func (c *Controller) SetDraft(text string) {
	c.draft = text
}

// Submit resolves the shared input according to the current mode: add in
// compose mode, confirm the edit in edit mode, confirm the deletion in
// delete mode.
func (c *Controller) Submit() {
	switch c.pending.Mode() {
	case ModeEdit:
		c.ConfirmEdit(c.draft)
	case ModeDelete:
		c.ConfirmDelete()
	default:
		c.AddTask(c.draft)
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Tasks:   c.tasks.Clone(),
		Draft:   c.draft,
		Pending: c.pending,
		Mode:    c.pending.Mode(),
	}
}

// Tasks returns a copy of the collection.
func (c *Controller) Tasks() Collection {
	return c.tasks.Clone()
}

// Find resolves a position or id prefix to a task.
func (c *Controller) Find(ref string) (Task, error) {
	return c.tasks.Resolve(ref)
}

// commit publishes the new collection and hands a copy to the saver. A
// pending action whose target no longer exists is dropped.
func (c *Controller) commit() {
	if !c.pending.IsNone() && c.tasks.Index(c.pending.TaskID) < 0 {
		c.draft = ""
		c.setPending(NoPending)
	}

	c.notify.TasksChanged(c.tasks.Clone())
	c.saver.Schedule(c.tasks.Clone())
}

func (c *Controller) setPending(next PendingAction) {
	old := c.pending
	c.pending = next
	if old != next {
		c.notify.PendingChanged(old, next)
	}
}

// replaced returns a new collection with the task at i swapped for t, so
// snapshots handed out earlier never observe the change.
func (c *Controller) replaced(i int, t Task) Collection {
	next := c.tasks.Clone()
	next[i] = t
	return next
}

// newID draws ids until one has not been issued or loaded this session.
func (c *Controller) newID() string {
	for range maxIDAttempts {
		id := c.ids.NewID()
		if _, taken := c.seen[id]; id != "" && !taken {
			c.seen[id] = struct{}{}
			return id
		}
	}

	id := uuid.NewString()
	c.seen[id] = struct{}{}
	return id
}

type discard struct{}

func (discard) Schedule(Collection)                         {}
func (discard) TasksChanged(Collection)                     {}
func (discard) PendingChanged(PendingAction, PendingAction) {}
