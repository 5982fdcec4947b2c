// Package tui renders the task list as a Bubble Tea program. The model holds
// only view state (cursor, focus, dialog); tasks, the draft and the pending
// confirmation live in the task.Controller and are read back on every render.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hay-kot/taskr/internal/core/config"
	"github.com/hay-kot/taskr/internal/core/eventbus"
	"github.com/hay-kot/taskr/internal/core/notify"
	"github.com/hay-kot/taskr/internal/core/task"
)

const (
	composePrompt = "New task:"
	editPrompt    = "Edit the task below:"
	deletePrompt  = "Are you sure you want to delete this task?"

	// infoStatusTTL is how long an info notification stays on screen. Errors
	// stay until replaced.
	infoStatusTTL = 5 * time.Second
)

// SaveState reports whether changes are still waiting to be written.
type SaveState interface {
	Dirty() bool
}

// Deps holds the collaborators the model reads from.
type Deps struct {
	Tasks  *task.Controller
	Bus    *eventbus.EventBus // optional; feeds the status line and state sync
	Saver  SaveState          // optional; marks unsaved changes in the header
	Config *config.Config     // optional
}

type clearStatusMsg struct {
	seq int
}

// stateChangedMsg means the controller or saver changed outside a key press.
type stateChangedMsg struct{}

// Model is the Bubble Tea model for the task list.
type Model struct {
	tasks         *task.Controller
	confirmDelete bool
	keys          keyMap
	help          help.Model
	input         textinput.Model
	notes         *NotificationBuffer
	saver         SaveState
	changed       chan struct{}

	cursor      int
	inputOpen   bool
	modal       *Modal
	modalTaskID string
	status      *notify.Notification
	statusSeq   int
	width       int
	height      int
}

// New creates the model. When deps.Bus is set the model subscribes to
// notifications for the status line, and re-syncs its dialog with the
// controller whenever tasks, the pending action or the save state change.
func New(deps Deps) *Model {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = "› "
	input.CharLimit = 500

	m := &Model{
		tasks:         deps.Tasks,
		confirmDelete: true,
		keys:          defaultKeyMap(),
		help:          help.New(),
		input:         input,
		saver:         deps.Saver,
	}

	if deps.Config != nil {
		m.confirmDelete = deps.Config.TUI.ShouldConfirmDelete()
	}

	if deps.Bus != nil {
		notes := NewNotificationBuffer()
		deps.Bus.SubscribeNotificationPublished(func(p eventbus.NotificationPublishedPayload) {
			notes.Push(notify.Notification{Level: p.Level, Message: p.Message})
		})
		m.notes = notes

		m.changed = make(chan struct{}, 1)
		deps.Bus.SubscribePendingChanged(func(eventbus.PendingChangedPayload) { m.signalChange() })
		deps.Bus.SubscribeTasksChanged(func(eventbus.TasksChangedPayload) { m.signalChange() })
		deps.Bus.SubscribeSaveCompleted(func(eventbus.SaveCompletedPayload) { m.signalChange() })
		deps.Bus.SubscribeSaveFailed(func(eventbus.SaveFailedPayload) { m.signalChange() })
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	if m.notes == nil {
		return nil
	}
	return tea.Batch(m.notes.WaitForSignal(), m.waitForChange())
}

// signalChange runs on the bus goroutine; signals coalesce.
func (m *Model) signalChange() {
	select {
	case m.changed <- struct{}{}:
	default:
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changed
		return stateChangedMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case drainNotificationsMsg:
		cmd := m.showNotifications(m.notes.Drain())
		return m, tea.Batch(cmd, m.notes.WaitForSignal())

	case stateChangedMsg:
		m.syncModal()
		m.clampCursor()
		return m, m.waitForChange()

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = nil
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.inputOpen {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return tea.Quit
	}

	switch {
	case m.modal != nil:
		return m.handleModalKey(msg)
	case m.inputOpen:
		return m.handleInputKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks.Tasks())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		return m.openInput()
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.tasks.ToggleCompletion(t.ID)
		}
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			return nil
		}
		m.tasks.RequestEdit(t)
		return m.openInput()
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selected()
		if !ok {
			return nil
		}
		m.tasks.RequestDelete(t)
		if !m.confirmDelete {
			m.tasks.ConfirmDelete()
			m.clampCursor()
			return nil
		}
		m.syncModal()
	case key.Matches(msg, m.keys.Cancel):
		m.tasks.Cancel()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.tasks.SetDraft(m.input.Value())
		mode := m.tasks.Snapshot().Mode
		before := len(m.tasks.Tasks())

		m.tasks.Submit()

		if mode == task.ModeEdit {
			m.closeInput()
			return nil
		}
		if after := len(m.tasks.Tasks()); after > before {
			m.cursor = after - 1
		}
		m.input.SetValue(m.tasks.Snapshot().Draft)
		return nil

	case key.Matches(msg, m.keys.Cancel):
		m.tasks.Cancel()
		m.closeInput()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.tasks.SetDraft(m.input.Value())
	return cmd
}

func (m *Model) handleModalKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.resolveModal(true)
	case "n", "N", "esc":
		m.resolveModal(false)
	case "enter":
		m.resolveModal(m.modal.ConfirmSelected())
	case "left", "right", "h", "l", "tab", "shift+tab":
		m.modal.ToggleSelection()
	}
	return nil
}

func (m *Model) resolveModal(confirmed bool) {
	m.modal = nil
	m.modalTaskID = ""
	if confirmed {
		m.tasks.ConfirmDelete()
		m.clampCursor()
		return
	}
	m.tasks.Cancel()
}

// syncModal shows the delete dialog exactly while the controller holds a
// pending delete, built from the task it targets.
func (m *Model) syncModal() {
	snap := m.tasks.Snapshot()
	target, ok := snap.Target()
	if !ok || snap.Pending.Kind != task.PendingDelete || !m.confirmDelete {
		m.modal = nil
		m.modalTaskID = ""
		return
	}

	if m.modal != nil && m.modalTaskID == target.ID {
		return
	}
	modal := NewModal(deletePrompt, target.Text)
	m.modal = &modal
	m.modalTaskID = target.ID
}

// openInput focuses the input and loads the controller's draft into it.
func (m *Model) openInput() tea.Cmd {
	m.inputOpen = true
	m.input.SetValue(m.tasks.Snapshot().Draft)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closeInput() {
	m.inputOpen = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) selected() (task.Task, bool) {
	tasks := m.tasks.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.tasks.Tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// showNotifications displays the newest notification. Info messages expire.
func (m *Model) showNotifications(ns []notify.Notification) tea.Cmd {
	if len(ns) == 0 {
		return nil
	}

	latest := ns[len(ns)-1]
	m.status = &latest
	m.statusSeq++

	if latest.Level != notify.LevelInfo {
		return nil
	}

	seq := m.statusSeq
	return tea.Tick(infoStatusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
