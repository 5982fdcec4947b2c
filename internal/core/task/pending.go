package task

// PendingKind identifies which confirmation, if any, is open.
type PendingKind int

const (
	PendingNone PendingKind = iota
	PendingEdit
	PendingDelete
)

func (k PendingKind) String() string {
	switch k {
	case PendingEdit:
		return "confirm-edit"
	case PendingDelete:
		return "confirm-delete"
	default:
		return "none"
	}
}

// PendingAction is the single confirmation slot. TaskID is empty when Kind
// is PendingNone.
type PendingAction struct {
	Kind   PendingKind
	TaskID string
}

// NoPending is the resting state of the confirmation slot.
var NoPending = PendingAction{}

// IsNone reports whether no confirmation is open.
func (p PendingAction) IsNone() bool {
	return p.Kind == PendingNone
}

func (p PendingAction) String() string {
	if p.IsNone() {
		return p.Kind.String()
	}
	return p.Kind.String() + "(" + p.TaskID + ")"
}

// Mode is what the shared text input is currently used for.
type Mode string

const (
	ModeCompose Mode = "compose"
	ModeEdit    Mode = "edit"
	ModeDelete  Mode = "delete"
)

// Mode derives the input mode from the pending action.
func (p PendingAction) Mode() Mode {
	switch p.Kind {
	case PendingEdit:
		return ModeEdit
	case PendingDelete:
		return ModeDelete
	default:
		return ModeCompose
	}
}

// Snapshot is a read-only copy of the controller state for renderers.
type Snapshot struct {
	Tasks   Collection
	Draft   string
	Pending PendingAction
	Mode    Mode
}

// Target returns the task referenced by the pending action.
func (s Snapshot) Target() (Task, bool) {
	if s.Pending.IsNone() {
		return Task{}, false
	}
	return s.Tasks.Get(s.Pending.TaskID)
}
