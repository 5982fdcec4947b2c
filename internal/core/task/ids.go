package task

import (
	"github.com/google/uuid"

	"github.com/hay-kot/taskr/pkg/randid"
)

// IDGenerator produces candidate task ids. The controller rejects any
// candidate it has already seen this session, so generators only need to be
// unlikely to collide, not guaranteed unique.
type IDGenerator interface {
	NewID() string
}

// IDStyle names a built-in generator.
type IDStyle string

const (
	IDStyleUUID  IDStyle = "uuid"
	IDStyleShort IDStyle = "short"
)

// IsValid reports whether s names a known generator.
func (s IDStyle) IsValid() bool {
	switch s {
	case IDStyleUUID, IDStyleShort:
		return true
	default:
		return false
	}
}

// NewIDGenerator returns the generator for style, defaulting to UUIDs.
func NewIDGenerator(style IDStyle) IDGenerator {
	if style == IDStyleShort {
		return ShortIDs{Length: 8}
	}
	return UUIDs{}
}

// UUIDs generates random (version 4) UUID strings, so that short id
// prefixes of tasks added together still differ.
type UUIDs struct{}

func (UUIDs) NewID() string {
	return uuid.NewString()
}

// ShortIDs generates short lowercase alphanumeric tokens.
type ShortIDs struct {
	Length int
}

func (g ShortIDs) NewID() string {
	return randid.Generate(g.Length)
}
