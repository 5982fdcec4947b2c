// Package notify defines user-facing notifications raised from domain events.
package notify

import "time"

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single message shown to the user.
type Notification struct {
	Level     Level
	Message   string
	CreatedAt time.Time
}
