package desk

import "time"

// Notification levels.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Notification is a transient, user-facing message. Command failures
// are reported through this side channel rather than as UI dialogs.
type Notification struct {
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives user-facing notifications. The server fans them out
// to connected clients; tests record them.
type Notifier interface {
	Notify(n Notification)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Notify(Notification) {}
