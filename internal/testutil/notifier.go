package testutil

import (
	"sync"

	"webdesk/internal/desk"
)

// RecordingNotifier captures notifications for assertions.
// Safe for concurrent use.
type RecordingNotifier struct {
	mu            sync.Mutex
	notifications []desk.Notification
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{}
}

func (r *RecordingNotifier) Notify(n desk.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, n)
}

// Notifications returns a copy of everything recorded so far.
func (r *RecordingNotifier) Notifications() []desk.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]desk.Notification(nil), r.notifications...)
}

// Count returns the number of recorded notifications.
func (r *RecordingNotifier) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.notifications)
}

// Compile-time check that RecordingNotifier implements desk.Notifier
var _ desk.Notifier = (*RecordingNotifier)(nil)
