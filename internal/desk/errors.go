package desk

import "errors"

// Failure categories for rejected commands. Every rejection leaves the
// collection untouched; there is no failure mode that corrupts state.
var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrNotFound           = errors.New("item not found")
	ErrItemInTrash        = errors.New("item is in the trash")
	ErrEmptyName          = errors.New("name must not be empty")
	ErrClipboardEmpty     = errors.New("clipboard is empty")
)
