package desk

// ClipboardOpCopy is the only clipboard operation: moving is done by
// drag, never by cut/paste.
const ClipboardOpCopy = "copy"

// Clipboard holds at most one active copy-set. Paste does not clear it,
// so the same set may be pasted repeatedly.
type Clipboard struct {
	IDs       []string
	Operation string
}

// IsEmpty reports whether there is anything to paste.
func (cb Clipboard) IsEmpty() bool { return len(cb.IDs) == 0 }
