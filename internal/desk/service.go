package desk

import (
	"fmt"
	"sync"
)

// Observer is told when the collection changes so UIs can re-render.
type Observer interface {
	StateChanged(version uint64)
}

// Service owns all shell state — the item collection, the user roster,
// the clipboard, the history log and in-flight transfers — and is the
// only way to mutate any of it. Commands are serialized under one
// mutex: the model is a single actor, the lock exists only because the
// HTTP surface calls in from multiple goroutines.
type Service struct {
	mu        sync.Mutex
	items     Collection
	users     []*User
	clipboard Clipboard
	history   History
	transfers []*Transfer
	observers []Observer
	version   uint64

	logger   Logger
	notifier Notifier
	clock    Clock
	idgen    IDGenerator
}

// NewService creates a Service seeded with the given items and users.
func NewService(items []*Item, users []*User, logger Logger, notifier Notifier, clock Clock, idgen IDGenerator) *Service {
	return &Service{
		items:    Collection(items).Clone(),
		users:    append([]*User(nil), users...),
		logger:   logger,
		notifier: notifier,
		clock:    clock,
		idgen:    idgen,
	}
}

// AddObserver registers an observer for state-change callbacks.
func (s *Service) AddObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Version returns the state version, incremented on every committed,
// undone or redone action.
func (s *Service) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Users returns the current user roster.
func (s *Service) Users() []*User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*User(nil), s.users...)
}

// UserByName finds a user by login name.
func (s *Service) UserByName(name string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// UserByID finds a user by id.
func (s *Service) UserByID(id string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// ReplaceUsers swaps the user roster, used by live config reload.
func (s *Service) ReplaceUsers(users []*User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]*User(nil), users...)
	s.logger.Info("user roster replaced", "count", len(users))
}

// VisibleItems returns clones of every item the user may see.
func (s *Service) VisibleItems(user *User) []*Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*Item
	for _, it := range s.items {
		if IsVisible(user, it) {
			out = append(out, it.Clone())
		}
	}
	return out
}

// VisibleChildren lists a container for the user: a real folder's
// children, the flat trash bin, the desktop root, or a virtual tag
// view. Descendants of a trashed folder never appear in normal views.
func (s *Service) VisibleChildren(user *User, folderID string) ([]*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var candidates []*Item
	switch {
	case IsTagView(folderID):
		candidates = s.items.Tagged(folderID[len(TagViewPrefix):])
	case folderID == RootID || folderID == TrashID:
		candidates = s.items.Children(folderID)
	default:
		folder := s.items.ByID(folderID)
		if folder == nil {
			return nil, ErrNotFound
		}
		if !folder.IsFolder() {
			return nil, ErrInvalidDestination
		}
		if !IsVisible(user, folder) {
			return nil, ErrPermissionDenied
		}
		if s.items.InTrash(folderID) {
			// A trashed folder is only browsable through the bin.
			return nil, ErrItemInTrash
		}
		candidates = s.items.Children(folderID)
	}

	var out []*Item
	for _, it := range candidates {
		if IsVisible(user, it) {
			out = append(out, it.Clone())
		}
	}
	return out, nil
}

// ResolvePath returns clones of the ancestor chain for folderID.
func (s *Service) ResolvePath(folderID string) []*Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := s.items.ResolvePath(folderID)
	out := make([]*Item, len(path))
	for i, it := range path {
		out[i] = it.Clone()
	}
	return out
}

// PathString renders the breadcrumb for folderID.
func (s *Service) PathString(folderID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.PathString(folderID)
}

// Snapshot returns an isolated deep copy of the whole collection.
func (s *Service) Snapshot() Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone()
}

// ClipboardState returns the current copy-set.
func (s *Service) ClipboardState() Clipboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Clipboard{IDs: append([]string(nil), s.clipboard.IDs...), Operation: s.clipboard.Operation}
}

// HistorySummaries lists committed actions oldest-first.
func (s *Service) HistorySummaries() []ActionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Summaries()
}

// CanUndo reports whether an undo would do anything.
func (s *Service) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether a redo would do anything.
func (s *Service) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// Undo reverses the most recent committed action. Returns false when
// the undo stack is empty.
func (s *Service) Undo() bool {
	s.mu.Lock()
	a, ok := s.history.PopUndo()
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.items = a.revert(s.items)
	s.history.PushRedo(a)
	s.version++
	v := s.version
	s.logger.Info("action undone", "kind", a.Kind(), "description", a.Description())
	s.mu.Unlock()
	s.stateChanged(v)
	return true
}

// Redo replays the most recently undone action. Returns false when the
// redo stack is empty.
func (s *Service) Redo() bool {
	s.mu.Lock()
	a, ok := s.history.PopRedo()
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.items = a.apply(s.items)
	s.history.PushUndo(a)
	s.version++
	v := s.version
	s.logger.Info("action redone", "kind", a.Kind(), "description", a.Description())
	s.mu.Unlock()
	s.stateChanged(v)
	return true
}

// commit applies a freshly built action, logs it and pushes it onto the
// undo stack. Callers hold s.mu; commit returns the version to report.
func (s *Service) commit(a Action) uint64 {
	s.items = a.apply(s.items)
	s.history.Commit(a)
	s.version++
	s.logger.Info("action committed", "kind", a.Kind(), "description", a.Description())
	return s.version
}

// reject emits the user-facing failure notification and returns err.
// Callers hold s.mu.
func (s *Service) reject(op string, err error) error {
	s.notifier.Notify(Notification{
		Level:   LevelError,
		Message: fmt.Sprintf("%s: %v", op, err),
		At:      s.clock.Now(),
	})
	s.logger.Warn("command rejected", "op", op, "reason", err)
	return err
}

// stateChanged fans out a version bump. Called without s.mu held so
// observers may call back into the service.
func (s *Service) stateChanged(version uint64) {
	s.mu.Lock()
	obs := append([]Observer(nil), s.observers...)
	s.mu.Unlock()
	for _, o := range obs {
		o.StateChanged(version)
	}
}

// gate checks the flat visibility-as-permission policy for a mutating
// or opening operation.
func (s *Service) gate(user *User, it *Item, op string) error {
	if !HasFullAccess(user, it) {
		return s.reject(op, fmt.Errorf("%q: %w", it.Name, ErrPermissionDenied))
	}
	return nil
}

// validDestination checks that folderID may receive new or moved items
// for this user: the root, or a visible real folder outside the trash.
// The trash bin and tag views are never valid destinations.
func (s *Service) validDestination(user *User, folderID, op string) error {
	if folderID == TrashID || IsTagView(folderID) {
		return s.reject(op, ErrInvalidDestination)
	}
	if folderID == RootID {
		return nil
	}
	folder := s.items.ByID(folderID)
	if folder == nil {
		return s.reject(op, fmt.Errorf("%s: %w", folderID, ErrNotFound))
	}
	if !folder.IsFolder() {
		return s.reject(op, ErrInvalidDestination)
	}
	if s.items.InTrash(folderID) {
		return s.reject(op, ErrInvalidDestination)
	}
	return s.gate(user, folder, op)
}
