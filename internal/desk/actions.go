package desk

import (
	"fmt"
	"time"
)

// ActionKind tags a history action. The set is closed: every mutating
// command that touches the collection maps to exactly one kind, and
// each kind has exactly one inversion rule.
type ActionKind string

const (
	ActionRename     ActionKind = "rename"
	ActionMove       ActionKind = "move"
	ActionReposition ActionKind = "reposition"
	ActionSwap       ActionKind = "swap"
	ActionTrash      ActionKind = "trash"
	ActionRestore    ActionKind = "restore"
	ActionDelete     ActionKind = "permanent-delete"
	ActionCreate     ActionKind = "create"
	ActionPaste      ActionKind = "paste"
)

// Action is one completed mutation, replayable forward (redo) and
// backward (undo). Each concrete action carries statically-known
// old/new fields rather than a generic diff: apply reproduces the
// exact post-state and revert the exact pre-state, including modified
// timestamps, so an undone sequence compares equal field-by-field.
type Action interface {
	Kind() ActionKind
	Description() string
	When() time.Time

	apply(c Collection) Collection
	revert(c Collection) Collection
}

func copyPoint(p *Point) *Point {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

// RenameAction records a name change.
type RenameAction struct {
	ItemID      string
	OldName     string
	NewName     string
	OldModified time.Time
	At          time.Time
}

func (a *RenameAction) Kind() ActionKind { return ActionRename }
func (a *RenameAction) When() time.Time  { return a.At }
func (a *RenameAction) Description() string {
	return fmt.Sprintf("Renamed %q to %q", a.OldName, a.NewName)
}

func (a *RenameAction) apply(c Collection) Collection {
	it := c.ByID(a.ItemID)
	if it == nil {
		return c
	}
	cp := it.Clone()
	cp.Name = a.NewName
	cp.ModifiedAt = a.At
	return c.replace(cp)
}

func (a *RenameAction) revert(c Collection) Collection {
	it := c.ByID(a.ItemID)
	if it == nil {
		return c
	}
	cp := it.Clone()
	cp.Name = a.OldName
	cp.ModifiedAt = a.OldModified
	return c.replace(cp)
}

// Placement is where an item sits: containing folder, sibling order,
// and optional explicit desktop coordinate.
type Placement struct {
	ParentID string
	Order    int
	Position *Point
}

// ItemMove is one item's old and new placement within a MoveAction.
type ItemMove struct {
	ItemID      string
	From        Placement
	To          Placement
	OldModified time.Time
}

// MoveAction records a reparenting of one or more co-selected items.
type MoveAction struct {
	Moves []ItemMove
	At    time.Time
}

func (a *MoveAction) Kind() ActionKind { return ActionMove }
func (a *MoveAction) When() time.Time  { return a.At }
func (a *MoveAction) Description() string {
	return fmt.Sprintf("Moved %d item(s)", len(a.Moves))
}

func (a *MoveAction) place(c Collection, pick func(ItemMove) (Placement, time.Time)) Collection {
	updated := make([]*Item, 0, len(a.Moves))
	for _, m := range a.Moves {
		it := c.ByID(m.ItemID)
		if it == nil {
			continue
		}
		p, mod := pick(m)
		cp := it.Clone()
		cp.ParentID = p.ParentID
		cp.Order = p.Order
		cp.Position = copyPoint(p.Position)
		cp.ModifiedAt = mod
		updated = append(updated, cp)
	}
	return c.replace(updated...)
}

func (a *MoveAction) apply(c Collection) Collection {
	return a.place(c, func(m ItemMove) (Placement, time.Time) { return m.To, a.At })
}

func (a *MoveAction) revert(c Collection) Collection {
	return a.place(c, func(m ItemMove) (Placement, time.Time) { return m.From, m.OldModified })
}

// RepositionAction records an explicit coordinate change with no
// reparenting.
type RepositionAction struct {
	ItemID      string
	Old         *Point
	New         *Point
	OldModified time.Time
	At          time.Time
}

func (a *RepositionAction) Kind() ActionKind    { return ActionReposition }
func (a *RepositionAction) When() time.Time     { return a.At }
func (a *RepositionAction) Description() string { return "Repositioned item" }

func (a *RepositionAction) set(c Collection, p *Point, mod time.Time) Collection {
	it := c.ByID(a.ItemID)
	if it == nil {
		return c
	}
	cp := it.Clone()
	cp.Position = copyPoint(p)
	cp.ModifiedAt = mod
	return c.replace(cp)
}

func (a *RepositionAction) apply(c Collection) Collection  { return a.set(c, a.New, a.At) }
func (a *RepositionAction) revert(c Collection) Collection { return a.set(c, a.Old, a.OldModified) }

// SwapAction records a manual reorder: two items exchange order values.
type SwapAction struct {
	AID       string
	BID       string
	AOrder    int
	BOrder    int
	AModified time.Time
	BModified time.Time
	At        time.Time
}

func (a *SwapAction) Kind() ActionKind    { return ActionSwap }
func (a *SwapAction) When() time.Time     { return a.At }
func (a *SwapAction) Description() string { return "Reordered items" }

func (a *SwapAction) set(c Collection, aOrder, bOrder int, aMod, bMod time.Time) Collection {
	var updated []*Item
	if it := c.ByID(a.AID); it != nil {
		cp := it.Clone()
		cp.Order = aOrder
		cp.ModifiedAt = aMod
		updated = append(updated, cp)
	}
	if it := c.ByID(a.BID); it != nil {
		cp := it.Clone()
		cp.Order = bOrder
		cp.ModifiedAt = bMod
		updated = append(updated, cp)
	}
	return c.replace(updated...)
}

func (a *SwapAction) apply(c Collection) Collection {
	return a.set(c, a.BOrder, a.AOrder, a.At, a.At)
}

func (a *SwapAction) revert(c Collection) Collection {
	return a.set(c, a.AOrder, a.BOrder, a.AModified, a.BModified)
}

// TrashEntry preserves what trashing destroys besides the parent link:
// the explicit position (cleared on entering the bin) and the modified
// timestamp. The original parent itself is reconstructed from the
// item's trash metadata at undo time.
type TrashEntry struct {
	ItemID      string
	OldPosition *Point
	OldModified time.Time
}

// TrashAction records moving items into the trash bin.
type TrashAction struct {
	Entries []TrashEntry
	At      time.Time
}

func (a *TrashAction) Kind() ActionKind { return ActionTrash }
func (a *TrashAction) When() time.Time  { return a.At }
func (a *TrashAction) Description() string {
	return fmt.Sprintf("Moved %d item(s) to Trash", len(a.Entries))
}

func (a *TrashAction) apply(c Collection) Collection {
	updated := make([]*Item, 0, len(a.Entries))
	for _, e := range a.Entries {
		it := c.ByID(e.ItemID)
		if it == nil {
			continue
		}
		cp := it.Clone()
		cp.Trash = &TrashMeta{OriginalParentID: cp.ParentID, TrashedAt: a.At}
		cp.ParentID = TrashID
		cp.Position = nil
		cp.ModifiedAt = a.At
		updated = append(updated, cp)
	}
	return c.replace(updated...)
}

func (a *TrashAction) revert(c Collection) Collection {
	updated := make([]*Item, 0, len(a.Entries))
	for _, e := range a.Entries {
		it := c.ByID(e.ItemID)
		if it == nil || it.Trash == nil {
			continue
		}
		cp := it.Clone()
		cp.ParentID = cp.Trash.OriginalParentID
		if c.ByID(cp.ParentID) == nil && cp.ParentID != RootID {
			cp.ParentID = RootID
		}
		cp.Trash = nil
		cp.Position = copyPoint(e.OldPosition)
		cp.ModifiedAt = e.OldModified
		updated = append(updated, cp)
	}
	return c.replace(updated...)
}

// RestoreEntry captures both sides of a restore: the destination it
// goes to and the trash metadata it gives up.
type RestoreEntry struct {
	ItemID          string
	DestParentID    string
	DestOrder       int
	TrashedParentID string
	TrashedAt       time.Time
	OldOrder        int
	OldModified     time.Time
}

// RestoreAction records taking items out of the trash bin.
type RestoreAction struct {
	Entries []RestoreEntry
	At      time.Time
}

func (a *RestoreAction) Kind() ActionKind { return ActionRestore }
func (a *RestoreAction) When() time.Time  { return a.At }
func (a *RestoreAction) Description() string {
	return fmt.Sprintf("Restored %d item(s)", len(a.Entries))
}

func (a *RestoreAction) apply(c Collection) Collection {
	updated := make([]*Item, 0, len(a.Entries))
	for _, e := range a.Entries {
		it := c.ByID(e.ItemID)
		if it == nil {
			continue
		}
		cp := it.Clone()
		cp.ParentID = e.DestParentID
		cp.Order = e.DestOrder
		cp.Trash = nil
		cp.ModifiedAt = a.At
		updated = append(updated, cp)
	}
	return c.replace(updated...)
}

func (a *RestoreAction) revert(c Collection) Collection {
	updated := make([]*Item, 0, len(a.Entries))
	for _, e := range a.Entries {
		it := c.ByID(e.ItemID)
		if it == nil {
			continue
		}
		cp := it.Clone()
		cp.ParentID = TrashID
		cp.Order = e.OldOrder
		cp.Trash = &TrashMeta{OriginalParentID: e.TrashedParentID, TrashedAt: e.TrashedAt}
		cp.ModifiedAt = e.OldModified
		updated = append(updated, cp)
	}
	return c.replace(updated...)
}

// DeleteAction removes items from the collection entirely. It carries a
// full snapshot of every removed item (descendants included) so undo
// can resurrect them byte-for-byte.
type DeleteAction struct {
	Removed []*Item
	At      time.Time
}

func (a *DeleteAction) Kind() ActionKind { return ActionDelete }
func (a *DeleteAction) When() time.Time  { return a.At }
func (a *DeleteAction) Description() string {
	return fmt.Sprintf("Permanently deleted %d item(s)", len(a.Removed))
}

func (a *DeleteAction) apply(c Collection) Collection {
	ids := make([]string, len(a.Removed))
	for i, it := range a.Removed {
		ids[i] = it.ID
	}
	return c.remove(ids...)
}

func (a *DeleteAction) revert(c Collection) Collection {
	clones := make([]*Item, len(a.Removed))
	for i, it := range a.Removed {
		clones[i] = it.Clone()
	}
	return c.insert(clones...)
}

// CreateAction records a new folder or a completed upload.
type CreateAction struct {
	Item *Item
	Desc string
	At   time.Time
}

func (a *CreateAction) Kind() ActionKind    { return ActionCreate }
func (a *CreateAction) When() time.Time     { return a.At }
func (a *CreateAction) Description() string { return a.Desc }

func (a *CreateAction) apply(c Collection) Collection {
	if c.ByID(a.Item.ID) != nil {
		return c
	}
	return c.insert(a.Item.Clone())
}

func (a *CreateAction) revert(c Collection) Collection {
	return c.remove(a.Item.ID)
}

// PasteAction records the clones produced by one paste.
type PasteAction struct {
	Items []*Item
	At    time.Time
}

func (a *PasteAction) Kind() ActionKind { return ActionPaste }
func (a *PasteAction) When() time.Time  { return a.At }
func (a *PasteAction) Description() string {
	return fmt.Sprintf("Pasted %d item(s)", len(a.Items))
}

func (a *PasteAction) apply(c Collection) Collection {
	clones := make([]*Item, len(a.Items))
	for i, it := range a.Items {
		clones[i] = it.Clone()
	}
	return c.insert(clones...)
}

func (a *PasteAction) revert(c Collection) Collection {
	ids := make([]string, len(a.Items))
	for i, it := range a.Items {
		ids[i] = it.ID
	}
	return c.remove(ids...)
}
