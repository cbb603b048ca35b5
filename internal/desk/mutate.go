package desk

import (
	"fmt"
	"strings"
)

// Rename changes an item's display name. Renaming to the current name
// is a silent no-op; sibling name collisions are deliberately allowed
// here (uniqueness is only advisory, applied where names are
// machine-generated: create and paste).
func (s *Service) Rename(user *User, itemID, newName string) error {
	s.mu.Lock()
	it := s.items.ByID(itemID)
	if it == nil {
		err := s.reject("rename", fmt.Errorf("%s: %w", itemID, ErrNotFound))
		s.mu.Unlock()
		return err
	}
	if s.items.InTrash(itemID) {
		err := s.reject("rename", fmt.Errorf("%q: %w", it.Name, ErrItemInTrash))
		s.mu.Unlock()
		return err
	}
	if err := s.gate(user, it, "rename"); err != nil {
		s.mu.Unlock()
		return err
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		err := s.reject("rename", ErrEmptyName)
		s.mu.Unlock()
		return err
	}
	if newName == it.Name {
		s.mu.Unlock()
		return nil
	}

	v := s.commit(&RenameAction{
		ItemID:      itemID,
		OldName:     it.Name,
		NewName:     newName,
		OldModified: it.ModifiedAt,
		At:          s.clock.Now(),
	})
	s.mu.Unlock()
	s.stateChanged(v)
	return nil
}

// Move reparents the selected items into targetID. The whole command is
// rejected if the target is the source or one of its descendants, or if
// any source sits in the trash bin (restore is the only way out of the
// bin), so a bad multi-selection never half-applies. Items already in
// the target are skipped; when nothing is left to move, no history is
// committed.
// drop, when non-nil, is the desktop drop coordinate and applies to the
// first (dragged) item only; all other moved items fall back to grid
// placement in the destination.
func (s *Service) Move(user *User, itemIDs []string, targetID string, drop *Point) error {
	s.mu.Lock()
	if err := s.validDestination(user, targetID, "move"); err != nil {
		s.mu.Unlock()
		return err
	}

	var sources []*Item
	for _, id := range itemIDs {
		it := s.items.ByID(id)
		if it == nil {
			continue
		}
		if id == targetID || s.items.IsDescendant(id, targetID) {
			err := s.reject("move", fmt.Errorf("cannot move %q into itself: %w", it.Name, ErrInvalidDestination))
			s.mu.Unlock()
			return err
		}
		if s.items.InTrash(id) {
			err := s.reject("move", fmt.Errorf("%q: %w", it.Name, ErrItemInTrash))
			s.mu.Unlock()
			return err
		}
		if err := s.gate(user, it, "move"); err != nil {
			s.mu.Unlock()
			return err
		}
		sources = append(sources, it)
	}

	now := s.clock.Now()
	order := s.items.MaxOrder(targetID) + 1
	var moves []ItemMove
	for i, it := range sources {
		var pos *Point
		if drop != nil && i == 0 {
			pos = copyPoint(drop)
		}
		if it.ParentID == targetID && (pos == nil || pointsEqual(it.Position, pos)) {
			continue
		}
		moves = append(moves, ItemMove{
			ItemID:      it.ID,
			From:        Placement{ParentID: it.ParentID, Order: it.Order, Position: copyPoint(it.Position)},
			To:          Placement{ParentID: targetID, Order: order, Position: pos},
			OldModified: it.ModifiedAt,
		})
		order++
	}
	if len(moves) == 0 {
		s.mu.Unlock()
		return nil
	}

	v := s.commit(&MoveAction{Moves: moves, At: now})
	s.mu.Unlock()
	s.stateChanged(v)
	return nil
}

func pointsEqual(a, b *Point) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Reposition sets an item's explicit desktop coordinate without
// reparenting it. The bin is flat, so trash residents cannot be placed.
func (s *Service) Reposition(user *User, itemID string, pos Point) error {
	s.mu.Lock()
	it := s.items.ByID(itemID)
	if it == nil {
		err := s.reject("reposition", fmt.Errorf("%s: %w", itemID, ErrNotFound))
		s.mu.Unlock()
		return err
	}
	if s.items.InTrash(itemID) {
		err := s.reject("reposition", fmt.Errorf("%q: %w", it.Name, ErrItemInTrash))
		s.mu.Unlock()
		return err
	}
	if err := s.gate(user, it, "reposition"); err != nil {
		s.mu.Unlock()
		return err
	}
	if it.Position != nil && *it.Position == pos {
		s.mu.Unlock()
		return nil
	}

	v := s.commit(&RepositionAction{
		ItemID:      itemID,
		Old:         copyPoint(it.Position),
		New:         &Point{X: pos.X, Y: pos.Y},
		OldModified: it.ModifiedAt,
		At:          s.clock.Now(),
	})
	s.mu.Unlock()
	s.stateChanged(v)
	return nil
}

// SwapOrder exchanges the order values of two items, the primitive
// behind manual reordering without reparenting.
func (s *Service) SwapOrder(user *User, aID, bID string) error {
	s.mu.Lock()
	if aID == bID {
		s.mu.Unlock()
		return nil
	}
	a := s.items.ByID(aID)
	b := s.items.ByID(bID)
	if a == nil || b == nil {
		err := s.reject("reorder", ErrNotFound)
		s.mu.Unlock()
		return err
	}
	if err := s.gate(user, a, "reorder"); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.gate(user, b, "reorder"); err != nil {
		s.mu.Unlock()
		return err
	}

	v := s.commit(&SwapAction{
		AID:       aID,
		BID:       bID,
		AOrder:    a.Order,
		BOrder:    b.Order,
		AModified: a.ModifiedAt,
		BModified: b.ModifiedAt,
		At:        s.clock.Now(),
	})
	s.mu.Unlock()
	s.stateChanged(v)
	return nil
}

// ToggleVisibility adds or removes a role from an item's visibility
// set. Visibility edits are not part of the undoable action log.
func (s *Service) ToggleVisibility(user *User, itemID string, role Role) error {
	s.mu.Lock()
	it := s.items.ByID(itemID)
	if it == nil {
		err := s.reject("visibility", fmt.Errorf("%s: %w", itemID, ErrNotFound))
		s.mu.Unlock()
		return err
	}
	if err := s.gate(user, it, "visibility"); err != nil {
		s.mu.Unlock()
		return err
	}

	cp := it.Clone()
	found := false
	for i, r := range cp.VisibleTo {
		if r == role {
			cp.VisibleTo = append(cp.VisibleTo[:i], cp.VisibleTo[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		cp.VisibleTo = append(cp.VisibleTo, role)
	}
	s.items = s.items.replace(cp)
	s.version++
	v := s.version
	s.logger.Info("visibility toggled", "item", itemID, "role", role, "visible", !found)
	s.mu.Unlock()
	s.stateChanged(v)
	return nil
}

// UpdateTags replaces an item's color-tag set. Tag edits are not part
// of the undoable action log.
func (s *Service) UpdateTags(user *User, itemID string, tags []string) error {
	s.mu.Lock()
	it := s.items.ByID(itemID)
	if it == nil {
		err := s.reject("tags", fmt.Errorf("%s: %w", itemID, ErrNotFound))
		s.mu.Unlock()
		return err
	}
	if err := s.gate(user, it, "tags"); err != nil {
		s.mu.Unlock()
		return err
	}

	cp := it.Clone()
	cp.Tags = append([]string(nil), tags...)
	s.items = s.items.replace(cp)
	s.version++
	v := s.version
	s.logger.Debug("tags updated", "item", itemID, "tags", strings.Join(tags, ","))
	s.mu.Unlock()
	s.stateChanged(v)
	return nil
}
