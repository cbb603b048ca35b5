package desk

// MoveToTrash moves items into the flat trash bin. Each item keeps its
// subtree intact: only the item itself is reparented, and descendants
// count as trashed through the ancestor walk. Explicit positions are
// cleared on the way in; the prior parent is stamped into trash
// metadata for restore.
func (s *Service) MoveToTrash(user *User, itemIDs []string) error {
	s.mu.Lock()
	var entries []TrashEntry
	for _, id := range itemIDs {
		it := s.items.ByID(id)
		if it == nil {
			continue
		}
		if err := s.gate(user, it, "move to trash"); err != nil {
			s.mu.Unlock()
			return err
		}
		if s.items.InTrash(id) {
			continue
		}
		entries = append(entries, TrashEntry{
			ItemID:      id,
			OldPosition: copyPoint(it.Position),
			OldModified: it.ModifiedAt,
		})
	}
	if len(entries) == 0 {
		s.mu.Unlock()
		return nil
	}

	v := s.commit(&TrashAction{Entries: entries, At: s.clock.Now()})
	s.mu.Unlock()
	s.stateChanged(v)
	return nil
}

// Restore takes items out of the trash bin and back to their recorded
// original parent, or to the desktop root when that parent no longer
// exists or is itself sitting in the trash. Only direct residents of
// the bin can be restored; anything deeper travels with its ancestor.
func (s *Service) Restore(user *User, itemIDs []string) error {
	s.mu.Lock()
	now := s.clock.Now()
	nextOrder := make(map[string]int)
	var entries []RestoreEntry
	for _, id := range itemIDs {
		it := s.items.ByID(id)
		if it == nil || it.ParentID != TrashID || it.Trash == nil {
			continue
		}
		dest := it.Trash.OriginalParentID
		if dest != RootID {
			parent := s.items.ByID(dest)
			if parent == nil || !parent.IsFolder() || s.items.InTrash(dest) {
				dest = RootID
			}
		}
		if _, ok := nextOrder[dest]; !ok {
			nextOrder[dest] = s.items.MaxOrder(dest) + 1
		}
		entries = append(entries, RestoreEntry{
			ItemID:          id,
			DestParentID:    dest,
			DestOrder:       nextOrder[dest],
			TrashedParentID: it.Trash.OriginalParentID,
			TrashedAt:       it.Trash.TrashedAt,
			OldOrder:        it.Order,
			OldModified:     it.ModifiedAt,
		})
		nextOrder[dest]++
	}
	if len(entries) == 0 {
		s.mu.Unlock()
		return nil
	}

	v := s.commit(&RestoreAction{Entries: entries, At: now})
	s.mu.Unlock()
	s.stateChanged(v)
	return nil
}

// PermanentDelete removes items and their whole subtrees from the
// collection. The committed action carries full snapshots of every
// removed item, so the deletion stays reversible exactly as long as it
// remains on the undo stack.
func (s *Service) PermanentDelete(user *User, itemIDs []string) error {
	s.mu.Lock()
	v, n := s.deleteLocked(itemIDs)
	s.mu.Unlock()
	if n > 0 {
		s.stateChanged(v)
	}
	return nil
}

// EmptyTrash permanently deletes everything in the bin as one action.
func (s *Service) EmptyTrash(user *User) error {
	s.mu.Lock()
	var ids []string
	for _, it := range s.items.Children(TrashID) {
		ids = append(ids, it.ID)
	}
	v, n := s.deleteLocked(ids)
	s.mu.Unlock()
	if n > 0 {
		s.stateChanged(v)
	}
	return nil
}

// deleteLocked builds and commits a DeleteAction for the given ids plus
// all their descendants. Returns the new version and the number of
// items removed; zero removals commit nothing. Caller holds s.mu.
func (s *Service) deleteLocked(itemIDs []string) (uint64, int) {
	seen := make(map[string]bool)
	var removed []*Item
	add := func(it *Item) {
		if !seen[it.ID] {
			seen[it.ID] = true
			removed = append(removed, it.Clone())
		}
	}
	for _, id := range itemIDs {
		it := s.items.ByID(id)
		if it == nil {
			continue
		}
		add(it)
		for _, d := range s.items.Descendants(id) {
			add(d)
		}
	}
	if len(removed) == 0 {
		return s.version, 0
	}

	v := s.commit(&DeleteAction{Removed: removed, At: s.clock.Now()})
	s.logger.Info("items permanently deleted", "count", len(removed))
	return v, len(removed)
}
