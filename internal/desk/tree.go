package desk

// ResolvePath returns the ancestors of folderID from the topmost real
// folder down to folderID itself. The walk stops at the root sentinel,
// or immediately at the trash sentinel: the trash is presented as a
// flat bin, never as a hierarchy. Tag views have no real path and
// resolve to nil. The walk is bounded by the collection size so a
// corrupted parent chain cannot loop forever.
func (c Collection) ResolvePath(folderID string) []*Item {
	if folderID == RootID || folderID == TrashID || IsTagView(folderID) {
		return nil
	}
	var rev []*Item
	id := folderID
	for steps := 0; steps <= len(c); steps++ {
		it := c.ByID(id)
		if it == nil {
			break
		}
		rev = append(rev, it)
		if it.ParentID == RootID || it.ParentID == TrashID {
			break
		}
		id = it.ParentID
	}
	out := make([]*Item, len(rev))
	for i, it := range rev {
		out[len(rev)-1-i] = it
	}
	return out
}

// PathString renders a breadcrumb for folderID.
func (c Collection) PathString(folderID string) string {
	switch {
	case folderID == RootID:
		return "Desktop"
	case folderID == TrashID:
		return "Trash"
	case IsTagView(folderID):
		return "Tag: " + folderID[len(TagViewPrefix):]
	}
	s := "Desktop"
	for _, it := range c.ResolvePath(folderID) {
		s += " / " + it.Name
	}
	return s
}

// IsDescendant reports whether nodeID sits below ancestorID (or is
// ancestorID itself). Used as the move-cycle guard: a folder may not be
// moved into itself or any of its descendants.
func (c Collection) IsDescendant(ancestorID, nodeID string) bool {
	id := nodeID
	for steps := 0; steps <= len(c); steps++ {
		if id == ancestorID {
			return true
		}
		it := c.ByID(id)
		if it == nil {
			return false
		}
		id = it.ParentID
		if id == RootID || id == TrashID {
			return id == ancestorID
		}
	}
	return false
}

// InTrash reports whether the item's ancestor chain reaches the trash
// sentinel. Trashing a folder reparents only the folder itself, so its
// descendants count as trashed through this walk rather than through
// per-child mutation.
func (c Collection) InTrash(id string) bool {
	cur := c.ByID(id)
	for steps := 0; cur != nil && steps <= len(c); steps++ {
		if cur.ParentID == TrashID {
			return true
		}
		if cur.ParentID == RootID {
			return false
		}
		cur = c.ByID(cur.ParentID)
	}
	return false
}
