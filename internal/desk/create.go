package desk

import (
	"fmt"
	"strings"
	"time"
)

// Manually created folders take a fixed low order instead of appending
// after existing siblings.
const manualFolderOrder = 0

// pasteOffset shifts a pasted clone's desktop coordinate so it does not
// land exactly on top of its source.
const pasteOffset = 24.0

// DefaultFolderName is used when a new folder is created without a name.
const DefaultFolderName = "Untitled Folder"

// CreateFolder makes a new empty folder under parentID. The name is
// de-duplicated against current siblings ("Untitled Folder",
// "Untitled Folder 2", ...). Returns a clone of the created item.
func (s *Service) CreateFolder(user *User, parentID, name string) (*Item, error) {
	s.mu.Lock()
	if err := s.validDestination(user, parentID, "create folder"); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFolderName
	}
	now := s.clock.Now()
	item := &Item{
		ID:         s.idgen.New(),
		ParentID:   parentID,
		Name:       uniqueSiblingName(s.items.Children(parentID), name, false),
		Kind:       KindFolder,
		Order:      manualFolderOrder,
		VisibleTo:  AllRoles(),
		CreatedAt:  now,
		ModifiedAt: now,
	}

	v := s.commit(&CreateAction{
		Item: item,
		Desc: fmt.Sprintf("Created folder %q", item.Name),
		At:   now,
	})
	s.mu.Unlock()
	s.stateChanged(v)
	return item.Clone(), nil
}

// Copy records the selection as the active copy-set. The clipboard
// holds ids, not snapshots: items deleted before the paste are simply
// skipped. Copying is not a mutation and is never logged to history.
func (s *Service) Copy(user *User, itemIDs []string) error {
	s.mu.Lock()
	var ids []string
	for _, id := range itemIDs {
		it := s.items.ByID(id)
		if it == nil {
			continue
		}
		if err := s.gate(user, it, "copy"); err != nil {
			s.mu.Unlock()
			return err
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		s.mu.Unlock()
		return nil
	}
	s.clipboard = Clipboard{IDs: ids, Operation: ClipboardOpCopy}
	s.logger.Debug("clipboard set", "count", len(ids))
	s.mu.Unlock()
	return nil
}

// Paste clones the copy-set into destID. Each copied subtree gets fresh
// ids throughout; only the pasted roots are renamed to dodge sibling
// collisions ("name copy", "name copy 2", ...) while children keep
// their original names. Desktop coordinates are offset by a fixed
// delta, and trash metadata never survives a paste. The clipboard is
// left untouched so the set can be pasted again.
func (s *Service) Paste(user *User, destID string) error {
	s.mu.Lock()
	if s.clipboard.IsEmpty() {
		err := s.reject("paste", ErrClipboardEmpty)
		s.mu.Unlock()
		return err
	}
	if err := s.validDestination(user, destID, "paste"); err != nil {
		s.mu.Unlock()
		return err
	}

	now := s.clock.Now()
	taken := make(map[string]bool)
	for _, sib := range s.items.Children(destID) {
		taken[sib.Name] = true
	}
	order := s.items.MaxOrder(destID) + 1

	var clones []*Item
	for _, id := range s.clipboard.IDs {
		src := s.items.ByID(id)
		if src == nil {
			continue
		}
		root := src.Clone()
		root.ID = s.idgen.New()
		root.ParentID = destID
		root.Name = uniqueNameAgainst(taken, src.Name, true)
		taken[root.Name] = true
		root.Order = order
		order++
		root.Trash = nil
		root.CreatedAt = now
		root.ModifiedAt = now
		if destID == RootID && src.Position != nil {
			root.Position = &Point{X: src.Position.X + pasteOffset, Y: src.Position.Y + pasteOffset}
		} else {
			root.Position = nil
		}
		clones = append(clones, root)
		clones = append(clones, s.cloneChildren(src.ID, root.ID, now)...)
	}
	if len(clones) == 0 {
		s.mu.Unlock()
		return nil
	}

	v := s.commit(&PasteAction{Items: clones, At: now})
	s.mu.Unlock()
	s.stateChanged(v)
	return nil
}

// cloneChildren deep-copies the subtree below srcID, giving every clone
// a fresh id under newParentID. Collision renaming applies only at the
// pasted root, so children keep their names, orders and positions.
func (s *Service) cloneChildren(srcID, newParentID string, now time.Time) []*Item {
	var out []*Item
	for _, child := range s.items.Children(srcID) {
		cp := child.Clone()
		cp.ID = s.idgen.New()
		cp.ParentID = newParentID
		cp.Trash = nil
		cp.CreatedAt = now
		cp.ModifiedAt = now
		out = append(out, cp)
		out = append(out, s.cloneChildren(child.ID, cp.ID, now)...)
	}
	return out
}

// uniqueSiblingName probes candidate names against existing siblings
// until a free one is found. copyStyle selects the paste sequence
// ("base copy", "base copy 2", ...) over the create sequence
// ("base 2", "base 3", ...). An extension, split at the last dot, is
// preserved through the probing.
func uniqueSiblingName(siblings []*Item, desired string, copyStyle bool) string {
	taken := make(map[string]bool, len(siblings))
	for _, sib := range siblings {
		taken[sib.Name] = true
	}
	return uniqueNameAgainst(taken, desired, copyStyle)
}

func uniqueNameAgainst(taken map[string]bool, desired string, copyStyle bool) string {
	if !taken[desired] {
		return desired
	}
	base, ext := splitExt(desired)
	if copyStyle {
		if cand := base + " copy" + ext; !taken[cand] {
			return cand
		}
		for n := 2; ; n++ {
			if cand := fmt.Sprintf("%s copy %d%s", base, n, ext); !taken[cand] {
				return cand
			}
		}
	}
	for n := 2; ; n++ {
		if cand := fmt.Sprintf("%s %d%s", base, n, ext); !taken[cand] {
			return cand
		}
	}
}

// splitExt separates a trailing extension at the last dot. Names with
// no dot, or a leading dot only, have no extension.
func splitExt(name string) (base, ext string) {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return name, ""
	}
	return name[:idx], name[idx:]
}
