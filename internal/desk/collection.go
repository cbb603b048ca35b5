package desk

import "sort"

// Collection is a snapshot of every item in the shell. Mutations never
// modify a stored item or the backing slice; they produce a new
// Collection sharing the untouched items, so an older snapshot stays
// valid for as long as anything holds it.
type Collection []*Item

// ByID returns the item with the given id, or nil.
func (c Collection) ByID(id string) *Item {
	for _, it := range c {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Children returns the direct children of parentID sorted by order,
// ties broken by insertion sequence.
func (c Collection) Children(parentID string) []*Item {
	var out []*Item
	for _, it := range c {
		if it.ParentID == parentID {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Tagged returns all non-trashed items carrying the given tag, the
// contents of a virtual tag view.
func (c Collection) Tagged(tag string) []*Item {
	var out []*Item
	for _, it := range c {
		if it.HasTag(tag) && !c.InTrash(it.ID) {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// MaxOrder returns the highest order value among parentID's children,
// or -1 when the folder is empty.
func (c Collection) MaxOrder(parentID string) int {
	max := -1
	for _, it := range c {
		if it.ParentID == parentID && it.Order > max {
			max = it.Order
		}
	}
	return max
}

// Descendants returns every item reachable below id, depth-first.
func (c Collection) Descendants(id string) []*Item {
	var out []*Item
	for _, it := range c {
		if it.ParentID == id {
			out = append(out, it)
			out = append(out, c.Descendants(it.ID)...)
		}
	}
	return out
}

// replace swaps updated items (matched by id) into a new collection.
func (c Collection) replace(updated ...*Item) Collection {
	byID := make(map[string]*Item, len(updated))
	for _, it := range updated {
		byID[it.ID] = it
	}
	out := make(Collection, len(c))
	for i, it := range c {
		if u, ok := byID[it.ID]; ok {
			out[i] = u
		} else {
			out[i] = it
		}
	}
	return out
}

// insert appends items to a new collection.
func (c Collection) insert(items ...*Item) Collection {
	out := make(Collection, 0, len(c)+len(items))
	out = append(out, c...)
	out = append(out, items...)
	return out
}

// remove drops the identified items from a new collection.
func (c Collection) remove(ids ...string) Collection {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := make(Collection, 0, len(c))
	for _, it := range c {
		if !drop[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

// Clone deep-copies every item, for callers that need a snapshot
// guaranteed to be isolated from all future and past state.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for i, it := range c {
		out[i] = it.Clone()
	}
	return out
}
