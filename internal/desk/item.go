package desk

import "time"

// Reserved parent ids. Neither is a real item: the root is the desktop
// surface and the trash is a flat bin.
const (
	RootID  = "root"
	TrashID = "trash"
)

// TagViewPrefix marks virtual folder ids computed by filtering on a tag.
// Tag views are not tree nodes and cannot contain items.
const TagViewPrefix = "tag:"

// Kind classifies an item. Only folders may have children.
type Kind string

const (
	KindFolder  Kind = "folder"
	KindImage   Kind = "image"
	KindText    Kind = "text"
	KindVideo   Kind = "video"
	KindAudio   Kind = "audio"
	KindPDF     Kind = "pdf"
	KindCode    Kind = "code"
	KindArchive Kind = "archive"
	KindSheet   Kind = "sheet"
	KindUnknown Kind = "unknown"
)

// Point is an explicit 2D desktop coordinate. When present on an item it
// overrides grid placement; grid placement itself is a presentation
// concern and never stored.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TrashMeta is attached to an item while it sits in the trash bin so a
// restore can put it back where it came from.
type TrashMeta struct {
	OriginalParentID string    `json:"original_parent_id"`
	TrashedAt        time.Time `json:"trashed_at"`
}

// Item is the sole entity of the model: a file or a folder.
// Items form a forest rooted at RootID plus a flat bucket under TrashID.
type Item struct {
	ID         string     `json:"id"`
	ParentID   string     `json:"parent_id"`
	Name       string     `json:"name"`
	Kind       Kind       `json:"kind"`
	Size       int64      `json:"size,omitempty"`
	Content    string     `json:"content,omitempty"`
	Order      int        `json:"order"`
	Position   *Point     `json:"position,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	VisibleTo  []Role     `json:"visible_to"`
	Trash      *TrashMeta `json:"trash,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `json:"modified_at"`
}

// IsFolder reports whether the item can contain children.
func (it *Item) IsFolder() bool { return it.Kind == KindFolder }

// HasTag reports membership of tag in the item's tag set.
func (it *Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Mutations never touch a stored item in
// place; they clone, modify the clone, and swap it into a new collection.
func (it *Item) Clone() *Item {
	cp := *it
	if it.Position != nil {
		p := *it.Position
		cp.Position = &p
	}
	if it.Trash != nil {
		tm := *it.Trash
		cp.Trash = &tm
	}
	if it.Tags != nil {
		cp.Tags = append([]string(nil), it.Tags...)
	}
	if it.VisibleTo != nil {
		cp.VisibleTo = append([]Role(nil), it.VisibleTo...)
	}
	return &cp
}

// Equal reports field-by-field equality, comparing position, trash
// metadata and the tag/role sets by value.
func (it *Item) Equal(other *Item) bool {
	if it == nil || other == nil {
		return it == other
	}
	if it.ID != other.ID || it.ParentID != other.ParentID ||
		it.Name != other.Name || it.Kind != other.Kind ||
		it.Size != other.Size || it.Content != other.Content ||
		it.Order != other.Order ||
		!it.CreatedAt.Equal(other.CreatedAt) || !it.ModifiedAt.Equal(other.ModifiedAt) {
		return false
	}
	if (it.Position == nil) != (other.Position == nil) {
		return false
	}
	if it.Position != nil && *it.Position != *other.Position {
		return false
	}
	if (it.Trash == nil) != (other.Trash == nil) {
		return false
	}
	if it.Trash != nil {
		if it.Trash.OriginalParentID != other.Trash.OriginalParentID ||
			!it.Trash.TrashedAt.Equal(other.Trash.TrashedAt) {
			return false
		}
	}
	if len(it.Tags) != len(other.Tags) {
		return false
	}
	for i := range it.Tags {
		if it.Tags[i] != other.Tags[i] {
			return false
		}
	}
	if len(it.VisibleTo) != len(other.VisibleTo) {
		return false
	}
	for i := range it.VisibleTo {
		if it.VisibleTo[i] != other.VisibleTo[i] {
			return false
		}
	}
	return true
}

// IsTagView reports whether id names a virtual tag-filter folder.
func IsTagView(id string) bool {
	return len(id) > len(TagViewPrefix) && id[:len(TagViewPrefix)] == TagViewPrefix
}

// TagViewID builds the virtual folder id for a tag.
func TagViewID(tag string) string { return TagViewPrefix + tag }
