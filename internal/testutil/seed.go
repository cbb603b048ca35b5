package testutil

import (
	"time"

	"webdesk/internal/desk"
)

// Test users, one per role.
func Admin() *desk.User {
	return &desk.User{ID: "u-admin", Name: "admin", Role: desk.RoleAdmin}
}

func Standard() *desk.User {
	return &desk.User{ID: "u-standard", Name: "standard", Role: desk.RoleStandard}
}

func Restricted() *desk.User {
	return &desk.User{ID: "u-restricted", Name: "restricted", Role: desk.RoleRestricted}
}

// AllUsers returns one user of each role.
func AllUsers() []*desk.User {
	return []*desk.User{Admin(), Standard(), Restricted()}
}

// SeedTime is the creation timestamp of all seeded items.
var SeedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewItem builds a visible-to-everyone item with sane defaults.
// Overrides mutate the item before it is returned.
func NewItem(id, parentID, name string, kind desk.Kind, order int, overrides ...func(*desk.Item)) *desk.Item {
	it := &desk.Item{
		ID:         id,
		ParentID:   parentID,
		Name:       name,
		Kind:       kind,
		Order:      order,
		VisibleTo:  desk.AllRoles(),
		CreatedAt:  SeedTime,
		ModifiedAt: SeedTime,
	}
	for _, o := range overrides {
		o(it)
	}
	return it
}

// VisibleTo restricts an item's visibility set.
func VisibleTo(roles ...desk.Role) func(*desk.Item) {
	return func(it *desk.Item) { it.VisibleTo = roles }
}

// At places an item at an explicit desktop coordinate.
func At(x, y float64) func(*desk.Item) {
	return func(it *desk.Item) { it.Position = &desk.Point{X: x, Y: y} }
}

// Tagged sets an item's tag set.
func Tagged(tags ...string) func(*desk.Item) {
	return func(it *desk.Item) { it.Tags = tags }
}
