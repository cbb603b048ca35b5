package desk

// IsVisible decides whether user may see item. Admins see everything;
// everyone else must appear in the item's visibility set. The check is
// a pure function over (role, role-set) so any layer can call it
// without coupling, and it is evaluated fresh on every call.
func IsVisible(user *User, item *Item) bool {
	if user == nil || item == nil {
		return false
	}
	if user.Role == RoleAdmin {
		return true
	}
	for _, r := range item.VisibleTo {
		if r == user.Role {
			return true
		}
	}
	return false
}

// HasFullAccess reports whether user may mutate, open, move, rename,
// delete, download or tag item. The policy is deliberately flat:
// visibility implies full access, with no read-only tier in between.
func HasFullAccess(user *User, item *Item) bool {
	return IsVisible(user, item)
}
