package desk

// Role is the three-tier access level of a user.
type Role string

const (
	// RoleAdmin sees and may act on every item regardless of its
	// visibility set.
	RoleAdmin      Role = "admin"
	RoleStandard   Role = "standard"
	RoleRestricted Role = "restricted"
)

// AllRoles is the default visibility set for newly created items.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleStandard, RoleRestricted}
}

// User is an account known to the shell. Only ID and Role matter to the
// core; the rest belongs to the login screen and profile forms.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	FullName string `json:"full_name,omitempty"`
}
