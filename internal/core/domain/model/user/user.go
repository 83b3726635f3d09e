// Package user holds the minimal customer read model this core needs:
// enough identity to resolve notification recipients and admin privileges.
// Account management itself is a collaborator concern.
package user

import "strings"

// RoleAdmin marks privileged users. Admin identity is role-based; there is
// no separate admins table.
const RoleAdmin = "admin"

// User is a read-only snapshot of a registered customer.
type User struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Role      string
}

// FullName joins the name parts, tolerating either being empty.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
