// Package access computes what the current session may do. The admin
// surface needs two things at once: an admin ticket and the local
// admin-view toggle. Folding both into a single role makes the gate a
// total function with no contradictory states.
package access

import "plantsel/internal/models"

type Role int

const (
	// Guest is an unauthenticated session: locked page, no store calls.
	Guest Role = iota
	// Member holds a valid non-admin ticket.
	Member
	// AdminBrowsing holds an admin ticket with the admin view off.
	AdminBrowsing
	// AdminEditing holds an admin ticket with the admin view on.
	AdminEditing
)

func (r Role) String() string {
	switch r {
	case Member:
		return "member"
	case AdminBrowsing:
		return "admin"
	case AdminEditing:
		return "admin (editing)"
	default:
		return "guest"
	}
}

// RoleFor derives the session role. The toggle never elevates a
// non-admin ticket; an admin ticket with the toggle off browses like a
// member but keeps roster visibility.
func RoleFor(ticket *models.Ticket, adminViewActive bool) Role {
	switch {
	case ticket == nil:
		return Guest
	case !ticket.IsAdmin:
		return Member
	case adminViewActive:
		return AdminEditing
	default:
		return AdminBrowsing
	}
}

// CanMutateCatalog gates plant create/edit/delete, invite generation
// controls, and roster management actions.
func (r Role) CanMutateCatalog() bool {
	return r == AdminEditing
}

// CanViewRoster gates the roster read and the admin-view toggle itself.
func (r Role) CanViewRoster() bool {
	return r == AdminBrowsing || r == AdminEditing
}

// CanBrowse reports whether catalog data may be fetched at all.
func (r Role) CanBrowse() bool {
	return r != Guest
}
