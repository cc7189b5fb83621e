package access

import (
	"testing"

	"plantsel/internal/models"
)

func TestRoleFor(t *testing.T) {
	member := &models.Ticket{ID: "t1", Code: "AAAA2222"}
	admin := &models.Ticket{ID: "t2", Code: "BBBB2222", IsAdmin: true}

	tests := []struct {
		name      string
		ticket    *models.Ticket
		adminView bool
		want      Role
	}{
		{"no ticket", nil, false, Guest},
		{"no ticket with toggle", nil, true, Guest},
		{"member", member, false, Member},
		{"member with toggle", member, true, Member},
		{"admin browsing", admin, false, AdminBrowsing},
		{"admin editing", admin, true, AdminEditing},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RoleFor(tc.ticket, tc.adminView); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		role   Role
		browse bool
		roster bool
		mutate bool
	}{
		{Guest, false, false, false},
		{Member, true, false, false},
		{AdminBrowsing, true, true, false},
		{AdminEditing, true, true, true},
	}
	for _, tc := range tests {
		t.Run(tc.role.String(), func(t *testing.T) {
			if got := tc.role.CanBrowse(); got != tc.browse {
				t.Fatalf("CanBrowse: expected %v, got %v", tc.browse, got)
			}
			if got := tc.role.CanViewRoster(); got != tc.roster {
				t.Fatalf("CanViewRoster: expected %v, got %v", tc.roster, got)
			}
			if got := tc.role.CanMutateCatalog(); got != tc.mutate {
				t.Fatalf("CanMutateCatalog: expected %v, got %v", tc.mutate, got)
			}
		})
	}
}
