package models

import "testing"

func TestValidSubCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		sub      string
		want     bool
	}{
		{"empty sub always valid", "Shrubs", "", true},
		{"sub in category", "Shrubs", "Flowering", true},
		{"sub from another category", "Shrubs", "Deciduous", false},
		{"legacy category", "Trees & Shrubs", "Evergreen", true},
		{"unknown category", "Cacti", "Flowering", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidSubCategory(tc.category, tc.sub); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSubCategoriesForCoversEveryCategory(t *testing.T) {
	for _, name := range CategoryNames {
		if len(SubCategoriesFor(name)) == 0 {
			t.Fatalf("category %q has no subcategories", name)
		}
	}
	if SubCategoriesFor("Cacti") != nil {
		t.Fatalf("unknown category must yield nil")
	}
}

func TestTicketClaimed(t *testing.T) {
	if (Ticket{}).Claimed() {
		t.Fatalf("unnamed ticket must not read as claimed")
	}
	if !(Ticket{OwnerName: "Jo"}).Claimed() {
		t.Fatalf("named ticket must read as claimed")
	}
}
