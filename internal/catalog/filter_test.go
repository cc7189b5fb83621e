package catalog

import (
	"testing"

	"plantsel/internal/models"
)

func testPlants() []models.Plant {
	return []models.Plant{
		{ID: "p1", CommonName: "Coastal Rosemary", BotanicalName: "Westringia fruticosa", Category: "Shrubs", SubCategory: "Native"},
		{ID: "p2", CommonName: "Grevillea Rosemarinifolia", BotanicalName: "Grevillea rosmarinifolia", Category: "Shrubs", SubCategory: "Flowering"},
		{ID: "p3", CommonName: "Pink Rock Orchid", BotanicalName: "Dendrobium kingianum", Category: "Perennials", ColourTags: []string{"Pink", "White"}},
		{ID: "p4", CommonName: "Kangaroo Paw", BotanicalName: "Anigozanthos flavidus", Category: "Perennials", ColourTags: []string{"Yellow"}},
		{ID: "p5", CommonName: "Snow Gum", BotanicalName: "Eucalyptus pauciflora", Category: "Trees", SubCategory: "Evergreen"},
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"zero value matches everything", Filters{}, []string{"p1", "p2", "p3", "p4", "p5"}},
		{"search common name", Filters{Search: "rose"}, []string{"p1", "p2"}},
		{"search botanical name", Filters{Search: "eucalyptus"}, []string{"p5"}},
		{"search is case-insensitive", Filters{Search: "ROSE"}, []string{"p1", "p2"}},
		{"search trims whitespace", Filters{Search: "  rose  "}, []string{"p1", "p2"}},
		{"category", Filters{Category: "Shrubs"}, []string{"p1", "p2"}},
		{"category and subcategory", Filters{Category: "Shrubs", SubCategory: "Native"}, []string{"p1"}},
		{"search and category compose", Filters{Search: "rose", Category: "Shrubs", SubCategory: "Flowering"}, []string{"p2"}},
		{
			"colours filter in the colour category",
			Filters{Category: models.CategoryColours, Colours: map[string]struct{}{"Pink": {}}},
			[]string{"p3"},
		},
		{
			"colour match is case-insensitive",
			Filters{Category: models.CategoryColours, Colours: map[string]struct{}{"pink": {}}},
			[]string{"p3"},
		},
		{
			"any selected colour matches",
			Filters{Category: models.CategoryColours, Colours: map[string]struct{}{"Pink": {}, "Yellow": {}}},
			[]string{"p3", "p4"},
		},
		{
			"colours ignored outside the colour category",
			Filters{Category: "Shrubs", Colours: map[string]struct{}{"Pink": {}}},
			[]string{"p1", "p2"},
		},
		{"no matches", Filters{Search: "banksia"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Apply(testPlants(), tc.filters)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d plants, got %d", len(tc.want), len(got))
			}
			for i, plant := range got {
				if plant.ID != tc.want[i] {
					t.Fatalf("position %d: expected %s, got %s", i, tc.want[i], plant.ID)
				}
			}
		})
	}
}

// Filtering is a pure intersection: applying the predicates one at a
// time, in any order, matches applying them all at once.
func TestApplyComposes(t *testing.T) {
	combined := Filters{
		Search:   "pink",
		Category: models.CategoryColours,
		Colours:  map[string]struct{}{"Pink": {}},
	}

	allAtOnce := Apply(testPlants(), combined)

	searchFirst := Apply(testPlants(), Filters{Search: combined.Search})
	searchFirst = Apply(searchFirst, Filters{Category: combined.Category})
	searchFirst = Apply(searchFirst, Filters{Category: combined.Category, Colours: combined.Colours})

	colourFirst := Apply(testPlants(), Filters{Category: combined.Category, Colours: combined.Colours})
	colourFirst = Apply(colourFirst, Filters{Search: combined.Search})

	for _, got := range [][]models.Plant{searchFirst, colourFirst} {
		if len(got) != len(allAtOnce) {
			t.Fatalf("expected %d plants, got %d", len(allAtOnce), len(got))
		}
		for i := range got {
			if got[i].ID != allAtOnce[i].ID {
				t.Fatalf("position %d: expected %s, got %s", i, allAtOnce[i].ID, got[i].ID)
			}
		}
	}
}

func TestSelectCategoryResetsDependentSelections(t *testing.T) {
	f := Filters{Search: "rose"}
	f = f.SelectCategory(models.CategoryColours)
	f = f.SelectSubCategory("Flowering")
	f = f.ToggleColour("Pink")

	f = f.SelectCategory("Shrubs")
	if f.SubCategory != "" {
		t.Fatalf("category change must reset subcategory, got %q", f.SubCategory)
	}
	if len(f.Colours) != 0 {
		t.Fatalf("category change must reset colours, got %v", f.Colours)
	}
	if f.Search != "rose" {
		t.Fatalf("category change must keep the search term, got %q", f.Search)
	}
}

func TestSelectCategoryTogglesOff(t *testing.T) {
	f := Filters{}.SelectCategory("Shrubs")
	f = f.SelectCategory("Shrubs")
	if f.Category != "" {
		t.Fatalf("reselecting the category must clear it, got %q", f.Category)
	}
}

func TestSelectSubCategoryTogglesOff(t *testing.T) {
	f := Filters{Category: "Shrubs"}.SelectSubCategory("Flowering")
	if f.SubCategory != "Flowering" {
		t.Fatalf("expected subcategory selected, got %q", f.SubCategory)
	}
	f = f.SelectSubCategory("Flowering")
	if f.SubCategory != "" {
		t.Fatalf("reselecting the subcategory must clear it, got %q", f.SubCategory)
	}
}

func TestToggleColourDoesNotShareState(t *testing.T) {
	base := Filters{Category: models.CategoryColours}.ToggleColour("Pink")
	derived := base.ToggleColour("White")

	if len(base.Colours) != 1 {
		t.Fatalf("toggling a copy must not mutate the original, got %v", base.Colours)
	}
	if len(derived.Colours) != 2 {
		t.Fatalf("expected two colours selected, got %v", derived.Colours)
	}
	cleared := derived.ToggleColour("Pink")
	if _, ok := cleared.Colours["Pink"]; ok {
		t.Fatalf("second toggle must clear the colour")
	}
}
