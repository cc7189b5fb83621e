package catalog

import (
	"strings"

	"plantsel/internal/models"
)

// Filters is the browse-view filter state. The zero value matches
// everything. Filters compose with logical AND and are applied purely;
// no store calls happen during filtering.
type Filters struct {
	Search      string
	Category    string
	SubCategory string
	Colours     map[string]struct{}
}

// SelectCategory toggles the category selection. Changing or clearing
// the category always resets the subcategory and colour selections:
// both are scoped to one category and must not leak across.
func (f Filters) SelectCategory(category string) Filters {
	if f.Category == category {
		category = ""
	}
	return Filters{Search: f.Search, Category: category}
}

// SelectSubCategory toggles the subcategory selection. Only meaningful
// once a category is chosen.
func (f Filters) SelectSubCategory(sub string) Filters {
	if f.SubCategory == sub {
		sub = ""
	}
	f.SubCategory = sub
	return f
}

// ToggleColour flips one colour in the selection.
func (f Filters) ToggleColour(colour string) Filters {
	colours := make(map[string]struct{}, len(f.Colours)+1)
	for c := range f.Colours {
		colours[c] = struct{}{}
	}
	if _, ok := colours[colour]; ok {
		delete(colours, colour)
	} else {
		colours[colour] = struct{}{}
	}
	f.Colours = colours
	return f
}

// Apply returns the plants matching every active filter, preserving the
// input order. Search matches case-insensitively against common or
// botanical name substrings; category and subcategory are exact; colours
// apply only when the colour-bearing category is selected and at least
// one colour is chosen, matching any tag case-insensitively.
func Apply(plants []models.Plant, f Filters) []models.Plant {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	colourFiltering := f.Category == models.CategoryColours && len(f.Colours) > 0

	var result []models.Plant
	for _, plant := range plants {
		if term != "" &&
			!strings.Contains(strings.ToLower(plant.CommonName), term) &&
			!strings.Contains(strings.ToLower(plant.BotanicalName), term) {
			continue
		}
		if f.Category != "" && plant.Category != f.Category {
			continue
		}
		if f.SubCategory != "" && plant.SubCategory != f.SubCategory {
			continue
		}
		if colourFiltering && !matchesColour(plant.ColourTags, f.Colours) {
			continue
		}
		result = append(result, plant)
	}
	return result
}

func matchesColour(tags []string, selected map[string]struct{}) bool {
	for _, tag := range tags {
		for colour := range selected {
			if strings.EqualFold(tag, colour) {
				return true
			}
		}
	}
	return false
}
