package models

// CategoryColours is the one category whose colour tags are meaningful
// for filtering.
const CategoryColours = "Perennials"

// CategoryNames lists the catalog categories in display order.
// "Trees & Shrubs" is a legacy category still present on older rows.
var CategoryNames = []string{
	"Trees",
	"Shrubs",
	"Ground Covers",
	"Perennials",
	"Trees & Shrubs",
}

var subCategories = map[string][]string{
	"Trees":         {"Deciduous", "Evergreen", "Screening", "Feature"},
	"Shrubs":        {"Flowering", "Foliage", "Hedging", "Native"},
	"Ground Covers": {"Strappy Leaf", "Mass Planting", "Spreading", "Native"},
	"Perennials":    {"Cut Flower", "Aromatic", "Border", "Native"},
	"Trees & Shrubs": {"Deciduous", "Evergreen"},
}

// ColourOptions lists the selectable colour tags for perennials.
var ColourOptions = []string{"Red", "Orange", "Yellow", "Pink", "Purple", "Blue", "White"}

// SubCategoriesFor returns the subcategory list for a category, or nil
// for an unknown category.
func SubCategoriesFor(category string) []string {
	return subCategories[category]
}

// ValidCategory reports whether the category is one of the fixed set.
func ValidCategory(category string) bool {
	_, ok := subCategories[category]
	return ok
}

// ValidSubCategory reports whether sub belongs to the category's list.
// An empty subcategory is always acceptable.
func ValidSubCategory(category, sub string) bool {
	if sub == "" {
		return true
	}
	for _, s := range subCategories[category] {
		if s == sub {
			return true
		}
	}
	return false
}
