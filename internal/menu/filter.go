package menu

import (
	"sort"
	"strings"
)

// SortOrder of a resolved list.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortPopular   SortOrder = "popular"
)

func ParseSort(raw string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "price-low", "price_asc", "price-asc":
		return SortPriceLow
	case "price-high", "price_desc", "price-desc":
		return SortPriceHigh
	case "popular", "name":
		return SortPopular
	}
	return SortNone
}

// Filter narrows a resolved list. Zero value keeps everything.
type Filter struct {
	Search   string
	Category Category // empty means All
	Veg      bool
	NonVeg   bool
	Sort     SortOrder
}

// ParseCategoryFilter maps the display labels (All, Starters, Main Course,
// Breads, Desserts) and the category keys onto a Category. "All" and "" give
// the empty category.
func ParseCategoryFilter(raw string) (Category, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "all") {
		return "", nil
	}
	if c := parseCategory(trimmed); c != "" {
		return c, nil
	}
	return "", ErrUnknownCategory
}

var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryStarters, []string{"tikka", "kabab", "kebab", "starter"}},
	{CategoryBreads, []string{"naan", "roti", "bread", "kulcha", "paratha"}},
	{CategoryDesserts, []string{"jamun", "phirni", "dessert", "halwa", "kheer"}},
	{CategoryMainCourse, []string{"paneer", "dal", "rice", "biryani", "curry", "masala"}},
}

// ClassifyCategory returns the item's category, falling back to name keywords
// for items that came without one. Breads and desserts are checked before
// mains so "Butter Naan" is not caught by a main-course word.
func ClassifyCategory(item Item) Category {
	if item.Category != "" {
		return item.Category
	}

	name := strings.ToLower(item.Name)
	for _, group := range categoryKeywords {
		for _, w := range group.words {
			if strings.Contains(name, w) {
				return group.category
			}
		}
	}
	return ""
}

// Apply filters then sorts. The input slice is not modified.
func Apply(items []Resolved, f Filter) []Resolved {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Resolved, 0, len(items))
	for _, item := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		if f.Category != "" && ClassifyCategory(item.Item) != f.Category {
			continue
		}
		if !dietVisible(item.Item, f) {
			continue
		}
		out = append(out, item)
	}

	sortResolved(out, f.Sort)
	return out
}

// dietVisible applies the veg / non-veg toggles. Both or neither toggled shows
// everything; neutral categories stay visible under a single toggle.
func dietVisible(item Item, f Filter) bool {
	if f.Veg == f.NonVeg {
		return true
	}
	if ClassifyCategory(item).Neutral() {
		return true
	}
	if f.Veg {
		return item.Diet.Vegetarian()
	}
	return item.Diet == DietNonVeg
}

func sortResolved(items []Resolved, order SortOrder) {
	switch order {
	case SortPriceLow:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case SortPriceHigh:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case SortPopular:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}
}
