package menu

import "testing"

func sampleResolved() []Resolved {
	return []Resolved{
		{Item: Item{ID: "1", Name: "Paneer Tikka", Description: "char grilled", Category: CategoryStarters, Diet: DietVeg}, Price: 300},
		{Item: Item{ID: "2", Name: "Chicken Tikka", Category: CategoryStarters, Diet: DietNonVeg}, Price: 450},
		{Item: Item{ID: "3", Name: "Butter Naan", Category: CategoryBreads, Diet: DietVeg}, Price: 60},
		{Item: Item{ID: "4", Name: "Gulab Jamun", Diet: DietVeg}, Price: 90},
		{Item: Item{ID: "5", Name: "Mutton Biryani", Diet: DietNonVeg}, Price: 600},
	}
}

func ids(items []Resolved) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func sameIDs(got []Resolved, want ...string) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

func TestApply_SearchMatchesNameAndDescription(t *testing.T) {
	got := Apply(sampleResolved(), Filter{Search: "TIKKA"})
	if !sameIDs(got, "1", "2") {
		t.Errorf("unexpected search result %v", ids(got))
	}

	got = Apply(sampleResolved(), Filter{Search: "grilled"})
	if !sameIDs(got, "1") {
		t.Errorf("expected description match, got %v", ids(got))
	}
}

func TestApply_CategoryFallsBackToKeywords(t *testing.T) {
	desserts, err := ParseCategoryFilter("Desserts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := Apply(sampleResolved(), Filter{Category: desserts}); !sameIDs(got, "4") {
		t.Errorf("expected keyword dessert, got %v", ids(got))
	}

	mains, _ := ParseCategoryFilter("Main Course")
	if got := Apply(sampleResolved(), Filter{Category: mains}); !sameIDs(got, "5") {
		t.Errorf("expected keyword main course, got %v", ids(got))
	}

	if _, err := ParseCategoryFilter("Drinks"); err != ErrUnknownCategory {
		t.Errorf("expected ErrUnknownCategory, got %v", err)
	}
}

// TestApply_NeutralCategoriesSurviveDietToggle checks breads and desserts stay visible.
func TestApply_NeutralCategoriesSurviveDietToggle(t *testing.T) {
	nonVegOnly := Apply(sampleResolved(), Filter{NonVeg: true})
	if !sameIDs(nonVegOnly, "2", "3", "4", "5") {
		t.Errorf("unexpected non-veg view %v", ids(nonVegOnly))
	}

	vegOnly := Apply(sampleResolved(), Filter{Veg: true})
	if !sameIDs(vegOnly, "1", "3", "4") {
		t.Errorf("unexpected veg view %v", ids(vegOnly))
	}

	both := Apply(sampleResolved(), Filter{Veg: true, NonVeg: true})
	if len(both) != 5 {
		t.Errorf("expected both toggles to show everything, got %d", len(both))
	}
}

func TestApply_Sort(t *testing.T) {
	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortNone, []string{"1", "2", "3", "4", "5"}},
		{SortPriceLow, []string{"3", "4", "1", "2", "5"}},
		{SortPriceHigh, []string{"5", "2", "1", "4", "3"}},
		{SortPopular, []string{"3", "2", "4", "5", "1"}},
	}

	for _, tt := range tests {
		got := Apply(sampleResolved(), Filter{Sort: tt.order})
		if !sameIDs(got, tt.want...) {
			t.Errorf("sort %q: got %v, want %v", tt.order, ids(got), tt.want)
		}
	}
}

func TestParseSort(t *testing.T) {
	if ParseSort("price_desc") != SortPriceHigh || ParseSort("price-low") != SortPriceLow {
		t.Errorf("price sort aliases not recognised")
	}
	if ParseSort("random") != SortNone {
		t.Errorf("unknown sort should be none")
	}
}
