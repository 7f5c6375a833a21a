package menu

import (
	"testing"

	"biteaffair/internal/guests"
)

func findResolved(t *testing.T, items []Resolved, id string) Resolved {
	t.Helper()
	for _, item := range items {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("item %s not resolved", id)
	return Resolved{}
}

// TestResolve_VegStarterScalesWithVegBucket covers a per-guest starter at ten veg guests.
func TestResolve_VegStarterScalesWithVegBucket(t *testing.T) {
	items := []Item{{
		ID: "starter", Kind: KindDish, Name: "Paneer Tikka", Category: CategoryStarters,
		Diet: DietVeg, BasePrice: 8, Portion: "2PCS",
	}}

	got := Resolve(items, Request{Mode: ModeCustomized}, guests.Count{Veg: 10})
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}

	r := got[0]
	if r.Price != 80 {
		t.Errorf("expected price 80, got %d", r.Price)
	}
	if r.PortionText != "20PCS" {
		t.Errorf("expected portion 20PCS, got %s", r.PortionText)
	}
	if r.Serves != 10 || r.Bucket != AttrVeg {
		t.Errorf("expected veg bucket with 10 serves, got %s/%d", r.Bucket, r.Serves)
	}
}

// TestResolve_CustomizedBreadsUseTotal checks neutral categories follow the total guest count.
func TestResolve_CustomizedBreadsUseTotal(t *testing.T) {
	items := []Item{
		{ID: "naan", Kind: KindDish, Name: "Butter Naan", Category: CategoryBreads, Diet: DietVeg, BasePrice: 4, Portion: "1PCS"},
		{ID: "butter_chicken", Kind: KindDish, Name: "Butter Chicken", Category: CategoryMainCourse, Diet: DietNonVeg, BasePrice: 18, Portion: "150GM"},
	}
	g := guests.Count{Veg: 10, NonVeg: 5, Jain: 0}

	got := Resolve(items, Request{Mode: ModeCustomized}, g)

	naan := findResolved(t, got, "naan")
	if naan.Serves != 15 || naan.Bucket != AttrTotal {
		t.Errorf("expected breads to serve 15 (total), got %d (%s)", naan.Serves, naan.Bucket)
	}
	if naan.PortionText != "15PCS" {
		t.Errorf("expected 15PCS, got %s", naan.PortionText)
	}

	chicken := findResolved(t, got, "butter_chicken")
	if chicken.Serves != 5 || chicken.Bucket != AttrNonVeg {
		t.Errorf("expected non-veg bucket of 5, got %d (%s)", chicken.Serves, chicken.Bucket)
	}
	if chicken.Price != 90 {
		t.Errorf("expected price 90, got %d", chicken.Price)
	}
}

func TestResolve_JainUsesJainCountAndLegacyPortion(t *testing.T) {
	items := []Item{
		{ID: "tikka", Kind: KindDish, Name: "Jain Paneer Tikka", Category: CategoryStarters, Diet: DietJain, BasePrice: 90, Portion: "10PCS", BaseServes: 5},
		{ID: "kaju", Kind: KindDish, Name: "Jain Kaju Curry", Category: CategoryMainCourse, Diet: DietJain, BasePrice: 140, Portion: "1KG", BaseServes: 5, Premium: true},
	}
	g := guests.Count{Veg: 20, NonVeg: 20, Jain: 8}

	got := Resolve(items, Request{Mode: ModeJain}, g)
	if len(got) != 2 {
		t.Fatalf("expected both tiers without a tier filter, got %d", len(got))
	}

	tikka := findResolved(t, got, "tikka")
	if tikka.Price != 720 || tikka.PortionText != "16PCS" || tikka.Bucket != AttrJain {
		t.Errorf("unexpected jain resolve: %+v", tikka)
	}

	premium := Resolve(items, Request{Mode: ModeJain, Tier: TierPremium}, g)
	if len(premium) != 1 || premium[0].ID != "kaju" {
		t.Fatalf("expected only premium items, got %+v", premium)
	}
	if premium[0].PortionText != "1.6KG" {
		t.Errorf("expected 1.6KG, got %s", premium[0].PortionText)
	}
}

func TestResolve_VegPackageIsFlatPerGuest(t *testing.T) {
	items := []Item{
		{ID: "a", Kind: KindPackageDish, Name: "Paneer Tikka (40pc)", Category: CategoryStarters, Diet: DietVeg, BasePrice: 499, Slot: SlotStarters},
		{ID: "b", Kind: KindPackageDish, Name: "Rasmalai (40pc)", Category: CategoryDesserts, Diet: DietVeg, BasePrice: 499, Slot: SlotDessert, Premium: true},
	}

	got := Resolve(items, Request{Mode: ModeVegPackage}, guests.Count{Veg: 20, NonVeg: 5, Jain: 5})
	if len(got) != 1 {
		t.Fatalf("expected the standard tier by default, got %d items", len(got))
	}
	if got[0].Price != VegPackagePricePerGuest {
		t.Errorf("expected flat 499, got %d", got[0].Price)
	}
	if got[0].Serves != 20 {
		t.Errorf("expected veg count 20, got %d", got[0].Serves)
	}
}

func TestResolve_CocktailSplitsStartersAndTotalsMains(t *testing.T) {
	items := []Item{
		{ID: "veg_starter", Kind: KindDish, Name: "Paneer Tikka", Category: CategoryStarters, Diet: DietVeg, BasePrice: 9, Portion: "2PCS"},
		{ID: "nv_starter", Kind: KindDish, Name: "Chicken Malai Tikka", Category: CategoryStarters, Diet: DietNonVeg, BasePrice: 13, Portion: "3PCS"},
		{ID: "main", Kind: KindDish, Name: "Chicken Curry", Category: CategoryMainCourse, Diet: DietNonVeg, BasePrice: 16, Portion: "120GM"},
		{ID: "sweet", Kind: KindDish, Name: "Gulab Jamun", Category: CategoryDesserts, Diet: DietVeg, BasePrice: 6, Portion: "2PCS"},
	}
	g := guests.Count{Veg: 12, NonVeg: 6, Jain: 5}

	got := Resolve(items, Request{Mode: ModeCocktail}, g)

	if r := findResolved(t, got, "veg_starter"); r.Serves != 12 {
		t.Errorf("veg starter serves %d, want 12", r.Serves)
	}
	if r := findResolved(t, got, "nv_starter"); r.Serves != 6 || r.PortionText != "18PCS" {
		t.Errorf("non-veg starter got %d / %s", r.Serves, r.PortionText)
	}
	if r := findResolved(t, got, "main"); r.Serves != 23 || r.Bucket != AttrTotal {
		t.Errorf("main serves %d (%s), want 23 total", r.Serves, r.Bucket)
	}
	if r := findResolved(t, got, "sweet"); r.Serves != 23 {
		t.Errorf("dessert serves %d, want 23", r.Serves)
	}
}

func TestResolve_FixedPackagePax(t *testing.T) {
	items := []Item{{
		ID: "package_silver_0", Kind: KindFixedPackage, Name: "Silver House Party",
		Category: CategoryMainCourse, Diet: DietVeg, BasePrice: 399,
		Package: &PackageInfo{Key: "silver", Pax: 20},
	}}
	g := guests.Count{Veg: 50, NonVeg: 50, Jain: 50}

	got := Resolve(items, Request{Mode: ModeFixedPackages}, g)
	if got[0].Serves != 20 || got[0].Price != 7980 || got[0].Bucket != AttrPax {
		t.Errorf("unexpected default pax resolve: %+v", got[0])
	}

	got = Resolve(items, Request{Mode: ModeFixedPackages, Pax: 35}, g)
	if got[0].Serves != 35 || got[0].Price != 13965 {
		t.Errorf("unexpected pax 35 resolve: %+v", got[0])
	}
}

func TestLooksNonVeg(t *testing.T) {
	cases := map[string]bool{
		"Chicken Curry":     true,
		"Egg Curry":         true,
		"Prawns Koliwada":   true,
		"Mutton Korma":      true,
		"Eggless Brownie":   false,
		"Veggie Delight":    false,
		"Dal Tadka":         false,
		"Duck Roast":        false,
		"Lamb Shank Nihari": true,
	}
	for name, want := range cases {
		if got := LooksNonVeg(name); got != want {
			t.Errorf("LooksNonVeg(%q) = %v, want %v", name, got, want)
		}
	}
}
