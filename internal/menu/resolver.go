package menu

import (
	"biteaffair/internal/guests"
	"biteaffair/internal/pricing"
)

// Resolve prices and portions items for one guest count under req.Mode.
// It is pure: the same items, request and count always give the same output.
func Resolve(items []Item, req Request, g guests.Count) []Resolved {
	out := make([]Resolved, 0, len(items))

	for _, item := range items {
		if !tierMatches(item, req) {
			continue
		}

		switch req.Mode {
		case ModeVegPackage:
			out = append(out, resolvePackageDish(item, g))
		case ModeFixedPackages:
			out = append(out, resolveFixedPackage(item, req.Pax))
		default:
			bucket, serves := Attribute(req.Mode, item, g)
			out = append(out, Resolved{
				Item:        item,
				Mode:        req.Mode,
				Price:       pricing.ScalePrice(item.BasePrice, serves),
				PortionText: pricing.ScalePortion(item.Portion, item.BaseServes, serves),
				Serves:      serves,
				Bucket:      bucket,
			})
		}
	}

	return out
}

// Attribute picks the guest figure a dish is scaled for.
//
//	jain:       every dish follows the jain bucket
//	customized: breads and desserts follow the total, the rest follow their diet
//	cocktail:   starters follow their diet, mains and desserts follow the total
func Attribute(mode Mode, item Item, g guests.Count) (Attribution, int) {
	switch mode {
	case ModeJain:
		return AttrJain, g.Jain

	case ModeCustomized:
		if item.Category.Neutral() {
			return AttrTotal, g.Total()
		}
		return byDiet(item.Diet, g)

	case ModeCocktail:
		if ClassifyCategory(item) == CategoryStarters {
			return byDiet(item.Diet, g)
		}
		return AttrTotal, g.Total()
	}

	return byDiet(item.Diet, g)
}

func byDiet(d Diet, g guests.Count) (Attribution, int) {
	switch d {
	case DietNonVeg:
		return AttrNonVeg, g.NonVeg
	case DietJain:
		return AttrJain, g.Jain
	default:
		return AttrVeg, g.Veg
	}
}

// resolvePackageDish shows the flat per-guest price; dish choice does not
// change what a veg package costs.
func resolvePackageDish(item Item, g guests.Count) Resolved {
	price := int64(item.BasePrice)
	if price <= 0 {
		price = VegPackagePricePerGuest
	}

	return Resolved{
		Item:        item,
		Mode:        ModeVegPackage,
		Price:       price,
		PortionText: item.Portion,
		Serves:      g.Veg,
		Bucket:      AttrVeg,
	}
}

func resolveFixedPackage(item Item, pax int) Resolved {
	if pax <= 0 && item.Package != nil {
		pax = item.Package.Pax
	}
	if pax <= 0 {
		pax = DefaultPackagePax
	}

	return Resolved{
		Item:        item,
		Mode:        ModeFixedPackages,
		Price:       pricing.ScalePrice(item.BasePrice, pax),
		PortionText: "",
		Serves:      pax,
		Bucket:      AttrPax,
	}
}

func tierMatches(item Item, req Request) bool {
	if req.Mode != ModeJain && req.Mode != ModeVegPackage {
		return true
	}

	tier := req.Tier
	if req.Mode == ModeVegPackage && tier == TierAny {
		tier = TierStandard
	}

	switch tier {
	case TierStandard:
		return !item.Premium
	case TierPremium:
		return item.Premium
	}
	return true
}
