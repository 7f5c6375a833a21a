package menu

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// VegPackagePricePerGuest is charged for both tiers regardless of the dishes picked.
const VegPackagePricePerGuest = 499

var (
	ErrIncompletePackage = errors.New("package selection is incomplete")
	ErrSlotOverLimit     = errors.New("too many dishes selected for a package slot")
	ErrNotInPackage      = errors.New("dish is not part of this package")
)

// VegPackageLimits is the per-slot selection allowance.
var VegPackageLimits = map[Slot]int{
	SlotStarters: 3,
	SlotMain:     3,
	SlotRice:     1,
	SlotBreads:   2,
	SlotDessert:  1,
}

// VegPackageSlots fixes the display order of the slots.
var VegPackageSlots = []Slot{SlotStarters, SlotMain, SlotRice, SlotBreads, SlotDessert}

// VegPackageExtras come with every package.
var VegPackageExtras = []string{"Raita & Salad"}

func parseSlot(raw string) (Slot, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "starters", "starter":
		return SlotStarters, true
	case "main", "mains", "main_course":
		return SlotMain, true
	case "rice":
		return SlotRice, true
	case "breads", "bread":
		return SlotBreads, true
	case "dessert", "desserts":
		return SlotDessert, true
	}
	return "", false
}

// Category maps a slot onto the catalog category used by filters.
func (s Slot) Category() Category {
	switch s {
	case SlotStarters:
		return CategoryStarters
	case SlotBreads:
		return CategoryBreads
	case SlotDessert:
		return CategoryDesserts
	default:
		return CategoryMainCourse
	}
}

// VegPackageName is the cart line name for a tier.
func VegPackageName(tier Tier) string {
	if tier == TierPremium {
		return fmt.Sprintf("Premium Menu Veg (%d)", VegPackagePricePerGuest)
	}
	return fmt.Sprintf("Standard Menu Veg (%d)", VegPackagePricePerGuest)
}

// Selection maps a slot to the chosen dish ids.
type Selection map[Slot][]string

// PackageDetails is the validated, display-ready selection.
type PackageDetails struct {
	Tier   Tier              `json:"tier"`
	Slots  map[Slot][]string `json:"slots"`
	Extras []string          `json:"extras"`
	Count  int               `json:"total_selected"`
}

var quantityMarker = regexp.MustCompile(`(?i)\s*\(\s*\d+(\.\d+)?\s*(pcs|pc|kgs|kg|gms|gm|g)\s*\)\s*`)

// CleanName strips quantity markers such as "(40pc)" or "(0.7 KG)".
func CleanName(name string) string {
	return strings.TrimSpace(quantityMarker.ReplaceAllString(name, " "))
}

// ValidateSelection checks a veg package selection against the tier's dishes
// and the slot limits. Every slot needs at least one dish and none may exceed
// its limit.
func ValidateSelection(items []Item, tier Tier, sel Selection) (*PackageDetails, error) {
	if tier == TierAny {
		tier = TierStandard
	}

	byID := make(map[string]Item, len(items))
	for _, item := range items {
		if item.Kind != KindPackageDish || item.Premium != (tier == TierPremium) {
			continue
		}
		byID[item.ID] = item
	}

	details := &PackageDetails{
		Tier:   tier,
		Slots:  make(map[Slot][]string, len(VegPackageSlots)),
		Extras: VegPackageExtras,
	}

	for slot, ids := range sel {
		limit, ok := VegPackageLimits[slot]
		if !ok {
			return nil, fmt.Errorf("%w: unknown slot %q", ErrNotInPackage, slot)
		}
		if len(ids) > limit {
			return nil, fmt.Errorf("%w: %s allows %d", ErrSlotOverLimit, slot, limit)
		}

		seen := map[string]bool{}
		for _, id := range ids {
			item, ok := byID[id]
			if !ok || item.Slot != slot {
				return nil, fmt.Errorf("%w: %s", ErrNotInPackage, id)
			}
			if seen[id] {
				continue
			}
			seen[id] = true
			details.Slots[slot] = append(details.Slots[slot], CleanName(item.Name))
			details.Count++
		}
	}

	for _, slot := range VegPackageSlots {
		if len(details.Slots[slot]) == 0 {
			return nil, fmt.Errorf("%w: nothing selected for %s", ErrIncompletePackage, slot)
		}
	}

	return details, nil
}
