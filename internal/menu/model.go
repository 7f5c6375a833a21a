package menu

import (
	"errors"
	"strings"
)

var (
	ErrUnknownMode     = errors.New("unknown menu mode")
	ErrItemNotFound    = errors.New("menu item not found")
	ErrUnknownCategory = errors.New("unknown category filter")
)

// Mode selects which catalog source is resolved and how guests are attributed.
type Mode string

const (
	ModeJain          Mode = "jain"
	ModeVegPackage    Mode = "veg"
	ModeCustomized    Mode = "customized"
	ModeCocktail      Mode = "cocktail"
	ModeFixedPackages Mode = "packages"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeJain, ModeVegPackage, ModeCustomized, ModeCocktail, ModeFixedPackages}

// ParseMode accepts canonical keys plus the long names used by older clients.
func ParseMode(raw string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "jain":
		return ModeJain, nil
	case "veg", "vegpackage", "veg_package":
		return ModeVegPackage, nil
	case "customized", "customised", "veg_nonveg":
		return ModeCustomized, nil
	case "cocktail":
		return ModeCocktail, nil
	case "packages", "fixedpackages", "fixed_packages":
		return ModeFixedPackages, nil
	default:
		return "", ErrUnknownMode
	}
}

// Tier is the standard / premium split used by the jain and veg package menus.
type Tier string

const (
	TierAny      Tier = ""
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

func ParseTier(raw string) Tier {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "standard":
		return TierStandard
	case "premium":
		return TierPremium
	default:
		return TierAny
	}
}

type Category string

const (
	CategoryStarters   Category = "starters"
	CategoryMainCourse Category = "main_course"
	CategoryBreads     Category = "breads"
	CategoryDesserts   Category = "desserts"
)

// Neutral categories are served to every guest regardless of diet.
func (c Category) Neutral() bool {
	return c == CategoryBreads || c == CategoryDesserts
}

type Diet string

const (
	DietVeg    Diet = "veg"
	DietNonVeg Diet = "nonVeg"
	DietJain   Diet = "jain"
)

// Vegetarian is true for veg and jain items.
func (d Diet) Vegetarian() bool {
	return d != DietNonVeg
}

// Kind tags the item variant.
type Kind string

const (
	KindDish         Kind = "dish"
	KindPackageDish  Kind = "package_dish"
	KindFixedPackage Kind = "fixed_package"
)

// Slot is a veg package selection group.
type Slot string

const (
	SlotStarters Slot = "starters"
	SlotMain     Slot = "main"
	SlotRice     Slot = "rice"
	SlotBreads   Slot = "breads"
	SlotDessert  Slot = "dessert"
)

// Item is the normalized catalog template. Every source file is adapted into
// this one shape; Slot is set only for package dishes and Package only for
// fixed packages.
type Item struct {
	ID          string       `json:"id"`
	Kind        Kind         `json:"kind"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    Category     `json:"category,omitempty"`
	Diet        Diet         `json:"diet"`
	BasePrice   float64      `json:"base_price"`
	Portion     string       `json:"portion,omitempty"`
	BaseServes  int          `json:"base_serves,omitempty"`
	Premium     bool         `json:"premium,omitempty"`
	Slot        Slot         `json:"slot,omitempty"`
	Package     *PackageInfo `json:"package,omitempty"`
}

// PackageInfo describes a fixed package from the package table.
type PackageInfo struct {
	Key      string   `json:"key"`
	Pax      int      `json:"pax"`
	Includes []string `json:"includes,omitempty"`
	Items    []string `json:"items,omitempty"`
}

// Attribution names the guest figure a resolved item was scaled for.
type Attribution string

const (
	AttrVeg    Attribution = "veg"
	AttrNonVeg Attribution = "nonVeg"
	AttrJain   Attribution = "jain"
	AttrTotal  Attribution = "total"
	AttrPax    Attribution = "pax"
)

// Resolved is an Item priced and portioned for one guest count.
type Resolved struct {
	Item
	Mode        Mode        `json:"mode"`
	Price       int64       `json:"price"`
	PortionText string      `json:"portion_text"`
	Serves      int         `json:"serves"`
	Bucket      Attribution `json:"bucket"`
}

// Addon is an extra sold per unit, outside guest-count scaling.
type Addon struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description"`
	Price       int64  `json:"price" yaml:"price"`
}

// Request is one resolve call. Pax applies to fixed packages only.
type Request struct {
	Mode Mode
	Tier Tier
	Pax  int
}
