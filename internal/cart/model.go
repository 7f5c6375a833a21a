package cart

import "biteaffair/internal/menu"

// Line is one cart entry. Quantity is the number of guests served for most
// lines; add-ons count units.
type Line struct {
	ID          string        `json:"id"`
	ItemID      string        `json:"item_id"`
	Name        string        `json:"name"`
	Category    menu.Category `json:"category,omitempty"`
	Diet        menu.Diet     `json:"diet"`
	Mode        menu.Mode     `json:"mode,omitempty"`
	Quantity    int           `json:"quantity"`
	UnitPrice   int64         `json:"unit_price"`
	LineTotal   int64         `json:"line_total"`
	Portion     string        `json:"portion,omitempty"`
	PortionSpec string        `json:"portion_spec,omitempty"`
	BaseServes  int           `json:"base_serves,omitempty"`
	Package     *Package      `json:"package,omitempty"`
	Addon       bool          `json:"addon,omitempty"`
}

// Package holds the sub-structure of veg package and fixed package lines.
type Package struct {
	Kind     menu.Kind              `json:"kind"`
	Tier     menu.Tier              `json:"tier,omitempty"`
	Key      string                 `json:"key,omitempty"`
	Slots    map[menu.Slot][]string `json:"slots,omitempty"`
	Extras   []string               `json:"extras,omitempty"`
	Includes []string               `json:"includes,omitempty"`
	Items    []string               `json:"items,omitempty"`
}

// FixedPackage reports whether the line carries its own pax figure.
func (l Line) FixedPackage() bool {
	return l.Package != nil && l.Package.Kind == menu.KindFixedPackage
}

// Patch overwrites derived display fields together with a quantity change.
// Nil fields are left untouched.
type Patch struct {
	Portion   *string
	UnitPrice *int64
}
