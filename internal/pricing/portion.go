package pricing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is the measuring unit of a portion spec.
type Unit string

const (
	UnitPieces    Unit = "PCS"
	UnitGrams     Unit = "GM"
	UnitKilograms Unit = "KG"
)

// IsWeight reports whether the unit belongs to the weight family.
func (u Unit) IsWeight() bool {
	return u == UnitGrams || u == UnitKilograms
}

// PortionSpec is one parsed "<amount><unit>" pair such as "2PCS" or "0.7KG".
type PortionSpec struct {
	Amount decimal.Decimal
	Unit   Unit
}

var portionPattern = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s*(pcs|pc|pieces|piece|gms|gm|grams|gram|g|kgs|kg)\.?\s*$`)

// ParsePortion parses a single portion spec. Multi-part specs ("1KG + 20PCS")
// are handled by ScalePortion.
func ParsePortion(raw string) (PortionSpec, bool) {
	m := portionPattern.FindStringSubmatch(raw)
	if m == nil {
		return PortionSpec{}, false
	}

	amount, err := decimal.NewFromString(m[1])
	if err != nil {
		return PortionSpec{}, false
	}

	return PortionSpec{Amount: amount, Unit: unitOf(m[2])}, true
}

func unitOf(token string) Unit {
	switch strings.ToLower(token) {
	case "kg", "kgs":
		return UnitKilograms
	case "g", "gm", "gms", "gram", "grams":
		return UnitGrams
	default:
		return UnitPieces
	}
}

// String renders the spec: whole amounts without a decimal, fractional
// amounts with exactly one.
func (p PortionSpec) String() string {
	return formatAmount(p.Amount) + string(p.Unit)
}

func formatAmount(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.String()
	}
	return d.StringFixed(1)
}

// ScalePortion scales a per-guest portion spec to guests.
//
// baseServes > 1 marks the legacy shape where the spec was authored for a
// group of baseServes guests; the amount is normalized to one guest first.
// Missing specs give "1"; zero guests or an unparseable spec give the
// original string back unchanged.
func ScalePortion(spec string, baseServes, guests int) string {
	if strings.TrimSpace(spec) == "" {
		return "1"
	}
	if guests <= 0 {
		return spec
	}

	parts := strings.Split(spec, "+")
	scaled := make([]string, 0, len(parts))

	for _, part := range parts {
		p, ok := ParsePortion(part)
		if !ok {
			return spec
		}

		amount := p.Amount.Mul(decimal.NewFromInt(int64(guests)))
		if baseServes > 1 {
			amount = amount.Div(decimal.NewFromInt(int64(baseServes)))
		}
		p.Amount = amount

		scaled = append(scaled, p.String())
	}

	return strings.Join(scaled, " + ")
}
