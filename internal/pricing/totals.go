package pricing

// Charges are the flat checkout surcharges added on top of the cart subtotal.
type Charges struct {
	Delivery   int64   `yaml:"delivery_charge" json:"delivery_charge"`
	Packaging  int64   `yaml:"packaging_charge" json:"packaging_charge"`
	TaxPercent float64 `yaml:"tax_percent" json:"tax_percent"`
}

// DefaultCharges mirrors the storefront checkout: ₹50 delivery, ₹30 packaging, 5% GST.
func DefaultCharges() Charges {
	return Charges{Delivery: 50, Packaging: 30, TaxPercent: 5}
}

// Totals is the checkout breakdown. It is derived, never stored in the cart.
type Totals struct {
	Subtotal  int64 `json:"subtotal"`
	Delivery  int64 `json:"delivery_charge"`
	Packaging int64 `json:"packaging_charge"`
	Tax       int64 `json:"tax"`
	Total     int64 `json:"total"`
}

// ComputeTotals applies charges to a subtotal. An empty cart has no
// surcharges.
func ComputeTotals(subtotal int64, c Charges) Totals {
	if subtotal <= 0 {
		return Totals{}
	}

	t := Totals{
		Subtotal:  subtotal,
		Delivery:  c.Delivery,
		Packaging: c.Packaging,
		Tax:       Percent(subtotal, c.TaxPercent),
	}
	t.Total = t.Subtotal + t.Delivery + t.Packaging + t.Tax
	return t
}
