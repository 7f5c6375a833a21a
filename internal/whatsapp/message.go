package whatsapp

import (
	"fmt"
	"strings"
)

// Item is one order line as it appears in the summary.
type Item struct {
	Name      string
	Quantity  int
	UnitPrice int64
}

// OrderDetails is everything the confirmation message shows.
type OrderDetails struct {
	Phone        string
	Location     string
	DeliveryDate string
	DeliveryTime string
	Items        []Item
	Total        int64
}

// FormatOrderDetails renders the customer-facing order summary in WhatsApp
// markup (*bold*).
func FormatOrderDetails(d OrderDetails) string {
	var b strings.Builder

	b.WriteString("🍽️ *BiteAffair Order Confirmation*\n\n")
	fmt.Fprintf(&b, "📱 *Phone:* %s\n", d.Phone)
	fmt.Fprintf(&b, "📍 *Location:* %s\n", d.Location)
	fmt.Fprintf(&b, "📅 *Delivery Date:* %s\n", d.DeliveryDate)
	fmt.Fprintf(&b, "⏰ *Delivery Time:* %s\n\n", d.DeliveryTime)

	b.WriteString("🛒 *Order Items:*\n")
	for i, item := range d.Items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Name)
		fmt.Fprintf(&b, "   Quantity: %d\n", item.Quantity)
		fmt.Fprintf(&b, "   Price: ₹%d\n\n", item.UnitPrice*int64(item.Quantity))
	}

	fmt.Fprintf(&b, "💰 *Total Amount:* ₹%d\n\n", d.Total)
	b.WriteString("✅ Your order has been confirmed!\n")
	b.WriteString("📞 We'll contact you soon for further details.\n\n")
	b.WriteString("Thank you for choosing BiteAffair! 🙏")

	return b.String()
}
