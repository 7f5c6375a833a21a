package whatsapp

import (
	"net/url"
	"regexp"
	"strings"
)

const DefaultDeepLinkBase = "https://api.whatsapp.com/send"

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhone turns a stored phone into the digits-only international form
// WhatsApp expects. Bare 10-digit numbers get the 91 country code.
func FormatPhone(phone string) string {
	digits := nonDigits.ReplaceAllString(strings.Replace(phone, "+91", "91", 1), "")
	if len(digits) == 10 {
		digits = "91" + digits
	}
	return digits
}

// DeepLink builds a click-to-chat link with the message pre-filled.
func DeepLink(base, phone, text string) string {
	if base == "" {
		base = DefaultDeepLinkBase
	}
	return base + "?phone=" + FormatPhone(phone) + "&text=" + encodeComponent(text)
}

// encodeComponent escapes like a URI component: spaces become %20, not +.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
