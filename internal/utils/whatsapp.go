package utils

import (
	"fmt"
	"net/url"
	"strings"
)

const DefaultCountryCode = "91"

// WhatsAppOptions customizes the click-to-chat link.
type WhatsAppOptions struct {
	CountryCode string
	BrandName   string
}

// NormalizePhone applies the single phone policy used for click-to-chat links:
//   - whitespace, '-', '(', ')', '.' and a leading '+' are removed
//   - anything that is still not all digits is returned unchanged
//   - a number written with a leading '+' already carries its country code
//   - a trunk prefix "0" is replaced by the country code
//   - a bare 10-digit national number gets the country code prepended
func NormalizePhone(phone, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '-', '(', ')', '.':
			return -1
		}
		return r
	}, phone)
	international := strings.HasPrefix(cleaned, "+")
	cleaned = strings.TrimPrefix(cleaned, "+")

	if cleaned == "" || !isDigits(cleaned) {
		return phone
	}
	switch {
	case international:
		return cleaned
	case strings.HasPrefix(cleaned, "0"):
		return countryCode + strings.TrimPrefix(cleaned, "0")
	case len(cleaned) == 10:
		return countryCode + cleaned
	default:
		return cleaned
	}
}

// InvoiceShareMessage is the text pre-filled in the chat.
func InvoiceShareMessage(brand, shareURL string) string {
	brand = Fallback(brand, "Travel Nest Cabs")
	return fmt.Sprintf("*%s - GST Invoice*\n\nYour invoice is ready.\n\n%s\n\nThank you for choosing %s",
		brand, shareURL, brand)
}

// BuildWhatsAppLink returns https://wa.me/<phone>?text=<message>.
func BuildWhatsAppLink(phone, shareURL string, opts WhatsAppOptions) string {
	msg := InvoiceShareMessage(opts.BrandName, shareURL)
	text := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", NormalizePhone(phone, opts.CountryCode), text)
}

// JoinURL joins base and a relative locator with exactly one slash.
func JoinURL(base, locator string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(locator, "/")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
