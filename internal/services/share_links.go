package services

import "travelnest/internal/utils"

// LinkBuilder turns a stored document locator into a WhatsApp share link.
type LinkBuilder struct {
	BaseURL string
	Options utils.WhatsAppOptions
}

// DocumentURL is the absolute URL of a locator under BaseURL.
func (b LinkBuilder) DocumentURL(locator string) string {
	return utils.JoinURL(b.BaseURL, locator)
}

func (b LinkBuilder) ForInvoice(phone, locator string) string {
	return utils.BuildWhatsAppLink(phone, b.DocumentURL(locator), b.Options)
}
