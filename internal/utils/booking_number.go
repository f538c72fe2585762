package utils

import (
	"fmt"
	"time"
)

const (
	BookingNumberPrefix = "TNC"
	InvoiceNumberPrefix = "TNC-INV"
)

// FormatBookingNumber renders TNC-YYYYMMDD-NNNN; seq grows past four digits
// instead of wrapping.
func FormatBookingNumber(day time.Time, seq int64) string {
	return fmt.Sprintf("%s-%s-%04d", BookingNumberPrefix, CompactDate(day), seq)
}

// InvoiceNumberFor derives the invoice number from a booking number.
func InvoiceNumberFor(bookingNumber string) string {
	return InvoiceNumberPrefix + "-" + bookingNumber
}
