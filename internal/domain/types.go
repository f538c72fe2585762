package domain

import (
	"fmt"
	"strings"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
	// BookingInvoiced is assigned by auto-invoicing only.
	BookingInvoiced BookingStatus = "INVOICED"
)

// ParseBookingStatus normalizes admin input. INVOICED is rejected because only
// the invoicing path may set it.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return s, nil
	}
	return "", ValidationError{Field: "status", Msg: fmt.Sprintf("unsupported booking status %q", raw)}
}

func (s BookingStatus) String() string { return string(s) }

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus string

const (
	InvoiceNotGenerated InvoiceStatus = "NOT_GENERATED"
	InvoiceGenerated    InvoiceStatus = "GENERATED"
	InvoiceSent         InvoiceStatus = "SENT"
	InvoicePaid         InvoiceStatus = "PAID"
	InvoiceCancelled    InvoiceStatus = "CANCELLED"
)

func ParseInvoiceStatus(raw string) (InvoiceStatus, error) {
	s := InvoiceStatus(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case InvoiceNotGenerated, InvoiceGenerated, InvoiceSent, InvoicePaid, InvoiceCancelled:
		return s, nil
	}
	return "", ValidationError{Field: "status", Msg: fmt.Sprintf("unsupported invoice status %q", raw)}
}

// Terminal reports whether no further mutation is permitted.
func (s InvoiceStatus) Terminal() bool { return s == InvoicePaid }

func (s InvoiceStatus) String() string { return string(s) }
