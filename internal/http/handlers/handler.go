package handlers

import "travelnest/internal/services"

// Handler groups the services the HTTP layer talks to.
type Handler struct {
	Bookings services.BookingService
	Invoices services.InvoiceService
	Auth     services.AuthService
}
