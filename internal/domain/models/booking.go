package models

import (
	"time"

	"travelnest/internal/domain"
)

// Booking is a customer's cab-trip request.
type Booking struct {
	ID            int64                `json:"id"`
	BookingNumber string               `json:"booking_number"`
	Name          string               `json:"name"`
	Phone         string               `json:"phone"`
	Pickup        string               `json:"pickup"`
	Drop          string               `json:"drop"`
	TripType      string               `json:"trip_type"`
	Car           string               `json:"car"`
	Price         float64              `json:"price"`
	TravelDate    string               `json:"travel_date"`
	TravelTime    string               `json:"travel_time"`
	Status        domain.BookingStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
}

// BookingListItem is a booking annotated with the derived invoice flag.
type BookingListItem struct {
	Booking
	InvoiceExists bool `json:"invoice_exists"`
}

// BookingInput carries the public submission payload after binding. Price is
// a pointer so an omitted price is told apart from a zero fare.
type BookingInput struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	Pickup     string   `json:"pickup"`
	Drop       string   `json:"drop"`
	TripType   string   `json:"trip_type"`
	Car        string   `json:"car"`
	Price      *float64 `json:"price"`
	TravelDate string   `json:"travel_date"`
	TravelTime string   `json:"travel_time"`
}
