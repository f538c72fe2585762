package models

import (
	"time"

	"travelnest/internal/domain"
)

// Invoice is the billing record of a completed booking.
type Invoice struct {
	ID          int64                `json:"id"`
	BookingID   int64                `json:"booking_id"`
	InvoiceNo   string               `json:"invoice_no"`
	BaseAmount  float64              `json:"base_amount"`
	GSTAmount   float64              `json:"gst_amount"`
	TotalAmount float64              `json:"total_amount"`
	PDFPath     string               `json:"pdf_path"`
	Status      domain.InvoiceStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}
