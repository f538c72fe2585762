package services

import (
	"context"
	"strings"

	"travelnest/internal/domain"
	"travelnest/internal/domain/models"
	"travelnest/internal/repositories"
	"travelnest/internal/utils"
)

type BookingService struct {
	BookingRepo repositories.BookingRepository
	Invoices    InvoiceService
}

// StatusUpdateResult reports the stored booking after a status change and,
// when auto-invoicing ran, the new invoice and its share link.
type StatusUpdateResult struct {
	Booking      models.Booking  `json:"booking"`
	Invoice      *models.Invoice `json:"invoice,omitempty"`
	WhatsAppLink *string         `json:"whatsapp_link"`
}

// BookingDetail is a booking with its invoice, if any.
type BookingDetail struct {
	Booking models.Booking  `json:"booking"`
	Invoice *models.Invoice `json:"invoice"`
}

func (s BookingService) Create(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	in = normalizeBookingInput(in)
	if err := validateBookingInput(in); err != nil {
		return models.Booking{}, err
	}

	b, err := s.BookingRepo.Create(ctx, in)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "failed to create booking", Err: err}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "create", "booking created",
		utils.Int64("booking_id", b.ID), utils.String("booking_number", b.BookingNumber))
	return b, nil
}

func (s BookingService) List(ctx context.Context) ([]models.BookingListItem, error) {
	items, err := s.BookingRepo.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to list bookings", Err: err}
	}
	return items, nil
}

func (s BookingService) Get(ctx context.Context, id int64) (BookingDetail, error) {
	b, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return BookingDetail{}, wrapRepoErr(err, "failed to load booking")
	}
	out := BookingDetail{Booking: b}
	inv, err := s.Invoices.Invoices.GetByBookingID(ctx, b.ID)
	switch {
	case err == nil:
		out.Invoice = &inv
	case !domain.IsNotFound(err):
		return BookingDetail{}, domain.InternalError{Msg: "failed to load invoice", Err: err}
	}
	return out, nil
}

// UpdateStatus stores any admin status without a transition table. Moving to
// COMPLETED auto-invoices once: the invoice is created, the booking ends up
// INVOICED and a share link is returned. Later COMPLETED updates are no-ops
// for invoicing.
func (s BookingService) UpdateStatus(ctx context.Context, id int64, rawStatus string) (StatusUpdateResult, error) {
	status, err := domain.ParseBookingStatus(rawStatus)
	if err != nil {
		return StatusUpdateResult{}, err
	}

	b, err := s.BookingRepo.GetByID(ctx, id)
	if err != nil {
		return StatusUpdateResult{}, wrapRepoErr(err, "failed to load booking")
	}
	if err := s.BookingRepo.UpdateStatus(ctx, b.ID, status); err != nil {
		return StatusUpdateResult{}, wrapRepoErr(err, "failed to update booking")
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "booking", "update_status", "booking status changed",
		utils.Int64("booking_id", b.ID), utils.String("from", b.Status.String()), utils.String("to", status.String()))
	b.Status = status

	res := StatusUpdateResult{Booking: b}
	if status != domain.BookingCompleted {
		return res, nil
	}

	inv, created, err := s.Invoices.issue(ctx, b, true)
	if err != nil {
		return res, err
	}
	if !created {
		return res, nil
	}

	res.Booking.Status = domain.BookingInvoiced
	res.Invoice = &inv
	link := s.Invoices.Links.ForInvoice(b.Phone, inv.PDFPath)
	res.WhatsAppLink = &link
	return res, nil
}

func normalizeBookingInput(in models.BookingInput) models.BookingInput {
	in.Name = utils.NormalizeSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Pickup = utils.NormalizeSpace(in.Pickup)
	in.Drop = utils.NormalizeSpace(in.Drop)
	in.TripType = strings.TrimSpace(in.TripType)
	in.Car = utils.NormalizeSpace(in.Car)
	in.TravelDate = strings.TrimSpace(in.TravelDate)
	in.TravelTime = strings.TrimSpace(in.TravelTime)
	return in
}

func validateBookingInput(in models.BookingInput) error {
	required := []struct {
		field string
		value string
	}{
		{"name", in.Name},
		{"phone", in.Phone},
		{"pickup", in.Pickup},
		{"drop", in.Drop},
		{"trip_type", in.TripType},
		{"car", in.Car},
		{"travel_date", in.TravelDate},
		{"travel_time", in.TravelTime},
	}
	for _, r := range required {
		if r.value == "" {
			return domain.ValidationError{Field: r.field, Msg: "required"}
		}
	}
	if in.Price == nil {
		return domain.ValidationError{Field: "price", Msg: "required"}
	}
	if *in.Price < 0 {
		return domain.ValidationError{Field: "price", Msg: "must not be negative"}
	}
	return nil
}
