package services

import (
	"context"
	"database/sql"

	intconfig "travelnest/internal/config"
	intdb "travelnest/internal/db"
	"travelnest/internal/domain"
	"travelnest/internal/domain/models"
	"travelnest/internal/repositories"
	"travelnest/internal/utils"
)

// InvoiceService owns invoice creation, status changes and share links.
type InvoiceService struct {
	DB       *sql.DB
	Bookings repositories.BookingRepository
	Invoices repositories.InvoiceRepository
	Renderer InvoiceRenderer
	Links    LinkBuilder
}

// InvoiceResult is an invoice together with a freshly built share link.
type InvoiceResult struct {
	Invoice      models.Invoice `json:"invoice"`
	WhatsAppLink string         `json:"whatsapp_link"`
	Created      bool           `json:"created"`
}

func (s InvoiceService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Generate creates the invoice of a completed booking, or returns the
// existing one untouched.
func (s InvoiceService) Generate(ctx context.Context, bookingID int64) (InvoiceResult, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return InvoiceResult{}, wrapRepoErr(err, "failed to load booking")
	}

	existing, err := s.Invoices.GetByBookingID(ctx, b.ID)
	switch {
	case err == nil:
		return InvoiceResult{Invoice: existing, WhatsAppLink: s.Links.ForInvoice(b.Phone, existing.PDFPath)}, nil
	case !domain.IsNotFound(err):
		return InvoiceResult{}, domain.InternalError{Msg: "failed to load invoice", Err: err}
	}

	if b.Status != domain.BookingCompleted && b.Status != domain.BookingInvoiced {
		return InvoiceResult{}, domain.InvalidStateError{Resource: "booking", Msg: "booking must be COMPLETED before invoicing"}
	}

	inv, created, err := s.issue(ctx, b, false)
	if err != nil {
		return InvoiceResult{}, err
	}
	return InvoiceResult{Invoice: inv, WhatsAppLink: s.Links.ForInvoice(b.Phone, inv.PDFPath), Created: created}, nil
}

// issue is create-if-absent: it renders and stores the invoice of b unless
// one exists. When markInvoiced is set the booking flips to INVOICED in the
// same transaction as the insert. A concurrent issuer losing the race on the
// unique booking_id gets the winner's invoice back with created=false.
func (s InvoiceService) issue(ctx context.Context, b models.Booking, markInvoiced bool) (models.Invoice, bool, error) {
	existing, err := s.Invoices.GetByBookingID(ctx, b.ID)
	if err == nil {
		return existing, false, nil
	}
	if !domain.IsNotFound(err) {
		return models.Invoice{}, false, domain.InternalError{Msg: "failed to load invoice", Err: err}
	}

	fare := utils.ComputeFare(b.Price)
	now := utils.NowUTC()
	inv := models.Invoice{
		BookingID:   b.ID,
		InvoiceNo:   utils.InvoiceNumberFor(b.BookingNumber),
		BaseAmount:  fare.Base,
		GSTAmount:   fare.GST,
		TotalAmount: fare.Total,
		Status:      domain.InvoiceGenerated,
		CreatedAt:   now,
	}

	locator, err := s.Renderer.Render(ctx, InvoiceDocument{
		InvoiceNo:    inv.InvoiceNo,
		CustomerName: b.Name,
		Pickup:       b.Pickup,
		Drop:         b.Drop,
		Car:          b.Car,
		TravelDate:   b.TravelDate,
		BaseAmount:   inv.BaseAmount,
		GSTAmount:    inv.GSTAmount,
		TotalAmount:  inv.TotalAmount,
		IssuedAt:     now,
	})
	if err != nil {
		return models.Invoice{}, false, domain.InternalError{Msg: "failed to render invoice", Err: err}
	}
	inv.PDFPath = locator

	err = intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		id, err := s.Invoices.WithTx(tx).Insert(ctx, inv)
		if err != nil {
			return err
		}
		inv.ID = id
		if markInvoiced {
			return s.Bookings.WithTx(tx).UpdateStatus(ctx, b.ID, domain.BookingInvoiced)
		}
		return nil
	})
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			if winner, gerr := s.Invoices.GetByBookingID(ctx, b.ID); gerr == nil {
				return winner, false, nil
			}
		}
		return models.Invoice{}, false, domain.InternalError{Msg: "failed to store invoice", Err: err}
	}

	utils.LogEvent(utils.RequestIDFrom(ctx), "invoice", "issue", "invoice created",
		utils.Int64("booking_id", b.ID), utils.String("invoice_no", inv.InvoiceNo))
	return inv, true, nil
}

// ResendWhatsApp rebuilds the share link from the stored locator.
func (s InvoiceService) ResendWhatsApp(ctx context.Context, bookingID int64) (string, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return "", wrapRepoErr(err, "failed to load booking")
	}
	inv, err := s.Invoices.GetByBookingID(ctx, b.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			return "", domain.InvalidStateError{Msg: "invoice not generated"}
		}
		return "", domain.InternalError{Msg: "failed to load invoice", Err: err}
	}
	return s.Links.ForInvoice(b.Phone, inv.PDFPath), nil
}

// UpdateStatus sets the invoice status. PAID is terminal; the conditional
// update keeps a concurrent PAID from being overwritten.
func (s InvoiceService) UpdateStatus(ctx context.Context, invoiceID int64, rawStatus string) (models.Invoice, error) {
	status, err := domain.ParseInvoiceStatus(rawStatus)
	if err != nil {
		return models.Invoice{}, err
	}

	inv, err := s.Invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return models.Invoice{}, wrapRepoErr(err, "failed to load invoice")
	}
	if inv.Status.Terminal() {
		return models.Invoice{}, domain.InvalidStateError{Resource: "invoice", Msg: "invoice already paid"}
	}

	updated, err := s.Invoices.UpdateStatusUnlessPaid(ctx, inv.ID, status)
	if err != nil {
		return models.Invoice{}, domain.InternalError{Msg: "failed to update invoice", Err: err}
	}
	if !updated {
		return models.Invoice{}, domain.InvalidStateError{Resource: "invoice", Msg: "invoice already paid"}
	}

	utils.LogEvent(utils.RequestIDFrom(ctx), "invoice", "update_status", "invoice status changed",
		utils.Int64("invoice_id", inv.ID), utils.String("from", inv.Status.String()), utils.String("to", status.String()))
	inv.Status = status
	return inv, nil
}

// wrapRepoErr passes typed domain errors through and wraps the rest as internal.
func wrapRepoErr(err error, msg string) error {
	if domain.IsNotFound(err) || domain.IsValidation(err) {
		return err
	}
	return domain.InternalError{Msg: msg, Err: err}
}
