package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"travelnest/internal/repositories"
	"travelnest/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
)

var (
	testNow        = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	bookingCols    = []string{"id", "booking_number", "name", "phone", "pickup", "drop", "trip_type", "car", "price", "travel_date", "travel_time", "status", "created_at"}
	invoiceCols    = []string{"id", "booking_id", "invoice_no", "base_amount", "gst_amount", "total_amount", "pdf_path", "status", "created_at"}
	ashaInvoiceNo  = "TNC-INV-TNC-20260115-0001"
	ashaInvoiceLoc = "invoices/TNC-INV-TNC-20260115-0001.pdf"
)

type fakeRenderer struct {
	calls int
	err   error
}

func (f *fakeRenderer) Render(_ context.Context, doc InvoiceDocument) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return InvoiceURLPrefix + "/" + utils.SafeFilenamePart(doc.InvoiceNo) + ".pdf", nil
}

func freezeNow(t *testing.T) {
	t.Helper()
	prev := utils.NowUTC
	utils.NowUTC = func() time.Time { return testNow }
	t.Cleanup(func() { utils.NowUTC = prev })
}

func newInvoiceService(db *sql.DB, r InvoiceRenderer) InvoiceService {
	return InvoiceService{
		DB:       db,
		Bookings: repositories.BookingRepository{DB: db},
		Invoices: repositories.InvoiceRepository{DB: db},
		Renderer: r,
		Links: LinkBuilder{
			BaseURL: "http://127.0.0.1:8000",
			Options: utils.WhatsAppOptions{CountryCode: "91", BrandName: "Travel Nest Cabs"},
		},
	}
}

func ashaRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows(bookingCols).
		AddRow(1, "TNC-20260115-0001", "Asha", "9876543210", "Airport", "City Centre",
			"one-way", "Sedan", 1000.0, "2026-01-20", "10:00", status, testNow)
}

func ashaInvoiceRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows(invoiceCols).
		AddRow(9, 1, ashaInvoiceNo, 1000.0, 50.0, 1050.0, ashaInvoiceLoc, status, testNow)
}

func expectBooking(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery("FROM bookings b WHERE b.id = ?").WithArgs(int64(1)).WillReturnRows(rows)
}

func expectInvoiceByBooking(mock sqlmock.Sqlmock, rows *sqlmock.Rows) {
	mock.ExpectQuery("FROM invoices WHERE booking_id = ?").WithArgs(int64(1)).WillReturnRows(rows)
}
