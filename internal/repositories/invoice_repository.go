package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "travelnest/internal/config"
	intdb "travelnest/internal/db"
	"travelnest/internal/domain"
	"travelnest/internal/domain/models"
)

type InvoiceRepository struct {
	DB *sql.DB
	tx *sql.Tx
}

func (r InvoiceRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r InvoiceRepository) q() intdb.Querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db()
}

func (r InvoiceRepository) WithTx(tx *sql.Tx) InvoiceRepository {
	r.tx = tx
	return r
}

const invoiceColumns = `id, booking_id, invoice_no, base_amount, gst_amount, total_amount, pdf_path, status, created_at`

func (r InvoiceRepository) GetByID(ctx context.Context, id int64) (models.Invoice, error) {
	if id <= 0 {
		return models.Invoice{}, domain.ValidationError{Field: "invoice_id", Msg: "invalid id"}
	}
	row := r.q().QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ? LIMIT 1`, id)
	return scanInvoice(row, "get invoice")
}

// GetByBookingID returns the single invoice of a booking.
func (r InvoiceRepository) GetByBookingID(ctx context.Context, bookingID int64) (models.Invoice, error) {
	if bookingID <= 0 {
		return models.Invoice{}, domain.ValidationError{Field: "booking_id", Msg: "invalid id"}
	}
	row := r.q().QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE booking_id = ? LIMIT 1`, bookingID)
	return scanInvoice(row, "get invoice by booking")
}

// Insert stores a new invoice. A second invoice for the same booking fails
// with a duplicate-key error from uniq_invoice_booking; callers check it with
// intdb.IsDuplicateKey.
func (r InvoiceRepository) Insert(ctx context.Context, inv models.Invoice) (int64, error) {
	res, err := r.q().ExecContext(ctx, `
		INSERT INTO invoices (booking_id, invoice_no, base_amount, gst_amount, total_amount, pdf_path, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.BookingID, inv.InvoiceNo, inv.BaseAmount, inv.GSTAmount, inv.TotalAmount,
		inv.PDFPath, string(inv.Status), inv.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert invoice: %w", err)
	}
	return res.LastInsertId()
}

// UpdateStatusUnlessPaid changes the status only while the invoice is not
// PAID. It reports whether a row matched.
func (r InvoiceRepository) UpdateStatusUnlessPaid(ctx context.Context, id int64, status domain.InvoiceStatus) (bool, error) {
	res, err := r.q().ExecContext(ctx,
		`UPDATE invoices SET status = ? WHERE id = ? AND status <> ?`,
		string(status), id, string(domain.InvoicePaid),
	)
	if err != nil {
		return false, fmt.Errorf("update invoice status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update invoice status: %w", err)
	}
	return n > 0, nil
}

func scanInvoice(row *sql.Row, op string) (models.Invoice, error) {
	var (
		inv    models.Invoice
		status string
	)
	err := row.Scan(
		&inv.ID,
		&inv.BookingID,
		&inv.InvoiceNo,
		&inv.BaseAmount,
		&inv.GSTAmount,
		&inv.TotalAmount,
		&inv.PDFPath,
		&status,
		&inv.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Invoice{}, domain.NotFoundError{Resource: "invoice", Err: err}
	}
	if err != nil {
		return models.Invoice{}, fmt.Errorf("%s: %w", op, err)
	}
	inv.Status = domain.InvoiceStatus(status)
	return inv, nil
}
