package repositories

import (
	"context"
	"testing"
	"time"

	"travelnest/internal/domain"
	"travelnest/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceUpdateStatusUnlessPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE invoices SET status = \\? WHERE id = \\? AND status <> \\?").
		WithArgs("SENT", int64(3), "PAID").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE invoices SET status").
		WithArgs("SENT", int64(4), "PAID").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := InvoiceRepository{DB: db}
	ok, err := repo.UpdateStatusUnlessPaid(context.Background(), 3, domain.InvoiceSent)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatusUnlessPaid(context.Background(), 4, domain.InvoiceSent)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceGetByBookingID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM invoices WHERE booking_id = ?").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "invoice_no", "base_amount", "gst_amount", "total_amount", "pdf_path", "status", "created_at"}).
			AddRow(9, 1, "TNC-INV-TNC-20260115-0001", 1000.0, 50.0, 1050.0, "invoices/TNC-INV-TNC-20260115-0001.pdf", "GENERATED", created))
	mock.ExpectQuery("FROM invoices WHERE booking_id = ?").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := InvoiceRepository{DB: db}
	inv, err := repo.GetByBookingID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), inv.ID)
	assert.Equal(t, 1050.0, inv.TotalAmount)
	assert.Equal(t, domain.InvoiceGenerated, inv.Status)

	_, err = repo.GetByBookingID(context.Background(), 2)
	assert.True(t, domain.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceInsertDuplicateIsDetectable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO invoices").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1' for key 'uniq_invoice_booking'"})

	_, err = InvoiceRepository{DB: db}.Insert(context.Background(), models.Invoice{BookingID: 1, Status: domain.InvoiceGenerated})
	require.Error(t, err)

	var myErr *mysql.MySQLError
	require.ErrorAs(t, err, &myErr)
	assert.Equal(t, uint16(1062), myErr.Number)
	require.NoError(t, mock.ExpectationsWereMet())
}
