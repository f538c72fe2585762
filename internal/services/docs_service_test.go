package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	intconfig "travelnest/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvoicePDF(t *testing.T) {
	pdf, err := BuildInvoicePDF(InvoiceDocument{
		InvoiceNo:    ashaInvoiceNo,
		CustomerName: "Asha",
		Pickup:       "Airport",
		Drop:         "City Centre",
		Car:          "Sedan",
		TravelDate:   "2026-01-20",
		BaseAmount:   1000,
		GSTAmount:    50,
		TotalAmount:  1050,
		IssuedAt:     testNow,
	}, intconfig.Company{Name: "Travel Nest Cabs"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRenderWritesUnderDir(t *testing.T) {
	dir := t.TempDir()
	svc := DocsService{Dir: dir}

	loc, err := svc.Render(context.Background(), InvoiceDocument{InvoiceNo: "TNC-INV/../x", BaseAmount: 1, GSTAmount: 0.05, TotalAmount: 1.05})
	require.NoError(t, err)
	assert.Equal(t, "invoices/TNC-INV___x.pdf", loc)

	_, err = os.Stat(filepath.Join(dir, "TNC-INV___x.pdf"))
	assert.NoError(t, err)
}
