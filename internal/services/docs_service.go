package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	intconfig "travelnest/internal/config"
	"travelnest/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// InvoiceURLPrefix is the public path the invoice directory is served under.
const InvoiceURLPrefix = "invoices"

// InvoiceDocument is the flat record the renderer prints. It carries no
// booking or invoice identity beyond the invoice number.
type InvoiceDocument struct {
	InvoiceNo    string
	CustomerName string
	Pickup       string
	Drop         string
	Car          string
	TravelDate   string
	BaseAmount   float64
	GSTAmount    float64
	TotalAmount  float64
	IssuedAt     time.Time
}

// InvoiceRenderer writes a document and returns its locator.
type InvoiceRenderer interface {
	Render(ctx context.Context, doc InvoiceDocument) (string, error)
}

// DocsService renders GST invoices as A4 PDFs into Dir.
type DocsService struct {
	Dir     string
	Company intconfig.Company
}

// Render writes <Dir>/<invoice_no>.pdf and returns "invoices/<invoice_no>.pdf".
func (s DocsService) Render(ctx context.Context, doc InvoiceDocument) (string, error) {
	if doc.IssuedAt.IsZero() {
		doc.IssuedAt = utils.NowUTC()
	}
	pdfBytes, err := BuildInvoicePDF(doc, s.Company)
	if err != nil {
		return "", fmt.Errorf("build invoice pdf: %w", err)
	}

	dir := utils.Fallback(s.Dir, InvoiceURLPrefix)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create invoice dir: %w", err)
	}

	filename := utils.SafeFilenamePart(doc.InvoiceNo) + ".pdf"
	if err := os.WriteFile(filepath.Join(dir, filename), pdfBytes, 0o644); err != nil {
		return "", fmt.Errorf("write invoice pdf: %w", err)
	}

	utils.LogEvent(utils.RequestIDFrom(ctx), "docs", "render_invoice", "invoice rendered",
		utils.String("invoice_no", doc.InvoiceNo), utils.Int("bytes", len(pdfBytes)))
	return path.Join(InvoiceURLPrefix, filename), nil
}

// BuildInvoicePDF lays out a single A4 page top to bottom: title, invoice
// metadata, issuer, customer and trip, fare breakdown, footer. Content that
// overflows the page is not paginated.
func BuildInvoicePDF(d InvoiceDocument, company intconfig.Company) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tax Invoice "+d.InvoiceNo, true)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(false, 18)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "TAX INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Invoice No: "+d.InvoiceNo, "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+utils.IndianDate(d.IssuedAt), "", 1, "R", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, tr(utils.Fallback(company.Name, "Travel Nest Cabs")), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "GSTIN: "+company.GSTIN, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(company.Address), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Billed To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	lines := []string{
		"Customer Name: " + utils.Fallback(d.CustomerName, "-"),
		fmt.Sprintf("Route: %s -> %s", utils.Fallback(d.Pickup, "-"), utils.Fallback(d.Drop, "-")),
		"Vehicle: " + utils.Fallback(d.Car, "-"),
		"Travel Date: " + utils.Fallback(d.TravelDate, "-"),
	}
	for _, l := range lines {
		pdf.CellFormat(0, 6, tr(l), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Fare Details", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	fareRow(pdf, "Base Fare:", d.BaseAmount)
	fareRow(pdf, "GST @ 5%:", d.GSTAmount)
	pdf.SetFont("Helvetica", "B", 11)
	fareRow(pdf, "Total Amount:", d.TotalAmount)
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Note: This is a computer-generated GST invoice. No signature required.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fareRow(pdf *gofpdf.Fpdf, label string, amount float64) {
	w, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	half := (w - left - right) / 2
	pdf.CellFormat(half, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(half, 6, utils.CurrencySymbol+" "+utils.FormatMoney(amount), "", 1, "R", false, 0, "")
}
