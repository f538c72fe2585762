package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type invoiceStatusRequest struct {
	Status string `json:"status"`
}

// POST /api/invoice/generate/:booking_id
func (h Handler) GenerateInvoice(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "booking_id")
	if !ok {
		return
	}

	res, err := h.Invoices.Generate(c.Request.Context(), bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	msg := "Invoice already exists"
	status := http.StatusOK
	if res.Created {
		msg = "Invoice generated"
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"message":       msg,
		"invoice":       res.Invoice,
		"invoice_url":   h.Invoices.Links.DocumentURL(res.Invoice.PDFPath),
		"whatsapp_link": res.WhatsAppLink,
	})
}

// PUT /api/admin/invoices/:id/status
func (h Handler) UpdateInvoiceStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req invoiceStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	inv, err := h.Invoices.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice status updated", "invoice": inv})
}

// POST /api/invoice/resend-whatsapp/:booking_id
func (h Handler) ResendWhatsApp(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "booking_id")
	if !ok {
		return
	}
	link, err := h.Invoices.ResendWhatsApp(c.Request.Context(), bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"whatsapp_link": link})
}
