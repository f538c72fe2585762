package handlers

import (
	"net/http"

	"travelnest/internal/domain/models"
	"travelnest/internal/http/middleware"
	"travelnest/internal/utils"

	"github.com/gin-gonic/gin"
)

type bookingStatusRequest struct {
	Status string `json:"status"`
}

// POST /api/bookings
func (h Handler) CreateBooking(c *gin.Context) {
	var req models.BookingInput
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := h.Bookings.Create(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Booking saved successfully",
		"booking_id":     b.ID,
		"booking_number": b.BookingNumber,
	})
}

// GET /api/admin/bookings
func (h Handler) ListBookings(c *gin.Context) {
	items, err := h.Bookings.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /api/admin/bookings/:id
func (h Handler) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// PUT /api/admin/bookings/:id
func (h Handler) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req bookingStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	res, err := h.Bookings.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	adminID, _ := middleware.GetAdminID(c)
	utils.LogEvent(middleware.GetRequestID(c), "admin", "booking_status", "status updated by admin",
		utils.Int64("admin_id", adminID), utils.Int64("booking_id", id))

	c.JSON(http.StatusOK, gin.H{
		"message":       "Booking status updated",
		"booking":       res.Booking,
		"invoice":       res.Invoice,
		"whatsapp_link": res.WhatsAppLink,
	})
}
