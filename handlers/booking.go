package handlers

import (
	"errors"
	"net/http"

	bookingRepo "salonhub/database/repository/booking"
	"salonhub/models"
	"salonhub/services/booking"
	"salonhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking engine over HTTP.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// writeBookingError maps the service error taxonomy onto HTTP statuses.
func (h *BookingHandler) writeBookingError(c *gin.Context, err error) {
	var vErr models.ValidationError
	switch {
	case errors.As(err, &vErr):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", vErr.Error())
	case errors.Is(err, booking.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusConflict, "slot unavailable", "this time was just taken, please pick another")
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "invalid transition", "the booking is not in a state that allows this change")
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "booking not found", "")
	case errors.Is(err, booking.ErrStoreUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "store unavailable", "please retry")
	default:
		h.Logger.Error("booking operation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}

// Reserve handles POST /api/bookings. The customer id comes from the
// authenticated token, never from the payload.
func (h *BookingHandler) Reserve(c *gin.Context) {
	var input struct {
		BusinessID string `json:"business_id" binding:"required"`
		ServiceID  string `json:"service_id" binding:"required"`
		Date       string `json:"date" binding:"required"`
		Time       string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b, err := h.Svc.Reserve(c.Request.Context(), booking.ReserveInput{
		BusinessID: input.BusinessID,
		CustomerID: c.GetString("customerID"),
		ServiceID:  input.ServiceID,
		Date:       input.Date,
		Time:       input.Time,
	})
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ListSlots handles GET /api/businesses/:id/slots?date=YYYY-MM-DD. Public.
func (h *BookingHandler) ListSlots(c *gin.Context) {
	businessID := c.Param("id")
	date := c.Query("date")
	if !models.ValidDate(date) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be YYYY-MM-DD")
		return
	}

	times, err := h.Svc.ListSlots(c.Request.Context(), businessID, date)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"business_id": businessID, "date": date, "times": times})
}

// GetBooking handles GET /api/bookings/:id for the booking's customer.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	if b.CustomerID != c.GetString("customerID") && !c.GetBool("isAdmin") {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "not your booking")
		return
	}
	c.JSON(http.StatusOK, b)
}

// MyBookings handles GET /api/bookings for the authenticated customer.
func (h *BookingHandler) MyBookings(c *gin.Context) {
	list, err := h.Svc.CustomerBookings(c.Request.Context(), c.GetString("customerID"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// BusinessBookings handles GET /api/salons/me/bookings for the
// authenticated business.
func (h *BookingHandler) BusinessBookings(c *gin.Context) {
	list, err := h.Svc.BusinessBookings(c.Request.Context(), c.GetString("businessID"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Transition handles PATCH /api/salons/me/bookings/:id/status. Only the
// business holding the booking (or an admin, via the admin route) may move it.
func (h *BookingHandler) Transition(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	target, err := models.ParseBookingStatus(input.Status)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	existing, err := h.Svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	if businessID := c.GetString("businessID"); businessID != "" && existing.BusinessID != businessID {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "booking belongs to another business")
		return
	}

	b, err := h.Svc.Transition(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// AdminList handles GET /api/admin/bookings.
func (h *BookingHandler) AdminList(c *gin.Context) {
	list, err := h.Svc.AllBookings(c.Request.Context())
	if err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// AdminTransition handles PATCH /api/admin/bookings/:id/status.
func (h *BookingHandler) AdminTransition(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	target, err := models.ParseBookingStatus(input.Status)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	b, err := h.Svc.Transition(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// AdminDelete handles DELETE /api/admin/bookings/:id. Deletion is a pure
// record purge; it does not restore slots.
func (h *BookingHandler) AdminDelete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
