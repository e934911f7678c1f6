package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"skyfare/internal/logger"
	"skyfare/internal/models"
)

// CreateBooking - POST /api/bookings
// Persists a booking directly, without going through a session.
func (h *Handlers) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, bindingErrors(err))
		return
	}

	if _, err := time.Parse("2006-01-02", req.DepartureDate); err != nil {
		respondValidationError(c, []models.ValidationError{
			{Field: "departureDate", Message: "must be an ISO date (YYYY-MM-DD)"},
		})
		return
	}

	booking, err := h.services.Bookings.Create(c.Request.Context(), &req)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Failed to create booking", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	respondCreated(c, "Booking created", booking)
}

// GetBooking - GET /api/bookings/:id
func (h *Handlers) GetBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondValidationError(c, []models.ValidationError{
			{Field: "id", Message: "must be an integer"},
		})
		return
	}

	booking, err := h.services.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Failed to get booking",
			"error", err, "booking_id", id)
		respondError(c, http.StatusInternalServerError, "Failed to get booking")
		return
	}
	if booking == nil {
		respondError(c, http.StatusNotFound, "Booking not found")
		return
	}

	respondOK(c, "", booking)
}

// ListBookings - GET /api/bookings?userId=N
func (h *Handlers) ListBookings(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("userId"), 10, 64)
	if err != nil {
		respondValidationError(c, []models.ValidationError{
			{Field: "userId", Message: "must be an integer"},
		})
		return
	}

	bookings, err := h.services.Bookings.ListByUser(c.Request.Context(), userID)
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("Failed to list bookings",
			"error", err, "user_id", userID)
		respondError(c, http.StatusInternalServerError, "Failed to list bookings")
		return
	}

	respondOK(c, "", bookings)
}
