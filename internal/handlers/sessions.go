package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skyfare/internal/logger"
	"skyfare/internal/models"
	"skyfare/internal/workflow"
)

// CreateSession - POST /api/sessions
// Opens a booking session at the flights step for a searched route.
func (h *Handlers) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
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

	view := h.sessions.CreateSession(&req)
	respondCreated(c, "Session created", view)
}

// GetSession - GET /api/sessions/:id
func (h *Handlers) GetSession(c *gin.Context) {
	view, err := h.sessions.GetSession(c.Param("id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	respondOK(c, "", view)
}

// SelectFlight - POST /api/sessions/:id/flight
func (h *Handlers) SelectFlight(c *gin.Context) {
	var req models.SelectFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, bindingErrors(err))
		return
	}

	view, err := h.sessions.SelectFlight(c.Request.Context(), c.Param("id"), req.Flight)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	respondOK(c, "Flight selected", view)
}

// ToggleSeat - POST /api/sessions/:id/seats/toggle
func (h *Handlers) ToggleSeat(c *gin.Context) {
	var req models.ToggleSeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, bindingErrors(err))
		return
	}

	view, err := h.sessions.ToggleSeat(c.Request.Context(), c.Param("id"), req.SeatID)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	respondOK(c, "", view)
}

// ProceedToPayment - POST /api/sessions/:id/proceed
func (h *Handlers) ProceedToPayment(c *gin.Context) {
	view, err := h.sessions.ProceedToPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	respondOK(c, "", view)
}

// SubmitPayment - POST /api/sessions/:id/payment
// Runs the simulated payment and, on success, returns the session at the
// confirmation step with its booking id.
func (h *Handlers) SubmitPayment(c *gin.Context) {
	var details models.PaymentDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		respondValidationError(c, bindingErrors(err))
		return
	}

	view, err := h.sessions.SubmitPayment(c.Request.Context(), c.Param("id"), &details)
	if err != nil {
		h.sessionError(c, err)
		return
	}
	respondOK(c, "Payment successful", view)
}

// Back - POST /api/sessions/:id/back
func (h *Handlers) Back(c *gin.Context) {
	view, err := h.sessions.Back(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	respondOK(c, "", view)
}

// ResetSession - POST /api/sessions/:id/reset
func (h *Handlers) ResetSession(c *gin.Context) {
	view, err := h.sessions.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.sessionError(c, err)
		return
	}
	respondOK(c, "Session reset", view)
}

// sessionError maps workflow errors onto HTTP statuses.
func (h *Handlers) sessionError(c *gin.Context, err error) {
	var verr *workflow.PaymentValidationError

	switch {
	case errors.Is(err, workflow.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, "Session not found")
	case errors.As(err, &verr):
		respondValidationError(c, verr.Fields)
	case errors.Is(err, workflow.ErrInvalidFlight),
		errors.Is(err, workflow.ErrNoSeatsSelected),
		errors.Is(err, workflow.ErrUnknownSeat):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, workflow.ErrSeatUnavailable),
		errors.Is(err, workflow.ErrIllegalTransition),
		errors.Is(err, workflow.ErrTransitionInFlight):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, workflow.ErrPersistFailed):
		logger.WithContext(c.Request.Context()).Error("Failed to persist booking", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to save booking, please retry")
	default:
		logger.WithContext(c.Request.Context()).Error("Session operation failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
