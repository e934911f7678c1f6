// Package handlers maps the HTTP surface onto the service and workflow
// layers. Every endpoint answers with the same envelope: success, message and
// either a data payload or a list of field errors.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"skyfare/internal/cache"
	"skyfare/internal/models"
	"skyfare/internal/service"
	"skyfare/internal/workflow"
)

type Handlers struct {
	services    *service.Services
	sessions    *workflow.Controller
	cacheClient *cache.Client
}

// NewHandlers wires the HTTP layer. cacheClient may be nil; caching is then
// skipped.
func NewHandlers(services *service.Services, sessions *workflow.Controller, cacheClient *cache.Client) *Handlers {
	return &Handlers{
		services:    services,
		sessions:    sessions,
		cacheClient: cacheClient,
	}
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, models.APIResponse{Success: true, Message: message, Data: data})
}

func respondValidationError(c *gin.Context, fieldErrors []models.ValidationError) {
	c.JSON(http.StatusBadRequest, models.APIResponse{
		Success: false,
		Message: "Validation error",
		Errors:  fieldErrors,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.APIResponse{Success: false, Message: message})
}

// bindingErrors flattens a gin binding failure into field-level errors. Field
// paths are reported in JSON form ("passengers.adults").
func bindingErrors(err error) []models.ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []models.ValidationError{{Field: "body", Message: err.Error()}}
	}

	out := make([]models.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace is "CreateBookingRequest.Passengers.Adults"; drop the
		// struct name and lower-case the first letter of each segment to
		// match the JSON payload.
		segments := strings.Split(fe.Namespace(), ".")[1:]
		for i, seg := range segments {
			segments[i] = strings.ToLower(seg[:1]) + seg[1:]
		}

		out = append(out, models.ValidationError{
			Field:   strings.Join(segments, "."),
			Message: validationMessage(fe),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
