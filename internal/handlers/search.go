package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skyfare/internal/cache"
	"skyfare/internal/logger"
	"skyfare/internal/models"
)

// SearchFlights - POST /api/search-flights
// Answers from the cache when possible; otherwise queries the catalog or
// generator and caches the rendered response.
func (h *Handlers) SearchFlights(c *gin.Context) {
	var req models.SearchFlightsRequest
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

	log := logger.WithContext(c.Request.Context())
	key := cache.SearchKey(req.Source, req.Destination, req.DepartureDate)

	if h.cacheClient != nil {
		if raw, err := h.cacheClient.GetSearchResultsRaw(c.Request.Context(), key); err == nil {
			log.Info("Cache hit for flight search", "key", key)
			c.Data(http.StatusOK, "application/json", raw)
			return
		}
	}

	results, err := h.services.Search.Search(c.Request.Context(), &req)
	if err != nil {
		log.Error("Flight search failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Failed to search flights")
		return
	}

	response := models.APIResponse{Success: true, Data: results}

	if h.cacheClient != nil {
		if err := h.cacheClient.SetSearchResults(c.Request.Context(), key, response); err != nil {
			log.Error("Failed to cache search results", "error", err, "key", key)
		}
	}

	c.JSON(http.StatusOK, response)
}
