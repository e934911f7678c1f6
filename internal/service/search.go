package service

import (
	"context"
	"fmt"
	"time"

	"skyfare/internal/flights"
	"skyfare/internal/logger"
	"skyfare/internal/models"
	"skyfare/internal/repository"
	"skyfare/internal/search"
)

const catalogResultSize = 50

// SearchService answers flight searches. Cataloged flights from Elasticsearch
// are preferred; when the catalog is absent or has no flights for the route,
// results come from the random generator, so a search never returns empty.
type SearchService struct {
	history   repository.SearchStore
	catalog   *search.FlightCatalog
	generator *flights.Generator
}

func NewSearchService(history repository.SearchStore, catalog *search.FlightCatalog, generator *flights.Generator) *SearchService {
	return &SearchService{
		history:   history,
		catalog:   catalog,
		generator: generator,
	}
}

func (s *SearchService) Search(ctx context.Context, req *models.SearchFlightsRequest) ([]models.Flight, error) {
	departureDate, err := time.Parse("2006-01-02", req.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("invalid departure date %q: %w", req.DepartureDate, err)
	}

	// History is best-effort; a storage hiccup must not fail the search.
	record := &models.FlightSearch{
		Source:        req.Source,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		Passengers:    req.Passengers,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.history.Record(ctx, record); err != nil {
		logger.WithContext(ctx).Error("Failed to record search history",
			"error", err,
			"source", req.Source,
			"destination", req.Destination)
	}

	if s.catalog != nil {
		results, err := s.catalog.Search(ctx, req.Source, req.Destination, req.DepartureDate, catalogResultSize)
		if err != nil {
			logger.WithContext(ctx).Error("Flight catalog query failed, falling back to generator",
				"error", err)
		} else if len(results) > 0 {
			return results, nil
		}
	}

	return s.generator.Generate(req.Source, req.Destination, departureDate), nil
}
