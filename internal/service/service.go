package service

import (
	"skyfare/internal/flights"
	"skyfare/internal/messaging"
	"skyfare/internal/repository"
	"skyfare/internal/search"
)

type Services struct {
	Bookings *BookingService
	Search   *SearchService
}

// NewServices wires the service layer. catalog may be nil when Elasticsearch
// is not configured; the search service then serves generated flights only.
func NewServices(stores *repository.Stores, catalog *search.FlightCatalog, generator *flights.Generator, natsClient *messaging.NATSClient) *Services {
	return &Services{
		Bookings: NewBookingService(stores.Bookings, natsClient),
		Search:   NewSearchService(stores.Searches, catalog, generator),
	}
}
