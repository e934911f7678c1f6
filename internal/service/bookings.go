package service

import (
	"context"
	"fmt"
	"time"

	"skyfare/internal/logger"
	"skyfare/internal/messaging"
	"skyfare/internal/models"
	"skyfare/internal/repository"
)

// BookingService persists and reads booking records for the direct REST
// endpoints. The session workflow persists its own booking at confirmation;
// both paths share the same store.
type BookingService struct {
	bookings   repository.BookingStore
	natsClient *messaging.NATSClient
}

func NewBookingService(bookings repository.BookingStore, natsClient *messaging.NATSClient) *BookingService {
	return &BookingService{
		bookings:   bookings,
		natsClient: natsClient,
	}
}

func (s *BookingService) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.Booking, error) {
	booking := &models.Booking{
		Source:        req.Source,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		Passengers:    req.Passengers,
		UserID:        req.UserID,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := models.BookingCreatedEvent{
		BookingID:   booking.ID,
		Source:      booking.Source,
		Destination: booking.Destination,
		UserID:      booking.UserID,
		Timestamp:   time.Now().UTC(),
	}
	if err := s.natsClient.Publish(models.EventBookingCreated, event); err != nil {
		logger.WithContext(ctx).Error("Failed to publish booking created event",
			"error", err,
			"booking_id", booking.ID)
	}

	return booking, nil
}

// GetByID returns (nil, nil) when no booking has the given id.
func (s *BookingService) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	bookings, err := s.bookings.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
