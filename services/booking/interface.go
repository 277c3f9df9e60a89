package booking

import (
	"context"

	bookingRepo "tabletalk/database/repository/booking"
	"tabletalk/models"
)

// BookingService is the booking store boundary: availability search plus
// reservation CRUD keyed by (restaurant, booking reference).
type BookingService interface {
	FindSlots(ctx context.Context, restaurant, visitDate string, partySize int, channelCode string) ([]models.AvailabilitySlot, error)
	CreateReservation(ctx context.Context, input models.ReservationInput) (*models.Reservation, error)
	GetReservation(ctx context.Context, restaurant, reference string) (*models.Reservation, error)
	UpdateReservation(ctx context.Context, restaurant, reference string, update models.ReservationUpdate) (*models.Reservation, error)
	CancelReservation(ctx context.Context, restaurant, reference string, reasonID int) (*models.Reservation, error)
}

// DefaultBookingService implements BookingService over a repository.
type DefaultBookingService struct {
	Repo bookingRepo.Repository
}
