package bookingRepo

import (
	"context"
	"errors"

	"tabletalk/models"
)

// ErrNotFound is returned when a restaurant or reservation does not exist.
var ErrNotFound = errors.New("not found")

// Repository persists restaurants and reservation records. Reservations are
// keyed by (restaurant, booking reference) and never deleted.
type Repository interface {
	// UpsertRestaurant writes a restaurant record, replacing any existing
	// one with the same name. Used for seeding.
	UpsertRestaurant(ctx context.Context, r models.Restaurant) error

	// GetRestaurant returns a restaurant by name, or ErrNotFound.
	GetRestaurant(ctx context.Context, name string) (*models.Restaurant, error)

	// InsertReservation stores a new reservation.
	InsertReservation(ctx context.Context, res models.Reservation) error

	// GetReservation returns a reservation by (restaurant, reference),
	// or ErrNotFound.
	GetReservation(ctx context.Context, restaurant, reference string) (*models.Reservation, error)

	// ReplaceReservation overwrites the reservation with the same
	// (restaurant, reference), or returns ErrNotFound.
	ReplaceReservation(ctx context.Context, res models.Reservation) error
}
