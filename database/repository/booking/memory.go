package bookingRepo

import (
	"context"
	"sync"

	"tabletalk/models"
)

type memoryBookingRepo struct {
	mu           sync.RWMutex
	restaurants  map[string]models.Restaurant
	reservations map[string]models.Reservation // keyed by restaurant + "/" + reference
}

// NewMemoryBookingRepo returns an in-memory Repository. Used by tests and
// the single-binary demo mode (STORE_BACKEND=memory).
func NewMemoryBookingRepo() Repository {
	return &memoryBookingRepo{
		restaurants:  make(map[string]models.Restaurant),
		reservations: make(map[string]models.Reservation),
	}
}

func reservationKey(restaurant, reference string) string {
	return restaurant + "/" + reference
}

func (r *memoryBookingRepo) UpsertRestaurant(ctx context.Context, rest models.Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.restaurants[rest.Name] = rest
	return nil
}

func (r *memoryBookingRepo) GetRestaurant(ctx context.Context, name string) (*models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rest, ok := r.restaurants[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &rest, nil
}

func (r *memoryBookingRepo) InsertReservation(ctx context.Context, res models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reservations[reservationKey(res.Restaurant, res.BookingReference)] = res
	return nil
}

func (r *memoryBookingRepo) GetReservation(ctx context.Context, restaurant, reference string) (*models.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.reservations[reservationKey(restaurant, reference)]
	if !ok {
		return nil, ErrNotFound
	}
	return &res, nil
}

func (r *memoryBookingRepo) ReplaceReservation(ctx context.Context, res models.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := reservationKey(res.Restaurant, res.BookingReference)
	if _, ok := r.reservations[key]; !ok {
		return ErrNotFound
	}
	r.reservations[key] = res
	return nil
}
