package booking

import (
	"context"
	"time"

	bookingRepo "tabletalk/database/repository/booking"
	"tabletalk/models"
)

// Service windows: lunch 12:00-13:30 and dinner 19:00-20:30, half-hour grid,
// tables of up to 8.
var defaultSlotTimes = []string{
	"12:00:00", "12:30:00", "13:00:00", "13:30:00",
	"19:00:00", "19:30:00", "20:00:00", "20:30:00",
}

const defaultMaxPartySize = 8

// EnsureSeedData writes the deployment's restaurant record so availability
// searches and bookings have something to land on.
func EnsureSeedData(ctx context.Context, repo bookingRepo.Repository, restaurantName string) error {
	return repo.UpsertRestaurant(ctx, models.Restaurant{
		Name:         restaurantName,
		SlotTimes:    defaultSlotTimes,
		MaxPartySize: defaultMaxPartySize,
		CreatedAt:    time.Now(),
	})
}
