package bookingRepo

import (
	"context"
	"testing"

	"tabletalk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoRestaurantLifecycle(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	_, err := repo.GetRestaurant(ctx, "TheHungryUnicorn")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.UpsertRestaurant(ctx, models.Restaurant{Name: "TheHungryUnicorn", MaxPartySize: 8}))

	rest, err := repo.GetRestaurant(ctx, "TheHungryUnicorn")
	require.NoError(t, err)
	assert.Equal(t, 8, rest.MaxPartySize)
}

func TestMemoryRepoReservationLifecycle(t *testing.T) {
	repo := NewMemoryBookingRepo()
	ctx := context.Background()

	res := models.Reservation{
		BookingReference: "ABC1234",
		Restaurant:       "TheHungryUnicorn",
		VisitDate:        "2025-01-15",
		Status:           models.StatusConfirmed,
	}
	require.NoError(t, repo.InsertReservation(ctx, res))

	got, err := repo.GetReservation(ctx, "TheHungryUnicorn", "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", got.VisitDate)

	// Reservations are keyed by (restaurant, reference).
	_, err = repo.GetReservation(ctx, "OtherPlace", "ABC1234")
	assert.ErrorIs(t, err, ErrNotFound)

	res.Status = models.StatusCancelled
	require.NoError(t, repo.ReplaceReservation(ctx, res))

	got, err = repo.GetReservation(ctx, "TheHungryUnicorn", "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)

	err = repo.ReplaceReservation(ctx, models.Reservation{Restaurant: "TheHungryUnicorn", BookingReference: "NOPE"})
	assert.ErrorIs(t, err, ErrNotFound)
}
