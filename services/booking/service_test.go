package booking

import (
	"context"
	"testing"

	bookingRepo "tabletalk/database/repository/booking"
	"tabletalk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRestaurant = "TheHungryUnicorn"

func newTestService(t *testing.T) *DefaultBookingService {
	t.Helper()
	repo := bookingRepo.NewMemoryBookingRepo()
	require.NoError(t, EnsureSeedData(context.Background(), repo, testRestaurant))
	return &DefaultBookingService{Repo: repo}
}

func sampleInput() models.ReservationInput {
	return models.ReservationInput{
		Restaurant:      testRestaurant,
		VisitDate:       "2025-01-15",
		VisitTime:       "19:00:00",
		PartySize:       4,
		SpecialRequests: "window table",
		Customer: models.CustomerDetails{
			FirstName: "Ada",
			Surname:   "Lovelace",
			Email:     "ada@example.com",
		},
	}
}

func TestFindSlotsMatchesDateAndCapacity(t *testing.T) {
	svc := newTestService(t)

	slots, err := svc.FindSlots(context.Background(), testRestaurant, "2025-01-15", 4, "ONLINE")
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		assert.Equal(t, "2025-01-15", slot.VisitDate)
		assert.GreaterOrEqual(t, slot.MaxPartySize, 4)
	}
}

func TestFindSlotsPartyTooLargeReturnsNothing(t *testing.T) {
	svc := newTestService(t)

	slots, err := svc.FindSlots(context.Background(), testRestaurant, "2025-01-15", 9, "ONLINE")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFindSlotsUnknownRestaurant(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.FindSlots(context.Background(), "TheFullFridge", "2025-01-15", 2, "ONLINE")
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestFindSlotsInvalidDate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.FindSlots(context.Background(), testRestaurant, "15/01/2025", 2, "ONLINE")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCreateGetRoundTrip(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateReservation(context.Background(), sampleInput())
	require.NoError(t, err)
	require.NotEmpty(t, created.BookingReference)
	assert.Equal(t, models.StatusConfirmed, created.Status)
	assert.Equal(t, "ONLINE", created.ChannelCode) // default applied

	got, err := svc.GetReservation(context.Background(), testRestaurant, created.BookingReference)
	require.NoError(t, err)
	assert.Equal(t, created.BookingReference, got.BookingReference)
	assert.Equal(t, "2025-01-15", got.VisitDate)
	assert.Equal(t, "19:00:00", got.VisitTime)
	assert.Equal(t, 4, got.PartySize)
	assert.Equal(t, "window table", got.SpecialRequests)
	assert.Equal(t, "Ada", got.Customer.FirstName)
	assert.Equal(t, models.StatusConfirmed, got.Status)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)

	in := sampleInput()
	in.VisitDate = "not-a-date"
	_, err := svc.CreateReservation(context.Background(), in)
	assert.True(t, IsValidationError(err))

	in = sampleInput()
	in.VisitTime = "7pm"
	_, err = svc.CreateReservation(context.Background(), in)
	assert.True(t, IsValidationError(err))

	in = sampleInput()
	in.PartySize = 0
	_, err = svc.CreateReservation(context.Background(), in)
	assert.True(t, IsValidationError(err))

	in = sampleInput()
	in.PartySize = 12
	_, err = svc.CreateReservation(context.Background(), in)
	assert.True(t, IsValidationError(err))

	in = sampleInput()
	in.Restaurant = "TheFullFridge"
	_, err = svc.CreateReservation(context.Background(), in)
	assert.True(t, IsNotFoundError(err))
}

func TestUpdatePartialLeavesOtherFieldsUnchanged(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateReservation(context.Background(), sampleInput())
	require.NoError(t, err)

	newSize := 6
	updated, err := svc.UpdateReservation(context.Background(), testRestaurant, created.BookingReference, models.ReservationUpdate{
		PartySize: &newSize,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, updated.PartySize)
	assert.Equal(t, created.VisitDate, updated.VisitDate)
	assert.Equal(t, created.VisitTime, updated.VisitTime)
	assert.Equal(t, created.SpecialRequests, updated.SpecialRequests)
	assert.Equal(t, created.BookingReference, updated.BookingReference)
}

func TestUpdateUnknownReference(t *testing.T) {
	svc := newTestService(t)

	newSize := 2
	_, err := svc.UpdateReservation(context.Background(), testRestaurant, "ZZZ9999", models.ReservationUpdate{
		PartySize: &newSize,
	})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestCancelIsIdempotent(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateReservation(context.Background(), sampleInput())
	require.NoError(t, err)

	first, err := svc.CancelReservation(context.Background(), testRestaurant, created.BookingReference, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, first.Status)
	assert.Equal(t, 1, first.CancellationReasonID)
	assert.Equal(t, "Customer Request", first.CancellationReason)

	// Second cancel returns the current state without error.
	second, err := svc.CancelReservation(context.Background(), testRestaurant, created.BookingReference, 2)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, second.Status)
	assert.Equal(t, 1, second.CancellationReasonID) // original reason kept
}

func TestCancelInvalidReason(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.CreateReservation(context.Background(), sampleInput())
	require.NoError(t, err)

	_, err = svc.CancelReservation(context.Background(), testRestaurant, created.BookingReference, 6)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = svc.CancelReservation(context.Background(), testRestaurant, created.BookingReference, 0)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCancelUnknownReference(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CancelReservation(context.Background(), testRestaurant, "ZZZ9999", 1)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}
