package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "tabletalk/database/repository/booking"
	"tabletalk/models"

	"github.com/google/uuid"
)

const defaultChannelCode = "ONLINE"

// FindSlots returns the bookable slots for the given date whose capacity
// covers the requested party size. Availability is computed from the
// restaurant's fixed service grid, not stored.
func (s *DefaultBookingService) FindSlots(ctx context.Context, restaurant, visitDate string, partySize int, channelCode string) ([]models.AvailabilitySlot, error) {
	if err := validateDate(visitDate); err != nil {
		return nil, err
	}
	if partySize <= 0 {
		return nil, NewValidationError(fmt.Sprintf("Invalid party size: %d. Must be a positive number", partySize))
	}

	rest, err := s.lookupRestaurant(ctx, restaurant)
	if err != nil {
		return nil, err
	}

	var slots []models.AvailabilitySlot
	for _, t := range rest.SlotTimes {
		if partySize > rest.MaxPartySize {
			continue
		}
		slots = append(slots, models.AvailabilitySlot{
			Restaurant:   rest.Name,
			VisitDate:    visitDate,
			VisitTime:    t,
			MaxPartySize: rest.MaxPartySize,
			Available:    true,
		})
	}
	return slots, nil
}

// CreateReservation validates the input, assigns a booking reference and
// stores the reservation as confirmed.
func (s *DefaultBookingService) CreateReservation(ctx context.Context, input models.ReservationInput) (*models.Reservation, error) {
	if err := validateDate(input.VisitDate); err != nil {
		return nil, err
	}
	if err := validateTime(input.VisitTime); err != nil {
		return nil, err
	}
	if input.PartySize <= 0 {
		return nil, NewValidationError(fmt.Sprintf("Invalid party size: %d. Must be a positive number", input.PartySize))
	}

	rest, err := s.lookupRestaurant(ctx, input.Restaurant)
	if err != nil {
		return nil, err
	}
	if input.PartySize > rest.MaxPartySize {
		return nil, NewValidationError(fmt.Sprintf("Party size %d exceeds the maximum of %d", input.PartySize, rest.MaxPartySize))
	}

	channel := input.ChannelCode
	if channel == "" {
		channel = defaultChannelCode
	}

	now := time.Now()
	res := models.Reservation{
		BookingReference:     newBookingReference(),
		Restaurant:           rest.Name,
		VisitDate:            input.VisitDate,
		VisitTime:            input.VisitTime,
		PartySize:            input.PartySize,
		ChannelCode:          channel,
		SpecialRequests:      input.SpecialRequests,
		IsLeaveTimeConfirmed: input.IsLeaveTimeConfirmed,
		RoomNumber:           input.RoomNumber,
		Customer:             input.Customer,
		Status:               models.StatusConfirmed,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.Repo.InsertReservation(ctx, res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetReservation returns a reservation by (restaurant, reference).
func (s *DefaultBookingService) GetReservation(ctx context.Context, restaurant, reference string) (*models.Reservation, error) {
	res, err := s.Repo.GetReservation(ctx, restaurant, reference)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, NewNotFoundError(fmt.Sprintf("Booking %s not found for restaurant %s", reference, restaurant))
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateReservation applies a partial update; nil fields keep their current
// values.
func (s *DefaultBookingService) UpdateReservation(ctx context.Context, restaurant, reference string, update models.ReservationUpdate) (*models.Reservation, error) {
	if update.VisitDate != nil {
		if err := validateDate(*update.VisitDate); err != nil {
			return nil, err
		}
	}
	if update.VisitTime != nil {
		if err := validateTime(*update.VisitTime); err != nil {
			return nil, err
		}
	}
	if update.PartySize != nil && *update.PartySize <= 0 {
		return nil, NewValidationError(fmt.Sprintf("Invalid party size: %d. Must be a positive number", *update.PartySize))
	}

	res, err := s.GetReservation(ctx, restaurant, reference)
	if err != nil {
		return nil, err
	}

	if update.VisitDate != nil {
		res.VisitDate = *update.VisitDate
	}
	if update.VisitTime != nil {
		res.VisitTime = *update.VisitTime
	}
	if update.PartySize != nil {
		rest, err := s.lookupRestaurant(ctx, restaurant)
		if err != nil {
			return nil, err
		}
		if *update.PartySize > rest.MaxPartySize {
			return nil, NewValidationError(fmt.Sprintf("Party size %d exceeds the maximum of %d", *update.PartySize, rest.MaxPartySize))
		}
		res.PartySize = *update.PartySize
	}
	if update.SpecialRequests != nil {
		res.SpecialRequests = *update.SpecialRequests
	}
	if update.IsLeaveTimeConfirmed != nil {
		res.IsLeaveTimeConfirmed = *update.IsLeaveTimeConfirmed
	}
	res.UpdatedAt = time.Now()

	if err := s.Repo.ReplaceReservation(ctx, *res); err != nil {
		return nil, err
	}
	return res, nil
}

// CancelReservation flips a reservation to cancelled with the given reason.
// Cancelling an already-cancelled reservation is idempotent and returns the
// current state without error.
func (s *DefaultBookingService) CancelReservation(ctx context.Context, restaurant, reference string, reasonID int) (*models.Reservation, error) {
	reason, ok := models.CancellationReasons[reasonID]
	if !ok {
		return nil, NewValidationError("Cancellation reason ID must be between 1 and 5")
	}

	res, err := s.GetReservation(ctx, restaurant, reference)
	if err != nil {
		return nil, err
	}
	if res.Status == models.StatusCancelled {
		return res, nil
	}

	res.Status = models.StatusCancelled
	res.CancellationReasonID = reasonID
	res.CancellationReason = reason
	res.UpdatedAt = time.Now()

	if err := s.Repo.ReplaceReservation(ctx, *res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *DefaultBookingService) lookupRestaurant(ctx context.Context, name string) (*models.Restaurant, error) {
	rest, err := s.Repo.GetRestaurant(ctx, name)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, NewNotFoundError(fmt.Sprintf("Restaurant %s not found", name))
	}
	if err != nil {
		return nil, err
	}
	return rest, nil
}

func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return NewValidationError(fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD format", s))
	}
	return nil
}

func validateTime(s string) error {
	if _, err := time.Parse("15:04:05", s); err != nil {
		return NewValidationError(fmt.Sprintf("Invalid time format: %s. Use HH:MM:SS format", s))
	}
	return nil
}

// newBookingReference generates a short uppercase reference of the form
// used by the consumer booking API, e.g. "AB1CD2E".
func newBookingReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return raw[:7]
}
