package models

import "time"

// Reservation statuses.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// CancellationReasons maps the accepted cancellation reason IDs (1-5)
// to their descriptions.
var CancellationReasons = map[int]string{
	1: "Customer Request",
	2: "Restaurant Closure",
	3: "Weather",
	4: "Emergency",
	5: "No Show",
}

// Restaurant describes a bookable restaurant and its service windows.
// This deployment seeds a single restaurant, but the schema supports more.
type Restaurant struct {
	Name         string    `bson:"name" json:"name"`
	SlotTimes    []string  `bson:"slotTimes" json:"slot_times"` // HH:MM:SS, the fixed service grid
	MaxPartySize int       `bson:"maxPartySize" json:"max_party_size"`
	CreatedAt    time.Time `bson:"createdAt" json:"-"`
}

// AvailabilitySlot is a computed view of one bookable time on a given date.
type AvailabilitySlot struct {
	Restaurant   string `json:"restaurant"`
	VisitDate    string `json:"visit_date"` // YYYY-MM-DD
	VisitTime    string `json:"visit_time"` // HH:MM:SS
	MaxPartySize int    `json:"max_party_size"`
	Available    bool   `json:"available"`
}

// CustomerDetails carries the customer fields accepted at booking time.
// Field set follows the consumer booking API.
type CustomerDetails struct {
	Title                 string `bson:"title,omitempty" json:"title,omitempty"`
	FirstName             string `bson:"firstName,omitempty" json:"first_name,omitempty"`
	Surname               string `bson:"surname,omitempty" json:"surname,omitempty"`
	MobileCountryCode     string `bson:"mobileCountryCode,omitempty" json:"mobile_country_code,omitempty"`
	Mobile                string `bson:"mobile,omitempty" json:"mobile,omitempty"`
	PhoneCountryCode      string `bson:"phoneCountryCode,omitempty" json:"phone_country_code,omitempty"`
	Phone                 string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email                 string `bson:"email,omitempty" json:"email,omitempty"`
	ReceiveEmailMarketing bool   `bson:"receiveEmailMarketing,omitempty" json:"receive_email_marketing,omitempty"`
	ReceiveSmsMarketing   bool   `bson:"receiveSmsMarketing,omitempty" json:"receive_sms_marketing,omitempty"`
}

// Reservation is a booking record. The booking reference is assigned at
// creation, never changes, and is the sole key for get/update/cancel.
// Reservations are never deleted, only flipped to cancelled.
type Reservation struct {
	BookingReference     string          `bson:"bookingReference" json:"booking_reference"`
	Restaurant           string          `bson:"restaurant" json:"restaurant"`
	VisitDate            string          `bson:"visitDate" json:"visit_date"` // YYYY-MM-DD
	VisitTime            string          `bson:"visitTime" json:"visit_time"` // HH:MM:SS
	PartySize            int             `bson:"partySize" json:"party_size"`
	ChannelCode          string          `bson:"channelCode" json:"channel_code"`
	SpecialRequests      string          `bson:"specialRequests,omitempty" json:"special_requests,omitempty"`
	IsLeaveTimeConfirmed bool            `bson:"isLeaveTimeConfirmed" json:"is_leave_time_confirmed"`
	RoomNumber           string          `bson:"roomNumber,omitempty" json:"room_number,omitempty"`
	Customer             CustomerDetails `bson:"customer,omitempty" json:"customer,omitempty"`
	Status               string          `bson:"status" json:"status"`
	CancellationReasonID int             `bson:"cancellationReasonId,omitempty" json:"cancellation_reason_id,omitempty"`
	CancellationReason   string          `bson:"cancellationReason,omitempty" json:"cancellation_reason,omitempty"`
	CreatedAt            time.Time       `bson:"createdAt" json:"created_at"`
	UpdatedAt            time.Time       `bson:"updatedAt" json:"updated_at"`
}

// ReservationInput carries the fields accepted by reservation creation.
type ReservationInput struct {
	Restaurant           string
	VisitDate            string
	VisitTime            string
	PartySize            int
	ChannelCode          string
	SpecialRequests      string
	IsLeaveTimeConfirmed bool
	RoomNumber           string
	Customer             CustomerDetails
}

// ReservationUpdate is a partial update; nil fields are left unchanged.
type ReservationUpdate struct {
	VisitDate            *string
	VisitTime            *string
	PartySize            *int
	SpecialRequests      *string
	IsLeaveTimeConfirmed *bool
}
