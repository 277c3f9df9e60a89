// File: services/intelligence/tools.go
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tabletalk/models"
	"tabletalk/services/booking"

	"github.com/spf13/cast"
)

// ToolParam describes one declared tool argument.
type ToolParam struct {
	Name        string
	Type        string // "string", "integer" or "boolean"
	Description string
	Required    bool
}

// ToolSchema is the declared contract of one tool, exposed to the model.
type ToolSchema struct {
	Name        string
	Description string
	Params      []ToolParam
}

type toolHandler func(ctx context.Context, args map[string]any) map[string]any

// Registry is the closed catalog of booking tools. Every dispatch produces
// the uniform envelope: the result is either the backend payload or a
// {"error": <description>} map, never anything else.
type Registry struct {
	booking  booking.BookingService
	schemas  []ToolSchema
	handlers map[string]toolHandler
}

// NewToolRegistry builds the five-tool catalog over the booking service.
func NewToolRegistry(svc booking.BookingService) *Registry {
	r := &Registry{booking: svc, handlers: make(map[string]toolHandler)}

	r.register(ToolSchema{
		Name:        "check_availability",
		Description: "Returns available slots given restaurant, date, party size, and channel.",
		Params: []ToolParam{
			{Name: "restaurant_name", Type: "string", Description: "Name of the restaurant", Required: true},
			{Name: "visit_date", Type: "string", Description: "Date in YYYY-MM-DD format", Required: true},
			{Name: "party_size", Type: "integer", Description: "Number of people", Required: true},
			{Name: "channel_code", Type: "string", Description: "Booking channel, defaults to ONLINE"},
		},
	}, r.checkAvailability)

	r.register(ToolSchema{
		Name:        "book_reservation",
		Description: "Creates a new restaurant booking with customer information and preferences.",
		Params: []ToolParam{
			{Name: "restaurant_name", Type: "string", Description: "Name of the restaurant", Required: true},
			{Name: "visit_date", Type: "string", Description: "Date in YYYY-MM-DD format", Required: true},
			{Name: "visit_time", Type: "string", Description: "Time in HH:MM:SS format", Required: true},
			{Name: "party_size", Type: "integer", Description: "Number of people", Required: true},
			{Name: "channel_code", Type: "string", Description: "Booking channel, defaults to ONLINE"},
			{Name: "special_requests", Type: "string", Description: "Special requests for the booking"},
			{Name: "is_leave_time_confirmed", Type: "boolean", Description: "Whether leave time is confirmed"},
			{Name: "room_number", Type: "string", Description: "Specific room or table number"},
			{Name: "customer_title", Type: "string", Description: "Customer title"},
			{Name: "customer_first_name", Type: "string", Description: "Customer first name"},
			{Name: "customer_surname", Type: "string", Description: "Customer surname"},
			{Name: "customer_mobile", Type: "string", Description: "Customer mobile number"},
			{Name: "customer_email", Type: "string", Description: "Customer email address"},
		},
	}, r.bookReservation)

	r.register(ToolSchema{
		Name:        "get_reservation",
		Description: "Retrieves complete booking information by booking reference.",
		Params: []ToolParam{
			{Name: "restaurant_name", Type: "string", Description: "Name of the restaurant", Required: true},
			{Name: "booking_reference", Type: "string", Description: "Unique booking reference", Required: true},
		},
	}, r.getReservation)

	r.register(ToolSchema{
		Name:        "update_reservation",
		Description: "Modifies an existing booking with new date, time, party size, or special requests.",
		Params: []ToolParam{
			{Name: "restaurant_name", Type: "string", Description: "Name of the restaurant", Required: true},
			{Name: "booking_reference", Type: "string", Description: "Unique booking reference", Required: true},
			{Name: "visit_date", Type: "string", Description: "New date in YYYY-MM-DD format"},
			{Name: "visit_time", Type: "string", Description: "New time in HH:MM:SS format"},
			{Name: "party_size", Type: "integer", Description: "New party size"},
			{Name: "special_requests", Type: "string", Description: "Updated special requests"},
			{Name: "is_leave_time_confirmed", Type: "boolean", Description: "Updated leave time confirmation"},
		},
	}, r.updateReservation)

	r.register(ToolSchema{
		Name:        "cancel_reservation",
		Description: "Cancels an existing booking with a specified reason.",
		Params: []ToolParam{
			{Name: "restaurant_name", Type: "string", Description: "Name of the restaurant", Required: true},
			{Name: "booking_reference", Type: "string", Description: "Unique booking reference", Required: true},
			{Name: "cancellation_reason_id", Type: "integer", Description: "Cancellation reason: 1=Customer Request, 2=Restaurant Closure, 3=Weather, 4=Emergency, 5=No Show", Required: true},
		},
	}, r.cancelReservation)

	return r
}

func (r *Registry) register(schema ToolSchema, h toolHandler) {
	r.schemas = append(r.schemas, schema)
	r.handlers[schema.Name] = h
}

// Catalog returns the declared tool schemas, in registration order.
func (r *Registry) Catalog() []ToolSchema {
	return r.schemas
}

// Dispatch runs the named tool and wraps the outcome in the uniform
// envelope. Unknown names are a validation error, not a lookup failure.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]any) models.ToolEnvelope {
	env := models.ToolEnvelope{Tool: name, Args: args}
	h, ok := r.handlers[name]
	if !ok {
		env.Result = errorResult(fmt.Sprintf("Unknown tool: %s", name))
		return env
	}
	env.Result = h(ctx, args)
	return env
}

func (r *Registry) checkAvailability(ctx context.Context, args map[string]any) map[string]any {
	if msg := requireParams(args, "restaurant_name", "visit_date", "party_size"); msg != "" {
		return errorResult(msg)
	}
	visitDate := cast.ToString(args["visit_date"])
	if !validDate(visitDate) {
		return errorResult(fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD format", visitDate))
	}
	partySize := cast.ToInt(args["party_size"])
	if partySize <= 0 {
		return errorResult(fmt.Sprintf("Invalid party size: %v. Must be a number", args["party_size"]))
	}
	channel := cast.ToString(args["channel_code"])
	if channel == "" {
		channel = "ONLINE"
	}

	slots, err := r.booking.FindSlots(ctx, cast.ToString(args["restaurant_name"]), visitDate, partySize, channel)
	if err != nil {
		return errorResult(serviceMessage(err))
	}
	return map[string]any{
		"restaurant":      cast.ToString(args["restaurant_name"]),
		"visit_date":      visitDate,
		"party_size":      partySize,
		"channel_code":    channel,
		"available_slots": toAnySlice(slots),
	}
}

func (r *Registry) bookReservation(ctx context.Context, args map[string]any) map[string]any {
	if msg := requireParams(args, "restaurant_name", "visit_date", "visit_time", "party_size"); msg != "" {
		return errorResult(msg)
	}
	visitDate := cast.ToString(args["visit_date"])
	if !validDate(visitDate) {
		return errorResult(fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD format", visitDate))
	}
	visitTime := cast.ToString(args["visit_time"])
	if !validTime(visitTime) {
		return errorResult(fmt.Sprintf("Invalid time format: %s. Use HH:MM:SS format", visitTime))
	}
	partySize := cast.ToInt(args["party_size"])
	if partySize <= 0 {
		return errorResult(fmt.Sprintf("Invalid party size: %v. Must be a number", args["party_size"]))
	}

	input := models.ReservationInput{
		Restaurant:           cast.ToString(args["restaurant_name"]),
		VisitDate:            visitDate,
		VisitTime:            visitTime,
		PartySize:            partySize,
		ChannelCode:          cast.ToString(args["channel_code"]),
		SpecialRequests:      cast.ToString(args["special_requests"]),
		IsLeaveTimeConfirmed: cast.ToBool(args["is_leave_time_confirmed"]),
		RoomNumber:           cast.ToString(args["room_number"]),
		Customer: models.CustomerDetails{
			Title:     cast.ToString(args["customer_title"]),
			FirstName: cast.ToString(args["customer_first_name"]),
			Surname:   cast.ToString(args["customer_surname"]),
			Mobile:    cast.ToString(args["customer_mobile"]),
			Email:     cast.ToString(args["customer_email"]),
		},
	}

	res, err := r.booking.CreateReservation(ctx, input)
	if err != nil {
		return errorResult(serviceMessage(err))
	}
	return toMap(res)
}

func (r *Registry) getReservation(ctx context.Context, args map[string]any) map[string]any {
	if msg := requireParams(args, "restaurant_name", "booking_reference"); msg != "" {
		return errorResult(msg)
	}
	res, err := r.booking.GetReservation(ctx, cast.ToString(args["restaurant_name"]), cast.ToString(args["booking_reference"]))
	if err != nil {
		return errorResult(serviceMessage(err))
	}
	return toMap(res)
}

func (r *Registry) updateReservation(ctx context.Context, args map[string]any) map[string]any {
	if msg := requireParams(args, "restaurant_name", "booking_reference"); msg != "" {
		return errorResult(msg)
	}

	var update models.ReservationUpdate
	if v, ok := args["visit_date"]; ok {
		d := cast.ToString(v)
		if !validDate(d) {
			return errorResult(fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD format", d))
		}
		update.VisitDate = &d
	}
	if v, ok := args["visit_time"]; ok {
		t := cast.ToString(v)
		if !validTime(t) {
			return errorResult(fmt.Sprintf("Invalid time format: %s. Use HH:MM:SS format", t))
		}
		update.VisitTime = &t
	}
	if v, ok := args["party_size"]; ok {
		p := cast.ToInt(v)
		if p <= 0 {
			return errorResult(fmt.Sprintf("Invalid party size: %v. Must be a number", v))
		}
		update.PartySize = &p
	}
	if v, ok := args["special_requests"]; ok {
		s := cast.ToString(v)
		update.SpecialRequests = &s
	}
	if v, ok := args["is_leave_time_confirmed"]; ok {
		b := cast.ToBool(v)
		update.IsLeaveTimeConfirmed = &b
	}

	res, err := r.booking.UpdateReservation(ctx, cast.ToString(args["restaurant_name"]), cast.ToString(args["booking_reference"]), update)
	if err != nil {
		return errorResult(serviceMessage(err))
	}
	return toMap(res)
}

func (r *Registry) cancelReservation(ctx context.Context, args map[string]any) map[string]any {
	if msg := requireParams(args, "restaurant_name", "booking_reference", "cancellation_reason_id"); msg != "" {
		return errorResult(msg)
	}
	reasonID := cast.ToInt(args["cancellation_reason_id"])
	if reasonID < 1 || reasonID > 5 {
		return errorResult("Cancellation reason ID must be between 1 and 5")
	}

	res, err := r.booking.CancelReservation(ctx, cast.ToString(args["restaurant_name"]), cast.ToString(args["booking_reference"]), reasonID)
	if err != nil {
		return errorResult(serviceMessage(err))
	}
	return toMap(res)
}

// requireParams returns a "Missing required parameters" message naming the
// full required list when any of them is absent or empty, mirroring the
// consumer API's error shape. No backend call is made in that case.
func requireParams(args map[string]any, names ...string) string {
	for _, n := range names {
		v, ok := args[n]
		if !ok || v == nil || cast.ToString(v) == "" {
			return "Missing required parameters: " + strings.Join(names, ", ")
		}
	}
	return ""
}

func errorResult(msg string) map[string]any {
	return map[string]any{"error": msg}
}

// serviceMessage flattens backend failures into envelope text. Validation
// and not-found failures keep their message; anything else (including
// timeouts) is surfaced generically.
func serviceMessage(err error) string {
	var se *booking.ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "The booking service took too long to respond"
	}
	return "Unexpected Error: " + err.Error()
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validTime(s string) bool {
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

// toMap round-trips a value through JSON so envelope payloads are plain
// maps, which is what the model's function-response channel expects.
func toMap(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return errorResult("Unexpected Error: " + err.Error())
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return errorResult("Unexpected Error: " + err.Error())
	}
	return m
}

func toAnySlice(v any) []any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out []any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}
