package service

import "time"

// Create inputs carry the full entity shape minus the generated fields.
// Update inputs are partial: nil fields stay untouched.

type VenueInput struct {
	Name        string `json:"name" validate:"required,notblank"`
	Address     string `json:"address" validate:"required,notblank"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity" validate:"gt=0"`
}

type VenueUpdate struct {
	Name        *string `json:"name" validate:"omitempty,notblank"`
	Address     *string `json:"address" validate:"omitempty,notblank"`
	Description *string `json:"description"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
}

type EventInput struct {
	Name        string    `json:"name" validate:"required,notblank"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	VenueID     string    `json:"venue_id" validate:"required,notblank"`
	Capacity    int       `json:"capacity" validate:"gt=0"`
}

type EventUpdate struct {
	Name        *string    `json:"name" validate:"omitempty,notblank"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	VenueID     *string    `json:"venue_id" validate:"omitempty,notblank"`
	Capacity    *int       `json:"capacity" validate:"omitempty,gt=0"`
}

type AttendeeInput struct {
	Name  string `json:"name" validate:"required,notblank"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,phone"`
}

type AttendeeUpdate struct {
	Name  *string `json:"name" validate:"omitempty,notblank"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone" validate:"omitempty,phone"`
}

type BookingInput struct {
	EventID    string `json:"event_id" validate:"required,notblank"`
	AttendeeID string `json:"attendee_id" validate:"required,notblank"`
	TicketType string `json:"ticket_type" validate:"required,notblank"`
	SeatCount  int    `json:"seat_count" validate:"gt=0"`
}

type BookingUpdate struct {
	TicketType *string `json:"ticket_type" validate:"omitempty,notblank"`
	SeatCount  *int    `json:"seat_count" validate:"omitempty,gt=0"`
}
