package models

import "time"

type Booking struct {
	ID         string    `bson:"_id" json:"id"`
	EventID    string    `bson:"event_id" json:"event_id"`
	AttendeeID string    `bson:"attendee_id" json:"attendee_id"`
	TicketType string    `bson:"ticket_type" json:"ticket_type"`
	SeatCount  int       `bson:"seat_count" json:"seat_count"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
