package models

import "time"

type Attendee struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	RegisteredAt time.Time `bson:"registered_at" json:"registered_at"`
}
