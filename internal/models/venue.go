package models

import "time"

type Venue struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Address     string    `bson:"address" json:"address"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Capacity    int       `bson:"capacity" json:"capacity"`
	PhotoID     string    `bson:"photo_id,omitempty" json:"photo_id,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}
