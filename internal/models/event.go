package models

import "time"

type Event struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description,omitempty" json:"description,omitempty"`
	Date         time.Time `bson:"date" json:"date"`
	VenueID      string    `bson:"venue_id" json:"venue_id"`
	Capacity     int       `bson:"capacity" json:"capacity"`
	PosterID     string    `bson:"poster_id,omitempty" json:"poster_id,omitempty"`
	PromoVideoID string    `bson:"promo_video_id,omitempty" json:"promo_video_id,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
