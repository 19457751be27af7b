package models

import "time"

// Kinds of multimedia content attached to events and venues.
const (
	MediaPoster     = "poster"
	MediaPromoVideo = "promo_video"
	MediaVenuePhoto = "venue_photo"
)

// Owner kinds a media blob can be attached to.
const (
	OwnerEvent = "event"
	OwnerVenue = "venue"
)

// MediaBlob holds uploaded binary content together with its metadata. The
// owner record references the blob by ID; replaced blobs stay in the store
// unreferenced.
type MediaBlob struct {
	ID          string    `bson:"_id" json:"id"`
	OwnerKind   string    `bson:"owner_kind" json:"owner_kind"`
	OwnerID     string    `bson:"owner_id" json:"owner_id"`
	Kind        string    `bson:"kind" json:"kind"`
	Filename    string    `bson:"filename" json:"filename"`
	ContentType string    `bson:"content_type" json:"content_type"`
	Size        int       `bson:"size" json:"size"`
	Content     []byte    `bson:"content" json:"-"`
	UploadedAt  time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

// MediaRef is the descriptor returned to clients after an upload; it omits
// the content bytes.
type MediaRef struct {
	ID          string    `json:"id"`
	OwnerKind   string    `json:"owner_kind"`
	OwnerID     string    `json:"owner_id"`
	Kind        string    `json:"kind"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Ref derives the client-facing descriptor for a stored blob.
func (b *MediaBlob) Ref() *MediaRef {
	return &MediaRef{
		ID:          b.ID,
		OwnerKind:   b.OwnerKind,
		OwnerID:     b.OwnerID,
		Kind:        b.Kind,
		Filename:    b.Filename,
		ContentType: b.ContentType,
		Size:        b.Size,
		UploadedAt:  b.UploadedAt,
	}
}
