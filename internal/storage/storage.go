package storage

import (
	"context"
	"errors"

	"eventManager/internal/models"
)

// ErrNotFound is returned by every Get/Update/Delete when no document with the
// given id exists in the collection.
var ErrNotFound = errors.New("document not found")

// Insert methods assign the generated id and creation timestamp on the passed
// document before persisting it. Update methods replace the stored document
// with the passed one in a single write. List methods return documents in
// insertion order.

type VenueStore interface {
	InsertVenue(ctx context.Context, v *models.Venue) error
	GetVenue(ctx context.Context, id string) (*models.Venue, error)
	ListVenues(ctx context.Context) ([]models.Venue, error)
	UpdateVenue(ctx context.Context, v *models.Venue) error
	DeleteVenue(ctx context.Context, id string) error
}

type EventStore interface {
	InsertEvent(ctx context.Context, e *models.Event) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListEventsByVenue(ctx context.Context, venueID string) ([]models.Event, error)
	UpdateEvent(ctx context.Context, e *models.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

type AttendeeStore interface {
	InsertAttendee(ctx context.Context, a *models.Attendee) error
	GetAttendee(ctx context.Context, id string) (*models.Attendee, error)
	ListAttendees(ctx context.Context) ([]models.Attendee, error)
	UpdateAttendee(ctx context.Context, a *models.Attendee) error
	DeleteAttendee(ctx context.Context, id string) error
}

type BookingStore interface {
	InsertBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	ListBookingsByEvent(ctx context.Context, eventID string) ([]models.Booking, error)
	ListBookingsByAttendee(ctx context.Context, attendeeID string) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error
	DeleteBooking(ctx context.Context, id string) error
}

type MediaStore interface {
	InsertMedia(ctx context.Context, m *models.MediaBlob) error
	GetMedia(ctx context.Context, id string) (*models.MediaBlob, error)
}

// Store is the full document-store surface the service layer works against.
// It has no cross-collection knowledge; referential consistency is enforced
// above it.
type Store interface {
	VenueStore
	EventStore
	AttendeeStore
	BookingStore
	MediaStore
}
