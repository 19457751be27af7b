package service

import (
	"context"
	"errors"

	"eventManager/internal/models"
	"eventManager/internal/storage"
)

// integrityEngine resolves and verifies foreign references before any write
// reaches the store. The store itself knows nothing about relations, so every
// rule lives here: creates resolve their references first, deletes are
// restricted (never cascaded) while dependents exist.
type integrityEngine struct {
	store storage.Store
}

func (g *integrityEngine) resolveVenue(ctx context.Context, field, id string) (*models.Venue, error) {
	v, err := g.store.GetVenue(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &ReferenceError{Field: field, ID: id}
		}
		return nil, unavailable("integrity.resolveVenue", err)
	}
	return v, nil
}

func (g *integrityEngine) resolveEvent(ctx context.Context, field, id string) (*models.Event, error) {
	e, err := g.store.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &ReferenceError{Field: field, ID: id}
		}
		return nil, unavailable("integrity.resolveEvent", err)
	}
	return e, nil
}

func (g *integrityEngine) resolveAttendee(ctx context.Context, field, id string) (*models.Attendee, error) {
	a, err := g.store.GetAttendee(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &ReferenceError{Field: field, ID: id}
		}
		return nil, unavailable("integrity.resolveAttendee", err)
	}
	return a, nil
}

// verifyVenueDelete restricts venue deletion while any event references it.
func (g *integrityEngine) verifyVenueDelete(ctx context.Context, id string) error {
	events, err := g.store.ListEventsByVenue(ctx, id)
	if err != nil {
		return unavailable("integrity.verifyVenueDelete", err)
	}
	if len(events) > 0 {
		ids := make([]string, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		return &ConflictError{Dependent: "event", IDs: ids}
	}
	return nil
}

// verifyEventDelete restricts event deletion while any booking references it.
func (g *integrityEngine) verifyEventDelete(ctx context.Context, id string) error {
	bookings, err := g.store.ListBookingsByEvent(ctx, id)
	if err != nil {
		return unavailable("integrity.verifyEventDelete", err)
	}
	if len(bookings) > 0 {
		return &ConflictError{Dependent: "booking", IDs: bookingIDs(bookings)}
	}
	return nil
}

// verifyAttendeeDelete restricts attendee deletion while any booking
// references it.
func (g *integrityEngine) verifyAttendeeDelete(ctx context.Context, id string) error {
	bookings, err := g.store.ListBookingsByAttendee(ctx, id)
	if err != nil {
		return unavailable("integrity.verifyAttendeeDelete", err)
	}
	if len(bookings) > 0 {
		return &ConflictError{Dependent: "booking", IDs: bookingIDs(bookings)}
	}
	return nil
}

func bookingIDs(bookings []models.Booking) []string {
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	return ids
}
