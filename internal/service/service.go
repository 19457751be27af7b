// Package service implements the integrity-and-capacity core of the event
// management backend. The document store underneath enforces no foreign keys
// and no multi-document transactions, so this layer guarantees referential
// consistency on every write, restricts deletes with live dependents and
// serializes booking admission per event.
package service

import (
	"context"
	"errors"
	"strings"

	"eventManager/internal/config"
	"eventManager/internal/models"
	"eventManager/internal/storage"
)

type Service struct {
	store     storage.Store
	integrity *integrityEngine
	ledger    *capacityLedger
	media     *mediaManager
}

func New(store storage.Store, mediaCfg config.Media) *Service {
	return &Service{
		store:     store,
		integrity: &integrityEngine{store: store},
		ledger:    newCapacityLedger(store),
		media: &mediaManager{
			store:    store,
			maxImage: mediaCfg.MaxImageBytes,
			maxVideo: mediaCfg.MaxVideoBytes,
		},
	}
}

func notFoundOr(kind, id string, op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return unavailable(op, err)
}

// ===== Venues =====

func (s *Service) CreateVenue(ctx context.Context, in VenueInput) (*models.Venue, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	venue := &models.Venue{
		Name:        strings.TrimSpace(in.Name),
		Address:     strings.TrimSpace(in.Address),
		Description: strings.TrimSpace(in.Description),
		Capacity:    in.Capacity,
	}
	if err := s.store.InsertVenue(ctx, venue); err != nil {
		return nil, unavailable("service.CreateVenue", err)
	}
	return venue, nil
}

func (s *Service) GetVenue(ctx context.Context, id string) (*models.Venue, error) {
	venue, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return nil, notFoundOr("venue", id, "service.GetVenue", err)
	}
	return venue, nil
}

func (s *Service) ListVenues(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.store.ListVenues(ctx)
	if err != nil {
		return nil, unavailable("service.ListVenues", err)
	}
	return venues, nil
}

func (s *Service) UpdateVenue(ctx context.Context, id string, upd VenueUpdate) (*models.Venue, error) {
	if err := checkInput(upd); err != nil {
		return nil, err
	}

	venue, err := s.store.GetVenue(ctx, id)
	if err != nil {
		return nil, notFoundOr("venue", id, "service.UpdateVenue", err)
	}

	if upd.Name != nil {
		venue.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Address != nil {
		venue.Address = strings.TrimSpace(*upd.Address)
	}
	if upd.Description != nil {
		venue.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Capacity != nil && *upd.Capacity != venue.Capacity {
		// Shrinking a venue must not strand events with a larger capacity.
		events, err := s.store.ListEventsByVenue(ctx, id)
		if err != nil {
			return nil, unavailable("service.UpdateVenue", err)
		}
		for _, e := range events {
			if e.Capacity > *upd.Capacity {
				return nil, &ValidationError{
					Field:  "capacity",
					Reason: "cannot be reduced below the capacity of events held at this venue",
				}
			}
		}
		venue.Capacity = *upd.Capacity
	}

	if err := s.store.UpdateVenue(ctx, venue); err != nil {
		return nil, notFoundOr("venue", id, "service.UpdateVenue", err)
	}
	return venue, nil
}

func (s *Service) DeleteVenue(ctx context.Context, id string) error {
	if _, err := s.store.GetVenue(ctx, id); err != nil {
		return notFoundOr("venue", id, "service.DeleteVenue", err)
	}
	if err := s.integrity.verifyVenueDelete(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteVenue(ctx, id); err != nil {
		return notFoundOr("venue", id, "service.DeleteVenue", err)
	}
	return nil
}

// ===== Events =====

func (s *Service) CreateEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	venue, err := s.integrity.resolveVenue(ctx, "venue_id", in.VenueID)
	if err != nil {
		return nil, err
	}
	if in.Capacity > venue.Capacity {
		return nil, &ValidationError{Field: "capacity", Reason: "exceeds the venue capacity"}
	}

	event := &models.Event{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		VenueID:     in.VenueID,
		Capacity:    in.Capacity,
	}
	if err := s.store.InsertEvent(ctx, event); err != nil {
		return nil, unavailable("service.CreateEvent", err)
	}
	return event, nil
}

func (s *Service) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, notFoundOr("event", id, "service.GetEvent", err)
	}
	return event, nil
}

func (s *Service) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, unavailable("service.ListEvents", err)
	}
	return events, nil
}

func (s *Service) UpdateEvent(ctx context.Context, id string, upd EventUpdate) (*models.Event, error) {
	if err := checkInput(upd); err != nil {
		return nil, err
	}

	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, notFoundOr("event", id, "service.UpdateEvent", err)
	}

	if upd.Name != nil {
		event.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Description != nil {
		event.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Date != nil {
		event.Date = *upd.Date
	}
	if upd.VenueID != nil {
		event.VenueID = *upd.VenueID
	}

	newCapacity := event.Capacity
	if upd.Capacity != nil {
		newCapacity = *upd.Capacity
	}

	// The capacity invariant is re-verified whenever the venue reference or
	// the capacity is touched.
	if upd.VenueID != nil || upd.Capacity != nil {
		venue, err := s.integrity.resolveVenue(ctx, "venue_id", event.VenueID)
		if err != nil {
			return nil, err
		}
		if newCapacity > venue.Capacity {
			return nil, &ValidationError{Field: "capacity", Reason: "exceeds the venue capacity"}
		}
	}

	if upd.Capacity != nil && *upd.Capacity != event.Capacity {
		event.Capacity = *upd.Capacity
		err = s.ledger.Resize(ctx, event.ID, event.Capacity, func(ctx context.Context) error {
			return s.store.UpdateEvent(ctx, event)
		})
	} else {
		err = s.store.UpdateEvent(ctx, event)
	}
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return nil, err
		}
		return nil, notFoundOr("event", id, "service.UpdateEvent", err)
	}
	return event, nil
}

func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.store.GetEvent(ctx, id); err != nil {
		return notFoundOr("event", id, "service.DeleteEvent", err)
	}
	if err := s.integrity.verifyEventDelete(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return notFoundOr("event", id, "service.DeleteEvent", err)
	}
	return nil
}

// ===== Attendees =====

func (s *Service) CreateAttendee(ctx context.Context, in AttendeeInput) (*models.Attendee, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	attendee := &models.Attendee{
		Name:  strings.TrimSpace(in.Name),
		Email: strings.TrimSpace(in.Email),
		Phone: strings.TrimSpace(in.Phone),
	}
	if err := s.store.InsertAttendee(ctx, attendee); err != nil {
		return nil, unavailable("service.CreateAttendee", err)
	}
	return attendee, nil
}

func (s *Service) GetAttendee(ctx context.Context, id string) (*models.Attendee, error) {
	attendee, err := s.store.GetAttendee(ctx, id)
	if err != nil {
		return nil, notFoundOr("attendee", id, "service.GetAttendee", err)
	}
	return attendee, nil
}

func (s *Service) ListAttendees(ctx context.Context) ([]models.Attendee, error) {
	attendees, err := s.store.ListAttendees(ctx)
	if err != nil {
		return nil, unavailable("service.ListAttendees", err)
	}
	return attendees, nil
}

func (s *Service) UpdateAttendee(ctx context.Context, id string, upd AttendeeUpdate) (*models.Attendee, error) {
	if err := checkInput(upd); err != nil {
		return nil, err
	}

	attendee, err := s.store.GetAttendee(ctx, id)
	if err != nil {
		return nil, notFoundOr("attendee", id, "service.UpdateAttendee", err)
	}

	if upd.Name != nil {
		attendee.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		attendee.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.Phone != nil {
		attendee.Phone = strings.TrimSpace(*upd.Phone)
	}

	if err := s.store.UpdateAttendee(ctx, attendee); err != nil {
		return nil, notFoundOr("attendee", id, "service.UpdateAttendee", err)
	}
	return attendee, nil
}

func (s *Service) DeleteAttendee(ctx context.Context, id string) error {
	if _, err := s.store.GetAttendee(ctx, id); err != nil {
		return notFoundOr("attendee", id, "service.DeleteAttendee", err)
	}
	if err := s.integrity.verifyAttendeeDelete(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteAttendee(ctx, id); err != nil {
		return notFoundOr("attendee", id, "service.DeleteAttendee", err)
	}
	return nil
}

// ===== Bookings =====

func (s *Service) CreateBooking(ctx context.Context, in BookingInput) (*models.Booking, error) {
	if err := checkInput(in); err != nil {
		return nil, err
	}

	// References resolve in a fixed order, event before attendee, so the
	// reported error is deterministic when both dangle.
	if _, err := s.integrity.resolveEvent(ctx, "event_id", in.EventID); err != nil {
		return nil, err
	}
	if _, err := s.integrity.resolveAttendee(ctx, "attendee_id", in.AttendeeID); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		EventID:    in.EventID,
		AttendeeID: in.AttendeeID,
		TicketType: strings.TrimSpace(in.TicketType),
		SeatCount:  in.SeatCount,
	}

	err := s.ledger.Reserve(ctx, in.EventID, in.SeatCount, func(ctx context.Context) error {
		if err := s.store.InsertBooking(ctx, booking); err != nil {
			return unavailable("service.CreateBooking", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, notFoundOr("booking", id, "service.GetBooking", err)
	}
	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, unavailable("service.ListBookings", err)
	}
	return bookings, nil
}

// UpdateBooking changes non-capacity fields directly. A seat count change is
// treated as releasing the old seats and reserving the new amount under the
// same per-event ordering as booking creation.
func (s *Service) UpdateBooking(ctx context.Context, id string, upd BookingUpdate) (*models.Booking, error) {
	if err := checkInput(upd); err != nil {
		return nil, err
	}

	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return nil, notFoundOr("booking", id, "service.UpdateBooking", err)
	}

	if upd.TicketType != nil {
		booking.TicketType = strings.TrimSpace(*upd.TicketType)
	}

	if upd.SeatCount != nil && *upd.SeatCount != booking.SeatCount {
		booking.SeatCount = *upd.SeatCount
		err = s.ledger.Adjust(ctx, booking.EventID, booking.ID, booking.SeatCount, func(ctx context.Context) error {
			return s.store.UpdateBooking(ctx, booking)
		})
		if err != nil {
			var (
				capErr *CapacityError
				refErr *ReferenceError
			)
			if errors.As(err, &capErr) || errors.As(err, &refErr) {
				return nil, err
			}
			return nil, notFoundOr("booking", id, "service.UpdateBooking", err)
		}
		return booking, nil
	}

	if err := s.store.UpdateBooking(ctx, booking); err != nil {
		return nil, notFoundOr("booking", id, "service.UpdateBooking", err)
	}
	return booking, nil
}

// DeleteBooking cancels a booking and releases its seats.
func (s *Service) DeleteBooking(ctx context.Context, id string) error {
	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return notFoundOr("booking", id, "service.DeleteBooking", err)
	}

	return s.ledger.Release(ctx, booking.EventID, func(ctx context.Context) error {
		if err := s.store.DeleteBooking(ctx, id); err != nil {
			return notFoundOr("booking", id, "service.DeleteBooking", err)
		}
		return nil
	})
}

// ===== Media =====

func (s *Service) AttachMedia(ctx context.Context, ownerKind, ownerID, kind, filename, contentType string, content []byte) (*models.MediaRef, error) {
	return s.media.attach(ctx, ownerKind, ownerID, kind, filename, contentType, content)
}

func (s *Service) GetMedia(ctx context.Context, id string) (*models.MediaBlob, error) {
	return s.media.get(ctx, id)
}
