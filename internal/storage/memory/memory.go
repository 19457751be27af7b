// Package memory provides an in-memory implementation of storage.Store. It
// backs the local environment and the test suites; documents are copied on
// the way in and out so callers never share state with the store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventManager/internal/models"
	"eventManager/internal/storage"
)

type Storage struct {
	mu sync.RWMutex

	venues    map[string]models.Venue
	events    map[string]models.Event
	attendees map[string]models.Attendee
	bookings  map[string]models.Booking
	media     map[string]models.MediaBlob

	// insertion sequence per id, to keep list order stable
	seq     map[string]uint64
	nextSeq uint64
}

func New() *Storage {
	return &Storage{
		venues:    make(map[string]models.Venue),
		events:    make(map[string]models.Event),
		attendees: make(map[string]models.Attendee),
		bookings:  make(map[string]models.Booking),
		media:     make(map[string]models.MediaBlob),
		seq:       make(map[string]uint64),
	}
}

func (s *Storage) insertID(id string) {
	s.nextSeq++
	s.seq[id] = s.nextSeq
}

func (s *Storage) sortByInsertion(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.seq[ids[i]] < s.seq[ids[j]] })
}

// ===== Venues =====

func (s *Storage) InsertVenue(_ context.Context, v *models.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v.ID = uuid.NewString()
	v.CreatedAt = time.Now().UTC()
	s.venues[v.ID] = *v
	s.insertID(v.ID)
	return nil
}

func (s *Storage) GetVenue(_ context.Context, id string) (*models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.venues[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &v, nil
}

func (s *Storage) ListVenues(_ context.Context) ([]models.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.venues))
	for id := range s.venues {
		ids = append(ids, id)
	}
	s.sortByInsertion(ids)

	out := make([]models.Venue, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.venues[id])
	}
	return out, nil
}

func (s *Storage) UpdateVenue(_ context.Context, v *models.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[v.ID]; !ok {
		return storage.ErrNotFound
	}
	s.venues[v.ID] = *v
	return nil
}

func (s *Storage) DeleteVenue(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.venues[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.venues, id)
	delete(s.seq, id)
	return nil
}

// ===== Events =====

func (s *Storage) InsertEvent(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	s.events[e.ID] = *e
	s.insertID(e.ID)
	return nil
}

func (s *Storage) GetEvent(_ context.Context, id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &e, nil
}

func (s *Storage) ListEvents(_ context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listEventsLocked(func(models.Event) bool { return true }), nil
}

func (s *Storage) ListEventsByVenue(_ context.Context, venueID string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listEventsLocked(func(e models.Event) bool { return e.VenueID == venueID }), nil
}

func (s *Storage) listEventsLocked(match func(models.Event) bool) []models.Event {
	ids := make([]string, 0, len(s.events))
	for id, e := range s.events {
		if match(e) {
			ids = append(ids, id)
		}
	}
	s.sortByInsertion(ids)

	out := make([]models.Event, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.events[id])
	}
	return out
}

func (s *Storage) UpdateEvent(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[e.ID]; !ok {
		return storage.ErrNotFound
	}
	s.events[e.ID] = *e
	return nil
}

func (s *Storage) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.events, id)
	delete(s.seq, id)
	return nil
}

// ===== Attendees =====

func (s *Storage) InsertAttendee(_ context.Context, a *models.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = uuid.NewString()
	a.RegisteredAt = time.Now().UTC()
	s.attendees[a.ID] = *a
	s.insertID(a.ID)
	return nil
}

func (s *Storage) GetAttendee(_ context.Context, id string) (*models.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.attendees[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &a, nil
}

func (s *Storage) ListAttendees(_ context.Context) ([]models.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.attendees))
	for id := range s.attendees {
		ids = append(ids, id)
	}
	s.sortByInsertion(ids)

	out := make([]models.Attendee, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.attendees[id])
	}
	return out, nil
}

func (s *Storage) UpdateAttendee(_ context.Context, a *models.Attendee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attendees[a.ID]; !ok {
		return storage.ErrNotFound
	}
	s.attendees[a.ID] = *a
	return nil
}

func (s *Storage) DeleteAttendee(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.attendees[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.attendees, id)
	delete(s.seq, id)
	return nil
}

// ===== Bookings =====

func (s *Storage) InsertBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	s.bookings[b.ID] = *b
	s.insertID(b.ID)
	return nil
}

func (s *Storage) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &b, nil
}

func (s *Storage) ListBookings(_ context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listBookingsLocked(func(models.Booking) bool { return true }), nil
}

func (s *Storage) ListBookingsByEvent(_ context.Context, eventID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listBookingsLocked(func(b models.Booking) bool { return b.EventID == eventID }), nil
}

func (s *Storage) ListBookingsByAttendee(_ context.Context, attendeeID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listBookingsLocked(func(b models.Booking) bool { return b.AttendeeID == attendeeID }), nil
}

func (s *Storage) listBookingsLocked(match func(models.Booking) bool) []models.Booking {
	ids := make([]string, 0, len(s.bookings))
	for id, b := range s.bookings {
		if match(b) {
			ids = append(ids, id)
		}
	}
	s.sortByInsertion(ids)

	out := make([]models.Booking, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.bookings[id])
	}
	return out
}

func (s *Storage) UpdateBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[b.ID]; !ok {
		return storage.ErrNotFound
	}
	s.bookings[b.ID] = *b
	return nil
}

func (s *Storage) DeleteBooking(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.bookings, id)
	delete(s.seq, id)
	return nil
}

// ===== Media =====

func (s *Storage) InsertMedia(_ context.Context, m *models.MediaBlob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.ID = uuid.NewString()
	m.UploadedAt = time.Now().UTC()

	stored := *m
	stored.Content = append([]byte(nil), m.Content...)
	s.media[stored.ID] = stored
	s.insertID(stored.ID)
	return nil
}

func (s *Storage) GetMedia(_ context.Context, id string) (*models.MediaBlob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.media[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := m
	out.Content = append([]byte(nil), m.Content...)
	return &out, nil
}
