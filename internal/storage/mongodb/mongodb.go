// Package mongodb implements storage.Store on top of a MongoDB database with
// five collections: venues, events, attendees, bookings and media. The store
// enforces nothing beyond per-document writes; referential consistency and
// capacity accounting live in the service layer.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventManager/internal/config"
	"eventManager/internal/models"
	"eventManager/internal/storage"
)

type Storage struct {
	client  *mongo.Client
	timeout time.Duration

	venues    *mongo.Collection
	events    *mongo.Collection
	attendees *mongo.Collection
	bookings  *mongo.Collection
	media     *mongo.Collection
}

func InitDB(cfg *config.Mongo) (*Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.Database)

	return &Storage{
		client:    client,
		timeout:   cfg.Timeout,
		venues:    db.Collection("venues"),
		events:    db.Collection("events"),
		attendees: db.Collection("attendees"),
		bookings:  db.Collection("bookings"),
		media:     db.Collection("media"),
	}, nil
}

func (s *Storage) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Storage) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

func insertOne(ctx context.Context, col *mongo.Collection, doc any) error {
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", col.Name(), err)
	}
	return nil
}

func findOne(ctx context.Context, col *mongo.Collection, id string, out any) error {
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to read from %s: %w", col.Name(), err)
	}
	return nil
}

func replaceOne(ctx context.Context, col *mongo.Collection, id string, doc any) error {
	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func deleteOne(ctx context.Context, col *mongo.Collection, id string) error {
	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func findAll[T any](ctx context.Context, col *mongo.Collection, filter bson.M, orderField string) ([]T, error) {
	cur, err := col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: orderField, Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", col.Name(), err)
	}
	defer cur.Close(ctx)

	var out []T
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", col.Name(), err)
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", col.Name(), err)
	}
	return out, nil
}

// ===== Venues =====

func (s *Storage) InsertVenue(ctx context.Context, v *models.Venue) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	v.ID = uuid.NewString()
	v.CreatedAt = time.Now().UTC()
	return insertOne(ctx, s.venues, v)
}

func (s *Storage) GetVenue(ctx context.Context, id string) (*models.Venue, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var v models.Venue
	if err := findOne(ctx, s.venues, id, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Storage) ListVenues(ctx context.Context) ([]models.Venue, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return findAll[models.Venue](ctx, s.venues, bson.M{}, "created_at")
}

func (s *Storage) UpdateVenue(ctx context.Context, v *models.Venue) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return replaceOne(ctx, s.venues, v.ID, v)
}

func (s *Storage) DeleteVenue(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return deleteOne(ctx, s.venues, id)
}

// ===== Events =====

func (s *Storage) InsertEvent(ctx context.Context, e *models.Event) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	return insertOne(ctx, s.events, e)
}

func (s *Storage) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var e models.Event
	if err := findOne(ctx, s.events, id, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Storage) ListEvents(ctx context.Context) ([]models.Event, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return findAll[models.Event](ctx, s.events, bson.M{}, "created_at")
}

func (s *Storage) ListEventsByVenue(ctx context.Context, venueID string) ([]models.Event, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return findAll[models.Event](ctx, s.events, bson.M{"venue_id": venueID}, "created_at")
}

func (s *Storage) UpdateEvent(ctx context.Context, e *models.Event) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return replaceOne(ctx, s.events, e.ID, e)
}

func (s *Storage) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return deleteOne(ctx, s.events, id)
}

// ===== Attendees =====

func (s *Storage) InsertAttendee(ctx context.Context, a *models.Attendee) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	a.ID = uuid.NewString()
	a.RegisteredAt = time.Now().UTC()
	return insertOne(ctx, s.attendees, a)
}

func (s *Storage) GetAttendee(ctx context.Context, id string) (*models.Attendee, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var a models.Attendee
	if err := findOne(ctx, s.attendees, id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Storage) ListAttendees(ctx context.Context) ([]models.Attendee, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return findAll[models.Attendee](ctx, s.attendees, bson.M{}, "registered_at")
}

func (s *Storage) UpdateAttendee(ctx context.Context, a *models.Attendee) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return replaceOne(ctx, s.attendees, a.ID, a)
}

func (s *Storage) DeleteAttendee(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return deleteOne(ctx, s.attendees, id)
}

// ===== Bookings =====

func (s *Storage) InsertBooking(ctx context.Context, b *models.Booking) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	return insertOne(ctx, s.bookings, b)
}

func (s *Storage) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var b models.Booking
	if err := findOne(ctx, s.bookings, id, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Storage) ListBookings(ctx context.Context) ([]models.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return findAll[models.Booking](ctx, s.bookings, bson.M{}, "created_at")
}

func (s *Storage) ListBookingsByEvent(ctx context.Context, eventID string) ([]models.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return findAll[models.Booking](ctx, s.bookings, bson.M{"event_id": eventID}, "created_at")
}

func (s *Storage) ListBookingsByAttendee(ctx context.Context, attendeeID string) ([]models.Booking, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return findAll[models.Booking](ctx, s.bookings, bson.M{"attendee_id": attendeeID}, "created_at")
}

func (s *Storage) UpdateBooking(ctx context.Context, b *models.Booking) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return replaceOne(ctx, s.bookings, b.ID, b)
}

func (s *Storage) DeleteBooking(ctx context.Context, id string) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()
	return deleteOne(ctx, s.bookings, id)
}

// ===== Media =====

func (s *Storage) InsertMedia(ctx context.Context, m *models.MediaBlob) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	m.ID = uuid.NewString()
	m.UploadedAt = time.Now().UTC()
	return insertOne(ctx, s.media, m)
}

func (s *Storage) GetMedia(ctx context.Context, id string) (*models.MediaBlob, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var m models.MediaBlob
	if err := findOne(ctx, s.media, id, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
