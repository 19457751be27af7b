package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventManager/internal/config"
	"eventManager/internal/models"
	"eventManager/internal/storage/memory"
)

func newTestService() *Service {
	return New(memory.New(), config.Media{
		MaxImageBytes: 1 << 20,
		MaxVideoBytes: 4 << 20,
	})
}

func mustVenue(t *testing.T, svc *Service, capacity int) *models.Venue {
	t.Helper()

	venue, err := svc.CreateVenue(context.Background(), VenueInput{
		Name:     "Main Hall",
		Address:  "1 Concert Way",
		Capacity: capacity,
	})
	require.NoError(t, err)
	return venue
}

func mustEvent(t *testing.T, svc *Service, venueID string, capacity int) *models.Event {
	t.Helper()

	event, err := svc.CreateEvent(context.Background(), EventInput{
		Name:     "Opening Night",
		Date:     time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC),
		VenueID:  venueID,
		Capacity: capacity,
	})
	require.NoError(t, err)
	return event
}

func mustAttendee(t *testing.T, svc *Service) *models.Attendee {
	t.Helper()

	attendee, err := svc.CreateAttendee(context.Background(), AttendeeInput{
		Name:  "Dana",
		Email: "dana@example.com",
	})
	require.NoError(t, err)
	return attendee
}

func TestBookingCapacityScenario(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	venue := mustVenue(t, svc, 10)
	event := mustEvent(t, svc, venue.ID, 10)
	attendee := mustAttendee(t, svc)

	b1, err := svc.CreateBooking(ctx, BookingInput{
		EventID:    event.ID,
		AttendeeID: attendee.ID,
		TicketType: "standard",
		SeatCount:  6,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, b1.ID)

	_, err = svc.CreateBooking(ctx, BookingInput{
		EventID:    event.ID,
		AttendeeID: attendee.ID,
		TicketType: "standard",
		SeatCount:  5,
	})
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 5, capErr.Requested)
	assert.Equal(t, 4, capErr.Available)

	// The rejected booking must not have been persisted.
	bookings, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 1)

	// Cancelling releases the seats for an identical retry.
	require.NoError(t, svc.DeleteBooking(ctx, b1.ID))

	b3, err := svc.CreateBooking(ctx, BookingInput{
		EventID:    event.ID,
		AttendeeID: attendee.ID,
		TicketType: "standard",
		SeatCount:  5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, b3.SeatCount)
}

func TestCreateEventDanglingVenue(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, EventInput{
		Name:     "Ghost Show",
		Date:     time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC),
		VenueID:  "X",
		Capacity: 5,
	})

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "venue_id", refErr.Field)
	assert.Equal(t, "X", refErr.ID)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCreateEventCapacityAboveVenue(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	venue := mustVenue(t, svc, 50)

	_, err := svc.CreateEvent(ctx, EventInput{
		Name:     "Oversized",
		Date:     time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC),
		VenueID:  venue.ID,
		Capacity: 51,
	})

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "capacity", valErr.Field)

	events, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCreateBookingReferenceOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	// Both references dangle: the event must be reported first.
	_, err := svc.CreateBooking(ctx, BookingInput{
		EventID:    "no-event",
		AttendeeID: "no-attendee",
		TicketType: "standard",
		SeatCount:  1,
	})

	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "event_id", refErr.Field)

	venue := mustVenue(t, svc, 10)
	event := mustEvent(t, svc, venue.ID, 10)

	_, err = svc.CreateBooking(ctx, BookingInput{
		EventID:    event.ID,
		AttendeeID: "no-attendee",
		TicketType: "standard",
		SeatCount:  1,
	})
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "attendee_id", refErr.Field)
}

func TestDeleteVenueRestricted(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	venue := mustVenue(t, svc, 100)
	e1 := mustEvent(t, svc, venue.ID, 10)
	e2 := mustEvent(t, svc, venue.ID, 20)

	err := svc.DeleteVenue(ctx, venue.ID)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "event", conflict.Dependent)
	assert.ElementsMatch(t, []string{e1.ID, e2.ID}, conflict.IDs)

	// The venue survives the rejected delete.
	got, err := svc.GetVenue(ctx, venue.ID)
	require.NoError(t, err)
	assert.Equal(t, venue.ID, got.ID)
}

func TestDeleteEventAndAttendeeRestricted(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	venue := mustVenue(t, svc, 10)
	event := mustEvent(t, svc, venue.ID, 10)
	attendee := mustAttendee(t, svc)

	bkg, err := svc.CreateBooking(ctx, BookingInput{
		EventID:    event.ID,
		AttendeeID: attendee.ID,
		TicketType: "standard",
		SeatCount:  2,
	})
	require.NoError(t, err)

	var conflict *ConflictError

	err = svc.DeleteEvent(ctx, event.ID)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "booking", conflict.Dependent)
	assert.Equal(t, []string{bkg.ID}, conflict.IDs)

	err = svc.DeleteAttendee(ctx, attendee.ID)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{bkg.ID}, conflict.IDs)

	// After the booking is cancelled both deletes go through.
	require.NoError(t, svc.DeleteBooking(ctx, bkg.ID))
	require.NoError(t, svc.DeleteEvent(ctx, event.ID))
	require.NoError(t, svc.DeleteAttendee(ctx, attendee.ID))
}

func TestDeleteMissing(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	var notFound *NotFoundError
	require.ErrorAs(t, svc.DeleteVenue(ctx, "nope"), &notFound)
	require.ErrorAs(t, svc.DeleteEvent(ctx, "nope"), &notFound)
	require.ErrorAs(t, svc.DeleteAttendee(ctx, "nope"), &notFound)
	require.ErrorAs(t, svc.DeleteBooking(ctx, "nope"), &notFound)
}

func TestUpdateEventCapacityChecks(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	venue := mustVenue(t, svc, 20)
	event := mustEvent(t, svc, venue.ID, 10)
	attendee := mustAttendee(t, svc)

	_, err := svc.CreateBooking(ctx, BookingInput{
		EventID:    event.ID,
		AttendeeID: attendee.ID,
		TicketType: "standard",
		SeatCount:  8,
	})
	require.NoError(t, err)

	var valErr *ValidationError

	// Cannot grow past the venue.
	tooBig := 21
	_, err = svc.UpdateEvent(ctx, event.ID, EventUpdate{Capacity: &tooBig})
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "capacity", valErr.Field)

	// Cannot shrink below the booked sum.
	tooSmall := 7
	_, err = svc.UpdateEvent(ctx, event.ID, EventUpdate{Capacity: &tooSmall})
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "capacity", valErr.Field)

	// A fit in between is accepted.
	fits := 9
	updated, err := svc.UpdateEvent(ctx, event.ID, EventUpdate{Capacity: &fits})
	require.NoError(t, err)
	assert.Equal(t, 9, updated.Capacity)
}

func TestUpdateEventVenueReference(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	venue := mustVenue(t, svc, 20)
	event := mustEvent(t, svc, venue.ID, 15)

	// Moving to a missing venue fails.
	missing := "missing-venue"
	_, err := svc.UpdateEvent(ctx, event.ID, EventUpdate{VenueID: &missing})
	var refErr *ReferenceError
	require.ErrorAs(t, err, &refErr)
	assert.Equal(t, "venue_id", refErr.Field)

	// Moving to a smaller venue fails the capacity invariant.
	small, err := svc.CreateVenue(ctx, VenueInput{Name: "Club", Address: "2 Side St", Capacity: 10})
	require.NoError(t, err)

	_, err = svc.UpdateEvent(ctx, event.ID, EventUpdate{VenueID: &small.ID})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "capacity", valErr.Field)

	// The event still points at the original venue.
	got, err := svc.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, venue.ID, got.VenueID)
}

func TestUpdateVenueCapacityBelowEvent(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	venue := mustVenue(t, svc, 20)
	mustEvent(t, svc, venue.ID, 15)

	below := 10
	_, err := svc.UpdateVenue(ctx, venue.ID, VenueUpdate{Capacity: &below})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "capacity", valErr.Field)

	ok := 15
	updated, err := svc.UpdateVenue(ctx, venue.ID, VenueUpdate{Capacity: &ok})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Capacity)
}

func TestUpdateBookingSeatCount(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	venue := mustVenue(t, svc, 10)
	event := mustEvent(t, svc, venue.ID, 10)
	attendee := mustAttendee(t, svc)

	b1, err := svc.CreateBooking(ctx, BookingInput{
		EventID:    event.ID,
		AttendeeID: attendee.ID,
		TicketType: "standard",
		SeatCount:  6,
	})
	require.NoError(t, err)

	_, err = svc.CreateBooking(ctx, BookingInput{
		EventID:    event.ID,
		AttendeeID: attendee.ID,
		TicketType: "standard",
		SeatCount:  3,
	})
	require.NoError(t, err)

	// Growing b1 to 8 would need 11 seats in total.
	grow := 8
	_, err = svc.UpdateBooking(ctx, b1.ID, BookingUpdate{SeatCount: &grow})
	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 8, capErr.Requested)
	assert.Equal(t, 7, capErr.Available)

	// Growing to exactly the free room succeeds.
	fit := 7
	updated, err := svc.UpdateBooking(ctx, b1.ID, BookingUpdate{SeatCount: &fit})
	require.NoError(t, err)
	assert.Equal(t, 7, updated.SeatCount)

	// Non-capacity fields never touch the ledger.
	vip := "vip"
	updated, err = svc.UpdateBooking(ctx, b1.ID, BookingUpdate{TicketType: &vip})
	require.NoError(t, err)
	assert.Equal(t, "vip", updated.TicketType)
	assert.Equal(t, 7, updated.SeatCount)
}

func TestListInsertionOrder(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	first := mustVenue(t, svc, 1)
	second := mustVenue(t, svc, 2)
	third := mustVenue(t, svc, 3)

	venues, err := svc.ListVenues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID},
		[]string{venues[0].ID, venues[1].ID, venues[2].ID})
}
