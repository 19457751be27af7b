package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventManager/internal/config"
	"eventManager/internal/models"
	"eventManager/internal/storage"
	"eventManager/internal/storage/memory"
)

// Concurrent bookings against one event must never oversell it, regardless
// of interleaving: every goroutine asks for the same seat count, so the
// number of admissions is exactly capacity/seats.
func TestConcurrentBookingsNeverOversell(t *testing.T) {
	t.Parallel()

	const (
		capacity  = 100
		seats     = 3
		attempts  = 50
		wantAdmit = capacity / seats // 33
	)

	svc := newTestService()
	ctx := context.Background()

	venue := mustVenue(t, svc, capacity)
	event := mustEvent(t, svc, venue.ID, capacity)
	attendee := mustAttendee(t, svc)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		rejected int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := svc.CreateBooking(ctx, BookingInput{
				EventID:    event.ID,
				AttendeeID: attendee.ID,
				TicketType: "standard",
				SeatCount:  seats,
			})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				admitted++
				return
			}
			var capErr *CapacityError
			require.ErrorAs(t, err, &capErr)
			rejected++
		}()
	}
	wg.Wait()

	assert.Equal(t, wantAdmit, admitted)
	assert.Equal(t, attempts-wantAdmit, rejected)

	bookings, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, wantAdmit)

	sum := 0
	for _, b := range bookings {
		sum += b.SeatCount
	}
	assert.LessOrEqual(t, sum, capacity)
	assert.Equal(t, wantAdmit*seats, sum)
}

// Bookings against different events must not serialize against each other;
// this is a smoke test that distinct event locks interleave freely.
func TestConcurrentBookingsDistinctEvents(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	ctx := context.Background()

	venue := mustVenue(t, svc, 100)
	attendee := mustAttendee(t, svc)

	events := make([]*models.Event, 4)
	for i := range events {
		events[i] = mustEvent(t, svc, venue.ID, 100)
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			_, err := svc.CreateBooking(ctx, BookingInput{
				EventID:    events[i%len(events)].ID,
				AttendeeID: attendee.ID,
				TicketType: "standard",
				SeatCount:  1,
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	bookings, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 40)
}

// gatedStore pauses booking creation between reference resolution and the
// ledger's admission step, opening a window for a concurrent write to commit.
type gatedStore struct {
	storage.Store
	reached chan struct{}
	gate    chan struct{}
	once    sync.Once
}

func (s *gatedStore) GetAttendee(ctx context.Context, id string) (*models.Attendee, error) {
	s.once.Do(func() {
		close(s.reached)
		<-s.gate
	})
	return s.Store.GetAttendee(ctx, id)
}

// A capacity shrink that commits after a booking resolved its references but
// before it reached the event lock must count: admission checks the stored
// capacity under the lock, not the snapshot taken at resolution time.
func TestResizeDuringBookingAdmission(t *testing.T) {
	t.Parallel()

	gs := &gatedStore{
		Store:   memory.New(),
		reached: make(chan struct{}),
		gate:    make(chan struct{}),
	}
	svc := New(gs, config.Media{MaxImageBytes: 1 << 20, MaxVideoBytes: 4 << 20})
	ctx := context.Background()

	venue := mustVenue(t, svc, 10)
	event := mustEvent(t, svc, venue.ID, 10)
	attendee := mustAttendee(t, svc)

	errCh := make(chan error, 1)
	go func() {
		_, err := svc.CreateBooking(ctx, BookingInput{
			EventID:    event.ID,
			AttendeeID: attendee.ID,
			TicketType: "standard",
			SeatCount:  10,
		})
		errCh <- err
	}()

	<-gs.reached

	newCapacity := 5
	_, err := svc.UpdateEvent(ctx, event.ID, EventUpdate{Capacity: &newCapacity})
	require.NoError(t, err)

	close(gs.gate)

	var capErr *CapacityError
	require.ErrorAs(t, <-errCh, &capErr)
	assert.Equal(t, 10, capErr.Requested)
	assert.Equal(t, 5, capErr.Available)

	bookings, err := svc.ListBookings(ctx)
	require.NoError(t, err)
	assert.Empty(t, bookings, "nothing may be admitted against the stale capacity")
}

func TestLedgerLockRegistryDrains(t *testing.T) {
	t.Parallel()

	ledger := newCapacityLedger(nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := ledger.lockEvent("event-1")
			time.Sleep(time.Millisecond)
			unlock()
		}()
	}
	wg.Wait()

	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	assert.Empty(t, ledger.locks, "idle locks must be reclaimed")
}
