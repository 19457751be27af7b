package service

import (
	"context"
	"errors"
	"sync"

	"eventManager/internal/models"
	"eventManager/internal/storage"
)

// ledgerStore is the slice of the store the ledger needs: the bookings to sum
// and the event document whose capacity bounds them.
type ledgerStore interface {
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListBookingsByEvent(ctx context.Context, eventID string) ([]models.Booking, error)
}

// capacityLedger makes the capacity check and the booking write one
// indivisible step per event. The store offers no cross-document transaction,
// so admission decisions for the same event are serialized through a mutex
// keyed by event id; bookings against different events never block each
// other. Booked sums are always recomputed from live bookings, never cached,
// and the event capacity is re-read under the lock so a concurrent resize can
// never be admitted against.
type capacityLedger struct {
	store ledgerStore

	mu    sync.Mutex
	locks map[string]*eventLock
}

type eventLock struct {
	mu   sync.Mutex
	refs int
}

func newCapacityLedger(store ledgerStore) *capacityLedger {
	return &capacityLedger{
		store: store,
		locks: make(map[string]*eventLock),
	}
}

// lockEvent acquires the per-event mutex and returns its release func. Locks
// are refcounted so idle entries do not accumulate.
func (l *capacityLedger) lockEvent(eventID string) func() {
	l.mu.Lock()
	el, ok := l.locks[eventID]
	if !ok {
		el = &eventLock{}
		l.locks[eventID] = el
	}
	el.refs++
	l.mu.Unlock()

	el.mu.Lock()

	return func() {
		el.mu.Unlock()

		l.mu.Lock()
		el.refs--
		if el.refs == 0 {
			delete(l.locks, eventID)
		}
		l.mu.Unlock()
	}
}

// booked sums seat counts over the live bookings of an event, skipping the
// booking named by exclude (used when that booking is being resized).
func (l *capacityLedger) booked(ctx context.Context, eventID, exclude string) (int, error) {
	bookings, err := l.store.ListBookingsByEvent(ctx, eventID)
	if err != nil {
		return 0, unavailable("ledger.booked", err)
	}

	sum := 0
	for _, b := range bookings {
		if b.ID == exclude {
			continue
		}
		sum += b.SeatCount
	}
	return sum, nil
}

// admit re-reads the event while holding its lock and checks that seats fit
// next to the live bookings (minus exclude). Capacity snapshots taken before
// the lock was acquired are stale by definition: a resize may have committed
// in between.
func (l *capacityLedger) admit(ctx context.Context, eventID, exclude string, seats int) error {
	event, err := l.store.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &ReferenceError{Field: "event_id", ID: eventID}
		}
		return unavailable("ledger.admit", err)
	}

	sum, err := l.booked(ctx, eventID, exclude)
	if err != nil {
		return err
	}

	if available := event.Capacity - sum; seats > available {
		return &CapacityError{Requested: seats, Available: available}
	}
	return nil
}

// Reserve admits seats against the event capacity and, only if they fit, runs
// commit while still holding the event lock. A failed check commits nothing.
func (l *capacityLedger) Reserve(ctx context.Context, eventID string, seats int, commit func(context.Context) error) error {
	unlock := l.lockEvent(eventID)
	defer unlock()

	if err := l.admit(ctx, eventID, "", seats); err != nil {
		return err
	}
	return commit(ctx)
}

// Adjust re-admits an existing booking with a new seat count, equivalent to
// releasing its old seats and reserving the new amount in one ordered step.
func (l *capacityLedger) Adjust(ctx context.Context, eventID, bookingID string, seats int, commit func(context.Context) error) error {
	unlock := l.lockEvent(eventID)
	defer unlock()

	if err := l.admit(ctx, eventID, bookingID, seats); err != nil {
		return err
	}
	return commit(ctx)
}

// Release removes a booking's contribution by committing its deletion under
// the event lock; no other bookkeeping is kept.
func (l *capacityLedger) Release(ctx context.Context, eventID string, commit func(context.Context) error) error {
	unlock := l.lockEvent(eventID)
	defer unlock()

	return commit(ctx)
}

// Resize checks that an event's capacity can shrink to newCapacity without
// dropping below the already booked sum, then commits the event update under
// the event lock.
func (l *capacityLedger) Resize(ctx context.Context, eventID string, newCapacity int, commit func(context.Context) error) error {
	unlock := l.lockEvent(eventID)
	defer unlock()

	sum, err := l.booked(ctx, eventID, "")
	if err != nil {
		return err
	}

	if sum > newCapacity {
		return &ValidationError{
			Field:  "capacity",
			Reason: "cannot be reduced below the booked seat count",
		}
	}

	return commit(ctx)
}
