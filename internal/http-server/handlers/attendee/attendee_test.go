package attendee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventManager/internal/config"
	"eventManager/internal/http-server/handlers/attendee"
	"eventManager/internal/lib/logger/handlers/slogdiscard"
	"eventManager/internal/service"
	"eventManager/internal/storage/memory"
)

func newServer(t *testing.T) (*service.Service, http.Handler) {
	t.Helper()

	svc := service.New(memory.New(), config.Media{MaxImageBytes: 1 << 20, MaxVideoBytes: 4 << 20})
	log := slogdiscard.NewDiscardLogger()

	r := chi.NewRouter()
	r.Post("/attendees", attendee.Create(log, svc))
	r.Get("/attendees", attendee.List(log, svc))
	r.Get("/attendees/{id}", attendee.Get(log, svc))
	r.Put("/attendees/{id}", attendee.Update(log, svc))
	r.Delete("/attendees/{id}", attendee.Delete(log, svc))

	return svc, r
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAttendeeLifecycle(t *testing.T) {
	t.Parallel()

	_, h := newServer(t)

	rec := doJSON(t, h, http.MethodPost, "/attendees",
		`{"name":"Dana","email":"dana@example.com","phone":"+1 (555) 123-4567"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created attendee.AttendeeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotNil(t, created.Attendee)
	assert.NotEmpty(t, created.Attendee.ID)

	rec = doJSON(t, h, http.MethodPut, "/attendees/"+created.Attendee.ID,
		`{"email":"dana.new@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated attendee.AttendeeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "dana.new@example.com", updated.Attendee.Email)
	assert.Equal(t, "Dana", updated.Attendee.Name)

	rec = doJSON(t, h, http.MethodDelete, "/attendees/"+created.Attendee.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/attendees/"+created.Attendee.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAttendeeValidation(t *testing.T) {
	t.Parallel()

	_, h := newServer(t)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad email", `{"name":"Dana","email":"not-an-email"}`, "field email must be a valid email address"},
		{"bad phone", `{"name":"Dana","email":"dana@example.com","phone":"abc"}`, "field phone must be a valid phone number"},
		{"missing name", `{"email":"dana@example.com"}`, "field name is required"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := doJSON(t, h, http.MethodPost, "/attendees", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.want, resp.Error)
		})
	}
}

func TestDeleteAttendeeWithBookingsConflicts(t *testing.T) {
	t.Parallel()

	svc, h := newServer(t)
	ctx := context.Background()

	venue, err := svc.CreateVenue(ctx, service.VenueInput{Name: "Hall", Address: "Street 1", Capacity: 100})
	require.NoError(t, err)

	event, err := svc.CreateEvent(ctx, service.EventInput{
		Name:     "Show",
		Date:     time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC),
		VenueID:  venue.ID,
		Capacity: 80,
	})
	require.NoError(t, err)

	created, err := svc.CreateAttendee(ctx, service.AttendeeInput{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)

	booking, err := svc.CreateBooking(ctx, service.BookingInput{
		EventID:    event.ID,
		AttendeeID: created.ID,
		TicketType: "standard",
		SeatCount:  1,
	})
	require.NoError(t, err)

	rec := doJSON(t, h, http.MethodDelete, "/attendees/"+created.ID, "")
	require.Equal(t, http.StatusConflict, rec.Code)

	var conflict struct {
		Dependent  string   `json:"dependent"`
		Dependents []string `json:"dependent_ids"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conflict))
	assert.Equal(t, "booking", conflict.Dependent)
	assert.Equal(t, []string{booking.ID}, conflict.Dependents)
}
