package booking

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"eventManager/internal/http-server/handlers/respond"
	"eventManager/internal/lib/api/response"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/models"
	"eventManager/internal/service"
)

type BookingResponse struct {
	response.Response
	Booking *models.Booking `json:"booking"`
}

type BookingsResponse struct {
	response.Response
	Bookings []models.Booking `json:"bookings"`
}

type BookingManager interface {
	CreateBooking(ctx context.Context, in service.BookingInput) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	UpdateBooking(ctx context.Context, id string, upd service.BookingUpdate) (*models.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
}

func Create(log *slog.Logger, bookings BookingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.Create"

		log := log.With(slog.String("op", op))

		var in service.BookingInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		booking, err := bookings.CreateBooking(r.Context(), in)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("booking created",
			slog.String("id", booking.ID),
			slog.String("event_id", booking.EventID),
			slog.Int("seat_count", booking.SeatCount),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, BookingResponse{Response: response.OK(), Booking: booking})
	}
}

func Get(log *slog.Logger, bookings BookingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.Get"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		booking, err := bookings.GetBooking(r.Context(), id)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		render.JSON(w, r, BookingResponse{Response: response.OK(), Booking: booking})
	}
}

func List(log *slog.Logger, bookings BookingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.List"

		log := log.With(slog.String("op", op))

		all, err := bookings.ListBookings(r.Context())
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("bookings listed", slog.Int("count", len(all)))

		render.JSON(w, r, BookingsResponse{Response: response.OK(), Bookings: all})
	}
}

func Update(log *slog.Logger, bookings BookingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.Update"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		var upd service.BookingUpdate
		if err := render.DecodeJSON(r.Body, &upd); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		booking, err := bookings.UpdateBooking(r.Context(), id, upd)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("booking updated", slog.String("id", id))

		render.JSON(w, r, BookingResponse{Response: response.OK(), Booking: booking})
	}
}

func Delete(log *slog.Logger, bookings BookingManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.Delete"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		if err := bookings.DeleteBooking(r.Context(), id); err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("booking cancelled", slog.String("id", id))

		render.NoContent(w, r)
	}
}
