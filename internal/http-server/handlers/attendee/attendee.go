package attendee

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

type AttendeeResponse struct {
	response.Response
	Attendee *models.Attendee `json:"attendee"`
}

type AttendeesResponse struct {
	response.Response
	Attendees []models.Attendee `json:"attendees"`
}

type AttendeeManager interface {
	CreateAttendee(ctx context.Context, in service.AttendeeInput) (*models.Attendee, error)
	GetAttendee(ctx context.Context, id string) (*models.Attendee, error)
	ListAttendees(ctx context.Context) ([]models.Attendee, error)
	UpdateAttendee(ctx context.Context, id string, upd service.AttendeeUpdate) (*models.Attendee, error)
	DeleteAttendee(ctx context.Context, id string) error
}

func Create(log *slog.Logger, attendees AttendeeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.attendee.Create"

		log := log.With(slog.String("op", op))

		var in service.AttendeeInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		attendee, err := attendees.CreateAttendee(r.Context(), in)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("attendee registered", slog.String("id", attendee.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, AttendeeResponse{Response: response.OK(), Attendee: attendee})
	}
}

func Get(log *slog.Logger, attendees AttendeeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.attendee.Get"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		attendee, err := attendees.GetAttendee(r.Context(), id)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		render.JSON(w, r, AttendeeResponse{Response: response.OK(), Attendee: attendee})
	}
}

func List(log *slog.Logger, attendees AttendeeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.attendee.List"

		log := log.With(slog.String("op", op))

		all, err := attendees.ListAttendees(r.Context())
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("attendees listed", slog.Int("count", len(all)))

		render.JSON(w, r, AttendeesResponse{Response: response.OK(), Attendees: all})
	}
}

func Update(log *slog.Logger, attendees AttendeeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.attendee.Update"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		var upd service.AttendeeUpdate
		if err := render.DecodeJSON(r.Body, &upd); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		attendee, err := attendees.UpdateAttendee(r.Context(), id, upd)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("attendee updated", slog.String("id", id))

		render.JSON(w, r, AttendeeResponse{Response: response.OK(), Attendee: attendee})
	}
}

func Delete(log *slog.Logger, attendees AttendeeManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.attendee.Delete"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		if err := attendees.DeleteAttendee(r.Context(), id); err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("attendee deleted", slog.String("id", id))

		render.NoContent(w, r)
	}
}
