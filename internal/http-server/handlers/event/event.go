package event

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

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event"`
}

type EventsResponse struct {
	response.Response
	Events []models.Event `json:"events"`
}

type EventManager interface {
	CreateEvent(ctx context.Context, in service.EventInput) (*models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	UpdateEvent(ctx context.Context, id string, upd service.EventUpdate) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

func Create(log *slog.Logger, events EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.Create"

		log := log.With(slog.String("op", op))

		var in service.EventInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		event, err := events.CreateEvent(r.Context(), in)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("event created",
			slog.String("id", event.ID),
			slog.String("venue_id", event.VenueID),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, EventResponse{Response: response.OK(), Event: event})
	}
}

func Get(log *slog.Logger, events EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.Get"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		event, err := events.GetEvent(r.Context(), id)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		render.JSON(w, r, EventResponse{Response: response.OK(), Event: event})
	}
}

func List(log *slog.Logger, events EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.List"

		log := log.With(slog.String("op", op))

		all, err := events.ListEvents(r.Context())
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("events listed", slog.Int("count", len(all)))

		render.JSON(w, r, EventsResponse{Response: response.OK(), Events: all})
	}
}

func Update(log *slog.Logger, events EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.Update"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		var upd service.EventUpdate
		if err := render.DecodeJSON(r.Body, &upd); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		event, err := events.UpdateEvent(r.Context(), id, upd)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("event updated", slog.String("id", id))

		render.JSON(w, r, EventResponse{Response: response.OK(), Event: event})
	}
}

func Delete(log *slog.Logger, events EventManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.Delete"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		if err := events.DeleteEvent(r.Context(), id); err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("event deleted", slog.String("id", id))

		render.NoContent(w, r)
	}
}
