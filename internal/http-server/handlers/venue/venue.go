package venue

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

type VenueResponse struct {
	response.Response
	Venue *models.Venue `json:"venue"`
}

type VenuesResponse struct {
	response.Response
	Venues []models.Venue `json:"venues"`
}

type VenueManager interface {
	CreateVenue(ctx context.Context, in service.VenueInput) (*models.Venue, error)
	GetVenue(ctx context.Context, id string) (*models.Venue, error)
	ListVenues(ctx context.Context) ([]models.Venue, error)
	UpdateVenue(ctx context.Context, id string, upd service.VenueUpdate) (*models.Venue, error)
	DeleteVenue(ctx context.Context, id string) error
}

func Create(log *slog.Logger, venues VenueManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.venue.Create"

		log := log.With(slog.String("op", op))

		var in service.VenueInput
		if err := render.DecodeJSON(r.Body, &in); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		venue, err := venues.CreateVenue(r.Context(), in)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("venue created", slog.String("id", venue.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, VenueResponse{Response: response.OK(), Venue: venue})
	}
}

func Get(log *slog.Logger, venues VenueManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.venue.Get"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		venue, err := venues.GetVenue(r.Context(), id)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		render.JSON(w, r, VenueResponse{Response: response.OK(), Venue: venue})
	}
}

func List(log *slog.Logger, venues VenueManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.venue.List"

		log := log.With(slog.String("op", op))

		all, err := venues.ListVenues(r.Context())
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("venues listed", slog.Int("count", len(all)))

		render.JSON(w, r, VenuesResponse{Response: response.OK(), Venues: all})
	}
}

func Update(log *slog.Logger, venues VenueManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.venue.Update"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		var upd service.VenueUpdate
		if err := render.DecodeJSON(r.Body, &upd); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		venue, err := venues.UpdateVenue(r.Context(), id, upd)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("venue updated", slog.String("id", id))

		render.JSON(w, r, VenueResponse{Response: response.OK(), Venue: venue})
	}
}

func Delete(log *slog.Logger, venues VenueManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.venue.Delete"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		if err := venues.DeleteVenue(r.Context(), id); err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("venue deleted", slog.String("id", id))

		render.NoContent(w, r)
	}
}
