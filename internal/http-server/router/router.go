package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"eventManager/internal/config"
	"eventManager/internal/http-server/handlers/attendee"
	"eventManager/internal/http-server/handlers/booking"
	"eventManager/internal/http-server/handlers/event"
	"eventManager/internal/http-server/handlers/media"
	"eventManager/internal/http-server/handlers/venue"
	"eventManager/internal/http-server/middleware/cache"
	"eventManager/internal/http-server/middleware/mwlogger"
	"eventManager/internal/http-server/middleware/ratelimit"
	"eventManager/internal/models"
	"eventManager/internal/service"
)

// New assembles the route table over the service. responseCache may be nil
// when no redis address is configured.
func New(log *slog.Logger, svc *service.Service, cfg *config.Config, responseCache *cache.Cache) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(mwlogger.New(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.URLFormat)

	if cfg.HTTPServer.RateLimit.RPS > 0 {
		limiter := ratelimit.New(ratelimit.Config{
			RPS:   cfg.HTTPServer.RateLimit.RPS,
			Burst: cfg.HTTPServer.RateLimit.Burst,
		})
		r.Use(limiter.Handler)
	}

	if responseCache != nil {
		r.Use(responseCache.Handler)
	}

	r.Route("/venues", func(r chi.Router) {
		r.Post("/", venue.Create(log, svc))
		r.Get("/", venue.List(log, svc))
		r.Get("/{id}", venue.Get(log, svc))
		r.Put("/{id}", venue.Update(log, svc))
		r.Delete("/{id}", venue.Delete(log, svc))
		r.Post("/{id}/photo", media.Upload(log, svc, models.OwnerVenue, models.MediaVenuePhoto, int64(cfg.Media.MaxImageBytes)))
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/", event.Create(log, svc))
		r.Get("/", event.List(log, svc))
		r.Get("/{id}", event.Get(log, svc))
		r.Put("/{id}", event.Update(log, svc))
		r.Delete("/{id}", event.Delete(log, svc))
		r.Post("/{id}/poster", media.Upload(log, svc, models.OwnerEvent, models.MediaPoster, int64(cfg.Media.MaxImageBytes)))
		r.Post("/{id}/video", media.Upload(log, svc, models.OwnerEvent, models.MediaPromoVideo, int64(cfg.Media.MaxVideoBytes)))
	})

	r.Route("/attendees", func(r chi.Router) {
		r.Post("/", attendee.Create(log, svc))
		r.Get("/", attendee.List(log, svc))
		r.Get("/{id}", attendee.Get(log, svc))
		r.Put("/{id}", attendee.Update(log, svc))
		r.Delete("/{id}", attendee.Delete(log, svc))
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", booking.Create(log, svc))
		r.Get("/", booking.List(log, svc))
		r.Get("/{id}", booking.Get(log, svc))
		r.Put("/{id}", booking.Update(log, svc))
		r.Delete("/{id}", booking.Delete(log, svc))
	})

	r.Get("/media/{id}", media.Download(log, svc))

	return r
}
