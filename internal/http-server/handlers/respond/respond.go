// Package respond maps the service error taxonomy onto HTTP responses so
// every handler reports failures the same way.
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"eventManager/internal/lib/api/response"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/service"
)

// ConflictResponse carries the ids blocking a restricted delete.
type ConflictResponse struct {
	response.Response
	Dependent  string   `json:"dependent"`
	Dependents []string `json:"dependent_ids"`
}

// CapacityResponse carries the numbers behind a rejected reservation.
type CapacityResponse struct {
	response.Response
	Requested int `json:"requested"`
	Available int `json:"available"`
}

// Err renders a service failure with the status code its kind prescribes:
// 400 validation, 404 missing reference or document, 409 conflict or
// capacity, 503 storage trouble.
func Err(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		validationErr *service.ValidationError
		referenceErr  *service.ReferenceError
		notFoundErr   *service.NotFoundError
		conflictErr   *service.ConflictError
		capacityErr   *service.CapacityError
	)

	switch {
	case errors.As(err, &validationErr):
		log.Error("invalid request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.As(err, &referenceErr):
		log.Error("reference does not resolve", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.As(err, &notFoundErr):
		log.Error("document not found", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(err.Error()))
	case errors.As(err, &conflictErr):
		log.Error("delete blocked by dependents", sl.Err(err))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, ConflictResponse{
			Response:   response.Error(err.Error()),
			Dependent:  conflictErr.Dependent,
			Dependents: conflictErr.IDs,
		})
	case errors.As(err, &capacityErr):
		log.Error("capacity exceeded", sl.Err(err))
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, CapacityResponse{
			Response:  response.Error(err.Error()),
			Requested: capacityErr.Requested,
			Available: capacityErr.Available,
		})
	case errors.Is(err, service.ErrUnavailable):
		log.Error("storage unavailable", sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("storage unavailable"))
	default:
		log.Error("unexpected failure", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
	}
}
