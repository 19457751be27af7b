package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"eventManager/internal/http-server/handlers/respond"
	"eventManager/internal/lib/api/response"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/models"
)

// formOverhead is the slack added to the body limit for multipart framing.
const formOverhead = 1 << 20

type MediaResponse struct {
	response.Response
	Media *models.MediaRef `json:"media"`
}

type MediaManager interface {
	AttachMedia(ctx context.Context, ownerKind, ownerID, kind, filename, contentType string, content []byte) (*models.MediaRef, error)
	GetMedia(ctx context.Context, id string) (*models.MediaBlob, error)
}

// Upload accepts a multipart payload with the binary content in the "file"
// field and attaches it to the owner named in the path.
func Upload(log *slog.Logger, manager MediaManager, ownerKind, kind string, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.media.Upload"

		log := log.With(
			slog.String("op", op),
			slog.String("owner_kind", ownerKind),
			slog.String("kind", kind),
		)

		ownerID := chi.URLParam(r, "id")

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+formOverhead)

		file, header, err := r.FormFile("file")
		if err != nil {
			log.Error("failed to read multipart file", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("multipart field \"file\" is required"))
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			log.Error("failed to read file content", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to read file content"))
			return
		}

		ref, err := manager.AttachMedia(r.Context(), ownerKind, ownerID, kind,
			header.Filename, header.Header.Get("Content-Type"), content)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		log.Info("media attached",
			slog.String("id", ref.ID),
			slog.String("owner_id", ownerID),
			slog.Int("size", ref.Size),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, MediaResponse{Response: response.OK(), Media: ref})
	}
}

// Download streams the stored bytes with the content type declared at upload.
func Download(log *slog.Logger, manager MediaManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.media.Download"

		log := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")

		blob, err := manager.GetMedia(r.Context(), id)
		if err != nil {
			respond.Err(w, r, log, err)
			return
		}

		w.Header().Set("Content-Type", blob.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", blob.Filename))
		w.Header().Set("Content-Length", fmt.Sprintf("%d", blob.Size))
		_, _ = w.Write(blob.Content)
	}
}
