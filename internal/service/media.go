package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"eventManager/internal/models"
	"eventManager/internal/storage"
)

// mediaManager attaches uploaded binary content to an event or venue. Each
// owner keeps at most one reference per media kind; a new upload swaps the
// reference in a single owner-document write and the prior blob simply
// becomes unreferenced.
type mediaManager struct {
	store    storage.Store
	maxImage int
	maxVideo int
}

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// sanitizeFilename strips path components, dangerous characters and traversal
// attempts from a client-supplied filename.
func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." {
		name = "file"
	}
	if len(name) > 255 {
		name = name[:255]
	}
	return name
}

func (m *mediaManager) attach(ctx context.Context, ownerKind, ownerID, kind, filename, contentType string, content []byte) (*models.MediaRef, error) {
	wantPrefix := "image/"
	sizeLimit := m.maxImage

	switch kind {
	case models.MediaPoster, models.MediaVenuePhoto:
	case models.MediaPromoVideo:
		wantPrefix = "video/"
		sizeLimit = m.maxVideo
	default:
		return nil, &ValidationError{Field: "kind", Reason: "must be poster, promo_video or venue_photo"}
	}

	if !strings.HasPrefix(contentType, wantPrefix) {
		return nil, &ValidationError{
			Field:  "content_type",
			Reason: fmt.Sprintf("must be %s*, got %q", wantPrefix, contentType),
		}
	}
	if len(content) == 0 {
		return nil, &ValidationError{Field: "file", Reason: "must not be empty"}
	}
	if len(content) > sizeLimit {
		return nil, &ValidationError{
			Field:  "file",
			Reason: fmt.Sprintf("exceeds the %d byte limit", sizeLimit),
		}
	}

	blob := &models.MediaBlob{
		OwnerKind:   ownerKind,
		OwnerID:     ownerID,
		Kind:        kind,
		Filename:    sanitizeFilename(filename),
		ContentType: contentType,
		Size:        len(content),
		Content:     content,
	}

	// Verify the owner exists before storing anything, then swap its
	// reference field in one document write.
	switch ownerKind {
	case models.OwnerEvent:
		if kind == models.MediaVenuePhoto {
			return nil, &ValidationError{Field: "kind", Reason: "venue_photo cannot be attached to an event"}
		}
		event, err := m.store.GetEvent(ctx, ownerID)
		if err != nil {
			return nil, ownerErr("event", ownerID, err)
		}
		if err := m.store.InsertMedia(ctx, blob); err != nil {
			return nil, unavailable("media.attach", err)
		}
		if kind == models.MediaPoster {
			event.PosterID = blob.ID
		} else {
			event.PromoVideoID = blob.ID
		}
		if err := m.store.UpdateEvent(ctx, event); err != nil {
			return nil, ownerErr("event", ownerID, err)
		}
	case models.OwnerVenue:
		if kind != models.MediaVenuePhoto {
			return nil, &ValidationError{Field: "kind", Reason: "only venue_photo can be attached to a venue"}
		}
		venue, err := m.store.GetVenue(ctx, ownerID)
		if err != nil {
			return nil, ownerErr("venue", ownerID, err)
		}
		if err := m.store.InsertMedia(ctx, blob); err != nil {
			return nil, unavailable("media.attach", err)
		}
		venue.PhotoID = blob.ID
		if err := m.store.UpdateVenue(ctx, venue); err != nil {
			return nil, ownerErr("venue", ownerID, err)
		}
	default:
		return nil, &ValidationError{Field: "owner_kind", Reason: "must be event or venue"}
	}

	return blob.Ref(), nil
}

func (m *mediaManager) get(ctx context.Context, id string) (*models.MediaBlob, error) {
	blob, err := m.store.GetMedia(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &NotFoundError{Kind: "media", ID: id}
		}
		return nil, unavailable("media.get", err)
	}
	return blob, nil
}

func ownerErr(kind, id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return &NotFoundError{Kind: kind, ID: id}
	}
	return unavailable("media.attach", err)
}
