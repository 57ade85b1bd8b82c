package post

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/docchat/models"
	"github.com/a-h/respond"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) (text string, err error)
}

type Store interface {
	Store(text string)
}

func New(log *slog.Logger, fetcher Fetcher, store Store) Handler {
	return Handler{
		log:     log,
		fetcher: fetcher,
		store:   store,
	}
}

type Handler struct {
	log     *slog.Logger
	fetcher Fetcher
	store   Store
}

// request is models.DocURLPostRequest with URL as a pointer, so that a missing
// url can be told apart from an empty one.
type request struct {
	URL *string `json:"url"`
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		respond.WithError(w, "failed to decode body", http.StatusBadRequest)
		return
	}
	if req.URL == nil {
		h.log.Error("url not provided")
		respond.WithError(w, "url is required", http.StatusBadRequest)
		return
	}
	url := *req.URL

	text, err := h.fetcher.Fetch(r.Context(), url)
	if err != nil {
		// Fetch failures are reported in the body, the previous document is kept.
		h.log.Warn("failed to fetch document", slog.String("url", url), slog.Any("error", err))
		respond.WithJSON(w, models.DocURLPostResponse{
			Status:  models.DocURLStatusError,
			Message: err.Error(),
		}, http.StatusOK)
		return
	}
	h.store.Store(text)
	h.log.Info("document loaded", slog.String("url", url), slog.Int("bytes", len(text)))

	respond.WithJSON(w, models.DocURLPostResponse{
		Status: models.DocURLStatusSuccess,
	}, http.StatusOK)
}
