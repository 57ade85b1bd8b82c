package post

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/a-h/docchat/models"
	"github.com/a-h/docchat/prompt"
	"github.com/a-h/respond"
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (reply string, err error)
}

type ContextLoader interface {
	Load() string
}

func New(log *slog.Logger, docContext ContextLoader, llm Generator) Handler {
	return Handler{
		log:        log,
		docContext: docContext,
		llm:        llm,
	}
}

type Handler struct {
	log        *slog.Logger
	docContext ContextLoader
	llm        Generator
}

// request is models.ChatPostRequest with Message as a pointer, so that a
// missing message can be told apart from an empty one.
type request struct {
	Message *string          `json:"message"`
	History []map[string]any `json:"history"`
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		h.log.Error("failed to decode body", slog.Any("error", err))
		respond.WithError(w, "failed to decode body", http.StatusBadRequest)
		return
	}
	if req.Message == nil {
		h.log.Error("message not provided")
		respond.WithError(w, "message is required", http.StatusBadRequest)
		return
	}

	p := prompt.Build(h.docContext.Load(), *req.Message)
	h.log.Debug("generating content", slog.Int("promptLength", len(p)), slog.Int("historyLength", len(req.History)))

	var resp models.ChatPostResponse
	resp.Response, err = h.llm.Generate(r.Context(), p)
	if err != nil {
		// Clients expect a 200 with the error text as the reply.
		h.log.Warn("failed to generate content", slog.Any("error", err))
		resp.Response = models.ChatErrorResponse(err)
	}

	respond.WithJSON(w, resp, http.StatusOK)
}
