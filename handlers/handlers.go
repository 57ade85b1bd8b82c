package handlers

import (
	"log/slog"
	"net/http"

	chatpost "github.com/a-h/docchat/handlers/chat/post"
	docurlpost "github.com/a-h/docchat/handlers/docurl/post"
	"github.com/rs/cors"
)

type Store interface {
	docurlpost.Store
	chatpost.ContextLoader
}

// New returns the HTTP API, allowing cross-origin requests from anywhere.
func New(log *slog.Logger, store Store, fetcher docurlpost.Fetcher, llm chatpost.Generator) http.Handler {
	mux := http.NewServeMux()

	duh := docurlpost.New(log, fetcher, store)
	mux.Handle("POST /upload_doc_url", duh)

	cph := chatpost.New(log, store, llm)
	mux.Handle("POST /chat", cph)

	return newCORS().Handler(mux)
}

func newCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
}
