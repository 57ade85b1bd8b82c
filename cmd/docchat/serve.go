package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/docchat/doccontext"
	"github.com/a-h/docchat/fetcher"
	"github.com/a-h/docchat/handlers"
	"github.com/a-h/docchat/ollama"
)

type ServeCommand struct {
	OllamaURL       string        `help:"The URL of the Ollama generate endpoint." env:"OLLAMA_URL" default:"http://localhost:11434/api/generate"`
	ChatModel       string        `help:"The model to chat with." env:"CHAT_MODEL" default:"phi"`
	OllamaTimeout   time.Duration `help:"How long to wait for the model to reply." env:"OLLAMA_TIMEOUT" default:"120s"`
	MaxContextChars int           `help:"The number of characters of a document to keep as context." env:"MAX_CONTEXT_CHARS" default:"8000"`
	ListenAddr      string        `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:8000"`
	TLSCertFile     string        `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile      string        `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel        string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	if c.MaxContextChars < 0 {
		return fmt.Errorf("max context chars must not be negative, got %d", c.MaxContextChars)
	}

	log.Info("creating clients", slog.String("ollamaURL", c.OllamaURL), slog.String("model", c.ChatModel), slog.Duration("timeout", c.OllamaTimeout))
	docs := fetcher.New(&http.Client{}, c.MaxContextChars)
	llm := ollama.New(c.OllamaURL, c.ChatModel, c.OllamaTimeout)

	h := handlers.New(log, doccontext.New(), docs, llm)

	log.Info("Listening", slog.String("addr", c.ListenAddr))
	s := &http.Server{
		Addr:    c.ListenAddr,
		Handler: h,
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}
