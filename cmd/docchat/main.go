package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/subosito/gotenv"
)

type CLI struct {
	Serve   ServeCommand   `cmd:"serve" help:"Start the docchat server."`
	Upload  UploadCommand  `cmd:"upload" help:"Load a documentation URL into a docchat server."`
	Chat    ChatCommand    `cmd:"chat" help:"Chat with a docchat server."`
	Version VersionCommand `cmd:"version" help:"Print the version of docchat."`
}

func main() {
	// Variables in .env are applied before flags are read, existing
	// environment variables take precedence.
	_ = gotenv.Load()

	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli, kong.UsageOnError(), kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error")
		log.Error("error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getLogger(level string) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ll,
	}))
}
