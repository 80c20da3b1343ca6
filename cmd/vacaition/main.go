// vacAItion is a terminal client for the vacation-planning chat backend.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/canit0221/RA6-vacAItion-sub000/cmd/vacaition/cmd"
)

func main() {
	// Keep structured logs out of the conversation pane.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env file")
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
