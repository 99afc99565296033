package main

import (
	"log/slog"
	"os"

	"github.com/dipika-maharjan/tripwise-nepal-api/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
