package main

import (
	"context"
	"log/slog"
	"os"

	"libraria/internal/app"
	"libraria/internal/platform/logger"
)

// main runs the scripted library walkthrough against fresh in-memory
// repositories and prints each step through a text logger.
func main() {
	log := logger.NewWithWriter(os.Stdout, slog.LevelInfo, "text")
	lib := app.NewLibrary(logger.Discard(), nil)

	stats := app.RunDemo(context.Background(), lib, log)
	log.Info("demo finished", "total_transactions", stats.TotalTransactions)
}
