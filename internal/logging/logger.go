package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON slog logger on stdout. It runs before the database
// is up; once connected, main swaps in a MultiHandler that adds the
// Postgres batch handler on top of this one.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
