package daemon

import (
	"log/slog"

	"github.com/1broseidon/framewm/internal/settings"
)

// Options configures a Daemon.
type Options struct {
	// ConfigPath is the YAML file to load. Empty selects the default path.
	ConfigPath string
	// Name overrides window.name from the configuration.
	Name string
	// Logger receives daemon logs. Nil discards.
	Logger *slog.Logger
	// Level, when set, follows log_level across reloads.
	Level *slog.LevelVar
	// Settings persists geometry. Nil opens the default store.
	Settings *settings.Store
}
