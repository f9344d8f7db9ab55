package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/framewm/internal/config"
	"github.com/1broseidon/framewm/internal/ipc"
	"github.com/1broseidon/framewm/internal/settings"
)

// Options configures the settings editor.
type Options struct {
	// ConfigPath is the file edited and saved. Empty means the default path.
	ConfigPath string
	// Settings is the geometry store. Nil opens the default store.
	Settings *settings.Store
	// Client talks to a running frame. Nil derives one from the config's
	// window name.
	Client *ipc.Client
}

// Run starts the interactive settings editor and blocks until it exits.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	path := opts.ConfigPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	store := opts.Settings
	if store == nil {
		s, err := settings.OpenDefault()
		if err != nil {
			return err
		}
		store = s
	}

	var client frameClient
	if opts.Client != nil {
		client = opts.Client
	} else {
		name := config.DefaultConfig().Window.Name
		if res, err := config.LoadFromPath(path); err == nil {
			name = res.Config.Window.Name
		}
		client = ipc.NewClient(name)
	}

	p := tea.NewProgram(newModel(path, store, client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
