//go:build linux

package daemon

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/framewm/internal/config"
	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/hotkeys"
	"github.com/1broseidon/framewm/internal/ipc"
	"github.com/1broseidon/framewm/internal/platform"
	"github.com/1broseidon/framewm/internal/settings"
)

// callTimeout bounds how long an IPC or timer call waits for the X loop.
const callTimeout = 5 * time.Second

// Daemon runs one managed frameless window: it owns the X connection, the
// frame manager, global hotkeys, the IPC server, the config watcher and the
// geometry checkpointer. Everything touching the manager runs on the X
// event loop.
type Daemon struct {
	opts       Options
	logger     *slog.Logger
	configPath string
	cfg        *config.Config
	store      *settings.Store
	loop       *Loop

	ctx            context.Context
	started        time.Time
	backend        *platform.LinuxBackend
	win            *platform.Window
	mgr            *frame.Manager
	keys           *hotkeys.Handler
	checkpoint     *Checkpointer
	stopCheckpoint context.CancelFunc
}

var _ ipc.Controller = (*Daemon)(nil)

// New loads the configuration and prepares a daemon. Nothing touches the
// display until Run.
func New(opts Options) (*Daemon, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	path := opts.ConfigPath
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	cfg := res.Config
	if opts.Name != "" {
		cfg.Window.Name = opts.Name
	}
	if opts.Level != nil {
		opts.Level.Set(cfg.SlogLevel())
	}

	store := opts.Settings
	if store == nil {
		store, err = settings.OpenDefault()
		if err != nil {
			return nil, err
		}
	}
	store.SetLogger(logger)

	return &Daemon{
		opts:       opts,
		logger:     logger,
		configPath: path,
		cfg:        cfg,
		store:      store,
		loop:       NewLoop(),
	}, nil
}

// Name returns the managed window's object name.
func (d *Daemon) Name() string { return d.cfg.Window.Name }

// Run creates the window and blocks until it is closed or ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d.ctx = ctx
	d.started = time.Now()

	backend, err := platform.NewLinuxBackendFromDisplay(d.logger)
	if err != nil {
		return err
	}
	defer backend.Disconnect()
	d.backend = backend

	if err := backend.WatchScreen(); err != nil {
		d.logger.Warn("screen changes will not be tracked", "error", err)
	}

	fc, err := d.cfg.FrameConfig()
	if err != nil {
		return err
	}
	spec, err := windowSpec(d.cfg.Window, backend.AvailableGeometry())
	if err != nil {
		return err
	}
	win, err := backend.CreateWindow(spec)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	d.win = win
	defer win.Destroy()

	mgr, err := frame.New(win, backend, frame.Options{
		Settings: d.store,
		Logger:   d.logger.With("window", spec.Name),
		Config:   &fc,
	})
	if err != nil {
		return err
	}
	d.mgr = mgr
	mgr.SetDefaultGeometry(geometry.Rect{X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height})
	win.Attach(mgr)

	backend.OnQuit(func() {
		d.logger.Info("quit requested")
		d.loop.Stop()
		backend.Connection().Quit()
	})
	backend.OnAvailableGeometryChanged(mgr.HandleAvailableGeometryChanged)

	d.keys = hotkeys.NewHandler(backend.XUtil(), backend.Connection().Root, d.logger)
	if err := d.keys.Bind(d.cfg.Hotkeys, d.hotkeyActions()); err != nil {
		d.logger.Warn("some hotkeys could not be bound", "error", err)
	}
	defer d.keys.Unbind()

	server, err := ipc.NewServer(spec.Name, d, d.logger)
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return err
	}
	defer server.Stop()

	if watcher, err := NewConfigWatcher(d.configPath, d.logger, d.reloadFromWatcher); err != nil {
		d.logger.Warn("config changes will not be picked up automatically", "error", err)
	} else {
		go watcher.Run(ctx)
	}

	d.startCheckpointer(d.cfg.CheckpointInterval)
	defer func() {
		if d.stopCheckpoint != nil {
			d.stopCheckpoint()
		}
	}()

	win.Map()
	d.logger.Info("frame running", "window", spec.Name, "config", d.configPath, "settings", d.store.Path())

	before, after, quit := backend.Connection().MainPing()
	d.loop.Run(ctx, before, after, quit)

	// The event goroutine is parked between batches; the manager is ours.
	mgr.Close()
	backend.Connection().Quit()
	d.logger.Info("frame stopped", "window", spec.Name)
	return nil
}

func (d *Daemon) hotkeyActions() hotkeys.Actions {
	return hotkeys.Actions{
		Maximize:  func() { d.mgr.Maximize() },
		Minimize:  func() { d.mgr.Minimize() },
		Quit:      func() { d.mgr.Quit() },
		SnapLeft:  func() { d.mgr.Snap(geometry.SideLeft) },
		SnapRight: func() { d.mgr.Snap(geometry.SideRight) },
	}
}

func (d *Daemon) startCheckpointer(interval time.Duration) {
	if d.stopCheckpoint != nil {
		d.stopCheckpoint()
	}
	ctx, cancel := context.WithCancel(d.ctx)
	d.stopCheckpoint = cancel
	d.checkpoint = NewCheckpointer(CheckpointConfig{Interval: interval, Logger: d.logger}, func() error {
		return d.do(func() error { return d.mgr.SaveGeometry() })
	})
	go d.checkpoint.Run(ctx)
}

// do runs fn on the X loop. It may be called before Run starts the loop,
// in which case it waits up to callTimeout.
func (d *Daemon) do(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	return d.loop.Do(ctx, fn)
}

func (d *Daemon) reloadFromWatcher() {
	d.logger.Info("config file changed, reloading", "path", d.configPath)
	if err := d.do(d.reload); err != nil {
		d.logger.Warn("config reload failed; keeping previous config", "error", err)
	}
}

// reload re-reads the configuration and applies it. It must run on the
// X loop. An invalid file leaves the running configuration untouched.
func (d *Daemon) reload() error {
	res, err := config.LoadFromPath(d.configPath)
	if err != nil {
		return err
	}
	cfg := res.Config
	// The window keeps the name it was created with.
	if d.opts.Name == "" && cfg.Window.Name != d.cfg.Window.Name {
		d.logger.Warn("window.name changes need a restart", "running", d.cfg.Window.Name, "configured", cfg.Window.Name)
	}
	cfg.Window.Name = d.cfg.Window.Name

	fc, err := cfg.FrameConfig()
	if err != nil {
		return err
	}
	d.mgr.ApplyConfig(fc)

	minSize := geometry.Size{Width: cfg.Window.MinWidth, Height: cfg.Window.MinHeight}
	if err := d.win.SetMinimumSize(minSize); err != nil {
		d.logger.Warn("failed to update minimum size", "error", err)
	}
	if bg, err := config.ParseHexColor(cfg.Window.Background); err == nil {
		d.win.SetBackground(bg)
	}
	if d.opts.Level != nil {
		d.opts.Level.Set(cfg.SlogLevel())
	}
	if cfg.Hotkeys != d.cfg.Hotkeys {
		if err := d.keys.Bind(cfg.Hotkeys, d.hotkeyActions()); err != nil {
			d.logger.Warn("some hotkeys could not be bound", "error", err)
		}
	}
	if cfg.CheckpointInterval != d.cfg.CheckpointInterval {
		d.startCheckpointer(cfg.CheckpointInterval)
	}

	d.cfg = cfg
	d.logger.Info("config reloaded", "files", res.Files)
	return nil
}

// Status implements ipc.Controller.
func (d *Daemon) Status() (ipc.StatusData, error) {
	var st ipc.StatusData
	err := d.do(func() error {
		st = ipc.NewStatusData(d.mgr.Status())
		st.ConfigPath = d.configPath
		st.UptimeSeconds = int64(time.Since(d.started).Seconds())
		return nil
	})
	return st, err
}

func (d *Daemon) Maximize() error {
	return d.do(func() error { d.mgr.Maximize(); return nil })
}

func (d *Daemon) Minimize() error {
	return d.do(func() error { d.mgr.Minimize(); return nil })
}

func (d *Daemon) Restore() error {
	return d.do(func() error { d.mgr.Restore(); return nil })
}

func (d *Daemon) Snap(side geometry.Side) error {
	return d.do(func() error { d.mgr.Snap(side); return nil })
}

func (d *Daemon) SaveGeometry() error {
	return d.do(func() error { return d.mgr.SaveGeometry() })
}

func (d *Daemon) Reload() error {
	return d.do(d.reload)
}

// Quit closes the frame the same way the quit button does.
func (d *Daemon) Quit() error {
	return d.do(func() error { d.mgr.Quit(); return nil })
}
