package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/framewm/internal/config"
	"github.com/1broseidon/framewm/internal/daemon"
	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/ipc"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runFrame(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "maximize", "minimize", "restore", "quit", "reload", "save":
		os.Exit(runAction(os.Args[1], os.Args[2:]))
	case "snap":
		os.Exit(runSnap(os.Args[2:]))
	case "menu":
		os.Exit(runMenu(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "geometry":
		os.Exit(runGeometry(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: framewm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Create a frameless window and manage it (foreground)")
	fmt.Fprintln(w, "  status              Show the running frame's state")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  maximize            Toggle maximize")
	fmt.Fprintln(w, "  minimize            Minimize the window")
	fmt.Fprintln(w, "  restore             Return to the last free-floating geometry")
	fmt.Fprintln(w, "  snap <side>         Snap to a side or corner of the desktop")
	fmt.Fprintln(w, "  save                Persist the window geometry now")
	fmt.Fprintln(w, "  reload              Reload configuration in the running frame")
	fmt.Fprintln(w, "  quit                Close the frame")
	fmt.Fprintln(w, "  menu                Pick an action from a launcher (rofi, fuzzel, wofi, dmenu)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config path         Print the config file path")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  geometry list       List saved window geometries")
	fmt.Fprintln(w, "  geometry reset      Forget a window's saved geometry")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open interactive settings editor")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'framewm <command> --help' for command-specific options.")
}

// newLogger returns the stderr text logger shared by every command.
func newLogger(level *slog.LevelVar) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runFrame(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/framewm/config.yaml)")
	name := fs.String("name", "", "Window object name (default: window.name from config)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: framewm run [--path PATH] [--name NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Create a frameless window and manage its move, resize and snap")
		fmt.Fprintln(os.Stderr, "behavior until it is closed. SIGHUP reloads the configuration.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "run takes no arguments")
		fs.Usage()
		return 2
	}

	level := new(slog.LevelVar)
	logger := newLogger(level)

	d, err := daemon.New(daemon.Options{
		ConfigPath: *path,
		Name:       *name,
		Logger:     logger,
		Level:      level,
	})
	if err != nil {
		logger.Error("failed to start frame", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				logger.Info("received SIGHUP, reloading config")
				if err := d.Reload(); err != nil {
					logger.Warn("config reload failed", "error", err)
				}
			}
		}
	}()

	if err := d.Run(ctx); err != nil {
		logger.Error("frame exited with error", "error", err)
		return 1
	}
	return 0
}

// remoteFlags registers the flags that select which running frame a remote
// command talks to.
func remoteFlags(fs *flag.FlagSet) (name, path *string) {
	name = fs.String("name", "", "Window object name of the target frame (default: window.name from config)")
	path = fs.String("path", "", "Config file path used to resolve the default name")
	return name, path
}

// frameName resolves the target frame: an explicit name wins, then the
// configured window name, then the built-in default.
func frameName(name, path string) string {
	if name != "" {
		return name
	}
	if res, err := loadConfig(path); err == nil {
		return res.Config.Window.Name
	}
	return config.DefaultConfig().Window.Name
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	name, path := remoteFlags(fs)
	asJSON := fs.Bool("json", false, "Print status as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: framewm status [--name NAME] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the running frame's state via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient(frameName(*name, *path))
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *asJSON {
		if err := writeJSON(os.Stdout, status); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}
	printStatus(os.Stdout, status)
	return 0
}

func printStatus(w io.Writer, s *ipc.StatusData) {
	fmt.Fprintf(w, "name:           %s\n", s.Name)
	fmt.Fprintf(w, "mode:           %s\n", s.Mode)
	fmt.Fprintf(w, "state:          %s\n", s.State)
	fmt.Fprintf(w, "snap_side:      %s\n", s.SnapSide)
	fmt.Fprintf(w, "geometry:       %s\n", s.Geometry)
	fmt.Fprintf(w, "restore_to:     %s\n", s.PreModifyGeometry)
	fmt.Fprintf(w, "flags:          %s\n", s.Flags)
	fmt.Fprintf(w, "border_width:   %d\n", s.BorderWidth)
	fmt.Fprintf(w, "preview:        %v\n", s.PreviewActive)
	if s.ConfigPath != "" {
		fmt.Fprintf(w, "config:         %s\n", s.ConfigPath)
	}
	fmt.Fprintf(w, "uptime_seconds: %d\n", s.UptimeSeconds)
}

var actionHelp = map[string]string{
	"maximize": "Toggle maximize on the running frame.",
	"minimize": "Minimize the running frame.",
	"restore":  "Leave maximized or snapped state and return to the last free-floating geometry.",
	"quit":     "Close the running frame. Its geometry is saved first.",
	"reload":   "Re-read the configuration file in the running frame.",
	"save":     "Persist the running frame's geometry now.",
}

func runAction(action string, args []string) int {
	fs := flag.NewFlagSet(action, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	name, path := remoteFlags(fs)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: framewm %s [--name NAME]\n", action)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, actionHelp[action])
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", action)
		fs.Usage()
		return 2
	}

	client := ipc.NewClient(frameName(*name, *path))
	if err := dispatchAction(client, action); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// actionClient is the part of the IPC client remote actions use.
type actionClient interface {
	Maximize() error
	Minimize() error
	Restore() error
	Quit() error
	Reload() error
	SaveGeometry() error
}

func dispatchAction(c actionClient, action string) error {
	switch action {
	case "maximize":
		return c.Maximize()
	case "minimize":
		return c.Minimize()
	case "restore":
		return c.Restore()
	case "quit":
		return c.Quit()
	case "reload":
		return c.Reload()
	case "save":
		return c.SaveGeometry()
	default:
		return fmt.Errorf("unknown action %q", action)
	}
}

func runSnap(args []string) int {
	fs := flag.NewFlagSet("snap", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	name, path := remoteFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: framewm snap [--name NAME] <side>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Sides: left, right, top, bottom, top_left, top_right, bottom_left, bottom_right")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	side, err := parseSnapSide(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return 2
	}

	client := ipc.NewClient(frameName(*name, *path))
	if err := client.Snap(side); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func parseSnapSide(args []string) (geometry.Side, error) {
	if len(args) != 1 {
		return geometry.SideNone, errors.New("snap requires exactly one <side>")
	}
	side, err := geometry.ParseSide(args[0])
	if err != nil {
		return geometry.SideNone, err
	}
	if side == geometry.SideNone {
		return geometry.SideNone, errors.New("snap requires a side other than none")
	}
	return side, nil
}
