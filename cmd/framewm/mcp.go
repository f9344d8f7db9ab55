package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/framewm/internal/ipc"
	"github.com/1broseidon/framewm/internal/mcp"
	"github.com/1broseidon/framewm/internal/tui"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: framewm mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'framewm mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	fs := flag.NewFlagSet("mcp serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	name, path := remoteFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: framewm mcp serve [--name NAME]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the MCP server on stdio. Tools control the running frame over IPC.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Example (Claude Code):")
		fmt.Fprintln(os.Stderr, "  claude mcp add framewm -- framewm mcp serve")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	// stdout carries the protocol; logs go to stderr.
	level := new(slog.LevelVar)
	logger := newLogger(level)
	server := mcp.NewServer(ipc.NewClient(frameName(*name, *path)), logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("MCP server error", "error", err)
		return 1
	}
	return 0
}

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/framewm/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: framewm tui [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive editor for frame settings and saved geometry.")
		fmt.Fprintln(os.Stderr, "Works offline; a running frame is reloaded after saving.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  tab/shift-tab, 1-3  Switch tabs")
		fmt.Fprintln(os.Stderr, "  e                   Edit settings on the current tab")
		fmt.Fprintln(os.Stderr, "  x                   Reset the selected saved geometry")
		fmt.Fprintln(os.Stderr, "  r                   Refresh saved geometry")
		fmt.Fprintln(os.Stderr, "  ctrl-s              Review and save changes")
		fmt.Fprintln(os.Stderr, "  q, ctrl-c           Quit")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if err := tui.Run(tui.Options{ConfigPath: *path}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
