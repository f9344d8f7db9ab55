package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/1broseidon/framewm/internal/ipc"
	"github.com/1broseidon/framewm/internal/palette"
)

func runMenu(args []string) int {
	fs := flag.NewFlagSet("menu", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	name, path := remoteFlags(fs)
	backendName := fs.String("backend", "auto", "Launcher: auto, rofi, fuzzel, wofi, dmenu")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: framewm menu [--name NAME] [--backend LAUNCHER]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Pick an action for the running frame from a launcher menu.")
		fmt.Fprintln(os.Stderr, "Bind it to a key in your window manager for keyboard snapping.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	client := ipc.NewClient(frameName(*name, *path))
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	backend, err := palette.NewBackend(*backendName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	menu := palette.NewMenu(backend, "framewm", palette.FrameMenu(status))
	menu.SetMessage(palette.StatusMessage(status))
	choice, err := menu.Show()
	if errors.Is(err, palette.ErrCancelled) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := runMenuAction(client, choice); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// menuClient is what a menu choice can drive.
type menuClient interface {
	actionClient
	Snap(side geometry.Side) error
}

func runMenuAction(c menuClient, choice string) error {
	action, err := palette.ParseAction(choice)
	if err != nil {
		return err
	}
	if action.Verb == "snap" {
		return c.Snap(action.Side)
	}
	return dispatchAction(c, action.Verb)
}
