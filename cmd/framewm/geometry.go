package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/ipc"
	"github.com/1broseidon/framewm/internal/settings"
)

func printGeometryUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  framewm geometry list [--json]")
	fmt.Fprintln(w, "  framewm geometry reset <name>")
}

func runGeometry(args []string) int {
	if len(args) == 0 {
		printGeometryUsage(os.Stderr)
		return 2
	}
	switch args[0] {
	case "list":
		return runGeometryList(args[1:])
	case "reset":
		return runGeometryReset(args[1:])
	case "help", "-h", "--help":
		printGeometryUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown geometry subcommand: %s\n\n", args[0])
		printGeometryUsage(os.Stderr)
		return 2
	}
}

func runGeometryList(args []string) int {
	fs := flag.NewFlagSet("geometry list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	asJSON := fs.Bool("json", false, "Print as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	store, err := settings.OpenDefault()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	geoms, err := store.Geometries()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *asJSON {
		if geoms == nil {
			geoms = []settings.Geometry{}
		}
		if err := writeJSON(os.Stdout, geoms); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	writeGeometryTable(os.Stdout, geoms, term.IsTerminal(int(os.Stdout.Fd())))
	return 0
}

// writeGeometryTable prints an aligned table for terminals and one
// tab-separated record per line otherwise.
func writeGeometryTable(w io.Writer, geoms []settings.Geometry, tty bool) {
	if !tty {
		for _, g := range geoms {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", g.Name, g.Rect.X, g.Rect.Y, g.Rect.Width, g.Rect.Height)
		}
		return
	}
	if len(geoms) == 0 {
		fmt.Fprintln(w, "No saved geometry.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tX\tY\tWIDTH\tHEIGHT")
	for _, g := range geoms {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", g.Name, g.Rect.X, g.Rect.Y, g.Rect.Width, g.Rect.Height)
	}
	tw.Flush()
}

func runGeometryReset(args []string) int {
	fs := flag.NewFlagSet("geometry reset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: framewm geometry reset <name>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Forget the saved geometry of the named window so it opens at its")
		fmt.Fprintln(os.Stderr, "default geometry next time.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "reset requires exactly one <name>")
		fs.Usage()
		return 2
	}
	name := fs.Arg(0)

	store, err := settings.OpenDefault()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := store.Delete(name, frame.GeometryKey); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if ipc.NewClient(name).Ping() == nil {
		fmt.Fprintf(os.Stderr, "note: %s is running and will save its geometry again when it closes\n", name)
	}
	return 0
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
