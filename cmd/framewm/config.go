package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/framewm/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  framewm config validate [--path PATH]")
	fmt.Fprintln(w, "  framewm config print [--path PATH] [--effective|--defaults]")
	fmt.Fprintln(w, "  framewm config explain [--path PATH] <yaml.path>")
	fmt.Fprintln(w, "  framewm config path")
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// configFlags returns a flag set for a config subcommand with --path bound.
func configFlags(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/framewm/config.yaml)")
	return fs, path
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "validate":
		err = configValidate(os.Stdout, args[1:])
	case "print":
		err = configPrint(os.Stdout, args[1:])
	case "explain":
		err = configExplain(os.Stdout, args[1:])
	case "path":
		err = configPath(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}

	var uerr usageError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &uerr):
		if uerr != "" {
			fmt.Fprintln(os.Stderr, string(uerr))
		}
		return 2
	default:
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
}

// usageError is a bad invocation; it exits 2 instead of 1.
type usageError string

func (e usageError) Error() string { return string(e) }

func configValidate(w io.Writer, args []string) error {
	fs, path := configFlags("validate")
	if err := fs.Parse(args); err != nil {
		return usageError("")
	}
	res, err := loadConfig(*path)
	if err != nil {
		return err
	}
	if len(res.Files) == 0 {
		fmt.Fprintln(w, "config: ok (no file, using defaults)")
		return nil
	}
	fmt.Fprintln(w, "config: ok")
	for _, f := range res.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	return nil
}

func configPrint(w io.Writer, args []string) error {
	fs, path := configFlags("print")
	defaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
	fs.Bool("effective", true, "Print effective config (default)")
	if err := fs.Parse(args); err != nil {
		return usageError("")
	}

	cfg := config.DefaultConfig()
	if !*defaults {
		res, err := loadConfig(*path)
		if err != nil {
			return err
		}
		cfg = res.Config
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}

func configExplain(w io.Writer, args []string) error {
	fs, path := configFlags("explain")
	if err := fs.Parse(args); err != nil {
		return usageError("")
	}
	if fs.NArg() < 1 {
		return usageError("explain requires <yaml.path>")
	}
	key := fs.Arg(0)

	res, err := loadConfig(*path)
	if err != nil {
		return err
	}
	value, src, err := config.Explain(res, key)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "path: %s\nsource: %s\nvalue:\n%s", key, formatSource(src), out)
	return nil
}

func configPath(w io.Writer) error {
	p, err := config.DefaultConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, p)
	return nil
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
