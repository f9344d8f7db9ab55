package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// DefaultName is the window name used when none is configured.
const DefaultName = "framewm"

// Dir returns the directory holding frame sockets: the XDG runtime dir
// when it exists, else a private directory under /tmp.
func Dir() (string, error) {
	if dir := xdg.RuntimeDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	dir := filepath.Join(os.TempDir(), fmt.Sprintf("framewm-runtime-%d", os.Getuid()))
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return dir, nil
}

// SocketPath returns the IPC socket of the frame with the given window
// name. Each name gets its own socket so several frames can run side by
// side; an empty name selects the default one.
func SocketPath(name string) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	if name == "" || name == DefaultName {
		return filepath.Join(dir, DefaultName+".sock"), nil
	}
	return filepath.Join(dir, DefaultName+"-"+strings.Map(socketRune, name)+".sock"), nil
}

// socketRune keeps socket file names to a safe character set.
func socketRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case r == '-', r == '_', r == '.':
		return r
	}
	return '_'
}
