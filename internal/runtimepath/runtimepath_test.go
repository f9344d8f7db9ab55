package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func setRuntimeDir(t *testing.T, dir string) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
}

func TestDirPrefersXDGRuntimeDir(t *testing.T) {
	td := t.TempDir()
	setRuntimeDir(t, td)

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	if got != td {
		t.Fatalf("Dir() = %q, want %q", got, td)
	}
}

func TestDirFallsBackWhenRuntimeDirMissing(t *testing.T) {
	setRuntimeDir(t, filepath.Join(t.TempDir(), "gone"))

	got, err := Dir()
	if err != nil {
		t.Fatalf("Dir() error: %v", err)
	}
	want := filepath.Join(os.TempDir(), fmt.Sprintf("framewm-runtime-%d", os.Getuid()))
	if got != want {
		t.Fatalf("Dir() = %q, want %q", got, want)
	}
	if info, err := os.Stat(got); err != nil || !info.IsDir() {
		t.Fatalf("fallback dir not created: %v", err)
	}
}

func TestSocketPath(t *testing.T) {
	td := t.TempDir()
	setRuntimeDir(t, td)

	tests := []struct {
		name string
		want string
	}{
		{"", "framewm.sock"},
		{DefaultName, "framewm.sock"},
		{"editor", "framewm-editor.sock"},
		{"my/../win dow", "framewm-my_.._win_dow.sock"},
	}
	for _, tt := range tests {
		socket, err := SocketPath(tt.name)
		if err != nil {
			t.Fatalf("SocketPath(%q) error: %v", tt.name, err)
		}
		if filepath.Dir(socket) != td || filepath.Base(socket) != tt.want {
			t.Errorf("SocketPath(%q) = %q, want %s/%s", tt.name, socket, td, tt.want)
		}
		if strings.ContainsRune(filepath.Base(socket), os.PathSeparator) {
			t.Errorf("SocketPath(%q) escapes the runtime dir", tt.name)
		}
	}
}
