package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/1broseidon/framewm/internal/frame"
	"github.com/1broseidon/framewm/internal/geometry"
	"github.com/adrg/xdg"
)

const relPath = "framewm/settings.json"

// DefaultPath returns $XDG_CONFIG_HOME/framewm/settings.json, creating the
// parent directory.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(relPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve settings path: %w", err)
	}
	return path, nil
}

// file is the on-disk layout: group -> key -> value.
type file struct {
	Version int                                   `json:"version"`
	Groups  map[string]map[string]json.RawMessage `json:"groups"`
}

const fileVersion = 1

// Store is a JSON-backed settings store. Values are grouped by window name.
// Several processes share one file, so every access re-reads it and every
// write merges into what is on disk at that moment. It is safe for
// concurrent use.
type Store struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
}

var _ frame.Settings = (*Store)(nil)

// Open returns a store backed by path. The file may not exist yet.
func Open(path string) *Store {
	return &Store{path: path, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// OpenDefault opens the store at DefaultPath.
func OpenDefault() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path), nil
}

// SetLogger sets where recovery warnings go.
func (s *Store) SetLogger(l *slog.Logger) {
	if l != nil {
		s.logger = l
	}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

type groups map[string]map[string]json.RawMessage

// read returns the current file contents. A missing file is empty.
func (s *Store) read() (groups, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return groups{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &parseError{path: s.path, err: err}
	}
	if f.Groups == nil {
		f.Groups = groups{}
	}
	return f.Groups, nil
}

type parseError struct {
	path string
	err  error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("failed to parse settings %s: %v", e.path, e.err)
}
func (e *parseError) Unwrap() error { return e.err }

// readForWrite is read, except that an unparsable file is moved aside to
// <path>.bak and replaced by an empty store so writes keep working.
func (s *Store) readForWrite() (groups, error) {
	g, err := s.read()
	var perr *parseError
	if !errors.As(err, &perr) {
		return g, err
	}
	backup := s.path + ".bak"
	if rerr := os.Rename(s.path, backup); rerr != nil {
		s.logger.Warn("corrupt settings file could not be backed up", "path", s.path, "error", rerr)
	} else {
		s.logger.Warn("corrupt settings file moved aside; starting empty", "path", s.path, "backup", backup, "error", perr.err)
	}
	return groups{}, nil
}

func (s *Store) write(g groups) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(file{Version: fileVersion, Groups: g}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.json")
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// Get decodes the value stored under group/key into v. ok is false when
// nothing is stored.
func (s *Store) Get(group, key string, v any) (ok bool, err error) {
	s.mu.Lock()
	g, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return false, err
	}
	raw, ok := g[group][key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode %s/%s: %w", group, key, err)
	}
	return true, nil
}

// Set stores v under group/key and writes the file, keeping every other
// entry currently on disk.
func (s *Store) Set(group, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s/%s: %w", group, key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.readForWrite()
	if err != nil {
		return err
	}
	if g[group] == nil {
		g[group] = map[string]json.RawMessage{}
	}
	g[group][key] = raw
	return s.write(g)
}

// Rect implements frame.Settings.
func (s *Store) Rect(group, key string) (geometry.Rect, bool, error) {
	var r geometry.Rect
	ok, err := s.Get(group, key, &r)
	return r, ok, err
}

// SetRect implements frame.Settings.
func (s *Store) SetRect(group, key string, r geometry.Rect) error {
	return s.Set(group, key, r)
}

// Groups returns the stored group names in sorted order.
func (s *Store) Groups() ([]string, error) {
	s.mu.Lock()
	g, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(g))
	for name := range g {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

// Delete removes group/key. An empty key removes the whole group. Deleting
// something that does not exist is not an error.
func (s *Store) Delete(group, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.readForWrite()
	if err != nil {
		return err
	}
	values, ok := g[group]
	if !ok {
		return nil
	}
	if key == "" {
		delete(g, group)
	} else {
		if _, ok := values[key]; !ok {
			return nil
		}
		delete(values, key)
		if len(values) == 0 {
			delete(g, group)
		}
	}
	return s.write(g)
}

// Geometry is a saved window geometry.
type Geometry struct {
	Name string        `json:"name"`
	Rect geometry.Rect `json:"rect"`
}

// Geometries lists every group's saved frame geometry. Groups whose value
// cannot be decoded are skipped.
func (s *Store) Geometries() ([]Geometry, error) {
	groups, err := s.Groups()
	if err != nil {
		return nil, err
	}
	var out []Geometry
	for _, g := range groups {
		r, ok, err := s.Rect(g, frame.GeometryKey)
		if err != nil || !ok {
			continue
		}
		out = append(out, Geometry{Name: g, Rect: r})
	}
	return out, nil
}
