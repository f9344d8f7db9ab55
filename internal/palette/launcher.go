package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

// ErrCancelled is returned when the user closes the launcher without choosing.
var ErrCancelled = errors.New("palette cancelled")

// Item is one row shown by a launcher.
type Item struct {
	Label     string
	Action    string
	Icon      string // rofi -show-icons name
	IsHeader  bool   // bold, not selectable
	IsDivider bool   // dim, not selectable
	IsActive  bool   // highlighted as the current state
}

// Capabilities describes what a launcher can render.
type Capabilities struct {
	Icons         bool
	Markup        bool
	NonSelectable bool
	IndexOutput   bool
	RowStates     bool
}

// Backend shows a list of items and returns the chosen one.
type Backend interface {
	Show(prompt string, items []Item, message string) (Item, error)
	Capabilities() Capabilities
}

// launchers in detection order.
var launchers = []string{"rofi", "fuzzel", "wofi", "dmenu"}

var lookPath = exec.LookPath

// NewBackend returns the named launcher. "" and "auto" pick the first
// launcher found in PATH.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		for _, l := range launchers {
			if _, err := lookPath(l); err == nil {
				return newLauncher(l), nil
			}
		}
		return nil, fmt.Errorf("no launcher found in PATH (looked for: %s)", strings.Join(launchers, ", "))
	}
	for _, l := range launchers {
		if l != name {
			continue
		}
		if _, err := lookPath(l); err != nil {
			return nil, fmt.Errorf("launcher %q not found in PATH", l)
		}
		return newLauncher(l), nil
	}
	return nil, fmt.Errorf("unknown launcher %q (expected: auto, %s)", name, strings.Join(launchers, ", "))
}

type launcher struct {
	command string
	caps    Capabilities
}

func newLauncher(command string) *launcher {
	l := &launcher{command: command}
	switch command {
	case "rofi":
		l.caps = Capabilities{Icons: true, Markup: true, NonSelectable: true, IndexOutput: true, RowStates: true}
	case "fuzzel":
		l.caps = Capabilities{Icons: true, IndexOutput: true}
	case "wofi":
		l.caps = Capabilities{Icons: true, Markup: true}
	}
	return l
}

func (l *launcher) Capabilities() Capabilities { return l.caps }

func (l *launcher) Show(prompt string, items []Item, message string) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}
	rows := make([]Item, len(items))
	copy(rows, items)

	input, selected := l.formatInput(rows)
	cmd := exec.Command(l.command, l.buildArgs(prompt, message, rows, selected)...)
	cmd.Stdin = strings.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", l.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", l.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return l.parseSelection(selection, rows)
}

func (l *launcher) buildArgs(prompt, message string, rows []Item, selected int) []string {
	var args []string
	switch l.command {
	case "rofi":
		args = []string{"-dmenu", "-i", "-format", "i", "-no-custom", "-markup-rows", "-show-icons"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		var active []string
		for i, r := range rows {
			if r.IsActive && selectable(r) {
				active = append(active, strconv.Itoa(i))
			}
		}
		if len(active) > 0 {
			args = append(args, "-a", strings.Join(active, ","))
		}
		if selected >= 0 {
			args = append(args, "-selected-row", strconv.Itoa(selected))
		}
		if message != "" {
			args = append(args, "-mesg", message)
		}
	case "fuzzel":
		args = []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
	case "wofi":
		args = []string{"--dmenu", "--allow-markup"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}
	default:
		args = []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	}
	return args
}

// formatInput renders rows one per line and returns the row to preselect,
// the first active selectable row or else the first selectable one.
func (l *launcher) formatInput(rows []Item) (string, int) {
	if !l.caps.IndexOutput {
		seen := make(map[string]int)
		for i := range rows {
			if !selectable(rows[i]) {
				continue
			}
			key := sanitizeLabel(rows[i].Label)
			if n := seen[key]; n > 0 {
				rows[i].Label = fmt.Sprintf("%s (%d)", key, n+1)
			}
			seen[key]++
		}
	}

	lines := make([]string, 0, len(rows))
	first, firstActive := -1, -1
	for i, r := range rows {
		lines = append(lines, l.formatItem(r))
		if !selectable(r) {
			continue
		}
		if first < 0 {
			first = i
		}
		if r.IsActive && firstActive < 0 {
			firstActive = i
		}
	}
	if firstActive >= 0 {
		first = firstActive
	}
	return strings.Join(lines, "\n"), first
}

func (l *launcher) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)
	if l.caps.Markup {
		display = html.EscapeString(display)
		switch {
		case item.IsHeader:
			display = "<b>" + display + "</b>"
		case item.IsDivider:
			display = "<span foreground='#666666'>" + display + "</span>"
		}
	}
	if l.command != "rofi" {
		return display
	}

	// rofi row properties: one NUL, then key\x1fvalue pairs.
	var attrs []string
	if !selectable(item) {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" {
		attrs = append(attrs, "icon", sanitizeRofiField(item.Icon))
	}
	if len(attrs) == 0 {
		return display
	}
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (l *launcher) parseSelection(selection string, rows []Item) (Item, error) {
	if l.caps.IndexOutput {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(rows) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return rows[idx], nil
		}
	}
	for _, r := range rows {
		if sanitizeLabel(r.Label) == selection {
			return r, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func selectable(item Item) bool {
	return !item.IsHeader && !item.IsDivider
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	// 1 is "no selection", 130 is Ctrl+C.
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}
