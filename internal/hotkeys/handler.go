package hotkeys

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/1broseidon/framewm/internal/config"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Actions are the callbacks hotkeys trigger. They run on the X event loop.
// Nil actions are not bound.
type Actions struct {
	Maximize  func()
	Minimize  func()
	Quit      func()
	SnapLeft  func()
	SnapRight func()
}

type binding struct {
	name     string
	sequence string
	action   func()
}

// bindings pairs every configured key sequence with its action. Empty
// sequences and nil actions are skipped.
func bindings(keys config.HotkeyConfig, a Actions) []binding {
	all := []binding{
		{"maximize", keys.Maximize, a.Maximize},
		{"minimize", keys.Minimize, a.Minimize},
		{"quit", keys.Quit, a.Quit},
		{"snap_left", keys.SnapLeft, a.SnapLeft},
		{"snap_right", keys.SnapRight, a.SnapRight},
	}
	out := all[:0]
	for _, b := range all {
		b.sequence = strings.TrimSpace(b.sequence)
		if b.sequence == "" || b.action == nil {
			continue
		}
		out = append(out, b)
	}
	return out
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
	bound  []string
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler grabbing keys on root.
func NewHandler(xu *xgbutil.XUtil, root xproto.Window, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:     xu,
		root:   root,
		logger: logger,
	}
}

// Bind replaces the current bindings. A sequence that cannot be grabbed is
// reported but does not stop the others from binding.
func (h *Handler) Bind(keys config.HotkeyConfig, a Actions) error {
	h.Unbind()

	var errs []error
	for _, b := range bindings(keys, a) {
		b := b
		if err := h.RegisterFunc(b.sequence, func() {
			h.logger.Debug("hotkey triggered", "action", b.name, "keys", b.sequence)
			b.action()
		}); err != nil {
			errs = append(errs, fmt.Errorf("hotkeys.%s %q: %w", b.name, b.sequence, err))
			continue
		}
		h.bound = append(h.bound, b.name+"="+b.sequence)
	}
	h.logger.Info("hotkeys bound", "bindings", h.bound)
	return errors.Join(errs...)
}

// Bound lists the active bindings as name=sequence.
func (h *Handler) Bound() []string {
	return append([]string(nil), h.bound...)
}

// Unbind releases every key grabbed on root.
func (h *Handler) Unbind() {
	if len(h.bound) == 0 {
		return
	}
	keybind.Detach(h.xu, h.root)
	h.bound = nil
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = ignoreMasks(base)
}

// ignoreMasks returns every combination of the given lock masks, including
// the empty one.
func ignoreMasks(base []uint16) []uint16 {
	unique := map[uint16]struct{}{0: {}}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}
	return ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
