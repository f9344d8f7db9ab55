//go:build !linux

package daemon

import (
	"context"
	"errors"
)

var errUnsupported = errors.New("framewm run requires an X11 display and is only supported on linux")

// Daemon is unavailable on this platform.
type Daemon struct{}

func New(opts Options) (*Daemon, error) { return nil, errUnsupported }

func (d *Daemon) Name() string { return "" }

func (d *Daemon) Run(ctx context.Context) error { return errUnsupported }

func (d *Daemon) Reload() error { return errUnsupported }
