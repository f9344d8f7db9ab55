package daemon

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// CheckpointConfig holds configuration for the checkpointer.
type CheckpointConfig struct {
	// Interval between saves. Zero or less disables periodic saves.
	Interval time.Duration
	Logger   *slog.Logger
}

// Checkpointer periodically persists the frame geometry so a crash loses
// at most one interval of changes.
type Checkpointer struct {
	interval time.Duration
	save     func() error
	logger   *slog.Logger
}

// NewCheckpointer creates a checkpointer calling save on every tick.
func NewCheckpointer(cfg CheckpointConfig, save func() error) *Checkpointer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Checkpointer{
		interval: cfg.Interval,
		save:     save,
		logger:   logger,
	}
}

// Interval returns the configured save interval.
func (c *Checkpointer) Interval() time.Duration { return c.interval }

// Run saves on every tick until ctx is cancelled. It returns immediately
// when periodic saves are disabled.
func (c *Checkpointer) Run(ctx context.Context) {
	if c.interval <= 0 {
		c.logger.Debug("checkpoints disabled")
		return
	}
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Debug("checkpointer started", "interval", c.interval)

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("checkpointer stopped")
			return
		case <-ticker.C:
			c.checkpoint()
		}
	}
}

func (c *Checkpointer) checkpoint() {
	// Recover from panics to prevent crashing the frame
	defer func() {
		if err := recover(); err != nil {
			c.logger.Error("checkpoint panic recovered", "error", err)
		}
	}()

	if err := c.save(); err != nil {
		c.logger.Warn("checkpoint failed", "error", err)
	}
}

// CheckpointNow triggers an immediate save.
func (c *Checkpointer) CheckpointNow() {
	c.checkpoint()
}
