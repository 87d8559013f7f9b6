package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second / 10
)

// Manager is anything advanced once per frame.
type Manager interface {
	Tick(context.Context) error
}

// FrameDriver ticks its managers at a fixed rate until the context ends.
type FrameDriver struct {
	tickLength time.Duration
	managers   []Manager
	frames     uint64
}

func NewFrameDriver(managers []Manager, opts ...FrameDriverOpt) *FrameDriver {
	d := &FrameDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *FrameDriver) Start(ctx context.Context) error {
	slog.InfoContext(ctx, "starting frame driver", "tick", d.tickLength, "managers", len(d.managers))

	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "frame driver stopped", "frames", d.frames)
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// Tick advances every manager by one frame, stopping at the first error.
func (d *FrameDriver) Tick(ctx context.Context) error {
	d.frames++
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
