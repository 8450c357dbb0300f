package driver

import (
	"context"
	"time"
)

const (
	DefaultTickLength = time.Second * 30
)

// Manager is anything that wants periodic attention from the driver.
type Manager interface {
	Tick(context.Context) error
}

// TownDriver ticks its managers on a fixed interval. It is a service
// worker: Start blocks until the context is canceled.
type TownDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewTownDriver(managers []Manager, opts ...TownDriverOpt) *TownDriver {
	d := &TownDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *TownDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *TownDriver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
