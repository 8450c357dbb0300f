package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-service"
	"github.com/pixil98/go-town/internal/driver"
	"github.com/pixil98/go-town/internal/listener"
	"github.com/pixil98/go-town/internal/messaging"
	"github.com/pixil98/go-town/internal/profile"
	"github.com/pixil98/go-town/internal/town"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Message broker carries all town event traffic
	broker, err := cfg.Nats.BuildBroker()
	if err != nil {
		return nil, fmt.Errorf("creating broker: %w", err)
	}
	emitter := messaging.NewEmitter(broker)

	// Load town assets
	layout, err := cfg.Storage.Layout.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating layout store: %w", err)
	}
	catalogs, err := cfg.Storage.BuildCatalogs()
	if err != nil {
		return nil, err
	}
	profileStore, err := cfg.Storage.Profiles.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating profile store: %w", err)
	}

	// Assemble the town
	areas, err := town.BuildAreas(layout.GetAll(), catalogs, profile.NewStore(profileStore), emitter)
	if err != nil {
		return nil, fmt.Errorf("building areas: %w", err)
	}
	announcer, err := cfg.Town.BuildAnnouncer()
	if err != nil {
		return nil, fmt.Errorf("building announcer: %w", err)
	}
	t := town.NewTown(emitter, areas, announcer)

	gatekeeper, err := cfg.Town.BuildGatekeeper()
	if err != nil {
		return nil, fmt.Errorf("building gatekeeper: %w", err)
	}
	cm := listener.NewConnectionManager(t, gatekeeper, broker, emitter)

	// Create listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lst, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lst
	}

	// Periodic occupancy reporting
	var opts []driver.TownDriverOpt
	if cfg.TickInterval != "" {
		d, err := time.ParseDuration(cfg.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("parsing tick_interval: %w", err)
		}
		opts = append(opts, driver.WithTickLength(d))
	}
	drv := driver.NewTownDriver([]driver.Manager{t}, opts...)

	return service.WorkerList{
		"broker":    broker,
		"driver":    drv,
		"listeners": &listeners,
	}, nil
}
