package command

import (
	"fmt"

	"github.com/pixil98/go-service"

	"github.com/halcyon-games/progression/internal/messaging"
	"github.com/halcyon-games/progression/internal/progression"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Telemetry bus
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}
	telemetry := messaging.NewTelemetryPublisher(natsServer)

	// External store adapters
	titleStore, err := cfg.Title.BuildStore()
	if err != nil {
		return nil, fmt.Errorf("creating title store: %w", err)
	}
	players := cfg.Record.BuildClient()

	// The progression engine and its listener
	engine := progression.NewEngine(cfg.Engine.engineConfig(), titleStore, players, telemetry)
	httpListener := cfg.Listener.BuildListener(engine)

	return service.WorkerList{
		"nats":     natsServer,
		"listener": httpListener,
	}, nil
}
