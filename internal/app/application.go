package app

import (
	"context"
	"log/slog"

	"subwaymap.org/internal/appconf"
	"subwaymap.org/internal/metrics"
	"subwaymap.org/internal/network"
)

// Store is the segment repository backing the application.
type Store interface {
	network.Repository
	Ping(ctx context.Context) error
}

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config      appconf.Config
	Logger      *slog.Logger
	Store       Store
	PathService *network.PathService
	Metrics     *metrics.Metrics
}

// New wires a PathService and a metrics registry around store.
func New(cfg appconf.Config, logger *slog.Logger, store Store) *Application {
	if logger == nil {
		logger = slog.Default()
	}
	return &Application{
		Config:      cfg,
		Logger:      logger,
		Store:       store,
		PathService: network.NewPathService(store, logger),
		Metrics:     metrics.New(),
	}
}
