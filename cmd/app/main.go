package main

import (
	"go.uber.org/zap"

	"github.com/shuliakovsky/turn-coordinator/pkg/coordinator"
	"github.com/shuliakovsky/turn-coordinator/pkg/events"
	"github.com/shuliakovsky/turn-coordinator/pkg/ledger"
	"github.com/shuliakovsky/turn-coordinator/pkg/metrics"
	"github.com/shuliakovsky/turn-coordinator/pkg/turn"
)

func main() {
	PrintVersion()

	cfg := loadConfig()
	logger := initLogger()
	defer logger.Sync()

	metrics.Init()

	store := ledger.NewStore()
	tracker := turn.New(1)
	hub := events.NewHub(logger)

	if cfg.AdminEnabled {
		registerRoutes(store, tracker, hub)
		go startAdminServer(cfg.AdminHost, cfg.AdminPort, logger)
	}
	startStatsLoop(store, tracker, logger)

	coord := coordinator.New(coordinator.Config{
		PollInterval: cfg.PollInterval,
		TurnTimeout:  cfg.TurnTimeout,
	}, tracker, store, hub, logger)

	ln, err := coordinator.Listen(cfg.Host, cfg.Port)
	if err != nil {
		logger.Fatal("listen_failed", zap.String("host", cfg.Host), zap.String("port", cfg.Port), zap.Error(err))
	}
	logger.Info("listening", zap.String("addr", ln.Addr().String()))

	if err := coord.AcceptPeers(ln); err != nil {
		logger.Fatal("accept_failed", zap.Error(err))
	}

	// No reconnection is supported once both identities are used up, so
	// there is nothing left to coordinate.
	logger.Info("all_peers_disconnected")
}
