package main

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/shuliakovsky/turn-coordinator/pkg/peerclient"
	"github.com/shuliakovsky/turn-coordinator/pkg/roster"
)

func main() {
	PrintVersion()

	cfg := loadConfig()
	logger := initLogger()
	defer logger.Sync()

	ctx := context.Background()

	if cfg.RosterFile != "" {
		runRoster(ctx, cfg, logger)
		return
	}

	cl := peerclient.New(peerclient.Config{
		Addr:     cfg.Addr,
		Name:     cfg.Name,
		Start:    cfg.Start,
		Step:     cfg.Step,
		Throttle: cfg.Throttle,
		Socks5:   cfg.Socks5,
	}, logger)
	if err := cl.Run(ctx); err != nil {
		logger.Fatal("peer_stopped", zap.String("name", cfg.Name), zap.Error(err))
	}
}

// runRoster launches one peer goroutine per roster entry, the in-process
// equivalent of starting several peer binaries by hand.
func runRoster(ctx context.Context, cfg config, logger *zap.Logger) {
	ros, err := roster.Load(cfg.RosterFile)
	if err != nil {
		logger.Fatal("roster_load_failed", zap.String("file", cfg.RosterFile), zap.Error(err))
	}

	var wg sync.WaitGroup
	for _, p := range ros.Peers {
		wg.Add(1)
		go func(p roster.Peer) {
			defer wg.Done()
			cl := peerclient.New(peerclient.Config{
				Addr:     cfg.Addr,
				Name:     p.Name,
				Start:    p.Start,
				Step:     p.Step,
				Throttle: p.Throttle(),
				Socks5:   cfg.Socks5,
			}, logger)
			if err := cl.Run(ctx); err != nil {
				logger.Warn("peer_stopped", zap.String("name", p.Name), zap.Error(err))
			}
		}(p)
	}
	wg.Wait()
}
