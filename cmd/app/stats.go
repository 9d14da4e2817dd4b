package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/shuliakovsky/turn-coordinator/pkg/ledger"
	"github.com/shuliakovsky/turn-coordinator/pkg/turn"
)

func startStatsLoop(store *ledger.Store, tracker *turn.Tracker, logger *zap.Logger) {
	go func() {
		t := time.NewTicker(30 * time.Second)
		defer t.Stop()
		for range t.C {
			snap := store.Snapshot()
			fields := []zap.Field{
				zap.Int("turn", tracker.Current()),
				zap.Int64("exchanges", snap.Total),
			}
			for _, p := range snap.Peers {
				if p.Connected && p.Name != "" {
					fields = append(fields, zap.Int64(p.Name, p.LastNumber))
				}
			}
			logger.Info("exchange_stats", fields...)
		}
	}()
}
