package main

import (
	"encoding/json"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/shuliakovsky/turn-coordinator/pkg/docs"
	_ "github.com/shuliakovsky/turn-coordinator/pkg/docs"
	"github.com/shuliakovsky/turn-coordinator/pkg/events"
	"github.com/shuliakovsky/turn-coordinator/pkg/ledger"
	"github.com/shuliakovsky/turn-coordinator/pkg/metrics"
	"github.com/shuliakovsky/turn-coordinator/pkg/turn"
)

func registerRoutes(store *ledger.Store, tracker *turn.Tracker, hub *events.Hub) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	http.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		snap := store.Snapshot()
		res := struct {
			Turn  int                `json:"turn"`
			Total int64              `json:"total"`
			Peers []ledger.PeerStats `json:"peers"`
		}{Turn: tracker.Current(), Total: snap.Total, Peers: snap.Peers}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	})

	http.Handle("/metrics", metrics.Handler())
	http.HandleFunc("/ws", hub.ServeWS)

	// Swagger
	http.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/swagger.json"),
		httpSwagger.InstanceName("swagger"),
	))
	http.HandleFunc("/swagger/swagger.json", docs.JSONHandler)
}
