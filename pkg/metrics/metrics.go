package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
)

var (
	PayloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "turnc_payloads_total", Help: "Accepted payloads per peer"},
		[]string{"peer"},
	)
	MalformedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "turnc_malformed_total", Help: "Malformed payload lines per peer"},
		[]string{"peer"},
	)
	DisconnectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "turnc_disconnects_total", Help: "Handler terminations per peer"},
		[]string{"peer"},
	)
	SignalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "turnc_signals_total", Help: "GO/WAIT signals sent per peer"},
		[]string{"peer", "signal"},
	)
	CurrentTurn = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "turnc_current_turn", Help: "Identity currently holding the turn"},
	)
	TurnTimeouts = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "turnc_turn_timeouts_total", Help: "Turns forfeited on holder timeout"},
	)
	WSClients = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ws_clients_total", Help: "Total WebSocket event subscribers"},
	)
	WSErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "ws_errors_total", Help: "WebSocket subscriber errors"},
	)
)

func Init() {
	prometheus.MustRegister(PayloadsTotal, MalformedTotal, DisconnectsTotal, SignalsTotal)
	prometheus.MustRegister(CurrentTurn, TurnTimeouts, WSClients, WSErrors)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
