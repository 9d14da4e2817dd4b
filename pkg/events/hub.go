// Package events fans observed exchanges out to WebSocket subscribers on
// the admin endpoint. Purely an observation surface: the turn protocol
// never depends on it.
package events

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/shuliakovsky/turn-coordinator/pkg/metrics"
)

type Event struct {
	Peer     int    `json:"peer"`
	Name     string `json:"name"`
	Number   int64  `json:"number"`
	TurnNext int    `json:"turnNext"`
	TS       int64  `json:"ts"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Hub struct {
	mu     sync.Mutex
	subs   map[*websocket.Conn]chan Event
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{subs: make(map[*websocket.Conn]chan Event), logger: logger}
}

// Publish never blocks the caller; a subscriber that cannot keep up is
// dropped.
func (h *Hub) Publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, ch := range h.subs {
		select {
		case ch <- e:
		default:
			h.logger.Warn("ws_subscriber_slow", zap.String("addr", conn.RemoteAddr().String()))
			metrics.WSErrors.Inc()
			close(ch)
			delete(h.subs, conn)
		}
	}
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws_upgrade_failed", zap.Error(err))
		metrics.WSErrors.Inc()
		return
	}

	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subs[conn] = ch
	h.mu.Unlock()

	h.logger.Info("ws_subscribed", zap.String("addr", conn.RemoteAddr().String()))
	metrics.WSClients.Inc()

	// Reads are only used to detect the subscriber going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()

	for e := range ch {
		if err := conn.WriteJSON(e); err != nil {
			h.logger.Warn("ws_write_error", zap.Error(err))
			metrics.WSErrors.Inc()
			h.drop(conn)
			return
		}
	}
	conn.Close()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if ch, ok := h.subs[conn]; ok {
		close(ch)
		delete(h.subs, conn)
	}
	h.mu.Unlock()
	conn.Close()
}
