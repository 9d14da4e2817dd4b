// Package coordinator owns the TCP side of the turn protocol: a listener
// that admits exactly two peers, and one handler goroutine per connection
// driving the GO/WAIT exchange against the shared turn tracker.
package coordinator

import (
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shuliakovsky/turn-coordinator/pkg/events"
	"github.com/shuliakovsky/turn-coordinator/pkg/ledger"
	"github.com/shuliakovsky/turn-coordinator/pkg/metrics"
	"github.com/shuliakovsky/turn-coordinator/pkg/turn"
	"github.com/shuliakovsky/turn-coordinator/pkg/wire"
)

type Config struct {
	// PollInterval is the WAIT re-send cadence for a handler parked off-turn.
	PollInterval time.Duration
	// TurnTimeout, when non-zero, forfeits the turn of a holder that stays
	// silent after GO. Zero keeps the original semantics: a silent holder
	// stalls the session indefinitely.
	TurnTimeout time.Duration
}

type Coordinator struct {
	cfg     Config
	tracker *turn.Tracker
	store   *ledger.Store
	hub     *events.Hub
	logger  *zap.Logger
}

func New(cfg Config, tracker *turn.Tracker, store *ledger.Store, hub *events.Hub, logger *zap.Logger) *Coordinator {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 100 * time.Millisecond
	}
	return &Coordinator{cfg: cfg, tracker: tracker, store: store, hub: hub, logger: logger}
}

// Listen binds the coordinator endpoint. A bind failure here is the one
// startup error the process surfaces loudly and dies on.
func Listen(host, port string) (net.Listener, error) {
	return net.Listen("tcp", net.JoinHostPort(host, port))
}

type peerConn struct {
	id      int
	session string
	addr    string
	conn    *wire.Conn
}

// AcceptPeers admits exactly two connections, identity 1 then identity 2 in
// arrival order, and blocks until both handlers have terminated. Accept is
// never called a third time: a later connection attempt sits in the listen
// backlog and is never serviced, and a peer cannot rejoin without a process
// restart. Both are documented scope constraints of the two-party design.
func (c *Coordinator) AcceptPeers(ln net.Listener) error {
	var wg sync.WaitGroup
	for id := 1; id <= 2; id++ {
		nc, err := ln.Accept()
		if err != nil {
			return err
		}
		pc := &peerConn{
			id:      id,
			session: uuid.NewString(),
			addr:    nc.RemoteAddr().String(),
			conn:    wire.NewConn(nc),
		}
		c.store.Connected(pc.id, pc.session, pc.addr)
		c.logger.Info("peer_connected",
			zap.Int("id", pc.id),
			zap.String("session", pc.session),
			zap.String("addr", pc.addr),
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.handle(pc)
		}()
	}
	wg.Wait()
	return nil
}

func (c *Coordinator) handle(pc *peerConn) {
	defer func() {
		pc.conn.Close()
		c.store.Disconnected(pc.id)
		metrics.DisconnectsTotal.WithLabelValues(peerLabel(pc.id)).Inc()
		c.logger.Info("peer_disconnected", zap.Int("id", pc.id), zap.String("addr", pc.addr))
	}()

	for {
		var err error
		if c.tracker.Holds(pc.id) {
			err = c.exchange(pc)
		} else {
			err = c.awaitTurn(pc)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.logger.Warn("peer_transport_error", zap.Int("id", pc.id), zap.String("addr", pc.addr), zap.Error(err))
			}
			return
		}
	}
}

// exchange grants the turn: send GO, read exactly one payload, advance.
// A malformed line is logged and dropped with the turn unchanged, so the
// same peer is offered GO again on the next pass.
func (c *Coordinator) exchange(pc *peerConn) error {
	if err := c.signal(pc, wire.SignalGo); err != nil {
		return err
	}

	if c.cfg.TurnTimeout > 0 {
		pc.conn.SetReadDeadline(time.Now().Add(c.cfg.TurnTimeout))
	}
	line, err := pc.conn.ReadLine()
	if c.cfg.TurnTimeout > 0 {
		pc.conn.SetReadDeadline(time.Time{})
	}
	if err != nil {
		var ne net.Error
		if c.cfg.TurnTimeout > 0 && errors.As(err, &ne) && ne.Timeout() {
			c.logger.Warn("turn_forfeited", zap.Int("id", pc.id), zap.Duration("timeout", c.cfg.TurnTimeout))
			metrics.TurnTimeouts.Inc()
			c.advance(pc.id)
			return nil
		}
		return err
	}

	p, err := wire.ParsePayload(line)
	if err != nil {
		c.logger.Warn("payload_malformed", zap.Int("id", pc.id), zap.Error(err))
		metrics.MalformedTotal.WithLabelValues(peerLabel(pc.id)).Inc()
		return nil
	}

	c.store.Record(pc.id, p)
	metrics.PayloadsTotal.WithLabelValues(peerLabel(pc.id)).Inc()
	c.logger.Info("payload_received",
		zap.Int("id", pc.id),
		zap.String("name", p.Name),
		zap.Int64("number", p.Number),
	)
	c.advance(pc.id)

	if c.hub != nil {
		c.hub.Publish(events.Event{
			Peer:     pc.id,
			Name:     p.Name,
			Number:   p.Number,
			TurnNext: c.tracker.Current(),
			TS:       time.Now().UnixMilli(),
		})
	}
	return nil
}

// awaitTurn parks the handler until the turn flips to it, re-sending WAIT
// at the poll interval so the peer keeps seeing the signal cadence it
// expects. No busy loop: between ticks the handler blocks on the tracker's
// transition notification.
func (c *Coordinator) awaitTurn(pc *peerConn) error {
	if err := c.signal(pc, wire.SignalWait); err != nil {
		return err
	}

	changed := c.tracker.Changed()
	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-changed:
			return nil
		case <-ticker.C:
			if c.tracker.Holds(pc.id) {
				return nil
			}
			if err := c.signal(pc, wire.SignalWait); err != nil {
				return err
			}
		}
	}
}

func (c *Coordinator) signal(pc *peerConn, s wire.Signal) error {
	if err := pc.conn.WriteSignal(s); err != nil {
		return err
	}
	metrics.SignalsTotal.WithLabelValues(peerLabel(pc.id), string(s)).Inc()
	return nil
}

func (c *Coordinator) advance(id int) {
	if err := c.tracker.Advance(id); err != nil {
		// Only the holder runs the exchange path, so this cannot fire.
		c.logger.Error("turn_advance_failed", zap.Int("id", id), zap.Error(err))
		return
	}
	metrics.CurrentTurn.Set(float64(c.tracker.Current()))
}

func peerLabel(id int) string { return strconv.Itoa(id) }
