// Package peerclient implements the peer side of the turn protocol: dial
// the coordinator, block on its signals, and send one identified payload
// per GO grant.
package peerclient

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/proxy"

	"github.com/shuliakovsky/turn-coordinator/pkg/wire"
)

type Config struct {
	Addr     string
	Name     string
	Start    int64
	Step     int64
	Throttle time.Duration
	// Socks5, when set, routes the dial through a SOCKS5 proxy.
	Socks5 string
}

type Client struct {
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Step == 0 {
		cfg.Step = 2
	}
	return &Client{cfg: cfg, logger: logger}
}

func (c *Client) dial() (net.Conn, error) {
	if c.cfg.Socks5 != "" {
		dialer, err := proxy.SOCKS5("tcp", c.cfg.Socks5, nil, proxy.Direct)
		if err != nil {
			return nil, err
		}
		return dialer.Dial("tcp", c.cfg.Addr)
	}
	return net.Dial("tcp", c.cfg.Addr)
}

// Run drives the signal loop until the transport drops or ctx is canceled.
// The peer never closes the connection on its own in steady state; a
// coordinator-side close ends the loop without error.
func (c *Client) Run(ctx context.Context) error {
	nc, err := c.dial()
	if err != nil {
		return err
	}
	defer nc.Close()

	// Cancellation unblocks the pending read by closing the socket.
	stop := context.AfterFunc(ctx, func() { nc.Close() })
	defer stop()

	conn := wire.NewConn(nc)
	c.logger.Info("coordinator_connected",
		zap.String("name", c.cfg.Name),
		zap.String("addr", c.cfg.Addr),
	)

	number := c.cfg.Start
	for {
		line, err := conn.ReadLine()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				c.logger.Info("coordinator_closed", zap.String("name", c.cfg.Name))
				return nil
			}
			return err
		}

		switch wire.Signal(line) {
		case wire.SignalGo:
			p := wire.Payload{Name: c.cfg.Name, Number: number}
			if err := conn.WritePayload(p); err != nil {
				return err
			}
			c.logger.Info("payload_sent", zap.String("name", p.Name), zap.Int64("number", p.Number))
			number += c.cfg.Step
			// Flow-control throttle, not a protocol requirement.
			if c.cfg.Throttle > 0 {
				select {
				case <-time.After(c.cfg.Throttle):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		case wire.SignalWait:
			// The next blocking read is the idle.
		default:
			c.logger.Warn("unknown_signal", zap.String("name", c.cfg.Name), zap.String("signal", line))
		}
	}
}
