package peerclient

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shuliakovsky/turn-coordinator/pkg/wire"
)

// scriptedCoordinator accepts one connection and hands it to the script.
func scriptedCoordinator(t *testing.T, script func(*wire.Conn)) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		nc, err := ln.Accept()
		if err != nil {
			return
		}
		defer nc.Close()
		script(wire.NewConn(nc))
	}()
	return ln.Addr().String()
}

func TestRun_SendsOnGoAndSteps(t *testing.T) {
	got := make(chan wire.Payload, 2)
	addr := scriptedCoordinator(t, func(c *wire.Conn) {
		for i := 0; i < 2; i++ {
			c.WriteSignal(wire.SignalWait)
			c.WriteSignal(wire.SignalGo)
			line, err := c.ReadLine()
			if err != nil {
				t.Errorf("coordinator read: %v", err)
				return
			}
			p, err := wire.ParsePayload(line)
			if err != nil {
				t.Errorf("coordinator parse: %v", err)
				return
			}
			got <- p
		}
	})

	cl := New(Config{Addr: addr, Name: "T", Start: 5, Step: 1}, zap.NewNop())
	done := make(chan error, 1)
	go func() { done <- cl.Run(context.Background()) }()

	require.Equal(t, wire.Payload{Name: "T", Number: 5}, recv(t, got))
	require.Equal(t, wire.Payload{Name: "T", Number: 6}, recv(t, got))

	// Coordinator closing the connection ends the loop without error.
	require.NoError(t, recvErr(t, done))
}

func TestRun_SkipsUnknownSignal(t *testing.T) {
	got := make(chan wire.Payload, 1)
	addr := scriptedCoordinator(t, func(c *wire.Conn) {
		c.WriteSignal(wire.Signal("BOGUS"))
		c.WriteSignal(wire.SignalGo)
		line, err := c.ReadLine()
		if err != nil {
			t.Errorf("coordinator read: %v", err)
			return
		}
		p, err := wire.ParsePayload(line)
		if err != nil {
			t.Errorf("coordinator parse: %v", err)
			return
		}
		got <- p
	})

	cl := New(Config{Addr: addr, Name: "T", Start: 1}, zap.NewNop())
	done := make(chan error, 1)
	go func() { done <- cl.Run(context.Background()) }()

	require.Equal(t, wire.Payload{Name: "T", Number: 1}, recv(t, got))
	require.NoError(t, recvErr(t, done))
}

func TestRun_CancelUnblocksRead(t *testing.T) {
	addr := scriptedCoordinator(t, func(c *wire.Conn) {
		// Say nothing; the peer must stay blocked on the read.
		time.Sleep(2 * time.Second)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cl := New(Config{Addr: addr, Name: "T", Start: 1}, zap.NewNop())
	done := make(chan error, 1)
	go func() { done <- cl.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	require.ErrorIs(t, recvErr(t, done), context.Canceled)
}

func TestRun_DialFailure(t *testing.T) {
	cl := New(Config{Addr: "127.0.0.1:1", Name: "T"}, zap.NewNop())
	require.Error(t, cl.Run(context.Background()))
}

func recv(t *testing.T, ch chan wire.Payload) wire.Payload {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for payload")
		return wire.Payload{}
	}
}

func recvErr(t *testing.T, ch chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for client exit")
		return nil
	}
}
