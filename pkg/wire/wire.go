package wire

// Signal is a coordinator-to-peer transmit-permission token.
type Signal string

const (
	SignalGo   Signal = "GO"
	SignalWait Signal = "WAIT"
)

// MaxLineBytes bounds a single protocol line. A peer that sends more than
// this without a newline is violating the protocol.
const MaxLineBytes = 1024
