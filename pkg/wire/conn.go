package wire

import (
	"bufio"
	"fmt"
	"net"
	"strings"
	"time"
)

// Conn frames the text protocol over a net.Conn. Every message is a single
// newline-terminated line; the original fixed-size reads had no delimiter
// at all, which is exactly the framing ambiguity this wrapper removes.
type Conn struct {
	nc net.Conn
	r  *bufio.Reader
	w  *bufio.Writer
}

func NewConn(nc net.Conn) *Conn {
	return &Conn{
		nc: nc,
		r:  bufio.NewReaderSize(nc, MaxLineBytes),
		w:  bufio.NewWriterSize(nc, MaxLineBytes),
	}
}

func (c *Conn) RemoteAddr() string { return c.nc.RemoteAddr().String() }

func (c *Conn) Close() error { return c.nc.Close() }

func (c *Conn) SetReadDeadline(t time.Time) error { return c.nc.SetReadDeadline(t) }

// ReadLine returns the next line without its terminator. CR before the
// newline is tolerated. A line longer than MaxLineBytes is a protocol error.
func (c *Conn) ReadLine() (string, error) {
	b, err := c.r.ReadSlice('\n')
	if err != nil {
		if err == bufio.ErrBufferFull {
			return "", fmt.Errorf("line exceeds %d bytes", MaxLineBytes)
		}
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func (c *Conn) WriteSignal(s Signal) error { return c.writeLine(string(s)) }

func (c *Conn) WritePayload(p Payload) error { return c.writeLine(p.String()) }

func (c *Conn) writeLine(s string) error {
	if _, err := c.w.WriteString(s); err != nil {
		return err
	}
	if err := c.w.WriteByte('\n'); err != nil {
		return err
	}
	return c.w.Flush()
}
