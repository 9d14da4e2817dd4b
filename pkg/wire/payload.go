package wire

import (
	"fmt"
	"strconv"
	"strings"
)

// Payload is one peer-to-coordinator message, serialized as "name:number".
type Payload struct {
	Name   string `json:"name"`
	Number int64  `json:"number"`
}

func ParsePayload(line string) (Payload, error) {
	name, num, ok := strings.Cut(line, ":")
	if !ok {
		return Payload{}, fmt.Errorf("payload %q: missing colon", line)
	}
	if name == "" {
		return Payload{}, fmt.Errorf("payload %q: empty name", line)
	}
	n, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return Payload{}, fmt.Errorf("payload %q: bad number: %w", line, err)
	}
	return Payload{Name: name, Number: n}, nil
}

func (p Payload) String() string {
	return p.Name + ":" + strconv.FormatInt(p.Number, 10)
}
