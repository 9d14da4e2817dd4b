package roster

import "time"

type Peer struct {
	Name       string `yaml:"name" json:"name"`
	Start      int64  `yaml:"start" json:"start"`
	Step       int64  `yaml:"step" json:"step"`
	ThrottleMs int    `yaml:"throttleMs" json:"throttleMs"`
}

func (p Peer) Throttle() time.Duration {
	return time.Duration(p.ThrottleMs) * time.Millisecond
}

type Roster struct {
	Peers []Peer `yaml:"peers" json:"peers"`
}
