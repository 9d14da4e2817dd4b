// Package ledger records what the coordinator has observed: which peers are
// attached and the ordered sequence of accepted payloads. It feeds the
// /status endpoint and lets tests assert alternation without poking at the
// handlers.
package ledger

import (
	"sync"
	"time"

	"github.com/shuliakovsky/turn-coordinator/pkg/wire"
)

// seqCap bounds the retained exchange history.
const seqCap = 4096

type PeerStats struct {
	ID         int       `json:"id"`
	SessionID  string    `json:"sessionId"`
	Addr       string    `json:"addr"`
	Name       string    `json:"name,omitempty"`
	Count      int64     `json:"count"`
	LastNumber int64     `json:"lastNumber"`
	Connected  bool      `json:"connected"`
	LastSeen   time.Time `json:"lastSeen"`
}

type Exchange struct {
	Peer   int    `json:"peer"`
	Name   string `json:"name"`
	Number int64  `json:"number"`
}

type Snapshot struct {
	Peers []PeerStats `json:"peers"`
	Total int64       `json:"total"`
}

type Store struct {
	mu    sync.RWMutex
	peers map[int]*PeerStats
	seq   []Exchange
	total int64
}

func NewStore() *Store {
	return &Store{peers: make(map[int]*PeerStats)}
}

func (s *Store) Connected(id int, sessionID, addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peers[id] = &PeerStats{
		ID:        id,
		SessionID: sessionID,
		Addr:      addr,
		Connected: true,
		LastSeen:  time.Now(),
	}
}

func (s *Store) Disconnected(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.peers[id]; ok {
		p.Connected = false
		p.LastSeen = time.Now()
	}
}

func (s *Store) Record(id int, p wire.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.peers[id]; ok {
		st.Name = p.Name
		st.Count++
		st.LastNumber = p.Number
		st.LastSeen = time.Now()
	}
	if len(s.seq) < seqCap {
		s.seq = append(s.seq, Exchange{Peer: id, Name: p.Name, Number: p.Number})
	}
	s.total++
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Snapshot{Total: s.total, Peers: make([]PeerStats, 0, len(s.peers))}
	for id := 1; id <= 2; id++ {
		if p, ok := s.peers[id]; ok {
			out.Peers = append(out.Peers, *p)
		}
	}
	return out
}

// Exchanges returns a copy of the retained payload history in arrival order.
func (s *Store) Exchanges() []Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Exchange, len(s.seq))
	copy(out, s.seq)
	return out
}

// TurnSequence returns just the identity order of accepted payloads.
func (s *Store) TurnSequence() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, len(s.seq))
	for i, e := range s.seq {
		out[i] = e.Peer
	}
	return out
}

func (s *Store) Total() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total
}
