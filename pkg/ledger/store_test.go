package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shuliakovsky/turn-coordinator/pkg/wire"
)

func TestStore_RecordAndSnapshot(t *testing.T) {
	s := NewStore()
	s.Connected(1, "sess-1", "127.0.0.1:40001")
	s.Connected(2, "sess-2", "127.0.0.1:40002")

	s.Record(1, wire.Payload{Name: "A", Number: 1})
	s.Record(2, wire.Payload{Name: "B", Number: 2})
	s.Record(1, wire.Payload{Name: "A", Number: 3})

	snap := s.Snapshot()
	require.EqualValues(t, 3, snap.Total)
	require.Len(t, snap.Peers, 2)
	require.Equal(t, "A", snap.Peers[0].Name)
	require.EqualValues(t, 2, snap.Peers[0].Count)
	require.EqualValues(t, 3, snap.Peers[0].LastNumber)
	require.True(t, snap.Peers[0].Connected)

	require.Equal(t, []int{1, 2, 1}, s.TurnSequence())
	require.Equal(t, []Exchange{
		{Peer: 1, Name: "A", Number: 1},
		{Peer: 2, Name: "B", Number: 2},
		{Peer: 1, Name: "A", Number: 3},
	}, s.Exchanges())
}

func TestStore_Disconnected(t *testing.T) {
	s := NewStore()
	s.Connected(1, "sess-1", "127.0.0.1:40001")
	s.Disconnected(1)

	snap := s.Snapshot()
	require.Len(t, snap.Peers, 1)
	require.False(t, snap.Peers[0].Connected)
}
