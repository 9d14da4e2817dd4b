package roster

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	yml := `
peers:
  - name: Client1
    start: 1
  - name: Client2
    start: 2
    step: 4
    throttleMs: 250
`
	path := filepath.Join(dir, "peers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	require.Len(t, r.Peers, 2)

	require.Equal(t, "Client1", r.Peers[0].Name)
	require.EqualValues(t, 1, r.Peers[0].Start)
	require.EqualValues(t, 2, r.Peers[0].Step)
	require.Equal(t, time.Second, r.Peers[0].Throttle())

	require.EqualValues(t, 4, r.Peers[1].Step)
	require.Equal(t, 250*time.Millisecond, r.Peers[1].Throttle())
}

func TestLoad_SubstitutesEnv(t *testing.T) {
	t.Setenv("FIRST_PEER_NAME", "NodeA")
	dir := t.TempDir()
	yml := `
peers:
  - name: ${FIRST_PEER_NAME}
    start: 1
`
	path := filepath.Join(dir, "peers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "NodeA", r.Peers[0].Name)
}

func TestLoad_RejectsColonInName(t *testing.T) {
	dir := t.TempDir()
	yml := `
peers:
  - name: "a:b"
    start: 1
`
	path := filepath.Join(dir, "peers.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	_, err := Load(path)
	require.ErrorContains(t, err, "colon")
}

func TestLoad_RejectsEmptyRoster(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "peers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("peers: []\n"), 0644))

	_, err := Load(path)
	require.ErrorContains(t, err, "empty roster")
}
