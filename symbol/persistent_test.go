package symbol

import (
	"bytes"
	"testing"

	"github.com/khonsulabs/pot/format"
	"github.com/khonsulabs/pot/snapshot"
	"github.com/stretchr/testify/require"
)

func TestPersistentMap_PushLookup(t *testing.T) {
	m := NewPersistentMap()

	id, fresh := m.Push("host")
	require.True(t, fresh)

	_, fresh = m.Push("host")
	require.False(t, fresh)

	got, ok := m.Lookup("host")
	require.True(t, ok)
	require.Equal(t, id, got)

	name, err := m.LookupID(id)
	require.NoError(t, err)
	require.Equal(t, "host", name)
}

func TestPersistentMap_SnapshotRoundTrip(t *testing.T) {
	for _, algo := range []format.CompressionType{format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := snapshot.New(algo)
		require.NoError(t, err)

		m := NewPersistentMap()
		m.Push("host")
		m.Push("region")
		m.Push("environment")

		var buf bytes.Buffer
		require.NoError(t, m.Snapshot(&buf, codec))

		loaded, err := LoadPersistentMap(&buf, codec)
		require.NoError(t, err, algo)
		require.Equal(t, m.Len(), loaded.Len(), algo)

		for i := 0; i < m.Len(); i++ {
			want, err := m.LookupID(uint64(i))
			require.NoError(t, err)

			got, err := loaded.LookupID(uint64(i))
			require.NoError(t, err)
			require.Equal(t, want, got, algo)
		}
	}
}

func TestPersistentMap_LookupUnknownID(t *testing.T) {
	m := NewPersistentMap()
	_, err := m.LookupID(0)
	require.Error(t, err)
}
