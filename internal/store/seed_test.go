package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backupbridge/internal/models"
)

func TestSeedDemoData(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.SeedDemoData())

	clients := s.ListClients()
	require.Len(t, clients, 3)
	assert.Equal(t, models.ClientDisconnected, clients[1].Status)

	files, err := s.ListFiles("")
	require.NoError(t, err)
	assert.Len(t, files, 5)

	for _, c := range clients {
		scoped, err := s.ListFiles(c.ID)
		require.NoError(t, err)
		assert.Equal(t, len(scoped), c.FileCount)
	}
}

func TestSeedDemoData_NoOpWhenPopulated(t *testing.T) {
	s, _ := newTestStore(t)
	addClient(t, s, "already-here")

	require.NoError(t, s.SeedDemoData())
	assert.Len(t, s.ListClients(), 1)
}
