package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backupbridge/internal/common"
	"backupbridge/internal/models"
)

func TestAddClient_Succeeds(t *testing.T) {
	s, clock := newTestStore(t)

	c, err := s.AddClient(models.AddClientRequest{Name: "Acme", Address: "10.0.0.5", Version: "2.0", Platform: "linux"})
	require.NoError(t, err)

	assert.Equal(t, "id-0001", c.ID)
	assert.Equal(t, "Acme", c.Name)
	assert.Equal(t, models.ClientConnected, c.Status)
	assert.Equal(t, 0, c.FileCount)
	assert.Equal(t, int64(0), c.TotalBytes)
	require.NotNil(t, c.ConnectedAt)
	assert.Equal(t, clock.Now(), *c.ConnectedAt)

	recent := s.RecentActivity(5)
	require.Len(t, recent, 1)
	assert.Equal(t, models.ActivityClient, recent[0].Category)
	assert.Contains(t, recent[0].Message, "Acme")
}

func TestAddClient_Validation(t *testing.T) {
	s, _ := newTestStore(t)

	tests := []struct {
		name string
		req  models.AddClientRequest
	}{
		{name: "missing name", req: models.AddClientRequest{Address: "10.0.0.5"}},
		{name: "missing address", req: models.AddClientRequest{Name: "Acme"}},
		{name: "blank name", req: models.AddClientRequest{Name: "   ", Address: "10.0.0.5"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AddClient(tc.req)
			require.ErrorIs(t, err, common.ErrorValidation)
		})
	}
	assert.True(t, s.Empty())
}

func TestListClients_InsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)

	addClient(t, s, "alpha")
	addClient(t, s, "beta")
	addClient(t, s, "gamma")

	clients := s.ListClients()
	require.Len(t, clients, 3)
	assert.Equal(t, []string{"alpha", "beta", "gamma"},
		[]string{clients[0].Name, clients[1].Name, clients[2].Name})
}

func TestGetClient_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.GetClient("missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteClient_CascadesToFiles(t *testing.T) {
	s, _ := newTestStore(t)

	victim := addClient(t, s, "victim")
	other := addClient(t, s, "other")
	addFile(t, s, victim.ID, "a.tar", 100)
	addFile(t, s, victim.ID, "b.tar", 200)
	kept := addFile(t, s, other.ID, "c.tar", 300)

	result, err := s.DeleteClient(victim.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.FilesRemoved)

	files, err := s.ListFiles("")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, kept.ID, files[0].ID)

	// exactly one cascade entry mentioning the removed file count
	entries, err := s.Logs(models.LogFilter{Category: models.ActivityClient})
	require.NoError(t, err)
	var cascades int
	for _, e := range entries {
		if e.Message == "client removed: victim, 2 files removed in cascade" {
			cascades++
		}
	}
	assert.Equal(t, 1, cascades)
}

func TestDeleteClient_NotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.DeleteClient("ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestConnectDisconnect_Transitions(t *testing.T) {
	s, clock := newTestStore(t)
	c := addClient(t, s, "toggle")

	clock.Advance(time.Minute)
	got, err := s.DisconnectClient(c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClientDisconnected, got.Status)
	assert.Nil(t, got.ConnectedAt)
	assert.Equal(t, clock.Now(), got.LastSeen)

	clock.Advance(time.Minute)
	got, err = s.ConnectClient(c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ClientConnected, got.Status)
	require.NotNil(t, got.ConnectedAt)
	assert.Equal(t, clock.Now(), *got.ConnectedAt)
}

func TestGetClientDetails_CollectsFilesAndActivity(t *testing.T) {
	s, _ := newTestStore(t)

	c := addClient(t, s, "hub")
	addFile(t, s, c.ID, "one.bin", 10)
	addFile(t, s, c.ID, "two.bin", 20)
	noise := addClient(t, s, "noise")
	addFile(t, s, noise.ID, "three.bin", 30)

	details, err := s.GetClientDetails(c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, details.Client.ID)
	require.Len(t, details.Files, 2)
	for _, e := range details.Activity {
		assert.Contains(t, e.Message, "hub")
	}
	require.NotEmpty(t, details.Activity)
}

func TestAggregates_FollowFileMutations(t *testing.T) {
	s, _ := newTestStore(t)
	c := addClient(t, s, "agg")

	f1 := addFile(t, s, c.ID, "a", 100)
	addFile(t, s, c.ID, "b", 250)

	got, err := s.GetClient(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.FileCount)
	assert.Equal(t, int64(350), got.TotalBytes)

	require.NoError(t, s.DeleteFile(f1.ID))

	got, err = s.GetClient(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.FileCount)
	assert.Equal(t, int64(250), got.TotalBytes)
}

// A reader racing a cascading delete must never observe the client gone
// while its files linger, or the other way round.
func TestDeleteClient_AtomicUnderConcurrentReaders(t *testing.T) {
	s, _ := newTestStore(t)

	c := addClient(t, s, "racer")
	for i := 0; i < 10; i++ {
		addFile(t, s, c.ID, fmt.Sprintf("f-%d", i), 1)
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				clients := s.ListClients()
				files, err := s.ListFiles("")
				if err != nil {
					continue
				}
				clientPresent := false
				for _, cl := range clients {
					if cl.ID == c.ID {
						clientPresent = true
					}
				}
				orphaned := 0
				for _, f := range files {
					if f.ClientID == c.ID && !clientPresent {
						orphaned++
					}
				}
				assert.Zero(t, orphaned, "observed files of a deleted client")
			}
		}()
	}

	_, err := s.DeleteClient(c.ID)
	close(stop)
	wg.Wait()
	require.NoError(t, err)

	_, err = s.GetClient(c.ID)
	require.ErrorIs(t, err, common.ErrorNotFound)
	files, err := s.ListFiles("")
	require.NoError(t, err)
	assert.Empty(t, files)
}
