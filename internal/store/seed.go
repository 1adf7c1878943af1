package store

import (
	"fmt"

	"backupbridge/internal/models"
)

// SeedDemoData populates an empty store with a handful of clients and
// files so the console has something to show on first run. A store that
// already holds data is left untouched.
func (s *Store) SeedDemoData() error {
	if !s.Empty() {
		return nil
	}

	seeds := []struct {
		client models.AddClientRequest
		files  []models.AddFileRequest
	}{
		{
			client: models.AddClientRequest{Name: "workstation-01", Address: "192.168.1.21", Version: "2.3.1", Platform: "linux"},
			files: []models.AddFileRequest{
				{Name: "documents.tar.gz", Path: "/home/anna/documents.tar.gz", Size: 48_332_800},
				{Name: "photos-2025.zip", Path: "/home/anna/photos-2025.zip", Size: 312_442_880},
			},
		},
		{
			client: models.AddClientRequest{Name: "workstation-02", Address: "192.168.1.22", Version: "2.3.1", Platform: "windows"},
			files: []models.AddFileRequest{
				{Name: "projects.7z", Path: "C:/Users/maris/projects.7z", Size: 104_857_600},
			},
		},
		{
			client: models.AddClientRequest{Name: "nas-backup", Address: "192.168.1.40", Version: "2.2.0", Platform: "freebsd"},
			files: []models.AddFileRequest{
				{Name: "media-library.img", Path: "/mnt/tank/media-library.img", Size: 2_147_483_648},
				{Name: "configs.tar", Path: "/mnt/tank/configs.tar", Size: 1_048_576},
			},
		},
	}

	for _, seed := range seeds {
		client, err := s.AddClient(seed.client)
		if err != nil {
			return fmt.Errorf("seed client %s: %w", seed.client.Name, err)
		}
		for _, file := range seed.files {
			file.ClientID = client.ID
			if _, err := s.AddFile(file); err != nil {
				return fmt.Errorf("seed file %s: %w", file.Name, err)
			}
		}
	}

	// One of the demo clients is offline, as on a real dashboard.
	clients := s.ListClients()
	if len(clients) > 1 {
		if _, err := s.DisconnectClient(clients[1].ID); err != nil {
			return err
		}
	}
	return nil
}
