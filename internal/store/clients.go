package store

import (
	"fmt"
	"strings"

	"backupbridge/internal/common"
	"backupbridge/internal/models"
)

// ListClients returns a snapshot copy of all clients in insertion order.
func (s *Store) ListClients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Client, 0, len(s.clientOrder))
	for _, id := range s.clientOrder {
		out = append(out, cloneClient(s.clients[id]))
	}
	return out
}

// GetClient resolves a client by ID.
func (s *Store) GetClient(id string) (models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return models.Client{}, fmt.Errorf("client %q: %w", id, common.ErrorNotFound)
	}
	return cloneClient(c), nil
}

// GetClientDetails returns the client, the files it owns, and recent
// activity entries that mention it.
func (s *Store) GetClientDetails(id string) (models.ClientDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return models.ClientDetails{}, fmt.Errorf("client %q: %w", id, common.ErrorNotFound)
	}

	details := models.ClientDetails{Client: cloneClient(c)}
	for _, fid := range s.fileOrder {
		if f := s.files[fid]; f.ClientID == id {
			details.Files = append(details.Files, cloneFile(f))
		}
	}
	// Activity references clients informally, by name or ID in the message.
	for i := len(s.activity) - 1; i >= 0 && len(details.Activity) < 20; i-- {
		e := s.activity[i]
		if strings.Contains(e.Message, c.Name) || strings.Contains(e.Message, c.ID) {
			details.Activity = append(details.Activity, e)
		}
	}
	return details, nil
}

// AddClient validates the request, assigns a fresh ID, and inserts the
// client with zero owned files.
func (s *Store) AddClient(req models.AddClientRequest) (models.Client, error) {
	if strings.TrimSpace(req.Name) == "" {
		return models.Client{}, fmt.Errorf("client name is required: %w", common.ErrorValidation)
	}
	if strings.TrimSpace(req.Address) == "" {
		return models.Client{}, fmt.Errorf("client address is required: %w", common.ErrorValidation)
	}

	now := s.clock.Now()
	connectedAt := now
	client := &models.Client{
		ID:          s.idgen.NewID(),
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		Status:      models.ClientConnected,
		CreatedAt:   now,
		LastSeen:    now,
		ConnectedAt: &connectedAt,
		Version:     req.Version,
		Platform:    req.Platform,
	}

	s.mu.Lock()
	s.clients[client.ID] = client
	s.clientOrder = append(s.clientOrder, client.ID)
	s.appendActivityLocked(models.ActivityClient, models.SeverityInfo,
		fmt.Sprintf("client added: %s (%s)", client.Name, client.Address))
	out := cloneClient(client)
	s.mu.Unlock()

	s.persistBestEffort()
	return out, nil
}

// DeleteClient removes the client and every file it owns in one critical
// section, so readers never observe a half-finished cascade.
func (s *Store) DeleteClient(id string) (models.DeleteClientResult, error) {
	s.mu.Lock()

	c, ok := s.clients[id]
	if !ok {
		s.mu.Unlock()
		return models.DeleteClientResult{}, fmt.Errorf("client %q: %w", id, common.ErrorNotFound)
	}

	removed := 0
	kept := s.fileOrder[:0]
	for _, fid := range s.fileOrder {
		if s.files[fid].ClientID == id {
			delete(s.files, fid)
			removed++
			continue
		}
		kept = append(kept, fid)
	}
	s.fileOrder = kept

	delete(s.clients, id)
	for i, cid := range s.clientOrder {
		if cid == id {
			s.clientOrder = append(s.clientOrder[:i], s.clientOrder[i+1:]...)
			break
		}
	}

	s.appendActivityLocked(models.ActivityClient, models.SeverityInfo,
		fmt.Sprintf("client removed: %s, %d files removed in cascade", c.Name, removed))
	s.mu.Unlock()

	s.persistBestEffort()
	return models.DeleteClientResult{ClientID: id, FilesRemoved: removed}, nil
}

// ConnectClient marks the client connected and stamps the connection time.
func (s *Store) ConnectClient(id string) (models.Client, error) {
	return s.setClientStatus(id, models.ClientConnected)
}

// DisconnectClient marks the client disconnected and clears the connection
// time.
func (s *Store) DisconnectClient(id string) (models.Client, error) {
	return s.setClientStatus(id, models.ClientDisconnected)
}

func (s *Store) setClientStatus(id string, status models.ClientStatus) (models.Client, error) {
	now := s.clock.Now()

	s.mu.Lock()
	c, ok := s.clients[id]
	if !ok {
		s.mu.Unlock()
		return models.Client{}, fmt.Errorf("client %q: %w", id, common.ErrorNotFound)
	}

	c.Status = status
	c.LastSeen = now
	verb := "connected"
	if status == models.ClientConnected {
		connectedAt := now
		c.ConnectedAt = &connectedAt
	} else {
		c.ConnectedAt = nil
		verb = "disconnected"
	}
	s.appendActivityLocked(models.ActivityClient, models.SeverityInfo,
		fmt.Sprintf("client %s: %s", verb, c.Name))
	out := cloneClient(c)
	s.mu.Unlock()

	s.persistBestEffort()
	return out, nil
}
