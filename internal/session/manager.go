package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Manager struct {
	storage *Storage
	mu      sync.RWMutex
}

func NewManager(dataDir string) *Manager {
	return &Manager{
		storage: NewStorage(dataDir),
	}
}

// Put stores a session ID for the given credential identity, creating or
// replacing the cached record.
func (m *Manager) Put(region, username, accountID, sessionID string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sessionID = strings.TrimSpace(sessionID)
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, fmt.Errorf("put session: session id is not a uuid: %w", err)
	}

	fingerprint := Fingerprint(region, username, accountID)
	now := time.Now().UTC()

	record := &Record{
		Fingerprint: fingerprint,
		Region:      region,
		Username:    username,
		AccountID:   accountID,
		SessionID:   sessionID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if existing, err := m.storage.Load(fingerprint); err == nil {
		record.CreatedAt = existing.CreatedAt
	}

	if err := m.storage.Save(record); err != nil {
		return nil, fmt.Errorf("put session: %w", err)
	}

	return record, nil
}

// Get returns the cached session for the given credential identity, or nil
// when none has been stored.
func (m *Manager) Get(region, username, accountID string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fingerprint := Fingerprint(region, username, accountID)
	if !m.storage.Exists(fingerprint) {
		return nil, nil
	}

	record, err := m.storage.Load(fingerprint)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return record, nil
}

// Delete drops one cached session. Deleting a session that does not exist is
// not an error.
func (m *Manager) Delete(fingerprint string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.storage.Delete(fingerprint); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Clear drops every cached session.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	records, err := m.storage.List()
	if err != nil {
		return fmt.Errorf("clear sessions: %w", err)
	}
	for _, record := range records {
		if err := m.storage.Delete(record.Fingerprint); err != nil {
			return fmt.Errorf("clear sessions: %w", err)
		}
	}
	return nil
}

func (m *Manager) List() ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records, err := m.storage.List()
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return records, nil
}
