package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var fingerprintRe = regexp.MustCompile(`^[0-9a-f]{16}$`)

type Storage struct {
	dataDir string
}

func NewStorage(dataDir string) *Storage {
	return &Storage{dataDir: dataDir}
}

func (s *Storage) Save(record *Record) error {
	if record == nil {
		return fmt.Errorf("save session: nil record")
	}
	if !fingerprintRe.MatchString(record.Fingerprint) {
		return fmt.Errorf("save session: invalid fingerprint %q", record.Fingerprint)
	}
	if err := s.ensureSessionsDir(); err != nil {
		return fmt.Errorf("save session: ensure sessions dir: %w", err)
	}

	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("save session: marshal json: %w", err)
	}

	path := s.recordPath(record.Fingerprint)
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, payload, 0o600); err != nil {
		return fmt.Errorf("save session: write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("save session: rename temp file: %w", err)
	}

	return nil
}

func (s *Storage) Load(fingerprint string) (*Record, error) {
	if !fingerprintRe.MatchString(fingerprint) {
		return nil, fmt.Errorf("load session: invalid fingerprint %q", fingerprint)
	}

	content, err := os.ReadFile(s.recordPath(fingerprint))
	if err != nil {
		return nil, fmt.Errorf("load session: read file: %w", err)
	}

	var record Record
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, fmt.Errorf("load session: unmarshal json: %w", err)
	}

	return &record, nil
}

func (s *Storage) Delete(fingerprint string) error {
	if !fingerprintRe.MatchString(fingerprint) {
		return fmt.Errorf("delete session: invalid fingerprint %q", fingerprint)
	}

	if err := os.Remove(s.recordPath(fingerprint)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete session: remove file: %w", err)
	}

	return nil
}

func (s *Storage) List() ([]*Record, error) {
	if err := s.ensureSessionsDir(); err != nil {
		return nil, fmt.Errorf("list sessions: ensure sessions dir: %w", err)
	}

	entries, err := os.ReadDir(s.sessionsDir())
	if err != nil {
		return nil, fmt.Errorf("list sessions: read dir: %w", err)
	}

	records := make([]*Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(s.sessionsDir(), entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("list sessions: read %s: %w", entry.Name(), err)
		}

		var record Record
		if err := json.Unmarshal(content, &record); err != nil {
			return nil, fmt.Errorf("list sessions: parse %s: %w", entry.Name(), err)
		}

		records = append(records, &record)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].Fingerprint < records[j].Fingerprint
		}
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	return records, nil
}

func (s *Storage) Exists(fingerprint string) bool {
	if !fingerprintRe.MatchString(fingerprint) {
		return false
	}

	_, err := os.Stat(s.recordPath(fingerprint))
	return err == nil
}

func (s *Storage) ensureSessionsDir() error {
	return os.MkdirAll(s.sessionsDir(), 0o755)
}

func (s *Storage) sessionsDir() string {
	return filepath.Join(s.dataDir, "sessions")
}

func (s *Storage) recordPath(fingerprint string) string {
	return filepath.Join(s.sessionsDir(), fingerprint+".json")
}
