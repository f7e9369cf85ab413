package session

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Record is one cached Share session. The session ID is opaque and expires
// server-side at an unknown time; callers that reuse a stale record simply
// pay one failed call before re-authenticating.
type Record struct {
	Fingerprint string    `json:"fingerprint"`
	Region      string    `json:"region"`
	Username    string    `json:"username,omitempty"`
	AccountID   string    `json:"account_id,omitempty"`
	SessionID   string    `json:"session_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Fingerprint derives the cache key for a credential set. Passwords stay out
// of the key material on purpose; region plus account identity is enough to
// tell sessions apart and nothing secret ends up in a filename.
func Fingerprint(region, username, accountID string) string {
	sum := sha256.Sum256([]byte(region + "\n" + username + "\n" + accountID))
	return hex.EncodeToString(sum[:8])
}
