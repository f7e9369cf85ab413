package cmd

import (
	"strings"
	"testing"

	"github.com/dexshare/dexshare-go/internal/session"
)

func TestSessionListEmpty(t *testing.T) {
	t.Setenv("DEXSHARE_DATA_DIR", t.TempDir())

	out, err := executeForTest("session", "list")
	if err != nil {
		t.Fatalf("session list error: %v", err)
	}
	if !strings.Contains(out, "No cached sessions found.") {
		t.Fatalf("output = %s", out)
	}
}

func TestSessionListAndClear(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("DEXSHARE_DATA_DIR", dataDir)

	manager := session.NewManager(dataDir)
	if _, err := manager.Put("us", "publisher", "", "55555555-5555-5555-5555-555555555555"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	out, err := executeForTest("session", "list")
	if err != nil {
		t.Fatalf("session list error: %v", err)
	}
	if !strings.Contains(out, "publisher") || !strings.Contains(out, "us") {
		t.Fatalf("output = %s", out)
	}

	out, err = executeForTest("session", "clear")
	if err != nil {
		t.Fatalf("session clear error: %v", err)
	}
	if !strings.Contains(out, "Cached sessions cleared.") {
		t.Fatalf("output = %s", out)
	}

	records, err := manager.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("len(records) = %d after clear, want 0", len(records))
	}
}
