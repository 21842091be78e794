package testsupport

import (
	"context"
	"testing"
	"time"

	"filetools/internal/config"
	"filetools/internal/journal"
)

// MustOpenJournal opens the journal configured on cfg and closes it when the test ends.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	timeout := time.Duration(cfg.Journal.LockTimeoutSeconds) * time.Second
	store, err := journal.Open(context.Background(), cfg.Journal.Path, timeout)
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
