package testsupport

import (
	"path/filepath"
	"testing"

	"filetools/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp directory per test.
// The journal lives under that directory and tools resolve through PATH.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Journal.Path = filepath.Join(base, "journal.db")
	cfgVal.Journal.LockTimeoutSeconds = 1
	cfgVal.Batch.Workers = 2
	cfgVal.MarkPhotos.Owner = "Test Owner"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStubbedBinaries writes stub executables that exit 0 for the provided
// names and prepends their directory to PATH.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		for _, name := range names {
			StubBinary(b.t, binDir, name, "exit 0")
		}
		PrependPath(b.t, binDir)
	}
}
