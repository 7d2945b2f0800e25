package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/dasmanifest/internal/resolver"
	"github.com/stretchr/testify/require"
)

// safeBuffer is a thread-safe buffer for capturing log output in tests.
type safeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// fixedCatalog resolves the listed datasets and fails every other one.
func fixedCatalog(files map[string][]string) resolver.Resolver {
	return resolver.Func(func(ctx context.Context, ds string) ([]string, error) {
		paths, ok := files[ds]
		if !ok {
			return nil, fmt.Errorf("exit status 1")
		}
		return paths, nil
	})
}

// setupAppTest writes the dataset list, fills in the file paths of cfg and
// creates an App backed by r.
func setupAppTest(t *testing.T, cfg Config, datasets string, r resolver.Resolver) (*App, *safeBuffer, *Config) {
	t.Helper()

	dir := t.TempDir()
	cfg.InputPath = filepath.Join(dir, "datasets.txt")
	cfg.OutputPath = filepath.Join(dir, "out.json")
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	require.NoError(t, os.WriteFile(cfg.InputPath, []byte(datasets), 0600))

	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	logBuffer := &safeBuffer{}
	testApp, err := NewApp(logBuffer, validated, WithResolver(r))
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("DASMANIFEST_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer, validated
}
