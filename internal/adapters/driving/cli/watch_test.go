package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubWatcher fires onChange a fixed number of times and stops.
type stubWatcher struct {
	triggers int
}

func (w *stubWatcher) Watch(ctx context.Context, onChange func()) error {
	for i := 0; i < w.triggers; i++ {
		onChange()
	}
	return context.Canceled
}

func TestWatchCmd_RerunsOnChange(t *testing.T) {
	originalNewWatcher := newWatcher
	defer func() { newWatcher = originalNewWatcher }()
	newWatcher = func(dir string, debounce time.Duration) dirWatcher {
		return &stubWatcher{triggers: 2}
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("wolves hunt deer"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("compilers translate programs"), 0o644))

	out, err := execute(t, "watch", dir, "--config-dir", t.TempDir())
	require.NoError(t, err)

	// Initial run plus two change-triggered reruns
	assert.Equal(t, 3, strings.Count(out, "Catalog analysis:"))
	assert.Contains(t, out, "Watching "+dir)
	assert.Contains(t, out, "Watch stopped.")
}

func TestWatchCmd_InvalidFlag(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "watch", dir, "--config-dir", t.TempDir(), "--metric", "hamming")
	assert.Error(t, err)
}
