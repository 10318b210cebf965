package shader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lighting"), 0755))
	path := filepath.Join(root, "lighting", "phong.fs")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	w, err := NewWatcher(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Drain()...)
		return len(got) > 0
	}, 5*time.Second, 10*time.Millisecond, "no change reported")
	assert.Contains(t, got, "lighting/phong.fs")
}

func TestWatcherDrainDeduplicates(t *testing.T) {
	root := t.TempDir()
	w, err := NewWatcher(root)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	w.changed <- "a.vs"
	w.changed <- "a.vs"
	w.changed <- "b.fs"

	assert.Equal(t, []string{"a.vs", "b.fs"}, w.Drain())
	assert.Empty(t, w.Drain())
}

func TestNewWatcherMissingRoot(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
