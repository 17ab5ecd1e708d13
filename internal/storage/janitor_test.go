package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCleanupRemovesFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.mp3")
	second := filepath.Join(dir, "b.png")
	require.NoError(t, os.WriteFile(first, []byte("audio"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("image"), 0o644))

	janitor := NewJanitor(zap.NewNop())
	janitor.Cleanup([]string{first, second})

	assert.NoFileExists(t, first)
	assert.NoFileExists(t, second)
}

func TestCleanupToleratesMissingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "keep-going.tmp")
	require.NoError(t, os.WriteFile(existing, []byte("x"), 0o644))

	janitor := NewJanitor(zap.NewNop())
	janitor.Cleanup([]string{filepath.Join(dir, "already-gone.tmp"), existing})

	assert.NoFileExists(t, existing)
}
