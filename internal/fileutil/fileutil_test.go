package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectSymlink(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.json")
	assert.NoError(t, RejectSymlink(missing))

	regular := filepath.Join(dir, "regular.json")
	require.NoError(t, os.WriteFile(regular, []byte("{}"), OwnerReadWrite))
	assert.NoError(t, RejectSymlink(regular))

	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.Symlink(regular, link))
	err := RejectSymlink(link)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symlink")
}

func TestSamePath(t *testing.T) {
	same, err := SamePath("api.yaml", "./api.yaml")
	require.NoError(t, err)
	assert.True(t, same)

	same, err = SamePath("api.yaml", "out.yaml")
	require.NoError(t, err)
	assert.False(t, same)
}
