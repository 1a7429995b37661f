package resultcache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreforensics/hashcore/hashtypes"
)

func TestDisabledCacheIsAlwaysAMiss(t *testing.T) {
	c, err := Open("")
	require.NoError(t, err)
	defer c.Close()

	_, ok := c.Lookup("/any/path", 10, time.Now(), hashtypes.SHA256)
	assert.False(t, ok, "disabled cache must never report a hit")
}

func TestStoreThenReopenHits(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	mtime := time.Unix(1700000000, 0)

	c1, err := Open(dbPath)
	require.NoError(t, err)
	c1.Store("/data/file.bin", 1024, mtime, hashtypes.SHA256, "deadbeef")
	require.NoError(t, c1.Close())

	c2, err := Open(dbPath)
	require.NoError(t, err, "reopen")
	defer c2.Close()

	digest, ok := c2.Lookup("/data/file.bin", 1024, mtime, hashtypes.SHA256)
	require.True(t, ok, "expected cache hit after reopen")
	assert.Equal(t, "deadbeef", digest)
}

func TestLookupMissOnSizeChange(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	mtime := time.Unix(1700000000, 0)

	c1, _ := Open(dbPath)
	c1.Store("/data/file.bin", 1024, mtime, hashtypes.SHA256, "deadbeef")
	c1.Close()

	c2, _ := Open(dbPath)
	defer c2.Close()

	if _, ok := c2.Lookup("/data/file.bin", 2048, mtime, hashtypes.SHA256); ok {
		t.Error("expected miss when size differs from cached entry")
	}
}
