// Package resultcache is an opt-in, CLI-level cache of file digests keyed
// by (path, size, mtime, algorithm), so repeated hash runs over an
// unchanged tree skip re-reading files. The verify command does not use it. It sits outside the core engine's
// stateless boundary; hashengine itself never touches this package.
//
// Self-cleaning dual-database design adapted from the teacher's
// internal/cache: each run opens the previous database read-only and
// writes a fresh one, copying forward only entries that were actually
// looked up. On Close the new database atomically replaces the old one,
// so entries for files that vanished or were never touched this run don't
// accumulate forever.
package resultcache

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/coreforensics/hashcore/hashtypes"
)

const bucketName = "digests"

// Cache provides persistent caching of file digests using BoltDB. A zero
// path disables it entirely; all methods become no-ops.
type Cache struct {
	readDB  *bolt.DB
	writeDB *bolt.DB
	path    string
	enabled bool
}

// Open opens the existing cache at path for reading and creates a fresh
// database for writing. An empty path returns a disabled cache.
func Open(path string) (*Cache, error) {
	if path == "" {
		return &Cache{enabled: false}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("resultcache: create cache dir: %w", err)
	}

	c := &Cache{path: path, enabled: true}

	if _, statErr := os.Stat(path); statErr == nil {
		readDB, err := bolt.Open(path, 0o600, &bolt.Options{ReadOnly: true, Timeout: time.Second})
		if err == nil {
			c.readDB = readDB
		}
	}

	newPath := path + ".new"
	writeDB, err := bolt.Open(newPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("resultcache: create new cache (locked by another instance?): %w", err)
	}
	c.writeDB = writeDB

	if err := c.writeDB.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	}); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

// Close closes both databases and atomically swaps the freshly written one
// into place, provided it closed cleanly.
func (c *Cache) Close() error {
	var firstErr error
	if c.readDB != nil {
		if err := c.readDB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if c.writeDB != nil {
		if err := c.writeDB.Close(); err != nil {
			if firstErr == nil {
				firstErr = err
			}
		} else if err := os.Rename(c.path+".new", c.path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

const keyVersion byte = 1

func makeKey(path string, size int64, mtime time.Time, algorithm hashtypes.Algorithm) []byte {
	buf := new(bytes.Buffer)
	buf.WriteByte(keyVersion)
	buf.WriteString(path)
	buf.WriteByte(0)
	_ = binary.Write(buf, binary.BigEndian, size)
	_ = binary.Write(buf, binary.BigEndian, mtime.UnixNano())
	buf.WriteByte(byte(algorithm))
	return buf.Bytes()
}

// Lookup returns the cached hex digest for path, or ("", false) on a miss.
// A hit is copied forward into the new database (self-cleaning).
func (c *Cache) Lookup(path string, size int64, mtime time.Time, algorithm hashtypes.Algorithm) (string, bool) {
	if !c.enabled || c.readDB == nil {
		return "", false
	}

	key := makeKey(path, size, mtime, algorithm)
	var hexDigest string

	_ = c.readDB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}
		if data := b.Get(key); len(data) > 0 {
			hexDigest = string(data)
		}
		return nil
	})

	if hexDigest == "" {
		return "", false
	}
	c.Store(path, size, mtime, algorithm, hexDigest)
	return hexDigest, true
}

// Store saves a hex digest for path into the new database.
func (c *Cache) Store(path string, size int64, mtime time.Time, algorithm hashtypes.Algorithm, hexDigest string) {
	if !c.enabled || c.writeDB == nil || hexDigest == "" {
		return
	}
	_ = c.writeDB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.Put(makeKey(path, size, mtime, algorithm), []byte(hexDigest))
	})
}
