// Package testfixture builds throwaway file trees for tests, the non-
// container half of the teacher's internal/testfs: real temp directories
// and bind-mountable trees, no Docker namespaces.
package testfixture

import (
	"os"
	"path/filepath"
	"testing"
)

// Tree creates files under a fresh temp directory, keyed by path relative
// to the tree root, and returns the root. Intermediate directories are
// created as needed.
func Tree(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("testfixture: MkdirAll(%s): %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, content, 0o644); err != nil {
			t.Fatalf("testfixture: WriteFile(%s): %v", full, err)
		}
	}
	return root
}

// Mirror copies every file in src into an equivalent layout under a fresh
// temp directory, for constructing a target tree that starts identical to
// a source tree before a test perturbs it.
func Mirror(t *testing.T, src string) string {
	t.Helper()
	dst := t.TempDir()

	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, info.Mode())
	})
	if err != nil {
		t.Fatalf("testfixture: Mirror(%s): %v", src, err)
	}
	return dst
}
