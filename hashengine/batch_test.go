package hashengine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coreforensics/hashcore/hashtypes"
)

func writeTree(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(full, content, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
	return root
}

func TestHashFilesSequentialWithoutProfiler(t *testing.T) {
	root := writeTree(t, map[string][]byte{
		"a.txt": []byte("aaa"),
		"b.txt": []byte("bbb"),
	})

	results, err := HashFiles([]string{root}, hashtypes.SHA256, nil, DefaultHashOptions())
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for path, r := range results {
		if !r.Success() {
			t.Errorf("file %s failed: %v", path, r.Err)
		}
	}
}

func TestHashFilesFailsWhenRootPathMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := HashFiles([]string{missing}, hashtypes.SHA256, nil, DefaultHashOptions())
	if err == nil {
		t.Fatal("expected discover() failure for a nonexistent root path")
	}
}

type fixedProfiler struct {
	info hashtypes.StorageInfo
}

func (f fixedProfiler) Analyze(string) hashtypes.StorageInfo { return f.info }

func TestHashFilesParallelModeWithNVMeProfile(t *testing.T) {
	files := map[string][]byte{}
	for i := 0; i < 20; i++ {
		files[filepath.Join("dir", string(rune('a'+i))+".txt")] = []byte("payload")
	}
	root := writeTree(t, files)

	profiler := fixedProfiler{info: hashtypes.StorageInfo{DriveType: hashtypes.DriveNVMe}}

	results, err := HashFiles([]string{root}, hashtypes.SHA256, profiler, DefaultHashOptions())
	if err != nil {
		t.Fatalf("HashFiles: %v", err)
	}
	if len(results) != 20 {
		t.Fatalf("expected 20 results, got %d", len(results))
	}
}

func TestHashFilesSingleFileIsSequentialRegardlessOfProfiler(t *testing.T) {
	root := writeTree(t, map[string][]byte{"only.txt": []byte("x")})
	path := filepath.Join(root, "only.txt")

	profiler := fixedProfiler{info: hashtypes.StorageInfo{DriveType: hashtypes.DriveNVMe}}
	workers, parallel := planWorkers([]string{path}, profiler, DefaultHashOptions())

	if parallel {
		t.Error("a single file must never use parallel mode (R0)")
	}
	if workers != 1 {
		t.Errorf("expected 1 worker for single file, got %d", workers)
	}
}

func TestHashFilesMaxWorkersOverrideSkipsProfiling(t *testing.T) {
	files := map[string][]byte{}
	for i := 0; i < 5; i++ {
		files[string(rune('a'+i))+".txt"] = []byte("x")
	}
	root := writeTree(t, files)
	paths, _ := discover([]string{root})

	override := uint32(4)
	options := DefaultHashOptions()
	options.MaxWorkersOverride = &override

	workers, parallel := planWorkers(paths, neverCalledProfiler{t}, options)
	if workers != 4 {
		t.Errorf("expected override worker count 4, got %d", workers)
	}
	if !parallel {
		t.Error("expected parallel mode with override > 1")
	}
}

type neverCalledProfiler struct{ t *testing.T }

func (n neverCalledProfiler) Analyze(string) hashtypes.StorageInfo {
	n.t.Fatal("profiler must not be consulted when MaxWorkersOverride is set")
	return hashtypes.StorageInfo{}
}
