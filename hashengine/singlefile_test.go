package hashengine

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/coreforensics/hashcore/hashtypes"
)

func writeTempFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "f.bin")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestHashFileSuccess(t *testing.T) {
	content := []byte("the quick brown fox")
	path := writeTempFile(t, content)

	want := sha256.Sum256(content)
	wantHex := hex.EncodeToString(want[:])

	result := HashFile(path, "f.bin", hashtypes.SHA256, nil, nil)

	if !result.Success() {
		t.Fatalf("expected success, got error %v", result.Err)
	}
	if result.HashHex != wantHex {
		t.Errorf("HashHex = %s, want %s", result.HashHex, wantHex)
	}
	if result.FileSize != uint64(len(content)) {
		t.Errorf("FileSize = %d, want %d", result.FileSize, len(content))
	}
}

func TestHashFileNotFound(t *testing.T) {
	result := HashFile(filepath.Join(t.TempDir(), "missing.bin"), "missing.bin", hashtypes.SHA256, nil, nil)

	if result.Success() {
		t.Fatal("expected failure for missing file")
	}
	calcErr, ok := result.Err.(*hashtypes.HashCalcError)
	if !ok {
		t.Fatalf("expected *HashCalcError, got %T", result.Err)
	}
	if calcErr.Kind != hashtypes.CalcNotFound {
		t.Errorf("Kind = %v, want CalcNotFound", calcErr.Kind)
	}
}

type alwaysSetCancel struct{}

func (alwaysSetCancel) IsSet() bool { return true }

func TestHashFileCancelledBeforeFirstRead(t *testing.T) {
	path := writeTempFile(t, []byte("some bytes to hash"))

	result := HashFile(path, "f.bin", hashtypes.SHA256, alwaysSetCancel{}, nil)

	if result.Success() {
		t.Fatal("expected cancellation to prevent success")
	}
	calcErr, ok := result.Err.(*hashtypes.HashCalcError)
	if !ok || calcErr.Kind != hashtypes.CalcCancelled {
		t.Errorf("expected CalcCancelled, got %v", result.Err)
	}
	if result.HashHex != "" {
		t.Error("cancelled hash must not emit a partial digest")
	}
}

func TestHashFileEmptyFile(t *testing.T) {
	path := writeTempFile(t, nil)
	result := HashFile(path, "f.bin", hashtypes.SHA256, nil, nil)

	want := sha256.Sum256(nil)
	if result.HashHex != hex.EncodeToString(want[:]) {
		t.Errorf("empty file hash mismatch: got %s", result.HashHex)
	}
}
