package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRemoveIfExistsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segment.m4a")
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	removed, err := RemoveIfExists(path)
	if err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if !removed {
		t.Error("expected first remove to report removal")
	}

	removed, err = RemoveIfExists(path)
	if err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if removed {
		t.Error("second remove should be a no-op")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	if FileExists(dir) {
		t.Error("directories are not files")
	}
	path := filepath.Join(dir, "a.txt")
	if FileExists(path) {
		t.Error("missing file reported as existing")
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !FileExists(path) {
		t.Error("existing file not detected")
	}
}
