package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRotatingFileKeepsOneBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "heroes.log")
	w, err := newRotatingFile(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer w.Close()

	chunk := make([]byte, 400*1024)
	for i := 0; i < 5; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("write chunk %d: %v", i, err)
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat log: %v", err)
	}
	if info.Size() > 1024*1024 {
		t.Fatalf("expected log <= 1MB, got %d", info.Size())
	}
	backup, err := os.Stat(path + ".1")
	if err != nil {
		t.Fatalf("expected backup file: %v", err)
	}
	if backup.Size() > 1024*1024 {
		t.Fatalf("expected backup <= 1MB, got %d", backup.Size())
	}
}

func TestRotatingFileOversizedWriteStillLands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	w, err := newRotatingFile(path, 1)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer w.Close()

	big := make([]byte, 2*1024*1024)
	n, err := w.Write(big)
	if err != nil || n != len(big) {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if _, err := os.Stat(path + ".1"); !os.IsNotExist(err) {
		t.Fatalf("first write must not rotate, stat err = %v", err)
	}
}
