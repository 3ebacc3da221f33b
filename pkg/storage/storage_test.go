package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveFile_CreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "site", "index.html")

	if err := SaveFile(path, []byte("<html></html>")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "<html></html>" {
		t.Errorf("content = %q", got)
	}
}

func TestSaveFile_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte("old old old"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := SaveFile(path, []byte("new")); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("content = %q, want new", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the saved file", len(entries))
	}
}
