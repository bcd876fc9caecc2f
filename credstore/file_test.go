package credstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, ok := s.Get("k"); !ok || v != "v" {
		t.Errorf("Get = (%q, %v), want (\"v\", true)", v, ok)
	}

	// Reopen and confirm persistence.
	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if v, ok := reopened.Get("k"); !ok || v != "v" {
		t.Errorf("Get after reopen = (%q, %v), want (\"v\", true)", v, ok)
	}
}

func TestFileStore_Remove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Remove("k"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("Get after Remove should report ok=false")
	}

	// Idempotent
	if err := s.Remove("k"); err != nil {
		t.Errorf("Remove on absent key should not error, got: %v", err)
	}
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("store file mode = %o, want 600", perm)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := NewFileStore(path); err == nil {
		t.Error("NewFileStore on corrupt file should error")
	}
}
