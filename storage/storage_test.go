package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func setupTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "data", "test_community.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteSetGetDelete(t *testing.T) {
	kv := setupTestSQLite(t).Scope("visitor-a")

	if _, err := kv.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if err := kv.Set("formDraft", `{"email":"a@b.co"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := kv.Get("formDraft")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != `{"email":"a@b.co"}` {
		t.Errorf("Get = %q", got)
	}

	if err := kv.Set("formDraft", `{}`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if got, _ := kv.Get("formDraft"); got != `{}` {
		t.Errorf("Get after overwrite = %q, want {}", got)
	}

	if err := kv.Delete("formDraft"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := kv.Get("formDraft"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete error = %v, want ErrNotFound", err)
	}
}

func TestSQLiteScopesAreIsolated(t *testing.T) {
	s := setupTestSQLite(t)
	a, b := s.Scope("a"), s.Scope("b")

	if err := a.Set("k", "from-a"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := b.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("scope b sees scope a's value: %v", err)
	}
}

func TestLoadJSONCorrupt(t *testing.T) {
	kv := NewMemory()
	kv.Set("communitySubmissions", "[{not json")

	var out []map[string]string
	err := LoadJSON(kv, "communitySubmissions", &out)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("LoadJSON error = %v, want ErrCorrupt", err)
	}
}

func TestSaveJSONRoundTrip(t *testing.T) {
	kv := NewMemory()
	in := map[string]string{"trainerName": "Ash"}
	if err := SaveJSON(kv, "formDraft", in); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}
	var out map[string]string
	if err := LoadJSON(kv, "formDraft", &out); err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if out["trainerName"] != "Ash" {
		t.Errorf("trainerName = %q, want Ash", out["trainerName"])
	}
}
