package kv

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetGet(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if err := s.Set("dirk-cache-abc", []byte(`{"v":1}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := s.Get("dirk-cache-abc")
	if !ok {
		t.Fatal("Get returned ok=false for stored key")
	}
	if string(got) != `{"v":1}` {
		t.Errorf("Get = %q, want %q", got, `{"v":1}`)
	}
}

func TestGet_Missing(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if _, ok := s.Get("nope"); ok {
		t.Error("Get returned ok=true for missing key")
	}
}

func TestSet_Replaces(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if err := s.Set("k", []byte("old")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("k", []byte("new")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := s.Get("k")
	if !ok || string(got) != "new" {
		t.Errorf("Get after replace = %q, %v, want %q, true", got, ok, "new")
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("key still present after Delete")
	}

	// Deleting an absent key is not an error
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete of absent key = %v, want nil", err)
	}
}

func TestList_Prefix(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	entries := map[string]string{
		"dirk-cache-a": "1",
		"dirk-cache-b": "2",
		"other-x":      "3",
	}
	for k, v := range entries {
		if err := s.Set(k, []byte(v)); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	got, err := s.List("dirk-cache-")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(got))
	}
	if string(got["dirk-cache-a"]) != "1" || string(got["dirk-cache-b"]) != "2" {
		t.Errorf("List = %v, want dirk-cache-a=1 and dirk-cache-b=2", got)
	}
}

func TestDeletePrefix(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	for _, k := range []string{"dirk-cache-a", "dirk-cache-b", "keep-me"} {
		if err := s.Set(k, []byte("v")); err != nil {
			t.Fatalf("Set(%q) failed: %v", k, err)
		}
	}

	n, err := s.DeletePrefix("dirk-cache-")
	if err != nil {
		t.Fatalf("DeletePrefix failed: %v", err)
	}
	if n != 2 {
		t.Errorf("DeletePrefix removed %d entries, want 2", n)
	}
	if _, ok := s.Get("keep-me"); !ok {
		t.Error("DeletePrefix removed an entry outside the prefix")
	}
}

func TestLikePattern_EscapesMetacharacters(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if err := s.Set("pre%fix-a", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("preXfix-b", []byte("v")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.List("pre%fix-")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("List with %% in prefix returned %d entries, want 1", len(got))
	}
}

func TestOpen_Reopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.Set("k", []byte("persisted")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	got, ok := s2.Get("k")
	if !ok || string(got) != "persisted" {
		t.Errorf("Get after reopen = %q, %v, want %q, true", got, ok, "persisted")
	}
}
