package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rvth/dirk/internal/search"
)

// seedDir creates a small directory tree to move/copy in tests.
func seedDir(t *testing.T, root string) string {
	t.Helper()

	src := filepath.Join(root, "proj")
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "b.txt"), []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}
	return src
}

func TestMove(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := seedDir(t, root)
	dest := filepath.Join(root, "dest")
	if err := os.Mkdir(dest, 0o755); err != nil {
		t.Fatal(err)
	}

	ws := &Workspace{Folders: []Folder{{Path: src, Name: "proj"}}}

	newPath, err := Move(ws, src, dest)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if want := filepath.Join(dest, "proj"); newPath != want {
		t.Errorf("newPath = %q, want %q", newPath, want)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source still exists after move")
	}
	if _, err := os.Stat(filepath.Join(newPath, "sub", "b.txt")); err != nil {
		t.Errorf("moved tree incomplete: %v", err)
	}

	if ws.Contains(src) {
		t.Error("workspace still contains old path")
	}
	folder, err := ws.Find(newPath)
	if err != nil {
		t.Fatalf("workspace missing new path: %v", err)
	}
	if folder.Name != "proj" {
		t.Errorf("folder name = %q, want %q", folder.Name, "proj")
	}
}

func TestMove_DestinationExists(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := seedDir(t, root)
	dest := filepath.Join(root, "dest")
	if err := os.MkdirAll(filepath.Join(dest, "proj"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := Move(nil, src, dest); err == nil {
		t.Error("Move() error = nil, want destination-exists error")
	}
}

func TestCopy(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := seedDir(t, root)
	dest := filepath.Join(root, "dest")
	if err := os.Mkdir(dest, 0o755); err != nil {
		t.Fatal(err)
	}

	newPath, err := Copy(nil, src, dest)
	if err != nil {
		t.Fatalf("Copy() error = %v", err)
	}

	// Source stays put, copy has the full tree.
	if _, err := os.Stat(filepath.Join(src, "a.txt")); err != nil {
		t.Errorf("source changed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(newPath, "sub", "b.txt"))
	if err != nil {
		t.Fatalf("copied tree incomplete: %v", err)
	}
	if string(data) != "b" {
		t.Errorf("copied content = %q, want %q", data, "b")
	}
}

func TestCopy_SamePath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := seedDir(t, root)

	if _, err := Copy(nil, src, filepath.Dir(src)); err == nil {
		t.Error("Copy() onto itself error = nil, want error")
	}
}

func TestCreateDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	ws := &Workspace{}

	newPath, err := CreateDir(ws, root, "fresh")
	if err != nil {
		t.Fatalf("CreateDir() error = %v", err)
	}

	info, err := os.Stat(newPath)
	if err != nil || !info.IsDir() {
		t.Fatalf("created path not a directory: %v", err)
	}
	if !ws.Contains(newPath) {
		t.Error("workspace missing created directory")
	}

	if _, err := CreateDir(ws, root, "fresh"); err == nil {
		t.Error("second CreateDir() error = nil, want already-exists error")
	}
	if _, err := CreateDir(ws, root, ""); err == nil {
		t.Error("CreateDir() with empty name error = nil, want error")
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := seedDir(t, root)
	ws := &Workspace{Folders: []Folder{{Path: src}}}

	if err := Delete(ws, src); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("directory still exists after delete")
	}
	if ws.Contains(src) {
		t.Error("workspace still contains deleted path")
	}
}

func TestPendingOperation_Complete(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	src := seedDir(t, root)
	dest := filepath.Join(root, "dest")
	if err := os.Mkdir(dest, 0o755); err != nil {
		t.Fatal(err)
	}

	op := PendingOperation{
		Kind:    OpMove,
		Sources: []search.DirectoryItem{{FullPath: src, Label: "proj"}},
	}
	if !op.Pending() {
		t.Fatal("Pending() = false, want true")
	}

	ws := &Workspace{Folders: []Folder{{Path: src}}}
	newPaths, err := op.Complete(ws, dest)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(newPaths) != 1 || newPaths[0] != filepath.Join(dest, "proj") {
		t.Errorf("newPaths = %v", newPaths)
	}
	if !ws.Contains(newPaths[0]) {
		t.Error("workspace missing moved folder")
	}
}

func TestPendingOperation_Empty(t *testing.T) {
	t.Parallel()

	var op PendingOperation
	if op.Pending() {
		t.Error("zero value Pending() = true, want false")
	}
	if _, err := op.Complete(nil, t.TempDir()); err == nil {
		t.Error("Complete() on empty op error = nil, want error")
	}
}

func TestDecorate(t *testing.T) {
	t.Parallel()

	items := []search.DirectoryItem{
		{FullPath: "/tmp/repo"},
		{FullPath: "/tmp/member"},
		{FullPath: "/tmp/plain"},
	}
	ws := &Workspace{Folders: []Folder{{Path: "/tmp/member"}}}
	gitRepo := func(path string) bool { return path == "/tmp/repo" }

	got := Decorate(items, gitRepo, ws)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if !got[0].GitRepo || got[0].Member {
		t.Errorf("repo decoration = %+v", got[0].Decoration)
	}
	if got[1].GitRepo || !got[1].Member {
		t.Errorf("member decoration = %+v", got[1].Decoration)
	}
	if got[2].GitRepo || got[2].Member {
		t.Errorf("plain decoration = %+v", got[2].Decoration)
	}

	if badges := got[0].Badges(); len(badges) != 1 || badges[0] != "git" {
		t.Errorf("Badges() = %v, want [git]", badges)
	}
}
