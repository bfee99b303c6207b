package archiveservice

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
)

var now = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func TestArchiveName(t *testing.T) {
	if got := ArchiveName("nbview", now); got != "2026-01-02_15-04-05_nbview.zip" {
		t.Errorf("ArchiveName = %q", got)
	}
	if got := ArchiveName("nbview.zip", now); got != "2026-01-02_15-04-05_nbview.zip" {
		t.Errorf("ArchiveName with suffix = %q", got)
	}
}

func TestWriteAndRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")
	files := []filestoreservice.FileEntry{
		{Name: "z.py", Content: "print(1)"},
		{Name: "a.md", Content: "# A"},
		{Name: "empty.ipynb", Content: ""},
	}

	dest, err := Write(dir, "nbview", files, now)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dest) != "2026-01-02_15-04-05_nbview.zip" {
		t.Errorf("dest = %s", dest)
	}

	got, err := Read(dest)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(files) {
		t.Fatalf("read %d files, want %d", len(got), len(files))
	}
	for i := range files {
		if got[i] != files[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], files[i])
		}
	}

	if _, err := Write(dir, "nbview", files, now); err == nil {
		t.Error("second write in the same second should not overwrite")
	}
}

func TestReadFlattensAndSkipsDirs(t *testing.T) {
	p := filepath.Join(t.TempDir(), "repo.zip")
	f, err := os.Create(p)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	if _, err := zw.Create("notebooks/"); err != nil {
		t.Fatal(err)
	}
	w, err := zw.Create("notebooks/n.ipynb")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("{}"))
	zw.Close()
	f.Close()

	got, err := Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "n.ipynb" || got[0].Content != "{}" {
		t.Errorf("got %+v", got)
	}
}

func TestReadRejectsNonArchive(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x.zip")
	if err := os.WriteFile(p, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Read(p); !errors.Is(err, ErrNotArchive) {
		t.Errorf("err = %v, want ErrNotArchive", err)
	}
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 4; i++ {
		p, err := Write(dir, "nbview", nil, now.Add(time.Duration(i)*time.Hour))
		if err != nil {
			t.Fatal(err)
		}
		mod := now.Add(time.Duration(i) * time.Hour)
		if err := os.Chtimes(p, mod, mod); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, p)
	}
	other := filepath.Join(dir, "2020-01-01_00-00-00_other.zip")
	if err := os.WriteFile(other, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	removed, err := Cleanup(dir, "nbview", 2, paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 1 || removed[0] != paths[1] {
		t.Errorf("removed = %v, want [%s]", removed, paths[1])
	}
	for _, p := range []string{paths[0], paths[2], paths[3], other} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s should remain: %v", p, err)
		}
	}

	if removed, _ := Cleanup(dir, "nbview", 0, ""); removed != nil {
		t.Errorf("keep=0 removed %v", removed)
	}
}
