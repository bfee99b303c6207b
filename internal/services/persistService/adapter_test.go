package persistservice

import (
	"errors"
	"path/filepath"
	"testing"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
)

type failingKV struct{ *Memory }

var errDisk = errors.New("disk full")

func (failingKV) Get(string) (string, bool, error) { return "", false, errDisk }
func (failingKV) Set(string, string) error         { return errDisk }

func sample() filestoreservice.Snapshot {
	return filestoreservice.NewSnapshot(
		filestoreservice.FileEntry{Name: "b.md", Content: "# b"},
		filestoreservice.FileEntry{Name: "a.py", Content: "print(1)\n"},
		filestoreservice.FileEntry{Name: "nb.ipynb", Content: `{"cells": []}`},
	)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kvs := map[string]func(t *testing.T) KV{
		"memory": func(t *testing.T) KV { return NewMemory() },
		"sqlite": func(t *testing.T) KV {
			kv, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "nbview.db"))
			if err != nil {
				t.Fatal(err)
			}
			return kv
		},
	}

	for name, open := range kvs {
		t.Run(name, func(t *testing.T) {
			a := New(open(t), nil)
			defer a.Close()

			if err := a.Save(sample()); err != nil {
				t.Fatal(err)
			}
			got, err := a.Load()
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(sample()) {
				t.Errorf("loaded %v, want %v", got.Names(), sample().Names())
			}

			if err := a.Save(filestoreservice.NewSnapshot()); err != nil {
				t.Fatal(err)
			}
			if got, _ := a.Load(); got.Len() != 0 {
				t.Errorf("overwrite with empty snapshot left %d files", got.Len())
			}
		})
	}
}

func TestSQLiteReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nbview.db")

	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	a := New(kv, nil)
	if err := a.Save(sample()); err != nil {
		t.Fatal(err)
	}
	if err := a.SaveTheme(ThemeDark); err != nil {
		t.Fatal(err)
	}
	a.Close()

	kv, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()

	state, err := New(kv, nil).LoadState()
	if err != nil {
		t.Fatal(err)
	}
	if !state.Files.Equal(sample()) || state.Theme != ThemeDark {
		t.Errorf("state = %v %v", state.Files.Names(), state.Theme)
	}

	info, err := New(kv, nil).Info()
	if err != nil || info.Location != path {
		t.Fatalf("info = %+v, %v", info, err)
	}
	if len(info.Keys) != 2 || info.Keys[0] != KeySavedFiles || info.Keys[1] != KeyTheme {
		t.Errorf("keys = %v", info.Keys)
	}
}

func TestResetThemeAndMemoryInfo(t *testing.T) {
	a := New(NewMemory(), nil)
	if err := a.SaveTheme(ThemeDark); err != nil {
		t.Fatal(err)
	}
	if err := a.ResetTheme(); err != nil {
		t.Fatal(err)
	}
	if th, err := a.LoadTheme(); err != nil || th != ThemeLight {
		t.Errorf("theme after reset = %v, %v", th, err)
	}

	info, err := a.Info()
	if err != nil || info.Location != "memory" || len(info.Keys) != 0 {
		t.Errorf("info = %+v, %v", info, err)
	}
}

func TestLoadMissingAndMalformed(t *testing.T) {
	kv := NewMemory()
	a := New(kv, nil)

	snap, err := a.Load()
	if err != nil || snap.Len() != 0 {
		t.Fatalf("missing key: %d files, %v", snap.Len(), err)
	}

	for _, bad := range []string{`{not json`, `["a.py"]`, `{"a.py": 1}`} {
		_ = kv.Set(KeySavedFiles, bad)
		snap, err := a.Load()
		if !errors.Is(err, ErrPersistence) || snap.Len() != 0 {
			t.Errorf("Load(%q) = %d files, %v", bad, snap.Len(), err)
		}
	}
}

func TestPersistenceFailures(t *testing.T) {
	a := New(failingKV{NewMemory()}, nil)

	if err := a.Save(sample()); !errors.Is(err, ErrPersistence) {
		t.Errorf("Save: %v", err)
	}
	if snap, err := a.Load(); !errors.Is(err, ErrPersistence) || snap.Len() != 0 {
		t.Errorf("Load: %v", err)
	}
	if theme, err := a.LoadTheme(); !errors.Is(err, ErrPersistence) || theme != ThemeLight {
		t.Errorf("LoadTheme: %v %v", theme, err)
	}
}

func TestTheme(t *testing.T) {
	kv := NewMemory()
	a := New(kv, nil)

	if theme, err := a.LoadTheme(); err != nil || theme != ThemeLight {
		t.Fatalf("default theme = %v, %v", theme, err)
	}

	theme, err := a.ToggleTheme()
	if err != nil || theme != ThemeDark {
		t.Fatalf("toggle = %v, %v", theme, err)
	}
	if v, _, _ := kv.Get(KeyTheme); v != "dark" {
		t.Errorf("stored theme = %q", v)
	}
	if theme, _ := a.ToggleTheme(); theme != ThemeLight {
		t.Errorf("second toggle = %v", theme)
	}

	_ = kv.Set(KeyTheme, "solarized")
	if theme, err := a.LoadTheme(); err != nil || theme != ThemeLight {
		t.Errorf("unknown theme = %v, %v", theme, err)
	}

	if err := a.SaveTheme("blue"); !errors.Is(err, ErrPersistence) {
		t.Errorf("SaveTheme(blue) = %v", err)
	}

	// theme and files are independent keys
	_ = a.Save(sample())
	_ = a.SaveTheme(ThemeDark)
	if snap, _ := a.Load(); !snap.Equal(sample()) {
		t.Error("saving the theme touched the files")
	}
}
