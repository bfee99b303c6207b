package persistservice

import (
	"encoding/json"
	"errors"
	"fmt"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
	"go.uber.org/zap"
)

const (
	KeySavedFiles = "savedFiles"
	KeyTheme      = "theme"
)

// ErrPersistence wraps any failure to read or write the local store
var ErrPersistence = errors.New("persistence error")

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "light" and "dark"
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return ThemeLight, false
}

func (t Theme) Dark() bool { return t == ThemeDark }

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// State is everything the adapter persists
type State struct {
	Files filestoreservice.Snapshot
	Theme Theme
}

// Adapter maps store snapshots and the theme onto KV entries
type Adapter struct {
	kv  KV
	log *zap.Logger
}

func New(kv KV, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{kv: kv, log: log}
}

// Save writes the snapshot under savedFiles
func (a *Adapter) Save(snap filestoreservice.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: encode files: %v", ErrPersistence, err)
	}
	if err := a.kv.Set(KeySavedFiles, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	a.log.Debug("saved files", zap.Int("count", snap.Len()), zap.Int("bytes", len(data)))
	return nil
}

// Load reads savedFiles. A missing key is an empty snapshot; unreadable or
// malformed data is an empty snapshot plus ErrPersistence.
func (a *Adapter) Load() (filestoreservice.Snapshot, error) {
	empty := filestoreservice.NewSnapshot()

	data, ok, err := a.kv.Get(KeySavedFiles)
	if err != nil {
		return empty, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return empty, nil
	}

	var snap filestoreservice.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return empty, fmt.Errorf("%w: decode %s: %v", ErrPersistence, KeySavedFiles, err)
	}
	return snap, nil
}

func (a *Adapter) SaveTheme(t Theme) error {
	if _, ok := ParseTheme(string(t)); !ok {
		return fmt.Errorf("%w: unknown theme %q", ErrPersistence, t)
	}
	if err := a.kv.Set(KeyTheme, string(t)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// LoadTheme returns the stored theme, light when absent or unrecognised
func (a *Adapter) LoadTheme() (Theme, error) {
	v, ok, err := a.kv.Get(KeyTheme)
	if err != nil {
		return ThemeLight, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return ThemeLight, nil
	}
	t, known := ParseTheme(v)
	if !known {
		a.log.Warn("ignoring unknown stored theme", zap.String("theme", v))
	}
	return t, nil
}

// ResetTheme removes the stored theme so the default applies again
func (a *Adapter) ResetTheme() error {
	if err := a.kv.Delete(KeyTheme); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Info describes where the adapter stores its data
type Info struct {
	Location string // database path, or "memory"
	Keys     []string
}

// Info reports the backing location and the keys currently stored
func (a *Adapter) Info() (Info, error) {
	info := Info{Location: "memory"}
	if p, ok := a.kv.(interface{ Path() string }); ok {
		info.Location = p.Path()
	}
	keys, err := a.kv.Keys()
	if err != nil {
		return info, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	info.Keys = keys
	return info, nil
}

// ToggleTheme flips and stores the theme, returning the new value
func (a *Adapter) ToggleTheme() (Theme, error) {
	t, err := a.LoadTheme()
	if err != nil {
		return t, err
	}
	t = t.Toggle()
	return t, a.SaveTheme(t)
}

// LoadState reads files and theme. Each half degrades independently; the
// errors are joined and returned alongside whatever could be read.
func (a *Adapter) LoadState() (State, error) {
	files, ferr := a.Load()
	theme, terr := a.LoadTheme()
	return State{Files: files, Theme: theme}, errors.Join(ferr, terr)
}

func (a *Adapter) Close() error { return a.kv.Close() }
