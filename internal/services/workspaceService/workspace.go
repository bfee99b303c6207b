package workspaceservice

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redjax/nbview/internal/config"
	execservice "github.com/redjax/nbview/internal/services/execService"
	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
	importservice "github.com/redjax/nbview/internal/services/importService"
	persistservice "github.com/redjax/nbview/internal/services/persistService"
	renderservice "github.com/redjax/nbview/internal/services/renderService"
	"go.uber.org/zap"
)

// Workspace owns one file store and everything that reads or writes it:
// persistence, the execution runner and renderer construction.
type Workspace struct {
	cfg config.Config
	log *zap.Logger

	store   *filestoreservice.Store
	persist *persistservice.Adapter
	runner  *execservice.Runner

	mu         sync.Mutex
	theme      persistservice.Theme
	dirty      bool
	saved      filestoreservice.Snapshot
	persistErr error
	loadErr    error

	unsubscribe func()
}

// Open builds a workspace and restores the persisted files and theme. A
// database that cannot be opened or read is logged and the workspace falls
// back to an in-memory store.
func Open(cfg config.Config, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Workspace{cfg: cfg, log: log, store: filestoreservice.New(), theme: persistservice.ThemeLight}

	var kv persistservice.KV
	if cfg.Ephemeral {
		kv = persistservice.NewMemory()
	} else if db, err := persistservice.OpenSQLite(cfg.DBPath); err != nil {
		log.Warn("persistence unavailable, changes will not be saved", zap.String("db", cfg.DBPath), zap.Error(err))
		w.persistErr = fmt.Errorf("%w: %v", persistservice.ErrPersistence, err)
		kv = persistservice.NewMemory()
	} else {
		kv = db
	}
	return w.init(kv)
}

// OpenWith builds a workspace over an existing KV
func OpenWith(cfg config.Config, kv persistservice.KV, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	w := &Workspace{cfg: cfg, log: log, store: filestoreservice.New(), theme: persistservice.ThemeLight}
	return w.init(kv)
}

func (w *Workspace) init(kv persistservice.KV) *Workspace {
	w.persist = persistservice.New(kv, w.log)

	var exec execservice.Executor
	if w.cfg.Exec.Enabled {
		exec = execservice.NewStarlark(w.cfg.Exec.MaxSteps, w.cfg.Exec.Timeout, w.log)
	}
	w.runner = execservice.NewRunner(exec, w.log)

	state, err := w.persist.LoadState()
	if err != nil {
		w.log.Warn("could not restore saved state", zap.Error(err))
		w.loadErr = err
	}
	w.saved = state.Files
	w.store.Restore(state.Files)
	w.theme = state.Theme
	w.log.Debug("workspace restored", zap.Strings("files", state.Files.Names()), zap.String("theme", string(state.Theme)))

	w.unsubscribe = w.store.Subscribe(w.onEvent)
	return w
}

// onEvent keeps runner slots in step with the store and tracks unsaved changes
func (w *Workspace) onEvent(ev filestoreservice.Event) {
	switch ev.Kind {
	case filestoreservice.EventRemoved, filestoreservice.EventUpdated:
		w.runner.Drop(ev.Name)
	case filestoreservice.EventRenamed:
		w.runner.Drop(ev.OldName)
		w.runner.Drop(ev.Name)
	case filestoreservice.EventRestored, filestoreservice.EventCleared:
		w.runner.Reset()
	}

	w.mu.Lock()
	w.dirty = true
	w.mu.Unlock()
}

func (w *Workspace) Config() config.Config { return w.cfg }
func (w *Workspace) Logger() *zap.Logger { return w.log }
func (w *Workspace) Store() *filestoreservice.Store { return w.store }
func (w *Workspace) Runner() *execservice.Runner { return w.runner }
func (w *Workspace) Persistence() *persistservice.Adapter { return w.persist }

// PersistenceError is the error that forced an in-memory fallback, if any
func (w *Workspace) PersistenceError() error { return w.persistErr }

// LoadError is the error hit while restoring saved files or theme, if any.
// While it is set, autosave does not overwrite the stored data; an explicit
// Save does and clears it.
func (w *Workspace) LoadError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loadErr
}

func (w *Workspace) Dirty() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.dirty
}

// Save writes the store to the database. On failure the store is untouched
// and stays dirty.
func (w *Workspace) Save() error {
	snap := w.store.Snapshot()
	if err := w.persist.Save(snap); err != nil {
		w.log.Error("save failed", zap.Error(err))
		return err
	}
	w.mu.Lock()
	w.dirty = false
	w.saved = snap
	w.loadErr = nil
	w.mu.Unlock()
	return nil
}

// Commit saves when autosave is on and the files differ from what was last
// saved, unless the saved data could not be read at startup
func (w *Workspace) Commit() error {
	if !w.cfg.Autosave || !w.Dirty() {
		return nil
	}
	if err := w.LoadError(); err != nil {
		w.log.Warn("autosave skipped, saved data was unreadable", zap.Error(err))
		return nil
	}

	snap := w.store.Snapshot()
	w.mu.Lock()
	unchanged := snap.Equal(w.saved)
	if unchanged {
		w.dirty = false
	}
	w.mu.Unlock()
	if unchanged {
		w.log.Debug("autosave skipped, files match the saved copy")
		return nil
	}
	return w.Save()
}

func (w *Workspace) Theme() persistservice.Theme {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.theme
}

// SetTheme applies and stores the theme. The in-memory theme changes even if
// storing fails.
func (w *Workspace) SetTheme(t persistservice.Theme) error {
	w.mu.Lock()
	w.theme = t
	w.mu.Unlock()
	return w.persist.SaveTheme(t)
}

// ResetTheme forgets the stored theme and goes back to light
func (w *Workspace) ResetTheme() error {
	w.mu.Lock()
	w.theme = persistservice.ThemeLight
	w.mu.Unlock()
	return w.persist.ResetTheme()
}

func (w *Workspace) ToggleTheme() (persistservice.Theme, error) {
	t := w.Theme().Toggle()
	return t, w.SetTheme(t)
}

// HTMLRenderer renders for export with the current theme
func (w *Workspace) HTMLRenderer() *renderservice.Renderer {
	return renderservice.NewHTML(w.Theme().Dark(), renderservice.WithRunner(w.runner), renderservice.WithLogger(w.log))
}

// TerminalRenderer renders for the terminal with the current theme. A width
// of zero uses the configured width.
func (w *Workspace) TerminalRenderer(width int) (*renderservice.Renderer, error) {
	if width <= 0 {
		width = w.cfg.Render.Width
	}
	return renderservice.NewTerminal(w.Theme().Dark(), width, renderservice.WithRunner(w.runner), renderservice.WithLogger(w.log))
}

// Importer fetches from GitHub with the configured endpoint and timeouts
func (w *Workspace) Importer() *importservice.Importer {
	fetcher := importservice.NewHTTPFetcher(w.cfg.Import.Timeout, w.cfg.Import.UserAgent)
	return importservice.NewImporter(fetcher, w.cfg.Import.APIBase, w.log)
}

// AddPath reads a file from disk into the store under its base name
func (w *Workspace) AddPath(ctx context.Context, path string, resolver filestoreservice.Resolver) (filestoreservice.Outcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return filestoreservice.OutcomeSkipped, fmt.Errorf("read %s: %w", path, err)
	}
	return w.store.AddResolving(ctx, filepath.Base(path), string(data), resolver)
}

// Source returns the runner key and source text of a Python file, or of
// code cell `cell` of a notebook. cell is ignored for Python files.
func (w *Workspace) Source(name string, cell int) (execservice.Key, string, error) {
	content, ok := w.store.Get(name)
	if !ok {
		return execservice.Key{}, "", fmt.Errorf("%q: %w", name, filestoreservice.ErrNotFound)
	}

	switch renderservice.ModeFor(name) {
	case renderservice.ModePythonSource:
		return execservice.FileKey(name), content, nil

	case renderservice.ModeNotebook:
		nb, err := renderservice.ParseNotebook(content)
		if err != nil {
			return execservice.Key{}, "", err
		}
		if cell < 0 || cell >= len(nb.Cells) {
			return execservice.Key{}, "", fmt.Errorf("%s has no cell %d: %w", name, cell, ErrNotRunnable)
		}
		if nb.Cells[cell].Kind != renderservice.CellCode {
			return execservice.Key{}, "", fmt.Errorf("%s cell %d is not code: %w", name, cell, ErrNotRunnable)
		}
		return execservice.CellKey(name, cell), nb.Cells[cell].Source, nil
	}

	return execservice.Key{}, "", fmt.Errorf("%s is %s: %w", name, renderservice.ModeFor(name), ErrNotRunnable)
}

// Run executes a Python file or notebook cell synchronously and records the
// output in its runner slot. An execution failure is reported in the output,
// not as an error.
func (w *Workspace) Run(ctx context.Context, name string, cell int) (execservice.Output, error) {
	if !w.runner.Available() {
		return execservice.Output{}, ErrNoExecutor
	}
	key, src, err := w.Source(name, cell)
	if err != nil {
		return execservice.Output{}, err
	}
	out, _ := w.runner.Run(ctx, w.runner.Begin(key), src)
	return out, nil
}

// Close releases the database
func (w *Workspace) Close() error {
	if w.unsubscribe != nil {
		w.unsubscribe()
	}
	return w.persist.Close()
}
