package execservice

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Key identifies one output slot: a whole Python file (Cell < 0) or a single
// notebook cell.
type Key struct {
	File string
	Cell int
}

func FileKey(name string) Key           { return Key{File: name, Cell: -1} }
func CellKey(name string, cell int) Key { return Key{File: name, Cell: cell} }

// Ticket is handed out when a run starts. Only the newest ticket of a live
// key may write its slot.
type Ticket struct {
	Key Key
	ID  uuid.UUID
}

// Output is the settled content of a slot
type Output struct {
	Text  string
	Error bool
}

// Runner owns the output slots. A new run for a key supersedes older ones
// (last writer wins) and Drop discards results for files that went away.
type Runner struct {
	exec Executor
	log  *zap.Logger

	mu      sync.Mutex
	latest  map[Key]uuid.UUID
	outputs map[Key]Output
}

// NewRunner returns a runner. exec may be nil, in which case nothing is
// runnable and Start reports false.
func NewRunner(exec Executor, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		exec:    exec,
		log:     log,
		latest:  make(map[Key]uuid.UUID),
		outputs: make(map[Key]Output),
	}
}

func (r *Runner) Available() bool { return r != nil && r.exec != nil }

// Begin reserves the slot for a new run and returns its ticket
func (r *Runner) Begin(key Key) Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := Ticket{Key: key, ID: uuid.New()}
	r.latest[key] = t.ID
	return t
}

// Commit stores out if t is still the newest ticket for its key. It reports
// whether the output was applied.
func (r *Runner) Commit(t Ticket, out Output) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.latest[t.Key]
	if !ok || id != t.ID {
		r.log.Debug("discarding stale output", zap.String("file", t.Key.File), zap.Int("cell", t.Key.Cell))
		return false
	}
	r.outputs[t.Key] = out
	return true
}

// Output returns the current content of a slot
func (r *Runner) Output(key Key) (Output, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out, ok := r.outputs[key]
	return out, ok
}

// Drop forgets every slot of file so in-flight runs cannot patch it
func (r *Runner) Drop(file string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k := range r.latest {
		if k.File == file {
			delete(r.latest, k)
		}
	}
	for k := range r.outputs {
		if k.File == file {
			delete(r.outputs, k)
		}
	}
}

// Reset forgets every slot
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.latest = make(map[Key]uuid.UUID)
	r.outputs = make(map[Key]Output)
}

// Run executes source synchronously for the given ticket and commits the
// result. The returned Output is what the run produced even if it was stale.
func (r *Runner) Run(ctx context.Context, t Ticket, source string) (Output, bool) {
	res, err := r.exec.Execute(ctx, source)
	out := Output{Text: res.Text()}
	if err != nil {
		out = Output{Text: ErrorText(err), Error: true}
	}
	return out, r.Commit(t, out)
}

// Start runs source in the background and calls done with the output once it
// has been applied. done is not called for stale runs. Start returns false
// when no executor is configured.
func (r *Runner) Start(ctx context.Context, key Key, source string, done func(Ticket, Output)) bool {
	if !r.Available() {
		return false
	}
	t := r.Begin(key)
	go func() {
		out, applied := r.Run(ctx, t, source)
		if applied && done != nil {
			done(t, out)
		}
	}()
	return true
}
