package filestoreservice

import (
	"fmt"
	"strings"
	"sync"
)

// FileEntry is a single named text file held by the store.
type FileEntry struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type EventKind int

const (
	EventAdded EventKind = iota
	EventUpdated
	EventRemoved
	EventRenamed
	EventRestored
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventUpdated:
		return "updated"
	case EventRemoved:
		return "removed"
	case EventRenamed:
		return "renamed"
	case EventRestored:
		return "restored"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Event describes a mutation. OldName is only set for EventRenamed.
type Event struct {
	Kind    EventKind
	Name    string
	OldName string
}

// Store is an ordered name -> content mapping. Names are unique and the
// insertion order is kept for listing.
type Store struct {
	mu    sync.RWMutex
	order []string
	files map[string]string

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

// New returns an empty store
func New() *Store {
	return &Store{
		files: make(map[string]string),
		subs:  make(map[int]func(Event)),
	}
}

// Subscribe registers fn to be called after every mutation.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(ev Event) {
	s.subMu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.subs[i]; ok {
			fns = append(fns, fn)
		}
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	return nil
}

// Add inserts a new file. It fails with ErrNameConflict if the name is taken;
// callers resolve the conflict with Apply or AddResolving.
func (s *Store) Add(name, content string) error {
	if err := validName(name); err != nil {
		return err
	}

	s.mu.Lock()
	if _, ok := s.files[name]; ok {
		s.mu.Unlock()
		return fmt.Errorf("add %q: %w", name, ErrNameConflict)
	}
	s.files[name] = content
	s.order = append(s.order, name)
	s.mu.Unlock()

	s.notify(Event{Kind: EventAdded, Name: name})
	return nil
}

// Overwrite replaces the content of an existing file in place
func (s *Store) Overwrite(name, content string) error {
	s.mu.Lock()
	if _, ok := s.files[name]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("overwrite %q: %w", name, ErrNotFound)
	}
	s.files[name] = content
	s.mu.Unlock()

	s.notify(Event{Kind: EventUpdated, Name: name})
	return nil
}

// Remove deletes a file
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	if _, ok := s.files[name]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("remove %q: %w", name, ErrNotFound)
	}
	delete(s.files, name)
	s.order = removeName(s.order, name)
	s.mu.Unlock()

	s.notify(Event{Kind: EventRemoved, Name: name})
	return nil
}

// Rename moves a file to a new name, keeping its position in the listing
func (s *Store) Rename(oldName, newName string) error {
	if err := validName(newName); err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.renameLocked(oldName, newName); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventRenamed, Name: newName, OldName: oldName})
	return nil
}

func (s *Store) renameLocked(oldName, newName string) error {
	content, ok := s.files[oldName]
	if !ok {
		return fmt.Errorf("rename %q: %w", oldName, ErrNotFound)
	}
	if _, taken := s.files[newName]; taken {
		return fmt.Errorf("rename %q to %q: %w", oldName, newName, ErrNameConflict)
	}

	delete(s.files, oldName)
	s.files[newName] = content
	for i, n := range s.order {
		if n == oldName {
			s.order[i] = newName
			break
		}
	}
	return nil
}

// Get returns the content stored under name
func (s *Store) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[name]
	return content, ok
}

func (s *Store) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// List returns file names in insertion order
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Entries returns all files in insertion order
func (s *Store) Entries() []FileEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]FileEntry, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, FileEntry{Name: n, Content: s.files[n]})
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Snapshot returns an immutable copy of the whole store
func (s *Store) Snapshot() Snapshot {
	return NewSnapshot(s.Entries()...)
}

// Restore replaces the store contents wholesale with snap
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	s.files = make(map[string]string, snap.Len())
	s.order = make([]string, 0, snap.Len())
	for _, e := range snap.Entries() {
		s.files[e.Name] = e.Content
		s.order = append(s.order, e.Name)
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventRestored})
}

// Clear empties the store. Confirmation is the caller's job.
func (s *Store) Clear() {
	s.mu.Lock()
	s.files = make(map[string]string)
	s.order = nil
	s.mu.Unlock()

	s.notify(Event{Kind: EventCleared})
}

func removeName(names []string, name string) []string {
	for i, n := range names {
		if n == name {
			return append(names[:i], names[i+1:]...)
		}
	}
	return names
}
