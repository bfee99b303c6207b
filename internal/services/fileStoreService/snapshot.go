package filestoreservice

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Snapshot is a point-in-time copy of the store. It is never mutated after
// construction, so it can be handed to the persistence layer freely.
//
// Its JSON form is an object mapping name to content, with keys written in
// listing order.
type Snapshot struct {
	names []string
	files map[string]string
}

// NewSnapshot builds a snapshot from entries. A later entry with a repeated
// name replaces the earlier content but keeps the earlier position.
func NewSnapshot(entries ...FileEntry) Snapshot {
	snap := Snapshot{files: make(map[string]string, len(entries))}
	for _, e := range entries {
		if _, ok := snap.files[e.Name]; !ok {
			snap.names = append(snap.names, e.Name)
		}
		snap.files[e.Name] = e.Content
	}
	return snap
}

func (s Snapshot) Len() int { return len(s.names) }

func (s Snapshot) Get(name string) (string, bool) {
	c, ok := s.files[name]
	return c, ok
}

func (s Snapshot) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s Snapshot) Entries() []FileEntry {
	out := make([]FileEntry, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, FileEntry{Name: n, Content: s.files[n]})
	}
	return out
}

// Equal reports whether both snapshots hold the same files in the same order
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s.names) != len(other.names) {
		return false
	}
	for i, n := range s.names {
		if other.names[i] != n || other.files[n] != s.files[n] {
			return false
		}
	}
	return true
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, n := range s.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(n)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.files[n])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("snapshot: expected JSON object, got %v", tok)
	}

	var entries []FileEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("snapshot: expected string key, got %v", tok)
		}
		var content string
		if err := dec.Decode(&content); err != nil {
			return fmt.Errorf("snapshot: value for %q: %w", name, err)
		}
		entries = append(entries, FileEntry{Name: name, Content: content})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*s = NewSnapshot(entries...)
	return nil
}
