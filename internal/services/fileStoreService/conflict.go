package filestoreservice

import (
	"context"
	"fmt"
	"strings"
)

// Action is the decision taken when an incoming file collides with an existing name.
type Action int

const (
	ActionOverwrite Action = iota
	ActionRename
	ActionSkip
)

func (a Action) String() string {
	switch a {
	case ActionOverwrite:
		return "overwrite"
	case ActionRename:
		return "rename"
	case ActionSkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseAction maps a flag value to an Action
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overwrite", "o":
		return ActionOverwrite, nil
	case "rename", "r":
		return ActionRename, nil
	case "skip", "s":
		return ActionSkip, nil
	default:
		return ActionSkip, fmt.Errorf("unknown conflict action: %q", s)
	}
}

// Resolution is the answer to a conflict. NewName is only read for ActionRename.
type Resolution struct {
	Action  Action
	NewName string
}

func Overwrite() Resolution              { return Resolution{Action: ActionOverwrite} }
func Skip() Resolution                   { return Resolution{Action: ActionSkip} }
func RenameTo(newName string) Resolution { return Resolution{Action: ActionRename, NewName: newName} }

// Resolver decides what happens to an incoming file whose name is already taken.
// Resolve may block (e.g. waiting on a prompt) until a decision is available.
type Resolver interface {
	Resolve(ctx context.Context, name string) (Resolution, error)
}

type ResolverFunc func(ctx context.Context, name string) (Resolution, error)

func (f ResolverFunc) Resolve(ctx context.Context, name string) (Resolution, error) {
	return f(ctx, name)
}

// FixedResolver always answers with the same action. For ActionRename the new
// name is derived with SuggestName.
func FixedResolver(action Action, store *Store) Resolver {
	return ResolverFunc(func(ctx context.Context, name string) (Resolution, error) {
		if action == ActionRename {
			return RenameTo(SuggestName(store, name)), nil
		}
		return Resolution{Action: action}, nil
	})
}

type Outcome int

const (
	OutcomeAdded Outcome = iota
	OutcomeOverwritten
	OutcomeRenamed
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeOverwritten:
		return "overwritten"
	case OutcomeRenamed:
		return "renamed"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Apply commits an incoming file whose name collides with an existing entry.
//
// Rename moves the existing entry to r.NewName (keeping its content) and stores
// the incoming content under name. A rename target that is already taken fails
// with ErrNameConflict and leaves the store untouched.
func (s *Store) Apply(name, content string, r Resolution) (Outcome, error) {
	switch r.Action {
	case ActionSkip:
		return OutcomeSkipped, nil

	case ActionOverwrite:
		if err := s.Overwrite(name, content); err != nil {
			return OutcomeSkipped, err
		}
		return OutcomeOverwritten, nil

	case ActionRename:
		if err := validName(r.NewName); err != nil {
			return OutcomeSkipped, fmt.Errorf("rename %q: %w", name, err)
		}
		if r.NewName == name {
			return OutcomeSkipped, fmt.Errorf("rename %q to itself: %w", name, ErrNameConflict)
		}

		s.mu.Lock()
		if err := s.renameLocked(name, r.NewName); err != nil {
			s.mu.Unlock()
			return OutcomeSkipped, err
		}
		s.files[name] = content
		s.order = append(s.order, name)
		s.mu.Unlock()

		s.notify(Event{Kind: EventRenamed, Name: r.NewName, OldName: name})
		s.notify(Event{Kind: EventAdded, Name: name})
		return OutcomeRenamed, nil
	}

	return OutcomeSkipped, fmt.Errorf("unknown conflict action %d", r.Action)
}

// AddResolving adds a file, consulting resolver only when the name is taken.
// A nil resolver turns every conflict into ErrNameConflict.
func (s *Store) AddResolving(ctx context.Context, name, content string, resolver Resolver) (Outcome, error) {
	err := s.Add(name, content)
	if err == nil {
		return OutcomeAdded, nil
	}
	if !isConflict(err) {
		return OutcomeSkipped, err
	}
	if resolver == nil {
		return OutcomeSkipped, err
	}

	r, err := resolver.Resolve(ctx, name)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("resolve conflict for %q: %w", name, err)
	}
	return s.Apply(name, content, r)
}

// SuggestName returns the first free name of the form "base (n).ext"
func SuggestName(s *Store, name string) string {
	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i > 0 {
		base, ext = name[:i], name[i:]
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		if !s.Has(candidate) {
			return candidate
		}
	}
}
