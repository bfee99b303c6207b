package importservice

import (
	"errors"
	"fmt"
	"strings"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
)

type Stage int

const (
	// StagePreview waits for the current item to be accepted or rejected
	StagePreview Stage = iota
	// StageConflict waits for a resolution of the current item's name clash
	StageConflict
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StagePreview:
		return "preview"
	case StageConflict:
		return "conflict"
	default:
		return "done"
	}
}

// Report summarises what a finished batch did to the store
type Report struct {
	Added       []string
	Overwritten []string
	Renamed     []string
	Skipped     []string
	Rejected    []string
	Failed      []Item
}

// Changed reports whether the store was modified
func (r Report) Changed() bool {
	return len(r.Added)+len(r.Overwritten)+len(r.Renamed) > 0
}

func (r Report) String() string {
	var parts []string
	add := func(n int, label string) {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, label))
		}
	}
	add(len(r.Added), "added")
	add(len(r.Overwritten), "overwritten")
	add(len(r.Renamed), "renamed")
	add(len(r.Skipped), "skipped")
	add(len(r.Rejected), "rejected")
	add(len(r.Failed), "failed")
	if len(parts) == 0 {
		return "nothing imported"
	}
	return strings.Join(parts, ", ")
}

// Batch walks resolved items one at a time, in order, through preview and
// conflict resolution. It holds no I/O; callers feed it decisions.
type Batch struct {
	store  *filestoreservice.Store
	items  []Item
	pos    int
	stage  Stage
	report Report
}

func NewBatch(store *filestoreservice.Store, items []Item) *Batch {
	b := &Batch{store: store, items: items}
	b.settle()
	return b
}

func (b *Batch) Stage() Stage { return b.stage }

// Current is the item awaiting a decision
func (b *Batch) Current() (Item, bool) {
	if b.stage == StageDone {
		return Item{}, false
	}
	return b.items[b.pos], true
}

// Position returns the 1-based index of the current item and the batch size
func (b *Batch) Position() (int, int) {
	return b.pos + 1, len(b.items)
}

// Accept commits the current item, or moves to StageConflict when its name is taken
func (b *Batch) Accept() error {
	if b.stage != StagePreview {
		return fmt.Errorf("accept during %s: %w", b.stage, ErrStage)
	}
	item := b.items[b.pos]

	err := b.store.Add(item.Name, item.Content)
	switch {
	case err == nil:
		b.report.Added = append(b.report.Added, item.Name)
		b.next()
	case errors.Is(err, filestoreservice.ErrNameConflict):
		b.stage = StageConflict
	default:
		b.report.Failed = append(b.report.Failed, Item{Name: item.Name, URL: item.URL, Err: err})
		b.next()
	}
	return nil
}

func (b *Batch) Reject() error {
	if b.stage != StagePreview {
		return fmt.Errorf("reject during %s: %w", b.stage, ErrStage)
	}
	b.report.Rejected = append(b.report.Rejected, b.items[b.pos].Name)
	b.next()
	return nil
}

// Resolve applies a conflict decision. A rename onto a taken name leaves the
// batch in StageConflict so another decision can be made.
func (b *Batch) Resolve(r filestoreservice.Resolution) error {
	if b.stage != StageConflict {
		return fmt.Errorf("resolve during %s: %w", b.stage, ErrStage)
	}
	item := b.items[b.pos]

	outcome, err := b.store.Apply(item.Name, item.Content, r)
	if err != nil {
		if errors.Is(err, filestoreservice.ErrNameConflict) || errors.Is(err, filestoreservice.ErrInvalidName) {
			return err
		}
		b.report.Failed = append(b.report.Failed, Item{Name: item.Name, URL: item.URL, Err: err})
		b.next()
		return err
	}

	switch outcome {
	case filestoreservice.OutcomeOverwritten:
		b.report.Overwritten = append(b.report.Overwritten, item.Name)
	case filestoreservice.OutcomeRenamed:
		b.report.Renamed = append(b.report.Renamed, r.NewName)
	default:
		b.report.Skipped = append(b.report.Skipped, item.Name)
	}
	b.next()
	return nil
}

// Abort rejects every remaining item
func (b *Batch) Abort() {
	for b.stage != StageDone {
		b.report.Rejected = append(b.report.Rejected, b.items[b.pos].Name)
		b.next()
	}
}

func (b *Batch) Report() Report { return b.report }

func (b *Batch) next() {
	b.pos++
	b.stage = StagePreview
	b.settle()
}

// settle skips items that failed to fetch
func (b *Batch) settle() {
	for b.pos < len(b.items) && b.items[b.pos].Failed() {
		b.report.Failed = append(b.report.Failed, b.items[b.pos])
		b.pos++
	}
	if b.pos >= len(b.items) {
		b.stage = StageDone
	}
}
