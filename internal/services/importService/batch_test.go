package importservice

import (
	"context"
	"errors"
	"fmt"
	"testing"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
)

func TestBatchAcceptRejectConflict(t *testing.T) {
	store := filestoreservice.New()
	_ = store.Add("a.py", "old")

	b := NewBatch(store, []Item{
		{Name: "bad.md", Err: errors.New("boom")},
		{Name: "a.py", Content: "new"},
		{Name: "b.md", Content: "# b"},
		{Name: "c.py", Content: "c"},
	})

	if i, n := b.Position(); b.Stage() != StagePreview || i != 2 || n != 4 {
		t.Fatalf("stage %v at %d/%d", b.Stage(), i, n)
	}
	if err := b.Resolve(filestoreservice.Overwrite()); !errors.Is(err, ErrStage) {
		t.Errorf("resolve during preview: %v", err)
	}

	if err := b.Accept(); err != nil {
		t.Fatal(err)
	}
	if b.Stage() != StageConflict {
		t.Fatalf("stage = %v, want conflict", b.Stage())
	}
	if err := b.Accept(); !errors.Is(err, ErrStage) {
		t.Errorf("accept during conflict: %v", err)
	}

	if err := b.Resolve(filestoreservice.RenameTo("a.py")); !errors.Is(err, filestoreservice.ErrNameConflict) {
		t.Fatalf("rename onto itself: %v", err)
	}
	if b.Stage() != StageConflict {
		t.Fatal("failed rename should keep the conflict open")
	}
	if err := b.Resolve(filestoreservice.RenameTo("a_old.py")); err != nil {
		t.Fatal(err)
	}

	if err := b.Reject(); err != nil {
		t.Fatal(err)
	}
	if err := b.Accept(); err != nil {
		t.Fatal(err)
	}
	if b.Stage() != StageDone {
		t.Fatalf("stage = %v, want done", b.Stage())
	}
	if _, ok := b.Current(); ok {
		t.Error("no current item after done")
	}

	r := b.Report()
	if fmt.Sprint(r.Renamed, r.Rejected, r.Added) != "[a_old.py] [b.md] [c.py]" || len(r.Failed) != 1 {
		t.Errorf("report = %+v", r)
	}
	if got := r.String(); got != "1 added, 1 renamed, 1 rejected, 1 failed" {
		t.Errorf("report string = %q", got)
	}

	if c, _ := store.Get("a.py"); c != "new" {
		t.Errorf("a.py = %q", c)
	}
	if c, _ := store.Get("a_old.py"); c != "old" {
		t.Errorf("a_old.py = %q", c)
	}
	if fmt.Sprint(store.List()) != "[a_old.py a.py c.py]" {
		t.Errorf("order = %v", store.List())
	}
}

func TestBatchAllFailedIsDone(t *testing.T) {
	b := NewBatch(filestoreservice.New(), []Item{{Name: "x", Err: ErrFetchFailed}})
	if b.Stage() != StageDone || b.Report().Changed() {
		t.Errorf("stage %v report %+v", b.Stage(), b.Report())
	}
	if NewBatch(filestoreservice.New(), nil).Report().String() != "nothing imported" {
		t.Error("empty batch report")
	}
}

func TestBatchAbort(t *testing.T) {
	store := filestoreservice.New()
	b := NewBatch(store, []Item{{Name: "a.py"}, {Name: "b.py"}})
	_ = b.Accept()
	b.Abort()
	if b.Stage() != StageDone || fmt.Sprint(b.Report().Rejected) != "[b.py]" || store.Len() != 1 {
		t.Errorf("report = %+v", b.Report())
	}
}

func TestRunWithCollaborators(t *testing.T) {
	store := filestoreservice.New()
	_ = store.Add("a.py", "old")
	_ = store.Add("b.py", "old")

	var previewed []string
	preview := PreviewerFunc(func(ctx context.Context, it Item, i, n int) (bool, error) {
		previewed = append(previewed, fmt.Sprintf("%s %d/%d", it.Name, i, n))
		return it.Name != "skip.md", nil
	})

	decisions := map[string]filestoreservice.Resolution{
		"a.py": filestoreservice.Overwrite(),
		"b.py": filestoreservice.Skip(),
	}
	resolve := filestoreservice.ResolverFunc(func(ctx context.Context, name string) (filestoreservice.Resolution, error) {
		return decisions[name], nil
	})

	b := NewBatch(store, []Item{
		{Name: "a.py", Content: "new a"},
		{Name: "b.py", Content: "new b"},
		{Name: "skip.md", Content: "x"},
		{Name: "c.md", Content: "c"},
	})
	report, err := Run(context.Background(), b, preview, resolve, nil)
	if err != nil {
		t.Fatal(err)
	}

	if fmt.Sprint(previewed) != "[a.py 1/4 b.py 2/4 skip.md 3/4 c.md 4/4]" {
		t.Errorf("previewed = %v", previewed)
	}
	if fmt.Sprint(report.Overwritten, report.Skipped, report.Rejected, report.Added) != "[a.py] [b.py] [skip.md] [c.md]" {
		t.Errorf("report = %+v", report)
	}
	if c, _ := store.Get("a.py"); c != "new a" {
		t.Errorf("a.py = %q", c)
	}
	if c, _ := store.Get("b.py"); c != "old" {
		t.Errorf("b.py = %q", c)
	}
}

func TestRunStopsOnRepeatedBadRename(t *testing.T) {
	store := filestoreservice.New()
	_ = store.Add("a.py", "old")
	_ = store.Add("taken.py", "x")

	calls := 0
	resolve := filestoreservice.ResolverFunc(func(ctx context.Context, name string) (filestoreservice.Resolution, error) {
		calls++
		return filestoreservice.RenameTo("taken.py"), nil
	})

	b := NewBatch(store, []Item{{Name: "a.py", Content: "new"}})
	_, err := Run(context.Background(), b, nil, resolve, nil)
	if !errors.Is(err, filestoreservice.ErrNameConflict) || calls != maxResolveAttempts {
		t.Errorf("err = %v after %d calls", err, calls)
	}
	if c, _ := store.Get("a.py"); c != "old" {
		t.Errorf("store changed: %q", c)
	}
}

func TestRunDefaultsAndCancel(t *testing.T) {
	store := filestoreservice.New()
	_ = store.Add("a.py", "old")

	report, err := Run(context.Background(), NewBatch(store, []Item{{Name: "a.py", Content: "new"}, {Name: "b.py"}}), nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(report.Skipped, report.Added) != "[a.py] [b.py]" {
		t.Errorf("report = %+v", report)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err = Run(ctx, NewBatch(store, []Item{{Name: "c.py"}}), nil, nil, nil)
	if !errors.Is(err, context.Canceled) || store.Has("c.py") || len(report.Rejected) != 1 {
		t.Errorf("err = %v report = %+v", err, report)
	}
}
