package execservice

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeExec struct {
	result Result
	err    error
}

func (f fakeExec) Execute(ctx context.Context, source string) (Result, error) {
	return f.result, f.err
}

func TestRunnerLastWriterWins(t *testing.T) {
	r := NewRunner(fakeExec{}, nil)
	key := CellKey("nb.ipynb", 2)

	first := r.Begin(key)
	second := r.Begin(key)

	if r.Commit(first, Output{Text: "old"}) {
		t.Error("superseded ticket should not commit")
	}
	if !r.Commit(second, Output{Text: "new"}) {
		t.Fatal("latest ticket should commit")
	}
	out, ok := r.Output(key)
	if !ok || out.Text != "new" {
		t.Errorf("output = %+v, %v", out, ok)
	}
}

func TestRunnerDropDiscardsInFlight(t *testing.T) {
	r := NewRunner(fakeExec{}, nil)
	key := FileKey("a.py")
	ticket := r.Begin(key)
	other := r.Begin(CellKey("b.ipynb", 0))

	r.Drop("a.py")

	if r.Commit(ticket, Output{Text: "late"}) {
		t.Error("output for a dropped file must not be applied")
	}
	if _, ok := r.Output(key); ok {
		t.Error("dropped slot still has output")
	}
	if !r.Commit(other, Output{Text: "kept"}) {
		t.Error("unrelated slot should still accept output")
	}
}

func TestRunnerRunFormatsErrors(t *testing.T) {
	r := NewRunner(fakeExec{err: errors.Join(ErrExecution, errors.New("boom"))}, nil)
	out, applied := r.Run(context.Background(), r.Begin(FileKey("a.py")), "")
	if !applied || !out.Error {
		t.Fatalf("out = %+v applied = %v", out, applied)
	}
	if out.Text[:7] != "Error: " {
		t.Errorf("text = %q", out.Text)
	}
}

func TestRunnerStart(t *testing.T) {
	r := NewRunner(fakeExec{result: Result{Value: "1"}}, nil)
	done := make(chan Output, 1)

	if !r.Start(context.Background(), FileKey("a.py"), "1", func(_ Ticket, out Output) { done <- out }) {
		t.Fatal("start should succeed with an executor")
	}
	select {
	case out := <-done:
		if out.Text != "1" {
			t.Errorf("text = %q", out.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for run")
	}
}

func TestRunnerWithoutExecutor(t *testing.T) {
	r := NewRunner(nil, nil)
	if r.Available() {
		t.Error("runner without executor should not be available")
	}
	if r.Start(context.Background(), FileKey("a.py"), "1", nil) {
		t.Error("start should report false without an executor")
	}
}
