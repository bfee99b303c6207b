package execservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"
)

// ErrExecution wraps every failure raised while running user code
var ErrExecution = errors.New("execution failed")

// Result is what a run produced: anything printed, and the textual value of
// the final expression statement (empty when there is none or it is None).
type Result struct {
	Stdout string
	Value  string
}

// Text joins printed output and the final value the way the output pane shows them
func (r Result) Text() string {
	switch {
	case r.Stdout == "":
		return r.Value
	case r.Value == "":
		return strings.TrimRight(r.Stdout, "\n")
	default:
		return r.Stdout + r.Value
	}
}

// Executor runs source text. Implementations must honour ctx cancellation.
type Executor interface {
	Execute(ctx context.Context, source string) (Result, error)
}

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Starlark executes Python-like source with the go.starlark.net interpreter.
type Starlark struct {
	MaxSteps uint64
	Timeout  time.Duration
	log      *zap.Logger
}

func NewStarlark(maxSteps uint64, timeout time.Duration, log *zap.Logger) *Starlark {
	if log == nil {
		log = zap.NewNop()
	}
	return &Starlark{MaxSteps: maxSteps, Timeout: timeout, log: log}
}

func (s *Starlark) Execute(ctx context.Context, source string) (Result, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	var stdout strings.Builder
	thread := &starlark.Thread{
		Name: "exec",
		Print: func(_ *starlark.Thread, msg string) {
			stdout.WriteString(msg)
			stdout.WriteByte('\n')
		},
	}
	if s.MaxSteps > 0 {
		thread.SetMaxExecutionSteps(s.MaxSteps)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	value, err := s.run(thread, source)
	res := Result{Stdout: stdout.String(), Value: value}
	if err != nil {
		s.log.Debug("execution failed", zap.Error(err), zap.Uint64("steps", thread.ExecutionSteps()))
		return res, fmt.Errorf("%w: %s", ErrExecution, errorMessage(err))
	}
	return res, nil
}

// run executes all statements but the last; a trailing expression statement is
// evaluated separately so its value can be reported.
func (s *Starlark) run(thread *starlark.Thread, source string) (string, error) {
	f, err := fileOptions.Parse("<cell>", source, 0)
	if err != nil {
		return "", err
	}

	var last syntax.Expr
	if n := len(f.Stmts); n > 0 {
		if es, ok := f.Stmts[n-1].(*syntax.ExprStmt); ok {
			last = es.X
			f.Stmts = f.Stmts[:n-1]
		}
	}

	prog, err := starlark.FileProgram(f, starlark.StringDict{}.Has)
	if err != nil {
		return "", err
	}
	globals, err := prog.Init(thread, nil)
	if err != nil {
		return "", err
	}
	if last == nil {
		return "", nil
	}

	v, err := starlark.EvalExprOptions(fileOptions, thread, last, globals)
	if err != nil {
		return "", err
	}
	return valueText(v), nil
}

func valueText(v starlark.Value) string {
	switch v := v.(type) {
	case starlark.NoneType:
		return ""
	case starlark.String:
		return string(v)
	default:
		return v.String()
	}
}

func errorMessage(err error) string {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return evalErr.Msg
	}
	return err.Error()
}

// ErrorText renders a failure for the output pane
func ErrorText(err error) string {
	msg := err.Error()
	msg = strings.TrimPrefix(msg, ErrExecution.Error()+": ")
	return "Error: " + msg
}
