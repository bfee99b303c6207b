package execservice

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestStarlarkLastExpression(t *testing.T) {
	ex := NewStarlark(0, time.Second, nil)

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"arithmetic", "x = 2\nx * 21\n", "42"},
		{"string is unquoted", "'hello'", "hello"},
		{"function call", "def f(n):\n    return n + 1\n\nf(2)\n", "3"},
		{"assignment only", "x = 1\n", ""},
		{"none", "None", ""},
		{"list", "[1, 2]", "[1, 2]"},
		{"print then value", "print('a')\n1 + 1", "a\n2"},
		{"print only", "print('a')\nprint('b')\n", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ex.Execute(context.Background(), tt.src)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if got := res.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStarlarkErrors(t *testing.T) {
	ex := NewStarlark(0, time.Second, nil)

	for _, src := range []string{"1 // 0", "undefined_name + 1", "def (:"} {
		_, err := ex.Execute(context.Background(), src)
		if !errors.Is(err, ErrExecution) {
			t.Errorf("%q: expected ErrExecution, got %v", src, err)
			continue
		}
		if text := ErrorText(err); !strings.HasPrefix(text, "Error: ") || strings.Contains(text, ErrExecution.Error()) {
			t.Errorf("%q: ErrorText = %q", src, text)
		}
	}
}

func TestStarlarkStepLimit(t *testing.T) {
	ex := NewStarlark(1000, 5*time.Second, nil)
	_, err := ex.Execute(context.Background(), "x = 0\nwhile True:\n    x += 1\n")
	if !errors.Is(err, ErrExecution) {
		t.Fatalf("expected step limit to stop the loop, got %v", err)
	}
}

func TestStarlarkCancel(t *testing.T) {
	ex := NewStarlark(0, 0, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ex.Execute(ctx, "x = 0\nwhile True:\n    x += 1\n")
	if !errors.Is(err, ErrExecution) {
		t.Fatalf("expected cancellation error, got %v", err)
	}
}
