package workspaceservice

import "errors"

var (
	// ErrNotRunnable is returned for files or cells that cannot be executed
	ErrNotRunnable = errors.New("not runnable")
	// ErrNoExecutor is returned when execution is disabled
	ErrNoExecutor = errors.New("execution is disabled")
)
