package commands

import (
	"context"
	"fmt"

	filestoreservice "github.com/redjax/nbview/internal/services/fileStoreService"
	renderservice "github.com/redjax/nbview/internal/services/renderService"
	workspaceservice "github.com/redjax/nbview/internal/services/workspaceService"
)

// NotFound is the error for a name missing from the store
func NotFound(name string) error {
	return fmt.Errorf("%q: %w", name, filestoreservice.ErrNotFound)
}

// RunAll executes a Python file, or every code cell of a notebook in order.
// Execution failures land in the output slots; only lookup and parse
// problems are returned.
func RunAll(ctx context.Context, ws *workspaceservice.Workspace, name string) error {
	content, ok := ws.Store().Get(name)
	if !ok {
		return NotFound(name)
	}

	switch renderservice.ModeFor(name) {
	case renderservice.ModePythonSource:
		_, err := ws.Run(ctx, name, 0)
		return err

	case renderservice.ModeNotebook:
		nb, err := renderservice.ParseNotebook(content)
		if err != nil {
			return err
		}
		for i, c := range nb.Cells {
			if c.Kind != renderservice.CellCode {
				continue
			}
			if _, err := ws.Run(ctx, name, i); err != nil {
				return err
			}
		}
		return nil
	}

	return fmt.Errorf("%s: %w", name, workspaceservice.ErrNotRunnable)
}
