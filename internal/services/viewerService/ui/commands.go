package ui

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	execservice "github.com/redjax/nbview/internal/services/execService"
	importservice "github.com/redjax/nbview/internal/services/importService"
	workspaceservice "github.com/redjax/nbview/internal/services/workspaceService"
)

// waitForStoreChange blocks until the store subscription fires
func waitForStoreChange(events <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// runCmd executes source for a ticket already reserved on the runner
func runCmd(ctx context.Context, runner *execservice.Runner, ticket execservice.Ticket, source string) tea.Cmd {
	return func() tea.Msg {
		out, applied := runner.Run(ctx, ticket, source)
		return runDoneMsg{ticket: ticket, output: out, applied: applied}
	}
}

func importURLCmd(ctx context.Context, ws *workspaceservice.Workspace, url string) tea.Cmd {
	return func() tea.Msg {
		items, err := ws.Importer().Resolve(ctx, url)
		return importResolvedMsg{source: url, items: items, err: err}
	}
}

// readFileCmd loads a local file as a single-item import
func readFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return importResolvedMsg{source: path, err: err}
		}
		item := importservice.Item{Name: filepath.Base(path), URL: path, Content: string(data)}
		return importResolvedMsg{source: path, items: []importservice.Item{item}}
	}
}

func saveCmd(ws *workspaceservice.Workspace, explicit bool) tea.Cmd {
	return func() tea.Msg {
		if explicit {
			return savedMsg{explicit: true, err: ws.Save()}
		}
		return savedMsg{err: ws.Commit()}
	}
}
