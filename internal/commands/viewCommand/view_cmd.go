package viewcommand

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/redjax/nbview/internal/commands"
	"github.com/redjax/nbview/internal/services/viewerService/ui"
	"github.com/spf13/cobra"
)

func NewViewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "view",
		Aliases: []string{"ui", "tui"},
		Short:   "Browse, run and import files interactively",
		Long: `Open the workspace in a full-screen terminal viewer.

Select a file to render it, run Python files and notebook cells, import from
GitHub URLs or local paths, and manage the file list.`,
		Annotations: map[string]string{commands.AnnotationTUI: "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := commands.FromCommand(cmd).Workspace()

			model := ui.New(ws)
			p := tea.NewProgram(model, tea.WithAltScreen())
			final, err := p.Run()
			if m, ok := final.(ui.Model); ok {
				m.Close()
			} else {
				model.Close()
			}
			if err != nil {
				return fmt.Errorf("run viewer: %w", err)
			}
			return nil
		},
	}
	return cmd
}
