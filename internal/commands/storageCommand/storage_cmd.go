package storagecommand

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/redjax/nbview/internal/commands"
	"github.com/spf13/cobra"
)

func NewStorageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "storage",
		Short: "Show where the workspace is stored and its current state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := commands.FromCommand(cmd).Workspace()

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)

			info, err := ws.Persistence().Info()
			t.AppendRow(table.Row{"Storage", info.Location})
			if err != nil {
				t.AppendRow(table.Row{"Stored keys", "unreadable: " + err.Error()})
			} else {
				t.AppendRow(table.Row{"Stored keys", strings.Join(info.Keys, ", ")})
			}
			t.AppendRow(table.Row{"Files", ws.Store().Len()})
			t.AppendRow(table.Row{"Theme", ws.Theme()})
			t.AppendRow(table.Row{"Autosave", ws.Config().Autosave})
			t.AppendRow(table.Row{"Execution", ws.Runner().Available()})

			switch {
			case ws.PersistenceError() != nil:
				t.AppendRow(table.Row{"Problem", fmt.Sprintf("in-memory fallback: %v", ws.PersistenceError())})
			case ws.LoadError() != nil:
				t.AppendRow(table.Row{"Problem", fmt.Sprintf("saved data unreadable: %v", ws.LoadError())})
			}
			t.Render()
			return nil
		},
	}
}
