package listcommand

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/redjax/nbview/internal/commands"
	renderservice "github.com/redjax/nbview/internal/services/renderService"
	"github.com/redjax/nbview/internal/utils/convert"
	"github.com/spf13/cobra"
)

func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored files in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := commands.FromCommand(cmd).Workspace().Store().Entries()
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No files. Add some with 'nbview add' or 'nbview import'.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleRounded)
			t.AppendHeader(table.Row{"#", "Name", "Type", "Size"})
			t.SetColumnConfigs([]table.ColumnConfig{
				{Number: 4, Align: text.AlignRight},
			})

			total := 0
			for i, e := range entries {
				total += len(e.Content)
				t.AppendRow(table.Row{i + 1, e.Name, renderservice.ModeFor(e.Name).Label(), convert.HumanBytes(len(e.Content))})
			}
			t.AppendFooter(table.Row{"", fmt.Sprintf("%d files", len(entries)), "", convert.HumanBytes(total)})
			t.Render()

			return nil
		},
	}
}
