package runcommand

import (
	"fmt"

	"github.com/redjax/nbview/internal/commands"
	execservice "github.com/redjax/nbview/internal/services/execService"
	"github.com/spf13/cobra"
)

func NewRunCommand() *cobra.Command {
	var cell int

	cmd := &cobra.Command{
		Use:   "run <name>",
		Short: "Execute a Python file or a notebook cell",
		Long: `Execute Python code with the embedded interpreter and print its output.

The interpreter runs a Python-like dialect (Starlark): print output and the
value of a trailing expression are shown. For notebooks, --cell selects the
code cell by its 1-based position among markdown and code cells, the same
numbering the viewer shows. Raw cells are not displayed and are not counted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := commands.FromCommand(cmd).Workspace()

			out, err := ws.Run(cmd.Context(), args[0], cell-1)
			if err != nil {
				return err
			}

			if out.Text != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out.Text)
			}
			if out.Error {
				cmd.SilenceErrors = true
				return execservice.ErrExecution
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&cell, "cell", "c", 1, "Notebook cell to run (1-based, raw cells not counted)")

	return cmd
}
