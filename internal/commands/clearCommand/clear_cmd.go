package clearcommand

import (
	"fmt"

	"github.com/redjax/nbview/internal/commands"
	"github.com/redjax/nbview/internal/utils/prompt"
	"github.com/spf13/cobra"
)

func NewClearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := commands.FromCommand(cmd).Workspace().Store()
			n := store.Len()
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to clear")
				return nil
			}

			if !yes {
				ok, err := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm(fmt.Sprintf("Remove all %d files?", n), false)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			store.Clear()
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d files\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
