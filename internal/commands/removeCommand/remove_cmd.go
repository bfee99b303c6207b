package removecommand

import (
	"fmt"

	"github.com/redjax/nbview/internal/commands"
	"github.com/spf13/cobra"
)

func NewRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name> [name...]",
		Aliases: []string{"remove"},
		Short:   "Remove stored files",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := commands.FromCommand(cmd).Workspace().Store()
			for _, name := range args {
				if err := store.Remove(name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", name)
			}
			return nil
		},
	}
}
