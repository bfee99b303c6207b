package movecommand

import (
	"fmt"

	"github.com/redjax/nbview/internal/commands"
	"github.com/spf13/cobra"
)

func NewMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "mv <old> <new>",
		Aliases: []string{"rename"},
		Short:   "Rename a stored file, keeping its position",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := commands.FromCommand(cmd).Workspace().Store().Rename(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s -> %s\n", args[0], args[1])
			return nil
		},
	}
}
