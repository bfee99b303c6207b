package addcommand

import (
	"fmt"

	"github.com/redjax/nbview/internal/commands"
	"github.com/redjax/nbview/internal/utils/prompt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewAddCommand() *cobra.Command {
	var onConflict string

	cmd := &cobra.Command{
		Use:   "add <path> [path...]",
		Short: "Add local files to the viewer",
		Long: `Read files from disk into the viewer, stored under their base names.

When a name is already taken, --on-conflict decides: prompt (default) asks for
each file, overwrite replaces the stored content, rename moves the existing
entry to a free "name (n).ext" and skip leaves it alone.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := commands.FromCommand(cmd)
			ws := s.Workspace()

			resolver, err := commands.ConflictResolver(prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()), ws.Store(), onConflict)
			if err != nil {
				return err
			}

			var failed int
			for _, p := range args {
				outcome, err := ws.AddPath(cmd.Context(), p, resolver)
				if err != nil {
					s.Log.Error("add failed", zap.String("path", p), zap.Error(err))
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", p, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", p, outcome)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be added", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&onConflict, "on-conflict", "prompt", commands.OnConflictUsage)

	return cmd
}
