package exportcommand

import (
	"fmt"
	"os"

	"github.com/redjax/nbview/internal/commands"
	renderservice "github.com/redjax/nbview/internal/services/renderService"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewExportCommand() *cobra.Command {
	var (
		output string
		run    bool
	)

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Write a stored file as a standalone HTML page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := commands.FromCommand(cmd)
			ws := s.Workspace()
			name := args[0]

			content, ok := ws.Store().Get(name)
			if !ok {
				return commands.NotFound(name)
			}
			if run {
				if err := commands.RunAll(cmd.Context(), ws, name); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				}
			}

			r := ws.HTMLRenderer()
			out := r.Render(name, content)
			if out.Failed() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", renderservice.Describe(out))
			}
			page := renderservice.Document(name, r.Compose(out), ws.Theme().Dark())

			if output == "" || output == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), page)
				return err
			}
			if err := os.WriteFile(output, []byte(page), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			s.Log.Info("exported", zap.String("file", name), zap.String("output", output))
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVarP(&run, "run", "r", false, "Execute Python code first and include live outputs")

	return cmd
}
