package showcommand

import (
	"fmt"

	"github.com/redjax/nbview/internal/commands"
	renderservice "github.com/redjax/nbview/internal/services/renderService"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type showOptions struct {
	html    bool
	run     bool
	noRun   bool
	preview bool
	width   int
}

func NewShowCommand() *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Render a stored file to the terminal",
		Long: `Render a stored file by its extension: Markdown, highlighted Python, a
notebook cell by cell, or plain text.

A Python file is executed before rendering whenever execution is enabled,
so its output shows below the source. --no-run turns that off. --run also
executes every code cell of a notebook so live outputs are shown in place
of recorded ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.html, "html", false, "Print an HTML fragment instead of terminal output")
	cmd.Flags().BoolVarP(&opts.run, "run", "r", false, "Execute Python code before rendering, notebooks included")
	cmd.Flags().BoolVar(&opts.noRun, "no-run", false, "Never execute code, not even a Python file")
	cmd.MarkFlagsMutuallyExclusive("run", "no-run")
	cmd.Flags().BoolVarP(&opts.preview, "preview", "p", false, "Show the import preview (first cells only)")
	cmd.Flags().IntVarP(&opts.width, "width", "w", 0, "Wrap width for terminal output (default from config)")

	return cmd
}

func runShow(cmd *cobra.Command, name string, opts showOptions) error {
	s := commands.FromCommand(cmd)
	ws := s.Workspace()

	content, ok := ws.Store().Get(name)
	if !ok {
		return commands.NotFound(name)
	}

	var (
		r   *renderservice.Renderer
		err error
	)
	if opts.html {
		r = ws.HTMLRenderer()
	} else if r, err = ws.TerminalRenderer(opts.width); err != nil {
		return fmt.Errorf("terminal renderer: %w", err)
	}

	if shouldRun(name, opts, ws.Runner().Available()) {
		if err := commands.RunAll(cmd.Context(), ws, name); err != nil {
			s.Log.Warn("run before show failed", zap.String("file", name), zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		}
	}

	var out renderservice.Output
	if opts.preview {
		out = r.Preview(name, content, ws.Config().Import.PreviewCells)
	} else {
		out = r.Render(name, content)
	}
	if out.Failed() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", renderservice.Describe(out))
	}

	fmt.Fprintln(cmd.OutOrStdout(), r.Compose(out))
	return nil
}

// shouldRun reports whether name is executed before it is rendered
func shouldRun(name string, opts showOptions, available bool) bool {
	switch {
	case opts.preview || opts.noRun:
		return false
	case opts.run:
		return true
	}
	return available && renderservice.ModeFor(name) == renderservice.ModePythonSource
}
