package importcommand

import (
	"context"
	"fmt"
	"io"

	"github.com/redjax/nbview/internal/commands"
	archiveservice "github.com/redjax/nbview/internal/services/archiveService"
	importservice "github.com/redjax/nbview/internal/services/importService"
	renderservice "github.com/redjax/nbview/internal/services/renderService"
	workspaceservice "github.com/redjax/nbview/internal/services/workspaceService"
	"github.com/redjax/nbview/internal/utils/path"
	"github.com/redjax/nbview/internal/utils/prompt"
	"github.com/redjax/nbview/internal/utils/spinner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type importOptions struct {
	yes        bool
	onConflict string
}

func (o *importOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.yes, "yes", "y", false, "Import every file without showing a preview")
	cmd.Flags().StringVar(&o.onConflict, "on-conflict", "prompt", commands.OnConflictUsage)
}

func NewImportCommand() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <github-url>",
		Short: "Import files from a GitHub blob or tree URL",
		Long: `Import a single file from a GitHub blob URL, or the .ipynb, .py and .md files
of a directory from a GitHub tree URL.

  nbview import https://github.com/owner/repo/blob/main/analysis.ipynb
  nbview import https://github.com/owner/repo/tree/main/notebooks

Each file is previewed before it is added unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := commands.FromCommand(cmd)
			ws := s.Workspace()

			stop := spinner.StartSpinner("Fetching " + args[0])
			items, err := ws.Importer().Resolve(cmd.Context(), args[0])
			stop()
			if err != nil {
				s.Log.Error("import failed", zap.String("url", args[0]), zap.Error(err))
				return fmt.Errorf("failed to import from GitHub: %w", err)
			}

			return commit(cmd, ws, items, opts)
		},
	}
	opts.register(cmd)

	return cmd
}

func NewImportGitCommand() *cobra.Command {
	var (
		opts importOptions
		ref  string
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "import-git <repo-path>",
		Short: "Import files from a local git repository at a revision",
		Long: `Import the .ipynb, .py and .md files of one directory of a local git
repository as they are at --ref (default HEAD). --path may also name a
single file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := commands.FromCommand(cmd).Workspace()

			src, err := importservice.OpenGitSource(args[0], ref, dir)
			if err != nil {
				return err
			}
			items, err := src.Items(cmd.Context())
			if err != nil {
				return err
			}

			return commit(cmd, ws, items, opts)
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&ref, "ref", "HEAD", "Branch, tag or commit to read")
	cmd.Flags().StringVar(&dir, "path", "", "Directory (or file) inside the repository")

	return cmd
}

func NewImportZipCommand() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import-zip <archive>",
		Short: "Import files from a zip archive, such as an nbview backup",
		Long: `Import the .ipynb, .py and .md files of a zip archive. Folders inside the
archive are flattened, so files keep only their base name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := commands.FromCommand(cmd).Workspace()

			archive, err := path.ExpandPath(args[0])
			if err != nil {
				return err
			}
			entries, err := archiveservice.Read(archive)
			if err != nil {
				return err
			}

			var items []importservice.Item
			for _, e := range entries {
				if importservice.Importable(e.Name) {
					items = append(items, importservice.Item{Name: e.Name, URL: archive, Content: e.Content})
				}
			}

			return commit(cmd, ws, items, opts)
		},
	}
	opts.register(cmd)

	return cmd
}

// commit runs the preview and conflict dialogs over the fetched items
func commit(cmd *cobra.Command, ws *workspaceservice.Workspace, items []importservice.Item, opts importOptions) error {
	if len(items) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No importable files found (.ipynb, .py, .md)")
		return nil
	}

	p := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
	resolver, err := commands.ConflictResolver(p, ws.Store(), opts.onConflict)
	if err != nil {
		return err
	}

	previewer := importservice.AcceptAll
	if !opts.yes {
		r, err := ws.TerminalRenderer(0)
		if err != nil {
			return err
		}
		previewer = newPreviewer(p, cmd.OutOrStdout(), r, ws.Config().Import.PreviewCells)
	}

	batch := importservice.NewBatch(ws.Store(), items)
	report, err := importservice.Run(cmd.Context(), batch, previewer, resolver, ws.Logger())

	for _, f := range report.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "Failed: %s: %v\n", f.Name, f.Err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Import: %s\n", report)
	return err
}

func newPreviewer(p *prompt.Prompter, out io.Writer, r *renderservice.Renderer, cells int) importservice.Previewer {
	return importservice.PreviewerFunc(func(ctx context.Context, item importservice.Item, index, total int) (bool, error) {
		preview := r.Preview(item.Name, item.Content, cells)
		fmt.Fprintf(out, "\n── Preview %d/%d: %s ──\n\n%s\n\n", index, total, renderservice.Describe(preview), r.Compose(preview))
		return p.Confirm(fmt.Sprintf("Import %s?", item.Name), true)
	})
}
