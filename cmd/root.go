// The root command for the CLI.
// It composes the subcommands and owns the global flags (--config, --debug, --db, --ephemeral).
package cmd

import (
	"fmt"
	"os"

	"github.com/redjax/nbview/internal/commands"
	addcommand "github.com/redjax/nbview/internal/commands/addCommand"
	backupcommand "github.com/redjax/nbview/internal/commands/backupCommand"
	clearcommand "github.com/redjax/nbview/internal/commands/clearCommand"
	exportcommand "github.com/redjax/nbview/internal/commands/exportCommand"
	importcommand "github.com/redjax/nbview/internal/commands/importCommand"
	listcommand "github.com/redjax/nbview/internal/commands/listCommand"
	movecommand "github.com/redjax/nbview/internal/commands/moveCommand"
	removecommand "github.com/redjax/nbview/internal/commands/removeCommand"
	runcommand "github.com/redjax/nbview/internal/commands/runCommand"
	showcommand "github.com/redjax/nbview/internal/commands/showCommand"
	storagecommand "github.com/redjax/nbview/internal/commands/storageCommand"
	themecommand "github.com/redjax/nbview/internal/commands/themeCommand"
	viewcommand "github.com/redjax/nbview/internal/commands/viewCommand"
	"github.com/redjax/nbview/internal/version"

	"github.com/spf13/cobra"
)

var (
	// A path to a file to load configuration from (json, yaml, toml or .env)
	cfgFile string
	// Bound so they appear in --help; config.LoadConfig reads them from the flag set
	debug     bool
	dbPath    string
	ephemeral bool
)

var rootCmd = &cobra.Command{
	Use:   "nbview",
	Short: "View, run and import notebooks, Python and Markdown files",
	Long: `nbview keeps a workspace of .ipynb, .py and .md files, renders them in the
terminal or as HTML, runs Python cells, and imports files from GitHub.

Run 'nbview view' for the interactive viewer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.Setup(cmd, cfgFile)
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute the root Cobra command. The session is closed (and autosaved) even
// when the subcommand fails.
func Execute() {
	cmd, err := rootCmd.ExecuteC()
	if cmd != nil {
		if closeErr := commands.FromCommand(cmd).Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", closeErr)
			err = closeErr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (json, yaml, toml or .env)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "workspace database path (default ~/.nbview/nbview.db)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep the workspace in memory only")

	rootCmd.AddCommand(
		viewcommand.NewViewCommand(),
		listcommand.NewListCommand(),
		showcommand.NewShowCommand(),
		runcommand.NewRunCommand(),
		exportcommand.NewExportCommand(),
		addcommand.NewAddCommand(),
		importcommand.NewImportCommand(),
		importcommand.NewImportGitCommand(),
		importcommand.NewImportZipCommand(),
		backupcommand.NewBackupCommand(),
		storagecommand.NewStorageCommand(),
		movecommand.NewMoveCommand(),
		removecommand.NewRemoveCommand(),
		clearcommand.NewClearCommand(),
		themecommand.NewThemeCommand(),
		version.NewVersionCommand(),
		version.NewPackageInfoCommand(),
	)
}
