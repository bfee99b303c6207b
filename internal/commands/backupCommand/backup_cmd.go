package backupcommand

import (
	"fmt"
	"time"

	"github.com/redjax/nbview/internal/commands"
	archiveservice "github.com/redjax/nbview/internal/services/archiveService"
	"github.com/redjax/nbview/internal/utils/path"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const backupName = "nbview"

func NewBackupCommand() *cobra.Command {
	var (
		outputDir string
		keep      int
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write every workspace file to a timestamped zip archive",
		Long: `Write every workspace file to <dir>/<timestamp>_nbview.zip, then remove
older backups beyond --keep. Restore with 'nbview import-zip <archive>'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := commands.FromCommand(cmd)
			ws := s.Workspace()

			dir := s.Config.Backup.Dir
			if cmd.Flags().Changed("output") {
				expanded, err := path.ExpandPath(outputDir)
				if err != nil {
					return err
				}
				dir = expanded
			}
			if !cmd.Flags().Changed("keep") {
				keep = s.Config.Backup.Keep
			}

			files := ws.Store().Entries()
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "[DRY RUN] Would write %d files to %s\n", len(files), dir)
				return nil
			}

			dest, err := archiveservice.Write(dir, backupName, files, time.Now())
			if err != nil {
				return err
			}
			s.Log.Info("backup written", zap.String("path", dest), zap.Int("files", len(files)))
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d files to %s\n", len(files), dest)

			removed, err := archiveservice.Cleanup(dir, backupName, keep, dest)
			for _, p := range removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed old backup %s\n", p)
			}
			if err != nil {
				return fmt.Errorf("cleanup failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Backup directory (default from config backup.dir)")
	cmd.Flags().IntVar(&keep, "keep", 0, "Number of backups to keep, 0 keeps all (default from config backup.keep)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be written without writing")

	return cmd
}
