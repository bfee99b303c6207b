package version

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func showPackageInfo(cmd *cobra.Command, args []string) error {
	info := GetPackageInfo()

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleRounded)
	tw.AppendRows([]table.Row{
		{"Program", info.PackageName},
		{"Owner", info.RepoUser},
		{"Repository", info.RepoName},
		{"URL", info.RepoUrl},
		{"Version", info.PackageVersion},
		{"Commit", info.PackageCommit},
		{"Release date", info.PackageReleaseDate},
	})
	tw.Render()

	return nil
}
