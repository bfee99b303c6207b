package themecommand

import (
	"fmt"

	"github.com/redjax/nbview/internal/commands"
	persistservice "github.com/redjax/nbview/internal/services/persistService"
	"github.com/spf13/cobra"
)

func NewThemeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle|reset]",
		Short:     "Show or change the color theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle", "reset"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ws := commands.FromCommand(cmd).Workspace()

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ws.Theme())
				return nil
			}

			var (
				theme persistservice.Theme
				err   error
			)
			switch args[0] {
			case "toggle":
				theme, err = ws.ToggleTheme()
			case "reset":
				err = ws.ResetTheme()
				theme = ws.Theme()
			default:
				t, ok := persistservice.ParseTheme(args[0])
				if !ok {
					return fmt.Errorf("unknown theme %q (want light, dark, toggle or reset)", args[0])
				}
				theme, err = t, ws.SetTheme(t)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
			return nil
		},
	}
}
