package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/tabv/internal/ui"
)

func newThemesCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "themes",
		Short:             "List available themes",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range ui.ThemeNames() {
				marker := " "
				if name == ui.DefaultThemeName {
					marker = "*"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
