package cmd

import (
	"fmt"
	"runtime"
	rdebug "runtime/debug"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/tabv/pkg/settings"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print " + settings.CliBinaryName + " version",
		Args:  cobra.NoArgs,
		// The viewer setup in the root pre-run is not needed here.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), cliVersionString())
			return err
		},
	}
}

// cliVersionString builds the version line for `tabv version` and --version.
// Ldflags win; otherwise the module version or VCS revision from the build
// info is used.
func cliVersionString() string {
	version := settings.VersionInformation.BuildVersion
	commit := settings.VersionInformation.Commit
	goVersion := runtime.Version()

	if info, ok := rdebug.ReadBuildInfo(); ok {
		if info.GoVersion != "" {
			goVersion = info.GoVersion
		}
		if commit == "unknown" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			}
		}
		if version == "v0.0.0-nightly" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
	}
	return fmt.Sprintf("%s %s (commit %s, %s)", settings.CliBinaryName, version, commit, goVersion)
}
