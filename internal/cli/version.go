package cli

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the lvalign version",
		Long:  "Displays the build version and the Go version used to build lvalign.",
		Args:  cobra.NoArgs,
		// No config or log file is needed to print a version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		PersistentPostRun: func(*cobra.Command, []string) {},
		Run: func(cmd *cobra.Command, _ []string) {
			v, goVersion := version, "unknown"
			if info, ok := debug.ReadBuildInfo(); ok {
				if v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
					v = info.Main.Version
				}
				goVersion = info.GoVersion
			}
			cmd.Println("lvalign version\t", v)
			cmd.Println("go version\t", goVersion)
		},
	}
}
