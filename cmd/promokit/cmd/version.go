package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/custodiet/promokit/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Shows the version",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "promokit v%s\n", version.Platform)
		for _, name := range version.Commands() {
			fmt.Fprintf(out, "  %-11s %s\n", name+":", version.CommandVersion(name))
		}
		fmt.Fprintf(out, "  Git Commit: %s\n", version.GitCommit)
		fmt.Fprintf(out, "  Build Date: %s\n", version.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
