package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vacrashmap/crashcheck/cmd"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit, build date, and Go runtime of crashcheck.`,
	Run: func(c *cobra.Command, _ []string) {
		fmt.Fprintf(c.OutOrStdout(), "crashcheck version %s\n", cmd.Version)
		fmt.Fprintf(c.OutOrStdout(), "  commit:    %s\n", cmd.Commit)
		fmt.Fprintf(c.OutOrStdout(), "  built:     %s\n", cmd.Date)
		fmt.Fprintf(c.OutOrStdout(), "  go:        %s\n", runtime.Version())
	},
}
