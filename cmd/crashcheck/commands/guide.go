package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vacrashmap/crashcheck/internal/errors"
	"github.com/vacrashmap/crashcheck/internal/guide"
)

func init() {
	rootCmd.AddCommand(guideCmd)
}

var guideCmd = &cobra.Command{
	Use:   "guide [topic]",
	Short: "Show usage guides",
	Long: `Show the built-in usage guides.

Without a topic, shows the main guide. Guides are embedded in the binary,
so they are available without any external files. Terminal output is
rendered as formatted markdown; piped output stays raw.`,
	Example: `  # Show the main guide
  crashcheck guide

  # Show the CSV format reference
  crashcheck guide format

See Also: crashcheck doctor`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGuide,
}

func runGuide(c *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	content, err := guide.Get(name)
	if err != nil {
		available, listErr := guide.List()
		if listErr != nil {
			return listErr
		}
		return errors.Newf("guide %q not found (available: %s)", name, strings.Join(available, ", "))
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		rendered, renderErr := glamour.Render(content, "dark")
		if renderErr == nil {
			fmt.Fprint(c.OutOrStdout(), rendered)
			return nil
		}
	}

	fmt.Fprint(c.OutOrStdout(), content)
	return nil
}
