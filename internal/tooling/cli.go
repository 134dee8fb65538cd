// CLASSIFICATION: COMMUNITY
// Filename: cli.go v0.3
// Date Modified: 2026-10-15
// Author: Lukas Bower
//
// ─────────────────────────────────────────────────────────────
// devserve · Go CLI Scaffold
//
// Provides the Cobra root command shared by devserve binaries. The
// caller attaches its own flags and RunE; a `version` sub-command
// is always present.
//
// Example:
//
//   func main() {
//       root := tooling.NewRootCommand("devserve", "Serve a site")
//       root.RunE = run
//       tooling.Execute(root)
//   }
// ─────────────────────────────────────────────────────────────
package tooling

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is reported by the version sub-command.
var Version = "v0.1.0"

// NewRootCommand returns a root command carrying the built-in sub-commands.
func NewRootCommand(use, short string) *cobra.Command {
	root := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the " + use + " version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", use, Version)
		},
	})
	return root
}

// Execute runs the CLI.  Typically called from main().
func Execute(root *cobra.Command) {
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
