// internal/cli/show.go
package toolless

import (
	"github.com/spf13/cobra"
)

// showCmd groups read-only inspection subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show application state",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
