// internal/cli/tools.go
package toolless

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwiater/toolless/internal/tools"
)

// toolsCmd represents the 'tools' command.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the enabled tools and the prompt listing sent to models",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		cat := tools.NewCatalog(cfg.EnabledTools())

		color.Cyan("Enabled tools: %d", cat.Len())
		fmt.Println()
		fmt.Println(cat.Listing())

		if cfg.Debug {
			pp.Println(cat.Descriptors())
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
