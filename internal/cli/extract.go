// internal/cli/extract.go
package toolless

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwiater/toolless/internal/shim"
	"github.com/mwiater/toolless/internal/tools"
)

// extractCmd represents the 'extract' command: a one-shot run of the
// extraction pipeline over text from the arguments or stdin.
var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Extract tool calls from reply text",
	Long: `The 'extract' command runs the tool-call extraction pipeline over the given
text (or stdin when no argument is supplied) and prints any calls matching
the configured tool catalog.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) > 0 {
			text = strings.Join(args, " ")
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = string(data)
		}

		cfg := getConfig()
		pipeline := shim.New(tools.NewCatalog(cfg.EnabledTools()))
		message, drops := pipeline.AfterReceive(text)

		if cfg.Debug {
			pp.Println(message.ToolCalls)
		}

		if len(message.ToolCalls) == 0 {
			color.Yellow("No tool calls found.")
		}
		for _, call := range message.ToolCalls {
			color.Green("%s", call.Name)
			fmt.Printf("  id: %s\n", call.ID)
			for key, value := range call.Arguments {
				fmt.Printf("  %s: %v\n", key, value)
			}
		}
		if total := drops.Total(); total > 0 {
			color.Red("Dropped %d candidate(s): parse=%d shape=%d unknown=%d empty=%d",
				total, drops.ParseFailures, drops.NotCallShaped, drops.UnknownTool, drops.EmptyArguments)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
