// internal/cli/show_config.go
package toolless

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showConfigCmd implements 'show config', printing the merged
// configuration after flags override the file values.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overriden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		if cfg.ConfigPath == "" {
			fmt.Println("No config file loaded (using defaults).")
		} else {
			fmt.Printf("Config file: %s\n\n", cfg.ConfigPath)
		}

		fmt.Println("Current configuration:")
		fmt.Printf("  Debug:             %v\n", viper.GetBool("debug"))
		fmt.Printf("  Disable Streaming: %v\n", viper.GetBool("disableStreaming"))
		fmt.Printf("  Hosts:             %d\n", len(cfg.Hosts))
		for _, h := range cfg.Hosts {
			fmt.Printf("    - %s %s (%s)\n", h.Name, h.URL, h.Model)
		}
		fmt.Printf("  Log file:          %s\n", cfg.LogFilePath())
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
