// internal/cli/chat.go
package toolless

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/mwiater/toolless/internal/logging"
	"github.com/mwiater/toolless/internal/tui"
)

// chatCmd represents the 'chat' command.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a chat session with emulated tool calling",
	Long: `The 'chat' command starts an interactive chat session against a configured
host. Tool calls the model writes as JSON inside its reply are extracted,
executed, and fed back, even though the backend has no native tool support.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		if err := logging.Init(cfg.LogFilePath()); err != nil {
			log.Fatalf("init logging: %v", err)
		}
		defer logging.Close()

		if err := tui.Start(context.Background(), cfg); err != nil {
			log.Fatalf("chat: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
