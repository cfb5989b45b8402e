// internal/cli/root.go
package toolless

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/toolless/internal/appconfig"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "toolless",
	Short: "toolless: emulated tool calling for chat models without native support",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag so
		//    both pflags and viper reflect the same, final value.
		for _, name := range []string{"debug", "disableStreaming"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}

		// 3) Fold the flag-backed values onto the file-backed configuration
		//    (flags > config > defaults), giving other packages a stable snapshot.
		currentConfig.Debug = viper.GetBool("debug")
		currentConfig.DisableStreaming = viper.GetBool("disableStreaming")

		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// --config (defaults to the standard path)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("disableStreaming", false, "disable streaming responses")

	// Bind flags to Viper keys (flags override config)
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("disableStreaming", rootCmd.PersistentFlags().Lookup("disableStreaming"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config file and sets safe defaults. A
// missing file at the default path is not fatal: extraction-only commands
// work without one. A path the user passed explicitly must exist.
func ensureConfigLoaded() error {
	viper.SetDefault("debug", false)
	viper.SetDefault("disableStreaming", false)

	cfg, err := appconfig.Load(cfgFile)
	if err != nil {
		if cfgFile != appconfig.DefaultConfigPath {
			return fmt.Errorf("load config: %w", err)
		}
		if _, statErr := os.Stat(cfgFile); os.IsNotExist(statErr) {
			cfg = appconfig.Config{}
		} else {
			return fmt.Errorf("load config: %w", err)
		}
	}
	currentConfig = &cfg
	_ = viper.ReadInConfig()
	return nil
}

// getConfig returns the materialized configuration snapshot.
func getConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}
