package cmd

import (
	"fmt"
	"os"

	config "github.com/inference-gateway/envkeys/config"
	logger "github.com/inference-gateway/envkeys/internal/logger"
	cobra "github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "envkeys",
	Short: "Keyboard shortcut environments for the terminal",
	Long: `envkeys groups keyboard shortcuts into named environments. One environment
is active at a time; type an environment's tag to switch to it. Shortcuts of
the active environment run their configured action.`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to envkeys!")
		fmt.Println("Use 'envkeys run' to start the interactive session or --help to see available commands.")
	},
}

// Execute runs the root command
func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	configPath, _ := rootCmd.PersistentFlags().GetString("config")

	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appConfig = cfg
	logger.Init(verbose || cfg.Logging.Verbose, cfg)
}
