package cmd

import (
	"fmt"
	"io"
	"os"

	config "github.com/inference-gateway/envkeys/config"
	styles "github.com/inference-gateway/envkeys/internal/ui/styles"
	cobra "github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage envkeys configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration with example environments",
	Long: `Initialize writes .envkeys/config.yaml (or the file given with --config)
containing the default settings and two example environments.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		force, _ := cmd.Flags().GetBool("force")
		return initConfigFile(cmd.OutOrStdout(), path, force)
	},
}

func initConfigFile(w io.Writer, path string, force bool) error {
	if path == "" {
		path = config.DefaultConfigPath
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file %s already exists (use --force to replace)", path)
	}

	if err := config.ExampleConfig().Save(path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	_, _ = fmt.Fprintf(w, "%s Created %s\n", styles.StyledCheckMark(), path)
	_, _ = fmt.Fprintln(w, "Run 'envkeys run' and type a tag (ed or br) to switch environments.")
	return nil
}

func init() {
	configInitCmd.Flags().BoolP("force", "f", false, "overwrite an existing configuration file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
