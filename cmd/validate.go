package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"

	config "github.com/inference-gateway/envkeys/config"
	actions "github.com/inference-gateway/envkeys/internal/actions"
	environment "github.com/inference-gateway/envkeys/internal/environment"
	keys "github.com/inference-gateway/envkeys/internal/keys"
	styles "github.com/inference-gateway/envkeys/internal/ui/styles"
	cobra "github.com/spf13/cobra"
	zap "go.uber.org/zap"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configured environments",
	Long: `Validate loads the configuration, builds every environment and hotkey the
way 'envkeys run' does and reports errors. Hotkeys that can never fire
(a duplicate combination within one environment) and unusual main keys are
reported as warnings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := currentConfig()
		if err != nil {
			return err
		}
		return validateConfig(cmd.OutOrStdout(), cfg)
	},
}

func validateConfig(w io.Writer, cfg *config.Config) error {
	var errs []error
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}

	registry := environment.NewRegistry(nil, zap.NewNop())
	builder := actions.NewBuilder(actions.WithActivator(registry), actions.WithLogger(zap.NewNop()))
	if err := actions.LoadEnvironments(registry, cfg, builder); err != nil {
		errs = append(errs, err)
	}

	for _, warning := range configWarnings(cfg) {
		_, _ = fmt.Fprintf(w, "%s %s\n", styles.StyledWarning("!"), warning)
	}

	if err := errors.Join(errs...); err != nil {
		_, _ = fmt.Fprintf(w, "%s configuration has errors\n", styles.StyledCrossMark())
		return err
	}

	_, _ = fmt.Fprintf(w, "%s %d environments are valid\n", styles.StyledCheckMark(), registry.Len())
	return nil
}

// configWarnings reports hotkeys that load but are unlikely to do what the
// user meant
func configWarnings(cfg *config.Config) []string {
	var warnings []string
	for _, env := range cfg.Environments {
		seen := make(map[string]string)
		for _, hk := range env.Hotkeys {
			token := keys.NormalizeSpec(hk.Keys)
			if token == "" {
				continue
			}

			if first, dup := seen[token]; dup {
				warnings = append(warnings, fmt.Sprintf("environment %q: %q is shadowed by %q (both are %s)", env.Name, hk.Keys, first, token))
				continue
			}
			seen[token] = hk.Keys

			mods, mainKey := keys.SplitToken(token)
			switch {
			case slices.Contains(mods, mainKey):
				warnings = append(warnings, fmt.Sprintf("environment %q: %q has no main key and becomes %s", env.Name, hk.Keys, token))
			case !keys.IsKnownMainKey(mainKey):
				warnings = append(warnings, fmt.Sprintf("environment %q: %q uses unknown key %q", env.Name, hk.Keys, mainKey))
			}
		}
	}

	if cfg.InitialEnvironment == "" && len(cfg.Environments) > 0 {
		warnings = append(warnings, "initial_environment is not set; no environment is active until a tag is typed")
	}
	return warnings
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
