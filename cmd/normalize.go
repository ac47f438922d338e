package cmd

import (
	"fmt"
	"io"

	keys "github.com/inference-gateway/envkeys/internal/keys"
	styles "github.com/inference-gateway/envkeys/internal/ui/styles"
	cobra "github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize SPEC...",
	Short: "Print the canonical token of key combinations",
	Long: `Normalize converts user-written key combinations such as "ctrl+shift+a"
or "cmd+k" into the canonical tokens environments match against. Invalid
combinations are reported and make the command fail.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return normalizeSpecs(cmd.OutOrStdout(), args)
	},
}

func normalizeSpecs(w io.Writer, specs []string) error {
	invalid := 0
	for _, spec := range specs {
		token := keys.NormalizeSpec(spec)
		if token == "" {
			invalid++
			_, _ = fmt.Fprintf(w, "%s %q is not a valid combination\n", styles.StyledCrossMark(), spec)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", spec, token)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d combinations are invalid", invalid, len(specs))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
