package cmd

import (
	"fmt"
	"io"
	"strings"

	glamour "github.com/charmbracelet/glamour"
	config "github.com/inference-gateway/envkeys/config"
	keys "github.com/inference-gateway/envkeys/internal/keys"
	styles "github.com/inference-gateway/envkeys/internal/ui/styles"
	cobra "github.com/spf13/cobra"
)

var environmentsCmd = &cobra.Command{
	Use:     "environments",
	Aliases: []string{"envs"},
	Short:   "Inspect configured environments",
}

var environmentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured environments and their hotkeys",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := currentConfig()
		if err != nil {
			return err
		}

		markdown, _ := cmd.Flags().GetBool("markdown")
		if !markdown {
			listEnvironments(cmd.OutOrStdout(), cfg)
			return nil
		}

		md := environmentsMarkdown(cfg)
		rendered, err := renderMarkdown(md)
		if err != nil {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), md)
			return nil
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

func listEnvironments(w io.Writer, cfg *config.Config) {
	if len(cfg.Environments) == 0 {
		_, _ = fmt.Fprintln(w, "No environments configured. Run 'envkeys config init' to create an example.")
		return
	}

	for _, env := range cfg.Environments {
		marker := styles.Circle
		if env.Name == cfg.InitialEnvironment {
			marker = styles.Bullet
		}
		_, _ = fmt.Fprintf(w, "%s %s (tag: %s)\n", marker, env.Name, env.Tag)

		for _, hk := range env.Hotkeys {
			_, _ = fmt.Fprintf(w, "    %-24s %-10s %s\n", displayToken(hk.Keys), hk.Action, hotkeyDetail(hk))
		}
	}
}

func environmentsMarkdown(cfg *config.Config) string {
	var md strings.Builder
	md.WriteString("# Environments\n\n")

	if len(cfg.Environments) == 0 {
		md.WriteString("No environments configured.\n")
		return md.String()
	}

	for _, env := range cfg.Environments {
		fmt.Fprintf(&md, "## %s\n\n", env.Name)
		fmt.Fprintf(&md, "Tag: `%s`", env.Tag)
		if env.Name == cfg.InitialEnvironment {
			md.WriteString(" (initial)")
		}
		md.WriteString("\n\n")

		if len(env.Hotkeys) == 0 {
			md.WriteString("_No hotkeys._\n\n")
			continue
		}

		md.WriteString("| Keys | Action | Details |\n|---|---|---|\n")
		for _, hk := range env.Hotkeys {
			fmt.Fprintf(&md, "| `%s` | %s | %s |\n", displayToken(hk.Keys), hk.Action, strings.ReplaceAll(hotkeyDetail(hk), "|", "\\|"))
		}
		md.WriteString("\n")
	}
	return md.String()
}

func displayToken(spec string) string {
	if token := keys.NormalizeSpec(spec); token != "" {
		return token
	}
	return spec + " (invalid)"
}

func hotkeyDetail(hk config.HotkeyConfig) string {
	if hk.Description != "" {
		return hk.Description
	}
	switch hk.Action {
	case config.ActionNotify:
		return hk.Message
	case config.ActionActivate:
		return "-> " + hk.Target
	case config.ActionExec:
		return strings.Join(hk.Command, " ")
	case config.ActionClipboard, config.ActionType:
		return hk.Text
	case config.ActionSend:
		return "sends " + displayToken(hk.Combo)
	}
	return ""
}

func renderMarkdown(markdown string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return "", err
	}

	return r.Render(markdown)
}

func init() {
	environmentsListCmd.Flags().Bool("markdown", false, "render the list as markdown")
	environmentsCmd.AddCommand(environmentsListCmd)
	rootCmd.AddCommand(environmentsCmd)
}
