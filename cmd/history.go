package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	config "github.com/inference-gateway/envkeys/config"
	storage "github.com/inference-gateway/envkeys/internal/infra/storage"
	cobra "github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent environment switches and hotkey invocations",
	Long: `History prints the activity journal, newest first. The journal must be
enabled in the configuration (journal.enabled).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := currentConfig()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		return printHistory(ctx, cmd.OutOrStdout(), cfg.Journal, limit)
	},
}

func printHistory(ctx context.Context, w io.Writer, cfg config.JournalConfig, limit int) error {
	if !cfg.Enabled {
		return fmt.Errorf("journal is disabled; set journal.enabled to true")
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No activity recorded yet.")
		return nil
	}

	for _, entry := range entries {
		line := fmt.Sprintf("%s  %-12s %-16s", entry.Timestamp.Local().Format("2006-01-02 15:04:05"), entry.Kind, entry.Environment)
		if entry.Token != "" {
			line += " " + entry.Token
		}
		if entry.Message != "" {
			line += "  " + entry.Message
		}
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "maximum number of entries to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
