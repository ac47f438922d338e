package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	tcell "github.com/gdamore/tcell/v2"
	config "github.com/inference-gateway/envkeys/config"
	container "github.com/inference-gateway/envkeys/internal/container"
	tcellinput "github.com/inference-gateway/envkeys/internal/input/tcellinput"
	teainput "github.com/inference-gateway/envkeys/internal/input/teainput"
	logger "github.com/inference-gateway/envkeys/internal/logger"
	ui "github.com/inference-gateway/envkeys/internal/ui"
	cobra "github.com/spf13/cobra"
	zap "go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive environments session",
	Long: `Run loads the configured environments and starts the terminal interface.
Type an environment's tag to activate it; hotkeys of the active environment
run their action. Press ctrl+c to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := currentConfig()
		if err != nil {
			return err
		}

		if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
			cfg.UI.Backend = backend
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runSession(ctx, cfg)
	},
}

func runSession(ctx context.Context, cfg *config.Config) error {
	services, err := container.NewServiceContainer(cfg, logger.L())
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Warn("failed to close services", "error", err)
		}
	}()

	switch cfg.UI.Backend {
	case config.BackendTcell:
		return runTcell(ctx, services)
	default:
		return runTea(ctx, services)
	}
}

func runTea(ctx context.Context, services *container.ServiceContainer) error {
	source := teainput.NewSource()
	if err := services.GetManager().Init(source); err != nil {
		return fmt.Errorf("failed to attach input: %w", err)
	}
	services.ActivateInitial()

	program := tea.NewProgram(
		ui.NewModel(services.Session(), source),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("terminal interface failed: %w", err)
	}
	return nil
}

func runTcell(ctx context.Context, services *container.ServiceContainer) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	source := tcellinput.NewSource()
	if err := services.GetManager().Init(source); err != nil {
		return fmt.Errorf("failed to attach input: %w", err)
	}
	services.ActivateInitial()

	logger.L().Debug("tcell session started", zap.Int("environments", len(services.GetManager().Environments())))
	return ui.NewTcellView(screen, services.Session(), source).Run(ctx)
}

func init() {
	runCmd.Flags().String("backend", "", fmt.Sprintf("terminal backend: %s or %s (default from ui.backend)", config.BackendTea, config.BackendTcell))
	rootCmd.AddCommand(runCmd)
}
