package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kyool-companion/internal/config"
	"github.com/comitanigiacomo/kyool-companion/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "kyool",
	Short: "Companion CLI for the Kyool fitness tracker",
	Long: `kyool talks to the Kyool backend on behalf of the signed-in user.

Log water, check streaks, keep local goals, track body fat and manage the
waitlist from the terminal, or run the companion API with 'kyool serve'.

The user comes from KYOOL_ID_TOKEN; everything else is read from the
environment or a .env file.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	envFile  string
	logLevel string

	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Path to an env file to load")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	cfg = config.Load(envFile)
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := logger.Initialize(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
