package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kashbill/internal/config"
	"kashbill/internal/infrastructure/logging"
)

var (
	// Global flags
	langHint  string
	startPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kashbill",
	Short: "KASHBILL - sound design portfolio",
	Long: `kashbill renders the KASHBILL portfolio in the terminal.

Run without arguments to open the interactive site. Pages fade out and in
as you navigate; the language toggle is remembered between sessions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		// The interactive UI owns the terminal, so it only logs to a file.
		if cmd == cmd.Root() {
			logger, err = logging.ForTUI(cfg.LogLevel, cfg.LogFile)
		} else {
			logger, err = logging.New(cfg.LogLevel, cfg.LogFile)
		}
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&langHint, "lang-hint", "",
		"platform language hint (Accept-Language form); defaults to LC_ALL, LC_MESSAGES, LANG, LANGUAGE")
	rootCmd.Flags().StringVar(&startPath, "start", "", "path to open first (default PORTFOLIO_START_PATH)")

	rootCmd.AddCommand(resolveCmd, langCmd, routesCmd, navigateCmd, migrateCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
