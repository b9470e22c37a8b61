package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/cmd/cli/commands"
	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/utils/logging"
)

var (
	env        string
	configPath string
	verbose    bool

	app    = &commands.AppContext{}
	logger *logging.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	app.Ctx = ctx

	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Duty roster CLI - Generate monthly duty rosters",
		Long:  `A CLI tool for generating, reviewing, editing and exporting monthly duty rosters.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
			if logger != nil {
				logger.Close()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment used to prefix log files (default $ROSTER_ENV)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the roster problem file (default roster.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to the console")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.StatsCmd(app))
	rootCmd.AddCommand(commands.EditCmd(app))
	rootCmd.AddCommand(commands.ExportCmd(app))
	rootCmd.AddCommand(commands.ImportCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up settings, logger and config path
func initApp(cmd *cobra.Command) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("env") {
		settings.Env = env
	}
	if verbose {
		settings.Verbose = true
	}
	app.Settings = settings
	app.ConfigPath = configPath

	logger, err = logging.New(logging.Options{Env: settings.Env, Verbose: settings.Verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger.Logger

	app.Logger.Info("Starting application",
		zap.String("environment", settings.Env),
		zap.String("command", cmd.Name()))

	return nil
}
