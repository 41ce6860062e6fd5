// Architect turns a keyword and a reasoning framework into a deployable
// business blueprint using the Gemini API.
//
// Running without arguments launches the interactive terminal application.
// The generate, show and reset commands work headless for scripting.
//
// Usage:
//
//	architect [command] [flags]
//
// See 'architect --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agolabs/architect/internal/config"
	"github.com/agolabs/architect/internal/framework"
	"github.com/agolabs/architect/internal/logging"
	"github.com/agolabs/architect/internal/sim"
	"github.com/agolabs/architect/internal/store"
	"github.com/agolabs/architect/internal/tui"
	"github.com/agolabs/architect/internal/ui"
	"github.com/agolabs/architect/internal/version"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath    string
	frameworkFlag string
	markdownStyle string
)

var rootCmd = &cobra.Command{
	Use:   "architect",
	Short: "Asset Architect: keyword to business blueprint",
	Long: `Asset Architect turns a keyword and a reasoning framework into a deployable
business blueprint: a titled product with an SOP, an automation recipe, a
price, a database schema and deployment payloads.

If no command is specified, the interactive terminal application launches.
The last successful blueprint is persisted and restored on the next start.

The Gemini API key is read from the environment (API_KEY by default, see
'architect config path' for the config file that names the variable).`,
	Example: `  # Launch the interactive application
  architect

  # Generate headless with a specific framework
  architect generate "Q1 Product Marketing Lifecycle" --framework four_pillar

  # Print the last blueprint as JSON
  architect show --format json`,
	Version:       version.Version,
	SilenceErrors: true,
	RunE:          runInteractive,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the per-user config directory)")
	rootCmd.PersistentFlags().StringVar(&frameworkFlag, "framework", "", "Reasoning framework ID (see 'architect frameworks')")
	rootCmd.Flags().StringVar(&markdownStyle, "markdown-style", tui.DefaultMarkdownStyle, "Glamour style for SOP and recipe text (dark, light, notty)")

	rootCmd.AddCommand(versionCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if !ui.IsTerminal() {
		return errors.New("the interactive application needs a terminal; use 'architect generate' for scripted runs")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logPath, err := config.LogPath()
	if err != nil {
		return err
	}
	if err := logging.InitializeToFile("", logPath); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	ctx := cmd.Context()
	last, err := store.LoadLast(ctx, kv)
	if err != nil {
		logging.Warn("Starting without the last deployment", zap.Error(err))
	}

	opts := tui.Options{
		Store:         kv,
		Last:          last,
		Framework:     selectedFramework(cfg),
		Probabilities: cfg.Probabilities(),
		Timing:        cfg.Timing(),
		Source:        sim.DefaultSource(),
		MarkdownStyle: markdownStyle,
	}
	// A missing key leaves Generator nil; the application reports it on the
	// first generation instead of refusing to start.
	if engine, err := newEngine(ctx, cfg); err == nil {
		opts.Generator = engine
	} else {
		logging.Warn("Engine unavailable", zap.Error(err))
	}

	return tui.Run(ctx, opts)
}

// selectedFramework returns the --framework flag, or the configured default.
func selectedFramework(cfg *config.Config) framework.ID {
	if frameworkFlag != "" {
		return framework.ID(frameworkFlag)
	}
	return framework.ID(cfg.Engine.DefaultFramework)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("architect %s\n", version.Full())
	},
}
