// Architect-portal serves the portal preview of the last deployed blueprint.
//
// It renders the blueprint persisted by the architect CLI as a local web
// page, exposes it as JSON, streams the deployment log over a websocket and
// advertises itself over mDNS so 'architect portals' can find it.
//
// Usage:
//
//	architect-portal serve [flags]
//
// See 'architect-portal serve --help' for available options.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agolabs/architect/internal/config"
	"github.com/agolabs/architect/internal/logging"
	"github.com/agolabs/architect/internal/portal"
	"github.com/agolabs/architect/internal/store"
	"github.com/agolabs/architect/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "architect-portal",
	Short: "Asset Architect portal preview server",
	Long: `A read-only preview server for the last deployed blueprint.

The page is rebuilt from the store on every request, so a blueprint generated
in the terminal shows up on the next reload.`,
	Version: version.Version,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command flags
var (
	configPath  string
	addr        string
	instance    string
	noAdvertise bool
	logLevel    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portal preview server",
	Long: `Start the portal preview server.

Defaults come from the portal section of the architect config file. Flags
override them. The server stops gracefully on SIGINT or SIGTERM.`,
	Example: `  # Serve on the configured address (default :8787)
  architect-portal serve

  # Serve on another port without mDNS
  architect-portal serve --addr 127.0.0.1:9000 --no-advertise

  # Debug logging
  architect-portal serve --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "Config file (default is the per-user config directory)")
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides portal.addr)")
	serveCmd.Flags().StringVar(&instance, "instance", "", "mDNS instance name (overrides portal.instance)")
	serveCmd.Flags().BoolVar(&noAdvertise, "no-advertise", false, "Do not register over mDNS")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if err := logging.Initialize(logLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	path, err := cfg.StoragePath()
	if err != nil {
		return fmt.Errorf("failed to resolve storage path: %w", err)
	}
	kv, err := store.Open(cfg.Storage.Backend, path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer kv.Close()

	pc := portal.Config{
		Addr:      cfg.Portal.Addr,
		Advertise: cfg.Portal.Advertise && !noAdvertise,
		Instance:  cfg.Portal.Instance,
	}
	if addr != "" {
		pc.Addr = addr
	}
	if instance != "" {
		pc.Instance = instance
	}

	srv, err := portal.New(pc, kv)
	if err != nil {
		return fmt.Errorf("failed to create portal: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Portal preview on http://%s (store: %s)\n", displayAddr(pc.Addr), path)
	return srv.Run(ctx)
}

// displayAddr turns ":8787" into "localhost:8787" for the banner.
func displayAddr(a string) string {
	if len(a) > 0 && a[0] == ':' {
		return "localhost" + a
	}
	return a
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("architect-portal %s\n", version.Full())
	},
}
