package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agolabs/architect/internal/blueprint"
	"github.com/agolabs/architect/internal/config"
	"github.com/agolabs/architect/internal/discovery"
	"github.com/agolabs/architect/internal/framework"
	"github.com/agolabs/architect/internal/generator"
	"github.com/agolabs/architect/internal/logging"
	"github.com/agolabs/architect/internal/session"
	"github.com/agolabs/architect/internal/store"
	"github.com/agolabs/architect/internal/ui"
)

// Command flags
var (
	outputFormat string
	verbose      bool
	quick        bool
	noSave       bool
	assumeYes    bool
	forceInit    bool
	scanTimeout  time.Duration
)

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(frameworksCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(portalsCmd)
}

// generateCmd runs one generation headless
var generateCmd = &cobra.Command{
	Use:   "generate <keyword...>",
	Short: "Generate a blueprint without the interactive application",
	Long: `Generate a blueprint for a keyword and print it.

This command will:
  1. Play the engine warm-up sequence
  2. Make exactly one Gemini API call with the selected framework
  3. Validate the response against the blueprint schema
  4. Persist the blueprint as the last deployment (unless --no-save)

With --format json only the blueprint JSON is written to stdout, so the
output can be piped into other tools.`,
	Example: `  # Generate with the default framework
  architect generate "2025 AI Agency Launch"

  # Pick a framework and print markdown
  architect generate "Q1 Product Marketing Lifecycle" --framework four_pillar --format markdown

  # Script-friendly output without the warm-up delays
  architect generate "Lead Magnet Funnel" --format json --quick`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, markdown, json)")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show the raw blueprint JSON after the result")
	generateCmd.Flags().BoolVar(&quick, "quick", false, "Skip the warm-up delays")
	generateCmd.Flags().BoolVar(&noSave, "no-save", false, "Do not persist the blueprint as the last deployment")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	format, err := blueprint.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	if err := framework.Validate(framework.ID(frameworkFlag)); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	keyword := strings.TrimSpace(strings.Join(args, " "))
	if keyword == "" {
		return generator.ErrEmptyKeyword
	}
	fw := framework.Resolve(selectedFramework(cfg))
	ctx := cmd.Context()

	var kv store.KV
	if !noSave {
		kv, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer kv.Close()
	}

	if format == blueprint.FormatJSON {
		engine, err := newEngine(ctx, cfg)
		if err != nil {
			return err
		}
		bp, err := engine.Generate(ctx, keyword, fw.ID)
		if err != nil {
			return errors.New(generator.ShortMessage(err))
		}
		if err := persist(ctx, kv, bp); err != nil {
			return err
		}
		out, err := bp.PrettyJSON()
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	stepNames := make([]string, 0, len(session.GenerationSteps)+2)
	for _, s := range session.GenerationSteps {
		stepNames = append(stepNames, s.Text)
	}
	stepNames = append(stepNames, "Calling "+cfg.Engine.Model)
	if kv != nil {
		stepNames = append(stepNames, "Persisting Deployment")
	}

	runner := ui.NewRunner(ui.RunnerConfig{
		Title:   "Asset Generation",
		Command: "architect generate",
		Params: []ui.Field{
			{Key: "Keyword", Value: keyword},
			{Key: "Framework", Value: fw.Name},
			{Key: "Model", Value: cfg.Engine.Model},
		},
		StepNames:    stepNames,
		Verbose:      verbose,
		Live:         ui.IsTerminal(),
		Troubleshoot: troubleshoot,
	})

	var bp *blueprint.Blueprint
	_, err = runner.Run(ctx, func(ctx context.Context, onStep ui.StepCallback) (*ui.Outcome, error) {
		step := 0
		for _, s := range session.GenerationSteps {
			step++
			onStep(step, ui.StepRunning, "")
			if !quick {
				if err := sleep(ctx, s.Delay); err != nil {
					onStep(step, ui.StepFailed, "aborted")
					return nil, generator.NewAPIError("", err)
				}
			}
			onStep(step, ui.StepComplete, "")
		}

		step++
		onStep(step, ui.StepRunning, "")
		engine, err := newEngine(ctx, cfg)
		if err != nil {
			onStep(step, ui.StepFailed, "engine not configured")
			return nil, err
		}
		bp, err = engine.Generate(ctx, keyword, fw.ID)
		if err != nil {
			onStep(step, ui.StepFailed, generator.ShortMessage(err))
			return nil, err
		}
		onStep(step, ui.StepComplete, bp.ProductTitle)

		details := []ui.Field{
			{Key: "Title", Value: bp.ProductTitle},
			{Key: "Price", Value: bp.Price},
			{Key: "Schema", Value: strconv.Itoa(bp.PropertyCount()) + " properties"},
		}

		if kv != nil {
			step++
			onStep(step, ui.StepRunning, "")
			if err := persist(ctx, kv, bp); err != nil {
				onStep(step, ui.StepFailed, err.Error())
				return nil, err
			}
			onStep(step, ui.StepComplete, "")
			if path, err := cfg.StoragePath(); err == nil {
				details = append(details, ui.Field{Key: "Stored", Value: path})
			}
		}

		raw, err := bp.PrettyJSON()
		if err != nil {
			return nil, err
		}
		return &ui.Outcome{Details: details, Raw: raw}, nil
	})
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	out, err := bp.Render(format)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(out)
	return nil
}

func persist(ctx context.Context, kv store.KV, bp *blueprint.Blueprint) error {
	if kv == nil {
		return nil
	}
	return store.SaveLast(ctx, kv, bp)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// showCmd prints the last deployment
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the last deployed blueprint",
	Long: `Print the blueprint persisted by the last successful generation.

The same blueprint is restored when the interactive application starts.`,
	Example: `  # Detailed view
  architect show

  # Markdown for pasting into a document
  architect show --format markdown

  # JSON for scripting
  architect show --format json

  # Append the full asset data as stored
  architect show --verbose`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, markdown, json)")
	showCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Also print the full asset data JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := blueprint.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	w := cmd.OutOrStdout()
	bp, err := store.LoadLast(cmd.Context(), kv)
	if err != nil {
		return err
	}
	if bp == nil {
		fmt.Fprintln(w, "No blueprint deployed.")
		fmt.Fprintln(w, "\nUse 'architect generate <keyword>' or launch 'architect' to create one.")
		return nil
	}

	out, err := bp.Render(format)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, out)

	if verbose && format != blueprint.FormatJSON {
		raw, err := bp.PrettyJSON()
		if err != nil {
			return err
		}
		ui.NewPrinter(w).PrintRaw("Asset Data", raw)
	}
	return nil
}

// resetCmd purges the last deployment
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Purge the last deployed blueprint",
	Long: `Remove the persisted blueprint, the same as Terminal Reset in the
interactive application. The next start opens on the input screen.`,
	Example: `  # Ask before purging
  architect reset

  # Purge without a prompt
  architect reset --yes`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	kv, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer kv.Close()

	ctx := cmd.Context()
	bp, err := store.LoadLast(ctx, kv)
	if err != nil {
		return err
	}
	printer := ui.NewPrinter(os.Stdout)
	if bp == nil {
		printer.PrintWarning("Nothing to reset", []ui.Field{
			{Key: "Status", Value: "No blueprint deployed"},
		})
		return nil
	}

	if !assumeYes {
		ok := ui.Confirm(os.Stdin, os.Stdout, ui.ConfirmPrompt{
			Title: "Terminal Reset",
			Warnings: []string{
				fmt.Sprintf("The deployment %q will be purged", bp.ProductTitle),
				"This cannot be undone",
			},
		}, printer.Width())
		if !ok {
			return nil
		}
	}

	if err := store.ClearLast(ctx, kv); err != nil {
		printer.PrintError("Terminal Reset failed", err, nil)
		return err
	}
	printer.PrintSuccess("Terminal Reset complete", []ui.Field{
		{Key: "Purged", Value: bp.ProductTitle},
	})
	return nil
}

// frameworksCmd lists the reasoning frameworks
var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List the reasoning frameworks",
	Example: `  architect frameworks
  architect frameworks --format json`,
	RunE: runFrameworks,
}

func init() {
	frameworksCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
}

func runFrameworks(cmd *cobra.Command, args []string) error {
	all := framework.All()
	if outputFormat == "json" {
		data, err := json.MarshalIndent(all, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	def := framework.Default().ID
	for i, fw := range all {
		marker := " "
		if fw.ID == def {
			marker = "*"
		}
		fmt.Printf("%s %d. %s (%s)\n", marker, i+1, fw.Name, fw.ID)
		fmt.Printf("     %s\n", fw.Description)
	}
	fmt.Println("\n* default. Select with --framework <id>.")
	return nil
}

// configCmd groups the config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Example: `  architect config init
  architect config init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}
		if err := config.CreateDefaultConfig(path, forceInit); err != nil {
			if errors.Is(err, config.ErrConfigExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}
			return err
		}
		fmt.Printf("✓ Wrote default configuration to %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration and storage paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.GetConfigPath(); err != nil {
				return err
			}
		}
		fmt.Printf("Config:  %s\n", path)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		storage, err := cfg.StoragePath()
		if err != nil {
			return err
		}
		fmt.Printf("Storage: %s (%s)\n", storage, cfg.Storage.Backend)
		if logPath, err := config.LogPath(); err == nil {
			fmt.Printf("Log:     %s\n", logPath)
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// portalsCmd discovers portal preview servers
var portalsCmd = &cobra.Command{
	Use:   "portals [name]",
	Short: "Find portal preview servers on the network",
	Long: `Browse mDNS for portal preview servers started with 'architect-portal serve'.

With a name, wait for that instance only and print its URL as soon as it
answers.`,
	Example: `  # Browse for 3 seconds (default)
  architect portals

  # Longer scan for slow networks
  architect portals --timeout 10s

  # Wait for one instance
  architect portals "Meta Architect"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPortals,
}

func init() {
	portalsCmd.Flags().DurationVar(&scanTimeout, "timeout", discovery.DefaultScanTimeout, "Browse duration")
}

func runPortals(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	printer := ui.NewPrinter(os.Stdout)
	if len(args) == 1 {
		printer.PrintPleaseWait(fmt.Sprintf("Waiting for portal %q", args[0]), "up to "+scanTimeout.String())
		scanner := discovery.NewScanner()
		scanner.Timeout = scanTimeout
		p, err := scanner.WaitForPortal(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printer.PrintSuccess("Portal found", []ui.Field{
			{Key: "Name", Value: p.Name},
			{Key: "URL", Value: p.URL()},
			{Key: "Host", Value: p.Host},
			{Key: "Version", Value: p.Version},
		})
		return nil
	}

	printer.PrintPleaseWait("Browsing for portals", "timeout: "+scanTimeout.String())

	portals, err := discovery.Discover(cmd.Context(), scanTimeout)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(portals) == 0 {
		fmt.Println("No portals found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Start one with 'architect-portal serve'")
		fmt.Println("  - Check that portal.advertise is enabled in its config")
		fmt.Println("  - Ensure multicast (UDP 5353) is allowed on this network")
		fmt.Println("  - Try increasing --timeout")
		return nil
	}

	fmt.Printf("Found %d portal(s):\n\n", len(portals))
	for i, p := range portals {
		fmt.Printf("%d. %s\n", i+1, p.Name)
		fmt.Printf("   URL:     %s\n", p.URL())
		fmt.Printf("   Host:    %s\n", p.Host)
		if p.Version != "" {
			fmt.Printf("   Version: %s\n", p.Version)
		}
		fmt.Println()
	}
	return nil
}
