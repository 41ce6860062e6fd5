package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/agolabs/architect/internal/config"
	"github.com/agolabs/architect/internal/generator"
	"github.com/agolabs/architect/internal/store"
)

// loadConfig reads --config when set, otherwise the per-user config file.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFrom(configPath)
	}
	return config.Load()
}

func openStore(cfg *config.Config) (store.KV, error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path: %w", err)
	}
	kv, err := store.Open(cfg.Storage.Backend, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store at %s: %w", cfg.Storage.Backend, path, err)
	}
	return kv, nil
}

func newEngine(ctx context.Context, cfg *config.Config) (*generator.Engine, error) {
	return generator.New(ctx, generator.Config{
		APIKey:         cfg.APIKey(),
		Model:          cfg.Engine.Model,
		ThinkingBudget: cfg.Engine.ThinkingBudget,
		Timeout:        cfg.Engine.Timeout.Std(),
	})
}

// troubleshoot turns the generator hint into bullet lines for a failure box.
func troubleshoot(err error) []string {
	var tips []string
	for _, line := range strings.Split(generator.TroubleshootingHint(err), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "•"))
		if line == "" || line == "Troubleshooting:" {
			continue
		}
		tips = append(tips, line)
	}
	return tips
}
