// Package config manages the YAML configuration file and the per-user
// directories the application writes to.
//
// # File Location
//
//   - Linux: $XDG_CONFIG_HOME/architect/config.yaml or $HOME/.config/architect/config.yaml
//   - macOS: $HOME/.config/architect/config.yaml
//   - Windows: %LOCALAPPDATA%\architect\config.yaml
//
// ARCHITECT_CONFIG overrides the path. Persisted blueprints and the TUI log
// live in the state directory (GetStateDir).
//
// # Security
//
// The API key is never written to disk. The file only names the environment
// variable that holds it.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	eng, err := generator.New(ctx, generator.Config{
//	    APIKey: cfg.APIKey(),
//	    Model:  cfg.Engine.Model,
//	})
//
// Missing keys keep their defaults, so a file may set only what it changes:
//
//	version: 1
//	simulation:
//	  handshake_success_rate: 0.5
//	  handshake_delay: 1s
package config
