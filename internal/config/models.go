package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/agolabs/architect/internal/framework"
	"github.com/agolabs/architect/internal/sim"
)

// CurrentVersion is the only config file version this build understands.
const CurrentVersion = 1

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config represents the entire user configuration file.
type Config struct {
	Version    int              `yaml:"version"`
	Engine     EngineConfig     `yaml:"engine"`
	Storage    StorageConfig    `yaml:"storage"`
	Simulation SimulationConfig `yaml:"simulation"`
	Portal     PortalConfig     `yaml:"portal"`
}

// EngineConfig controls the generation client.
type EngineConfig struct {
	Model            string   `yaml:"model"`
	APIKeyEnv        string   `yaml:"api_key_env"` // Name of the env var holding the key; the key itself is never stored
	ThinkingBudget   int32    `yaml:"thinking_budget"`
	DefaultFramework string   `yaml:"default_framework"`
	Timeout          Duration `yaml:"timeout"` // 0 means no timeout beyond cancellation
}

// StorageConfig selects where the last blueprint is persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"`        // file or sqlite
	Path    string `yaml:"path,omitempty"` // Defaults to a file in the state directory
}

// SimulationConfig tunes the cosmetic handshake and diagnostics widgets.
type SimulationConfig struct {
	HandshakeSuccessRate float64  `yaml:"handshake_success_rate"`
	HandshakeDelay       Duration `yaml:"handshake_delay"`
	ToastDuration        Duration `yaml:"toast_duration"`
	DiagnosticFailRate   float64  `yaml:"diagnostic_fail_rate"`
	DiagnosticWarnRate   float64  `yaml:"diagnostic_warn_rate"` // Includes the fail band
	ScanMinDelay         Duration `yaml:"scan_min_delay"`
	ScanJitter           Duration `yaml:"scan_jitter"`
}

// PortalConfig controls the preview server.
type PortalConfig struct {
	Addr      string `yaml:"addr"`
	Advertise bool   `yaml:"advertise"` // Register over mDNS
	Instance  string `yaml:"instance,omitempty"`
}

// Duration is a time.Duration that reads and writes as "2.5s" in YAML.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q: %w", value.Line, value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Engine: EngineConfig{
			Model:            "gemini-3-flash-preview",
			APIKeyEnv:        "API_KEY",
			ThinkingBudget:   4096,
			DefaultFramework: string(framework.Default().ID),
		},
		Storage: StorageConfig{
			Backend: BackendFile,
		},
		Simulation: SimulationConfig{
			HandshakeSuccessRate: 0.85,
			HandshakeDelay:       Duration(2500 * time.Millisecond),
			ToastDuration:        Duration(3 * time.Second),
			DiagnosticFailRate:   0.02,
			DiagnosticWarnRate:   0.10,
			ScanMinDelay:         Duration(400 * time.Millisecond),
			ScanJitter:           Duration(600 * time.Millisecond),
		},
		Portal: PortalConfig{
			Addr:      ":8787",
			Advertise: true,
		},
	}
}

// fallbackKeyEnvs are consulted when the configured variable is empty.
var fallbackKeyEnvs = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

// APIKey resolves the API key from the environment.
func (c *Config) APIKey() string {
	if c.Engine.APIKeyEnv != "" {
		if v := os.Getenv(c.Engine.APIKeyEnv); v != "" {
			return v
		}
	}
	for _, name := range fallbackKeyEnvs {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Probabilities returns the simulation draw parameters.
func (c *Config) Probabilities() sim.Probabilities {
	return sim.Probabilities{
		HandshakeSuccess: c.Simulation.HandshakeSuccessRate,
		DiagnosticFail:   c.Simulation.DiagnosticFailRate,
		DiagnosticWarn:   c.Simulation.DiagnosticWarnRate,
	}
}

// Timing returns the simulation delays.
func (c *Config) Timing() sim.Timing {
	return sim.Timing{
		HandshakeDelay: c.Simulation.HandshakeDelay.Std(),
		ToastDuration:  c.Simulation.ToastDuration.Std(),
		ScanMinDelay:   c.Simulation.ScanMinDelay.Std(),
		ScanJitter:     c.Simulation.ScanJitter.Std(),
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", c.Version, CurrentVersion)
	}
	if err := framework.Validate(framework.ID(c.Engine.DefaultFramework)); err != nil {
		return fmt.Errorf("engine.default_framework: %w", err)
	}
	if c.Engine.ThinkingBudget < 0 {
		return fmt.Errorf("engine.thinking_budget must not be negative")
	}

	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want %s or %s)", c.Storage.Backend, BackendFile, BackendSQLite)
	}

	rates := []struct {
		name string
		v    float64
	}{
		{"handshake_success_rate", c.Simulation.HandshakeSuccessRate},
		{"diagnostic_fail_rate", c.Simulation.DiagnosticFailRate},
		{"diagnostic_warn_rate", c.Simulation.DiagnosticWarnRate},
	}
	for _, r := range rates {
		if r.v < 0 || r.v > 1 {
			return fmt.Errorf("simulation.%s must be within [0, 1], got %v", r.name, r.v)
		}
	}
	if c.Simulation.DiagnosticWarnRate < c.Simulation.DiagnosticFailRate {
		return fmt.Errorf("simulation.diagnostic_warn_rate must be >= diagnostic_fail_rate")
	}

	durations := []struct {
		name string
		v    Duration
	}{
		{"engine.timeout", c.Engine.Timeout},
		{"simulation.handshake_delay", c.Simulation.HandshakeDelay},
		{"simulation.toast_duration", c.Simulation.ToastDuration},
		{"simulation.scan_min_delay", c.Simulation.ScanMinDelay},
		{"simulation.scan_jitter", c.Simulation.ScanJitter},
	}
	for _, d := range durations {
		if d.v < 0 {
			return fmt.Errorf("%s must not be negative", d.name)
		}
	}

	if c.Portal.Addr == "" {
		return fmt.Errorf("portal.addr must not be empty")
	}
	return nil
}
