// Package config loads sheetgen.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/sheetgen/internal/emit"
	"github.com/chriserin/sheetgen/internal/generate"
	"github.com/chriserin/sheetgen/internal/ingest"
)

// FileName is the config file looked up in the working directory.
const FileName = "sheetgen.yaml"

// Config holds all sheetgen configuration.
type Config struct {
	// Output
	OutputDir string `yaml:"output_dir"`

	// Java packages of the generated classes
	BasePackage    string `yaml:"base_package"`
	UtilPackage    string `yaml:"util_package"`
	RuntimePackage string `yaml:"runtime_package"`

	// Driver defaults, overridden by the workbook's settings sheet
	AppiumURL    string `yaml:"appium_url"`
	ImplicitWait int    `yaml:"implicit_wait"`

	// NoResetDefault is the noReset flag of common methods that do not
	// declare one.
	NoResetDefault bool `yaml:"no_reset_default"`

	// Extra settings labels, label -> capability name
	CapabilityLabels map[string]string `yaml:"capability_labels,omitempty"`

	// Generation ledger; empty disables it
	LedgerPath string `yaml:"ledger_path"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

func DefaultConfig() *Config {
	return &Config{
		OutputDir:      "generated",
		BasePackage:    emit.DefaultBasePackage,
		UtilPackage:    emit.DefaultUtilPackage,
		RuntimePackage: emit.DefaultRuntimePackage,
		AppiumURL:      emit.DefaultAppiumURL,
		ImplicitWait:   emit.DefaultImplicitWait,
		LedgerPath:     ".sheetgen/ledger.db",
		Logging:        LoggingConfig{Level: "info"},
	}
}

// Load reads configuration from path. A missing file yields the defaults.
// Environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("SHEETGEN_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if path, ok := os.LookupEnv("SHEETGEN_LEDGER"); ok {
		c.LedgerPath = path
	}
}

// Validate reports settings that would make generation fail.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.ImplicitWait < 0 {
		return fmt.Errorf("implicit_wait must not be negative, got %d", c.ImplicitWait)
	}
	for _, pkg := range []string{c.BasePackage, c.UtilPackage, c.RuntimePackage} {
		if strings.ContainsAny(pkg, " /\\") {
			return fmt.Errorf("invalid java package %q", pkg)
		}
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	return nil
}

// GenerateOptions maps the configuration onto the pipeline options.
func (c *Config) GenerateOptions() generate.Options {
	return generate.Options{
		Ingest: ingest.Options{
			NoResetDefault:   c.NoResetDefault,
			CapabilityLabels: c.CapabilityLabels,
		},
		Emit: emit.Options{
			BasePackage:    c.BasePackage,
			UtilPackage:    c.UtilPackage,
			RuntimePackage: c.RuntimePackage,
			AppiumURL:      c.AppiumURL,
			ImplicitWait:   c.ImplicitWait,
		},
	}
}
