package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "generated", cfg.OutputDir)
	assert.Equal(t, "com.esun.automation", cfg.BasePackage)
	assert.Equal(t, "module", cfg.UtilPackage)
	assert.False(t, cfg.NoResetDefault)
	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("SHEETGEN_OUTPUT_DIR", "")

	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().OutputDir, cfg.OutputDir)
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("SHEETGEN_OUTPUT_DIR", "")

	path := filepath.Join(t.TempDir(), "conf", FileName)
	cfg := DefaultConfig()
	cfg.BasePackage = "org.acme.qa"
	cfg.NoResetDefault = true
	cfg.CapabilityLabels = map[string]string{"裝置UDID": "udid"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "org.acme.qa", loaded.BasePackage)
	assert.True(t, loaded.NoResetDefault)
	assert.Equal(t, "udid", loaded.CapabilityLabels["裝置UDID"])
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("SHEETGEN_OUTPUT_DIR", "")

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("implicit_wait: 30\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.ImplicitWait)
	assert.Equal(t, "generated", cfg.OutputDir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("output_dir: [\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHEETGEN_OUTPUT_DIR", "out/java")
	t.Setenv("SHEETGEN_LEDGER", "")

	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, "out/java", cfg.OutputDir)
	assert.Empty(t, cfg.LedgerPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty output", func(c *Config) { c.OutputDir = " " }},
		{"negative wait", func(c *Config) { c.ImplicitWait = -1 }},
		{"bad package", func(c *Config) { c.BasePackage = "com/acme" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGenerateOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoResetDefault = true
	cfg.ImplicitWait = 5

	opts := cfg.GenerateOptions()
	assert.True(t, opts.Ingest.NoResetDefault)
	assert.Equal(t, 5, opts.Emit.ImplicitWait)
	assert.Equal(t, cfg.BasePackage, opts.Emit.BasePackage)
}
