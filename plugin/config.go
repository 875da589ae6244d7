package plugin

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/wasm-bundler/errors"
	"github.com/wippyai/wasm-bundler/placement"
)

// DefaultMaxFileSize is the inline threshold applied when no explicit
// limit is configured: 14 KiB.
const DefaultMaxFileSize int64 = 14336

// Config controls the plugin's placement policy. It is immutable after
// construction; New validates it once and invalid values are a
// configuration error, never a per-file one.
type Config struct {
	// MaxFileSize is the inline size threshold in bytes for the browser
	// target. Zero means "never inline". The node target ignores it.
	MaxFileSize int64 `yaml:"max_file_size"`

	// TargetEnv selects the runtime the generated shims load in.
	TargetEnv placement.Env `yaml:"target_env"`

	// ForceSyncInline is reserved for binaries marked to load
	// synchronously. The option is documented but has no implemented
	// code path; setting it is rejected at validation.
	ForceSyncInline bool `yaml:"force_sync_inline"`
}

// DefaultConfig returns the documented defaults: a 14 KiB inline
// threshold and the node target.
func DefaultConfig() Config {
	return Config{
		MaxFileSize: DefaultMaxFileSize,
		TargetEnv:   placement.EnvNode,
	}
}

// LoadConfig reads a YAML config file over the defaults. Keys absent
// from the file keep their default values; an explicit zero
// max_file_size is preserved as "never inline".
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Config("read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Config("parse config file %s: %v", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration once, before any file is processed.
func (c Config) Validate() error {
	if c.MaxFileSize < 0 {
		return errors.Config("max_file_size must be a non-negative number of bytes, got %d", c.MaxFileSize)
	}
	if !c.TargetEnv.Valid() {
		return errors.Config("target_env must be %q or %q, got %q",
			placement.EnvNode, placement.EnvBrowser, c.TargetEnv)
	}
	if c.ForceSyncInline {
		return errors.Reserved("force_sync_inline")
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("target=%s max_file_size=%d", c.TargetEnv, c.MaxFileSize)
}
