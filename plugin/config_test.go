package plugin_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/wasm-bundler/placement"
	"github.com/wippyai/wasm-bundler/plugin"
)

func TestDefaultConfig(t *testing.T) {
	cfg := plugin.DefaultConfig()
	if cfg.MaxFileSize != 14336 {
		t.Errorf("MaxFileSize = %d, want 14336", cfg.MaxFileSize)
	}
	if cfg.TargetEnv != placement.EnvNode {
		t.Errorf("TargetEnv = %q, want node", cfg.TargetEnv)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     plugin.Config
		wantErr bool
	}{
		{"defaults", plugin.DefaultConfig(), false},
		{"zero threshold is valid", plugin.Config{MaxFileSize: 0, TargetEnv: placement.EnvBrowser}, false},
		{"negative threshold", plugin.Config{MaxFileSize: -5, TargetEnv: placement.EnvNode}, true},
		{"unknown env", plugin.Config{MaxFileSize: 1, TargetEnv: "electron"}, true},
		{"empty env", plugin.Config{MaxFileSize: 1}, true},
		{"reserved sync inline", plugin.Config{MaxFileSize: 1, TargetEnv: placement.EnvNode, ForceSyncInline: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundler.yaml")
	content := "target_env: browser\nmax_file_size: 0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := plugin.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.TargetEnv != placement.EnvBrowser {
		t.Errorf("TargetEnv = %q, want browser", cfg.TargetEnv)
	}
	if cfg.MaxFileSize != 0 {
		t.Errorf("explicit zero threshold lost: %d", cfg.MaxFileSize)
	}
}

func TestLoadConfigKeepsDefaultsForAbsentKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundler.yaml")
	if err := os.WriteFile(path, []byte("target_env: browser\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := plugin.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.MaxFileSize != plugin.DefaultMaxFileSize {
		t.Errorf("absent max_file_size should default, got %d", cfg.MaxFileSize)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := plugin.LoadConfig("/nonexistent/bundler.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundler.yaml")
	if err := os.WriteFile(path, []byte("target_env: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := plugin.LoadConfig(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}
