package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-bundler/placement"
	"github.com/wippyai/wasm-bundler/plugin"
)

var rootCmd = &cobra.Command{
	Use:   "wasm-bundler",
	Short: "Turn WebAssembly binaries into importable ESM modules",
	Long: `wasm-bundler inspects a compiled WebAssembly binary, decides whether it
ships inline as a data URI or as a separately emitted asset, and
generates an ESM shim that instantiates the binary and re-exports its
exports.

Generate shims:     wasm-bundler build lib/add.wasm --out dist
Inspect a binary:   wasm-bundler inspect lib/add.wasm
Interactive view:   wasm-bundler inspect lib/add.wasm -i`,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("target", "", "target environment: node or browser")
	rootCmd.PersistentFlags().Int64("max-file-size", -1, "inline threshold in bytes for the browser target (0 = never inline)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		plugin.SetLogger(l)
	}
	return nil
}

// resolveConfig layers the config file under any explicit flags.
func resolveConfig(cmd *cobra.Command) (plugin.Config, error) {
	cfg := plugin.DefaultConfig()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := plugin.LoadConfig(path)
		if err != nil {
			return plugin.Config{}, err
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("target") {
		target, _ := cmd.Flags().GetString("target")
		cfg.TargetEnv = placement.Env(target)
	}
	if cmd.Flags().Changed("max-file-size") {
		size, _ := cmd.Flags().GetInt64("max-file-size")
		cfg.MaxFileSize = size
	}

	if err := cfg.Validate(); err != nil {
		return plugin.Config{}, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
