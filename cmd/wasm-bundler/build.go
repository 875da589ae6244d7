package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wippyai/wasm-bundler/plugin"
)

var buildCmd = &cobra.Command{
	Use:   "build <module.wasm>...",
	Short: "Generate loader shims and assets for WebAssembly modules",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("out", "dist", "output directory for shims and assets")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	host := &plugin.DirHost{Root: cwd, OutDir: outDir}
	p, err := plugin.New(ctx, host, cfg)
	if err != nil {
		return err
	}
	defer p.Close(ctx)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	for _, arg := range args {
		absID, ok, err := p.Resolve(ctx, arg, "")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: not a resolvable .wasm module", arg)
		}

		source, ok, err := p.Load(ctx, absID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: load hook did not claim the module", arg)
		}

		shimName := strings.TrimSuffix(filepath.Base(absID), ".wasm") + ".wasm.mjs"
		shimPath := filepath.Join(outDir, shimName)
		if err := os.WriteFile(shimPath, []byte(source), 0o644); err != nil {
			return err
		}

		fmt.Printf("%s -> %s (%d bytes of shim)\n", arg, shimPath, len(source))
	}

	return nil
}
