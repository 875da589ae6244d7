package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/wasm-bundler/inspect"
	"github.com/wippyai/wasm-bundler/placement"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <module.wasm>",
	Short: "Show a binary's import/export surface and placement decision",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolP("interactive", "i", false, "interactive mode with TUI")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runInteractive(path, cfg)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	ins := inspect.New(ctx)
	defer ins.Close(ctx)

	surface, err := ins.Inspect(ctx, data)
	if err != nil {
		return err
	}

	decision := placement.Decide(int64(len(data)), cfg.TargetEnv, cfg.MaxFileSize, path)

	fmt.Printf("Module: %s\n", path)
	fmt.Printf("Size: %d bytes\n", len(data))
	if decision.External {
		fmt.Printf("Delivery: external asset %s\n", decision.AssetName)
	} else {
		fmt.Printf("Delivery: inline data URI\n")
	}

	fmt.Printf("\nImports (%d):\n", len(surface.Imports))
	for _, g := range surface.Groups() {
		fmt.Printf("  %s:\n", g.From)
		for _, imp := range surface.Imports {
			if imp.Module == g.From {
				fmt.Printf("    - %s (%s)\n", imp.Name, imp.Kind)
			}
		}
	}

	fmt.Printf("\nExports (%d):\n", len(surface.Exports))
	for _, e := range surface.Exports {
		fmt.Printf("  %s (%s)\n", e.Name, e.Kind)
	}

	return nil
}
