// Package main provides the entry point for the unminify CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/jsreadable/unminify/pkg/unminify"
)

// CLI is the single `transform` sub-command spec.md §6 describes.
type CLI struct {
	Transform TransformCmd `cmd:"" help:"Rewrite a minified JS/TS file into readable source."`
}

type TransformCmd struct {
	File            string `arg:"" help:"Path to the minified source file to rewrite."`
	Output          string `name:"output" short:"o" help:"Output path. Defaults to <sibling>/output.{ts|js}."`
	TypeScript      bool   `name:"typescript" help:"Emit TypeScript constructs (enables the enum-reconstruction pass)."`
	AssumeESModules bool   `name:"assume-es-modules" short:"a" help:"Treat every 3-argument function factory as an ES module wrapper."`
}

func (c *TransformCmd) Run() error {
	cfg := unminify.Config{TypeScript: c.TypeScript, AssumeESModules: c.AssumeESModules}
	out, err := unminify.Transform(c.File, cfg)
	if err != nil {
		return err
	}

	outPath := c.Output
	if outPath == "" {
		outPath = defaultOutputPath(c.File, c.TypeScript)
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func defaultOutputPath(inputPath string, typescript bool) string {
	ext := ".js"
	if typescript {
		ext = ".ts"
	}
	return filepath.Join(filepath.Dir(inputPath), "output"+ext)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("unminify"),
		kong.Description("Un-minify a compiled JavaScript/TypeScript file."),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
