// Package unminify is the library entry point wrapping internal/transform:
// everything under internal/ is free to change shape, but Transform and
// Config are the stable surface spec.md §6 describes.
package unminify

import (
	"fmt"
	"os"

	"github.com/jsreadable/unminify/internal/config"
	"github.com/jsreadable/unminify/internal/transform"
)

// Config controls how a file is parsed and which optional rewrites run.
type Config = config.Config

// Transform reads the file at path, runs the fixed nine-pass rewrite
// pipeline (plus the TypeScript-only enum reconstruction pass when
// cfg.TypeScript is set), and returns the rewritten source text.
func Transform(path string, cfg Config) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return transform.Source(path, string(contents), cfg)
}
