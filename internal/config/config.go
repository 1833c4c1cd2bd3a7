// Package config holds the small set of options every pass and the parser
// read, mirroring esbuild's internal/config but reduced to the two knobs
// this tool actually needs (spec.md §3/§6).
package config

// Config controls how a file is parsed and which optional behaviors the
// pipeline enables.
type Config struct {
	// TypeScript makes the pipeline run EnumConvert after the other passes,
	// since its output is TS enum syntax. The parser does not read it: the
	// same syntax is accepted with or without it, and TS-only constructs such
	// as `declare` or type annotations are not parsed in either case.
	TypeScript bool

	// AssumeESModules tells EsModuleRename (spec.md §4.10) to treat every
	// file as an ES module factory candidate rather than requiring an
	// explicit `Object.defineProperty(x, "__esModule", ...)` marker to be
	// visible in the snippet being transformed.
	AssumeESModules bool
}
