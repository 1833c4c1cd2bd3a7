// Package transform wires the parser, the ten rewrite passes, and the
// printer together into spec.md's single `transform(path, config) -> string`
// operation. Pass order is fixed (spec.md §2/§5/§9): running them in any
// other order changes which sites match, since several passes (IifeExpand
// in particular) consume shapes an earlier pass produces.
package transform

import (
	"fmt"

	"github.com/jsreadable/unminify/internal/ast"
	"github.com/jsreadable/unminify/internal/config"
	"github.com/jsreadable/unminify/internal/js_parser"
	"github.com/jsreadable/unminify/internal/js_printer"
	"github.com/jsreadable/unminify/internal/logger"
	"github.com/jsreadable/unminify/internal/namegen"
	"github.com/jsreadable/unminify/internal/pass"
	"github.com/jsreadable/unminify/internal/passes"
	"github.com/jsreadable/unminify/internal/renamer"
)

// Source runs the full pipeline over already-loaded file contents and
// returns the rewritten text. path is used only for diagnostic messages.
func Source(path, contents string, cfg config.Config) (string, error) {
	log := logger.NewLog()
	source := &logger.Source{Path: path, Contents: contents}

	tree := js_parser.Parse(log, source, cfg)
	if log.HasErrors() {
		return "", parseError(log)
	}

	if renamer.ContainsDirectEval(tree.Stmts) {
		// spec.md §9's eval guard: a literal eval() call means identifier
		// provenance can't be trusted, so every renaming pass must decline
		// silently rather than risk rewriting a reference eval() needs to
		// see under its original name.
		return js_printer.Print(tree), nil
	}

	tags := ast.NewTagGenerator()
	names := namegen.New()

	pipeline := []pass.Pass{
		&passes.SeqExpand{},
		&passes.VoidToUndefined{},
		&passes.NotLit{},
		&passes.NotIife{},
		&passes.InitAssignment{},
		&passes.NestedAssignment{},
		&passes.VarDeclExpand{},
		passes.NewIifeExpand(tags, names),
		&passes.EsModuleRename{AssumeESModules: cfg.AssumeESModules},
	}
	if cfg.TypeScript {
		// spec.md §6: the enum-reconstruction pass only runs in TypeScript
		// mode, since its output (an `enum` declaration) isn't valid plain JS.
		pipeline = append(pipeline, passes.NewEnumConvert(names))
	}

	for _, p := range pipeline {
		tree = pass.Apply(tree, p)
	}

	return js_printer.Print(tree), nil
}

func parseError(log logger.Log) error {
	msgs := log.Msgs()
	if len(msgs) == 0 {
		return fmt.Errorf("parse error")
	}
	return fmt.Errorf("parse error: %s", msgs[0].String())
}
