package transform

import (
	"strings"
	"testing"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/jsreadable/unminify/internal/config"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string, cfg config.Config) string {
	t.Helper()
	out, err := Source("<test>", src, cfg)
	require.NoError(t, err)
	return out
}

// normalize collapses whitespace so scenario comparisons can stay
// whitespace-insensitive, matching spec.md §8's "whitespace-insensitive"
// note on its worked examples.
func normalize(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// requireScenario compares got against want the way every worked example in
// spec.md §8 is meant to be checked (whitespace-insensitive), printing a
// unified diff on mismatch instead of just two dumped strings -- one line of
// a rewritten 50-statement module is otherwise hard to spot in require.Equal
// output.
func requireScenario(t *testing.T, want, got string) {
	t.Helper()
	wantNorm, gotNorm := normalize(want), normalize(got)
	if wantNorm == gotNorm {
		return
	}
	edits := myers.ComputeEdits(span.URIFromPath("want"), wantNorm, gotNorm)
	diff := gotextdiff.ToUnified("want", "got", wantNorm, edits)
	t.Fatalf("scenario output mismatch:\n%s", diff)
}

func TestSeqExpandScenario(t *testing.T) {
	out := run(t, "a, b, c;", config.Config{})
	requireScenario(t, "a; b; c;", out)
}

func TestNotLitScenario(t *testing.T) {
	out := run(t, "!0; !1; !2; !'x';", config.Config{})
	requireScenario(t, "true; false; false; !'x';", out)
}

func TestVoidToUndefinedScenario(t *testing.T) {
	out := run(t, "void 0;", config.Config{})
	requireScenario(t, "undefined;", out)

	out = run(t, "void console.log('hi');", config.Config{})
	requireScenario(t, "void console.log('hi');", out)
}

func TestVarDeclExpandScenario(t *testing.T) {
	out := run(t, "let n, o, b;", config.Config{})
	requireScenario(t, "let n; let o; let b;", out)
}

func TestNestedAssignmentScenario(t *testing.T) {
	out := run(t, "a = b = c = 1;", config.Config{})
	requireScenario(t, "a = 1; b = 1; c = 1;", out)
}

func TestInitAssignmentAndIifeExpandScenario(t *testing.T) {
	out := run(t, "var a; (function(e){e.j = 5;})(a || (a = {}));", config.Config{})
	got := normalize(out)
	require.Contains(t, got, "var a;")
	require.Contains(t, got, "a = a || {};")
	require.Contains(t, got, "a.j = 5;")
}

func TestEnumConvertScenarioRequiresTypeScriptMode(t *testing.T) {
	src := `(function(e){ e[e.A=0]="A"; e[e.B=1]="B"; })(w || (w = {}));`

	plain := run(t, src, config.Config{})
	require.NotContains(t, plain, "enum", "enum reconstruction must not fire outside TypeScript mode")

	ts := run(t, src, config.Config{TypeScript: true})
	require.Contains(t, ts, "enum")
	require.Contains(t, ts, "Object.assign")
	require.Contains(t, normalize(ts), "w = w || {};")
}

func TestEsModuleRenameScenario(t *testing.T) {
	src := `(e, t, n) => { Object.defineProperty(t, "__esModule", {value:true}); t.x = 5; };`
	out := run(t, src, config.Config{})
	got := normalize(out)
	require.Contains(t, got, "module")
	require.Contains(t, got, "exports")
	require.Contains(t, got, "require")
	require.Contains(t, got, `Object.defineProperty(exports, "__esModule", {value: true});`)
	require.Contains(t, got, "exports.x = 5;")
}

func TestEvalGuardDeclinesRewrites(t *testing.T) {
	src := "eval('x'); a, b;"
	out := run(t, src, config.Config{})
	require.Contains(t, normalize(out), "a, b;", "a file containing eval() must leave other statements alone, including sequence expansion")
}

func TestIdempotence(t *testing.T) {
	src := "a, b, c; let n, o; a = b = 1; !0;"
	first := run(t, src, config.Config{})
	second := run(t, first, config.Config{})
	requireScenario(t, first, second)
}

func TestPatternLocality(t *testing.T) {
	src := "function f(x) { return x + 1; } f(2);"
	out := run(t, src, config.Config{})
	requireScenario(t, src, out)
}
