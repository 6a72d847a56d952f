package luagen

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/nxtlua/tlua/ast"
)

// runtimeImport resolves the shared runtime support library on the target
// side. Spliced in only when the lowered output references it.
const runtimeImport = `local TS = require(game:GetService("ReplicatedStorage"):WaitForChild("RuntimeLib"));`

// LowerFile lowers a whole file and wraps the body with module scaffolding.
// On any diagnostic the file produces no output.
func (g *Generator) LowerFile(prog *ast.Program) (string, error) {
	s := g.state
	if err := g.lowerStmts(prog.Body); err != nil {
		return "", err
	}

	if s.isModule && g.opts.Kind != ast.ModuleScript {
		return "", diagf(KindExportInNonModule, prog,
			"file exports declarations but is a %s", g.opts.Kind)
	}
	if s.exportAssigns > 1 {
		return "", diagf(KindMultipleExportAssignments, prog,
			"at most one export assignment is permitted per file")
	}

	var out strings.Builder
	if s.usesRuntime {
		out.WriteString(runtimeImport + "\n")
	}
	if s.isModule {
		// A single re-export assignment declares exports itself inside
		// the body; otherwise the table is declared up front.
		if s.exportAssigns == 0 {
			out.WriteString("local exports = {};\n")
		}
		out.WriteString(s.out.String())
		out.WriteString("return exports;\n")
	} else {
		out.WriteString(s.out.String())
		if g.opts.Kind == ast.ModuleScript {
			out.WriteString("return nil;\n")
		}
	}
	return out.String(), nil
}

// Exports returns the file's exported names, sorted, for the driver's
// public-surface bookkeeping.
func (g *Generator) Exports() []string {
	out := slices.Clone(g.state.exports)
	slices.Sort(out)
	return out
}

// UsesRuntime reports whether lowering referenced the runtime support
// library.
func (g *Generator) UsesRuntime() bool {
	return g.state.usesRuntime
}
