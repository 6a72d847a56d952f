package luagen

import (
	"github.com/nxtlua/tlua/ast"
)

// lowerConstructor emits the class's constructor slot. Instance field
// initializers run here, per instance, never baked into the table
// literal. When instance inheritance is present and the source has no
// explicit super call, the superclass constructor runs first.
func (g *Generator) lowerConstructor(c *ast.ClassLiteral, name string, hasInstanceInheritance bool) error {
	s := g.state
	ctor := c.Constructor()

	s.write(s.pad() + name + ".constructor = function(self")
	if ctor != nil {
		for i := range ctor.Body.ParameterList {
			s.write(", ")
			s.write(ctor.Body.ParameterList[i].Name)
		}
	} else if hasInstanceInheritance {
		// No explicit constructor: whatever new received flows through
		// to the superclass.
		s.write(", ...")
	}
	s.write(")\n")

	s.pushScope()
	s.indent++
	if ctor != nil {
		for i := range ctor.Body.ParameterList {
			s.declare(ctor.Body.ParameterList[i].Name)
		}
	}

	var err error
	if hasInstanceInheritance {
		if ctor == nil {
			s.line("super.constructor(self, ...);")
		} else if !hasExplicitSuperCall(ctor.Body) {
			s.line("super.constructor(self);")
		}
	}
	for _, f := range c.Fields(false) {
		if f.Initializer == nil {
			continue
		}
		s.write(s.pad() + "self." + f.Key.Name + " = ")
		if err = g.lowerExpr(f.Initializer, exprCtx{}); err != nil {
			break
		}
		s.write(";\n")
	}
	if err == nil && ctor != nil {
		err = g.lowerStmts(ctor.Body.Body.List)
	}

	s.indent--
	s.popScope()
	if err != nil {
		return err
	}
	s.line("end;")
	return nil
}

// hasExplicitSuperCall reports whether the constructor body contains a
// top-level super(...) call.
func hasExplicitSuperCall(fn *ast.FunctionLiteral) bool {
	for i := range fn.Body.List {
		expr, ok := fn.Body.List[i].Stmt.(*ast.ExpressionStatement)
		if !ok {
			continue
		}
		call, ok := expr.Expression.Expr.(*ast.CallExpression)
		if !ok {
			continue
		}
		if _, ok := call.Callee.Expr.(*ast.SuperExpression); ok {
			return true
		}
	}
	return false
}
