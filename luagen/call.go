package luagen

import (
	"golang.org/x/exp/slices"

	"github.com/nxtlua/tlua/ast"
	"github.com/nxtlua/tlua/types"
)

// String members with a native target-side equivalent; everything else on
// a string receiver goes through the runtime library.
var nativeStringMethods = []string{
	"byte", "find", "format", "gmatch", "gsub", "len",
	"lower", "match", "rep", "reverse", "sub", "upper",
}

// Immutable math value-type members that lower to infix operators.
var mathOperators = map[string]string{
	"add": "+",
	"sub": "-",
	"mul": "*",
	"div": "/",
}

// lowerCall picks one of five mutually exclusive strategies for a call
// expression, in fixed priority order: non-member calls, container
// built-ins, string built-ins, named-type special forms, and finally the
// default member call.
func (g *Generator) lowerCall(n *ast.CallExpression, retType types.Type, cx exprCtx) error {
	s := g.state

	if _, ok := n.Callee.Expr.(*ast.SuperExpression); ok {
		// super(...) invokes the base class's constructor slot with self
		// prepended.
		s.write("super.constructor(self")
		if len(n.ArgumentList) > 0 {
			s.write(", ")
		}
		if err := g.lowerArgs(n.ArgumentList); err != nil {
			return err
		}
		s.write(")")
		return nil
	}

	dot, ok := n.Callee.Expr.(*ast.DotExpression)
	if !ok {
		if member, isComputed := n.Callee.Expr.(*ast.MemberExpression); isComputed {
			if isMacroReceiver(member.Object.Type) {
				return diagf(KindMalformedAccess, n, "built-in member must be accessed as a plain property")
			}
		}
		return g.lowerPlainCall(n, retType, cx)
	}

	recv := dot.Left
	member := dot.Identifier.Name

	if _, isSuper := recv.Expr.(*ast.SuperExpression); isSuper {
		return g.lowerSuperMethodCall(n, member, retType, cx)
	}

	switch t := recv.Type.(type) {
	case *types.Array:
		return g.lowerRuntimeCall(n, "array_"+member, recv, retType, cx)
	case *types.String:
		if slices.Contains(nativeStringMethods, member) {
			return g.lowerMethodCall(n, recv, member, retType, cx)
		}
		return g.lowerRuntimeCall(n, "string_"+member, recv, retType, cx)
	case *types.Map:
		return g.lowerRuntimeCall(n, "map_"+member, recv, retType, cx)
	case *types.Set:
		return g.lowerRuntimeCall(n, "set_"+member, recv, retType, cx)
	case *types.Named:
		switch {
		case t.Name == types.PromiseName && member == "then":
			return g.lowerMethodCall(n, recv, "andThen", retType, cx)
		case t.Name == types.SymbolName && member == "for":
			// "for" is a target-language keyword; the runtime exposes the
			// registry lookup under a different name.
			if err := g.lowerExpr(recv, exprCtx{parentPrec: precUnary}); err != nil {
				return err
			}
			s.write(".for_(")
			if err := g.lowerArgs(n.ArgumentList); err != nil {
				return err
			}
			s.write(")")
			return nil
		case t.Name == types.ObjectName:
			// Reflection helpers take no receiver; Object is a namespace.
			s.markRuntime()
			s.write("TS.Object_" + member + "(")
			if err := g.lowerArgs(n.ArgumentList); err != nil {
				return err
			}
			s.write(")")
			return nil
		case types.IsMathType(t.Name):
			if op, isOp := mathOperators[member]; isOp {
				return g.lowerMathOperator(n, recv, op, cx)
			}
		}
		return g.lowerMemberCall(n, recv, member, t, retType, cx)
	}

	return g.lowerMemberCall(n, recv, member, nil, retType, cx)
}

// lowerPlainCall lowers a non-member invocation: callee, then arguments.
func (g *Generator) lowerPlainCall(n *ast.CallExpression, retType types.Type, cx exprCtx) error {
	s := g.state
	wrap := g.shouldWrapTuple(retType, cx)
	if wrap {
		s.write("{ ")
	}
	if err := g.lowerExpr(n.Callee, exprCtx{parentPrec: precUnary}); err != nil {
		return err
	}
	s.write("(")
	if err := g.lowerArgs(n.ArgumentList); err != nil {
		return err
	}
	s.write(")")
	if wrap {
		s.write(" }")
	}
	return nil
}

// lowerRuntimeCall rewrites a member call into a runtime-library call with
// the receiver as first argument, and marks the file as depending on the
// runtime library.
func (g *Generator) lowerRuntimeCall(n *ast.CallExpression, fn string, recv *ast.Expression, retType types.Type, cx exprCtx) error {
	s := g.state
	s.markRuntime()
	s.write("TS." + fn + "(")
	if err := g.lowerExpr(recv, exprCtx{}); err != nil {
		return err
	}
	if len(n.ArgumentList) > 0 {
		s.write(", ")
	}
	if err := g.lowerArgs(n.ArgumentList); err != nil {
		return err
	}
	s.write(")")
	return nil
}

// lowerMethodCall emits colon-call syntax on the receiver.
func (g *Generator) lowerMethodCall(n *ast.CallExpression, recv *ast.Expression, member string, retType types.Type, cx exprCtx) error {
	s := g.state
	wrap := g.shouldWrapTuple(retType, cx)
	if wrap {
		s.write("{ ")
	}
	if err := g.lowerExpr(recv, exprCtx{parentPrec: precUnary}); err != nil {
		return err
	}
	s.write(":" + member + "(")
	if err := g.lowerArgs(n.ArgumentList); err != nil {
		return err
	}
	s.write(")")
	if wrap {
		s.write(" }")
	}
	return nil
}

// lowerMathOperator rewrites v.add(w) into (v + w). Using an operator
// purely for its side effect is meaningless on immutable value types.
func (g *Generator) lowerMathOperator(n *ast.CallExpression, recv *ast.Expression, op string, cx exprCtx) error {
	if cx.statement {
		return diagf(KindOperatorMacroStatement, n, "operator %q result is unused; math value types are immutable", op)
	}
	if len(n.ArgumentList) != 1 {
		return diagf(KindMalformedAccess, n, "operator %q expects exactly one operand", op)
	}
	s := g.state
	s.write("(")
	if err := g.lowerExpr(recv, exprCtx{parentPrec: precAdditive}); err != nil {
		return err
	}
	s.write(" " + op + " ")
	if err := g.lowerExpr(&n.ArgumentList[0], exprCtx{parentPrec: precAdditive}); err != nil {
		return err
	}
	s.write(")")
	return nil
}

// lowerSuperMethodCall bypasses virtual dispatch: the ancestor's instance
// table is addressed directly and self is prepended explicitly. An
// implicit-self call on super would re-enter dispatch on the subclass.
// When the ancestor chain carries getters, the ancestor's __index slot is
// the accessor hook function, so the stashed raw table is addressed.
func (g *Generator) lowerSuperMethodCall(n *ast.CallExpression, member string, retType types.Type, cx exprCtx) error {
	s := g.state
	wrap := g.shouldWrapTuple(retType, cx)
	if wrap {
		s.write("{ ")
	}
	if g.superRaw {
		s.write("super.__rawindex")
	} else {
		s.write("super.__index")
	}
	g.writeMemberSuffix(member)
	s.write("(self")
	if len(n.ArgumentList) > 0 {
		s.write(", ")
	}
	if err := g.lowerArgs(n.ArgumentList); err != nil {
		return err
	}
	s.write(")")
	if wrap {
		s.write(" }")
	}
	return nil
}

// lowerMemberCall is the default strategy: colon-call when the declared
// type resolves the member to a method, plain field access otherwise.
func (g *Generator) lowerMemberCall(n *ast.CallExpression, recv *ast.Expression, member string, declared *types.Named, retType types.Type, cx exprCtx) error {
	s := g.state
	isMethod := false
	if declared != nil {
		if m, found := types.Lookup(declared, member); found && m.Kind == types.MethodMember {
			isMethod = true
		}
	}
	if isMethod && validLuaIdent(member) {
		return g.lowerMethodCall(n, recv, member, retType, cx)
	}

	wrap := g.shouldWrapTuple(retType, cx)
	if wrap {
		s.write("{ ")
	}
	if err := g.lowerExpr(recv, exprCtx{parentPrec: precUnary}); err != nil {
		return err
	}
	g.writeMemberSuffix(member)
	s.write("(")
	if err := g.lowerArgs(n.ArgumentList); err != nil {
		return err
	}
	s.write(")")
	if wrap {
		s.write(" }")
	}
	return nil
}

// shouldWrapTuple reports whether a call's result must be wrapped in a
// single-element aggregate: multi-value static return type, not already
// exempted, and not in statement position (where results are discarded).
func (g *Generator) shouldWrapTuple(retType types.Type, cx exprCtx) bool {
	if cx.noTupleWrap || cx.statement {
		return false
	}
	_, ok := retType.(*types.Tuple)
	return ok
}

// isMacroReceiver reports whether t is one of the built-in receiver types
// whose members must be accessed as plain properties.
func isMacroReceiver(t types.Type) bool {
	switch t := t.(type) {
	case *types.Array, *types.Map, *types.Set:
		return true
	case *types.Named:
		return t.Name == types.PromiseName || t.Name == types.SymbolName ||
			t.Name == types.ObjectName || types.IsMathType(t.Name)
	}
	return false
}
