// Package luagen lowers a resolved, type-annotated input tree into Luau
// source text. Class declarations become linked static/instance table
// pairs wired through metatable inheritance; calls on well-known built-in
// types are rewritten into native operators or runtime-library calls.
package luagen

import (
	"fmt"
	"strconv"

	"github.com/nxtlua/tlua/ast"
	"github.com/nxtlua/tlua/token"
	"github.com/nxtlua/tlua/types"
)

// Options configures one file's lowering.
type Options struct {
	Kind ast.ScriptKind
}

// Generator lowers one file. Not safe for concurrent use; create one per
// compilation unit.
type Generator struct {
	opts  Options
	state *State

	// superRaw is set while lowering a class whose ancestor chain carries
	// getters. The ancestor's __index slot then holds the accessor hook
	// function, so super method calls must address the stashed raw
	// instance table instead.
	superRaw bool
}

func New(opts Options) *Generator {
	return &Generator{
		opts:  opts,
		state: newState(),
	}
}

// exprCtx carries the position flags a sub-expression is lowered under.
type exprCtx struct {
	// statement is set when the expression is a standalone expression
	// statement; operator macros are meaningless there.
	statement bool
	// noTupleWrap suppresses the single-element aggregate around a
	// multi-value call whose results are about to be spread.
	noTupleWrap bool
	// parentPrec is the binding power of the enclosing Lua operator.
	parentPrec int
}

// Lua operator precedence, used only for parenthesization.
const (
	precOr       = 1
	precAnd      = 2
	precCompare  = 3
	precConcat   = 4
	precAdditive = 5
	precMultipl  = 6
	precUnary    = 7
	precPower    = 8
)

func (g *Generator) lowerStmts(list ast.Statements) error {
	for i := range list {
		if err := g.lowerStmt(list[i].Stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) lowerStmt(st ast.Stmt) error {
	s := g.state
	switch n := st.(type) {
	case *ast.ExpressionStatement:
		if assign, ok := n.Expression.Expr.(*ast.AssignExpression); ok {
			s.write(s.pad())
			if err := g.lowerExpr(assign.Left, exprCtx{}); err != nil {
				return err
			}
			s.write(" = ")
			if err := g.lowerExpr(assign.Right, exprCtx{}); err != nil {
				return err
			}
			s.write(";\n")
			return nil
		}
		s.write(s.pad())
		if err := g.lowerExpr(n.Expression, exprCtx{statement: true}); err != nil {
			return err
		}
		s.write(";\n")
	case *ast.VariableDeclaration:
		s.write(s.pad())
		s.write("local ")
		for i := range n.List {
			if i > 0 {
				s.write(", ")
			}
			s.write(n.List[i].Target.Name)
		}
		if hasInitializer(n.List) {
			s.write(" = ")
			for i := range n.List {
				if i > 0 {
					s.write(", ")
				}
				if n.List[i].Initializer != nil {
					if err := g.lowerExpr(n.List[i].Initializer, exprCtx{}); err != nil {
						return err
					}
				} else {
					s.write("nil")
				}
			}
		}
		s.write(";\n")
		for i := range n.List {
			name := n.List[i].Target.Name
			s.declare(name)
			if n.Exported {
				s.export(name)
				s.line(fmt.Sprintf("exports.%s = %s;", name, name))
			}
		}
	case *ast.ReturnStatement:
		s.write(s.pad())
		s.write("return")
		if n.Argument != nil {
			s.write(" ")
			// A multi-value call in return position spreads as multiple
			// return values; wrapping it would change arity.
			cx := exprCtx{noTupleWrap: isTupleCall(n.Argument)}
			if err := g.lowerExpr(n.Argument, cx); err != nil {
				return err
			}
		}
		s.write(";\n")
	case *ast.IfStatement:
		s.write(s.pad())
		s.write("if ")
		if err := g.lowerExpr(n.Test, exprCtx{}); err != nil {
			return err
		}
		s.write(" then\n")
		if err := g.lowerBody(n.Consequent); err != nil {
			return err
		}
		if n.Alternate != nil {
			s.line("else")
			if err := g.lowerBody(n.Alternate); err != nil {
				return err
			}
		}
		s.line("end;")
	case *ast.WhileStatement:
		s.write(s.pad())
		s.write("while ")
		if err := g.lowerExpr(n.Test, exprCtx{}); err != nil {
			return err
		}
		s.write(" do\n")
		if err := g.lowerBody(n.Body); err != nil {
			return err
		}
		s.line("end;")
	case *ast.BlockStatement:
		s.line("do")
		s.pushScope()
		s.indent++
		err := g.lowerStmts(n.List)
		s.indent--
		s.popScope()
		if err != nil {
			return err
		}
		s.line("end;")
	case *ast.FunctionDeclaration:
		name := n.Function.Name.Name
		if err := checkName(name, n); err != nil {
			return err
		}
		s.declare(name)
		s.write(s.pad())
		s.write("local function " + name)
		if err := g.lowerFunctionTail(n.Function, false); err != nil {
			return err
		}
		s.write(";\n")
		if n.Exported {
			s.export(name)
			s.line(fmt.Sprintf("exports.%s = %s;", name, name))
		}
	case *ast.ClassDeclaration:
		return g.lowerClassDeclaration(n)
	case *ast.ExportAssignment:
		s.isModule = true
		s.exportAssigns++
		s.write(s.pad())
		s.write("local exports = ")
		if err := g.lowerExpr(n.Expression, exprCtx{}); err != nil {
			return err
		}
		s.write(";\n")
	default:
		return diagf(KindUnsupportedNode, st, "cannot lower statement %T", st)
	}
	return nil
}

// lowerBody lowers a statement as an indented construct body, flattening
// a block so no extra do/end is emitted.
func (g *Generator) lowerBody(st *ast.Statement) error {
	s := g.state
	s.pushScope()
	s.indent++
	var err error
	if block, ok := st.Stmt.(*ast.BlockStatement); ok {
		err = g.lowerStmts(block.List)
	} else {
		err = g.lowerStmt(st.Stmt)
	}
	s.indent--
	s.popScope()
	return err
}

func (g *Generator) lowerExpr(e *ast.Expression, cx exprCtx) error {
	s := g.state
	switch n := e.Expr.(type) {
	case *ast.Identifier:
		s.write(n.Name)
	case *ast.ThisExpression:
		s.write("self")
	case *ast.SuperExpression:
		s.write("super")
	case *ast.NilLiteral:
		s.write("nil")
	case *ast.BooleanLiteral:
		s.write(strconv.FormatBool(n.Value))
	case *ast.NumberLiteral:
		if n.Raw != "" {
			s.write(n.Raw)
		} else {
			s.write(strconv.FormatFloat(n.Value, 'g', -1, 64))
		}
	case *ast.StringLiteral:
		s.write(strconv.Quote(n.Value))
	case *ast.ArrayLiteral:
		s.write("{ ")
		for i := range n.Value {
			if i > 0 {
				s.write(", ")
			}
			if err := g.lowerExpr(&n.Value[i], exprCtx{}); err != nil {
				return err
			}
		}
		s.write(" }")
	case *ast.ObjectLiteral:
		s.write("{")
		for i := range n.Value {
			if i > 0 {
				s.write(",")
			}
			s.write(" ")
			if err := g.lowerPropertyKey(n.Value[i].Key); err != nil {
				return err
			}
			s.write(" = ")
			if err := g.lowerExpr(n.Value[i].Value, exprCtx{}); err != nil {
				return err
			}
		}
		s.write(" }")
	case *ast.BinaryExpression:
		return g.lowerBinary(n, cx)
	case *ast.UnaryExpression:
		op := ""
		switch n.Operator {
		case token.Not:
			op = "not "
		case token.Minus:
			op = "-"
		default:
			return diagf(KindUnsupportedNode, n, "cannot lower unary operator %s", n.Operator)
		}
		paren := precUnary < cx.parentPrec
		if paren {
			s.write("(")
		}
		s.write(op)
		if err := g.lowerExpr(n.Operand, exprCtx{parentPrec: precUnary}); err != nil {
			return err
		}
		if paren {
			s.write(")")
		}
	case *ast.ConditionalExpression:
		// The if-expression form keeps falsy consequents intact, which
		// an and/or chain would not.
		s.write("(if ")
		if err := g.lowerExpr(n.Test, exprCtx{}); err != nil {
			return err
		}
		s.write(" then ")
		if err := g.lowerExpr(n.Consequent, exprCtx{}); err != nil {
			return err
		}
		s.write(" else ")
		if err := g.lowerExpr(n.Alternate, exprCtx{}); err != nil {
			return err
		}
		s.write(")")
	case *ast.DotExpression:
		if err := g.lowerExpr(n.Left, exprCtx{parentPrec: precUnary}); err != nil {
			return err
		}
		g.writeMemberSuffix(n.Identifier.Name)
	case *ast.MemberExpression:
		if err := g.lowerExpr(n.Object, exprCtx{parentPrec: precUnary}); err != nil {
			return err
		}
		s.write("[")
		if err := g.lowerExpr(n.Property, exprCtx{}); err != nil {
			return err
		}
		s.write("]")
	case *ast.NewExpression:
		if err := g.lowerExpr(n.Callee, exprCtx{parentPrec: precUnary}); err != nil {
			return err
		}
		s.write(".new(")
		if err := g.lowerArgs(n.ArgumentList); err != nil {
			return err
		}
		s.write(")")
	case *ast.CallExpression:
		return g.lowerCall(n, e.Type, cx)
	case *ast.FunctionLiteral:
		s.write("function")
		return g.lowerFunctionTail(n, false)
	case *ast.ClassLiteral:
		return g.lowerClassExpression(n)
	default:
		return diagf(KindUnsupportedNode, e, "cannot lower expression %T", e.Expr)
	}
	return nil
}

func (g *Generator) lowerBinary(n *ast.BinaryExpression, cx exprCtx) error {
	s := g.state
	var op string
	var prec int
	rightAssoc := false
	switch n.Operator {
	case token.LogicalOr, token.Coalesce:
		op, prec = "or", precOr
	case token.LogicalAnd:
		op, prec = "and", precAnd
	case token.Equal, token.StrictEqual:
		op, prec = "==", precCompare
	case token.NotEqual, token.StrictNotEqual:
		op, prec = "~=", precCompare
	case token.Less:
		op, prec = "<", precCompare
	case token.Greater:
		op, prec = ">", precCompare
	case token.LessOrEqual:
		op, prec = "<=", precCompare
	case token.GreaterOrEqual:
		op, prec = ">=", precCompare
	case token.Plus:
		if isStringType(n.Left.Type) && isStringType(n.Right.Type) {
			op, prec, rightAssoc = "..", precConcat, true
		} else {
			op, prec = "+", precAdditive
		}
	case token.Minus:
		op, prec = "-", precAdditive
	case token.Multiply:
		op, prec = "*", precMultipl
	case token.Slash:
		op, prec = "/", precMultipl
	case token.Remainder:
		op, prec = "%", precMultipl
	case token.Exponent:
		op, prec, rightAssoc = "^", precPower, true
	default:
		return diagf(KindUnsupportedNode, n, "cannot lower binary operator %s", n.Operator)
	}

	paren := prec < cx.parentPrec
	if paren {
		s.write("(")
	}
	leftPrec, rightPrec := prec, prec+1
	if rightAssoc {
		leftPrec, rightPrec = prec+1, prec
	}
	if err := g.lowerExpr(n.Left, exprCtx{parentPrec: leftPrec}); err != nil {
		return err
	}
	s.write(" " + op + " ")
	if err := g.lowerExpr(n.Right, exprCtx{parentPrec: rightPrec}); err != nil {
		return err
	}
	if paren {
		s.write(")")
	}
	return nil
}

// lowerFunctionTail emits "(params) ... end" for a function whose keyword
// has already been written; self is prepended for instance members.
func (g *Generator) lowerFunctionTail(fn *ast.FunctionLiteral, instance bool) error {
	s := g.state
	s.write("(")
	if instance {
		s.write("self")
		if len(fn.ParameterList) > 0 {
			s.write(", ")
		}
	}
	for i := range fn.ParameterList {
		if i > 0 {
			s.write(", ")
		}
		s.write(fn.ParameterList[i].Name)
	}
	s.write(")\n")

	s.pushScope()
	s.indent++
	for i := range fn.ParameterList {
		s.declare(fn.ParameterList[i].Name)
	}
	err := g.lowerStmts(fn.Body.List)
	s.indent--
	s.popScope()
	if err != nil {
		return err
	}
	s.write(s.pad() + "end")
	return nil
}

func (g *Generator) lowerArgs(args ast.Expressions) error {
	for i := range args {
		if i > 0 {
			g.state.write(", ")
		}
		if err := g.lowerExpr(&args[i], exprCtx{}); err != nil {
			return err
		}
	}
	return nil
}

// writeMemberSuffix emits ".name" when name is a bare identifier on the
// target side, and a quoted index otherwise.
func (g *Generator) writeMemberSuffix(name string) {
	if validLuaIdent(name) {
		g.state.write("." + name)
	} else {
		g.state.write("[" + strconv.Quote(name) + "]")
	}
}

func (g *Generator) lowerPropertyKey(key *ast.Expression) error {
	if str, ok := key.Expr.(*ast.StringLiteral); ok {
		if validLuaIdent(str.Value) {
			g.state.write(str.Value)
			return nil
		}
		g.state.write("[" + strconv.Quote(str.Value) + "]")
		return nil
	}
	g.state.write("[")
	if err := g.lowerExpr(key, exprCtx{}); err != nil {
		return err
	}
	g.state.write("]")
	return nil
}

func hasInitializer(list ast.VariableDeclarators) bool {
	for i := range list {
		if list[i].Initializer != nil {
			return true
		}
	}
	return false
}

func isStringType(t types.Type) bool {
	_, ok := t.(*types.String)
	return ok
}

// isTupleCall reports whether e is a call whose static return type is a
// multi-value tuple.
func isTupleCall(e *ast.Expression) bool {
	if _, ok := e.Expr.(*ast.CallExpression); !ok {
		return false
	}
	_, ok := e.Type.(*types.Tuple)
	return ok
}
