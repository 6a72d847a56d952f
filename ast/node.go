// Package ast defines the resolved, type-annotated input tree the lowering
// engine consumes. Trees are produced one file at a time by an external
// front end that has already parsed and type-checked the source; every
// expression carries the static type the checker resolved for it.
package ast

// Idx is a compact encoding of a source position within the input file.
type Idx int

type Node interface {
	// Idx0 returns the index of the first character belonging to the node.
	Idx0() Idx
	// Idx1 returns the index of the first character immediately after the node.
	Idx1() Idx
}

// ScriptKind classifies the emitted file on the target side.
type ScriptKind int

const (
	// ModuleScript files may export declarations and return an exports table.
	ModuleScript ScriptKind = iota
	Script
	LocalScript
)

func (k ScriptKind) String() string {
	switch k {
	case ModuleScript:
		return "ModuleScript"
	case Script:
		return "Script"
	case LocalScript:
		return "LocalScript"
	}
	return "ScriptKind(?)"
}

// Program is one file's fully resolved statement list.
type Program struct {
	Body Statements
}

func (o *Expression) Idx0() Idx { return o.Expr.Idx0() }
func (o *Expression) Idx1() Idx { return o.Expr.Idx1() }

func (a *ArrayLiteral) Idx0() Idx          { return a.LeftBracket }
func (a *AssignExpression) Idx0() Idx      { return a.Left.Idx0() }
func (b *BinaryExpression) Idx0() Idx      { return b.Left.Idx0() }
func (b *BooleanLiteral) Idx0() Idx        { return b.Idx }
func (n *CallExpression) Idx0() Idx        { return n.Callee.Idx0() }
func (n *ConditionalExpression) Idx0() Idx { return n.Test.Idx0() }
func (d *DotExpression) Idx0() Idx         { return d.Left.Idx0() }
func (f *FunctionLiteral) Idx0() Idx       { return f.Function }
func (c *ClassLiteral) Idx0() Idx          { return c.Class }
func (i *Identifier) Idx0() Idx            { return i.Idx }
func (m *MemberExpression) Idx0() Idx      { return m.Object.Idx0() }
func (n *NewExpression) Idx0() Idx         { return n.New }
func (n *NilLiteral) Idx0() Idx            { return n.Idx }
func (n *NumberLiteral) Idx0() Idx         { return n.Idx }
func (n *ObjectLiteral) Idx0() Idx         { return n.LeftBrace }
func (n *StringLiteral) Idx0() Idx         { return n.Idx }
func (n *ThisExpression) Idx0() Idx        { return n.Idx }
func (n *SuperExpression) Idx0() Idx       { return n.Idx }
func (n *UnaryExpression) Idx0() Idx       { return n.Idx }

func (n *BlockStatement) Idx0() Idx      { return n.LeftBrace }
func (n *ClassDeclaration) Idx0() Idx    { return n.Class.Idx0() }
func (n *ExportAssignment) Idx0() Idx    { return n.Idx }
func (n *ExpressionStatement) Idx0() Idx { return n.Expression.Idx0() }
func (n *FunctionDeclaration) Idx0() Idx { return n.Function.Idx0() }
func (n *IfStatement) Idx0() Idx         { return n.If }
func (n *Program) Idx0() Idx             { return 0 }
func (n *ReturnStatement) Idx0() Idx     { return n.Return }
func (n *VariableDeclaration) Idx0() Idx { return n.Idx }
func (n *WhileStatement) Idx0() Idx      { return n.While }

func (n *FieldDefinition) Idx0() Idx  { return n.Idx }
func (n *MethodDefinition) Idx0() Idx { return n.Idx }

func (a *ArrayLiteral) Idx1() Idx          { return a.RightBracket + 1 }
func (a *AssignExpression) Idx1() Idx      { return a.Right.Idx1() }
func (b *BinaryExpression) Idx1() Idx      { return b.Right.Idx1() }
func (b *BooleanLiteral) Idx1() Idx        { return Idx(int(b.Idx) + 4) }
func (n *CallExpression) Idx1() Idx        { return n.RightParenthesis + 1 }
func (n *ConditionalExpression) Idx1() Idx { return n.Alternate.Idx1() }
func (d *DotExpression) Idx1() Idx         { return d.Identifier.Idx1() }
func (f *FunctionLiteral) Idx1() Idx       { return f.Body.Idx1() }
func (c *ClassLiteral) Idx1() Idx          { return c.RightBrace + 1 }
func (i *Identifier) Idx1() Idx            { return Idx(int(i.Idx) + len(i.Name)) }
func (m *MemberExpression) Idx1() Idx      { return m.RightBracket + 1 }
func (n *NewExpression) Idx1() Idx         { return n.RightParenthesis + 1 }
func (n *NilLiteral) Idx1() Idx            { return Idx(int(n.Idx) + 4) } // "null"
func (n *NumberLiteral) Idx1() Idx         { return Idx(int(n.Idx) + len(n.Raw)) }
func (n *ObjectLiteral) Idx1() Idx         { return n.RightBrace + 1 }
func (n *StringLiteral) Idx1() Idx         { return Idx(int(n.Idx) + len(n.Value) + 2) }
func (n *ThisExpression) Idx1() Idx        { return n.Idx + 4 }
func (n *SuperExpression) Idx1() Idx       { return n.Idx + 5 }
func (n *UnaryExpression) Idx1() Idx       { return n.Operand.Idx1() }

func (n *BlockStatement) Idx1() Idx      { return n.RightBrace + 1 }
func (n *ClassDeclaration) Idx1() Idx    { return n.Class.Idx1() }
func (n *ExportAssignment) Idx1() Idx    { return n.Expression.Idx1() }
func (n *ExpressionStatement) Idx1() Idx { return n.Expression.Idx1() }
func (n *FunctionDeclaration) Idx1() Idx { return n.Function.Idx1() }
func (n *IfStatement) Idx1() Idx {
	if n.Alternate != nil {
		return n.Alternate.Idx1()
	}
	return n.Consequent.Idx1()
}
func (n *Program) Idx1() Idx {
	if len(n.Body) == 0 {
		return 0
	}
	return n.Body[len(n.Body)-1].Idx1()
}
func (n *ReturnStatement) Idx1() Idx {
	if n.Argument != nil {
		return n.Argument.Idx1()
	}
	return n.Return + 6
}
func (n *VariableDeclaration) Idx1() Idx { return n.List[len(n.List)-1].Idx1() }
func (n *WhileStatement) Idx1() Idx      { return n.Body.Idx1() }

func (b *VariableDeclarator) Idx0() Idx { return b.Target.Idx0() }
func (b *VariableDeclarator) Idx1() Idx {
	if b.Initializer != nil {
		return b.Initializer.Idx1()
	}
	return b.Target.Idx1()
}

func (n *FieldDefinition) Idx1() Idx {
	if n.Initializer != nil {
		return n.Initializer.Idx1()
	}
	return n.Key.Idx1()
}

func (n *MethodDefinition) Idx1() Idx {
	if n.Body != nil {
		return n.Body.Idx1()
	}
	return n.Key.Idx1()
}

func (n *PropertyKeyed) Idx0() Idx { return n.Key.Idx0() }
func (n *PropertyKeyed) Idx1() Idx { return n.Value.Idx1() }
