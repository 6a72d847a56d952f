package ast

import (
	"github.com/nxtlua/tlua/token"
	"github.com/nxtlua/tlua/types"
)

type (
	Expressions []Expression

	// Expression wraps an expression node together with the static type
	// the front end resolved for it.
	Expression struct {
		Expr
		Type types.Type
	}

	// All expression nodes implement the Expr interface.
	Expr interface {
		Node
		_expr()
	}

	ArrayLiteral struct {
		LeftBracket  Idx
		RightBracket Idx
		Value        Expressions
	}

	AssignExpression struct {
		Left  *Expression
		Right *Expression
	}

	BinaryExpression struct {
		Operator token.Token
		Left     *Expression
		Right    *Expression
	}

	UnaryExpression struct {
		Operator token.Token
		Idx      Idx
		Operand  *Expression
	}

	ConditionalExpression struct {
		Test       *Expression
		Consequent *Expression
		Alternate  *Expression
	}

	CallExpression struct {
		Callee           *Expression
		ArgumentList     Expressions
		RightParenthesis Idx
	}

	NewExpression struct {
		New              Idx
		Callee           *Expression
		ArgumentList     Expressions
		RightParenthesis Idx
	}

	// DotExpression is non-computed member access: a.b.
	DotExpression struct {
		Left       *Expression
		Identifier Identifier
	}

	// MemberExpression is computed member access: a[b].
	MemberExpression struct {
		Object       *Expression
		Property     *Expression
		RightBracket Idx
	}

	ObjectLiteral struct {
		LeftBrace  Idx
		RightBrace Idx
		Value      []PropertyKeyed
	}

	PropertyKeyed struct {
		Key   *Expression
		Value *Expression
	}

	FunctionLiteral struct {
		Function      Idx
		Name          *Identifier `optional:"true"`
		ParameterList []Identifier
		Body          *BlockStatement
	}

	ThisExpression struct {
		Idx Idx
	}

	SuperExpression struct {
		Idx Idx
	}
)

func (*ArrayLiteral) _expr()          {}
func (*AssignExpression) _expr()      {}
func (*BinaryExpression) _expr()      {}
func (*UnaryExpression) _expr()       {}
func (*ConditionalExpression) _expr() {}
func (*CallExpression) _expr()        {}
func (*NewExpression) _expr()         {}
func (*DotExpression) _expr()         {}
func (*MemberExpression) _expr()      {}
func (*ObjectLiteral) _expr()         {}
func (*PropertyKeyed) _expr()         {}
func (*FunctionLiteral) _expr()       {}
func (*ThisExpression) _expr()        {}
func (*SuperExpression) _expr()       {}
func (*ClassLiteral) _expr()          {}
