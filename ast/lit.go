package ast

type (
	BooleanLiteral struct {
		Idx   Idx
		Value bool
	}

	NilLiteral struct {
		Idx Idx
	}

	NumberLiteral struct {
		Value float64
		Raw   string
		Idx   Idx
	}

	StringLiteral struct {
		Value string
		Idx   Idx
	}
)

func (*BooleanLiteral) _expr() {}
func (*NilLiteral) _expr()     {}
func (*NumberLiteral) _expr()  {}
func (*StringLiteral) _expr()  {}
