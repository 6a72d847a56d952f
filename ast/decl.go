package ast

type (
	FunctionDeclaration struct {
		Function *FunctionLiteral
		Exported bool
	}

	ClassDeclaration struct {
		Class    *ClassLiteral
		Exported bool
	}

	VariableDeclaration struct {
		Idx      Idx
		List     VariableDeclarators
		Exported bool
	}

	VariableDeclarators []VariableDeclarator

	VariableDeclarator struct {
		Target      *Identifier
		Initializer *Expression `optional:"true"`
	}
)
