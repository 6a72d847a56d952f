package ast

type (
	Statements []Statement

	Statement struct {
		Stmt
	}

	// All statement nodes implement the Stmt interface.
	Stmt interface {
		Node
		_stmt()
	}

	BlockStatement struct {
		LeftBrace  Idx
		List       Statements
		RightBrace Idx
	}

	ExpressionStatement struct {
		Expression *Expression
	}

	IfStatement struct {
		If         Idx
		Test       *Expression
		Consequent *Statement
		Alternate  *Statement `optional:"true"`
	}

	ReturnStatement struct {
		Return   Idx
		Argument *Expression `optional:"true"`
	}

	WhileStatement struct {
		While Idx
		Test  *Expression
		Body  *Statement
	}

	// ExportAssignment is a single-target re-export: "export = expr".
	// At most one is permitted per file.
	ExportAssignment struct {
		Idx        Idx
		Expression *Expression
	}
)

func (*BlockStatement) _stmt()      {}
func (*ExpressionStatement) _stmt() {}
func (*IfStatement) _stmt()         {}
func (*ReturnStatement) _stmt()     {}
func (*WhileStatement) _stmt()      {}
func (*ExportAssignment) _stmt()    {}
func (*VariableDeclaration) _stmt() {}
func (*FunctionDeclaration) _stmt() {}
func (*ClassDeclaration) _stmt()    {}
