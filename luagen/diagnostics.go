package luagen

import (
	"fmt"

	"github.com/nxtlua/tlua/ast"
)

// Kind tags a diagnostic with its error class. The set is closed; every
// detected violation is fatal to the compilation of the file.
type Kind int

const (
	KindUnsupportedNode Kind = iota
	KindReservedIdentifier
	KindUndefinableMetamethod
	KindRoactSubclass
	KindMultipleExportAssignments
	KindExportInNonModule
	KindOperatorMacroStatement
	KindMalformedAccess
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedNode:
		return "unsupported node"
	case KindReservedIdentifier:
		return "reserved identifier"
	case KindUndefinableMetamethod:
		return "undefinable metamethod"
	case KindRoactSubclass:
		return "roact subclass"
	case KindMultipleExportAssignments:
		return "multiple export assignments"
	case KindExportInNonModule:
		return "export in non-module"
	case KindOperatorMacroStatement:
		return "operator macro as statement"
	case KindMalformedAccess:
		return "malformed property access"
	}
	return "diagnostic(?)"
}

// Diagnostic is a fatal lowering error. Node is the originating input node
// and is used for source-position reporting by the driver.
type Diagnostic struct {
	Kind    Kind
	Node    ast.Node
	Message string
}

func (d *Diagnostic) Error() string {
	return d.Message
}

func diagf(kind Kind, node ast.Node, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Kind:    kind,
		Node:    node,
		Message: fmt.Sprintf(format, args...),
	}
}
