// Package types models the static type attached to every resolved
// expression node. The lowering engine never infers types; it only reads
// what the front end resolved.
package types

type (
	// All type nodes implement the Type interface.
	Type interface {
		_type()
	}

	Any     struct{}
	Void    struct{}
	Boolean struct{}
	Number  struct{}
	String  struct{}

	// Array is any array-like container type.
	Array struct {
		Elem Type
	}

	// Tuple is a multi-value return type. Calls returning a Tuple are
	// wrapped in a single-element table unless the caller opts out.
	Tuple struct {
		Elems []Type
	}

	Map struct {
		Key   Type
		Value Type
		Weak  bool
	}

	Set struct {
		Elem Type
		Weak bool
	}

	Function struct {
		Params []Type
		Return Type
	}

	// Named is a nominal type: a class, interface, or well-known global.
	// Members hold the declarations made directly on the type; Base links
	// to the direct supertype.
	Named struct {
		Name    string
		Base    *Named
		Members map[string]Member
	}
)

type MemberKind int

const (
	FieldMember MemberKind = iota
	MethodMember
	GetterMember
	SetterMember
)

type Member struct {
	Kind MemberKind
	Type Type
}

func (*Any) _type()      {}
func (*Void) _type()     {}
func (*Boolean) _type()  {}
func (*Number) _type()   {}
func (*String) _type()   {}
func (*Array) _type()    {}
func (*Tuple) _type()    {}
func (*Map) _type()      {}
func (*Set) _type()      {}
func (*Function) _type() {}
func (*Named) _type()    {}

// Lookup resolves a member by name, walking the base chain.
func Lookup(n *Named, name string) (Member, bool) {
	for t := n; t != nil; t = t.Base {
		if m, ok := t.Members[name]; ok {
			return m, true
		}
	}
	return Member{}, false
}

// Well-known global type names matched by the call-site macro resolver.
const (
	PromiseName = "Promise"
	SymbolName  = "SymbolConstructor"
	ObjectName  = "ObjectConstructor"

	RoactComponentName     = "Roact.Component"
	RoactPureComponentName = "Roact.PureComponent"
)

var mathTypes = map[string]struct{}{
	"Vector2":      {},
	"Vector2int16": {},
	"Vector3":      {},
	"Vector3int16": {},
	"UDim":         {},
	"UDim2":        {},
	"CFrame":       {},
}

// IsMathType reports whether name is one of the immutable math value types
// whose add/sub/mul/div members lower to infix operators.
func IsMathType(name string) bool {
	_, ok := mathTypes[name]
	return ok
}

// Extends reports whether n or any of its ancestors is named name.
func Extends(n *Named, name string) bool {
	for t := n; t != nil; t = t.Base {
		if t.Name == name {
			return true
		}
	}
	return false
}
