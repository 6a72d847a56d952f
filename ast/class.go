package ast

import "github.com/nxtlua/tlua/types"

type (
	ClassLiteral struct {
		Class      Idx
		RightBrace Idx
		Name       *Identifier `optional:"true"`
		Abstract   bool

		// SuperClass is the heritage expression the class extends, already
		// resolved by the front end; nil when the class has no base.
		SuperClass *Expression `optional:"true"`

		// Base is the direct superclass declaration, nil when SuperClass
		// does not refer to a class in the same compilation.
		Base *ClassLiteral `optional:"true"`

		Body ClassElements

		// Type is the nominal type the checker assigned to instances.
		Type *types.Named
	}

	ClassElements []ClassElement

	ClassElement struct {
		Element
	}

	Element interface {
		Node
		_classElement()
	}

	FieldDefinition struct {
		Idx         Idx
		Key         *Identifier
		Initializer *Expression `optional:"true"`
		Static      bool
	}

	MethodDefinition struct {
		Idx    Idx
		Key    *Identifier
		Kind   PropertyKind // "method", "get", "set" or "constructor"
		Static bool

		// Body is nil for signature-only (interface/abstract) members;
		// only body-present members are lowered.
		Body *FunctionLiteral `optional:"true"`
	}
)

type PropertyKind string

const (
	PropertyKindMethod      PropertyKind = "method"
	PropertyKindGet         PropertyKind = "get"
	PropertyKindSet         PropertyKind = "set"
	PropertyKindConstructor PropertyKind = "constructor"
)

func (*FieldDefinition) _classElement()  {}
func (*MethodDefinition) _classElement() {}

// Constructor returns the class's explicit constructor, or nil.
func (c *ClassLiteral) Constructor() *MethodDefinition {
	for i := range c.Body {
		if m, ok := c.Body[i].Element.(*MethodDefinition); ok && m.Kind == PropertyKindConstructor {
			return m
		}
	}
	return nil
}

// Methods returns the concrete methods on the given side, in declaration
// order. Signature-only members are skipped.
func (c *ClassLiteral) Methods(static bool) []*MethodDefinition {
	var out []*MethodDefinition
	for i := range c.Body {
		m, ok := c.Body[i].Element.(*MethodDefinition)
		if !ok || m.Static != static || m.Body == nil {
			continue
		}
		if m.Kind == PropertyKindMethod {
			out = append(out, m)
		}
	}
	return out
}

// Accessors returns the concrete get or set accessors declared directly on
// the class, instance side only.
func (c *ClassLiteral) Accessors(kind PropertyKind) []*MethodDefinition {
	var out []*MethodDefinition
	for i := range c.Body {
		m, ok := c.Body[i].Element.(*MethodDefinition)
		if ok && !m.Static && m.Kind == kind && m.Body != nil {
			out = append(out, m)
		}
	}
	return out
}

// Fields returns the field definitions on the given side, in declaration
// order.
func (c *ClassLiteral) Fields(static bool) []*FieldDefinition {
	var out []*FieldDefinition
	for i := range c.Body {
		if f, ok := c.Body[i].Element.(*FieldDefinition); ok && f.Static == static {
			out = append(out, f)
		}
	}
	return out
}

// HasMembers reports whether the class declares at least one member on the
// given side. Accessors and fields count; the constructor does not.
func (c *ClassLiteral) HasMembers(static bool) bool {
	for i := range c.Body {
		switch e := c.Body[i].Element.(type) {
		case *FieldDefinition:
			if e.Static == static {
				return true
			}
		case *MethodDefinition:
			if e.Static == static && e.Kind != PropertyKindConstructor {
				return true
			}
		}
	}
	return false
}
