package luagen

import (
	"fmt"

	"github.com/nxtlua/tlua/ast"
	"github.com/nxtlua/tlua/types"
)

type componentKind int

const (
	roactNone componentKind = iota
	roactPlain
	roactMemoized
)

// roactKind inspects the heritage for the UI-component family. A direct
// match delegates to the component lowering; inheriting from the family
// through a longer chain is a terminal error.
func roactKind(c *ast.ClassLiteral) (componentKind, error) {
	if c.SuperClass == nil {
		return roactNone, nil
	}
	t, ok := c.SuperClass.Type.(*types.Named)
	if !ok {
		return roactNone, nil
	}
	switch t.Name {
	case types.RoactComponentName:
		return roactPlain, nil
	case types.RoactPureComponentName:
		return roactMemoized, nil
	}
	if types.Extends(t, types.RoactComponentName) || types.Extends(t, types.RoactPureComponentName) {
		return roactNone, diagf(KindRoactSubclass, c, "derived classes are not supported for component classes")
	}
	return roactNone, nil
}

// lowerRoactComponent lowers a UI-component class through the component
// framework's own extension mechanism instead of the table-pair wiring.
func (g *Generator) lowerRoactComponent(c *ast.ClassLiteral, name string, kind componentKind) error {
	s := g.state

	if err := validateMembers(c); err != nil {
		return err
	}

	base := "Roact.Component"
	if kind == roactMemoized {
		base = "Roact.PureComponent"
	}
	s.line(fmt.Sprintf("local %s = %s:extend(%q);", name, base, name))

	// Constructor and instance field initializers both map onto the
	// framework's init hook; initializers run first, per instance.
	ctor := c.Constructor()
	var inits []*ast.FieldDefinition
	for _, f := range c.Fields(false) {
		if f.Initializer != nil {
			inits = append(inits, f)
		}
	}
	if ctor != nil || len(inits) > 0 {
		s.write(s.pad() + fmt.Sprintf("function %s:init(", name))
		if ctor != nil {
			for i := range ctor.Body.ParameterList {
				if i > 0 {
					s.write(", ")
				}
				s.write(ctor.Body.ParameterList[i].Name)
			}
		}
		s.write(")\n")

		s.pushScope()
		s.indent++
		if ctor != nil {
			for i := range ctor.Body.ParameterList {
				s.declare(ctor.Body.ParameterList[i].Name)
			}
		}
		var err error
		for _, f := range inits {
			s.write(s.pad() + "self." + f.Key.Name + " = ")
			if err = g.lowerExpr(f.Initializer, exprCtx{}); err != nil {
				break
			}
			s.write(";\n")
		}
		if err == nil && ctor != nil {
			err = g.lowerStmts(ctor.Body.Body.List)
		}
		s.indent--
		s.popScope()
		if err != nil {
			return err
		}
		s.line("end;")
	}

	for _, m := range c.Methods(false) {
		s.write(s.pad() + fmt.Sprintf("function %s:%s", name, m.Key.Name))
		if err := g.lowerFunctionTail(m.Body, false); err != nil {
			return err
		}
		s.write(";\n")
	}

	for _, m := range c.Methods(true) {
		s.write(s.pad() + fmt.Sprintf("function %s.%s", name, m.Key.Name))
		if err := g.lowerFunctionTail(m.Body, false); err != nil {
			return err
		}
		s.write(";\n")
	}

	for _, f := range c.Fields(true) {
		s.write(s.pad() + name + "." + f.Key.Name + " = ")
		if f.Initializer != nil {
			if err := g.lowerExpr(f.Initializer, exprCtx{}); err != nil {
				return err
			}
		} else {
			s.write("nil")
		}
		s.write(";\n")
	}
	return nil
}
