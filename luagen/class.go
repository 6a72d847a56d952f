package luagen

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/nxtlua/tlua/ast"
)

func (g *Generator) lowerClassDeclaration(n *ast.ClassDeclaration) error {
	c := n.Class
	name, err := g.resolveClassName(c)
	if err != nil {
		return err
	}

	kind, err := roactKind(c)
	if err != nil {
		return err
	}
	if kind != roactNone {
		if err := g.lowerRoactComponent(c, name, kind); err != nil {
			return err
		}
	} else {
		s := g.state
		if !s.declared(name) {
			s.line("local " + name + ";")
		}
		s.line("do")
		s.pushScope()
		s.indent++
		err = g.lowerClassBody(c, name)
		s.indent--
		s.popScope()
		if err != nil {
			return err
		}
		s.line("end;")
	}

	g.state.declare(name)
	if n.Exported {
		g.state.export(name)
		g.state.line(fmt.Sprintf("exports.%s = %s;", name, name))
	}
	return nil
}

// lowerClassExpression wraps the emission in an immediately-invoked
// function returning the class value. The generated name never escapes,
// so nothing is hoisted into the enclosing scope.
func (g *Generator) lowerClassExpression(c *ast.ClassLiteral) error {
	s := g.state
	name, err := g.resolveClassName(c)
	if err != nil {
		return err
	}

	kind, err := roactKind(c)
	if err != nil {
		return err
	}

	s.write("(function()\n")
	s.pushScope()
	s.indent++
	if kind != roactNone {
		err = g.lowerRoactComponent(c, name, kind)
	} else {
		s.line("local " + name + ";")
		s.line("do")
		s.pushScope()
		s.indent++
		err = g.lowerClassBody(c, name)
		s.indent--
		s.popScope()
		if err == nil {
			s.line("end;")
		}
	}
	if err == nil {
		s.line("return " + name + ";")
	}
	s.indent--
	s.popScope()
	if err != nil {
		return err
	}
	s.write(s.pad() + "end)()")
	return nil
}

func (g *Generator) resolveClassName(c *ast.ClassLiteral) (string, error) {
	var name string
	if c.Name != nil {
		name = c.Name.Name
	} else {
		name = g.state.freshName("class")
	}
	if err := checkName(name, c); err != nil {
		return "", err
	}
	return name, nil
}

// lowerClassBody emits the statements building the class object inside an
// already-opened scoped block, bound to name.
func (g *Generator) lowerClassBody(c *ast.ClassLiteral, name string) error {
	s := g.state

	if err := validateMembers(c); err != nil {
		return err
	}

	prevSuperRaw := g.superRaw
	g.superRaw = inheritsAccessors(c, ast.PropertyKindGet)
	defer func() { g.superRaw = prevSuperRaw }()

	hasStaticInheritance := inheritsMembers(c, true)
	hasInstanceInheritance := inheritsMembers(c, false)

	// super alias, so every static and instance body can reference it.
	if hasStaticInheritance || hasInstanceInheritance {
		s.write(s.pad() + "local super = ")
		if err := g.lowerExpr(c.SuperClass, exprCtx{}); err != nil {
			return err
		}
		s.write(";\n")
	}

	// Static table; unresolved static lookups fall back to the ancestor.
	if hasStaticInheritance {
		s.write(s.pad() + name + " = setmetatable({\n")
	} else {
		s.write(s.pad() + name + " = {\n")
	}
	if err := g.lowerMethodEntries(c.Methods(true), false); err != nil {
		return err
	}
	if hasStaticInheritance {
		s.line("}, { __index = super });")
	} else {
		s.line("};")
	}

	// Instance table: the __index metatable target for instances. Falls
	// through to the ancestor's already-assembled instance table.
	if hasInstanceInheritance {
		s.write(s.pad() + name + ".__index = setmetatable({\n")
	} else {
		s.write(s.pad() + name + ".__index = {\n")
	}
	if err := g.lowerMethodEntries(c.Methods(false), true); err != nil {
		return err
	}
	if hasInstanceInheritance {
		s.line("}, { __index = super.__index });")
	} else {
		s.line("};")
	}

	g.lowerMetamethodTrampolines(c, name)

	// Abstract classes are not directly instantiable.
	if !c.Abstract {
		s.line(fmt.Sprintf("function %s.new(...)", name))
		s.indent++
		s.line(fmt.Sprintf("local self = setmetatable({}, %s);", name))
		s.line(fmt.Sprintf("%s.constructor(self, ...);", name))
		s.line("return self;")
		s.indent--
		s.line("end;")
	}

	if err := g.lowerConstructor(c, name, hasInstanceInheritance); err != nil {
		return err
	}

	// Static fields evaluate after the constructor is in place.
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

	if err := g.lowerAccessorTables(c, name); err != nil {
		return err
	}
	return nil
}

// lowerMethodEntries writes the concrete method entries of a table
// literal, one per line at one extra indent level.
func (g *Generator) lowerMethodEntries(methods []*ast.MethodDefinition, instance bool) error {
	s := g.state
	s.indent++
	for _, m := range methods {
		s.write(s.pad() + m.Key.Name + " = function")
		if err := g.lowerFunctionTail(m.Body, instance); err != nil {
			s.indent--
			return err
		}
		s.write(";\n")
	}
	s.indent--
	return nil
}

// lowerMetamethodTrampolines wires metamethod slots on the class table for
// every metamethod-named method on the class or an ancestor. The event is
// raw-fetched by the runtime, so inherited methods need the trampoline to
// fire at all; dispatch goes through the ordinary colon call.
func (g *Generator) lowerMetamethodTrampolines(c *ast.ClassLiteral, name string) {
	s := g.state
	seen := map[string]struct{}{}
	for cl := c; cl != nil; cl = cl.Base {
		for _, m := range cl.Methods(false) {
			if isMetamethod(m.Key.Name) && !isUndefinableMetamethod(m.Key.Name) {
				seen[m.Key.Name] = struct{}{}
			}
		}
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	for _, mm := range names {
		s.line(fmt.Sprintf("%s.%s = function(self, ...)", name, mm))
		s.indent++
		s.line(fmt.Sprintf("return self:%s(...);", mm))
		s.indent--
		s.line("end;")
	}
}

// lowerAccessorTables emits the _getters/_setters tables and the generic
// read/write hooks consulted before plain field storage.
func (g *Generator) lowerAccessorTables(c *ast.ClassLiteral, name string) error {
	s := g.state

	ownGet := c.Accessors(ast.PropertyKindGet)
	ownSet := c.Accessors(ast.PropertyKindSet)
	inheritedGet := inheritsAccessors(c, ast.PropertyKindGet)
	inheritedSet := inheritsAccessors(c, ast.PropertyKindSet)

	if len(ownGet) > 0 || inheritedGet {
		if err := g.lowerAccessorTable(name, "_getters", ownGet, inheritedGet); err != nil {
			return err
		}
		// Reads probe the accessor table first and fall back to an
		// unintercepted lookup through the instance table. The raw table
		// stays stashed on the class so subclass super calls can still
		// address methods directly.
		s.line(fmt.Sprintf("local __index = %s.__index;", name))
		s.line(fmt.Sprintf("%s.__rawindex = __index;", name))
		s.line(fmt.Sprintf("%s.__index = function(self, index)", name))
		s.indent++
		s.line(fmt.Sprintf("local getter = %s._getters[index];", name))
		s.line("if getter ~= nil then")
		s.indent++
		s.line("return getter(self);")
		s.indent--
		s.line("end;")
		s.line("return __index[index];")
		s.indent--
		s.line("end;")
	}

	if len(ownSet) > 0 || inheritedSet {
		if err := g.lowerAccessorTable(name, "_setters", ownSet, inheritedSet); err != nil {
			return err
		}
		// Writes with no matching accessor stay raw field writes.
		s.line(fmt.Sprintf("%s.__newindex = function(self, index, value)", name))
		s.indent++
		s.line(fmt.Sprintf("local setter = %s._setters[index];", name))
		s.line("if setter ~= nil then")
		s.indent++
		s.line("setter(self, value);")
		s.indent--
		s.line("else")
		s.indent++
		s.line("rawset(self, index, value);")
		s.indent--
		s.line("end;")
		s.indent--
		s.line("end;")
	}
	return nil
}

func (g *Generator) lowerAccessorTable(name, table string, own []*ast.MethodDefinition, inherited bool) error {
	s := g.state
	if len(own) == 0 {
		// No own accessors: alias the ancestor's table outright.
		s.line(fmt.Sprintf("%s.%s = super.%s;", name, table, table))
		return nil
	}
	if inherited {
		s.write(s.pad() + fmt.Sprintf("%s.%s = setmetatable({\n", name, table))
	} else {
		s.write(s.pad() + fmt.Sprintf("%s.%s = {\n", name, table))
	}
	s.indent++
	for _, m := range own {
		if err := g.lowerAccessorEntry(m); err != nil {
			s.indent--
			return err
		}
	}
	s.indent--
	if inherited {
		s.line(fmt.Sprintf("}, { __index = super.%s });", table))
	} else {
		s.line("};")
	}
	return nil
}

// lowerAccessorEntry emits one accessor-table entry for the accessor's
// public name.
func (g *Generator) lowerAccessorEntry(m *ast.MethodDefinition) error {
	s := g.state
	s.write(s.pad() + m.Key.Name + " = function")
	if err := g.lowerFunctionTail(m.Body, true); err != nil {
		return err
	}
	s.write(",\n")
	return nil
}

// validateMembers rejects reserved member names and attempts to redefine
// the metamethods the accessor-dispatch machinery claims.
func validateMembers(c *ast.ClassLiteral) error {
	for i := range c.Body {
		var key *ast.Identifier
		switch e := c.Body[i].Element.(type) {
		case *ast.FieldDefinition:
			key = e.Key
		case *ast.MethodDefinition:
			if e.Kind == ast.PropertyKindConstructor {
				continue
			}
			key = e.Key
		default:
			continue
		}
		if isUndefinableMetamethod(key.Name) {
			return diagf(KindUndefinableMetamethod, c.Body[i].Element,
				"metamethod %q cannot be defined; it is reserved by the class wiring", key.Name)
		}
		if err := checkName(key.Name, c.Body[i].Element); err != nil {
			return err
		}
	}
	return nil
}

// inheritsMembers walks the ancestor chain and reports whether any
// ancestor declares at least one member on the given side. When false, no
// metatable link is emitted for that side at all.
func inheritsMembers(c *ast.ClassLiteral, static bool) bool {
	for cl := c.Base; cl != nil; cl = cl.Base {
		if cl.HasMembers(static) {
			return true
		}
	}
	return false
}

func inheritsAccessors(c *ast.ClassLiteral, kind ast.PropertyKind) bool {
	for cl := c.Base; cl != nil; cl = cl.Base {
		if len(cl.Accessors(kind)) > 0 {
			return true
		}
	}
	return false
}
