package luagen

import (
	"strings"
	"testing"

	"github.com/nxtlua/tlua/ast"
	"github.com/nxtlua/tlua/types"
)

func mkElems(list ...ast.Element) ast.ClassElements {
	out := make(ast.ClassElements, len(list))
	for i := range list {
		out[i] = ast.ClassElement{Element: list[i]}
	}
	return out
}

func mkField(name string, init *ast.Expression, static bool) ast.Element {
	return &ast.FieldDefinition{
		Key:         &ast.Identifier{Name: name},
		Initializer: init,
		Static:      static,
	}
}

func mkMethod(name string, static bool, fn *ast.FunctionLiteral) ast.Element {
	return &ast.MethodDefinition{
		Key:    &ast.Identifier{Name: name},
		Kind:   ast.PropertyKindMethod,
		Static: static,
		Body:   fn,
	}
}

func mkCtor(fn *ast.FunctionLiteral) ast.Element {
	return &ast.MethodDefinition{
		Key:  &ast.Identifier{Name: "constructor"},
		Kind: ast.PropertyKindConstructor,
		Body: fn,
	}
}

func mkAccessor(name string, kind ast.PropertyKind, fn *ast.FunctionLiteral) ast.Element {
	return &ast.MethodDefinition{
		Key:  &ast.Identifier{Name: name},
		Kind: kind,
		Body: fn,
	}
}

func mkClass(name string, body ...ast.Element) *ast.ClassLiteral {
	c := &ast.ClassLiteral{Body: mkElems(body...)}
	if name != "" {
		c.Name = &ast.Identifier{Name: name}
	}
	return c
}

func mkThisDot(member string) *ast.Expression {
	return mkDot(mkExpr(&ast.ThisExpression{}, &types.Any{}), member, &types.Any{})
}

func mkAssign(left, right *ast.Expression) ast.Stmt {
	return mkExprStmt(mkExpr(&ast.AssignExpression{Left: left, Right: right}, &types.Any{}))
}

func TestClassRoundTrip(t *testing.T) {
	animalType := &types.Named{Name: "Animal"}

	animal := mkClass("Animal",
		mkField("name", nil, false),
		mkCtor(mkFn([]string{"n"},
			mkAssign(mkThisDot("name"), mkIdent("n", &types.String{})),
		)),
		mkMethod("speak", false, mkFn(nil,
			&ast.ReturnStatement{Argument: mkStr("generic noise")},
		)),
	)
	animal.Type = animalType

	dog := mkClass("Dog",
		mkCtor(mkFn([]string{"n"},
			mkExprStmt(mkCall(mkExpr(&ast.SuperExpression{}, &types.Any{}), &types.Void{},
				mkIdent("n", &types.String{}))),
		)),
		mkMethod("speak", false, mkFn(nil,
			&ast.ReturnStatement{Argument: mkStr("Woof")},
		)),
	)
	dog.SuperClass = mkIdent("Animal", animalType)
	dog.Base = animal
	dog.Type = &types.Named{Name: "Dog", Base: animalType}

	got := lower(t, ast.Script, mkStmts(
		&ast.ClassDeclaration{Class: animal},
		&ast.ClassDeclaration{Class: dog},
	))

	expected := `local Animal;
do
	Animal = {
	};
	Animal.__index = {
		speak = function(self)
			return "generic noise";
		end;
	};
	function Animal.new(...)
		local self = setmetatable({}, Animal);
		Animal.constructor(self, ...);
		return self;
	end;
	Animal.constructor = function(self, n)
		self.name = n;
	end;
end;
local Dog;
do
	local super = Animal;
	Dog = {
	};
	Dog.__index = setmetatable({
		speak = function(self)
			return "Woof";
		end;
	}, { __index = super.__index });
	function Dog.new(...)
		local self = setmetatable({}, Dog);
		Dog.constructor(self, ...);
		return self;
	end;
	Dog.constructor = function(self, n)
		super.constructor(self, n);
	end;
end;
`
	if got != expected {
		t.Errorf("\nExpected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestMemberlessSubclassInheritsInitializers(t *testing.T) {
	animal := mkClass("Animal",
		mkField("legs", mkNum("4"), false),
	)
	dog := mkClass("Dog")
	dog.SuperClass = mkIdent("Animal", &types.Named{Name: "Animal"})
	dog.Base = animal

	got := lower(t, ast.Script, mkStmts(
		&ast.ClassDeclaration{Class: animal},
		&ast.ClassDeclaration{Class: dog},
	))

	// Lookup on a Dog instance falls through to Animal's instance table,
	// and Dog's constructor runs Animal's field initializer through the
	// implicit superclass call.
	if !strings.Contains(got, "Dog.__index = setmetatable({\n\t}, { __index = super.__index });") {
		t.Errorf("subclass instance table must chain to the ancestor's:\n%s", got)
	}
	if !strings.Contains(got, "Dog.constructor = function(self, ...)\n\t\tsuper.constructor(self, ...);\n\tend;") {
		t.Errorf("subclass constructor must forward arguments to the superclass:\n%s", got)
	}
	if !strings.Contains(got, "Animal.constructor = function(self)\n\t\tself.legs = 4;\n\tend;") {
		t.Errorf("field initializer must run inside the base constructor:\n%s", got)
	}
}

func TestClassImplicitSuperCall(t *testing.T) {
	base := mkClass("Base",
		mkMethod("run", false, mkFn(nil)),
	)
	sub := mkClass("Sub",
		mkMethod("stop", false, mkFn(nil)),
	)
	sub.SuperClass = mkIdent("Base", &types.Named{Name: "Base"})
	sub.Base = base

	got := lower(t, ast.Script, mkStmts(
		&ast.ClassDeclaration{Class: base},
		&ast.ClassDeclaration{Class: sub},
	))

	if !strings.Contains(got, "Sub.constructor = function(self, ...)\n\t\tsuper.constructor(self, ...);\n\tend;") {
		t.Errorf("missing implicit superclass constructor call:\n%s", got)
	}
	if strings.Contains(got, "Base.constructor = function(self, ...)") {
		t.Errorf("base class without a constructor takes no forwarded arguments:\n%s", got)
	}
}

func TestClassFieldInitializers(t *testing.T) {
	thing := mkClass("Thing",
		mkField("x", mkNum("1"), false),
		mkField("y", mkNum("2"), true),
	)
	got := lower(t, ast.Script, mkStmts(&ast.ClassDeclaration{Class: thing}))

	ctorAt := strings.Index(got, "Thing.constructor = function(self)")
	instInit := strings.Index(got, "self.x = 1;")
	staticInit := strings.Index(got, "Thing.y = 2;")
	if ctorAt < 0 || instInit < 0 || staticInit < 0 {
		t.Fatalf("missing expected emission:\n%s", got)
	}
	if instInit < ctorAt {
		t.Errorf("instance field must initialize inside the constructor:\n%s", got)
	}
	if staticInit < ctorAt {
		t.Errorf("static field must be assigned after the constructor:\n%s", got)
	}
}

func TestClassStaticInheritance(t *testing.T) {
	base := mkClass("Base",
		mkMethod("make", true, mkFn(nil, &ast.ReturnStatement{Argument: mkNum("1")})),
	)
	sub := mkClass("Sub",
		mkField("tag", mkStr("s"), true),
	)
	sub.SuperClass = mkIdent("Base", &types.Named{Name: "Base"})
	sub.Base = base

	got := lower(t, ast.Script, mkStmts(
		&ast.ClassDeclaration{Class: base},
		&ast.ClassDeclaration{Class: sub},
	))

	if !strings.Contains(got, "Sub = setmetatable({\n\t}, { __index = super });") {
		t.Errorf("static table must chain to the superclass:\n%s", got)
	}
	if !strings.Contains(got, "Base = {\n\t\tmake = function()") {
		t.Errorf("static method must live on the class table without self:\n%s", got)
	}
	// Base declares no instance members, so Sub's instance table stays flat.
	if !strings.Contains(got, "Sub.__index = {\n\t};") {
		t.Errorf("instance table must not chain when nothing is inherited:\n%s", got)
	}
}

func TestClassMetamethods(t *testing.T) {
	t.Run("trampoline on the class table", func(t *testing.T) {
		vec := mkClass("Vec",
			mkMethod("__eq", false, mkFn([]string{"other"},
				&ast.ReturnStatement{Argument: mkExpr(&ast.BooleanLiteral{Value: true}, &types.Boolean{})},
			)),
		)
		got := lower(t, ast.Script, mkStmts(&ast.ClassDeclaration{Class: vec}))

		if !strings.Contains(got, "Vec.__eq = function(self, ...)\n\t\treturn self:__eq(...);\n\tend;") {
			t.Errorf("missing metamethod trampoline:\n%s", got)
		}
		if !strings.Contains(got, "__eq = function(self, other)") {
			t.Errorf("metamethod body must live in the instance table:\n%s", got)
		}
	})

	t.Run("inherited metamethod still gets a trampoline", func(t *testing.T) {
		base := mkClass("Base",
			mkMethod("__tostring", false, mkFn(nil,
				&ast.ReturnStatement{Argument: mkStr("base")},
			)),
		)
		sub := mkClass("Sub")
		sub.SuperClass = mkIdent("Base", &types.Named{Name: "Base"})
		sub.Base = base

		got := lower(t, ast.Script, mkStmts(
			&ast.ClassDeclaration{Class: base},
			&ast.ClassDeclaration{Class: sub},
		))
		if !strings.Contains(got, "Sub.__tostring = function(self, ...)") {
			t.Errorf("subclass must re-emit inherited trampolines:\n%s", got)
		}
	})

	t.Run("claimed metamethods cannot be defined", func(t *testing.T) {
		for _, name := range []string{"__index", "__newindex", "__mode"} {
			c := mkClass("Bad", mkMethod(name, false, mkFn(nil)))
			d := lowerDiag(t, ast.Script, mkStmts(&ast.ClassDeclaration{Class: c}))
			if d.Kind != KindUndefinableMetamethod {
				t.Errorf("%s: expected %v, got %v", name, KindUndefinableMetamethod, d.Kind)
			}
		}
	})
}

func TestAbstractClassHasNoFactory(t *testing.T) {
	shape := mkClass("Shape",
		mkMethod("area", false, mkFn(nil, &ast.ReturnStatement{Argument: mkNum("0")})),
	)
	shape.Abstract = true

	got := lower(t, ast.Script, mkStmts(&ast.ClassDeclaration{Class: shape}))
	if strings.Contains(got, "Shape.new") {
		t.Errorf("abstract class must not be instantiable:\n%s", got)
	}
	if !strings.Contains(got, "Shape.constructor = function(self)") {
		t.Errorf("abstract class still carries a constructor slot for subclasses:\n%s", got)
	}
}

func TestClassAccessors(t *testing.T) {
	rect := mkClass("Rect",
		mkField("w", mkNum("1"), false),
		mkAccessor("area", ast.PropertyKindGet, mkFn(nil,
			&ast.ReturnStatement{Argument: mkThisDot("w")},
		)),
		mkAccessor("area", ast.PropertyKindSet, mkFn([]string{"value"},
			mkAssign(mkThisDot("w"), mkIdent("value", &types.Number{})),
		)),
	)

	got := lower(t, ast.Script, mkStmts(&ast.ClassDeclaration{Class: rect}))

	for _, want := range []string{
		"Rect._getters = {\n\t\tarea = function(self)",
		"local __index = Rect.__index;",
		"Rect.__index = function(self, index)",
		"local getter = Rect._getters[index];",
		"return getter(self);",
		"return __index[index];",
		"Rect._setters = {\n\t\tarea = function(self, value)",
		"Rect.__newindex = function(self, index, value)",
		"setter(self, value);",
		"rawset(self, index, value);",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
}

func TestClassInheritedAccessorsAlias(t *testing.T) {
	base := mkClass("Base",
		mkAccessor("size", ast.PropertyKindGet, mkFn(nil,
			&ast.ReturnStatement{Argument: mkNum("1")},
		)),
	)
	sub := mkClass("Sub",
		mkMethod("run", false, mkFn(nil)),
	)
	sub.SuperClass = mkIdent("Base", &types.Named{Name: "Base"})
	sub.Base = base

	got := lower(t, ast.Script, mkStmts(
		&ast.ClassDeclaration{Class: base},
		&ast.ClassDeclaration{Class: sub},
	))

	if !strings.Contains(got, "Sub._getters = super._getters;") {
		t.Errorf("accessor-free subclass must alias the inherited table:\n%s", got)
	}
	if !strings.Contains(got, "Sub.__index = function(self, index)") {
		t.Errorf("subclass still needs the read hook for inherited accessors:\n%s", got)
	}
}

func TestClassOwnAndInheritedAccessorsChain(t *testing.T) {
	base := mkClass("Base",
		mkAccessor("size", ast.PropertyKindGet, mkFn(nil,
			&ast.ReturnStatement{Argument: mkNum("1")},
		)),
	)
	sub := mkClass("Sub",
		mkAccessor("name", ast.PropertyKindGet, mkFn(nil,
			&ast.ReturnStatement{Argument: mkStr("sub")},
		)),
	)
	sub.SuperClass = mkIdent("Base", &types.Named{Name: "Base"})
	sub.Base = base

	got := lower(t, ast.Script, mkStmts(
		&ast.ClassDeclaration{Class: base},
		&ast.ClassDeclaration{Class: sub},
	))

	if !strings.Contains(got, "}, { __index = super._getters });") {
		t.Errorf("own accessor table must chain to the inherited one:\n%s", got)
	}
}

func TestSuperCallUnderBaseAccessors(t *testing.T) {
	superSpeak := func() ast.Stmt {
		return &ast.ReturnStatement{Argument: mkCall(
			mkDot(mkExpr(&ast.SuperExpression{}, &types.Any{}), "speak", &types.Function{}),
			&types.String{})}
	}

	t.Run("getter-bearing ancestor routes through the raw table", func(t *testing.T) {
		base := mkClass("Base",
			mkAccessor("size", ast.PropertyKindGet, mkFn(nil,
				&ast.ReturnStatement{Argument: mkNum("1")},
			)),
			mkMethod("speak", false, mkFn(nil,
				&ast.ReturnStatement{Argument: mkStr("base")},
			)),
		)
		sub := mkClass("Sub",
			mkMethod("speak", false, mkFn(nil, superSpeak())),
		)
		sub.SuperClass = mkIdent("Base", &types.Named{Name: "Base"})
		sub.Base = base

		got := lower(t, ast.Script, mkStmts(
			&ast.ClassDeclaration{Class: base},
			&ast.ClassDeclaration{Class: sub},
		))

		// Base.__index is the hook function here; the super call must not
		// index it.
		if !strings.Contains(got, "Base.__rawindex = __index;") {
			t.Errorf("getter-bearing class must stash its raw instance table:\n%s", got)
		}
		if !strings.Contains(got, "return super.__rawindex.speak(self);") {
			t.Errorf("super call must address the raw instance table:\n%s", got)
		}
		if strings.Contains(got, "super.__index.speak") {
			t.Errorf("super call must not index the hook function:\n%s", got)
		}
	})

	t.Run("plain ancestor keeps the direct path", func(t *testing.T) {
		base := mkClass("Base",
			mkMethod("speak", false, mkFn(nil,
				&ast.ReturnStatement{Argument: mkStr("base")},
			)),
		)
		sub := mkClass("Sub",
			mkMethod("speak", false, mkFn(nil, superSpeak())),
		)
		sub.SuperClass = mkIdent("Base", &types.Named{Name: "Base"})
		sub.Base = base

		got := lower(t, ast.Script, mkStmts(
			&ast.ClassDeclaration{Class: base},
			&ast.ClassDeclaration{Class: sub},
		))

		if !strings.Contains(got, "return super.__index.speak(self);") {
			t.Errorf("super call must address the instance table directly:\n%s", got)
		}
		if strings.Contains(got, "__rawindex") {
			t.Errorf("no raw table is stashed without accessors:\n%s", got)
		}
	})
}

func TestClassReservedNames(t *testing.T) {
	tests := []struct {
		name  string
		class *ast.ClassLiteral
	}{
		{"class named after wiring local", mkClass("super")},
		{"field shadows factory", mkClass("C", mkField("new", nil, false))},
		{"method shadows runtime handle", mkClass("C", mkMethod("TS", false, mkFn(nil)))},
		{"method shadows raw table stash", mkClass("C", mkMethod("__rawindex", false, mkFn(nil)))},
		{"class named after keyword", mkClass("end")},
		{"member not emittable as an identifier", mkClass("C", mkMethod("naïve", false, mkFn(nil)))},
		{"class not emittable as an identifier", mkClass("日本語")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := lowerDiag(t, ast.Script, mkStmts(&ast.ClassDeclaration{Class: tt.class}))
			if d.Kind != KindReservedIdentifier {
				t.Errorf("expected %v, got %v", KindReservedIdentifier, d.Kind)
			}
		})
	}
}

func TestAnonymousClassExpression(t *testing.T) {
	got := lower(t, ast.Script, mkStmts(
		mkLocal("C", mkExpr(mkClass(""), &types.Any{})),
	))

	expected := `local C = (function()
	local _class_0;
	do
		_class_0 = {
		};
		_class_0.__index = {
		};
		function _class_0.new(...)
			local self = setmetatable({}, _class_0);
			_class_0.constructor(self, ...);
			return self;
		end;
		_class_0.constructor = function(self)
		end;
	end;
	return _class_0;
end)();
`
	if got != expected {
		t.Errorf("\nExpected:\n%s\nGot:\n%s", expected, got)
	}
}

func TestExportedClass(t *testing.T) {
	got := lower(t, ast.ModuleScript, mkStmts(
		&ast.ClassDeclaration{Class: mkClass("Animal"), Exported: true},
	))
	if !strings.Contains(got, "exports.Animal = Animal;") {
		t.Errorf("missing export assignment:\n%s", got)
	}
	if !strings.HasPrefix(got, "local exports = {};\n") {
		t.Errorf("missing exports table declaration:\n%s", got)
	}
	if !strings.HasSuffix(got, "return exports;\n") {
		t.Errorf("missing exports return:\n%s", got)
	}
}
