package types

import "testing"

func TestLookup(t *testing.T) {
	base := &Named{
		Name: "Animal",
		Members: map[string]Member{
			"speak": {Kind: MethodMember},
			"name":  {Kind: FieldMember, Type: &String{}},
		},
	}
	derived := &Named{
		Name: "Dog",
		Base: base,
		Members: map[string]Member{
			"speak": {Kind: FieldMember},
			"fetch": {Kind: MethodMember},
		},
	}

	tests := []struct {
		name   string
		on     *Named
		member string
		found  bool
		kind   MemberKind
	}{
		{"own member", derived, "fetch", true, MethodMember},
		{"inherited member", derived, "name", true, FieldMember},
		{"derived shadows base", derived, "speak", true, FieldMember},
		{"missing member", derived, "bark", false, 0},
		{"base does not see derived", base, "fetch", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := Lookup(tt.on, tt.member)
			if ok != tt.found {
				t.Fatalf("Lookup(%q) found = %v, want %v", tt.member, ok, tt.found)
			}
			if ok && m.Kind != tt.kind {
				t.Errorf("Lookup(%q) kind = %v, want %v", tt.member, m.Kind, tt.kind)
			}
		})
	}
}

func TestExtends(t *testing.T) {
	grandparent := &Named{Name: "Instance"}
	parent := &Named{Name: "BasePart", Base: grandparent}
	child := &Named{Name: "Part", Base: parent}

	if !Extends(child, "Instance") {
		t.Error("Extends must walk the whole ancestor chain")
	}
	if !Extends(child, "Part") {
		t.Error("a type extends itself")
	}
	if Extends(parent, "Part") {
		t.Error("Extends must not look down the chain")
	}
	if Extends(child, "Model") {
		t.Error("unrelated name must not match")
	}
}

func TestIsMathType(t *testing.T) {
	for _, name := range []string{"Vector2", "Vector2int16", "Vector3", "Vector3int16", "UDim", "UDim2", "CFrame"} {
		if !IsMathType(name) {
			t.Errorf("IsMathType(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"Vector4", "Color3", "Promise", ""} {
		if IsMathType(name) {
			t.Errorf("IsMathType(%q) = true, want false", name)
		}
	}
}
