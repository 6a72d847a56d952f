package luagen

import (
	"testing"

	"github.com/nxtlua/tlua/ast"
)

func TestValidLuaIdent(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"x", true},
		{"_private", true},
		{"camelCase2", true},
		{"", false},
		{"2start", false},
		{"has space", false},
		{"end", false},
		{"while", false},
		{"naïve", false},
		{"日本語", false},
	}
	for _, tt := range tests {
		if got := validLuaIdent(tt.name); got != tt.valid {
			t.Errorf("validLuaIdent(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestCheckName(t *testing.T) {
	node := &ast.Identifier{}

	for _, name := range []string{"super", "self", "exports", "TS", "_getters", "_setters", "new", "constructor", "__rawindex", "end", "local", "naïve", "has space", "2start", ""} {
		if err := checkName(name, node); err == nil {
			t.Errorf("checkName(%q) must fail", name)
		}
	}
	for _, name := range []string{"Animal", "speak", "value", "__eq"} {
		if err := checkName(name, node); err != nil {
			t.Errorf("checkName(%q) = %v, want nil", name, err)
		}
	}
}
