package luagen

import (
	"github.com/nukilabs/unicodeid"
	"golang.org/x/exp/slices"
	"golang.org/x/text/unicode/norm"

	"github.com/nxtlua/tlua/ast"
)

var luaKeywords = []string{
	"and", "break", "do", "else", "elseif", "end", "false", "for",
	"function", "if", "in", "local", "nil", "not", "or", "repeat",
	"return", "then", "true", "until", "while",
}

// reservedNames may not be used as class or member names; the lowered
// output claims them for its own wiring.
var reservedNames = []string{
	"super", "self", "exports", "TS",
	"_getters", "_setters", "new", "constructor", "__rawindex",
}

// validLuaIdent reports whether name can be emitted as a bare Lua
// identifier (dot access, table-literal key, local name). Names are
// NFC-normalized first; the target only accepts ASCII identifiers.
func validLuaIdent(name string) bool {
	name = norm.NFC.String(name)
	if name == "" || slices.Contains(luaKeywords, name) {
		return false
	}
	for i, r := range name {
		if r > 0x7f {
			return false
		}
		if i == 0 {
			if !unicodeid.IsIDStart(r) && r != '_' {
				return false
			}
		} else if !unicodeid.IsIDContinue(r) {
			return false
		}
	}
	return true
}

// checkName validates a candidate class or member name against the target
// language's reserved words and the names the lowering claims for itself.
func checkName(name string, node ast.Node) error {
	name = norm.NFC.String(name)
	if slices.Contains(luaKeywords, name) {
		return diagf(KindReservedIdentifier, node, "name %q is reserved in the target language", name)
	}
	if slices.Contains(reservedNames, name) {
		return diagf(KindReservedIdentifier, node, "name %q is reserved by the compiler", name)
	}
	if !validLuaIdent(name) {
		return diagf(KindReservedIdentifier, node, "name %q cannot be emitted as an identifier in the target language", name)
	}
	return nil
}
