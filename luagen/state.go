package luagen

import (
	"fmt"
	"strings"
)

// State is the per-file transpilation state threaded through the whole
// lowering pass. One State per file; never shared across compilations.
type State struct {
	out    strings.Builder
	indent int

	// hoist is one name-set per enclosing block scope; names pushed here
	// have been forward-declared and must not be re-declared.
	hoist []map[string]struct{}

	nameCounter int

	// exports maps exported names to their declarations, in emission order.
	exports       []string
	exportAssigns int
	isModule      bool

	usesRuntime bool
}

func newState() *State {
	return &State{
		hoist: []map[string]struct{}{{}},
	}
}

// pushScope enters a nested block scope. The caller must pop on every exit
// path, including diagnostic failure.
func (s *State) pushScope() {
	s.hoist = append(s.hoist, map[string]struct{}{})
}

func (s *State) popScope() {
	s.hoist = s.hoist[:len(s.hoist)-1]
}

// declare records name in the innermost scope.
func (s *State) declare(name string) {
	s.hoist[len(s.hoist)-1][name] = struct{}{}
}

// declared reports whether name is visible in any enclosing scope.
func (s *State) declared(name string) bool {
	for i := len(s.hoist) - 1; i >= 0; i-- {
		if _, ok := s.hoist[i][name]; ok {
			return true
		}
	}
	return false
}

// freshName mints a compiler-generated identifier.
func (s *State) freshName(prefix string) string {
	name := fmt.Sprintf("_%s_%d", prefix, s.nameCounter)
	s.nameCounter++
	return name
}

func (s *State) export(name string) {
	s.isModule = true
	s.exports = append(s.exports, name)
}

// markRuntime records that the lowered output calls into the runtime
// support library. Sticky for the rest of the file.
func (s *State) markRuntime() {
	s.usesRuntime = true
}

func (s *State) pad() string {
	return strings.Repeat("\t", s.indent)
}

func (s *State) write(text string) {
	s.out.WriteString(text)
}

// line writes one indented statement line.
func (s *State) line(text string) {
	s.out.WriteString(s.pad())
	s.out.WriteString(text)
	s.out.WriteString("\n")
}
