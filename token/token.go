package token

import (
	"strconv"
)

// Token is the set of operator tokens a resolved input tree can carry.
// The front end has already folded keywords and punctuation away; only
// operators survive on binary, logical, unary and assignment nodes.
type Token int

// String returns the source spelling of the token.
func (t Token) String() string {
	if t == 0 {
		return "UNKNOWN"
	}
	if int(t) < len(token2string) {
		return token2string[t]
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}
