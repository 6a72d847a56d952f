package token

const (
	Undetermined Token = iota

	Plus      // +
	Minus     // -
	Multiply  // *
	Exponent  // **
	Slash     // /
	Remainder // %

	LogicalAnd // &&
	LogicalOr  // ||
	Coalesce   // ??

	Equal          // ==
	StrictEqual    // ===
	NotEqual       // !=
	StrictNotEqual // !==
	Less           // <
	Greater        // >
	LessOrEqual    // <=
	GreaterOrEqual // >=

	Assign // =
	Not    // !
)

var token2string = [...]string{
	Undetermined:   "UNKNOWN",
	Plus:           "+",
	Minus:          "-",
	Multiply:       "*",
	Exponent:       "**",
	Slash:          "/",
	Remainder:      "%",
	LogicalAnd:     "&&",
	LogicalOr:      "||",
	Coalesce:       "??",
	Equal:          "==",
	StrictEqual:    "===",
	NotEqual:       "!=",
	StrictNotEqual: "!==",
	Less:           "<",
	Greater:        ">",
	LessOrEqual:    "<=",
	GreaterOrEqual: ">=",
	Assign:         "=",
	Not:            "!",
}
