package luagen

// Metamethod names the target runtime dispatches through a metatable.
// A class method with one of these names gets a forwarding trampoline on
// the class table so the event fires even when the method is inherited.
var metamethods = map[string]struct{}{
	"__eq":       {},
	"__lt":       {},
	"__le":       {},
	"__add":      {},
	"__sub":      {},
	"__mul":      {},
	"__div":      {},
	"__mod":      {},
	"__pow":      {},
	"__unm":      {},
	"__call":     {},
	"__concat":   {},
	"__tostring": {},
	"__len":      {},
	"__index":    {},
	"__newindex": {},
	"__mode":     {},
}

// undefinableMetamethods are reserved by the accessor-dispatch machinery
// and the inheritance wiring; a class may never define a method with one
// of these names.
var undefinableMetamethods = map[string]struct{}{
	"__index":    {},
	"__newindex": {},
	"__mode":     {},
}

func isMetamethod(name string) bool {
	_, ok := metamethods[name]
	return ok
}

func isUndefinableMetamethod(name string) bool {
	_, ok := undefinableMetamethods[name]
	return ok
}
