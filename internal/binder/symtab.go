package binder

// funcInfo is the binder's view of one declared function: its declared
// parameter order (by name) and the total number of frame slots
// (parameters followed by locals) the code generator must allocate.
type funcInfo struct {
	name       string
	paramOrder []string
	paramSlot  map[string]int
	frameSize  int

	// builtin marks one of the three VM-opcode builtins (input, print,
	// exit); the code generator emits READ_INT/PRINT_INT/HALT directly
	// for a call to one of these instead of CALL, so they carry no
	// frame of their own.
	builtin bool
}

// paramSet returns the function's parameter names as a set, used to
// validate a call's named-argument set against it (§4.3: "exactly
// matches the callee's parameter names").
func (f *funcInfo) paramSet() map[string]bool {
	set := make(map[string]bool, len(f.paramOrder))
	for _, p := range f.paramOrder {
		set[p] = true
	}
	return set
}

// scope is one function's local symbol tables: parameters and locals,
// each name -> slot, kept separate so shadowing-within-one-table can
// be distinguished from shadowing-across-tables (which is allowed).
type scope struct {
	params map[string]int
	locals map[string]int
}

func newScope() *scope {
	return &scope{params: make(map[string]int), locals: make(map[string]int)}
}
