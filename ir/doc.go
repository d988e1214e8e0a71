// Package ir type-checks and lowers shader code to the asm.js value model.
//
// In the lowered form every value is a 32-bit int, a float or a bool held
// as an int. Vectors, matrices and arrays live in two views of one buffer,
// $$STACK_I for ints and bools and $$STACK_F for floats, and are passed
// around as byte addresses into it. $$STACKTOP is the shared bump pointer.
//
// # Construction is checking
//
// A front end drives a Context, calling its constructors bottom-up as it
// recognizes source constructs:
//
//	ctx := ir.NewContext()
//	x, _ := ctx.Lookup("x")
//	sum, err := ctx.Binary(x, "+", ir.FloatLiteral(1))
//
// Each constructor validates its operands and returns a fully typed node or
// an *Error; there is no separate type checking pass. Operations on vectors
// and matrices are decomposed into per-component scalar operations. The
// result is a Composite whose elements are known but not yet stored; it is
// written to the stack only when something needs its address.
//
// # Functions
//
// BeginFunction and EndFunction bracket a function body. Locals are
// hoisted into var declarations; EndFunction runs Function.SetBody, which
// adds parameter coercions, the return slot for composite results and the
// frame snapshot $$sp.
//
// # Stack discipline
//
// The stack is an arena: allocations bump $$STACKTOP and nothing is ever
// released, so a run is bounded by the size of the buffer. $$sp records
// where a frame's locals begin but is not used to unwind.
package ir
