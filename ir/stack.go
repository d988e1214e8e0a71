package ir

// StackAllocator hands out composite storage from the two backing stores.
//
// Both stores view the same buffer, so a single byte offset, $$STACKTOP,
// serves as the top of both. The allocator only ever grows the stack: there
// is no release, and storage obtained inside a function is not reclaimed when
// it returns. It also counts the bytes requested by every allocation site,
// which gives a static estimate of how much of the buffer a single pass
// through all sites consumes.
type StackAllocator struct {
	sites     int
	footprint int
}

// NewStackAllocator returns an allocator with no recorded sites.
func NewStackAllocator() *StackAllocator {
	return &StackAllocator{}
}

// Top returns a reference to the stack top.
func (s *StackAllocator) Top() *Ident {
	return stackTop()
}

// Store returns the backing store that holds components of type t.
func (s *StackAllocator) Store(t Type) *Ident {
	return stackFor(t)
}

// Sites returns the number of allocation sites emitted so far.
func (s *StackAllocator) Sites() int { return s.sites }

// Footprint returns the total bytes requested by all allocation sites.
func (s *StackAllocator) Footprint() int { return s.footprint }

// Materialize writes values to consecutive slots at the stack top and yields
// the address of the first one, typed as typ (with size elements for
// arrays). Each store is followed by a one-word bump of the stack top.
func (s *StackAllocator) Materialize(elem Type, values []Expr, typ Type, size int) *Sequence {
	n := len(values)
	s.sites++
	s.footprint += n * WordSize

	store := stackFor(elem)
	exprs := make([]Expr, 0, 2*n+1)
	for _, v := range values {
		slot := &Member{
			Object:   store,
			Property: wordIndex(stackTop()),
			Computed: true,
			Typ:      elem,
		}
		exprs = append(exprs, &Assign{Left: slot, Right: mustCast(v, elem)}, s.Bump(WordSize))
	}
	base := &Binary{Left: stackTop(), Op: "-", Right: IntLiteral(n * WordSize), Typ: TypeInt}
	exprs = append(exprs, &Binary{Left: base, Op: "|", Right: IntLiteral(0), Typ: typ, Size: size, Cast: true})
	return &Sequence{Exprs: exprs}
}

// Reserve bumps the stack top by the footprint of typ (or of size elements
// of typ for arrays) without writing, and yields the reserved address.
func (s *StackAllocator) Reserve(typ Type, size int) *Sequence {
	bytes := typ.Size()
	if size > 0 {
		bytes = size * WordSize
	}
	s.sites++
	s.footprint += bytes

	base := &Binary{Left: stackTop(), Op: "-", Right: IntLiteral(bytes), Typ: TypeInt}
	return &Sequence{Exprs: []Expr{
		s.Bump(bytes),
		&Binary{Left: base, Op: "|", Right: IntLiteral(0), Typ: typ, Size: size, Cast: true},
	}}
}

// Bump returns $$STACKTOP = ($$STACKTOP + bytes) | 0.
func (s *StackAllocator) Bump(bytes int) Expr {
	sum := &Binary{Left: stackTop(), Op: "+", Right: IntLiteral(bytes), Typ: TypeInt}
	return &Assign{
		Left:  stackTop(),
		Right: &Binary{Left: sum, Op: "|", Right: IntLiteral(0), Typ: TypeInt, Cast: true},
	}
}

// wordIndex turns a byte address into a backing-store index.
func wordIndex(byteAddr Expr) Expr {
	return &Binary{Left: byteAddr, Op: ">>", Right: IntLiteral(2), Typ: TypeInt}
}

// componentAddress returns (base + i*4) >> 2, or base >> 2 for i == 0.
func componentAddress(base Expr, i int) Expr {
	if i == 0 {
		return wordIndex(base)
	}
	return wordIndex(&Binary{Left: base, Op: "+", Right: IntLiteral(i * WordSize), Typ: TypeInt})
}

// reserveFrame records a function's return slot and yields the bump that
// claims it.
func (s *StackAllocator) reserveFrame(bytes int) Expr {
	s.sites++
	s.footprint += bytes
	return s.Bump(bytes)
}
