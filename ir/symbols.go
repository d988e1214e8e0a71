package ir

// SymbolKind distinguishes what a name refers to.
type SymbolKind uint8

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
)

// Symbol is a declared name.
type Symbol struct {
	Kind SymbolKind
	Name string

	// Ref is the emitted reference for variables.
	Ref *Ident

	// Const is set for const-qualified variables with a folded value.
	Const *Value

	// Overloads holds every signature declared under this name.
	Overloads []*Function
}

// SymbolTable resolves names through a stack of lexical scopes.
type SymbolTable struct {
	scopes []map[string]*Symbol
}

// NewSymbolTable returns a table holding only the global scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []map[string]*Symbol{make(map[string]*Symbol)}}
}

// EnterScope opens a nested scope.
func (t *SymbolTable) EnterScope() {
	t.scopes = append(t.scopes, make(map[string]*Symbol))
}

// ExitScope discards the innermost scope. The global scope is never removed.
func (t *SymbolTable) ExitScope() {
	if len(t.scopes) > 1 {
		t.scopes = t.scopes[:len(t.scopes)-1]
	}
}

// Depth returns the number of open scopes, 1 at global scope.
func (t *SymbolTable) Depth() int {
	return len(t.scopes)
}

// Declare binds sym in the innermost scope. It returns false if the name is
// already bound there.
func (t *SymbolTable) Declare(name string, sym *Symbol) bool {
	scope := t.scopes[len(t.scopes)-1]
	if _, exists := scope[name]; exists {
		return false
	}
	scope[name] = sym
	return true
}

// Lookup finds the innermost binding of name.
func (t *SymbolTable) Lookup(name string) (*Symbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i][name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal finds name in the innermost scope only.
func (t *SymbolTable) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := t.scopes[len(t.scopes)-1][name]
	return sym, ok
}
