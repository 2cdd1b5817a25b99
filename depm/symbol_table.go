package depm

import (
	"errors"
	"sort"

	"sprigc/report"
)

// SymbolTable maps the names of the symbols declared in a single scope to
// their symbol info.
type SymbolTable struct {
	symbols map[string]*SymbolInfo
}

// NewSymbolTable creates a new, empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*SymbolInfo)}
}

// Insert adds a symbol to the table.  It returns false if a symbol by the same
// name is already in the table.
func (st *SymbolTable) Insert(sym *SymbolInfo) bool {
	if _, ok := st.symbols[sym.Name]; ok {
		return false
	}

	st.symbols[sym.Name] = sym
	return true
}

// Get looks up a symbol in the table by name.
func (st *SymbolTable) Get(name string) (*SymbolInfo, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

// Len returns the number of symbols in the table.
func (st *SymbolTable) Len() int {
	return len(st.symbols)
}

// Names returns the names of all the symbols in the table in sorted order.
func (st *SymbolTable) Names() []string {
	names := make([]string, 0, len(st.symbols))
	for name := range st.symbols {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------

// ErrEmptyStack is returned when a symbol is inserted into a stack with no
// tables on it.
var ErrEmptyStack = errors.New("symbol table stack is empty")

// SymbolTableStack is the scoped environment used to resolve names.  The top
// table is the innermost scope.  The stack is created per translation unit and
// threaded through each phase of compilation that needs it.
type SymbolTableStack struct {
	tables []*SymbolTable
}

// NewSymbolTableStack creates a new symbol table stack with the given tables
// pushed onto it in order.
func NewSymbolTableStack(tables ...*SymbolTable) *SymbolTableStack {
	return &SymbolTableStack{tables: tables}
}

// Push pushes a table onto the stack: it becomes the innermost scope.
func (sts *SymbolTableStack) Push(table *SymbolTable) {
	sts.tables = append(sts.tables, table)
}

// Pop removes and returns the innermost table.
func (sts *SymbolTableStack) Pop() (*SymbolTable, bool) {
	if len(sts.tables) == 0 {
		return nil, false
	}

	top := sts.tables[len(sts.tables)-1]
	sts.tables = sts.tables[:len(sts.tables)-1]
	return top, true
}

// Peek returns the innermost table without removing it.
func (sts *SymbolTableStack) Peek() (*SymbolTable, bool) {
	if len(sts.tables) == 0 {
		return nil, false
	}

	return sts.tables[len(sts.tables)-1], true
}

// IsEmpty returns whether there are no tables on the stack.
func (sts *SymbolTableStack) IsEmpty() bool {
	return len(sts.tables) == 0
}

// Size returns the number of tables on the stack.
func (sts *SymbolTableStack) Size() int {
	return len(sts.tables)
}

// Global returns the outermost table: the table of top-level symbols.
func (sts *SymbolTableStack) Global() (*SymbolTable, bool) {
	if len(sts.tables) == 0 {
		return nil, false
	}

	return sts.tables[0], true
}

// Lookup looks up a symbol by name, searching from the innermost scope out.
func (sts *SymbolTableStack) Lookup(name string) (*SymbolInfo, bool) {
	for i := len(sts.tables) - 1; i >= 0; i-- {
		if sym, ok := sts.tables[i].Get(name); ok {
			return sym, true
		}
	}

	return nil, false
}

// InsertInTop inserts a symbol into the innermost scope.  It fails with
// ErrEmptyStack if there are no scopes and with a Redeclared error if the
// innermost scope already has a symbol by the same name.
func (sts *SymbolTableStack) InsertInTop(sym *SymbolInfo) error {
	top, ok := sts.Peek()
	if !ok {
		return ErrEmptyStack
	}

	if !top.Insert(sym) {
		return report.Redeclared{Name: sym.Name, Span: sym.DefSpan}
	}

	return nil
}
