package llvm

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// Function represents an LLVM function.
type Function struct {
	fn *ir.Func

	// The number of times each name hint has been requested.  LLVM requires
	// that local names be unique within a function so every requested name
	// is suffixed with a counter after its first use: `addtmp`, `addtmp1`, etc.
	hintCounts map[string]int

	// The set of local names already in use.
	used map[string]bool

	// The number of allocas at the start of the entry block.
	allocaCount int
}

// newFunction creates a new function which is not yet part of any module.
func newFunction(name string, retType Type, params []Param) *Function {
	f := &Function{
		hintCounts: make(map[string]int),
		used:       make(map[string]bool),
	}

	irParams := make([]*ir.Param, len(params))
	for i, param := range params {
		irParams[i] = ir.NewParam(f.uniqueName(param.Name), param.Type)
	}

	f.fn = ir.NewFunc(name, retType, irParams...)
	return f
}

// Name returns the name of the function.
func (f *Function) Name() string {
	return f.fn.Name()
}

// Value returns the function as a callable value.
func (f *Function) Value() Value {
	return f.fn
}

// ReturnType returns the return type of the function.
func (f *Function) ReturnType() Type {
	return f.fn.Sig.RetType
}

// Params returns the parameter values of the function.
func (f *Function) Params() []Value {
	params := make([]Value, len(f.fn.Params))
	for i, param := range f.fn.Params {
		params[i] = param
	}

	return params
}

// NewBlock appends a new basic block to the function.  The name is a hint: it
// is made unique within the function.
func (f *Function) NewBlock(name string) BasicBlock {
	return BasicBlock{b: f.fn.NewBlock(f.uniqueName(name)), fn: f}
}

// EntryBlock returns the first block of the function.
func (f *Function) EntryBlock() BasicBlock {
	return BasicBlock{b: f.fn.Blocks[0], fn: f}
}

// Blocks returns all the blocks of the function in order.
func (f *Function) Blocks() []BasicBlock {
	blocks := make([]BasicBlock, len(f.fn.Blocks))
	for i, b := range f.fn.Blocks {
		blocks[i] = BasicBlock{b: b, fn: f}
	}

	return blocks
}

// uniqueName returns a local name based on hint that has not yet been used in
// the function.  An empty hint produces an empty (numbered) name.
func (f *Function) uniqueName(hint string) string {
	if hint == "" {
		return ""
	}

	n := f.hintCounts[hint]
	name := hint
	if n > 0 {
		name = hint + strconv.Itoa(n)
	}

	for f.used[name] {
		n++
		name = hint + strconv.Itoa(n)
	}

	f.hintCounts[hint] = n + 1
	f.used[name] = true
	return name
}

// -----------------------------------------------------------------------------

// BasicBlock represents an LLVM basic block.
type BasicBlock struct {
	b  *ir.Block
	fn *Function
}

// Name returns the name of the block.
func (bb BasicBlock) Name() string {
	return bb.b.Name()
}

// Terminated returns whether the block already ends in a terminator.
func (bb BasicBlock) Terminated() bool {
	return bb.b.Term != nil
}

// Exists returns whether bb refers to an actual block.
func (bb BasicBlock) Exists() bool {
	return bb.b != nil
}

// Instructions returns the textual form of each non-terminator instruction in
// the block.
func (bb BasicBlock) Instructions() []string {
	insts := make([]string, len(bb.b.Insts))
	for i, inst := range bb.b.Insts {
		insts[i] = inst.LLString()
	}

	return insts
}

// Terminator returns the textual form of the block's terminator or an empty
// string if it has none.
func (bb BasicBlock) Terminator() string {
	if bb.b.Term == nil {
		return ""
	}

	return bb.b.Term.LLString()
}

// -----------------------------------------------------------------------------

// Incoming is a single incoming value of a phi node.
type Incoming struct {
	Value Value
	Block BasicBlock
}

// isVoidValue returns whether v produces no value.
func isVoidValue(v Value) bool {
	_, ok := v.Type().(*types.VoidType)
	return ok
}
