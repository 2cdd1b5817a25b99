package llvm

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// IRBuilder represents an LLVM IR builder.  Every instruction built is appended
// to the end of the block the builder is positioned over.  All build methods
// which produce a value accept a name hint: the name is made unique within
// the enclosing function.
type IRBuilder struct {
	block BasicBlock
}

// NewBuilder creates a new IR builder in the given context.
func (Context) NewBuilder() *IRBuilder {
	return &IRBuilder{}
}

// -----------------------------------------------------------------------------

// Block returns the current basic block the builder is positioned over.
func (irb *IRBuilder) Block() BasicBlock {
	return irb.block
}

// Function returns the function containing the current basic block.
func (irb *IRBuilder) Function() *Function {
	return irb.block.fn
}

// MoveToEnd moves the builder to the end of bb.
func (irb *IRBuilder) MoveToEnd(bb BasicBlock) {
	irb.block = bb
}

// AppendBlock creates a new block at the end of the current function.  It
// does not move the builder.
func (irb *IRBuilder) AppendBlock(name string) BasicBlock {
	return irb.block.fn.NewBlock(name)
}

// named gives inst a unique name based on hint and returns it.
func (irb *IRBuilder) named(inst value.Named, hint string) Value {
	inst.SetName(irb.block.fn.uniqueName(hint))
	return inst
}

// -----------------------------------------------------------------------------

// BuildRet builds a `ret` instruction returning v.
func (irb *IRBuilder) BuildRet(v Value) {
	irb.block.b.NewRet(v)
}

// BuildRetVoid builds a `ret void` instruction.
func (irb *IRBuilder) BuildRetVoid() {
	irb.block.b.NewRet(nil)
}

// BuildBr builds an unconditional `br` instruction.
func (irb *IRBuilder) BuildBr(dest BasicBlock) {
	irb.block.b.NewBr(dest.b)
}

// BuildCondBr builds a conditional `br` instruction.
func (irb *IRBuilder) BuildCondBr(cond Value, thenBlock, elseBlock BasicBlock) {
	irb.block.b.NewCondBr(cond, thenBlock.b, elseBlock.b)
}

// BuildBreak builds the branch that leaves a loop: breakBlock is the block
// following the loop.
func (irb *IRBuilder) BuildBreak(breakBlock BasicBlock) {
	irb.BuildBr(breakBlock)
}

// BuildContinue builds the branch that begins the next iteration of a loop:
// continueBlock is the block that evaluates the loop condition or step.
func (irb *IRBuilder) BuildContinue(continueBlock BasicBlock) {
	irb.BuildBr(continueBlock)
}

// BuildUnreachable builds an `unreachable` instruction.
func (irb *IRBuilder) BuildUnreachable() {
	irb.block.b.NewUnreachable()
}

// -----------------------------------------------------------------------------
// The arithmetic builders select the floating-point form of their instruction
// when the left operand is a floating-point value.

// BuildAdd builds an `add` or `fadd` instruction.
func (irb *IRBuilder) BuildAdd(lhs, rhs Value, name string) Value {
	if IsFloat(lhs.Type()) {
		return irb.named(irb.block.b.NewFAdd(lhs, rhs), name)
	}

	return irb.named(irb.block.b.NewAdd(lhs, rhs), name)
}

// BuildSub builds a `sub` or `fsub` instruction.
func (irb *IRBuilder) BuildSub(lhs, rhs Value, name string) Value {
	if IsFloat(lhs.Type()) {
		return irb.named(irb.block.b.NewFSub(lhs, rhs), name)
	}

	return irb.named(irb.block.b.NewSub(lhs, rhs), name)
}

// BuildMul builds a `mul` or `fmul` instruction.
func (irb *IRBuilder) BuildMul(lhs, rhs Value, name string) Value {
	if IsFloat(lhs.Type()) {
		return irb.named(irb.block.b.NewFMul(lhs, rhs), name)
	}

	return irb.named(irb.block.b.NewMul(lhs, rhs), name)
}

// BuildDiv builds an `sdiv` or `fdiv` instruction.
func (irb *IRBuilder) BuildDiv(lhs, rhs Value, name string) Value {
	if IsFloat(lhs.Type()) {
		return irb.named(irb.block.b.NewFDiv(lhs, rhs), name)
	}

	return irb.named(irb.block.b.NewSDiv(lhs, rhs), name)
}

// BuildRem builds an `srem` or `frem` instruction.
func (irb *IRBuilder) BuildRem(lhs, rhs Value, name string) Value {
	if IsFloat(lhs.Type()) {
		return irb.named(irb.block.b.NewFRem(lhs, rhs), name)
	}

	return irb.named(irb.block.b.NewSRem(lhs, rhs), name)
}

// BuildAnd builds an `and` instruction.
func (irb *IRBuilder) BuildAnd(lhs, rhs Value, name string) Value {
	return irb.named(irb.block.b.NewAnd(lhs, rhs), name)
}

// BuildOr builds an `or` instruction.
func (irb *IRBuilder) BuildOr(lhs, rhs Value, name string) Value {
	return irb.named(irb.block.b.NewOr(lhs, rhs), name)
}

// BuildXor builds a `xor` instruction.
func (irb *IRBuilder) BuildXor(lhs, rhs Value, name string) Value {
	return irb.named(irb.block.b.NewXor(lhs, rhs), name)
}

// BuildShl builds a `shl` instruction.
func (irb *IRBuilder) BuildShl(lhs, rhs Value, name string) Value {
	return irb.named(irb.block.b.NewShl(lhs, rhs), name)
}

// BuildShr builds an arithmetic right shift: `ashr`.
func (irb *IRBuilder) BuildShr(lhs, rhs Value, name string) Value {
	return irb.named(irb.block.b.NewAShr(lhs, rhs), name)
}

// -----------------------------------------------------------------------------

// Predicate is a comparison predicate.  It must be one of the enumerated
// predicates below.
type Predicate int

// Enumeration of comparison predicates.  Integer comparisons are signed and
// floating-point comparisons are ordered.
const (
	PredEQ Predicate = iota
	PredNE
	PredLT
	PredLE
	PredGT
	PredGE
)

var intPredicates = [...]enum.IPred{
	PredEQ: enum.IPredEQ,
	PredNE: enum.IPredNE,
	PredLT: enum.IPredSLT,
	PredLE: enum.IPredSLE,
	PredGT: enum.IPredSGT,
	PredGE: enum.IPredSGE,
}

var floatPredicates = [...]enum.FPred{
	PredEQ: enum.FPredOEQ,
	PredNE: enum.FPredONE,
	PredLT: enum.FPredOLT,
	PredLE: enum.FPredOLE,
	PredGT: enum.FPredOGT,
	PredGE: enum.FPredOGE,
}

// BuildICmp builds a comparison: `icmp` for integral operands and `fcmp` for
// floating-point operands.
func (irb *IRBuilder) BuildICmp(pred Predicate, lhs, rhs Value, name string) Value {
	if IsFloat(lhs.Type()) {
		return irb.named(irb.block.b.NewFCmp(floatPredicates[pred], lhs, rhs), name)
	}

	return irb.named(irb.block.b.NewICmp(intPredicates[pred], lhs, rhs), name)
}

// -----------------------------------------------------------------------------

// BuildNeg builds an arithmetic negation: `sub 0, v` or `fneg v`.
func (irb *IRBuilder) BuildNeg(v Value, name string) Value {
	if IsFloat(v.Type()) {
		return irb.named(irb.block.b.NewFNeg(v), name)
	}

	return irb.named(irb.block.b.NewSub(zeroValue(v.Type()), v), name)
}

// BuildNot builds a bitwise complement: `xor v, -1`.
func (irb *IRBuilder) BuildNot(v Value, name string) Value {
	allOnes := constant.NewInt(v.Type().(*types.IntType), -1)
	return irb.named(irb.block.b.NewXor(v, allOnes), name)
}

// BuildLogicalNot builds a boolean negation: `xor v, true`.  The context is
// used to create the boolean constant.
func (irb *IRBuilder) BuildLogicalNot(ctx Context, v Value, name string) Value {
	return irb.named(irb.block.b.NewXor(v, ctx.ConstBool(true)), name)
}

// -----------------------------------------------------------------------------

// BuildAlloca builds an `alloca` instruction.  The alloca is always placed at
// the start of the current function's entry block regardless of where the
// builder is positioned.
func (irb *IRBuilder) BuildAlloca(typ Type, name string) Value {
	fn := irb.block.fn
	entry := fn.fn.Blocks[0]

	inst := entry.NewAlloca(typ)
	irb.named(inst, name)

	// Move the alloca from the end of the entry block to the end of the
	// leading run of allocas.
	copy(entry.Insts[fn.allocaCount+1:], entry.Insts[fn.allocaCount:len(entry.Insts)-1])
	entry.Insts[fn.allocaCount] = inst
	fn.allocaCount++

	return inst
}

// BuildLoad builds a `load` instruction which loads a value of typ from ptr.
func (irb *IRBuilder) BuildLoad(typ Type, ptr Value, name string) Value {
	return irb.named(irb.block.b.NewLoad(typ, ptr), name)
}

// BuildStore builds a `store` instruction.
func (irb *IRBuilder) BuildStore(val, ptr Value) {
	irb.block.b.NewStore(val, ptr)
}

// BuildStructGEP builds a `getelementptr` instruction which computes the
// address of a field of the struct pointed to by ptr.
func (irb *IRBuilder) BuildStructGEP(structTyp Type, ptr Value, ndx int, name string) Value {
	gep := irb.block.b.NewGetElementPtr(
		structTyp,
		ptr,
		constant.NewInt(types.I32, 0),
		constant.NewInt(types.I32, int64(ndx)),
	)

	return irb.named(gep, name)
}

// BuildExtractValue builds an `extractvalue` instruction.
func (irb *IRBuilder) BuildExtractValue(agg Value, ndx int, name string) Value {
	return irb.named(irb.block.b.NewExtractValue(agg, uint64(ndx)), name)
}

// BuildInsertValue builds an `insertvalue` instruction.
func (irb *IRBuilder) BuildInsertValue(agg, elem Value, ndx int, name string) Value {
	return irb.named(irb.block.b.NewInsertValue(agg, elem, uint64(ndx)), name)
}

// -----------------------------------------------------------------------------

// BuildCall builds a `call` instruction.  Calls to void functions are never
// named.
func (irb *IRBuilder) BuildCall(fn *Function, args []Value, name string) Value {
	call := irb.block.b.NewCall(fn.Value(), args...)

	if isVoidValue(call) {
		return call
	}

	return irb.named(call, name)
}

// BuildPhi builds a `phi` instruction joining the given incoming values.
func (irb *IRBuilder) BuildPhi(name string, incoming ...Incoming) Value {
	incs := make([]*ir.Incoming, len(incoming))
	for i, inc := range incoming {
		incs[i] = ir.NewIncoming(inc.Value, inc.Block.b)
	}

	return irb.named(irb.block.b.NewPhi(incs...), name)
}
