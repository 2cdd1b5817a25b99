package walk

import (
	"sprigc/ast"
	"sprigc/report"
	"sprigc/types"
)

// operandKind classifies the operand types an operator accepts.
type operandKind int

// Enumeration of operand kinds.
const (
	numericOperands  operandKind = iota // Integer or Float
	integralOperands                    // Integer
	bitwiseOperands                     // Integer or Boolean
	boolOperands                        // Boolean
	compareOperands                     // any comparable type
	orderOperands                       // any ordered type
)

// binaryOperator describes the typing rule of a binary operator: both
// operands must be of the same type which must be accepted by the operator.
type binaryOperator struct {
	operands operandKind

	// Whether the operator always yields a Boolean.  Otherwise, it yields the
	// type of its operands.
	yieldsBool bool
}

var binaryOperators = map[string]binaryOperator{
	"+":  {operands: numericOperands},
	"-":  {operands: numericOperands},
	"*":  {operands: numericOperands},
	"/":  {operands: numericOperands},
	"%":  {operands: numericOperands},
	"**": {operands: numericOperands},
	"&":  {operands: bitwiseOperands},
	"|":  {operands: bitwiseOperands},
	"^":  {operands: bitwiseOperands},
	"<<": {operands: integralOperands},
	">>": {operands: integralOperands},
	"==": {operands: compareOperands, yieldsBool: true},
	"!=": {operands: compareOperands, yieldsBool: true},
	"<":  {operands: orderOperands, yieldsBool: true},
	">":  {operands: orderOperands, yieldsBool: true},
	"<=": {operands: orderOperands, yieldsBool: true},
	">=": {operands: orderOperands, yieldsBool: true},
	"&&": {operands: boolOperands, yieldsBool: true},
	"||": {operands: boolOperands, yieldsBool: true},
}

// unaryOperators maps each prefix operator to the operands it accepts.  All
// prefix operators yield the type of their operand.
var unaryOperators = map[string]operandKind{
	"-": numericOperands,
	"~": integralOperands,
	"!": boolOperands,
}

// accepts returns whether an operand kind includes the given type.
func (ok operandKind) accepts(typ types.Type) bool {
	switch ok {
	case numericOperands:
		return types.IsNumeric(typ)
	case integralOperands:
		return types.IsIntegral(typ)
	case bitwiseOperands:
		return types.IsIntegral(typ) || types.Equals(typ, types.PrimTypeBoolean)
	case boolOperands:
		return types.Equals(typ, types.PrimTypeBoolean)
	case compareOperands:
		return types.IsComparable(typ)
	default:
		return types.IsOrdered(typ)
	}
}

// -----------------------------------------------------------------------------

// walkBinaryExpr walks a binary operator application.
func (w *Walker) walkBinaryExpr(bin *ast.BinaryExpr) {
	oper, ok := binaryOperators[bin.Op.Name]
	if !ok {
		panic(report.RaiseDev(bin.Op.Span, "unknown binary operator: %s", bin.Op.Name))
	}

	w.walkExpr(bin.Left)
	w.walkExpr(bin.Right)

	lhsType := bin.Left.Type()
	if oper.operands == boolOperands {
		w.mustEqual(types.PrimTypeBoolean, lhsType, bin.Left.Span())
	} else if !oper.operands.accepts(lhsType) {
		w.error(
			bin.Op.Span,
			"operator `%s` cannot be applied to a value of type `%s`",
			bin.Op.Name,
			types.Repr(lhsType),
		)
	}

	w.mustEqual(lhsType, bin.Right.Type(), bin.Right.Span())

	if oper.yieldsBool {
		bin.SetType(types.PrimTypeBoolean)
	} else {
		bin.SetType(lhsType)
	}
}

// walkUnaryExpr walks a prefix operator application.
func (w *Walker) walkUnaryExpr(un *ast.UnaryExpr) {
	operands, ok := unaryOperators[un.Op.Name]
	if !ok {
		panic(report.RaiseDev(un.Op.Span, "unknown unary operator: %s", un.Op.Name))
	}

	w.walkExpr(un.Operand)

	typ := un.Operand.Type()
	if operands == boolOperands {
		w.mustEqual(types.PrimTypeBoolean, typ, un.Operand.Span())
	} else if !operands.accepts(typ) {
		w.error(
			un.Op.Span,
			"operator `%s` cannot be applied to a value of type `%s`",
			un.Op.Name,
			types.Repr(typ),
		)
	}

	un.SetType(typ)
}
