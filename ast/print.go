package ast

import (
	"fmt"
	"strings"
	"unicode"

	"sprigc/types"
)

// BinaryPrec returns the precedence of the binary operator with the given
// name.  Higher values bind more tightly.  It returns 0 for unknown operators.
func BinaryPrec(op string) int {
	return binaryPrecs[op]
}

var binaryPrecs = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3,
	"!=": 3,
	"<":  4,
	">":  4,
	"<=": 4,
	">=": 4,
	"|":  5,
	"^":  6,
	"&":  7,
	"<<": 8,
	">>": 8,
	"+":  9,
	"-":  9,
	"*":  10,
	"/":  10,
	"%":  10,
	"**": PowerPrec,
}

// Precedences of prefix unary operators and the right-associative power
// operator.
const (
	UnaryPrec = 11
	PowerPrec = 12

	atomPrec = 100
)

// exprPrec returns the precedence of an expression for the purposes of
// parenthesization.
func exprPrec(expr Expr) int {
	switch v := expr.(type) {
	case *BinaryExpr:
		return BinaryPrec(v.Op.Name)
	case *UnaryExpr:
		return UnaryPrec
	default:
		return atomPrec
	}
}

// -----------------------------------------------------------------------------

// Print renders a program as source text.  Parentheses are only emitted where
// they are required to preserve the structure of the tree so the output,
// when parsed, yields the same program.
func Print(prog *Program) string {
	pr := &printer{}

	for i, item := range prog.Items {
		if i > 0 {
			pr.sb.WriteString("\n")
		}

		pr.printItem(item)
	}

	return pr.sb.String()
}

// PrintExpr renders a single expression as source text.
func PrintExpr(expr Expr) string {
	pr := &printer{}
	pr.printExpr(expr, 0)
	return pr.sb.String()
}

// printer renders AST nodes as source text.
type printer struct {
	sb strings.Builder

	// The current indentation level.
	indent int

	// Whether the printer is inside a condition where struct literals must be
	// parenthesized.
	cond bool
}

func (pr *printer) write(format string, args ...interface{}) {
	fmt.Fprintf(&pr.sb, format, args...)
}

func (pr *printer) newline() {
	pr.sb.WriteString("\n")
	pr.sb.WriteString(strings.Repeat("    ", pr.indent))
}

func (pr *printer) printItem(item Node) {
	switch v := item.(type) {
	case *FuncDecl:
		pr.write("fn %s(", v.Name)
		for i, param := range v.Params {
			if i > 0 {
				pr.write(", ")
			}

			pr.write("%s: %s", param.Name, types.Repr(param.Type))
		}
		pr.write(")")

		if v.ReturnType != nil {
			pr.write(": %s", v.ReturnType.Repr())
		}

		pr.write(" ")
		pr.printBlock(v.Body)
		pr.write("\n")
	case *Let:
		pr.printLet(v)
		pr.write(";\n")
	case *StructDecl:
		pr.write("struct %s {", v.Type.Name)
		for i, field := range v.Type.Fields {
			if i > 0 {
				pr.write(",")
			}

			pr.write(" %s: %s", field.Name, types.Repr(field.Type))
		}
		pr.write(" }\n")
	case *EnumDecl:
		pr.write("enum %s { %s }\n", v.Type.Name, strings.Join(v.Type.Variants, ", "))
	}
}

func (pr *printer) printBlock(block *Block) {
	if len(block.Stmts) == 0 {
		pr.write("{}")
		return
	}

	pr.write("{")
	pr.indent++

	for _, stmt := range block.Stmts {
		pr.newline()
		pr.printStmt(stmt)
	}

	pr.indent--
	pr.newline()
	pr.write("}")
}

func (pr *printer) printLet(let *Let) {
	pr.write("let %s", let.Name)
	if let.TypeLabel != nil {
		pr.write(": %s", let.TypeLabel.Repr())
	}

	pr.write(" = ")
	pr.printExpr(let.Init, 0)
}

func (pr *printer) printStmt(stmt Node) {
	switch v := stmt.(type) {
	case *Block:
		pr.printBlock(v)
	case *Let:
		pr.printLet(v)
		pr.write(";")
	case *Assignment:
		pr.printAssignment(v)
		pr.write(";")
	case *ExprStmt:
		pr.printExpr(v.Expr, 0)
		if _, ok := v.Expr.(*Match); !ok {
			pr.write(";")
		}
	case *If:
		pr.printIf(v)
	case *While:
		pr.write("while ")
		pr.printCond(v.Cond)
		pr.write(" ")
		pr.printBlock(v.Body)
	case *For:
		pr.write("for ")
		if v.Init != nil {
			pr.printForClause(v.Init)
		}
		pr.write(";")

		if v.Cond != nil {
			pr.write(" ")
			pr.printCond(v.Cond)
		}
		pr.write(";")

		if v.Step != nil {
			pr.write(" ")

			prev := pr.cond
			pr.cond = true
			pr.printForClause(v.Step)
			pr.cond = prev
		}

		pr.write(" ")
		pr.printBlock(v.Body)
	case *Do:
		pr.write("do ")
		pr.printBlock(v.Body)
		pr.write(" while ")
		pr.printExpr(v.Cond, 0)
		pr.write(";")
	case *KeywordStmt:
		if v.Kind == ElemBreak {
			pr.write("break;")
		} else {
			pr.write("continue;")
		}
	case *Return:
		if v.Value == nil {
			pr.write("return;")
		} else {
			pr.write("return ")
			pr.printExpr(v.Value, 0)
			pr.write(";")
		}
	}
}

func (pr *printer) printForClause(clause Node) {
	switch v := clause.(type) {
	case *Let:
		pr.printLet(v)
	case *Assignment:
		pr.printAssignment(v)
	case *ExprStmt:
		pr.printExpr(v.Expr, 0)
	}
}

func (pr *printer) printAssignment(asn *Assignment) {
	pr.printExpr(asn.Target, 0)
	pr.write(" = ")
	pr.printExpr(asn.Value, 0)
}

func (pr *printer) printIf(ifStmt *If) {
	pr.write("if ")

	for {
		pr.printCond(ifStmt.Cond)
		pr.write(" ")
		pr.printBlock(ifStmt.Then)

		switch v := ifStmt.Else.(type) {
		case *If:
			pr.write(" elif ")
			ifStmt = v
			continue
		case *Block:
			pr.write(" else ")
			pr.printBlock(v)
		}

		return
	}
}

// printCond prints an expression in a position where struct literals are not
// allowed.
func (pr *printer) printCond(expr Expr) {
	prev := pr.cond
	pr.cond = true
	pr.printExpr(expr, 0)
	pr.cond = prev
}

// printNested prints an expression enclosed in delimiters which allow struct
// literals again: eg. parentheses or call arguments.
func (pr *printer) printNested(expr Expr) {
	prev := pr.cond
	pr.cond = false
	pr.printExpr(expr, 0)
	pr.cond = prev
}

// printExpr prints an expression which occurs in a position requiring a
// precedence of at least minPrec.
func (pr *printer) printExpr(expr Expr, minPrec int) {
	if exprPrec(expr) < minPrec {
		pr.write("(")
		pr.printNested(expr)
		pr.write(")")
		return
	}

	switch v := expr.(type) {
	case *BinaryExpr:
		prec := BinaryPrec(v.Op.Name)

		leftPrec, rightPrec := prec, prec+1
		if v.Op.Name == "**" {
			leftPrec, rightPrec = prec+1, prec
		}

		pr.printExpr(v.Left, leftPrec)
		pr.write(" %s ", v.Op.Name)

		// Prefix operators can always appear on the right hand side.
		if _, ok := v.Right.(*UnaryExpr); ok {
			rightPrec = 0
		}

		pr.printExpr(v.Right, rightPrec)
	case *UnaryExpr:
		pr.write("%s", v.Op.Name)

		if _, ok := v.Operand.(*UnaryExpr); ok {
			pr.printExpr(v.Operand, 0)
		} else {
			pr.printExpr(v.Operand, PowerPrec)
		}
	case *Literal:
		pr.write("%s", LiteralRepr(v))
	case *Variable:
		pr.write("%s", v.Name)
	case *Call:
		pr.write("%s(", v.Name)
		for i, arg := range v.Args {
			if i > 0 {
				pr.write(", ")
			}

			pr.printNested(arg)
		}
		pr.write(")")
	case *FieldAccess:
		pr.printExpr(v.Root, atomPrec)
		pr.write(".%s", v.Field)
	case *EnumValue:
		pr.write("%s::%s", v.Enum, v.Variant)
	case *StructLit:
		if pr.cond {
			pr.write("(")
			pr.printNested(v)
			pr.write(")")
			return
		}

		pr.write("%s {", v.Name)
		for i, field := range v.Fields {
			if i > 0 {
				pr.write(",")
			}

			pr.write(" %s: ", field.Name)
			pr.printExpr(field.Value, 0)
		}
		pr.write(" }")
	case *Match:
		pr.printMatch(v)
	}
}

func (pr *printer) printMatch(match *Match) {
	pr.write("match ")
	pr.printCond(match.Scrutinee)
	pr.write(" {")

	prev := pr.cond
	pr.cond = false
	pr.indent++

	for _, arm := range match.Arms {
		pr.newline()

		if arm.IsWildcard() {
			pr.write("_")
		} else {
			pr.printExpr(arm.Pattern, 0)
		}

		if arm.Guard != nil {
			pr.write(" if ")
			pr.printExpr(arm.Guard, 0)
		}

		pr.write(" => ")
		switch v := arm.Body.(type) {
		case *Block:
			pr.printBlock(v)
		case Expr:
			pr.printExpr(v, 0)
		}

		pr.write(",")
	}

	pr.indent--
	pr.cond = prev
	pr.newline()
	pr.write("}")
}

// -----------------------------------------------------------------------------

// LiteralRepr returns the source representation of a literal.
func LiteralRepr(lit *Literal) string {
	switch lit.Kind {
	case LitString:
		return "\"" + escapeText(lit.Value, '"') + "\""
	case LitChar:
		return "'" + escapeText(lit.Value, '\'') + "'"
	default:
		return lit.Value
	}
}

// escapeText escapes the contents of a string or char literal delimited by
// quote.
func escapeText(text string, quote rune) string {
	sb := strings.Builder{}

	for _, c := range text {
		switch c {
		case '\n':
			sb.WriteString("\\n")
		case '\t':
			sb.WriteString("\\t")
		case '\r':
			sb.WriteString("\\r")
		case 0:
			sb.WriteString("\\0")
		case '\\':
			sb.WriteString("\\\\")
		case quote:
			sb.WriteRune('\\')
			sb.WriteRune(c)
		default:
			if c < 0x80 && !unicode.IsPrint(c) {
				fmt.Fprintf(&sb, "\\x%02x", c)
			} else {
				sb.WriteRune(c)
			}
		}
	}

	return sb.String()
}
