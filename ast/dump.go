package ast

import (
	"fmt"
	"strings"

	"sprigc/types"
	"sprigc/util"
)

// Dump renders an AST node as an indented tree: one node per line with two
// spaces of indentation per level.
func Dump(node Node) string {
	d := &dumper{}
	d.dump(node)
	return d.sb.String()
}

// dumper renders AST nodes as a tree.
type dumper struct {
	sb    strings.Builder
	depth int
}

// line writes a single line of the tree at the current depth.
func (d *dumper) line(format string, args ...interface{}) {
	d.sb.WriteString(strings.Repeat("  ", d.depth))
	fmt.Fprintf(&d.sb, format, args...)
	d.sb.WriteString("\n")
}

// child dumps each of the given nodes one level deeper.
func (d *dumper) child(nodes ...Node) {
	d.depth++
	for _, node := range nodes {
		d.dump(node)
	}
	d.depth--
}

// labeled dumps a node under a label line.
func (d *dumper) labeled(label string, node Node) {
	d.depth++
	d.line(label)
	d.child(node)
	d.depth--
}

func (d *dumper) dump(node Node) {
	switch v := node.(type) {
	case *Program:
		d.line("Program")
		d.child(v.Items...)
	case *FuncDecl:
		params := util.Map(v.Params, func(param *Param) string {
			return fmt.Sprintf("(%q,%s)", param.Name, types.Repr(param.Type))
		})

		ret := "?"
		if v.ReturnType != nil {
			ret = v.ReturnType.Repr()
		}

		d.line("FunctionDecl(name=%q, params=[%s], return=%s)", v.Name, strings.Join(params, ","), ret)
		d.child(v.Body)
	case *StructDecl:
		fields := util.Map(v.Type.Fields, func(field types.StructField) string {
			return fmt.Sprintf("(%q,%s)", field.Name, types.Repr(field.Type))
		})

		d.line("StructDecl(name=%q, fields=[%s])", v.Type.Name, strings.Join(fields, ","))
	case *EnumDecl:
		d.line("EnumDecl(name=%q, variants=[%s])", v.Type.Name, strings.Join(v.Type.Variants, ","))
	case *Block:
		d.line("Block")
		d.child(v.Stmts...)
	case *Let:
		if v.TypeLabel != nil {
			d.line("Let(name=%q, type=%s)", v.Name, v.TypeLabel.Repr())
		} else {
			d.line("Let(name=%q)", v.Name)
		}

		d.child(v.Init)
	case *Assignment:
		d.line("Assignment")
		d.child(v.Target, v.Value)
	case *If:
		d.line("If")
		d.child(v.Cond, v.Then)

		if v.Else != nil {
			d.labeled("Else", v.Else)
		}
	case *While:
		d.line("While")
		d.child(v.Cond, v.Body)
	case *For:
		d.line("For")

		if v.Init != nil {
			d.labeled("Init", v.Init)
		}

		if v.Cond != nil {
			d.labeled("Cond", v.Cond)
		}

		if v.Step != nil {
			d.labeled("Step", v.Step)
		}

		d.child(v.Body)
	case *Do:
		d.line("Do")
		d.child(v.Body, v.Cond)
	case *KeywordStmt:
		d.line("%s", v.Kind)
	case *Return:
		d.line("Return")
		if v.Value != nil {
			d.child(v.Value)
		}
	case *ExprStmt:
		d.line("ExprStmt")
		d.child(v.Expr)
	case *Match:
		d.line("Match")
		d.child(v.Scrutinee)

		d.depth++
		for _, arm := range v.Arms {
			d.line("MatchArm")

			if arm.IsWildcard() {
				d.depth++
				d.line("Wildcard")
				d.depth--
			} else {
				d.labeled("Pattern", arm.Pattern)
			}

			if arm.Guard != nil {
				d.labeled("Guard", arm.Guard)
			}

			d.labeled("Body", arm.Body)
		}
		d.depth--
	case *BinaryExpr:
		d.line("BinaryExpr(%s)", v.Op.Name)
		d.child(v.Left, v.Right)
	case *UnaryExpr:
		d.line("UnaryExpr(%s)", v.Op.Name)
		d.child(v.Operand)
	case *Call:
		d.line("Call(name=%q)", v.Name)
		for _, arg := range v.Args {
			d.child(arg)
		}
	case *Variable:
		d.line("Variable(%q)", v.Name)
	case *Literal:
		d.line("Literal(%s, %s)", litKindNames[v.Kind], LiteralRepr(v))
	case *FieldAccess:
		d.line("FieldAccess(field=%q)", v.Field)
		d.child(v.Root)
	case *StructLit:
		d.line("StructLit(name=%q)", v.Name)

		d.depth++
		for _, field := range v.Fields {
			d.line("FieldInit(name=%q)", field.Name)
			d.child(field.Value)
		}
		d.depth--
	case *EnumValue:
		d.line("EnumValue(%s::%s)", v.Enum, v.Variant)
	default:
		d.line("<unknown %T>", node)
	}
}

var litKindNames = [...]string{
	LitInt:    "Int",
	LitFloat:  "Float",
	LitBool:   "Bool",
	LitString: "String",
	LitChar:   "Char",
}
