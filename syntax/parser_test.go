package syntax

import (
	"fmt"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/nalgeon/be"

	"sprigc/ast"
	"sprigc/depm"
	"sprigc/report"
	"sprigc/types"
)

// parseSrc lexes and parses src, failing the test on any lexing error.
func parseSrc(t *testing.T, src string) (*ast.Program, []report.CompileError) {
	t.Helper()

	toks, lexErrs := Lex(src)
	be.Equal(t, len(lexErrs), 0)

	return Parse(toks, depm.NewSymbolTableStack())
}

// mustParse parses src and fails the test on any error.
func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()

	prog, errs := parseSrc(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %# v", pretty.Formatter(errs))
	}

	return prog
}

// parseInit parses an expression by using it as the initializer of a global.
func parseInit(t *testing.T, src string) ast.Expr {
	t.Helper()

	prog := mustParse(t, "let e = "+src+";")
	return prog.Items[0].(*ast.Let).Init
}

// sexpr renders an expression fully parenthesized.
func sexpr(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", v.Op.Name, sexpr(v.Left), sexpr(v.Right))
	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s %s)", v.Op.Name, sexpr(v.Operand))
	case *ast.Call:
		args := make([]string, len(v.Args))
		for i, arg := range v.Args {
			args[i] = sexpr(arg)
		}

		return fmt.Sprintf("(call %s %s)", v.Name, strings.Join(args, " "))
	case *ast.FieldAccess:
		return fmt.Sprintf("(. %s %s)", sexpr(v.Root), v.Field)
	default:
		return ast.PrintExpr(expr)
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"2 ** 3 ** 2", "(** 2 (** 3 2))"},
		{"-2 ** 2", "(- (** 2 2))"},
		{"-a * b", "(* (- a) b)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a == b < c", "(== a (< b c))"},
		{"a | b ^ c & d", "(| a (^ b (& c d)))"},
		{"a & b << 2", "(& a (<< b 2))"},
		{"a << 1 + 2", "(<< a (+ 1 2))"},
		{"a % b * c", "(* (% a b) c)"},
		{"!a && b", "(&& (! a) b)"},
		{"~a | b", "(| (~ a) b)"},
		{"a * -b + c", "(+ (* a (- b)) c)"},
		{"p.x + p.y", "(+ (. p x) (. p y))"},
		{"f(1, 2 + 3) * 2", "(* (call f 1 (+ 2 3)) 2)"},
	}

	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			be.Equal(t, sexpr(parseInit(t, test.src)), test.want)
		})
	}
}

func TestPrecedenceTablesAgree(t *testing.T) {
	for kind, prec := range binaryPrecs {
		name := strings.Trim(kindDisplay(kind), "`")
		be.Equal(t, ast.BinaryPrec(name), prec)
	}
}

func TestParseFunctionDecl(t *testing.T) {
	prog := mustParse(t, "fn add(a: Integer, b: Integer): Integer { return a + b; }")

	be.Equal(t, len(prog.Items), 1)
	fn, ok := prog.Items[0].(*ast.FuncDecl)
	be.True(t, ok)

	be.Equal(t, fn.Name, "add")
	be.Equal(t, len(fn.Params), 2)
	be.Equal(t, fn.Params[0].Name, "a")
	be.True(t, types.Equals(fn.Params[1].Type, types.PrimTypeInteger))
	be.True(t, types.Equals(fn.ReturnType, types.PrimTypeInteger))

	ret, ok := fn.Body.Stmts[0].(*ast.Return)
	be.True(t, ok)
	be.Equal(t, sexpr(ret.Value), "(+ a b)")

	want := strings.Join([]string{
		`Program`,
		`  FunctionDecl(name="add", params=[("a",Integer),("b",Integer)], return=Integer)`,
		`    Block`,
		`      Return`,
		`        BinaryExpr(+)`,
		`          Variable("a")`,
		`          Variable("b")`,
		``,
	}, "\n")
	be.Equal(t, ast.Dump(prog), want)
}

func TestParseLogicalInit(t *testing.T) {
	expr := parseInit(t, "(5 > 3) && (2 < 4)")

	bin, ok := expr.(*ast.BinaryExpr)
	be.True(t, ok)
	be.Equal(t, bin.Op.Name, "&&")
	be.Equal(t, bin.Left.(*ast.BinaryExpr).Op.Name, ">")
	be.Equal(t, bin.Right.(*ast.BinaryExpr).Op.Name, "<")
}

func TestParseNestedCalls(t *testing.T) {
	expr := parseInit(t, "add(multiply(2, 3), 4)")

	call, ok := expr.(*ast.Call)
	be.True(t, ok)
	be.Equal(t, call.Name, "add")
	be.Equal(t, len(call.Args), 2)

	inner, ok := call.Args[0].(*ast.Call)
	be.True(t, ok)
	be.Equal(t, inner.Name, "multiply")
	be.Equal(t, len(inner.Args), 2)
}

func TestParseStatements(t *testing.T) {
	src := `fn main(): Integer {
    let i = 0;
    while i < 10 {
        if i == 5 {
            break;
        } elif i == 3 {
            continue;
        } else {
            i = i + 1;
        }
    }
    for let j = 0; j < 3; j = j + 1 {}
    do {
        i = i - 1;
    } while i > 0;
    return i;
}`
	prog := mustParse(t, src)
	body := prog.Items[0].(*ast.FuncDecl).Body

	elems := make([]ast.SyntaxElement, len(body.Stmts))
	for i, stmt := range body.Stmts {
		elems[i] = stmt.Element()
	}

	be.Equal(t, elems, []ast.SyntaxElement{ast.ElemLet, ast.ElemWhile, ast.ElemFor, ast.ElemDo, ast.ElemReturn})

	ifStmt := body.Stmts[1].(*ast.While).Body.Stmts[0].(*ast.If)
	elif, ok := ifStmt.Else.(*ast.If)
	be.True(t, ok)
	_, ok = elif.Else.(*ast.Block)
	be.True(t, ok)

	forLoop := body.Stmts[2].(*ast.For)
	_, ok = forLoop.Init.(*ast.Let)
	be.True(t, ok)
	_, ok = forLoop.Step.(*ast.Assignment)
	be.True(t, ok)
}

func TestParseStructsAndEnums(t *testing.T) {
	src := `fn origin(): Point { return Point { x: 0, y: 0 }; }
struct Point { x: Integer, y: Integer }
enum Color { Red, Green, Blue }
fn color(c: Color): Integer {
    return match c {
        Color::Red => 1,
        Color::Green if true => 2,
        _ => 3,
    };
}`
	prog := mustParse(t, src)

	st := prog.Items[1].(*ast.StructDecl).Type
	be.Equal(t, st.Name, "Point")
	be.Equal(t, len(st.Fields), 2)

	// The struct can be used before its declaration.
	fn := prog.Items[0].(*ast.FuncDecl)
	be.True(t, types.Equals(fn.ReturnType, st))

	et := prog.Items[2].(*ast.EnumDecl).Type
	be.Equal(t, et.Variants, []string{"Red", "Green", "Blue"})

	match := prog.Items[3].(*ast.FuncDecl).Body.Stmts[0].(*ast.Return).Value.(*ast.Match)
	be.Equal(t, len(match.Arms), 3)
	be.True(t, match.Arms[1].Guard != nil)
	be.True(t, match.Arms[2].IsWildcard())
}

func TestParseStructLitInCondition(t *testing.T) {
	src := `struct P { x: Integer }
fn f(p: P) {
    if p.x == 1 {
        return;
    }
}`
	prog := mustParse(t, src)

	ifStmt := prog.Items[1].(*ast.FuncDecl).Body.Stmts[0].(*ast.If)
	be.Equal(t, sexpr(ifStmt.Cond), "(== (. p x) 1)")
}

func TestParseRoundTrip(t *testing.T) {
	srcs := []string{
		"let x: Integer = 5;\n",
		"fn add(a: Integer, b: Integer): Integer {\n    return a + b;\n}\n",
		"let result = 5 > 3 && 2 < 4;\n",
		"let r = (1 + 2) * 3 - -4 ** 2;\n",
		"let p = (2 ** 3) ** 2 + 2 ** 3 ** 2;\n",
		"let s = \"a\\n\\\"b\\\"\";\n\nlet c = '\\'';\n",
		"struct P { x: Integer, y: Float }\n\nfn f(p: P): Float {\n    if (P { x: 1, y: 2.0 }).x == p.x {\n        return p.y;\n    }\n    return (p.y + 1.0) * 2.0;\n}\n",
		"enum E { A, B }\n\nfn g(e: E): Integer {\n    match e {\n        E::A => {\n            return 1;\n        },\n        _ => 2,\n    }\n    for let i = 0; i < 3; i = i + 1 {\n        continue;\n    }\n    do {\n        break;\n    } while false;\n    return 0;\n}\n",
	}

	for _, src := range srcs {
		prog := mustParse(t, src)
		printed := ast.Print(prog)

		want, _ := Lex(src)
		got, errs := Lex(printed)
		be.Equal(t, len(errs), 0)

		if diff := pretty.Diff(tokenKinds(got), tokenKinds(want)); len(diff) != 0 {
			t.Errorf("round trip of %q produced %q: %v", src, printed, diff)
		}

		// Printing the reparsed program is stable.
		be.Equal(t, ast.Print(mustParse(t, printed)), printed)
	}
}

// tokenKinds returns the external names of the given tokens.
func tokenKinds(toks []Token) []string {
	names := make([]string, len(toks))
	for i, tok := range toks {
		names[i] = tok.String()
	}

	return names
}

func TestParseScopes(t *testing.T) {
	stack := depm.NewSymbolTableStack()
	toks, _ := Lex(`let g = 1;
fn f(a: Integer) {
    let b = a;
    {
        let b = 2;
    }
}`)

	_, errs := Parse(toks, stack)
	be.Equal(t, len(errs), 0)

	// Only the global scope remains once parsing is finished.
	be.Equal(t, stack.Size(), 1)

	global, _ := stack.Global()
	be.Equal(t, global.Names(), []string{"f", "g"})

	g, _ := global.Get("g")
	be.True(t, g.Global)
	be.Equal(t, g.Kind, depm.SymbolVariable)
}

func TestParseRedeclaration(t *testing.T) {
	_, errs := parseSrc(t, "fn f(a: Integer, a: Float) { let x = 1; let x = 2; }\nfn f() {}")

	be.Equal(t, len(errs), 3)
	for _, err := range errs {
		_, ok := err.(report.Redeclared)
		be.True(t, ok)
	}

	be.Equal(t, errs[1].(report.Redeclared).Span, report.TextSpan{StartLine: 0, StartCol: 44, EndLine: 0, EndCol: 45})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []report.CompileError
	}{
		{
			"missing semicolon",
			"let x = 5",
			[]report.CompileError{
				report.UnexpectedToken{Expected: "`;`", Found: "end of file", Span: report.TextSpan{StartLine: 0, StartCol: 9, EndLine: 0, EndCol: 9}},
			},
		},
		{
			"bad type",
			"let x: Foo = 5;",
			[]report.CompileError{
				report.UnexpectedToken{Expected: "type", Found: "`Foo`", Span: report.TextSpan{StartLine: 0, StartCol: 7, EndLine: 0, EndCol: 10}},
			},
		},
		{
			"bad top level",
			"return 5;",
			[]report.CompileError{
				report.UnexpectedToken{Expected: "`fn`, `let`, `struct`, or `enum`", Found: "`return`", Span: report.TextSpan{StartLine: 0, StartCol: 0, EndLine: 0, EndCol: 6}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, errs := parseSrc(t, test.src)
			be.Equal(t, errs, test.want)
		})
	}
}

func TestParseRecovery(t *testing.T) {
	src := `fn f() {
    let x = ;
    let y = 2;
    y = ) ;
}
fn g( {}
fn h() { return 1; }`

	prog, errs := parseSrc(t, src)
	be.Equal(t, len(errs), 3)

	// Statements after an error are still parsed.
	f := prog.Items[0].(*ast.FuncDecl)
	be.Equal(t, len(f.Body.Stmts), 1)

	// Top-level items after an error are still parsed.
	last := prog.Items[len(prog.Items)-1].(*ast.FuncDecl)
	be.Equal(t, last.Name, "h")
}

func TestParseAssignToNonLValue(t *testing.T) {
	_, errs := parseSrc(t, "fn f() { 1 + 2 = 3; }")

	be.Equal(t, len(errs), 1)
	be.Equal(t, errs[0].Error(), "cannot assign to this expression")
}
