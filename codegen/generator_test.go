package codegen

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/nalgeon/be"

	"sprigc/depm"
	"sprigc/llvm"
	"sprigc/syntax"
	"sprigc/walk"
)

// generateSrc compiles src to an LLVM module.  It fails the test if any stage
// before generation reports an error.
func generateSrc(t *testing.T, src string) *llvm.Module {
	t.Helper()

	toks, lexErrs := syntax.Lex(src)
	be.Equal(t, len(lexErrs), 0)

	stack := depm.NewSymbolTableStack()
	prog, errs := syntax.Parse(toks, stack)
	if len(errs) == 0 {
		errs = walk.WalkProgram(prog, stack)
	}

	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %# v", pretty.Formatter(errs))
	}

	mod, err := Generate(prog, stack, "test.sp")
	be.Err(t, err, nil)
	return mod
}

// function returns the function named name in mod.
func function(t *testing.T, mod *llvm.Module, name string) *llvm.Function {
	t.Helper()

	fn, ok := mod.Function(name)
	if !ok {
		t.Fatalf("no function named %s in module:\n%s", name, mod)
	}

	return fn
}

// blockNames returns the names of the blocks of fn in order.
func blockNames(fn *llvm.Function) []string {
	var names []string
	for _, block := range fn.Blocks() {
		names = append(names, block.Name())
	}

	return names
}

// allInstructions returns every instruction of fn including terminators.
func allInstructions(fn *llvm.Function) []string {
	var insts []string
	for _, block := range fn.Blocks() {
		insts = append(insts, block.Instructions()...)
		insts = append(insts, block.Terminator())
	}

	return insts
}

// countPrefix returns the number of instructions of fn whose opcode (the
// text after any `%name = `) starts with prefix.
func countPrefix(fn *llvm.Function, prefix string) int {
	n := 0
	for _, inst := range allInstructions(fn) {
		if i := strings.Index(inst, " = "); i >= 0 && strings.HasPrefix(inst, "%") {
			inst = inst[i+3:]
		}

		if strings.HasPrefix(inst, prefix) {
			n++
		}
	}

	return n
}

// wantIR asserts that the textual IR of mod contains every line of want.
func wantIR(t *testing.T, mod *llvm.Module, want ...string) {
	t.Helper()

	ir := mod.String()
	for _, line := range want {
		if !strings.Contains(ir, line) {
			t.Errorf("IR does not contain %q:\n%s", line, ir)
		}
	}
}

// -----------------------------------------------------------------------------

func TestGenerateAdd(t *testing.T) {
	mod := generateSrc(t, "fn add(a: Integer, b: Integer): Integer { return a + b; }")

	add := function(t, mod, "add")
	be.Equal(t, blockNames(add), []string{"entry"})

	entry := add.EntryBlock()
	be.Equal(t, entry.Instructions(), []string{
		"%a.addr = alloca i64",
		"%b.addr = alloca i64",
		"store i64 %a, i64* %a.addr",
		"store i64 %b, i64* %b.addr",
		"%a.load = load i64, i64* %a.addr",
		"%b.load = load i64, i64* %b.addr",
		"%addtmp = add i64 %a.load, %b.load",
	})
	be.Equal(t, entry.Terminator(), "ret i64 %addtmp")
}

func TestGenerateGlobalLogic(t *testing.T) {
	mod := generateSrc(t, "let result = (5 > 3) && (2 < 4);")

	init := function(t, mod, "sprig.init")
	be.Equal(t, countPrefix(init, "icmp"), 2)
	be.Equal(t, countPrefix(init, "and"), 1)

	wantIR(t, mod,
		"@result = internal global i1 false",
		"%andtmp = and i1 %gttmp, %lttmp",
		"store i1 %andtmp, i1* @result",
	)
}

func TestGenerateIfElse(t *testing.T) {
	mod := generateSrc(t, "fn check(x: Integer) { if x > 0 { return true; } else { return false; } }")

	check := function(t, mod, "check")
	be.Equal(t, check.ReturnType().String(), "i1")
	be.Equal(t, blockNames(check), []string{"entry", "then", "else", "merge"})

	blocks := check.Blocks()
	be.Equal(t, blocks[0].Terminator(), "br i1 %gttmp, label %then, label %else")
	be.Equal(t, blocks[1].Terminator(), "ret i1 true")
	be.Equal(t, blocks[2].Terminator(), "ret i1 false")
	be.Equal(t, blocks[3].Terminator(), "unreachable")
}

func TestGenerateNestedCalls(t *testing.T) {
	mod := generateSrc(t, `fn add(a: Integer, b: Integer): Integer { return a + b; }
fn multiply(a: Integer, b: Integer): Integer { return a * b; }
let val = add(multiply(2, 3), 4);`)

	init := function(t, mod, "sprig.init")
	be.Equal(t, init.EntryBlock().Instructions(), []string{
		"%calltmp = call i64 @multiply(i64 2, i64 3)",
		"%calltmp1 = call i64 @add(i64 %calltmp, i64 4)",
		"store i64 %calltmp1, i64* @val",
	})
}

func TestGenerateMainCallsInit(t *testing.T) {
	mod := generateSrc(t, "let x = 1;\nlet y = x + 1;\nfn main(): Integer { return y; }")

	main := function(t, mod, "main")
	be.Equal(t, main.EntryBlock().Instructions()[0], "call void @sprig.init()")

	wantIR(t, mod,
		"%x.load = load i64, i64* @x",
		"store i64 %addtmp, i64* @y",
		"%y.load = load i64, i64* @y",
	)

	// Programs without globals have no initializer.
	mod = generateSrc(t, "fn main() {}")
	_, ok := mod.Function("sprig.init")
	be.True(t, !ok)
	be.Equal(t, function(t, mod, "main").EntryBlock().Terminator(), "ret void")
}

func TestGenerateLoops(t *testing.T) {
	mod := generateSrc(t, `fn loops(): Integer {
    let i = 0;
    while i < 10 {
        if i == 5 {
            break;
        }
        i = i + 1;
    }
    for let j = 0; j < 3; j = j + 1 {
        continue;
    }
    do {
        i = i - 1;
    } while i > 0;
    return i;
}`)

	loops := function(t, mod, "loops")
	be.Equal(t, blockNames(loops), []string{
		"entry",
		"while.header", "while.body", "while.exit",
		"then", "merge",
		"for.header", "for.body", "for.step", "for.exit",
		"do.body", "do.header", "do.exit",
	})

	blocks := make(map[string]llvm.BasicBlock)
	for _, block := range loops.Blocks() {
		blocks[block.Name()] = block
	}

	be.Equal(t, blocks["then"].Terminator(), "br label %while.exit")
	be.Equal(t, blocks["for.body"].Terminator(), "br label %for.step")
	be.Equal(t, blocks["for.step"].Terminator(), "br label %for.header")
	be.Equal(t, blocks["do.header"].Terminator(), "br i1 %gttmp, label %do.body, label %do.exit")

	// Every local's slot lives in the entry block.
	entry := loops.EntryBlock().Instructions()
	be.Equal(t, entry[0], "%i = alloca i64")
	be.Equal(t, entry[1], "%j = alloca i64")
}

func TestGenerateInfiniteLoop(t *testing.T) {
	mod := generateSrc(t, "fn spin(): Integer { while true { } }")

	spin := function(t, mod, "spin")
	for _, block := range spin.Blocks() {
		be.True(t, block.Terminated())
	}

	be.Equal(t, spin.Blocks()[3].Name(), "while.exit")
	be.Equal(t, spin.Blocks()[3].Terminator(), "unreachable")
}

func TestGenerateShortCircuit(t *testing.T) {
	mod := generateSrc(t, `fn ok(): Boolean { return true; }
fn both(a: Boolean): Boolean { return a && ok(); }
fn either(a: Boolean): Boolean { return a || ok(); }`)

	both := function(t, mod, "both")
	be.Equal(t, blockNames(both), []string{"entry", "land.rhs", "land.end"})
	be.Equal(t, both.Blocks()[0].Terminator(), "br i1 %a.load, label %land.rhs, label %land.end")
	be.Equal(t, both.Blocks()[2].Instructions(), []string{
		"%landtmp = phi i1 [ false, %entry ], [ %calltmp, %land.rhs ]",
	})

	either := function(t, mod, "either")
	be.Equal(t, either.Blocks()[0].Terminator(), "br i1 %a.load, label %lor.end, label %lor.rhs")
	be.Equal(t, either.Blocks()[2].Instructions(), []string{
		"%lortmp = phi i1 [ true, %entry ], [ %calltmp, %lor.rhs ]",
	})
}

func TestGenerateGuardedDivision(t *testing.T) {
	mod := generateSrc(t, `fn safe(x: Integer): Boolean { return x != 0 && 10 / x > 1; }
fn rem(x: Integer): Boolean { return x == 0 || 7 % x == 1; }
fn ratio(x: Float, y: Float): Boolean { return x > y && y / x > y; }`)

	safe := function(t, mod, "safe")
	be.Equal(t, blockNames(safe), []string{"entry", "land.rhs", "land.end"})
	be.Equal(t, safe.Blocks()[0].Terminator(), "br i1 %netmp, label %land.rhs, label %land.end")
	be.Equal(t, safe.Blocks()[1].Instructions(), []string{
		"%x.load1 = load i64, i64* %x.addr",
		"%divtmp = sdiv i64 10, %x.load1",
		"%gttmp = icmp sgt i64 %divtmp, 1",
	})
	be.Equal(t, countPrefix(safe, "sdiv"), 1)

	rem := function(t, mod, "rem")
	be.Equal(t, blockNames(rem), []string{"entry", "lor.rhs", "lor.end"})
	be.Equal(t, countPrefix(rem, "srem"), 1)

	// Float division cannot trap so it is evaluated eagerly.
	ratio := function(t, mod, "ratio")
	be.Equal(t, blockNames(ratio), []string{"entry"})
	be.Equal(t, countPrefix(ratio, "and i1"), 1)
}

func TestGenerateOperators(t *testing.T) {
	mod := generateSrc(t, `fn ints(a: Integer, b: Integer): Integer {
    return -(a / b % 2) ^ ~(a << 1 >> b);
}
fn floats(x: Float, y: Float): Boolean {
    return x * y - x >= y / x;
}
fn logic(a: Boolean, b: Boolean): Boolean {
    return !a || b != a;
}`)

	wantIR(t, mod,
		"%divtmp = sdiv i64 %a.load, %b.load",
		"%remtmp = srem i64 %divtmp, 2",
		"%negtmp = sub i64 0, %remtmp",
		"%shltmp = shl i64 %a.load1, 1",
		"%shrtmp = ashr i64 %shltmp, %b.load1",
		"%nottmp = xor i64 %shrtmp, -1",
		"%xortmp = xor i64 %negtmp, %nottmp",
		"%multmp = fmul double %x.load, %y.load",
		"%subtmp = fsub double %multmp, %x.load1",
		"%divtmp = fdiv double %y.load1, %x.load2",
		"%getmp = fcmp oge double %subtmp, %divtmp",
		"%lnottmp = xor i1 %a.load, true",
		"%netmp = icmp ne i1 %b.load, %a.load1",
		"%ortmp = or i1 %lnottmp, %netmp",
	)
}

func TestGeneratePower(t *testing.T) {
	mod := generateSrc(t, `fn ipow(a: Integer): Integer { return a ** 3; }
fn fpow(x: Float, y: Float): Float { return x ** y; }`)

	wantIR(t, mod,
		"%powtmp = call i64 @sprig.ipow(i64 %a.load, i64 3)",
		"%powtmp = call double @llvm.pow.f64(double %x.load, double %y.load)",
	)

	// The intrinsic is only declared.
	be.Equal(t, len(function(t, mod, "llvm.pow.f64").Blocks()), 0)

	ipow := function(t, mod, "sprig.ipow")
	be.Equal(t, blockNames(ipow), []string{"entry", "neg", "loop.header", "loop.body", "odd", "loop.step", "loop.exit"})
	be.Equal(t, ipow.Blocks()[1].Terminator(), "ret i64 0")
	for _, block := range ipow.Blocks() {
		be.True(t, block.Terminated())
	}
}

func TestGenerateStructs(t *testing.T) {
	mod := generateSrc(t, `struct Point { x: Integer, y: Integer }
fn make(x: Integer): Point { return Point { y: 2, x: x }; }
fn getY(): Integer { return make(1).y; }
fn setX(): Integer {
    let p = make(3);
    p.x = 4;
    return p.x;
}`)

	wantIR(t, mod,
		"%Point = type { i64, i64 }",
		"%structtmp = insertvalue %Point zeroinitializer, i64 2, 1",
		"%structtmp1 = insertvalue %Point %structtmp, i64 %x.load, 0",
		"%y.val = extractvalue %Point %calltmp, 1",
		"%x.addr = getelementptr %Point, %Point* %p, i32 0, i32 0",
		"store i64 4, i64* %x.addr",
		"%x.load = load i64, i64* %x.addr1",
	)
}

func TestGenerateEnumsAndMatch(t *testing.T) {
	mod := generateSrc(t, `enum Color { Red, Green, Blue }
fn code(c: Color): Integer {
    return match c {
        Color::Red => 1,
        Color::Green => 2,
        _ => 3,
    };
}
fn sign(n: Integer): Integer {
    match n {
        0 => { return 0; },
        -1 => { return -1; },
        _ if n > 0 => { return 1; },
    }
    return -1;
}`)

	code := function(t, mod, "code")
	be.Equal(t, blockNames(code), []string{
		"entry",
		"match.arm", "match.next",
		"match.arm1", "match.next1",
		"match.arm2",
		"match.end",
	})
	be.Equal(t, code.Blocks()[0].Instructions()[3], "%matchtmp = icmp eq i32 %c.load, 0")
	be.Equal(t, code.Blocks()[6].Instructions(), []string{
		"%matchval = phi i64 [ 1, %match.arm ], [ 2, %match.arm1 ], [ 3, %match.arm2 ]",
	})
	be.Equal(t, code.Blocks()[6].Terminator(), "ret i64 %matchval")

	sign := function(t, mod, "sign")
	wantIR(t, mod,
		"%matchtmp1 = icmp eq i64 %n.load, %negtmp",
		"br i1 %gttmp, label %match.arm2, label %match.next2",
	)

	// The statement match is not exhaustive: its last test falls through to
	// the code following it.
	blocks := sign.Blocks()
	last := blocks[len(blocks)-1]
	be.Equal(t, last.Name(), "match.end")
	be.Equal(t, last.Instructions(), []string{"%negtmp2 = sub i64 0, 1"})
	be.Equal(t, last.Terminator(), "ret i64 %negtmp2")
}

func TestGenerateStrings(t *testing.T) {
	mod := generateSrc(t, "let greeting = \"hi\";\nlet letter = 'a';\nlet pi = 3.25;")

	wantIR(t, mod,
		"@.str = private unnamed_addr constant [3 x i8] c\"hi\\00\"",
		"store i8* getelementptr ([3 x i8], [3 x i8]* @.str, i32 0, i32 0), i8** @greeting",
		"store i32 97, i32* @letter",
		"double* @pi",
	)
}

func TestGenerateByteEscapes(t *testing.T) {
	mod := generateSrc(t, `let raw = "\xFF"; let high = '\xE9'; let accent = 'é';`)

	wantIR(t, mod,
		`@.str = private unnamed_addr constant [2 x i8] c"\FF\00"`,
		"store i32 233, i32* @high",
		"store i32 233, i32* @accent",
	)
}
