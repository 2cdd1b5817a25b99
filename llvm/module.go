package llvm

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// Module represents an LLVM module: the output of compiling one translation
// unit.
type Module struct {
	m *ir.Module

	// The functions of the module by name.
	funcs map[string]*Function

	// The number of string literal constants created so far.
	strCount int
}

// NewModule creates a new module with the given name in the current context.
func (Context) NewModule(name string) *Module {
	m := ir.NewModule()
	m.SourceFilename = name

	return &Module{m: m, funcs: make(map[string]*Function)}
}

// SetTarget sets the target triple and data layout of the module.  Either may
// be empty in which case it is left unset.
func (m *Module) SetTarget(triple, dataLayout string) {
	m.m.TargetTriple = triple
	m.m.DataLayout = dataLayout
}

// String returns the textual LLVM IR of the module.
func (m *Module) String() string {
	return m.m.String()
}

// -----------------------------------------------------------------------------

// Param is the name and type of a function parameter.
type Param struct {
	Name string
	Type Type
}

// NewFunction creates a new function definition in the module.  The function
// has no blocks until NewBlock is called on it.
func (m *Module) NewFunction(name string, retType Type, params ...Param) *Function {
	fn := newFunction(name, retType, params)
	m.m.Funcs = append(m.m.Funcs, fn.fn)
	m.funcs[name] = fn
	return fn
}

// DeclareFunction declares an external function in the module.  If a function
// by the same name already exists, that function is returned instead.
func (m *Module) DeclareFunction(name string, retType Type, params ...Param) *Function {
	if fn, ok := m.funcs[name]; ok {
		return fn
	}

	return m.NewFunction(name, retType, params...)
}

// Function looks up a function in the module by name.
func (m *Module) Function(name string) (*Function, bool) {
	fn, ok := m.funcs[name]
	return fn, ok
}

// NewGlobal creates a new zero-initialized, internal global variable.  The
// returned value is a pointer to the global's storage.
func (m *Module) NewGlobal(name string, typ Type) Value {
	g := m.m.NewGlobalDef(name, zeroValue(typ))
	g.Linkage = enum.LinkageInternal
	return g
}

// NewStringConstant creates a private, null-terminated string constant and
// returns an `i8*` pointing to its first character.
func (m *Module) NewStringConstant(s string) Value {
	name := ".str"
	if m.strCount > 0 {
		name = fmt.Sprintf(".str.%d", m.strCount)
	}
	m.strCount++

	data := constant.NewCharArrayFromString(s + "\x00")
	g := m.m.NewGlobalDef(name, data)
	g.Linkage = enum.LinkagePrivate
	g.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
	g.Immutable = true

	zero := constant.NewInt(types.I32, 0)
	return constant.NewGetElementPtr(data.Typ, g, zero, zero)
}

// NewStructType creates a new named struct type with no body.  The body is
// set with SetStructBody once all the types it references exist.
func (m *Module) NewStructType(name string) Type {
	return m.m.NewTypeDef(name, &types.StructType{})
}

// SetStructBody sets the field types of a struct created with NewStructType.
func SetStructBody(st Type, fields ...Type) {
	st.(*types.StructType).Fields = fields
}
