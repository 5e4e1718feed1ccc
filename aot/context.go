// Package aot implements the typed expression-node graph ("AOT graph"),
// its constant-folding optimization pass, and the bytecode emitter that
// lowers it to the register machine defined by package bytecode (§3-§4.5).
package aot

import (
	"brane/bytecode"
	"brane/types"
)

// Library is the external collaborator contract for one linked library
// (§6.2): it resolves a mangled external function name to its declared
// return type name.
type Library interface {
	GetFunctionReturnT(mangledName string) (string, bool)
}

// Linker is the external collaborator contract used during type and
// symbol resolution (§4.1, §6.2). It is out of the compiler core's scope;
// the compiler only calls it.
type Linker interface {
	GetType(name string) (*types.TypeDef, bool)
	GetLibrary(name string) (Library, bool)
}

// localBinding is one entry of a Scope: the local's register slot, its
// declared type, and its const/ref qualifiers (§3.4).
type localBinding struct {
	index   uint32
	def     *types.TypeDef
	isConst bool
	isRef   bool
}

// Scope is one level of the lexical scope stack (§3.4).
type Scope struct {
	vars map[string]localBinding
}

func newScope() *Scope { return &Scope{vars: make(map[string]localBinding)} }

// Context is the compiler context (§4): it owns the function currently
// being emitted, the virtual-register allocator (via the function), the
// scope stack, and the library-alias table. It holds no struct table or
// linker: types are already resolved when nodes are built. One
// Context exists per function under construction; the driver creates a
// fresh one for each function it compiles (§4.6).
type Context struct {
	Fn     *bytecode.ScriptFunction
	scopes []*Scope

	libraryAliases     map[string]int // alias -> stable index
	libraryAliasOrder  []string       // insertion order, mirrored into IRScript.LinkedLibraries

	returned bool // whether a Return node has been emitted anywhere in the function so far

	returnDef      *types.TypeDef
	returnSlot     types.ValueIndex
	returnSlotSet  bool

	localFunctions   map[string]int             // mangled name -> IRScript.LocalFunctions index
	localReturnTypes map[string]*types.TypeDef   // mangled name -> declared return type

	Errors []*types.CompileError
}

// NewContext creates a Context for compiling one function. Type and symbol
// resolution (structs, linker) is already finished by the time a Context
// exists (§4.2, §4.6 step 3) — every node it emits already carries its
// resolved TypeDef.
func NewContext(fn *bytecode.ScriptFunction, libraryAliases map[string]int, libraryAliasOrder []string) *Context {
	return &Context{
		Fn:                fn,
		libraryAliases:    libraryAliases,
		libraryAliasOrder: libraryAliasOrder,
	}
}

// SetLocalFunctions installs the compilation unit's mangled-name lookup
// tables, shared read-only across all per-function Contexts (§4.6 step 3:
// every function is mangled and indexed before any body is emitted, so
// forward calls resolve).
func (c *Context) SetLocalFunctions(byName map[string]int, returnTypes map[string]*types.TypeDef) {
	c.localFunctions = byName
	c.localReturnTypes = returnTypes
}

// LocalFunctionIndex resolves a mangled name to its IRScript.LocalFunctions
// index (§6.2, §4.5 FunctionCall).
func (c *Context) LocalFunctionIndex(mangled string) (int, bool) {
	idx, ok := c.localFunctions[mangled]
	return idx, ok
}

// LocalFunctionReturnType resolves a mangled local function's declared
// return type.
func (c *Context) LocalFunctionReturnType(mangled string) (*types.TypeDef, bool) {
	def, ok := c.localReturnTypes[mangled]
	return def, ok
}

func (c *Context) errorf(kind types.ErrorKind, line, col int, format string, args ...interface{}) {
	c.Errors = append(c.Errors, types.NewError(kind, line, col, format, args...))
}

// RecordError appends a diagnostic to the context (§7). It is exported so
// the graph builder, which lives outside this package, can report errors
// found while walking the parse tree (undefined identifiers, unknown
// functions) using the same accumulation the emitter uses.
func (c *Context) RecordError(kind types.ErrorKind, line, col int, format string, args ...interface{}) {
	c.errorf(kind, line, col, format, args...)
}

// BeginScope pushes a fresh lexical scope (§3.4, §4.6 step 4).
func (c *Context) BeginScope() { c.scopes = append(c.scopes, newScope()) }

// EndScope pops the innermost lexical scope; bindings declared in it stop
// being visible to LookupLocal (§8 property 4: scope shadowing).
func (c *Context) EndScope() { c.scopes = c.scopes[:len(c.scopes)-1] }

// DeclareLocal registers a new local in the innermost scope. It returns
// NameInUse if the name is already declared in that scope (redeclaration
// in an *enclosing* scope is legal shadowing, per §3.4/§4.1).
func (c *Context) DeclareLocal(name string, def *types.TypeDef, isConst, isRef bool) (uint32, error) {
	top := c.scopes[len(c.scopes)-1]
	if _, exists := top.vars[name]; exists {
		return 0, types.NewError(types.ErrNameInUse, 0, 0, "name %q already declared in this scope", name)
	}
	idx := c.Fn.NewReg(def.Kind())
	top.vars[name] = localBinding{index: idx, def: def, isConst: isConst, isRef: isRef}
	return idx, nil
}

// LookupLocal walks the scope stack inside-out and returns the first
// binding found for name (§4.1 localValueExists/getValueNode).
func (c *Context) LookupLocal(name string) (localBinding, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if b, ok := c.scopes[i].vars[name]; ok {
			return b, true
		}
	}
	return localBinding{}, false
}

// LocalExists reports whether name is bound anywhere on the scope stack.
func (c *Context) LocalExists(name string) bool {
	_, ok := c.LookupLocal(name)
	return ok
}

// LibraryAliasIndex resolves an alias to its stable index into
// IRScript.LinkedLibraries, or false when the alias was never linked.
func (c *Context) LibraryAliasIndex(alias string) (int, bool) {
	idx, ok := c.libraryAliases[alias]
	return idx, ok
}

// SetReturnType records the function's declared return type (§4.6 step 2),
// used to allocate the return slot and to type-check ReturnValue nodes.
func (c *Context) SetReturnType(def *types.TypeDef) { c.returnDef = def }

// ReturnType returns the function's declared return type.
func (c *Context) ReturnType() *types.TypeDef { return c.returnDef }

// ReturnSlot lazily allocates the register that ReturnValue nodes MOV into
// before RETV (§4.5 Return). Allocating on first use rather than eagerly
// avoids reserving a register in void functions.
func (c *Context) ReturnSlot() types.ValueIndex {
	if !c.returnSlotSet {
		idx := c.Fn.NewReg(c.returnDef.Kind())
		c.returnSlot = types.ValueIndex{Storage: types.StorageReg, Kind: c.returnDef.Kind(), Index: idx}
		c.returnSlotSet = true
	}
	return c.returnSlot
}

// HasReturned reports whether a Return node has been emitted so far in the
// current function, at any nesting depth. MissingReturn detection does not
// use it: the driver checks that the function body ends on a return.
func (c *Context) HasReturned() bool { return c.returned }

// MarkReturned records that a return has been emitted.
func (c *Context) MarkReturned() { c.returned = true }
