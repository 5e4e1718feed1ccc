package compiler

import (
	"brane/aot"
	"brane/types"
)

// StaticLibrary is a fixed table of external function signatures exported
// by one linked library (§6.2): a name-keyed map populated through Declare
// and looked up by mangled name.
type StaticLibrary struct {
	name      string
	functions map[string]string // mangled name -> return type name
}

// NewStaticLibrary creates an empty library named name.
func NewStaticLibrary(name string) *StaticLibrary {
	return &StaticLibrary{name: name, functions: make(map[string]string)}
}

// Declare registers one exported function's signature. mangled must match
// aot.Mangle(name, argTypeNames) for the call sites that reference it.
func (l *StaticLibrary) Declare(mangled, returnType string) {
	l.functions[mangled] = returnType
}

// GetFunctionReturnT implements aot.Library.
func (l *StaticLibrary) GetFunctionReturnT(mangledName string) (string, bool) {
	t, ok := l.functions[mangledName]
	return t, ok
}

// StaticLinker resolves link directives to StaticLibrary instances and,
// optionally, extra type definitions contributed by linked libraries
// (§6.2). It implements aot.Linker.
type StaticLinker struct {
	libraries map[string]*StaticLibrary
	types     map[string]*types.TypeDef
}

// NewStaticLinker creates a linker with no libraries or types registered.
func NewStaticLinker() *StaticLinker {
	return &StaticLinker{
		libraries: make(map[string]*StaticLibrary),
		types:     make(map[string]*types.TypeDef),
	}
}

// Register makes lib resolvable under name (the string a `link "name";`
// directive names, before any `as alias` renaming).
func (s *StaticLinker) Register(name string, lib *StaticLibrary) {
	s.libraries[name] = lib
}

// RegisterType makes a linker-provided type resolvable by name, for
// libraries that export struct types alongside functions.
func (s *StaticLinker) RegisterType(name string, def *types.TypeDef) {
	s.types[name] = def
}

// GetType implements aot.Linker.
func (s *StaticLinker) GetType(name string) (*types.TypeDef, bool) {
	def, ok := s.types[name]
	return def, ok
}

// GetLibrary implements aot.Linker.
func (s *StaticLinker) GetLibrary(name string) (aot.Library, bool) {
	lib, ok := s.libraries[name]
	return lib, ok
}
