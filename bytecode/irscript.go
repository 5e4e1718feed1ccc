package bytecode

import "brane/types"

// IRScript is the emitted artifact of a compilation unit (§3.6, §6.3):
// every local function, every local struct's wire form, and the ordered
// list of linked library names. Indices into these three lists are stable
// and are embedded directly in opcodes.
type IRScript struct {
	LocalFunctions  []*ScriptFunction  `yaml:"functions"`
	LocalStructs    []types.IRStructDef `yaml:"structs"`
	LinkedLibraries []string           `yaml:"libraries"`
}

// NewIRScript returns an empty script ready to accumulate compiled output.
func NewIRScript() *IRScript {
	return &IRScript{}
}

// AddFunction appends a compiled function and returns its stable index.
func (s *IRScript) AddFunction(fn *ScriptFunction) int {
	s.LocalFunctions = append(s.LocalFunctions, fn)
	return len(s.LocalFunctions) - 1
}

// AddStruct appends a struct's wire form and returns its stable index.
func (s *IRScript) AddStruct(def types.IRStructDef) int {
	s.LocalStructs = append(s.LocalStructs, def)
	return len(s.LocalStructs) - 1
}

// FindFunction looks a local function up by its mangled name, returning
// its index or -1.
func (s *IRScript) FindFunction(mangledName string) int {
	for i, fn := range s.LocalFunctions {
		if fn.MangledName == mangledName {
			return i
		}
	}
	return -1
}
