// Package conformance runs YAML-described source snippets through the
// lexer, parser, and compiler and checks their compile-time outcome
// against a declared expectation (§8 Testable Properties). Execution of
// the resulting IRScript is out of scope (§1): every check here is about
// what the compiler produces, not what a VM would compute from it.
package conformance

// TestSuite represents a complete YAML fixture file.
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase is one compilation scenario.
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"` // bool or string
	Source      string      `yaml:"source"`
	NoLinker    bool        `yaml:"noLinker,omitempty"`
	Expect      Expectation `yaml:"expect"`
}

// IsSkipped reports whether this test should be skipped.
func (tc *TestCase) IsSkipped() (bool, string) {
	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
	case string:
		return true, v
	}
	return false, ""
}

// ExpectedFunction constrains one entry of the compiled IRScript's
// LocalFunctions list.
type ExpectedFunction struct {
	Mangled    string `yaml:"mangled"`
	ReturnType string `yaml:"returnType"`
}

// ExpectedStruct constrains one entry of the compiled IRScript's
// LocalStructs list (§8 property 2).
type ExpectedStruct struct {
	Name   string `yaml:"name"`
	Packed bool   `yaml:"packed,omitempty"`
	Size   int    `yaml:"size"`
}

// ExpectedConst constrains the constant-pool size of a named function,
// used by the "fold" scenario (§8: "emits a single Const 7").
type ExpectedConst struct {
	Function string `yaml:"function"`
	Count    int    `yaml:"count"`
}

// Expectation is the declared outcome of compiling Source.
type Expectation struct {
	CompileOK bool               `yaml:"compileOK"`
	ErrorKind string             `yaml:"errorKind,omitempty"`
	Functions []ExpectedFunction `yaml:"functions,omitempty"`
	Structs   []ExpectedStruct   `yaml:"structs,omitempty"`
	Const     *ExpectedConst     `yaml:"const,omitempty"`
}
