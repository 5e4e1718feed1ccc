package conformance

import (
	"fmt"

	"brane/aot"
	"brane/ast"
	"brane/bytecode"
	"brane/compiler"
)

// TestResult is the outcome of running one test case.
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner compiles fixture sources and checks them against their
// declared Expectation. It carries no state between runs: unlike the
// interpreter-backed runner this package is grounded on, there is no
// database or evaluator session to thread through, since the compiler is
// a pure function of its source text and linker.
type Runner struct{}

// NewRunner creates a Runner.
func NewRunner() *Runner { return &Runner{} }

// Run executes a single test case.
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{Test: test, Skipped: true, SkipReason: reason}
	}

	p := ast.New(test.Test.Source)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return checkFailure(test, "SyntaxError", errs[0])
	}

	var linker aot.Linker = compiler.NewStaticLinker()
	if test.Test.NoLinker {
		linker = nil
	}
	result := compiler.Compile(prog, linker)

	if len(result.Errors) > 0 {
		return checkFailure(test, result.Errors[0].Kind.String(), result.Errors[0])
	}

	ok, err := checkSuccess(test.Test.Expect, result.Script)
	return TestResult{Test: test, Passed: ok, Error: err}
}

func checkFailure(test LoadedTest, kind string, cause error) TestResult {
	expect := test.Test.Expect
	if expect.CompileOK {
		return TestResult{Test: test, Passed: false, Error: fmt.Errorf("expected successful compile, got %s: %w", kind, cause)}
	}
	if expect.ErrorKind != "" && expect.ErrorKind != kind {
		return TestResult{Test: test, Passed: false, Error: fmt.Errorf("expected error kind %s, got %s (%w)", expect.ErrorKind, kind, cause)}
	}
	return TestResult{Test: test, Passed: true}
}

func checkSuccess(expect Expectation, script *bytecode.IRScript) (bool, error) {
	if !expect.CompileOK {
		return false, fmt.Errorf("expected compile failure with kind %q, compilation succeeded", expect.ErrorKind)
	}
	for _, want := range expect.Functions {
		idx := script.FindFunction(want.Mangled)
		if idx < 0 {
			return false, fmt.Errorf("function %q not found in compiled script", want.Mangled)
		}
		fn := script.LocalFunctions[idx]
		if want.ReturnType != "" && fn.ReturnType != want.ReturnType {
			return false, fmt.Errorf("function %q: expected return type %q, got %q", want.Mangled, want.ReturnType, fn.ReturnType)
		}
	}
	for _, want := range expect.Structs {
		var found *ExpectedStruct
		for _, sd := range script.LocalStructs {
			if sd.Name == want.Name {
				if sd.Size != want.Size {
					return false, fmt.Errorf("struct %q: expected size %d, got %d", want.Name, want.Size, sd.Size)
				}
				if sd.Packed != want.Packed {
					return false, fmt.Errorf("struct %q: expected packed=%v, got %v", want.Name, want.Packed, sd.Packed)
				}
				found = &want
				break
			}
		}
		if found == nil {
			return false, fmt.Errorf("struct %q not found in compiled script", want.Name)
		}
	}
	if expect.Const != nil {
		idx := script.FindFunction(expect.Const.Function)
		if idx < 0 {
			return false, fmt.Errorf("function %q not found for const-pool check", expect.Const.Function)
		}
		got := len(script.LocalFunctions[idx].Constants)
		if got != expect.Const.Count {
			return false, fmt.Errorf("function %q: expected %d pooled constants, got %d", expect.Const.Function, expect.Const.Count, got)
		}
	}
	return true, nil
}

// RunAll executes every loaded test.
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, t := range tests {
		results[i] = r.Run(t)
	}
	return results
}

// SummaryStats tallies a batch of TestResults.
type SummaryStats struct {
	Total, Passed, Failed, Skipped int
}

// ComputeStats summarizes results.
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		switch {
		case r.Skipped:
			stats.Skipped++
		case r.Passed:
			stats.Passed++
		default:
			stats.Failed++
		}
	}
	return stats
}

// FormatStats renders a human-readable summary line.
func FormatStats(s SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)", s.Passed, s.Failed, s.Skipped, s.Total)
}
