package conformance

import "testing"

func TestConformance(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("no fixtures loaded")
	}

	runner := NewRunner()
	results := runner.RunAll(tests)
	stats := ComputeStats(results)

	byFile := make(map[string][]TestResult)
	for _, r := range results {
		byFile[r.Test.File] = append(byFile[r.Test.File], r)
	}

	for file, group := range byFile {
		t.Run(file, func(t *testing.T) {
			for _, r := range group {
				r := r
				t.Run(r.Test.Test.Name, func(t *testing.T) {
					if r.Skipped {
						t.Skipf("skipped: %s", r.SkipReason)
					} else if !r.Passed {
						t.Errorf("failed: %v", r.Error)
					}
				})
			}
		})
	}

	t.Logf("\n=== Summary ===\n%s", FormatStats(stats))
}

func TestLoadAllTests(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("no fixtures loaded")
	}
	files := make(map[string]bool)
	for _, tc := range tests {
		if tc.Test.Name == "" {
			t.Error("test has no name")
		}
		files[tc.File] = true
	}
	t.Logf("loaded %d test cases from %d fixture files", len(tests), len(files))
}
