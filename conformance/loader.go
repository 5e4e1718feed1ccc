package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FixtureDir is the path to the compiled-fixture YAML files, relative to
// this package's directory.
const FixtureDir = "fixtures"

// LoadedTest pairs one parsed test case with the source file it came from.
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// LoadAllTests walks FixtureDir and loads every test case from every
// *.yaml file it finds.
func LoadAllTests() ([]LoadedTest, error) {
	abs, err := filepath.Abs(FixtureDir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("fixture directory %s: %w", abs, err)
	}

	var loaded []LoadedTest
	err = filepath.Walk(abs, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}
		tests, err := loadTestFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		relPath, _ := filepath.Rel(abs, path)
		for _, t := range tests {
			t.File = relPath
			loaded = append(loaded, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return loaded, nil
}

func loadTestFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, err
	}
	tests := make([]LoadedTest, 0, len(suite.Tests))
	for _, tc := range suite.Tests {
		tests = append(tests, LoadedTest{Suite: suite, Test: tc})
	}
	return tests, nil
}
