// Command branec compiles a single brane source file to an IRScript and
// reports its shape: local functions with their mangled signatures, local
// struct layouts, and linked libraries. It never executes the result — the
// interpreter is a separate, out-of-scope collaborator (§1).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"brane/ast"
	"brane/bytecode"
	"brane/compiler"

	"gopkg.in/yaml.v3"
)

func main() {
	srcPath := flag.String("source", "", "Path to a .brane source file (required)")
	outPath := flag.String("out", "", "Also write the compiled IRScript as YAML to this path")
	quiet := flag.Bool("quiet", false, "Suppress the per-function summary and only report errors")
	flag.Parse()

	if *srcPath == "" {
		fmt.Fprintln(os.Stderr, "usage: branec -source path/to/file.brane [-out script.yaml]")
		os.Exit(2)
	}

	source, err := os.ReadFile(*srcPath)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *srcPath, err)
	}

	log.Printf("branec")
	log.Printf("source: %s", *srcPath)

	p := ast.New(string(source))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "parse error: %v\n", e)
		}
		os.Exit(1)
	}

	linker := compiler.NewStaticLinker()
	result := compiler.Compile(prog, linker)
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "%v\n", e)
		}
		os.Exit(1)
	}

	script := result.Script

	if !*quiet {
		printSummary(script)
	}

	if *outPath != "" {
		data, err := yaml.Marshal(script)
		if err != nil {
			log.Fatalf("failed to serialize script: %v", err)
		}
		if err := os.WriteFile(*outPath, data, 0644); err != nil {
			log.Fatalf("failed to write %s: %v", *outPath, err)
		}
		log.Printf("wrote %s (%d bytes)", *outPath, len(data))
	}
}

func printSummary(script *bytecode.IRScript) {
	fmt.Printf("=== Functions (%d) ===\n", len(script.LocalFunctions))
	for _, fn := range script.LocalFunctions {
		fmt.Printf("  %-40s -> %-8s  code=%dB consts=%d locals=%d\n",
			fn.MangledName, fn.ReturnType, len(fn.Code), len(fn.Constants), fn.NumLocals())
	}

	fmt.Printf("\n=== Structs (%d) ===\n", len(script.LocalStructs))
	for _, sd := range script.LocalStructs {
		layout := "padded"
		if sd.Packed {
			layout = "packed"
		}
		fmt.Printf("  %-20s %-7s size=%d\n", sd.Name, layout, sd.Size)
		for _, m := range sd.Members {
			fmt.Printf("      %-16s %-10s @%d\n", m.Name, m.TypeName, m.Offset)
		}
	}

	fmt.Printf("\n=== Linked libraries (%d) ===\n", len(script.LinkedLibraries))
	for _, lib := range script.LinkedLibraries {
		fmt.Printf("  %s\n", lib)
	}
}
