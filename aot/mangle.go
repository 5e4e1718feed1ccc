package aot

import "strings"

// Mangle computes the deterministic lookup key for a function: its base
// name followed by its parenthesized, comma-joined argument type names
// (§8 property 1, GLOSSARY "Mangled name"). It is the sole key used for
// both local and external function resolution (§6.2).
func Mangle(base string, argTypeNames []string) string {
	var b strings.Builder
	b.WriteString(base)
	b.WriteByte('(')
	for i, t := range argTypeNames {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(t)
	}
	b.WriteByte(')')
	return b.String()
}
