// Package compiler is the compilation driver (§4.6): it walks a parsed
// ast.Program, lays out structs, resolves link directives against a
// Linker, builds and emits the AOT graph for every function, and
// assembles the result into a bytecode.IRScript.
package compiler

import (
	"brane/aot"
	"brane/ast"
	"brane/bytecode"
	"brane/types"
)

// Result is the outcome of compiling one parse tree. Script is nil when
// Errors is non-empty (§7: "the final compile() returns null when any
// error was recorded").
type Result struct {
	Script *bytecode.IRScript
	Errors []*types.CompileError
}

type pendingFunc struct {
	decl    *ast.FuncDecl
	mangled string
	retDef  *types.TypeDef
	argDefs []*types.TypeDef
}

// Compile lowers a parsed compilation unit to an IRScript (§4.6, §6.3).
// linker may be nil only for units with no link directives; a link
// directive with a nil linker raises LinkerUnset.
func Compile(prog *ast.Program, linker aot.Linker) *Result {
	res := &Result{}

	localStructs, structErrs := buildStructs(prog.Structs, linker)
	res.Errors = append(res.Errors, structErrs...)

	script := bytecode.NewIRScript()
	for _, sd := range prog.Structs {
		if def, ok := localStructs[sd.Name]; ok {
			script.AddStruct(def.ToIR())
		}
	}

	libraryAliases := make(map[string]int)
	var libraryAliasOrder []string
	aliasToLibrary := make(map[string]aot.Library)
	for _, ld := range prog.Links {
		if linker == nil {
			res.Errors = append(res.Errors, types.NewError(types.ErrLinkerUnset, ld.Pos().Line, ld.Pos().Column,
				"link %q requires a configured linker", ld.Library))
			continue
		}
		lib, ok := linker.GetLibrary(ld.Library)
		if !ok {
			res.Errors = append(res.Errors, types.NewError(types.ErrUnknownLibrary, ld.Pos().Line, ld.Pos().Column,
				"unknown library %q", ld.Library))
			continue
		}
		alias := ld.Alias
		if alias == "" {
			alias = ld.Library
		}
		libraryAliases[alias] = len(libraryAliasOrder)
		libraryAliasOrder = append(libraryAliasOrder, ld.Library)
		aliasToLibrary[alias] = lib
	}
	script.LinkedLibraries = append(script.LinkedLibraries, libraryAliasOrder...)

	b := &builder{
		linker:         linker,
		localStructs:   localStructs,
		aliasToLibrary: aliasToLibrary,
		funcRet:        make(map[string]*types.TypeDef),
		funcIndex:      make(map[string]int),
	}

	var order []pendingFunc
	for _, fd := range prog.Functions {
		retDef, ok := resolveTypeName(b, fd.ReturnType)
		if !ok {
			res.Errors = append(res.Errors, types.NewError(types.ErrUndefinedType, fd.Pos().Line, fd.Pos().Column,
				"undefined return type %q in function %q", fd.ReturnType, fd.Name))
			continue
		}
		argNames := make([]string, 0, len(fd.Args))
		argDefs := make([]*types.TypeDef, 0, len(fd.Args))
		ok = true
		for _, a := range fd.Args {
			def, found := resolveTypeName(b, a.Type)
			if !found {
				res.Errors = append(res.Errors, types.NewError(types.ErrUndefinedType, a.Pos().Line, a.Pos().Column,
					"undefined type %q for argument %q", a.Type, a.Name))
				ok = false
				continue
			}
			if a.IsRef && def.Kind() != types.Struct && def.Kind() != types.ObjectRef {
				res.Errors = append(res.Errors, types.NewError(types.ErrInvalidRefQualifier, a.Pos().Line, a.Pos().Column,
					"ref applied to non-object argument %q", a.Name))
				ok = false
				continue
			}
			def = refAdjust(def, a.IsRef)
			argNames = append(argNames, def.Name())
			argDefs = append(argDefs, def)
		}
		if !ok {
			continue
		}
		mangled := aot.Mangle(fd.Name, argNames)
		if _, exists := b.funcRet[mangled]; exists {
			res.Errors = append(res.Errors, types.NewError(types.ErrNameInUse, fd.Pos().Line, fd.Pos().Column,
				"function %q already declared", mangled))
			continue
		}
		b.funcIndex[mangled] = len(order)
		b.funcRet[mangled] = retDef
		order = append(order, pendingFunc{decl: fd, mangled: mangled, retDef: retDef, argDefs: argDefs})
	}

	for _, p := range order {
		argNames := make([]string, len(p.argDefs))
		for i, d := range p.argDefs {
			argNames[i] = d.Name()
		}
		fn := bytecode.NewScriptFunction(p.mangled, p.retDef.Name(), argNames)
		script.AddFunction(fn)

		ctx := aot.NewContext(fn, libraryAliases, libraryAliasOrder)
		ctx.SetReturnType(p.retDef)
		ctx.SetLocalFunctions(b.funcIndex, b.funcRet)

		ctx.BeginScope()
		for i, a := range p.decl.Args {
			if _, err := ctx.DeclareLocal(a.Name, p.argDefs[i], a.IsConst, a.IsRef); err != nil {
				ctx.RecordError(types.ErrNameInUse, a.Pos().Line, a.Pos().Column, "%s", err.Error())
			}
		}
		for _, stmt := range p.decl.Body {
			node := buildStmt(b, ctx, stmt)
			if node == nil {
				continue
			}
			node = node.Optimize()
			node.Emit(ctx)
		}
		if p.retDef.Kind() != types.Void && !endsInReturn(p.decl.Body) {
			ctx.RecordError(types.ErrMissingReturn, p.decl.Pos().Line, p.decl.Pos().Column,
				"function %q does not return on all paths", p.mangled)
		}
		ctx.EndScope()

		res.Errors = append(res.Errors, ctx.Errors...)
	}

	if len(res.Errors) == 0 {
		res.Script = script
	}
	return res
}

// endsInReturn reports whether stmts ends on a return, looking through a
// trailing `{ ... }` block; a return inside an if or while body does not count.
func endsInReturn(stmts []ast.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	switch s := stmts[len(stmts)-1].(type) {
	case *ast.ReturnValStmt, *ast.ReturnVoidStmt:
		return true
	case *ast.ScopeStmt:
		return endsInReturn(s.Stmts)
	}
	return false
}
