package compiler

import (
	"brane/aot"
	"brane/ast"
	"brane/types"
)

// builder walks the parse tree and constructs the AOT graph for one
// compilation unit (§4.3). It carries the tables every function's Context
// needs beyond its own scope stack: struct layouts and the resolved
// signature of every function and linked-library alias in the unit, so
// forward and mutually recursive calls resolve regardless of source order.
type builder struct {
	linker         aot.Linker
	localStructs   map[string]*types.StructDef
	aliasToLibrary map[string]aot.Library
	funcRet        map[string]*types.TypeDef // mangled name -> return type, whole unit
	funcIndex      map[string]int            // mangled name -> IRScript.LocalFunctions index
}

func resolveTypeName(b *builder, name string) (*types.TypeDef, bool) {
	switch name {
	case "void":
		return types.NewPrimitive(types.Void), true
	case "bool":
		return types.NewPrimitive(types.Bool), true
	case "char":
		return types.NewPrimitive(types.Char), true
	case "int":
		return types.NewPrimitive(types.Int32), true
	case "long":
		return types.NewPrimitive(types.Int64), true
	case "float":
		return types.NewPrimitive(types.Float32), true
	case "double":
		return types.NewPrimitive(types.Float64), true
	}
	if def, ok := b.localStructs[name]; ok {
		return types.NewStructType(def), true
	}
	if b.linker != nil {
		return b.linker.GetType(name)
	}
	return nil, false
}

// checkRefQualifier reports InvalidRefQualifier when ref is requested on a
// primitive type: only struct-kinded locals (whether held by value or, via
// new, by object reference) can be aliased (§7).
func checkRefQualifier(ctx *aot.Context, def *types.TypeDef, isRef bool, line, col int) bool {
	if isRef && def.Kind() != types.Struct && def.Kind() != types.ObjectRef {
		ctx.RecordError(types.ErrInvalidRefQualifier, line, col, "ref applied to non-object type %q", def.Name())
		return false
	}
	return true
}

// refAdjust rewrites a struct-named declaration's TypeDef to ObjectRef when
// the declaration is ref-qualified: `ref Pair p` names a heap reference to a
// Pair, which is what `new Pair` produces, not a by-value Pair (§3.2).
func refAdjust(def *types.TypeDef, isRef bool) *types.TypeDef {
	if isRef && def.Kind() == types.Struct {
		return types.NewObjectRefType(def.StructDef())
	}
	return def
}

// buildStmt builds one statement's AOT node, or nil to propagate a local
// failure (§7 propagation policy).
func buildStmt(b *builder, ctx *aot.Context, s ast.Stmt) aot.Node {
	switch s := s.(type) {
	case *ast.ScopeStmt:
		ctx.BeginScope()
		defer ctx.EndScope()
		stmts := make([]aot.Node, 0, len(s.Stmts))
		for _, inner := range s.Stmts {
			if n := buildStmt(b, ctx, inner); n != nil {
				stmts = append(stmts, n)
			}
		}
		return &aot.ScopeNode{Stmts: stmts}

	case *ast.DeclStmt:
		return buildDecl(b, ctx, s)

	case *ast.IfStmt:
		cond := buildExpr(b, ctx, s.Cond)
		body := buildStmt(b, ctx, s.Body)
		if cond == nil || body == nil {
			return nil
		}
		return &aot.IfNode{Cond: cond, Body: body}

	case *ast.WhileStmt:
		cond := buildExpr(b, ctx, s.Cond)
		body := buildStmt(b, ctx, s.Body)
		if cond == nil || body == nil {
			return nil
		}
		return &aot.WhileNode{Cond: cond, Body: body}

	case *ast.ReturnVoidStmt:
		if ctx.ReturnType().Kind() != types.Void {
			ctx.RecordError(types.ErrTypeMismatch, s.Pos().Line, s.Pos().Column, "bare return in non-void function")
			return nil
		}
		return &aot.ReturnVoidNode{}

	case *ast.ReturnValStmt:
		x := buildExpr(b, ctx, s.Value)
		if x == nil {
			return nil
		}
		if ctx.ReturnType().Kind() == types.Void {
			ctx.RecordError(types.ErrTypeMismatch, s.Pos().Line, s.Pos().Column, "return with value in void function")
			return nil
		}
		if x.ResultType().Kind() != ctx.ReturnType().Kind() {
			x = &aot.CastNode{X: x, Target: ctx.ReturnType()}
		}
		return &aot.ReturnValueNode{X: x}

	case *ast.ExprStmt:
		return buildExpr(b, ctx, s.X)
	}
	return nil
}

// buildDecl handles `[const] [ref] Type name [= expr];` (ref may also follow
// the type): declares the
// local in the current scope, then, if present, builds its initializer as
// a plain assignment into a private ValueRef that bypasses the
// const-reassignment check (initialization, not reassignment).
func buildDecl(b *builder, ctx *aot.Context, s *ast.DeclStmt) aot.Node {
	f := s.Field
	def, ok := resolveTypeName(b, f.Type)
	if !ok {
		ctx.RecordError(types.ErrUndefinedType, f.Pos().Line, f.Pos().Column, "undefined type %q", f.Type)
		return nil
	}
	if !checkRefQualifier(ctx, def, f.IsRef, f.Pos().Line, f.Pos().Column) {
		return nil
	}
	def = refAdjust(def, f.IsRef)
	idx, err := ctx.DeclareLocal(f.Name, def, f.IsConst, f.IsRef)
	if err != nil {
		if ce, ok := err.(*types.CompileError); ok {
			ce.Line, ce.Column = f.Pos().Line, f.Pos().Column
			ctx.Errors = append(ctx.Errors, ce)
		}
		return nil
	}
	if s.Init == nil {
		return nil
	}
	x := buildExpr(b, ctx, s.Init)
	if x == nil {
		return nil
	}
	if x.ResultType().Kind() != def.Kind() {
		ctx.RecordError(types.ErrTypeMismatch, s.Pos().Line, s.Pos().Column, "cannot initialize %q of type %q with value of type %q", f.Name, def.Name(), x.ResultType().Name())
		return nil
	}
	dest := &aot.ValueRefNode{Index: idx, Def: def, IsConst: false, IsRef: f.IsRef}
	return &aot.AssignNode{Dest: dest, X: x, Line: s.Pos().Line, Column: s.Pos().Column}
}

// buildExpr builds one expression's AOT node, or nil to propagate a local
// failure (§7).
func buildExpr(b *builder, ctx *aot.Context, e ast.Expr) aot.Node {
	switch e := e.(type) {
	case *ast.BoolLit:
		return aot.NewConstNode(aot.NewBoolLiteral(e.Value))

	case *ast.IntLit:
		return aot.NewConstNode(aot.NewIntLiteral(types.Int32, e.Value))

	case *ast.FloatLit:
		kind := types.Float64
		if e.Is32Bit {
			kind = types.Float32
		}
		return aot.NewConstNode(aot.NewFloatLiteral(kind, e.Value))

	case *ast.CharLit:
		return aot.NewConstNode(aot.NewCharLiteral(e.Value))

	case *ast.StringLit:
		ctx.RecordError(types.ErrSyntaxError, e.Pos().Line, e.Pos().Column, "string literals are not supported")
		return nil

	case *ast.Ident:
		ref, ok := ctx.ValueRefFor(e.Name)
		if !ok {
			ctx.RecordError(types.ErrUndefinedIdentifier, e.Pos().Line, e.Pos().Column, "undefined identifier %q", e.Name)
			return nil
		}
		return ref

	case *ast.MemberAccess:
		base := buildExpr(b, ctx, e.Base)
		if base == nil {
			return nil
		}
		sd := base.ResultType().StructDef()
		if sd == nil {
			ctx.RecordError(types.ErrTypeMismatch, e.Pos().Line, e.Pos().Column, "member access on non-struct type %q", base.ResultType().Name())
			return nil
		}
		m, ok := sd.Member(e.Member)
		if !ok {
			ctx.RecordError(types.ErrUndefinedIdentifier, e.Pos().Line, e.Pos().Column, "struct %q has no member %q", sd.Name, e.Member)
			return nil
		}
		return &aot.DerefNode{Base: base, FieldType: m.Def, Offset: m.Offset}

	case *ast.Assignment:
		dest := buildExpr(b, ctx, e.Dest)
		x := buildExpr(b, ctx, e.X)
		if dest == nil || x == nil {
			return nil
		}
		if x.ResultType().Kind() != dest.ResultType().Kind() {
			ctx.RecordError(types.ErrTypeMismatch, e.Pos().Line, e.Pos().Column, "cannot assign value of type %q to target of type %q", x.ResultType().Name(), dest.ResultType().Name())
			return nil
		}
		return &aot.AssignNode{Dest: dest, X: x, Line: e.Pos().Line, Column: e.Pos().Column}

	case *ast.AddSub:
		left := buildExpr(b, ctx, e.Left)
		right := buildExpr(b, ctx, e.Right)
		if left == nil || right == nil {
			return nil
		}
		op := aot.ArithAdd
		if e.Op == "-" {
			op = aot.ArithSub
		}
		return &aot.ArithNode{Op: op, Left: left, Right: right}

	case *ast.MulDiv:
		left := buildExpr(b, ctx, e.Left)
		right := buildExpr(b, ctx, e.Right)
		if left == nil || right == nil {
			return nil
		}
		op := aot.ArithMul
		if e.Op == "/" {
			op = aot.ArithDiv
		}
		return &aot.ArithNode{Op: op, Left: left, Right: right}

	case *ast.Comparison:
		left := buildExpr(b, ctx, e.Left)
		right := buildExpr(b, ctx, e.Right)
		if left == nil || right == nil {
			return nil
		}
		return aot.NewCompareNode(left, e.Op, right)

	case *ast.Cast:
		x := buildExpr(b, ctx, e.X)
		if x == nil {
			return nil
		}
		target, ok := resolveTypeName(b, e.TypeName)
		if !ok {
			ctx.RecordError(types.ErrUndefinedType, e.Pos().Line, e.Pos().Column, "undefined cast target type %q", e.TypeName)
			return nil
		}
		return &aot.CastNode{X: x, Target: target}

	case *ast.FunctionCall:
		return buildCall(b, ctx, e)

	case *ast.NewExpr:
		def, ok := resolveTypeName(b, e.TypeName)
		if !ok {
			ctx.RecordError(types.ErrUndefinedType, e.Pos().Line, e.Pos().Column, "undefined type %q", e.TypeName)
			return nil
		}
		if def.Kind() != types.Struct {
			ctx.RecordError(types.ErrNonObjectNew, e.Pos().Line, e.Pos().Column, "new requires a struct type, got %q", e.TypeName)
			return nil
		}
		return &aot.NewNode{Def: def}

	case *ast.DeleteExpr:
		ptr := buildExpr(b, ctx, e.Ptr)
		if ptr == nil {
			return nil
		}
		return &aot.DeleteNode{Ptr: ptr, Line: e.Pos().Line, Column: e.Pos().Column}
	}
	return nil
}

func buildCall(b *builder, ctx *aot.Context, e *ast.FunctionCall) aot.Node {
	args := make([]aot.Node, 0, len(e.Args))
	failed := false
	for _, a := range e.Args {
		n := buildExpr(b, ctx, a)
		if n == nil {
			failed = true
			continue
		}
		if n.ResultType().Kind() == types.Void {
			ctx.RecordError(types.ErrVoidArgument, e.Pos().Line, e.Pos().Column, "void expression passed as argument to %q", e.Name)
			failed = true
			continue
		}
		args = append(args, n)
	}
	if failed {
		return nil
	}
	argTypeNames := make([]string, len(args))
	for i, a := range args {
		argTypeNames[i] = a.ResultType().Name()
	}
	mangled := aot.Mangle(e.Name, argTypeNames)

	if e.Namespace == "" {
		retDef, ok := b.funcRet[mangled]
		if !ok {
			ctx.RecordError(types.ErrUnknownFunction, e.Pos().Line, e.Pos().Column, "undefined function %q", mangled)
			return nil
		}
		return &aot.FunctionCallNode{Name: e.Name, Mangled: mangled, Args: args, RetDef: retDef, Line: e.Pos().Line, Column: e.Pos().Column}
	}

	lib, ok := b.aliasToLibrary[e.Namespace]
	if !ok {
		ctx.RecordError(types.ErrUnknownLibrary, e.Pos().Line, e.Pos().Column, "unlinked library alias %q", e.Namespace)
		return nil
	}
	retName, ok := lib.GetFunctionReturnT(mangled)
	if !ok {
		ctx.RecordError(types.ErrUnknownFunction, e.Pos().Line, e.Pos().Column, "undefined external function %q", mangled)
		return nil
	}
	retDef, ok := resolveTypeName(b, retName)
	if !ok {
		ctx.RecordError(types.ErrUndefinedType, e.Pos().Line, e.Pos().Column, "external function %q has undefined return type %q", mangled, retName)
		return nil
	}
	return &aot.ExternalFunctionCallNode{Alias: e.Namespace, Name: e.Name, Mangled: mangled, Args: args, RetDef: retDef, Line: e.Pos().Line, Column: e.Pos().Column}
}
