package compiler

import (
	"brane/aot"
	"brane/ast"
	"brane/types"
)

// buildStructs lays out every struct declaration in source order (§4.2).
// A member type must already be resolvable — either a primitive or an
// earlier struct declaration in the same unit, or a linker-provided type —
// matching §4.2's "committed before any AOT node can reference fields of
// that struct."
func buildStructs(decls []*ast.StructDecl, linker aot.Linker) (map[string]*types.StructDef, []*types.CompileError) {
	built := make(map[string]*types.StructDef, len(decls))
	var errs []*types.CompileError

	resolve := func(name string) (*types.TypeDef, bool) {
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
		if def, ok := built[name]; ok {
			return types.NewStructType(def), true
		}
		if linker != nil {
			return linker.GetType(name)
		}
		return nil, false
	}

	for _, sd := range decls {
		members := make([]types.Member, 0, len(sd.Members))
		ok := true
		for _, f := range sd.Members {
			def, found := resolve(f.Type)
			if !found {
				errs = append(errs, types.NewError(types.ErrUndefinedType, f.Pos().Line, f.Pos().Column,
					"undefined type %q in struct %q", f.Type, sd.Name))
				ok = false
				continue
			}
			if f.IsRef && def.Kind() != types.Struct && def.Kind() != types.ObjectRef {
				errs = append(errs, types.NewError(types.ErrInvalidRefQualifier, f.Pos().Line, f.Pos().Column,
					"ref applied to non-object member %q", f.Name))
				ok = false
				continue
			}
			def = refAdjust(def, f.IsRef)
			members = append(members, types.Member{Name: f.Name, Def: def})
		}
		if !ok {
			continue
		}
		def, err := types.NewStructDef(sd.Name, members)
		if err != nil {
			errs = append(errs, types.NewError(types.ErrNameInUse, sd.Pos().Line, sd.Pos().Column, "%s", err.Error()))
			continue
		}
		def.Packed = sd.Packed
		if sd.Packed {
			def.PackMembers()
		} else {
			def.PadMembers()
		}
		built[sd.Name] = def
	}
	return built, errs
}
