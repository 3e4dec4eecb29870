package indexing

import (
	"strings"

	"github.com/standardbeagle/cxxindex/internal/frontend"
	"github.com/standardbeagle/cxxindex/internal/idcodec"
	"github.com/standardbeagle/cxxindex/internal/types"
)

const anonymousMemberType = "anonymous struct/union"

// VisitFunction collects functions and methods. Operator overloads and
// static non-member functions are not documented.
func (ix *Indexer) VisitFunction(d *frontend.FunctionDecl) {
	db := ix.index.Functions
	db.CountMatch()

	if d.IsOverloadedOperator || d.Implicit || d.InAnonymousNamespace ||
		(d.StorageClass == types.StorageStatic && !d.IsMethod) ||
		ix.hidden(d.Access) || ix.ignored(d.Location.File) {
		return
	}
	id, ok := ix.identify(&d.Decl, "function")
	if !ok {
		return
	}
	commit(db, id, ix.relative(d.Location.File), d.Location.Line, func() types.FunctionSymbol {
		return ix.extractFunction(id, d)
	})
}

func (ix *Indexer) extractFunction(id types.SymbolID, d *frontend.FunctionDecl) types.FunctionSymbol {
	f := types.FunctionSymbol{
		Symbol:            ix.symbol(id, &d.Decl),
		IsRecordMember:    d.IsMethod,
		IsConstexpr:       d.IsConstexpr && !d.IsExplicitlyDefaulted,
		IsConsteval:       d.IsConsteval,
		IsInline:          d.IsInline,
		IsConst:           d.IsConst,
		IsVolatile:        d.IsVolatile,
		IsRestrict:        d.IsRestrict,
		IsVirtual:         d.IsVirtual,
		IsVariadic:        d.IsVariadic,
		IsNoExcept:        d.IsNoExcept,
		HasTrailingReturn: d.HasTrailingReturn,
		IsCtorOrDtor:      d.IsCtor || d.IsDtor,
		Access:            d.Access,
		StorageClass:      d.StorageClass,
		RefQualifier:      d.RefQualifier,
		Params:            make([]types.FunctionParam, 0, len(d.Params)),
	}
	for _, p := range d.Params {
		f.Params = append(f.Params, types.FunctionParam{
			Name:         p.Name,
			Type:         typeRef(p.Type),
			DefaultValue: p.DefaultValue,
		})
	}
	if len(d.TemplateParams) > 0 {
		f.TemplateParams = append([]types.TemplateParam(nil), d.TemplateParams...)
	}
	describeFunction(&f, d.Comment)

	// constructors and destructors print no return type
	if !f.IsCtorOrDtor {
		f.ReturnType = typeRef(d.ReturnType)
	}
	f.Proto, f.NameStart, f.PostTemplate = functionProto(&f)
	return f
}

// VisitRecord collects complete struct, class and union definitions
func (ix *Indexer) VisitRecord(d *frontend.RecordDecl) {
	db := ix.index.Records
	db.CountMatch()

	if !d.IsDefinition || d.Implicit || d.InAnonymousNamespace ||
		ix.hidden(d.Access) || ix.ignored(d.Location.File) {
		return
	}
	// unnamed records are only documented under their typedef name
	if d.Name == "" && d.TypedefName == "" {
		return
	}
	id, ok := ix.identify(&d.Decl, "record")
	if !ok {
		return
	}
	commit(db, id, ix.relative(d.Location.File), d.Location.Line, func() types.RecordSymbol {
		return ix.extractRecord(id, d)
	})
}

func (ix *Indexer) extractRecord(id types.SymbolID, d *frontend.RecordDecl) types.RecordSymbol {
	r := types.RecordSymbol{
		Symbol:      ix.symbol(id, &d.Decl),
		Type:        d.Kind,
		Vars:        []types.MemberVariable{},
		MethodIDs:   []types.SymbolID{},
		BaseRecords: []types.BaseRecord{},
	}
	if r.Name == "" {
		r.Name = d.TypedefName
	}
	if d.Parent.Kind == frontend.ParentRecord {
		r.Name = d.Parent.Name + "::" + r.Name
	}

	seen := make(map[types.SymbolID]bool, len(d.Methods))
	for _, m := range d.Methods {
		if m.Implicit || m.IsOverloadedOperator || m.InAnonymousNamespace ||
			ix.hidden(m.Access) || ix.ignored(m.Location.File) {
			continue
		}
		mid := idcodec.FromUSR(m.USR)
		if mid.IsZero() || seen[mid] {
			continue
		}
		seen[mid] = true
		r.MethodIDs = append(r.MethodIDs, mid)
	}

	for _, b := range d.Bases {
		name := b.Name
		if b.InStdNamespace && !strings.HasPrefix(name, "std::") {
			name = "std::" + name
		}
		r.BaseRecords = append(r.BaseRecords, types.BaseRecord{
			ID:     idcodec.FromUSR(b.USR),
			Access: b.Access,
			Name:   name,
		})
	}

	// instance fields first, then static data members
	for _, static := range []bool{false, true} {
		for _, field := range d.Fields {
			if field.IsStatic != static || ix.hidden(field.Access) {
				continue
			}
			v := types.MemberVariable{
				Name:         field.Name,
				DefaultValue: field.DefaultValue,
				DocComment:   memberDoc(field.Comment),
				Access:       field.Access,
				IsStatic:     field.IsStatic,
			}
			if field.Type.Anonymous {
				v.Type = types.TypeRef{Name: anonymousMemberType}
			} else {
				v.Type = typeRef(field.Type)
			}
			r.Vars = append(r.Vars, v)
		}
	}

	if len(d.TemplateParams) > 0 {
		r.TemplateParams = append([]types.TemplateParam(nil), d.TemplateParams...)
	}
	if d.Comment != nil && !d.Comment.Trailing {
		describe(&r.Symbol, d.Comment)
		describeTemplateParams(r.TemplateParams, d.Comment)
	}
	r.Proto = recordProto(&r)
	return r
}

// VisitEnum collects named enum definitions
func (ix *Indexer) VisitEnum(d *frontend.EnumDecl) {
	db := ix.index.Enums
	db.CountMatch()

	if d.Name == "" || !d.IsDefinition || d.Implicit || d.InAnonymousNamespace ||
		ix.hidden(d.Access) || ix.ignored(d.Location.File) {
		return
	}
	id, ok := ix.identify(&d.Decl, "enum")
	if !ok {
		return
	}
	commit(db, id, ix.relative(d.Location.File), d.Location.Line, func() types.EnumSymbol {
		e := types.EnumSymbol{
			Symbol:  ix.symbol(id, &d.Decl),
			Type:    enumType(d),
			Members: make([]types.EnumMember, 0, len(d.Enumerators)),
		}
		if d.Parent.Kind == frontend.ParentRecord {
			e.Name = d.Parent.Name + "::" + e.Name
		}
		for _, m := range d.Enumerators {
			e.Members = append(e.Members, types.EnumMember{
				Name:       m.Name,
				Value:      m.Value,
				DocComment: enumeratorDoc(m.Comment),
			})
		}
		if d.Comment != nil && !d.Comment.Trailing {
			describe(&e.Symbol, d.Comment)
		}
		return e
	})
}

func enumType(d *frontend.EnumDecl) string {
	switch {
	case d.ScopedWithStruct:
		return "enum struct"
	case d.Scoped:
		return "enum class"
	}
	return "enum"
}

// VisitNamespace collects named namespaces. Child lists stay empty until
// ResolveNamespaces runs.
func (ix *Indexer) VisitNamespace(d *frontend.NamespaceDecl) {
	db := ix.index.Namespaces
	db.CountMatch()

	if d.Name == "" || d.Anonymous || d.InAnonymousNamespace || ix.ignored(d.Location.File) {
		return
	}
	id, ok := ix.identify(&d.Decl, "namespace")
	if !ok {
		return
	}
	commit(db, id, ix.relative(d.Location.File), d.Location.Line, func() types.NamespaceSymbol {
		return types.NamespaceSymbol{
			Symbol:     ix.symbol(id, &d.Decl),
			Records:    []types.SymbolID{},
			Namespaces: []types.SymbolID{},
			Enums:      []types.SymbolID{},
		}
	})
}
