package indexing

import (
	"strings"

	"github.com/standardbeagle/cxxindex/internal/types"
)

// templateHeader renders "template <class T, int N = 3>". Template template
// parameters are left out of function headers.
func templateHeader(params []types.TemplateParam, withTemplateTemplates bool) string {
	var parts []string
	for _, p := range params {
		var b strings.Builder
		switch p.Kind {
		case types.TemplateTypeParameter:
			if p.IsTypename {
				b.WriteString("typename")
			} else {
				b.WriteString("class")
			}
			if p.IsParameterPack {
				b.WriteString("...")
			}
			b.WriteString(" " + p.Name)
		case types.NonTypeTemplate:
			b.WriteString(p.Type)
			if p.IsParameterPack {
				b.WriteString("...")
			}
			b.WriteString(" " + p.Name)
		case types.TemplateTemplateType:
			if !withTemplateTemplates {
				continue
			}
			b.WriteString(p.Type)
		}
		if p.DefaultValue != "" && p.Kind != types.TemplateTemplateType {
			b.WriteString(" = " + p.DefaultValue)
		}
		parts = append(parts, b.String())
	}
	return "template <" + strings.Join(parts, ", ") + ">"
}

// functionProto renders the declaration text of f and returns it with the
// offsets of the name and of the end of the template header
func functionProto(f *types.FunctionSymbol) (proto string, nameStart, postTemplate int) {
	var b strings.Builder
	if len(f.TemplateParams) > 0 {
		b.WriteString(templateHeader(f.TemplateParams, false))
	}
	postTemplate = b.Len()

	switch f.StorageClass {
	case types.StorageStatic:
		b.WriteString("static ")
	case types.StorageExtern:
		b.WriteString("extern ")
	}
	if f.IsInline {
		b.WriteString("inline ")
	}
	if f.IsVirtual {
		b.WriteString("virtual ")
	}
	if f.IsConstexpr {
		b.WriteString("constexpr ")
	}
	if f.IsConsteval {
		b.WriteString("consteval ")
	}

	if !f.IsCtorOrDtor {
		if f.HasTrailingReturn {
			b.WriteString("auto ")
		} else {
			b.WriteString(f.ReturnType.Name + " ")
		}
	}
	nameStart = b.Len()

	b.WriteString(f.Name)
	b.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type.Name)
		if p.Name != "" {
			b.WriteString(" " + p.Name)
		}
		if p.DefaultValue != "" {
			b.WriteString(" = " + p.DefaultValue)
		}
	}
	if f.IsVariadic {
		if len(f.Params) > 0 {
			b.WriteString(", ...")
		} else {
			b.WriteString("...")
		}
	}
	b.WriteByte(')')

	if f.IsConst {
		b.WriteString(" const")
	}
	if f.IsVolatile {
		b.WriteString(" volatile")
	}
	if f.IsRestrict {
		b.WriteString(" restrict")
	}
	if f.HasTrailingReturn {
		b.WriteString(" -> " + f.ReturnType.Name)
	}
	switch f.RefQualifier {
	case types.RefLValue:
		b.WriteString(" &")
	case types.RefRValue:
		b.WriteString(" &&")
	}
	if f.IsNoExcept {
		b.WriteString(" noexcept")
	}
	return b.String(), nameStart, postTemplate
}

// recordProto renders "template <class T> class Name"
func recordProto(r *types.RecordSymbol) string {
	proto := r.Type + " " + r.Name
	if len(r.TemplateParams) > 0 {
		proto = templateHeader(r.TemplateParams, true) + " " + proto
	}
	return proto
}

// inheritanceClause renders " : public A, B" for the record's bases
func inheritanceClause(bases []types.BaseRecord) string {
	if len(bases) == 0 {
		return ""
	}
	parts := make([]string, 0, len(bases))
	for _, base := range bases {
		if kw := base.Access.Keyword(); kw != "" {
			parts = append(parts, kw+" "+base.Name)
		} else {
			parts = append(parts, base.Name)
		}
	}
	return " : " + strings.Join(parts, ", ")
}
