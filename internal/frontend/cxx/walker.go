package cxx

import (
	"strconv"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/cxxindex/internal/debug"
	"github.com/standardbeagle/cxxindex/internal/frontend"
	"github.com/standardbeagle/cxxindex/internal/types"
)

// member is the record body currently being walked
type member struct {
	record *frontend.RecordDecl
	scope  *scope
	access types.AccessSpecifier
}

func (m *member) accessOrNone() types.AccessSpecifier {
	if m == nil {
		return types.AccessNone
	}
	return m.access
}

func location(f *file, n *sitter.Node) frontend.Location {
	return frontend.Location{File: f.path, Line: line(n)}
}

func parseAccess(text string) types.AccessSpecifier {
	switch strings.TrimSuffix(strings.TrimSpace(text), ":") {
	case "public":
		return types.AccessPublic
	case "protected":
		return types.AccessProtected
	case "private":
		return types.AccessPrivate
	}
	return types.AccessNone
}

func (u *unit) items(f *file, node *sitter.Node, sc *scope) error {
	for _, c := range children(node) {
		if err := u.item(f, c, sc); err != nil {
			return err
		}
	}
	return nil
}

func (u *unit) item(f *file, n *sitter.Node, sc *scope) error {
	switch n.Kind() {
	case "namespace_definition":
		return u.namespace(f, n, sc)
	case "linkage_specification":
		body := n.ChildByFieldName("body")
		if body == nil {
			return nil
		}
		if body.Kind() == "declaration_list" {
			return u.items(f, body, sc)
		}
		return u.item(f, body, sc)
	case "preproc_include":
		return u.include(f, n, sc)
	case "preproc_ifdef", "preproc_if", "preproc_else", "preproc_elif", "preproc_elifdef":
		return u.items(f, n, sc)
	case "template_declaration":
		u.template(f, n, sc, nil)
	case "class_specifier", "struct_specifier", "union_specifier":
		u.record(f, n, sc, nil, n, nil, "")
	case "enum_specifier":
		u.enum(f, n, sc, nil, n)
	case "function_definition", "declaration":
		u.declaration(f, n, sc, nil, n, nil)
	case "type_definition":
		u.typedef(f, n, sc, nil)
	case "alias_declaration":
		u.alias(f, n, sc)
	}
	return nil
}

func (u *unit) namespace(f *file, n *sitter.Node, sc *scope) error {
	nameNode := n.ChildByFieldName("name")
	inner := sc
	if nameNode == nil {
		inner = u.enterNamespace(f, n, sc, "")
	} else {
		for _, name := range strings.Split(collapse(nodeText(nameNode, f.src)), "::") {
			name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), "inline "))
			if name == "" {
				continue
			}
			inner = u.enterNamespace(f, nameNode, inner, name)
		}
	}
	return u.items(f, n.ChildByFieldName("body"), inner)
}

func (u *unit) enterNamespace(f *file, at *sitter.Node, sc *scope, name string) *scope {
	ns := sc.namespace(name)
	if name != "" {
		u.scopes[ns.qualified] = ns
	}
	u.visitor.VisitNamespace(&frontend.NamespaceDecl{
		Decl: frontend.Decl{
			USR:                  ns.usr,
			Name:                 name,
			Location:             location(f, at),
			InAnonymousNamespace: sc.anonymous,
			Parent:               sc.parentRef(),
		},
		Anonymous: name == "",
	})
	return ns
}

// record handles a class, struct or union specifier and returns its USR.
// m is set for records nested in another record.
func (u *unit) record(f *file, n *sitter.Node, sc *scope, m *member, anchor *sitter.Node, tparams []types.TemplateParam, typedefName string) string {
	kind := strings.TrimSuffix(n.Kind(), "_specifier")
	body := n.ChildByFieldName("body")
	nameNode := n.ChildByFieldName("name")

	target := sc
	name, specialization := "", ""
	if nameNode != nil {
		text := collapse(nodeText(nameNode, f.src))
		if nameNode.Kind() == "qualified_identifier" {
			qual, last := splitQualified(text)
			if s := u.lookupScope(sc, qual); s != nil {
				target = s
			}
			text = last
		}
		name = text
		if i := strings.IndexByte(text, '<'); i >= 0 {
			name = strings.TrimSpace(text[:i])
			specialization = strings.TrimSuffix(strings.TrimSpace(text[i+1:]), ">")
		}
	}

	var usr string
	switch {
	case name != "":
		usr = target.recordUSR(kind, name, len(tparams), specialization)
		if specialization == "" {
			u.known[target.qualify(name)] = usr
		}
	case typedefName != "":
		usr = target.usr + "@SA@" + typedefName
		u.known[target.qualify(typedefName)] = usr
	}

	at := nameNode
	if at == nil {
		at = n
	}
	decl := &frontend.RecordDecl{
		Decl: frontend.Decl{
			USR:                  usr,
			Name:                 name,
			Location:             location(f, at),
			Access:               m.accessOrNone(),
			InAnonymousNamespace: target.anonymous,
			Parent:               target.parentRef(),
		},
		Kind:           kind,
		IsDefinition:   body != nil,
		TypedefName:    typedefName,
		TemplateParams: tparams,
	}
	if body == nil {
		u.visitor.VisitRecord(decl)
		return usr
	}
	if anchor != nil {
		decl.Comment = leadingComment(anchor, f.src)
	}

	scopeName := name
	if scopeName == "" {
		scopeName = typedefName
	}
	rs := target.record(kind, scopeName, usr)
	if scopeName != "" && specialization == "" {
		u.scopes[rs.qualified] = rs
	}

	decl.Bases = u.bases(f, n, target, kind)
	u.members(f, body, &member{record: decl, scope: rs, access: rs.defaultAccess()})
	u.visitor.VisitRecord(decl)
	return usr
}

func (u *unit) bases(f *file, n *sitter.Node, sc *scope, kind string) []frontend.BaseSpec {
	clause := childOfKind(n, "base_class_clause")
	if clause == nil {
		return nil
	}
	def := types.AccessPublic
	if kind == "class" {
		def = types.AccessPrivate
	}

	var out []frontend.BaseSpec
	access := def
	for _, c := range children(clause) {
		switch c.Kind() {
		case "access_specifier":
			access = parseAccess(nodeText(c, f.src))
		case ",":
			access = def
		case "type_identifier", "qualified_identifier", "template_type":
			plain := strings.TrimPrefix(stripTemplateArgs(nodeText(c, f.src)), "::")
			inStd := strings.HasPrefix(plain, "std::")
			display := lastComponent(plain)
			if inStd {
				display = "std::" + display
			}
			var usr string
			if !u.isTemplateParam(plain) {
				usr = u.lookupType(sc, plain)
			}
			out = append(out, frontend.BaseSpec{USR: usr, Name: display, Access: access, InStdNamespace: inStd})
		}
	}
	return out
}

func (u *unit) members(f *file, node *sitter.Node, m *member) {
	for _, c := range children(node) {
		switch c.Kind() {
		case "access_specifier":
			m.access = parseAccess(nodeText(c, f.src))
		case "field_declaration", "function_definition", "declaration":
			u.declaration(f, c, m.scope, m, c, nil)
		case "template_declaration":
			u.template(f, c, m.scope, m)
		case "class_specifier", "struct_specifier", "union_specifier":
			u.record(f, c, m.scope, m, c, nil, "")
		case "enum_specifier":
			u.enum(f, c, m.scope, m, c)
		case "type_definition":
			u.typedef(f, c, m.scope, m)
		case "alias_declaration":
			u.alias(f, c, m.scope)
		case "preproc_ifdef", "preproc_if", "preproc_else", "preproc_elif", "preproc_elifdef":
			u.members(f, c, m)
		}
	}
}

// declaratorNodes returns the declarators of a declaration, skipping the
// type and anything after a member initializer's '='
func declaratorNodes(n, typeNode *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range children(n) {
		k := c.Kind()
		if k == "=" || k == "bitfield_clause" {
			break
		}
		if !c.IsNamed() || sameNode(c, typeNode) {
			continue
		}
		switch {
		case strings.HasSuffix(k, "_declarator"),
			k == "identifier", k == "field_identifier", k == "type_identifier", k == "qualified_identifier",
			k == "destructor_name", k == "operator_name", k == "template_function":
			out = append(out, c)
		}
	}
	return out
}

func isAnonymousSpecifier(n *sitter.Node) bool {
	switch n.Kind() {
	case "class_specifier", "struct_specifier", "union_specifier", "enum_specifier":
		return n.ChildByFieldName("name") == nil && n.ChildByFieldName("body") != nil
	}
	return false
}

// declaration handles function definitions, declarations and member
// declarations, including records and enums defined inline in them
func (u *unit) declaration(f *file, n *sitter.Node, sc *scope, m *member, anchor *sitter.Node, tparams []types.TemplateParam) {
	typeNode := n.ChildByFieldName("type")
	decls := declaratorNodes(n, typeNode)

	anonymous := false
	if typeNode != nil {
		var typeAnchor *sitter.Node
		if len(decls) == 0 {
			typeAnchor = anchor
		}
		hasBody := typeNode.ChildByFieldName("body") != nil
		switch typeNode.Kind() {
		case "class_specifier", "struct_specifier", "union_specifier":
			if hasBody || len(decls) == 0 {
				u.record(f, typeNode, sc, m, typeAnchor, tparams, "")
			}
		case "enum_specifier":
			if hasBody || len(decls) == 0 {
				u.enum(f, typeNode, sc, m, typeAnchor)
			}
		}
		anonymous = isAnonymousSpecifier(typeNode)
	}

	for _, dn := range decls {
		d := unwrapDeclarator(dn, f.src)
		if d.function != nil {
			u.function(f, n, sc, m, anchor, tparams, d)
			continue
		}
		if m != nil && n.Kind() == "field_declaration" {
			u.field(f, n, typeNode, d, m, anonymous)
		}
	}

	if m != nil && len(decls) == 0 && anonymous && typeNode.Kind() != "enum_specifier" {
		m.record.Fields = append(m.record.Fields, frontend.FieldDecl{
			Type:    frontend.TypeInfo{Spelling: anonymousMemberType, Anonymous: true},
			Access:  m.access,
			Comment: memberComment(n, f.src),
		})
	}
}

const anonymousMemberType = "anonymous struct/union"

func (u *unit) field(f *file, n, typeNode *sitter.Node, d declarator, m *member, anonymous bool) {
	if d.name == nil {
		return
	}
	static := false
	for _, c := range children(n) {
		if c.Kind() == "storage_class_specifier" && nodeText(c, f.src) == "static" {
			static = true
		}
	}

	var t frontend.TypeInfo
	if anonymous {
		t = frontend.TypeInfo{Spelling: anonymousMemberType, Anonymous: true}
	} else {
		t = u.spellType(m.scope, n, typeNode, d, f.src)
	}

	def := n.ChildByFieldName("default_value")
	if def == nil {
		if init := childOfKind(n, "initializer_list"); init != nil {
			def = init
		}
	}
	m.record.Fields = append(m.record.Fields, frontend.FieldDecl{
		Name:         nodeText(d.name, f.src),
		Type:         t,
		DefaultValue: collapse(nodeText(def, f.src)),
		Comment:      memberComment(n, f.src),
		Access:       m.access,
		IsStatic:     static,
	})
}

var specifierWords = map[string]bool{
	"static": true, "extern": true, "inline": true, "virtual": true,
	"constexpr": true, "consteval": true, "explicit": true,
}

// specifiers collects the declaration specifier keywords written before
// the declarator
func specifiers(n *sitter.Node, src []byte) map[string]bool {
	out := make(map[string]bool)
	for _, c := range children(n) {
		text := nodeText(c, src)
		if specifierWords[text] {
			out[text] = true
			continue
		}
		// explicit(bool) and similar wrappers
		for _, gc := range children(c) {
			if t := nodeText(gc, src); specifierWords[t] && !strings.HasSuffix(c.Kind(), "declarator") {
				out[t] = true
			}
		}
	}
	return out
}

func isOperatorName(name string) bool {
	if !strings.HasPrefix(name, "operator") {
		return false
	}
	rest := strings.TrimPrefix(name, "operator")
	return rest == "" || !(rest[0] == '_' || rest[0] >= 'a' && rest[0] <= 'z' || rest[0] >= 'A' && rest[0] <= 'Z' || rest[0] >= '0' && rest[0] <= '9') || strings.HasPrefix(rest, " ")
}

// function reports a function or method declaration. d is the outer
// declarator chain, which carries the pointer and reference parts of the
// return type.
func (u *unit) function(f *file, n *sitter.Node, sc *scope, m *member, anchor *sitter.Node, tparams []types.TemplateParam, d declarator) {
	fn := d.function
	inner := unwrapDeclarator(fn.ChildByFieldName("declarator"), f.src)
	nameNode := inner.name
	if nameNode == nil {
		return
	}

	target := sc
	name := collapse(nodeText(nameNode, f.src))
	if nameNode.Kind() == "qualified_identifier" {
		qual, last := splitQualified(name)
		target = u.lookupScope(sc, qual)
		if target == nil {
			debug.LogFrontend("%s:%d: no enclosing scope %q for %s\n", f.path, line(nameNode), qual, last)
			return
		}
		name = last
		if target.kind == scopeRecord && strings.Contains(target.usr, "@ST>") {
			// template <class T> void Foo<T>::bar(): the parameters are the class's
			tparams = nil
		}
	}
	if nameNode.Kind() == "template_function" || (strings.Contains(name, "<") && !isOperatorName(name)) {
		name = stripTemplateArgs(name)
	}

	decl := &frontend.FunctionDecl{TemplateParams: tparams}
	decl.IsMethod = target.kind == scopeRecord
	decl.IsDtor = strings.HasPrefix(name, "~")
	decl.IsOverloadedOperator = isOperatorName(name)
	typeNode := n.ChildByFieldName("type")
	decl.IsCtor = decl.IsMethod && typeNode == nil && !decl.IsDtor && !decl.IsOverloadedOperator && name == target.name

	spec := specifiers(n, f.src)
	decl.IsInline = spec["inline"]
	decl.IsVirtual = spec["virtual"]
	decl.IsConstexpr = spec["constexpr"]
	decl.IsConsteval = spec["consteval"]
	switch {
	case spec["static"]:
		decl.StorageClass = types.StorageStatic
	case spec["extern"]:
		decl.StorageClass = types.StorageExtern
	}
	decl.IsExplicitlyDefaulted = childOfKind(n, "default_method_clause") != nil
	decl.HasBody = n.ChildByFieldName("body") != nil || decl.IsExplicitlyDefaulted || childOfKind(n, "delete_method_clause") != nil

	var trailing *sitter.Node
	for _, c := range children(fn) {
		text := nodeText(c, f.src)
		switch c.Kind() {
		case "type_qualifier":
			switch text {
			case "const":
				decl.IsConst = true
			case "volatile":
				decl.IsVolatile = true
			case "restrict", "__restrict", "__restrict__":
				decl.IsRestrict = true
			}
		case "ref_qualifier", "&", "&&":
			switch text {
			case "&":
				decl.RefQualifier = types.RefLValue
			case "&&":
				decl.RefQualifier = types.RefRValue
			}
		case "noexcept":
			decl.IsNoExcept = strings.ReplaceAll(text, " ", "") != "noexcept(false)"
		case "trailing_return_type":
			trailing = c
		}
	}

	var keys []string
	for _, p := range children(fn.ChildByFieldName("parameters")) {
		switch p.Kind() {
		case "parameter_declaration", "optional_parameter_declaration", "variadic_parameter_declaration":
			pd := unwrapDeclarator(p.ChildByFieldName("declarator"), f.src)
			var t frontend.TypeInfo
			if pd.function != nil {
				t = frontend.TypeInfo{Spelling: collapse(strings.SplitN(nodeText(p, f.src), "=", 2)[0])}
			} else {
				t = u.spellType(target, p, p.ChildByFieldName("type"), pd, f.src)
			}
			param := frontend.ParamDecl{
				Type:         t,
				DefaultValue: collapse(nodeText(p.ChildByFieldName("default_value"), f.src)),
			}
			if pd.name != nil && pd.name.Kind() == "identifier" {
				param.Name = nodeText(pd.name, f.src)
			}
			decl.Params = append(decl.Params, param)
			keys = append(keys, u.paramKey(p, t, pd, f.src))
		case "...":
			decl.IsVariadic = true
		}
	}
	if len(decl.Params) == 1 && decl.Params[0].Name == "" && decl.Params[0].Type.Spelling == "void" {
		decl.Params, keys = nil, nil
	}

	switch {
	case trailing != nil:
		decl.HasTrailingReturn = true
		if td := childOfKind(trailing, "type_descriptor"); td != nil {
			decl.ReturnType = u.spellType(target, td, td.ChildByFieldName("type"), unwrapDeclarator(td.ChildByFieldName("declarator"), f.src), f.src)
		}
	case typeNode != nil:
		decl.ReturnType = u.spellType(target, n, typeNode, d, f.src)
	}

	usr := target.functionUSR(name, len(tparams), keys, decl.IsVariadic, qualifierKey(decl))

	access := types.AccessNone
	inClass := m != nil && target == m.scope
	switch {
	case inClass:
		access = m.access
		u.memberAccess[usr] = access
	case decl.IsMethod:
		access = types.AccessPublic
		if a, ok := u.memberAccess[usr]; ok {
			access = a
		}
	}

	decl.Decl = frontend.Decl{
		USR:                  usr,
		Name:                 name,
		Location:             location(f, nameNode),
		Comment:              leadingComment(anchor, f.src),
		Access:               access,
		InAnonymousNamespace: target.anonymous,
		Parent:               target.parentRef(),
	}

	if inClass {
		m.record.Methods = append(m.record.Methods, frontend.MethodRef{
			USR:                  usr,
			Location:             decl.Location,
			Access:               access,
			IsOverloadedOperator: decl.IsOverloadedOperator,
			InAnonymousNamespace: decl.InAnonymousNamespace,
		})
	}
	u.visitor.VisitFunction(decl)
}

// qualifierKey encodes cv and ref qualifiers the way clang's USRs do:
// a bit mask (const 1, restrict 2, volatile 4) then & or &&
func qualifierKey(d *frontend.FunctionDecl) string {
	mask := 0
	if d.IsConst {
		mask |= 1
	}
	if d.IsRestrict {
		mask |= 2
	}
	if d.IsVolatile {
		mask |= 4
	}
	var key string
	if mask != 0 {
		key = strconv.Itoa(mask)
	}
	switch d.RefQualifier {
	case types.RefLValue:
		key += "&"
	case types.RefRValue:
		key += "&&"
	}
	return key
}

// template handles a template_declaration: the parameters apply to the
// single entity it declares, and the comment above "template" is that
// entity's comment
func (u *unit) template(f *file, n *sitter.Node, sc *scope, m *member) {
	params := n.ChildByFieldName("parameters")
	tparams := templateParams(params, f.src)

	names := make(map[string]bool, len(tparams))
	for _, p := range tparams {
		if p.Name != "" {
			names[p.Name] = true
		}
	}
	u.templateNames = append(u.templateNames, names)
	defer func() { u.templateNames = u.templateNames[:len(u.templateNames)-1] }()

	for _, c := range children(n) {
		if sameNode(c, params) {
			continue
		}
		switch c.Kind() {
		case "class_specifier", "struct_specifier", "union_specifier":
			u.record(f, c, sc, m, n, tparams, "")
		case "function_definition", "declaration", "field_declaration":
			u.declaration(f, c, sc, m, n, tparams)
		case "template_declaration":
			u.template(f, c, sc, m)
		}
	}
}

func templateParams(list *sitter.Node, src []byte) []types.TemplateParam {
	var out []types.TemplateParam
	for _, c := range children(list) {
		var p types.TemplateParam
		switch c.Kind() {
		case "type_parameter_declaration", "optional_type_parameter_declaration", "variadic_type_parameter_declaration":
			p.Kind = types.TemplateTypeParameter
			for _, gc := range children(c) {
				switch gc.Kind() {
				case "typename":
					p.IsTypename = true
				case "...":
					p.IsParameterPack = true
				case "type_identifier":
					if p.Name == "" {
						p.Name = nodeText(gc, src)
					}
				}
			}
			if name := c.ChildByFieldName("name"); name != nil {
				p.Name = nodeText(name, src)
			}
			p.DefaultValue = collapse(nodeText(c.ChildByFieldName("default_type"), src))
		case "parameter_declaration", "optional_parameter_declaration", "variadic_parameter_declaration":
			p.Kind = types.NonTypeTemplate
			d := unwrapDeclarator(c.ChildByFieldName("declarator"), src)
			p.IsParameterPack = d.pack
			d.pack = false
			p.Type = composeType(cvPrefix(c, src), collapse(nodeText(c.ChildByFieldName("type"), src)), d.parts, false)
			if d.name != nil {
				p.Name = nodeText(d.name, src)
			}
			p.DefaultValue = collapse(nodeText(c.ChildByFieldName("default_value"), src))
		case "template_template_parameter_declaration":
			p.Kind = types.TemplateTemplateType
			inner := childOfKind(c, "type_parameter_declaration", "variadic_type_parameter_declaration", "optional_type_parameter_declaration")
			if inner != nil {
				for _, gc := range children(inner) {
					switch gc.Kind() {
					case "...":
						p.IsParameterPack = true
					case "type_identifier":
						p.Name = nodeText(gc, src)
					}
				}
				p.DefaultValue = collapse(nodeText(inner.ChildByFieldName("default_type"), src))
			}
			p.Type = collapse(nodeText(c, src))
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

func (u *unit) enum(f *file, n *sitter.Node, sc *scope, m *member, anchor *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	name := collapse(nodeText(nameNode, f.src))
	target := sc
	if nameNode != nil && nameNode.Kind() == "qualified_identifier" {
		qual, last := splitQualified(name)
		if s := u.lookupScope(sc, qual); s != nil {
			target = s
		}
		name = last
	}
	var usr string
	if name != "" {
		usr = target.enumUSR(name)
		u.known[target.qualify(name)] = usr
	}

	decl := &frontend.EnumDecl{}
	for _, c := range children(n) {
		switch c.Kind() {
		case "class":
			decl.Scoped = true
		case "struct":
			decl.Scoped = true
			decl.ScopedWithStruct = true
		}
	}

	at := nameNode
	if at == nil {
		at = n
	}
	decl.Decl = frontend.Decl{
		USR:                  usr,
		Name:                 name,
		Location:             location(f, at),
		Access:               m.accessOrNone(),
		InAnonymousNamespace: target.anonymous,
		Parent:               target.parentRef(),
	}

	body := n.ChildByFieldName("body")
	decl.IsDefinition = body != nil
	if body != nil {
		if anchor != nil {
			decl.Comment = leadingComment(anchor, f.src)
		}
		values := make(map[string]int64)
		next := int64(0)
		for _, c := range children(body) {
			if c.Kind() != "enumerator" {
				continue
			}
			e := frontend.EnumeratorDecl{
				Name:    nodeText(c.ChildByFieldName("name"), f.src),
				Value:   next,
				Comment: memberComment(c, f.src),
			}
			if valueNode := c.ChildByFieldName("value"); valueNode != nil {
				if v, ok := evalConst(valueNode, f.src, values); ok {
					e.Value = v
				} else {
					debug.LogFrontend("%s:%d: cannot fold value of %s\n", f.path, line(c), e.Name)
				}
			}
			values[e.Name] = e.Value
			next = e.Value + 1
			decl.Enumerators = append(decl.Enumerators, e)
		}
	}
	u.visitor.VisitEnum(decl)
}

// typedef registers alias names. typedef struct {...} Name gives the
// anonymous record its name.
func (u *unit) typedef(f *file, n *sitter.Node, sc *scope, m *member) {
	typeNode := n.ChildByFieldName("type")
	if typeNode == nil {
		return
	}
	decls := declaratorNodes(n, typeNode)
	var aliases []string
	for _, dn := range decls {
		d := unwrapDeclarator(dn, f.src)
		if d.name != nil && len(d.parts) == 0 && d.function == nil {
			aliases = append(aliases, nodeText(d.name, f.src))
		}
	}

	var usr string
	switch typeNode.Kind() {
	case "class_specifier", "struct_specifier", "union_specifier":
		if typeNode.ChildByFieldName("body") != nil || len(decls) == 0 {
			typedefName := ""
			if typeNode.ChildByFieldName("name") == nil && len(aliases) > 0 {
				typedefName = aliases[0]
			}
			usr = u.record(f, typeNode, sc, m, n, nil, typedefName)
		} else {
			usr = u.resolveType(sc, typeNode, f.src)
		}
	case "enum_specifier":
		if typeNode.ChildByFieldName("body") != nil {
			u.enum(f, typeNode, sc, m, n)
		}
		usr = u.resolveType(sc, typeNode, f.src)
	default:
		usr = u.resolveType(sc, typeNode, f.src)
	}
	if usr == "" {
		return
	}
	for _, a := range aliases {
		if _, ok := u.known[sc.qualify(a)]; !ok {
			u.known[sc.qualify(a)] = usr
		}
	}
}

// alias registers using Name = Type so that uses of Name link to Type
func (u *unit) alias(f *file, n *sitter.Node, sc *scope) {
	name := nodeText(n.ChildByFieldName("name"), f.src)
	td := n.ChildByFieldName("type")
	if name == "" || td == nil {
		return
	}
	typeNode := td
	if td.Kind() == "type_descriptor" {
		typeNode = td.ChildByFieldName("type")
	}
	if typeNode == nil {
		return
	}
	if usr := u.resolveType(sc, typeNode, f.src); usr != "" {
		u.known[sc.qualify(name)] = usr
	}
}
