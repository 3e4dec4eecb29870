package cxx

import (
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/cxxindex/internal/frontend"
)

// declarator is an unwrapped declarator chain: the abstract type parts in
// the order they are written, the declared name and, for functions, the
// function_declarator node.
type declarator struct {
	parts    []string
	name     *sitter.Node
	function *sitter.Node
	pack     bool
}

func unwrapDeclarator(d *sitter.Node, src []byte) declarator {
	var out declarator
	for d != nil {
		switch d.Kind() {
		case "pointer_declarator", "abstract_pointer_declarator":
			part := "*"
			for _, c := range children(d) {
				if c.Kind() == "type_qualifier" {
					part += nodeText(c, src)
				}
			}
			out.parts = append(out.parts, part)
			d = d.ChildByFieldName("declarator")
		case "reference_declarator", "abstract_reference_declarator":
			var next *sitter.Node
			for _, c := range children(d) {
				switch t := nodeText(c, src); {
				case t == "&" || t == "&&":
					out.parts = append(out.parts, t)
				case c.IsNamed():
					next = c
				}
			}
			d = next
		case "array_declarator", "abstract_array_declarator":
			out.parts = append(out.parts, "["+collapse(nodeText(d.ChildByFieldName("size"), src))+"]")
			d = d.ChildByFieldName("declarator")
		case "parenthesized_declarator", "abstract_parenthesized_declarator":
			var next *sitter.Node
			for _, c := range children(d) {
				if c.IsNamed() {
					next = c
					break
				}
			}
			d = next
		case "init_declarator", "attributed_declarator":
			d = d.ChildByFieldName("declarator")
			if d == nil {
				return out
			}
		case "function_declarator", "abstract_function_declarator":
			out.function = d
			return out
		case "variadic_declarator":
			out.pack = true
			d = childOfKind(d, "identifier")
		default:
			out.name = d
			return out
		}
	}
	return out
}

// composeType renders a type the way clang prints it: "const Foo *",
// "T &", "int *const *", "float[3]", "Ts &&..."
func composeType(prefix, base string, parts []string, pack bool) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(base)
	sep := " "
	for _, p := range parts {
		if p[0] != '[' {
			b.WriteString(sep)
		}
		b.WriteString(p)
		sep = ""
		if r := rune(p[len(p)-1]); unicode.IsLetter(r) {
			sep = " "
		}
	}
	if pack {
		b.WriteString("...")
	}
	return b.String()
}

// cvPrefix collects the cv-qualifiers written on a declaration, wherever
// they appear relative to the type
func cvPrefix(decl *sitter.Node, src []byte) string {
	var prefix string
	for _, q := range []string{"const", "volatile"} {
		for _, c := range children(decl) {
			if c.Kind() == "type_qualifier" && nodeText(c, src) == q {
				prefix += q + " "
				break
			}
		}
	}
	return prefix
}

// spellType renders the type of decl as seen through declarator parts
func (u *unit) spellType(sc *scope, decl, typeNode *sitter.Node, d declarator, src []byte) frontend.TypeInfo {
	if typeNode == nil {
		return frontend.TypeInfo{}
	}
	prefix := cvPrefix(decl, src)
	base := u.baseSpelling(typeNode, src)
	return frontend.TypeInfo{
		Spelling: composeType(prefix, base, d.parts, d.pack),
		USR:      u.resolveType(sc, typeNode, src),
	}
}

// baseSpelling renders a type specifier. Definitions inline in a
// declaration print as their elaborated name.
func (u *unit) baseSpelling(typeNode *sitter.Node, src []byte) string {
	switch typeNode.Kind() {
	case "class_specifier", "struct_specifier", "union_specifier", "enum_specifier":
		if typeNode.ChildByFieldName("body") != nil {
			if name := typeNode.ChildByFieldName("name"); name != nil {
				return collapse(nodeText(name, src))
			}
		}
	}
	return collapse(nodeText(typeNode, src))
}

// resolveType returns the USR of the record or enum a type specifier names
func (u *unit) resolveType(sc *scope, typeNode *sitter.Node, src []byte) string {
	var name string
	switch typeNode.Kind() {
	case "type_identifier", "qualified_identifier", "template_type", "dependent_type":
		name = stripTemplateArgs(nodeText(typeNode, src))
	case "class_specifier", "struct_specifier", "union_specifier", "enum_specifier":
		name = stripTemplateArgs(nodeText(typeNode.ChildByFieldName("name"), src))
	default:
		return ""
	}
	name = strings.TrimPrefix(strings.TrimPrefix(name, "typename "), "::")
	if name == "" || u.isTemplateParam(name) {
		return ""
	}
	return u.lookupType(sc, name)
}

// lookupType searches the enclosing scopes from innermost to outermost
func (u *unit) lookupType(sc *scope, name string) string {
	for s := sc; s != nil; s = s.parent {
		if usr, ok := u.known[s.qualify(name)]; ok {
			return usr
		}
	}
	return ""
}

func (u *unit) lookupScope(sc *scope, qualifier string) *scope {
	qualifier = strings.TrimPrefix(stripTemplateArgs(qualifier), "::")
	for s := sc; s != nil; s = s.parent {
		if found, ok := u.scopes[s.qualify(qualifier)]; ok {
			return found
		}
	}
	return nil
}

func (u *unit) isTemplateParam(name string) bool {
	head := name
	if i := strings.Index(head, "::"); i >= 0 {
		head = head[:i]
	}
	for i := len(u.templateNames) - 1; i >= 0; i-- {
		if u.templateNames[i][head] {
			return true
		}
	}
	return false
}

// paramKey is the part of a function USR contributed by one parameter.
// Equivalent spellings of one type give the same key: records, enums and
// aliases key on the resolved USR, built-in types on a canonical spelling,
// an outermost array decays to a pointer, and top-level cv-qualifiers are
// dropped.
func (u *unit) paramKey(p *sitter.Node, t frontend.TypeInfo, d declarator, src []byte) string {
	if d.function != nil {
		return strings.ReplaceAll(t.Spelling, " ", "")
	}

	var base string
	if t.USR != "" {
		base = "$" + strings.TrimPrefix(t.USR, "c:")
	} else if typeNode := p.ChildByFieldName("type"); typeNode != nil {
		base = canonicalBuiltin(u.baseSpelling(typeNode, src))
	}

	parts := append([]string(nil), d.parts...)
	prefix := ""
	if n := len(parts); n > 0 {
		prefix = cvPrefix(p, src)
		switch last := parts[n-1]; last[0] {
		case '[', '*':
			parts[n-1] = "*"
		}
	}

	key := prefix + base + strings.Join(parts, "")
	if d.pack {
		key += "..."
	}
	return strings.ReplaceAll(key, " ", "")
}

// canonicalBuiltin spells an integer type the one way: "unsigned" and
// "unsigned int" are both "unsigned int", "signed long" is "long int".
// Other spellings come back collapsed but unchanged.
func canonicalBuiltin(spelling string) string {
	words := strings.Fields(spelling)
	var unsigned, signed, short, hasInt, other bool
	longs := 0
	for _, w := range words {
		switch w {
		case "unsigned":
			unsigned = true
		case "signed":
			signed = true
		case "short":
			short = true
		case "long":
			longs++
		case "int":
			hasInt = true
		default:
			other = true
		}
	}
	if !(unsigned || signed || short || hasInt || longs > 0) {
		return collapse(spelling)
	}
	if other {
		// char, double and friends keep their sign words as written
		if len(words) == 2 && words[0] == "long" && words[1] == "double" {
			return "long double"
		}
		if signed && !unsigned && len(words) == 2 && (words[1] == "char" || words[0] == "char") {
			return "signed char"
		}
		return collapse(spelling)
	}

	var out []string
	if unsigned {
		out = append(out, "unsigned")
	}
	switch {
	case short:
		out = append(out, "short")
	case longs >= 2:
		out = append(out, "long", "long")
	case longs == 1:
		out = append(out, "long")
	}
	out = append(out, "int")
	return strings.Join(out, " ")
}
