package cxx

import (
	"strconv"
	"strings"

	"github.com/standardbeagle/cxxindex/internal/frontend"
	"github.com/standardbeagle/cxxindex/internal/types"
)

type scopeKind uint8

const (
	scopeGlobal scopeKind = iota
	scopeNamespace
	scopeRecord
)

// scope is one level of the namespace/record nesting. USRs are built by
// appending to the parent's USR, the way clang spells them.
type scope struct {
	kind       scopeKind
	name       string
	usr        string
	qualified  string // "ns::Foo", empty for global and anonymous namespaces
	anonymous  bool   // inside an anonymous namespace at any depth
	recordKind string
	parent     *scope
}

func globalScope() *scope {
	return &scope{kind: scopeGlobal, usr: "c:"}
}

func (s *scope) qualify(name string) string {
	if s.qualified == "" {
		return name
	}
	return s.qualified + "::" + name
}

func (s *scope) namespace(name string) *scope {
	child := &scope{kind: scopeNamespace, name: name, parent: s, anonymous: s.anonymous}
	if name == "" {
		child.usr = s.usr + "@aN"
		child.qualified = s.qualified
		child.anonymous = true
		return child
	}
	child.usr = s.usr + "@N@" + name
	child.qualified = s.qualify(name)
	return child
}

func (s *scope) record(kind, name, usr string) *scope {
	return &scope{
		kind:       scopeRecord,
		name:       name,
		usr:        usr,
		qualified:  s.qualify(name),
		anonymous:  s.anonymous,
		recordKind: kind,
		parent:     s,
	}
}

// recordUSR spells the USR of a struct, class or union named in this scope.
// Templates carry their parameter count; specializations their arguments.
func (s *scope) recordUSR(kind, name string, templateParams int, specialization string) string {
	tag := "@S@"
	if kind == "union" {
		tag = "@U@"
	}
	if templateParams > 0 && specialization == "" {
		tag = "@ST>" + strconv.Itoa(templateParams) + "@"
	}
	usr := s.usr + tag + name
	if specialization != "" {
		usr += ">" + specialization
	}
	return usr
}

func (s *scope) enumUSR(name string) string {
	return s.usr + "@E@" + name
}

// functionUSR includes the parameter types so that overloads differ
func (s *scope) functionUSR(name string, templateParams int, paramKeys []string, variadic bool, qualifiers string) string {
	var b strings.Builder
	b.WriteString(s.usr)
	if templateParams > 0 {
		b.WriteString("@FT@>")
		b.WriteString(strconv.Itoa(templateParams))
	} else {
		b.WriteString("@F@")
	}
	b.WriteString(name)
	b.WriteByte('#')
	b.WriteString(strings.Join(paramKeys, ","))
	if variadic {
		b.WriteString(",...")
	}
	if qualifiers != "" {
		b.WriteByte('#')
		b.WriteString(qualifiers)
	}
	return b.String()
}

func (s *scope) parentRef() frontend.Parent {
	switch s.kind {
	case scopeNamespace:
		return frontend.Parent{Kind: frontend.ParentNamespace, USR: s.usr, Name: s.name}
	case scopeRecord:
		return frontend.Parent{Kind: frontend.ParentRecord, USR: s.usr, Name: s.name}
	}
	return frontend.Parent{}
}

// defaultAccess is the access members get before any access specifier
func (s *scope) defaultAccess() types.AccessSpecifier {
	if s.recordKind == "class" {
		return types.AccessPrivate
	}
	return types.AccessPublic
}
