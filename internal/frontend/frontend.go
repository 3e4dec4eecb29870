// Package frontend defines the boundary between the C++ parser and the fact
// collectors. A Frontend parses one translation unit and reports every
// declaration it meets to a Visitor, in source order. The same logical
// declaration may be reported many times across translation units.
package frontend

import (
	"context"

	"github.com/standardbeagle/cxxindex/internal/types"
	"github.com/standardbeagle/cxxindex/internal/vfs"
)

// Invocation describes the compilation of one translation unit
type Invocation struct {
	// File is the main source file, relative to Directory or absolute
	File string
	// Directory is the working directory of the compilation
	Directory string
	// Args is the adjusted command line; Args[0] is the compiler
	Args []string
}

// Frontend parses translation units. Implementations must be safe for
// concurrent use by multiple workers, each passing its own vfs.View.
type Frontend interface {
	Parse(ctx context.Context, inv Invocation, fs *vfs.View, v Visitor) error
}

// Visitor receives declaration events. Calls for one translation unit come
// from a single goroutine.
type Visitor interface {
	VisitFunction(d *FunctionDecl)
	VisitRecord(d *RecordDecl)
	VisitEnum(d *EnumDecl)
	VisitNamespace(d *NamespaceDecl)
}

type ParentKind uint8

const (
	ParentNone ParentKind = iota
	ParentNamespace
	ParentRecord
)

// Parent is the innermost enclosing namespace or record
type Parent struct {
	Kind ParentKind
	USR  string
	Name string
}

// Location is where a declaration's name appears. File is absolute and
// canonical; empty for compiler-synthesized declarations.
type Location struct {
	File string
	Line int
}

// Decl holds the facts shared by every declaration kind
type Decl struct {
	// USR is the unified symbol reference: identical for every
	// redeclaration of the same entity. Empty when it cannot be computed.
	USR      string
	Name     string
	Location Location
	Comment  *Comment
	Access   types.AccessSpecifier

	Implicit             bool
	InAnonymousNamespace bool
	Parent               Parent
}

// TypeInfo is a type as written plus the USR of the record or enum it
// names once pointers, references, cv-qualifiers and template arguments are
// stripped. USR is empty for built-in and unknown types.
type TypeInfo struct {
	Spelling string
	USR      string
	// Anonymous is set for members whose type is an unnamed struct or union
	Anonymous bool
}

type ParamDecl struct {
	Name         string
	Type         TypeInfo
	DefaultValue string
}

type FunctionDecl struct {
	Decl

	IsMethod              bool
	IsCtor                bool
	IsDtor                bool
	IsOverloadedOperator  bool
	IsExplicitlyDefaulted bool
	HasBody               bool

	IsConstexpr       bool
	IsConsteval       bool
	IsInline          bool
	IsConst           bool
	IsVolatile        bool
	IsRestrict        bool
	IsVirtual         bool
	IsVariadic        bool
	IsNoExcept        bool
	HasTrailingReturn bool

	StorageClass types.StorageClass
	RefQualifier types.RefQualifier

	ReturnType     TypeInfo
	Params         []ParamDecl
	TemplateParams []types.TemplateParam
}

// MethodRef is a member function as seen from its record
type MethodRef struct {
	USR                  string
	Location             Location
	Access               types.AccessSpecifier
	Implicit             bool
	IsOverloadedOperator bool
	InAnonymousNamespace bool
}

type BaseSpec struct {
	USR            string
	Name           string
	Access         types.AccessSpecifier
	InStdNamespace bool
}

type FieldDecl struct {
	Name         string
	Type         TypeInfo
	DefaultValue string
	Comment      *Comment
	Access       types.AccessSpecifier
	IsStatic     bool
}

type RecordDecl struct {
	Decl

	Kind         string // struct, class or union
	IsDefinition bool
	// TypedefName names an anonymous record declared as typedef struct {...} Name
	TypedefName string

	Methods        []MethodRef
	Bases          []BaseSpec
	Fields         []FieldDecl
	TemplateParams []types.TemplateParam
}

type EnumeratorDecl struct {
	Name    string
	Value   int64
	Comment *Comment
}

type EnumDecl struct {
	Decl

	Scoped           bool
	ScopedWithStruct bool
	IsDefinition     bool
	Enumerators      []EnumeratorDecl
}

type NamespaceDecl struct {
	Decl
	Anonymous bool
}
