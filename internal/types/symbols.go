package types

import "fmt"

// AccessSpecifier is the C++ access level of a member or base
type AccessSpecifier uint8

const (
	AccessNone AccessSpecifier = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

var accessNames = [...]string{"none", "public", "protected", "private"}

func (a AccessSpecifier) String() string {
	if int(a) < len(accessNames) {
		return accessNames[a]
	}
	return fmt.Sprintf("AccessSpecifier(%d)", a)
}

// Keyword returns the keyword as written in source, empty for AccessNone
func (a AccessSpecifier) Keyword() string {
	if a == AccessNone {
		return ""
	}
	return a.String()
}

func (a AccessSpecifier) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccessSpecifier) UnmarshalText(text []byte) error {
	for i, name := range accessNames {
		if name == string(text) {
			*a = AccessSpecifier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown access specifier %q", text)
}

// StorageClass of a function declaration
type StorageClass uint8

const (
	StorageNone StorageClass = iota
	StorageStatic
	StorageExtern
)

var storageNames = [...]string{"none", "static", "extern"}

func (s StorageClass) String() string {
	if int(s) < len(storageNames) {
		return storageNames[s]
	}
	return fmt.Sprintf("StorageClass(%d)", s)
}

func (s StorageClass) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *StorageClass) UnmarshalText(text []byte) error {
	for i, name := range storageNames {
		if name == string(text) {
			*s = StorageClass(i)
			return nil
		}
	}
	return fmt.Errorf("unknown storage class %q", text)
}

// RefQualifier is the ref-qualifier of a member function (& or &&)
type RefQualifier uint8

const (
	RefNone RefQualifier = iota
	RefLValue
	RefRValue
)

var refNames = [...]string{"none", "lvalue", "rvalue"}

func (r RefQualifier) String() string {
	if int(r) < len(refNames) {
		return refNames[r]
	}
	return fmt.Sprintf("RefQualifier(%d)", r)
}

func (r RefQualifier) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RefQualifier) UnmarshalText(text []byte) error {
	for i, name := range refNames {
		if name == string(text) {
			*r = RefQualifier(i)
			return nil
		}
	}
	return fmt.Errorf("unknown ref qualifier %q", text)
}

// TemplateParamKind distinguishes the three kinds of template parameter
type TemplateParamKind uint8

const (
	TemplateTypeParameter TemplateParamKind = iota
	NonTypeTemplate
	TemplateTemplateType
)

var templateKindNames = [...]string{"type", "non-type", "template"}

func (k TemplateParamKind) String() string {
	if int(k) < len(templateKindNames) {
		return templateKindNames[k]
	}
	return fmt.Sprintf("TemplateParamKind(%d)", k)
}

func (k TemplateParamKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TemplateParamKind) UnmarshalText(text []byte) error {
	for i, name := range templateKindNames {
		if name == string(text) {
			*k = TemplateParamKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown template parameter kind %q", text)
}

// TypeRef is a possible link to another indexed symbol. ID is zero when the
// referenced type is not indexed; Name is always the display text.
type TypeRef struct {
	ID   SymbolID `json:"id"`
	Name string   `json:"name"`
}

type TemplateParam struct {
	Kind            TemplateParamKind `json:"kind"`
	Name            string            `json:"name"`
	Type            string            `json:"type,omitempty"`
	DocComment      string            `json:"docComment,omitempty"`
	DefaultValue    string            `json:"defaultValue,omitempty"`
	IsParameterPack bool              `json:"isParameterPack,omitempty"`
	IsTypename      bool              `json:"isTypename,omitempty"`
}

type FunctionParam struct {
	Name         string  `json:"name"`
	Type         TypeRef `json:"type"`
	DocComment   string  `json:"docComment,omitempty"`
	DefaultValue string  `json:"defaultValue,omitempty"`
}

type MemberVariable struct {
	Name         string          `json:"name"`
	Type         TypeRef         `json:"type"`
	DefaultValue string          `json:"defaultValue,omitempty"`
	DocComment   string          `json:"docComment,omitempty"`
	Access       AccessSpecifier `json:"access"`
	IsStatic     bool            `json:"isStatic,omitempty"`
}

// BaseRecord is one entry of a record's base list. Name is kept because
// private or third-party bases may have no indexed ID.
type BaseRecord struct {
	ID     SymbolID        `json:"id"`
	Access AccessSpecifier `json:"access"`
	Name   string          `json:"name"`
}

// Symbol holds the fields shared by every symbol category
type Symbol struct {
	ID                SymbolID `json:"id"`
	Name              string   `json:"name"`
	BriefComment      string   `json:"briefComment,omitempty"`
	DocComment        string   `json:"docComment,omitempty"`
	File              string   `json:"file"`
	Line              int      `json:"line"`
	ParentNamespaceID SymbolID `json:"parentNamespaceID"`
}

// Base gives generic code access to the shared fields of any category
func (s *Symbol) Base() *Symbol {
	return s
}

type FunctionSymbol struct {
	Symbol

	IsRecordMember    bool `json:"isRecordMember"`
	IsConstexpr       bool `json:"isConstexpr"`
	IsConsteval       bool `json:"isConsteval"`
	IsInline          bool `json:"isInline"`
	IsConst           bool `json:"isConst"`
	IsVolatile        bool `json:"isVolatile"`
	IsRestrict        bool `json:"isRestrict"`
	IsVirtual         bool `json:"isVirtual"`
	IsVariadic        bool `json:"isVariadic"`
	IsNoExcept        bool `json:"isNoExcept"`
	HasTrailingReturn bool `json:"hasTrailingReturn"`
	IsCtorOrDtor      bool `json:"isCtorOrDtor"`

	// Byte offsets into Proto: where the name starts and where the template
	// header ends. Renderers use them to highlight the name.
	NameStart    int `json:"nameStart"`
	PostTemplate int `json:"postTemplate"`

	Access       AccessSpecifier `json:"access"`
	StorageClass StorageClass    `json:"storageClass"`
	RefQualifier RefQualifier    `json:"refQualifier"`

	Proto                string          `json:"proto"`
	ReturnType           TypeRef         `json:"returnType"`
	ReturnTypeDocComment string          `json:"returnTypeDocComment,omitempty"`
	Params               []FunctionParam `json:"params"`
	TemplateParams       []TemplateParam `json:"templateParams,omitempty"`
}

// URL is the rendering-safe file name for this function's page
func (f *FunctionSymbol) URL() string {
	return "f" + f.ID.Hex() + ".html"
}

type RecordSymbol struct {
	Symbol

	Type           string           `json:"type"` // struct, class or union
	Proto          string           `json:"proto"`
	Vars           []MemberVariable `json:"vars"`
	MethodIDs      []SymbolID       `json:"methodIDs"`
	BaseRecords    []BaseRecord     `json:"baseRecords"`
	TemplateParams []TemplateParam  `json:"templateParams,omitempty"`
}

func (r *RecordSymbol) URL() string {
	return "r" + r.ID.Hex() + ".html"
}

type EnumMember struct {
	Name       string `json:"name"`
	Value      int64  `json:"value"`
	DocComment string `json:"docComment,omitempty"`
}

type EnumSymbol struct {
	Symbol

	Type    string       `json:"type"` // enum, enum class or enum struct
	Members []EnumMember `json:"members"`
}

func (e *EnumSymbol) URL() string {
	return "e" + e.ID.Hex() + ".html"
}

// NamespaceSymbol child lists are filled by namespace resolution only
type NamespaceSymbol struct {
	Symbol

	Records    []SymbolID `json:"records"`
	Namespaces []SymbolID `json:"namespaces"`
	Enums      []SymbolID `json:"enums"`
}

func (n *NamespaceSymbol) URL() string {
	return "n" + n.ID.Hex() + ".html"
}
