// Package oracle defines the semantic type-checking service that the resolver
// consumes. A Checker answers questions about a fully-built program: what a
// symbol's type is, what properties and signatures a type has, what an alias
// points to. Implementations must not be mutated by callers.
package oracle

// Checker is the read-only query surface of a type checker bound to one
// program instance.
type Checker interface {
	// ExportsOfModule returns the exported symbols of a source file, in
	// declaration order. Aliases (export specifiers) are returned unresolved.
	ExportsOfModule(fileName string) ([]*Symbol, error)
	// ExportsOfSymbol returns the members exported by a namespace, module or
	// enum symbol.
	ExportsOfSymbol(sym *Symbol) []*Symbol
	// AliasedSymbol follows an alias chain to its final target. Returns nil
	// when the target cannot be resolved.
	AliasedSymbol(sym *Symbol) *Symbol

	TypeOfSymbol(sym *Symbol) *Type
	DeclaredTypeOfSymbol(sym *Symbol) *Type
	// DeclaredTypeParameters returns the type parameters declared by a generic
	// class, interface or type alias.
	DeclaredTypeParameters(sym *Symbol) []*Type

	PropertiesOfType(t *Type) []*Symbol
	SignaturesOfType(t *Type, kind SignatureKind) []*Signature
	IndexInfosOfType(t *Type) []*IndexInfo
	TypeArguments(t *Type) []*Type
	ReturnTypeOfSignature(sig *Signature) *Type

	ConstraintOfTypeParameter(t *Type) *Type
	DefaultFromTypeParameter(t *Type) *Type

	IsArrayType(t *Type) bool
	IsTupleType(t *Type) bool
	IsTypeIdenticalTo(a, b *Type) bool
	TypeToString(t *Type) string

	// IsExternalFile reports whether a file lies outside the project's source
	// boundary (dependency packages, bundled lib declarations).
	IsExternalFile(fileName string) bool
}

// TypeID identifies a type within one checker instance.
type TypeID uint64

// SymbolID identifies a symbol within one checker instance.
type SymbolID uint64

// Type is a semantic type as reported by a Checker.
type Type struct {
	ID          TypeID
	Flags       TypeFlags
	ObjectFlags ObjectFlags
	// Symbol is the declaring symbol (interface, class, type literal, enum).
	Symbol *Symbol
	// AliasSymbol is set when the type was reached through a type alias.
	AliasSymbol        *Symbol
	AliasTypeArguments []*Type
	// Value holds the literal value: string, float64, bool, or the decimal
	// text of a bigint.
	Value any
	// Types holds union and intersection members.
	Types []*Type
}

func (t *Type) Is(flags TypeFlags) bool {
	return t != nil && t.Flags&flags != 0
}

func (t *Type) IsObject(flags ObjectFlags) bool {
	return t != nil && t.ObjectFlags&flags != 0
}

// Symbol is a named entity: a declaration, a property, an export alias.
type Symbol struct {
	ID               SymbolID
	Name             string
	Flags            SymbolFlags
	Declarations     []*Declaration
	ValueDeclaration *Declaration
	Parent           *Symbol
}

func (s *Symbol) Is(flags SymbolFlags) bool {
	return s != nil && s.Flags&flags != 0
}

// FirstDeclaration returns the value declaration when present, otherwise the
// first declaration.
func (s *Symbol) FirstDeclaration() *Declaration {
	if s == nil {
		return nil
	}
	if s.ValueDeclaration != nil {
		return s.ValueDeclaration
	}
	if len(s.Declarations) > 0 {
		return s.Declarations[0]
	}
	return nil
}

// HasDeclaration reports whether any declaration of the symbol has the kind.
func (s *Symbol) HasDeclaration(kind DeclarationKind) bool {
	if s == nil {
		return false
	}
	for _, d := range s.Declarations {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Declaration is the syntactic site a symbol was declared at.
type Declaration struct {
	Kind      DeclarationKind
	Name      string
	File      string
	Line      int
	Modifiers ModifierFlags
	Parent    *Declaration
	Doc       *Comment
	// PropertyName is the original name of a renaming export specifier
	// (`export { X as Y }` has Name "Y", PropertyName "X").
	PropertyName string
	// ModuleSpecifier is the module a re-export reads from.
	ModuleSpecifier string
	TypeParameters  []string
	Heritage        []HeritageClause
}

func (d *Declaration) Has(mods ModifierFlags) bool {
	return d != nil && d.Modifiers&mods != 0
}

// HeritageClause is one `extends` or `implements` list.
type HeritageClause struct {
	Token HeritageToken
	Types []HeritageType
}

// HeritageType is one entry of a heritage clause, e.g. `Pick<Props, "a">`.
type HeritageType struct {
	Expression    string
	TypeArguments []string
	// Type is the resolved base type; nil when the checker could not resolve it.
	Type *Type
	// TypeArgumentTypes parallels TypeArguments.
	TypeArgumentTypes []*Type
}

// Comment is the raw doc comment attached to a declaration.
type Comment struct {
	Text string
	Tags []CommentTag
}

// CommentTag is one `@name text` block tag.
type CommentTag struct {
	Name string
	Text string
}

// Signature is a call or construct signature.
type Signature struct {
	Declaration    *Declaration
	TypeParameters []*Type
	Parameters     []*Symbol
	// HasRestParameter marks the last parameter as variadic.
	HasRestParameter bool
}

// IndexInfo describes an index signature `[key: K]: V`.
type IndexInfo struct {
	KeyType    *Type
	ValueType  *Type
	IsReadonly bool
}

// SignatureKind selects call or construct signatures.
type SignatureKind int

const (
	SignatureKindCall SignatureKind = iota
	SignatureKindConstruct
)
