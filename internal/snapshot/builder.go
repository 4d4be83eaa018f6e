package snapshot

import (
	"github.com/tsgonest/typesurface/internal/oracle"
)

// Builder assembles a Program in code. It is the test-side counterpart of a
// snapshot document: every constructor registers the entity with the
// program it is building. A Builder is not safe for concurrent use; the
// Program it returns is.
type Builder struct {
	p          *Program
	nextType   oracle.TypeID
	nextSymbol oracle.SymbolID
	lines      map[string]int
	intrinsics map[oracle.TypeFlags]*oracle.Type
}

// NewBuilder starts an empty program rooted at root.
func NewBuilder(root string) *Builder {
	return &Builder{
		p:          newProgram(root),
		lines:      map[string]int{},
		intrinsics: map[oracle.TypeFlags]*oracle.Type{},
	}
}

// Program returns the program built so far.
func (b *Builder) Program() *Program { return b.p }

func (b *Builder) newType(flags oracle.TypeFlags, oflags oracle.ObjectFlags) *oracle.Type {
	b.nextType++
	return &oracle.Type{ID: b.nextType, Flags: flags, ObjectFlags: oflags}
}

func (b *Builder) newSymbol(name string, flags oracle.SymbolFlags, decls ...*oracle.Declaration) *oracle.Symbol {
	b.nextSymbol++
	sym := &oracle.Symbol{ID: b.nextSymbol, Name: name, Flags: flags, Declarations: decls}
	for _, d := range decls {
		if isValueKind(d.Kind) {
			sym.ValueDeclaration = d
			break
		}
	}
	return sym
}

func isValueKind(k oracle.DeclarationKind) bool {
	switch k {
	case oracle.DeclarationVariable, oracle.DeclarationFunction, oracle.DeclarationClass,
		oracle.DeclarationEnum, oracle.DeclarationProperty, oracle.DeclarationPropertySignature,
		oracle.DeclarationMethod, oracle.DeclarationMethodSignature, oracle.DeclarationParameter,
		oracle.DeclarationEnumMember, oracle.DeclarationGetAccessor, oracle.DeclarationSetAccessor:
		return true
	}
	return false
}

// File declares a source file and returns its root declaration.
func (b *Builder) File(path string, external bool) *oracle.Declaration {
	b.p.files[path] = external
	if _, ok := b.p.modules[path]; !ok && !external {
		b.p.modules[path] = nil
	}
	decl := &oracle.Declaration{Kind: oracle.DeclarationSourceFile, Name: path, File: path}
	if b.p.fileSyms[path] == nil {
		b.p.fileSyms[path] = b.newSymbol(path, oracle.SymbolFlagsValueModule, decl)
	}
	return decl
}

// ModuleSymbol returns the symbol standing for a whole file.
func (b *Builder) ModuleSymbol(path string) *oracle.Symbol {
	if b.p.fileSyms[path] == nil {
		b.File(path, false)
	}
	return b.p.fileSyms[path]
}

// Declare creates a declaration nested under parent, on the next free line of
// the parent's file.
func (b *Builder) Declare(kind oracle.DeclarationKind, name string, parent *oracle.Declaration) *oracle.Declaration {
	d := &oracle.Declaration{Kind: kind, Name: name, Parent: parent}
	if parent != nil {
		d.File = parent.File
		b.lines[d.File]++
		d.Line = b.lines[d.File]
	}
	return d
}

// Doc attaches a doc comment to decl and returns decl.
func (b *Builder) Doc(decl *oracle.Declaration, text string, tags ...oracle.CommentTag) *oracle.Declaration {
	decl.Doc = &oracle.Comment{Text: text, Tags: tags}
	return decl
}

// Tag is shorthand for a comment tag.
func Tag(name, text string) oracle.CommentTag {
	return oracle.CommentTag{Name: name, Text: text}
}

// Intrinsic returns the shared primitive type for flags (string, number,
// null, any, ...).
func (b *Builder) Intrinsic(flags oracle.TypeFlags) *oracle.Type {
	if t, ok := b.intrinsics[flags]; ok {
		return t
	}
	t := b.newType(flags, 0)
	b.intrinsics[flags] = t
	return t
}

func (b *Builder) StringType() *oracle.Type    { return b.Intrinsic(oracle.TypeFlagsString) }
func (b *Builder) NumberType() *oracle.Type    { return b.Intrinsic(oracle.TypeFlagsNumber) }
func (b *Builder) BooleanType() *oracle.Type   { return b.Intrinsic(oracle.TypeFlagsBoolean) }
func (b *Builder) NullType() *oracle.Type      { return b.Intrinsic(oracle.TypeFlagsNull) }
func (b *Builder) UndefinedType() *oracle.Type { return b.Intrinsic(oracle.TypeFlagsUndefined) }
func (b *Builder) AnyType() *oracle.Type       { return b.Intrinsic(oracle.TypeFlagsAny) }
func (b *Builder) VoidType() *oracle.Type      { return b.Intrinsic(oracle.TypeFlagsVoid) }

// Alone returns a fresh, unshared type with the given flags. Use it for
// intrinsics that will be named through an alias.
func (b *Builder) Alone(flags oracle.TypeFlags) *oracle.Type {
	return b.newType(flags, 0)
}

func (b *Builder) StringLiteral(v string) *oracle.Type {
	t := b.newType(oracle.TypeFlagsStringLiteral, 0)
	t.Value = v
	return t
}

func (b *Builder) NumberLiteral(v float64) *oracle.Type {
	t := b.newType(oracle.TypeFlagsNumberLiteral, 0)
	t.Value = v
	return t
}

func (b *Builder) BooleanLiteral(v bool) *oracle.Type {
	t := b.newType(oracle.TypeFlagsBooleanLiteral, 0)
	t.Value = v
	return t
}

func (b *Builder) BigIntLiteral(v string) *oracle.Type {
	t := b.newType(oracle.TypeFlagsBigIntLiteral, 0)
	t.Value = v
	return t
}

func (b *Builder) Union(members ...*oracle.Type) *oracle.Type {
	t := b.newType(oracle.TypeFlagsUnion, 0)
	t.Types = members
	return t
}

func (b *Builder) Intersection(members ...*oracle.Type) *oracle.Type {
	t := b.newType(oracle.TypeFlagsIntersection, 0)
	t.Types = members
	return t
}

// TypeLiteral creates an anonymous object type `{ ... }` declared under
// parent. Add members with AddProperty.
func (b *Builder) TypeLiteral(parent *oracle.Declaration) *oracle.Type {
	decl := b.Declare(oracle.DeclarationTypeLiteral, "__type", parent)
	sym := b.newSymbol("__type", oracle.SymbolFlagsTypeLiteral, decl)
	t := b.newType(oracle.TypeFlagsObject, oracle.ObjectFlagsAnonymous)
	t.Symbol = sym
	b.p.props[t] = nil
	return t
}

// Interface declares an interface in file and returns its declared type.
func (b *Builder) Interface(file *oracle.Declaration, name string, typeParams ...*oracle.Type) *oracle.Type {
	decl := b.Declare(oracle.DeclarationInterface, name, file)
	decl.Modifiers = oracle.ModifierExport
	sym := b.newSymbol(name, oracle.SymbolFlagsInterface, decl)
	t := b.newType(oracle.TypeFlagsObject, oracle.ObjectFlagsInterface)
	t.Symbol = sym
	b.p.declaredTypeOf[sym] = t
	b.p.props[t] = nil
	b.setTypeParams(sym, decl, typeParams)
	return t
}

func (b *Builder) setTypeParams(sym *oracle.Symbol, decl *oracle.Declaration, typeParams []*oracle.Type) {
	if len(typeParams) == 0 {
		return
	}
	b.p.typeParams[sym] = typeParams
	for _, tp := range typeParams {
		decl.TypeParameters = append(decl.TypeParameters, tp.Symbol.Name)
	}
}

// AddProperty adds a property signature to an object type.
func (b *Builder) AddProperty(owner *oracle.Type, name string, t *oracle.Type, optional bool) *oracle.Symbol {
	flags := oracle.SymbolFlagsProperty
	if optional {
		flags |= oracle.SymbolFlagsOptional
	}
	return b.AddMember(owner, oracle.DeclarationPropertySignature, name, t, flags, 0)
}

// AddMember adds a member of any kind to an object type. The declaration is
// nested under the owner's declaration.
func (b *Builder) AddMember(owner *oracle.Type, kind oracle.DeclarationKind, name string, t *oracle.Type, flags oracle.SymbolFlags, mods oracle.ModifierFlags) *oracle.Symbol {
	decl := b.Declare(kind, name, owner.Symbol.FirstDeclaration())
	decl.Modifiers = mods
	sym := b.newSymbol(name, flags, decl)
	sym.Parent = owner.Symbol
	if t != nil {
		b.p.typeOf[sym] = t
	}
	b.p.props[owner] = append(b.p.props[owner], sym)
	return sym
}

// ShareProperty lists an existing property symbol on another object type,
// the way an inherited or spread member is reported.
func (b *Builder) ShareProperty(owner *oracle.Type, prop *oracle.Symbol) {
	b.p.props[owner] = append(b.p.props[owner], prop)
}

// AddIndex adds an index signature to an object type.
func (b *Builder) AddIndex(owner, key, value *oracle.Type, readonly bool) {
	b.p.index[owner] = append(b.p.index[owner], &oracle.IndexInfo{KeyType: key, ValueType: value, IsReadonly: readonly})
}

// Parameter creates a parameter symbol declared under decl.
func (b *Builder) Parameter(decl *oracle.Declaration, name string, t *oracle.Type, optional bool) *oracle.Symbol {
	d := b.Declare(oracle.DeclarationParameter, name, decl)
	flags := oracle.SymbolFlagsVariable
	if optional {
		flags |= oracle.SymbolFlagsOptional
	}
	sym := b.newSymbol(name, flags, d)
	b.p.typeOf[sym] = t
	return sym
}

// Signature creates a signature for decl returning ret.
func (b *Builder) Signature(decl *oracle.Declaration, ret *oracle.Type, params ...*oracle.Symbol) *oracle.Signature {
	sig := &oracle.Signature{Declaration: decl, Parameters: params}
	if ret != nil {
		b.p.returns[sig] = ret
	}
	return sig
}

// AddCallSignature attaches a call signature to t.
func (b *Builder) AddCallSignature(t *oracle.Type, sig *oracle.Signature) {
	b.p.calls[t] = append(b.p.calls[t], sig)
}

// AddConstructSignature attaches a construct signature to t.
func (b *Builder) AddConstructSignature(t *oracle.Type, sig *oracle.Signature) {
	b.p.constructs[t] = append(b.p.constructs[t], sig)
}

// FunctionType creates an anonymous function type `(…) => ret` declared
// under parent with a single call signature.
func (b *Builder) FunctionType(parent *oracle.Declaration, ret *oracle.Type, params func(decl *oracle.Declaration) []*oracle.Symbol) *oracle.Type {
	decl := b.Declare(oracle.DeclarationTypeLiteral, "__function", parent)
	sym := b.newSymbol("__function", oracle.SymbolFlagsTypeLiteral, decl)
	t := b.newType(oracle.TypeFlagsObject, oracle.ObjectFlagsAnonymous)
	t.Symbol = sym
	var ps []*oracle.Symbol
	if params != nil {
		ps = params(decl)
	}
	b.AddCallSignature(t, b.Signature(decl, ret, ps...))
	return t
}

// Function declares `export function name` in file. Add overloads with
// AddCallSignature using the returned declaration.
func (b *Builder) Function(file *oracle.Declaration, name string) (*oracle.Symbol, *oracle.Type, *oracle.Declaration) {
	decl := b.Declare(oracle.DeclarationFunction, name, file)
	decl.Modifiers = oracle.ModifierExport
	sym := b.newSymbol(name, oracle.SymbolFlagsFunction, decl)
	t := b.newType(oracle.TypeFlagsObject, oracle.ObjectFlagsAnonymous)
	t.Symbol = sym
	b.p.typeOf[sym] = t
	return sym, t, decl
}

// Variable declares `export const name: t` in file.
func (b *Builder) Variable(file *oracle.Declaration, name string, t *oracle.Type) *oracle.Symbol {
	decl := b.Declare(oracle.DeclarationVariable, name, file)
	decl.Modifiers = oracle.ModifierExport
	sym := b.newSymbol(name, oracle.SymbolFlagsVariable, decl)
	b.p.typeOf[sym] = t
	return sym
}

// Alias declares `type name<params> = target`. The target type is marked as
// reached through the alias.
func (b *Builder) Alias(file *oracle.Declaration, name string, target *oracle.Type, args ...*oracle.Type) *oracle.Symbol {
	decl := b.Declare(oracle.DeclarationTypeAlias, name, file)
	decl.Modifiers = oracle.ModifierExport
	sym := b.newSymbol(name, oracle.SymbolFlagsTypeAlias, decl)
	target.AliasSymbol = sym
	target.AliasTypeArguments = args
	b.p.declaredTypeOf[sym] = target
	return sym
}

// Class declares a class in file. It returns the class symbol, the instance
// type (members added with AddMember) and the static side (constructor
// function type, construct signatures and static members).
func (b *Builder) Class(file *oracle.Declaration, name string, typeParams ...*oracle.Type) (*oracle.Symbol, *oracle.Type, *oracle.Type) {
	decl := b.Declare(oracle.DeclarationClass, name, file)
	decl.Modifiers = oracle.ModifierExport
	sym := b.newSymbol(name, oracle.SymbolFlagsClass, decl)
	instance := b.newType(oracle.TypeFlagsObject, oracle.ObjectFlagsClass)
	instance.Symbol = sym
	static := b.newType(oracle.TypeFlagsObject, oracle.ObjectFlagsAnonymous)
	static.Symbol = sym
	b.p.declaredTypeOf[sym] = instance
	b.p.typeOf[sym] = static
	b.p.props[instance] = nil
	b.p.props[static] = nil
	b.setTypeParams(sym, decl, typeParams)
	return sym, instance, static
}

// EnumMember describes one member for Enum.
type EnumMember struct {
	Name  string
	Value any // string or float64
	Doc   string
}

// Enum declares an enum. With a single member the enum's type is reported
// as that member's literal type carrying the member's symbol, as real
// checkers do.
func (b *Builder) Enum(file *oracle.Declaration, name string, members ...EnumMember) (*oracle.Symbol, *oracle.Type) {
	decl := b.Declare(oracle.DeclarationEnum, name, file)
	decl.Modifiers = oracle.ModifierExport
	sym := b.newSymbol(name, oracle.SymbolFlagsRegularEnum, decl)

	var memberSyms []*oracle.Symbol
	var memberTypes []*oracle.Type
	for _, m := range members {
		md := b.Declare(oracle.DeclarationEnumMember, m.Name, decl)
		if m.Doc != "" {
			b.Doc(md, m.Doc)
		}
		ms := b.newSymbol(m.Name, oracle.SymbolFlagsEnumMember, md)
		ms.Parent = sym
		flags := oracle.TypeFlagsEnumLiteral | oracle.TypeFlagsNumberLiteral
		if _, ok := m.Value.(string); ok {
			flags = oracle.TypeFlagsEnumLiteral | oracle.TypeFlagsStringLiteral
		}
		mt := b.newType(flags, 0)
		mt.Value = m.Value
		mt.Symbol = ms
		b.p.typeOf[ms] = mt
		b.p.declaredTypeOf[ms] = mt
		memberSyms = append(memberSyms, ms)
		memberTypes = append(memberTypes, mt)
	}
	b.p.exportsOf[sym] = memberSyms

	var t *oracle.Type
	if len(memberTypes) == 1 {
		t = memberTypes[0]
	} else {
		t = b.newType(oracle.TypeFlagsEnum|oracle.TypeFlagsUnion, 0)
		t.Symbol = sym
		t.Types = memberTypes
	}
	b.p.declaredTypeOf[sym] = t
	b.p.typeOf[sym] = t
	return sym, t
}

// TypeParameter creates a generic parameter with optional constraint and
// default.
func (b *Builder) TypeParameter(name string, constraint, def *oracle.Type) *oracle.Type {
	decl := &oracle.Declaration{Kind: oracle.DeclarationTypeParameter, Name: name}
	sym := b.newSymbol(name, oracle.SymbolFlagsTypeParameter, decl)
	t := b.newType(oracle.TypeFlagsTypeParameter, 0)
	t.Symbol = sym
	if constraint != nil {
		b.p.constraints[t] = constraint
	}
	if def != nil {
		b.p.defaults[t] = def
	}
	return t
}

// Instantiate creates a generic reference `target<args>`. The reference
// inherits the target's members.
func (b *Builder) Instantiate(target *oracle.Type, args ...*oracle.Type) *oracle.Type {
	t := b.newType(oracle.TypeFlagsObject, oracle.ObjectFlagsReference)
	t.Symbol = target.Symbol
	b.p.typeArgs[t] = args
	b.p.targets[t] = target
	return t
}

// Array creates `elem[]`, a reference to the global Array declared in lib.
func (b *Builder) Array(elem *oracle.Type) *oracle.Type {
	t := b.newType(oracle.TypeFlagsObject, oracle.ObjectFlagsReference)
	t.Symbol = b.libSymbol("Array")
	b.p.typeArgs[t] = []*oracle.Type{elem}
	b.p.arrays[t] = true
	return t
}

// Tuple creates `[a, b, ...]`.
func (b *Builder) Tuple(elems ...*oracle.Type) *oracle.Type {
	t := b.newType(oracle.TypeFlagsObject, oracle.ObjectFlagsReference|oracle.ObjectFlagsTuple)
	b.p.typeArgs[t] = elems
	b.p.tuples[t] = true
	return t
}

// SetTypeArguments replaces the type arguments (or tuple elements) of t.
// Use it to build self-referencing references such as `type P = [P, number]`.
func (b *Builder) SetTypeArguments(t *oracle.Type, args ...*oracle.Type) {
	b.p.typeArgs[t] = args
}

const libFile = "node_modules/typescript/lib/lib.es5.d.ts"

func (b *Builder) libSymbol(name string) *oracle.Symbol {
	file := b.File(libFile, true)
	return b.newSymbol(name, oracle.SymbolFlagsInterface, b.Declare(oracle.DeclarationInterface, name, file))
}

// Export appends symbols to the export list of the file.
func (b *Builder) Export(file *oracle.Declaration, syms ...*oracle.Symbol) {
	b.p.modules[file.File] = append(b.p.modules[file.File], syms...)
}

// ExportAs exports target from file under name (`export { target as name }`
// or, when from is set, `export { target as name } from "from"`).
func (b *Builder) ExportAs(file *oracle.Declaration, name string, target *oracle.Symbol, from string) *oracle.Symbol {
	decl := b.Declare(oracle.DeclarationExportSpecifier, name, file)
	if name != target.Name {
		decl.PropertyName = target.Name
	}
	decl.ModuleSpecifier = from
	sym := b.newSymbol(name, oracle.SymbolFlagsAlias, decl)
	b.p.aliasOf[sym] = target
	b.Export(file, sym)
	return sym
}

// ExportDefault exports target as the module's default export.
func (b *Builder) ExportDefault(file *oracle.Declaration, target *oracle.Symbol) *oracle.Symbol {
	decl := b.Declare(oracle.DeclarationExportAssignment, "default", file)
	sym := b.newSymbol("default", oracle.SymbolFlagsAlias, decl)
	b.p.aliasOf[sym] = target
	b.Export(file, sym)
	return sym
}

// ExportStarAs adds `export * as name from "module"`.
func (b *Builder) ExportStarAs(file *oracle.Declaration, name, module string) *oracle.Symbol {
	decl := b.Declare(oracle.DeclarationNamespaceExport, name, file)
	decl.ModuleSpecifier = module
	sym := b.newSymbol(name, oracle.SymbolFlagsAlias, decl)
	b.p.aliasOf[sym] = b.ModuleSymbol(module)
	b.Export(file, sym)
	return sym
}

// Namespace declares `export namespace name { ... }` holding members.
func (b *Builder) Namespace(file *oracle.Declaration, name string) (*oracle.Symbol, *oracle.Declaration) {
	decl := b.Declare(oracle.DeclarationModule, name, file)
	decl.Modifiers = oracle.ModifierExport
	sym := b.newSymbol(name, oracle.SymbolFlagsNamespaceModule, decl)
	b.p.exportsOf[sym] = nil
	return sym, decl
}

// MergeNamespace merges a namespace declaration into sym (a function,
// class, interface or alias with the same name) and returns the namespace
// declaration to declare members under.
func (b *Builder) MergeNamespace(sym *oracle.Symbol) *oracle.Declaration {
	file := sym.FirstDeclaration().Parent
	decl := b.Declare(oracle.DeclarationModule, sym.Name, file)
	decl.Modifiers = oracle.ModifierExport
	sym.Flags |= oracle.SymbolFlagsNamespaceModule
	sym.Declarations = append(sym.Declarations, decl)
	if _, ok := b.p.exportsOf[sym]; !ok {
		b.p.exportsOf[sym] = nil
	}
	return decl
}

// AddNamespaceMember exports member from the namespace ns.
func (b *Builder) AddNamespaceMember(ns *oracle.Symbol, member *oracle.Symbol) {
	member.Parent = ns
	b.p.exportsOf[ns] = append(b.p.exportsOf[ns], member)
}

// Heritage adds an `extends`/`implements` clause entry to decl.
func (b *Builder) Heritage(decl *oracle.Declaration, token oracle.HeritageToken, entry oracle.HeritageType) {
	for i := range decl.Heritage {
		if decl.Heritage[i].Token == token {
			decl.Heritage[i].Types = append(decl.Heritage[i].Types, entry)
			return
		}
	}
	decl.Heritage = append(decl.Heritage, oracle.HeritageClause{Token: token, Types: []oracle.HeritageType{entry}})
}

// SetText overrides the display text the program reports for t.
func (b *Builder) SetText(t *oracle.Type, text string) {
	b.p.texts[t] = text
}
