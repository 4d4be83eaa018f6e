package snapshot

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"gitlab.com/tozd/go/errors"

	"github.com/tsgonest/typesurface/internal/oracle"
)

var (
	ErrUnknownModule = errors.Base("unknown module")
	ErrInvalid       = errors.Base("invalid snapshot")
)

// Document is the on-disk form of a snapshot. Entities reference each other
// by integer id; 0 means "none". Flags are lists of names.
type Document struct {
	Root         string              `yaml:"root"`
	Files        []FileDoc           `yaml:"files"`
	Modules      map[string][]uint64 `yaml:"modules"`
	Symbols      []SymbolDoc         `yaml:"symbols"`
	Declarations []DeclarationDoc    `yaml:"declarations"`
	Types        []TypeDoc           `yaml:"types"`
	Signatures   []SignatureDoc      `yaml:"signatures"`
}

type FileDoc struct {
	Path     string `yaml:"path"`
	External bool   `yaml:"external,omitempty"`
}

type SymbolDoc struct {
	ID               uint64   `yaml:"id"`
	Name             string   `yaml:"name"`
	Flags            []string `yaml:"flags"`
	Declarations     []uint64 `yaml:"declarations,omitempty"`
	ValueDeclaration uint64   `yaml:"valueDeclaration,omitempty"`
	Parent           uint64   `yaml:"parent,omitempty"`
	Type             uint64   `yaml:"type,omitempty"`
	DeclaredType     uint64   `yaml:"declaredType,omitempty"`
	TypeParameters   []uint64 `yaml:"typeParameters,omitempty"`
	AliasOf          uint64   `yaml:"aliasOf,omitempty"`
	Exports          []uint64 `yaml:"exports,omitempty"`
}

type DeclarationDoc struct {
	ID              uint64        `yaml:"id"`
	Kind            string        `yaml:"kind"`
	Name            string        `yaml:"name,omitempty"`
	File            string        `yaml:"file"`
	Line            int           `yaml:"line,omitempty"`
	Modifiers       []string      `yaml:"modifiers,omitempty"`
	Parent          uint64        `yaml:"parent,omitempty"`
	Doc             *CommentDoc   `yaml:"doc,omitempty"`
	PropertyName    string        `yaml:"propertyName,omitempty"`
	ModuleSpecifier string        `yaml:"moduleSpecifier,omitempty"`
	TypeParameters  []string      `yaml:"typeParameters,omitempty"`
	Heritage        []HeritageDoc `yaml:"heritage,omitempty"`
}

type CommentDoc struct {
	Text string   `yaml:"text,omitempty"`
	Tags []TagDoc `yaml:"tags,omitempty"`
}

type TagDoc struct {
	Name string `yaml:"name"`
	Text string `yaml:"text,omitempty"`
}

type HeritageDoc struct {
	Token string            `yaml:"token"`
	Types []HeritageTypeDoc `yaml:"types"`
}

type HeritageTypeDoc struct {
	Expression        string   `yaml:"expression"`
	TypeArguments     []string `yaml:"typeArguments,omitempty"`
	Type              uint64   `yaml:"type,omitempty"`
	TypeArgumentTypes []uint64 `yaml:"typeArgumentTypes,omitempty"`
}

type TypeDoc struct {
	ID                  uint64         `yaml:"id"`
	Flags               []string       `yaml:"flags"`
	ObjectFlags         []string       `yaml:"objectFlags,omitempty"`
	Symbol              uint64         `yaml:"symbol,omitempty"`
	AliasSymbol         uint64         `yaml:"aliasSymbol,omitempty"`
	AliasTypeArguments  []uint64       `yaml:"aliasTypeArguments,omitempty"`
	Value               any            `yaml:"value,omitempty"`
	Types               []uint64       `yaml:"types,omitempty"`
	Properties          []uint64       `yaml:"properties,omitempty"`
	CallSignatures      []uint64       `yaml:"callSignatures,omitempty"`
	ConstructSignatures []uint64       `yaml:"constructSignatures,omitempty"`
	IndexInfos          []IndexInfoDoc `yaml:"indexInfos,omitempty"`
	TypeArguments       []uint64       `yaml:"typeArguments,omitempty"`
	Target              uint64         `yaml:"target,omitempty"`
	Array               bool           `yaml:"array,omitempty"`
	Tuple               bool           `yaml:"tuple,omitempty"`
	Constraint          uint64         `yaml:"constraint,omitempty"`
	Default             uint64         `yaml:"default,omitempty"`
	Text                string         `yaml:"text,omitempty"`
}

type IndexInfoDoc struct {
	KeyType   uint64 `yaml:"keyType"`
	ValueType uint64 `yaml:"valueType"`
	Readonly  bool   `yaml:"readonly,omitempty"`
}

type SignatureDoc struct {
	ID             uint64   `yaml:"id"`
	Declaration    uint64   `yaml:"declaration,omitempty"`
	TypeParameters []uint64 `yaml:"typeParameters,omitempty"`
	Parameters     []uint64 `yaml:"parameters,omitempty"`
	Rest           bool     `yaml:"rest,omitempty"`
	ReturnType     uint64   `yaml:"returnType,omitempty"`
}

// LoadFile reads and links a snapshot document from disk.
func LoadFile(filename string) (*Program, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Errorf("reading snapshot %s: %w", filename, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.WithDetails(err, "file", filename)
	}
	return p, nil
}

// Parse decodes a YAML (or JSON) snapshot document and links it into a
// Program.
func Parse(data []byte) (*Program, error) {
	var doc Document
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.Errorf("%w: %s", ErrInvalid, yaml.FormatError(err, false, true))
	}
	return Link(&doc)
}

// linker resolves document ids into oracle entities in two passes: allocate
// every entity, then wire references.
type linker struct {
	doc   *Document
	p     *Program
	syms  map[uint64]*oracle.Symbol
	decls map[uint64]*oracle.Declaration
	types map[uint64]*oracle.Type
	sigs  map[uint64]*oracle.Signature
	errs  []string
}

// Link builds a Program from a decoded document.
func Link(doc *Document) (*Program, error) {
	l := &linker{
		doc:   doc,
		p:     newProgram(doc.Root),
		syms:  map[uint64]*oracle.Symbol{},
		decls: map[uint64]*oracle.Declaration{},
		types: map[uint64]*oracle.Type{},
		sigs:  map[uint64]*oracle.Signature{},
	}
	l.allocate()
	l.wire()
	if len(l.errs) > 0 {
		return nil, errors.WithDetails(ErrInvalid, "problems", l.errs)
	}
	return l.p, nil
}

func (l *linker) fail(format string, args ...any) {
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

func (l *linker) allocate() {
	for _, f := range l.doc.Files {
		l.p.files[f.Path] = f.External
	}
	for _, d := range l.doc.Declarations {
		if d.ID == 0 || l.decls[d.ID] != nil {
			l.fail("declaration id %d is zero or duplicated", d.ID)
			continue
		}
		mods, unknown := oracle.ParseModifiers(d.Modifiers)
		if len(unknown) > 0 {
			l.fail("declaration %d: unknown modifiers %v", d.ID, unknown)
		}
		decl := &oracle.Declaration{
			Kind:            oracle.DeclarationKind(d.Kind),
			Name:            d.Name,
			File:            d.File,
			Line:            d.Line,
			Modifiers:       mods,
			PropertyName:    d.PropertyName,
			ModuleSpecifier: d.ModuleSpecifier,
			TypeParameters:  d.TypeParameters,
		}
		if d.Doc != nil {
			decl.Doc = &oracle.Comment{Text: d.Doc.Text}
			for _, tag := range d.Doc.Tags {
				decl.Doc.Tags = append(decl.Doc.Tags, oracle.CommentTag{Name: tag.Name, Text: tag.Text})
			}
		}
		l.decls[d.ID] = decl
	}
	for _, s := range l.doc.Symbols {
		if s.ID == 0 || l.syms[s.ID] != nil {
			l.fail("symbol id %d is zero or duplicated", s.ID)
			continue
		}
		flags, unknown := oracle.ParseSymbolFlags(s.Flags)
		if len(unknown) > 0 {
			l.fail("symbol %d (%s): unknown flags %v", s.ID, s.Name, unknown)
		}
		l.syms[s.ID] = &oracle.Symbol{ID: oracle.SymbolID(s.ID), Name: s.Name, Flags: flags}
	}
	for _, t := range l.doc.Types {
		if t.ID == 0 || l.types[t.ID] != nil {
			l.fail("type id %d is zero or duplicated", t.ID)
			continue
		}
		flags, unknown := oracle.ParseTypeFlags(t.Flags)
		if len(unknown) > 0 {
			l.fail("type %d: unknown flags %v", t.ID, unknown)
		}
		oflags, unknown := oracle.ParseObjectFlags(t.ObjectFlags)
		if len(unknown) > 0 {
			l.fail("type %d: unknown object flags %v", t.ID, unknown)
		}
		value := normalizeValue(t.Value)
		if !literalValueMatches(flags, value) {
			l.fail("type %d: value %v (%T) does not match flags %s", t.ID, t.Value, t.Value, flags)
		}
		l.types[t.ID] = &oracle.Type{ID: oracle.TypeID(t.ID), Flags: flags, ObjectFlags: oflags, Value: value}
	}
	for _, s := range l.doc.Signatures {
		if s.ID == 0 || l.sigs[s.ID] != nil {
			l.fail("signature id %d is zero or duplicated", s.ID)
			continue
		}
		l.sigs[s.ID] = &oracle.Signature{HasRestParameter: s.Rest}
	}
}

func (l *linker) wire() {
	p := l.p
	for _, d := range l.doc.Declarations {
		decl := l.decls[d.ID]
		if decl == nil {
			continue
		}
		decl.Parent = l.decl(d.Parent, "declaration %d parent", d.ID)
		for _, h := range d.Heritage {
			clause := oracle.HeritageClause{Token: oracle.HeritageToken(h.Token)}
			for _, ht := range h.Types {
				entry := oracle.HeritageType{
					Expression:    ht.Expression,
					TypeArguments: ht.TypeArguments,
					Type:          l.typ(ht.Type, "declaration %d heritage", d.ID),
				}
				for _, id := range ht.TypeArgumentTypes {
					entry.TypeArgumentTypes = append(entry.TypeArgumentTypes, l.typ(id, "declaration %d heritage argument", d.ID))
				}
				clause.Types = append(clause.Types, entry)
			}
			decl.Heritage = append(decl.Heritage, clause)
		}
	}

	for _, s := range l.doc.Symbols {
		sym := l.syms[s.ID]
		if sym == nil {
			continue
		}
		for _, id := range s.Declarations {
			if d := l.decl(id, "symbol %d declaration", s.ID); d != nil {
				sym.Declarations = append(sym.Declarations, d)
			}
		}
		sym.ValueDeclaration = l.decl(s.ValueDeclaration, "symbol %d value declaration", s.ID)
		sym.Parent = l.sym(s.Parent, "symbol %d parent", s.ID)
		if t := l.typ(s.Type, "symbol %d type", s.ID); t != nil {
			p.typeOf[sym] = t
		}
		if t := l.typ(s.DeclaredType, "symbol %d declared type", s.ID); t != nil {
			p.declaredTypeOf[sym] = t
		}
		if len(s.TypeParameters) > 0 {
			p.typeParams[sym] = l.typeList(s.TypeParameters, "symbol %d type parameter", s.ID)
		}
		if target := l.sym(s.AliasOf, "symbol %d alias target", s.ID); target != nil {
			p.aliasOf[sym] = target
		}
		if len(s.Exports) > 0 {
			p.exportsOf[sym] = l.symList(s.Exports, "symbol %d export", s.ID)
		}
		if d := sym.FirstDeclaration(); d != nil && d.Kind == oracle.DeclarationSourceFile {
			p.fileSyms[d.File] = sym
		}
	}

	for _, t := range l.doc.Types {
		typ := l.types[t.ID]
		if typ == nil {
			continue
		}
		typ.Symbol = l.sym(t.Symbol, "type %d symbol", t.ID)
		typ.AliasSymbol = l.sym(t.AliasSymbol, "type %d alias symbol", t.ID)
		typ.AliasTypeArguments = l.typeList(t.AliasTypeArguments, "type %d alias argument", t.ID)
		typ.Types = l.typeList(t.Types, "type %d member", t.ID)
		if len(t.Properties) > 0 {
			p.props[typ] = l.symList(t.Properties, "type %d property", t.ID)
		}
		if len(t.CallSignatures) > 0 {
			p.calls[typ] = l.sigList(t.CallSignatures, "type %d call signature", t.ID)
		}
		if len(t.ConstructSignatures) > 0 {
			p.constructs[typ] = l.sigList(t.ConstructSignatures, "type %d construct signature", t.ID)
		}
		for _, info := range t.IndexInfos {
			p.index[typ] = append(p.index[typ], &oracle.IndexInfo{
				KeyType:    l.typ(info.KeyType, "type %d index key", t.ID),
				ValueType:  l.typ(info.ValueType, "type %d index value", t.ID),
				IsReadonly: info.Readonly,
			})
		}
		if len(t.TypeArguments) > 0 {
			p.typeArgs[typ] = l.typeList(t.TypeArguments, "type %d argument", t.ID)
		}
		if target := l.typ(t.Target, "type %d target", t.ID); target != nil {
			p.targets[typ] = target
		}
		if t.Array {
			p.arrays[typ] = true
		}
		if t.Tuple {
			p.tuples[typ] = true
		}
		if c := l.typ(t.Constraint, "type %d constraint", t.ID); c != nil {
			p.constraints[typ] = c
		}
		if d := l.typ(t.Default, "type %d default", t.ID); d != nil {
			p.defaults[typ] = d
		}
		if t.Text != "" {
			p.texts[typ] = t.Text
		}
	}

	for _, s := range l.doc.Signatures {
		sig := l.sigs[s.ID]
		if sig == nil {
			continue
		}
		sig.Declaration = l.decl(s.Declaration, "signature %d declaration", s.ID)
		sig.TypeParameters = l.typeList(s.TypeParameters, "signature %d type parameter", s.ID)
		sig.Parameters = l.symList(s.Parameters, "signature %d parameter", s.ID)
		if ret := l.typ(s.ReturnType, "signature %d return type", s.ID); ret != nil {
			p.returns[sig] = ret
		}
	}

	for file, ids := range l.doc.Modules {
		if _, ok := p.files[file]; !ok {
			p.files[file] = false
		}
		p.modules[file] = l.symList(ids, "module %s export", file)
	}
}

func (l *linker) decl(id uint64, ctx string, args ...any) *oracle.Declaration {
	if id == 0 {
		return nil
	}
	d, ok := l.decls[id]
	if !ok {
		l.fail(ctx+": unknown declaration %d", append(args, id)...)
	}
	return d
}

func (l *linker) sym(id uint64, ctx string, args ...any) *oracle.Symbol {
	if id == 0 {
		return nil
	}
	s, ok := l.syms[id]
	if !ok {
		l.fail(ctx+": unknown symbol %d", append(args, id)...)
	}
	return s
}

func (l *linker) typ(id uint64, ctx string, args ...any) *oracle.Type {
	if id == 0 {
		return nil
	}
	t, ok := l.types[id]
	if !ok {
		l.fail(ctx+": unknown type %d", append(args, id)...)
	}
	return t
}

func (l *linker) symList(ids []uint64, ctx string, args ...any) []*oracle.Symbol {
	var out []*oracle.Symbol
	for _, id := range ids {
		if s := l.sym(id, ctx, args...); s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (l *linker) typeList(ids []uint64, ctx string, args ...any) []*oracle.Type {
	var out []*oracle.Type
	for _, id := range ids {
		if t := l.typ(id, ctx, args...); t != nil {
			out = append(out, t)
		}
	}
	return out
}

func (l *linker) sigList(ids []uint64, ctx string, args ...any) []*oracle.Signature {
	var out []*oracle.Signature
	for _, id := range ids {
		s, ok := l.sigs[id]
		if !ok {
			l.fail(ctx+": unknown signature %d", append(args, id)...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// normalizeValue maps decoded YAML scalars onto the literal value types the
// oracle reports: string, float64 and bool.
// literalValueMatches reports whether v is a valid value for a type with
// flags. Non-literal types ignore their value.
func literalValueMatches(flags oracle.TypeFlags, v any) bool {
	switch {
	case flags&(oracle.TypeFlagsStringLiteral|oracle.TypeFlagsBigIntLiteral) != 0:
		_, ok := v.(string)
		return ok
	case flags&oracle.TypeFlagsNumberLiteral != 0:
		_, ok := v.(float64)
		return ok
	case flags&oracle.TypeFlagsBooleanLiteral != 0:
		_, ok := v.(bool)
		return ok
	}
	return true
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	}
	return v
}
