// Package snapshot implements oracle.Checker over a pre-computed type graph.
// A Program is built once, either by loading a snapshot document exported
// from a real type checker or through a Builder, and is read-only afterwards,
// so any number of goroutines may query it.
package snapshot

import (
	"path"
	"slices"
	"strconv"
	"strings"

	"github.com/tsgonest/typesurface/internal/oracle"
	"gitlab.com/tozd/go/errors"
)

var _ oracle.Checker = (*Program)(nil)

// Program is an in-memory type graph answering oracle queries.
type Program struct {
	root     string
	files    map[string]bool // path -> external
	modules  map[string][]*oracle.Symbol
	fileSyms map[string]*oracle.Symbol

	exportsOf      map[*oracle.Symbol][]*oracle.Symbol
	aliasOf        map[*oracle.Symbol]*oracle.Symbol
	typeOf         map[*oracle.Symbol]*oracle.Type
	declaredTypeOf map[*oracle.Symbol]*oracle.Type
	typeParams     map[*oracle.Symbol][]*oracle.Type

	props      map[*oracle.Type][]*oracle.Symbol
	calls      map[*oracle.Type][]*oracle.Signature
	constructs map[*oracle.Type][]*oracle.Signature
	index      map[*oracle.Type][]*oracle.IndexInfo
	typeArgs   map[*oracle.Type][]*oracle.Type
	targets    map[*oracle.Type]*oracle.Type
	arrays     map[*oracle.Type]bool
	tuples     map[*oracle.Type]bool
	texts      map[*oracle.Type]string

	constraints map[*oracle.Type]*oracle.Type
	defaults    map[*oracle.Type]*oracle.Type
	returns     map[*oracle.Signature]*oracle.Type
}

func newProgram(root string) *Program {
	return &Program{
		root:           root,
		files:          map[string]bool{},
		modules:        map[string][]*oracle.Symbol{},
		fileSyms:       map[string]*oracle.Symbol{},
		exportsOf:      map[*oracle.Symbol][]*oracle.Symbol{},
		aliasOf:        map[*oracle.Symbol]*oracle.Symbol{},
		typeOf:         map[*oracle.Symbol]*oracle.Type{},
		declaredTypeOf: map[*oracle.Symbol]*oracle.Type{},
		typeParams:     map[*oracle.Symbol][]*oracle.Type{},
		props:          map[*oracle.Type][]*oracle.Symbol{},
		calls:          map[*oracle.Type][]*oracle.Signature{},
		constructs:     map[*oracle.Type][]*oracle.Signature{},
		index:          map[*oracle.Type][]*oracle.IndexInfo{},
		typeArgs:       map[*oracle.Type][]*oracle.Type{},
		targets:        map[*oracle.Type]*oracle.Type{},
		arrays:         map[*oracle.Type]bool{},
		tuples:         map[*oracle.Type]bool{},
		texts:          map[*oracle.Type]string{},
		constraints:    map[*oracle.Type]*oracle.Type{},
		defaults:       map[*oracle.Type]*oracle.Type{},
		returns:        map[*oracle.Signature]*oracle.Type{},
	}
}

// Root returns the project root the file paths are relative to.
func (p *Program) Root() string { return p.root }

// Modules returns the paths of all non-external files that export symbols,
// sorted.
func (p *Program) Modules() []string {
	var out []string
	for f := range p.modules {
		if !p.IsExternalFile(f) {
			out = append(out, f)
		}
	}
	slices.Sort(out)
	return out
}

func (p *Program) ExportsOfModule(fileName string) ([]*oracle.Symbol, error) {
	syms, ok := p.modules[fileName]
	if !ok {
		if _, known := p.files[fileName]; !known {
			return nil, errors.WithDetails(ErrUnknownModule, "module", fileName)
		}
	}
	return syms, nil
}

// ExportsOfSymbol returns namespace, enum and module members. A module
// symbol (one declared by a source file) yields that file's exports.
func (p *Program) ExportsOfSymbol(sym *oracle.Symbol) []*oracle.Symbol {
	if sym == nil {
		return nil
	}
	if members, ok := p.exportsOf[sym]; ok {
		return members
	}
	if d := sym.FirstDeclaration(); d != nil && d.Kind == oracle.DeclarationSourceFile {
		return p.modules[d.File]
	}
	return nil
}

// AliasedSymbol follows alias links to the final target. A symbol that is
// not an alias resolves to itself; a broken or cyclic chain yields nil.
func (p *Program) AliasedSymbol(sym *oracle.Symbol) *oracle.Symbol {
	seen := map[*oracle.Symbol]bool{}
	for sym != nil && sym.Is(oracle.SymbolFlagsAlias) {
		if seen[sym] {
			return nil
		}
		seen[sym] = true
		sym = p.aliasOf[sym]
	}
	return sym
}

func (p *Program) TypeOfSymbol(sym *oracle.Symbol) *oracle.Type { return p.typeOf[sym] }

func (p *Program) DeclaredTypeOfSymbol(sym *oracle.Symbol) *oracle.Type {
	return p.declaredTypeOf[sym]
}

func (p *Program) DeclaredTypeParameters(sym *oracle.Symbol) []*oracle.Type {
	return p.typeParams[sym]
}

// PropertiesOfType returns the properties of t. Instantiated generic
// references inherit the members of their target.
func (p *Program) PropertiesOfType(t *oracle.Type) []*oracle.Symbol {
	if props, ok := p.props[t]; ok {
		return props
	}
	if target := p.targets[t]; target != nil {
		return p.props[target]
	}
	return nil
}

func (p *Program) SignaturesOfType(t *oracle.Type, kind oracle.SignatureKind) []*oracle.Signature {
	table := p.calls
	if kind == oracle.SignatureKindConstruct {
		table = p.constructs
	}
	if sigs, ok := table[t]; ok {
		return sigs
	}
	if target := p.targets[t]; target != nil {
		return table[target]
	}
	return nil
}

func (p *Program) IndexInfosOfType(t *oracle.Type) []*oracle.IndexInfo {
	if infos, ok := p.index[t]; ok {
		return infos
	}
	if target := p.targets[t]; target != nil {
		return p.index[target]
	}
	return nil
}

func (p *Program) TypeArguments(t *oracle.Type) []*oracle.Type { return p.typeArgs[t] }

func (p *Program) ReturnTypeOfSignature(sig *oracle.Signature) *oracle.Type {
	return p.returns[sig]
}

func (p *Program) ConstraintOfTypeParameter(t *oracle.Type) *oracle.Type {
	return p.constraints[t]
}

func (p *Program) DefaultFromTypeParameter(t *oracle.Type) *oracle.Type {
	return p.defaults[t]
}

func (p *Program) IsArrayType(t *oracle.Type) bool { return p.arrays[t] }

func (p *Program) IsTupleType(t *oracle.Type) bool { return p.tuples[t] }

// IsTypeIdenticalTo compares by identity. Primitive and literal types with
// equal flags and value are identical even when recorded twice.
func (p *Program) IsTypeIdenticalTo(a, b *oracle.Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b || (a.ID != 0 && a.ID == b.ID) {
		return true
	}
	const structured = oracle.TypeFlagsObject | oracle.TypeFlagsUnion | oracle.TypeFlagsIntersection |
		oracle.TypeFlagsTypeParameter | oracle.TypeFlagsEnum | oracle.TypeFlagsEnumLiteral
	if a.Is(structured) || b.Is(structured) {
		return false
	}
	return a.Flags == b.Flags && a.Value == b.Value
}

// TypeToString returns the recorded display text of t, or derives one.
func (p *Program) TypeToString(t *oracle.Type) string {
	return p.typeString(t, 0)
}

func (p *Program) typeString(t *oracle.Type, depth int) string {
	if t == nil {
		return "any"
	}
	if text, ok := p.texts[t]; ok {
		return text
	}
	if depth > 8 {
		return "..."
	}
	if t.AliasSymbol != nil {
		return withArgs(t.AliasSymbol.Name, p.joinTypes(t.AliasTypeArguments, ", ", depth))
	}
	switch {
	case t.Is(oracle.TypeFlagsStringLiteral):
		s, _ := t.Value.(string)
		return strconv.Quote(s)
	case t.Is(oracle.TypeFlagsNumberLiteral | oracle.TypeFlagsBooleanLiteral):
		return formatValue(t.Value)
	case t.Is(oracle.TypeFlagsBigIntLiteral):
		return formatValue(t.Value) + "n"
	case t.Is(oracle.TypeFlagsUnion):
		return p.joinTypes(t.Types, " | ", depth)
	case t.Is(oracle.TypeFlagsIntersection):
		return p.joinTypes(t.Types, " & ", depth)
	}
	if name := intrinsicText(t.Flags); name != "" {
		return name
	}
	if p.arrays[t] {
		if args := p.typeArgs[t]; len(args) == 1 {
			return p.typeString(args[0], depth+1) + "[]"
		}
	}
	if p.tuples[t] {
		return "[" + p.joinTypes(p.typeArgs[t], ", ", depth) + "]"
	}
	if t.Symbol != nil && !strings.HasPrefix(t.Symbol.Name, "__") {
		return withArgs(t.Symbol.Name, p.joinTypes(p.typeArgs[t], ", ", depth))
	}
	return "{}"
}

func (p *Program) joinTypes(types []*oracle.Type, sep string, depth int) string {
	parts := make([]string, len(types))
	for i, m := range types {
		parts[i] = p.typeString(m, depth+1)
	}
	return strings.Join(parts, sep)
}

func withArgs(name, args string) string {
	if args == "" {
		return name
	}
	return name + "<" + args + ">"
}

func intrinsicText(f oracle.TypeFlags) string {
	switch {
	case f&oracle.TypeFlagsAny != 0:
		return "any"
	case f&oracle.TypeFlagsUnknown != 0:
		return "unknown"
	case f&oracle.TypeFlagsString != 0:
		return "string"
	case f&oracle.TypeFlagsNumber != 0:
		return "number"
	case f&oracle.TypeFlagsBoolean != 0:
		return "boolean"
	case f&oracle.TypeFlagsBigInt != 0:
		return "bigint"
	case f&(oracle.TypeFlagsESSymbol|oracle.TypeFlagsUniqueESSymbol) != 0:
		return "symbol"
	case f&oracle.TypeFlagsVoid != 0:
		return "void"
	case f&oracle.TypeFlagsUndefined != 0:
		return "undefined"
	case f&oracle.TypeFlagsNull != 0:
		return "null"
	case f&oracle.TypeFlagsNever != 0:
		return "never"
	case f&oracle.TypeFlagsNonPrimitive != 0:
		return "object"
	}
	return ""
}

func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	}
	return ""
}

// IsExternalFile reports whether a file is marked external, or lies under a
// node_modules directory.
func (p *Program) IsExternalFile(fileName string) bool {
	if ext, ok := p.files[fileName]; ok && ext {
		return true
	}
	return isDependencyPath(fileName)
}

func isDependencyPath(fileName string) bool {
	clean := path.Clean(strings.ReplaceAll(fileName, "\\", "/"))
	return strings.HasPrefix(clean, "node_modules/") || strings.Contains(clean, "/node_modules/")
}
