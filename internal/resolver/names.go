package resolver

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/surface"
)

// aliasName names t after the alias it was reached through, if any.
func (c *Context) aliasName(t *oracle.Type) (*surface.TypeName, error) {
	if t.AliasSymbol == nil {
		return nil, nil
	}
	return c.nameOf(t.AliasSymbol, t.AliasTypeArguments)
}

// typeName names t after its alias, falling back to its declaring symbol.
// Generic references carry their resolved type arguments.
func (c *Context) typeName(t *oracle.Type) (*surface.TypeName, error) {
	if t.AliasSymbol != nil {
		return c.aliasName(t)
	}
	if t.Symbol == nil || surface.IsPlaceholderName(t.Symbol.Name) {
		return nil, nil
	}
	var args []*oracle.Type
	if t.IsObject(oracle.ObjectFlagsReference) {
		args = c.checker.TypeArguments(t)
	}
	return c.nameOf(t.Symbol, args)
}

// simpleName names t without resolving type arguments. Used where resolving
// them could recurse, such as cycle placeholders.
func simpleName(t *oracle.Type) *surface.TypeName {
	sym := declaringSymbol(t)
	if sym == nil {
		return nil
	}
	return surface.NewTypeName(sym.Name, namespacesOf(sym), nil)
}

func (c *Context) nameOf(sym *oracle.Symbol, args []*oracle.Type) (*surface.TypeName, error) {
	if surface.IsPlaceholderName(sym.Name) {
		return nil, nil
	}
	resolved, err := c.typeArguments(sym, args)
	if err != nil {
		return nil, err
	}
	return surface.NewTypeName(sym.Name, namespacesOf(sym), resolved), nil
}

// typeArguments resolves the arguments of a generic instantiation and flags
// those equal to the default of the declared type parameter at the same
// position.
func (c *Context) typeArguments(sym *oracle.Symbol, args []*oracle.Type) ([]surface.TypeArgument, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := c.checker.DeclaredTypeParameters(sym)
	out := make([]surface.TypeArgument, 0, len(args))
	for i, arg := range args {
		node, err := c.Resolve(arg, Hint{})
		if err != nil {
			return nil, err
		}
		ta := surface.TypeArgument{Type: node}
		if i < len(params) {
			if def := c.checker.DefaultFromTypeParameter(params[i]); def != nil {
				ta.IsDefault = c.checker.IsTypeIdenticalTo(arg, def)
			}
		}
		out = append(out, ta)
	}
	return out, nil
}

// namespacesOf returns the enclosing namespace names of sym, outermost
// first. File-level module symbols are not namespaces.
func namespacesOf(sym *oracle.Symbol) []string {
	var ns []string
	for p := sym.Parent; p != nil; p = p.Parent {
		if !p.Is(oracle.SymbolFlagsModule|oracle.SymbolFlagsEnum) || isFileSymbol(p) {
			break
		}
		ns = append([]string{p.Name}, ns...)
	}
	return ns
}

func isFileSymbol(sym *oracle.Symbol) bool {
	d := sym.FirstDeclaration()
	return d != nil && d.Kind == oracle.DeclarationSourceFile
}

// literalText renders a literal type's value as source text: strings are
// double-quoted, bigints carry the n suffix. A value that does not match the
// literal flags is reported and rendered as "".
func (c *Context) literalText(t *oracle.Type, decl *oracle.Declaration) (string, bool) {
	if text, ok := formatLiteral(t); ok {
		return text, true
	}
	c.warn(diagnostic.CategoryTypeUnsupported, decl,
		fmt.Sprintf("literal %s has a %T value that does not match its flags", t.Flags, t.Value), "")
	return "", false
}

func formatLiteral(t *oracle.Type) (string, bool) {
	switch {
	case t.Is(oracle.TypeFlagsBigIntLiteral):
		if v, ok := t.Value.(string); ok {
			return v + "n", true
		}
	case t.Is(oracle.TypeFlagsStringLiteral):
		if v, ok := t.Value.(string); ok {
			return strconv.Quote(v), true
		}
	case t.Is(oracle.TypeFlagsNumberLiteral):
		switch v := t.Value.(type) {
		case float64:
			return formatNumber(v), true
		case int:
			return strconv.Itoa(v), true
		}
	case t.Is(oracle.TypeFlagsBooleanLiteral):
		if v, ok := t.Value.(bool); ok {
			return strconv.FormatBool(v), true
		}
	}
	return "", false
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
