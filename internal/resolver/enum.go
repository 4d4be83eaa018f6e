package resolver

import (
	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/docs"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/surface"
)

// resolveEnum handles both enum types and single enum members. A member of
// a one-member enum stands for the whole enum; any other member becomes a
// literal named after it (Color.Red).
func (c *Context) resolveEnum(t *oracle.Type, hint Hint) (surface.TypeNode, error) {
	sym := t.Symbol
	if sym != nil && sym.Is(oracle.SymbolFlagsEnumMember) {
		parent := sym.Parent
		if parent == nil || len(c.checker.ExportsOfSymbol(parent)) != 1 {
			name := surface.NewTypeName(sym.Name, namespacesOf(sym), nil)
			if t.AliasSymbol != nil {
				var err error
				if name, err = c.aliasName(t); err != nil {
					return nil, err
				}
			}
			text, ok := c.literalText(t, hint.Decl)
			if !ok {
				return surface.NewIntrinsic(surface.IntrinsicAny), nil
			}
			return &surface.LiteralNode{Name: name, Value: text}, nil
		}
		sym = parent
	}
	if sym == nil {
		c.warn(diagnostic.CategoryTypeUnsupported, hint.Decl, "enum type without a symbol", "")
		return surface.NewIntrinsic(surface.IntrinsicAny), nil
	}

	var name *surface.TypeName
	if t.AliasSymbol != nil {
		var err error
		if name, err = c.aliasName(t); err != nil {
			return nil, err
		}
	} else {
		name = surface.NewTypeName(sym.Name, namespacesOf(sym), nil)
	}

	members := c.checker.ExportsOfSymbol(sym)
	node := &surface.EnumNode{Name: name, Members: make([]*surface.EnumMemberNode, 0, len(members))}
	for _, m := range members {
		mn := &surface.EnumMemberNode{Name: m.Name, Documentation: docs.ForSymbol(m)}
		if mt := c.checker.TypeOfSymbol(m); mt != nil && mt.Is(oracle.TypeFlagsLiteral) {
			if text, ok := c.literalText(mt, m.FirstDeclaration()); ok {
				mn.Value = &surface.LiteralNode{Value: text}
			}
		}
		node.Members = append(node.Members, mn)
	}
	return node, nil
}
