package resolver

import (
	"fmt"

	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/docs"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/surface"
)

// resolveObject expands an object-like type into its properties and index
// signature, subject to the expansion policy. A declined named shape becomes
// a reference, a declined anonymous one an empty object.
func (c *Context) resolveObject(t *oracle.Type, hint Hint) (surface.TypeNode, error) {
	name, err := c.typeName(t)
	if err != nil {
		return nil, err
	}
	policyName := hint.Name
	if name != nil {
		policyName = name.Qualified()
	}

	props := c.visibleProperties(t)
	depth := c.objectDepth
	if !c.shouldResolveObject(policyName, len(props), depth) {
		if len(props) > c.opts.MaxProperties {
			c.warn(diagnostic.CategoryTruncated, hint.Decl,
				fmt.Sprintf("object %q has %d properties, not expanded", policyName, len(props)), "")
		}
		if name != nil {
			return &surface.ReferenceNode{Name: name}, nil
		}
		return &surface.ObjectNode{}, nil
	}

	c.objectDepth++
	defer func() { c.objectDepth-- }()

	index, err := c.indexSignature(t)
	if err != nil {
		return nil, err
	}
	if len(props) == 0 && index == nil {
		return &surface.ObjectNode{Name: name}, nil
	}

	obj := &surface.ObjectNode{Name: name, IndexSignature: index}
	for _, p := range props {
		if !c.shouldInclude(p.Name, depth) {
			continue
		}
		pn, err := c.resolveProperty(p)
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, pn)
	}
	return obj, nil
}

// visibleProperties drops properties declared only in external files unless
// external types are included.
func (c *Context) visibleProperties(t *oracle.Type) []*oracle.Symbol {
	all := c.checker.PropertiesOfType(t)
	if c.opts.IncludeExternalTypes {
		return all
	}
	out := make([]*oracle.Symbol, 0, len(all))
	for _, p := range all {
		if c.declaredOnlyExternally(p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *Context) declaredOnlyExternally(sym *oracle.Symbol) bool {
	if len(sym.Declarations) == 0 {
		return false
	}
	for _, d := range sym.Declarations {
		if !c.checker.IsExternalFile(d.File) {
			return false
		}
	}
	return true
}

// resolveProperty builds the property node for a property symbol. A property
// without a type is fatal.
func (c *Context) resolveProperty(p *oracle.Symbol) (*surface.PropertyNode, error) {
	defer c.pushSymbol(p.Name)()

	pt := c.checker.TypeOfSymbol(p)
	if pt == nil {
		return nil, c.missingContext(p.FirstDeclaration(), "property has no type", "property", p.Name)
	}
	node, err := c.Resolve(pt, Hint{Name: p.Name, Decl: p.FirstDeclaration()})
	if err != nil {
		return nil, c.wrap(err)
	}
	return &surface.PropertyNode{
		Name:          p.Name,
		Type:          node,
		Documentation: docs.ForSymbol(p),
		Optional:      p.Is(oracle.SymbolFlagsOptional),
		ID:            c.propertyID(p),
	}, nil
}

// indexSignature resolves the string index signature of t, or the number
// one when there is no string index.
func (c *Context) indexSignature(t *oracle.Type) (*surface.IndexSignature, error) {
	infos := c.checker.IndexInfosOfType(t)
	var pick *oracle.IndexInfo
	key := surface.IntrinsicString
	for _, info := range infos {
		if info.KeyType.Is(oracle.TypeFlagsString) {
			pick = info
			break
		}
	}
	if pick == nil {
		for _, info := range infos {
			if info.KeyType.Is(oracle.TypeFlagsNumber) {
				pick, key = info, surface.IntrinsicNumber
				break
			}
		}
	}
	if pick == nil {
		return nil, nil
	}
	value, err := c.Resolve(pick.ValueType, Hint{})
	if err != nil {
		return nil, err
	}
	return &surface.IndexSignature{KeyType: key, Type: value}, nil
}
