package resolver

import (
	"fmt"

	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/surface"
)

// Resolve maps one semantic type to a type node. Unsupported shapes degrade
// to the any intrinsic with a warning; errors are reserved for missing
// oracle context.
func (c *Context) Resolve(t *oracle.Type, hint Hint) (surface.TypeNode, error) {
	if t == nil {
		return nil, c.missingContext(hint.Decl, "type is nil", "hint", hint.Name)
	}
	if c.onStack(t) {
		return &surface.ObjectNode{Name: simpleName(t)}, nil
	}
	defer c.enter(t)()

	switch class := c.classify(t); class {
	case classTypeParameter:
		return c.resolveTypeParameter(t)
	case classArray:
		return c.resolveArray(t, hint)
	case classExternal:
		name, err := c.typeName(t)
		if err != nil {
			return nil, err
		}
		c.noteExternal(name, hint.Decl)
		return &surface.ReferenceNode{Name: name}, nil
	case classIntrinsic:
		name, err := c.aliasName(t)
		if err != nil {
			return nil, err
		}
		return &surface.IntrinsicNode{Name: name, Intrinsic: intrinsicOf(t.Flags)}, nil
	case classLiteral:
		name, err := c.aliasName(t)
		if err != nil {
			return nil, err
		}
		text, ok := c.literalText(t, hint.Decl)
		if !ok {
			return surface.NewIntrinsic(surface.IntrinsicAny), nil
		}
		return &surface.LiteralNode{Name: name, Value: text}, nil
	case classEnum:
		return c.resolveEnum(t, hint)
	case classUnion, classIntersection:
		return c.resolveCompound(t, class)
	case classTuple:
		return c.resolveTuple(t, hint)
	case classClass:
		return c.resolveClass(t)
	case classFunction:
		if c.callbackDepth >= c.opts.MaxCallbackDepth {
			name, err := c.aliasName(t)
			if err != nil {
				return nil, err
			}
			return &surface.IntrinsicNode{Name: name, Intrinsic: surface.IntrinsicFunction}, nil
		}
		return c.resolveFunction(t)
	case classObject:
		return c.resolveObject(t, hint)
	}

	c.warn(diagnostic.CategoryTypeUnsupported, hint.Decl,
		fmt.Sprintf("unsupported type %q (flags %s), emitting any", c.checker.TypeToString(t), t.Flags),
		"export a named alias or interface for this type")
	return surface.NewIntrinsic(surface.IntrinsicAny), nil
}

func (c *Context) resolveTypeParameter(t *oracle.Type) (*surface.TypeParameterNode, error) {
	node := &surface.TypeParameterNode{Name: simpleName(t)}
	if constraint := c.checker.ConstraintOfTypeParameter(t); constraint != nil {
		node.Constraint = c.checker.TypeToString(constraint)
	}
	if def := c.checker.DefaultFromTypeParameter(t); def != nil {
		d, err := c.Resolve(def, Hint{})
		if err != nil {
			return nil, err
		}
		node.Default = d
	}
	return node, nil
}

func (c *Context) resolveArray(t *oracle.Type, hint Hint) (surface.TypeNode, error) {
	name, err := c.aliasName(t)
	if err != nil {
		return nil, err
	}
	elem, err := c.Resolve(c.checker.TypeArguments(t)[0], Hint{Decl: hint.Decl})
	if err != nil {
		return nil, err
	}
	return &surface.ArrayNode{Name: name, ElementType: elem}, nil
}

func (c *Context) resolveTuple(t *oracle.Type, hint Hint) (surface.TypeNode, error) {
	name, err := c.aliasName(t)
	if err != nil {
		return nil, err
	}
	args := c.checker.TypeArguments(t)
	elems := make([]surface.TypeNode, 0, len(args))
	for _, a := range args {
		n, err := c.Resolve(a, Hint{Decl: hint.Decl})
		if err != nil {
			return nil, err
		}
		elems = append(elems, n)
	}
	return &surface.TupleNode{Name: name, Elements: elems}, nil
}

func (c *Context) resolveCompound(t *oracle.Type, class typeClass) (surface.TypeNode, error) {
	name, err := c.aliasName(t)
	if err != nil {
		return nil, err
	}
	members := make([]surface.TypeNode, 0, len(t.Types))
	for _, m := range t.Types {
		n, err := c.Resolve(m, Hint{})
		if err != nil {
			return nil, err
		}
		members = append(members, n)
	}
	if class == classUnion {
		return surface.NewUnion(name, members), nil
	}
	return surface.NewIntersection(name, members), nil
}
