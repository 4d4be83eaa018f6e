package surface

// Rename returns a shallow copy of the node carrying the given name. Nodes
// are immutable, so exports reached under another name get their own copy.
func Rename(n TypeNode, name *TypeName) TypeNode {
	switch v := n.(type) {
	case *IntrinsicNode:
		c := *v
		c.Name = name
		return &c
	case *LiteralNode:
		c := *v
		c.Name = name
		return &c
	case *ReferenceNode:
		c := *v
		c.Name = name
		return &c
	case *ExternalNode:
		c := *v
		c.Name = name
		return &c
	case *ArrayNode:
		c := *v
		c.Name = name
		return &c
	case *TupleNode:
		c := *v
		c.Name = name
		return &c
	case *ObjectNode:
		c := *v
		c.Name = name
		return &c
	case *UnionNode:
		c := *v
		c.Name = name
		return &c
	case *IntersectionNode:
		c := *v
		c.Name = name
		return &c
	case *FunctionNode:
		c := *v
		c.Name = name
		return &c
	case *ComponentNode:
		c := *v
		c.Name = name
		return &c
	case *ClassNode:
		c := *v
		c.Name = name
		return &c
	case *EnumNode:
		c := *v
		c.Name = name
		return &c
	case *TypeParameterNode:
		c := *v
		c.Name = name
		return &c
	}
	return n
}
