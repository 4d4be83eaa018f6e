package surface

// UnionNode is a normalized union: no two equivalent members, null and
// undefined last, at least two members.
type UnionNode struct {
	Name  *TypeName
	Types []TypeNode
}

func (n *UnionNode) Kind() Kind          { return KindUnion }
func (n *UnionNode) TypeName() *TypeName { return n.Name }
func (n *UnionNode) ToObject() map[string]any {
	obj := base(n)
	obj["types"] = projectAll(n.Types)
	return obj
}

// Has reports whether the union contains the given intrinsic.
func (n *UnionNode) Has(i Intrinsic) bool {
	for _, t := range n.Types {
		if in, ok := t.(*IntrinsicNode); ok && in.Name == nil && in.Intrinsic == i {
			return true
		}
	}
	return false
}

// IntersectionNode is a normalized intersection. Properties holds the merged
// shape of its object members, nil when none of them is an object.
type IntersectionNode struct {
	Name       *TypeName
	Types      []TypeNode
	Properties []*PropertyNode
}

func (n *IntersectionNode) Kind() Kind          { return KindIntersection }
func (n *IntersectionNode) TypeName() *TypeName { return n.Name }
func (n *IntersectionNode) ToObject() map[string]any {
	obj := base(n)
	obj["types"] = projectAll(n.Types)
	if n.Properties != nil {
		obj["properties"] = projectProperties(n.Properties)
	}
	return obj
}

// NewUnion builds a union from member types. Anonymous nested unions are
// flattened, equivalent members dropped, a true/false pair merged into
// boolean, and null/undefined moved to the end. When a single member
// remains it is returned as is, so callers must not assume a *UnionNode.
func NewUnion(name *TypeName, types []TypeNode) TypeNode {
	members := flatten(types, KindUnion)
	members = dedupe(members)
	members = mergeBooleans(members)
	members = dedupe(members)
	members = trailNullish(members)
	switch len(members) {
	case 0:
		return &IntrinsicNode{Name: name, Intrinsic: IntrinsicNever}
	case 1:
		return members[0]
	}
	return &UnionNode{Name: name, Types: members}
}

// NewIntersection builds an intersection. It flattens, dedupes and orders
// like NewUnion but does not merge booleans.
func NewIntersection(name *TypeName, types []TypeNode) TypeNode {
	members := flatten(types, KindIntersection)
	members = dedupe(members)
	members = trailNullish(members)
	switch len(members) {
	case 0:
		return &IntrinsicNode{Name: name, Intrinsic: IntrinsicUnknown}
	case 1:
		return members[0]
	}
	return &IntersectionNode{Name: name, Types: members, Properties: mergedProperties(members)}
}

// flatten splices anonymous members of the same compound kind into the list.
// Named members are kept whole.
func flatten(types []TypeNode, kind Kind) []TypeNode {
	out := make([]TypeNode, 0, len(types))
	for _, t := range types {
		if t == nil {
			continue
		}
		if t.Kind() == kind && t.TypeName() == nil {
			switch c := t.(type) {
			case *UnionNode:
				out = append(out, flatten(c.Types, kind)...)
				continue
			case *IntersectionNode:
				out = append(out, flatten(c.Types, kind)...)
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// identityKey returns the deduplication key of a member. Kinds without a
// cheap key compare by node identity.
func identityKey(t TypeNode) any {
	switch n := t.(type) {
	case *LiteralNode:
		return [2]string{"literal", n.Value}
	case *ReferenceNode:
		return [2]string{"name", n.Name.String()}
	case *TypeParameterNode:
		return [2]string{"name", n.Name.String()}
	case *IntrinsicNode:
		if n.Name != nil {
			return [2]string{"intrinsic-name", n.Name.String()}
		}
		return [2]string{"intrinsic", string(n.Intrinsic)}
	}
	return t
}

func dedupe(types []TypeNode) []TypeNode {
	seen := make(map[any]struct{}, len(types))
	out := types[:0:0]
	for _, t := range types {
		k := identityKey(t)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
	}
	return out
}

func isBoolLiteral(t TypeNode, value string) bool {
	l, ok := t.(*LiteralNode)
	return ok && l.Name == nil && l.Value == value
}

// mergeBooleans replaces the first of a true/false literal pair with a
// boolean intrinsic and removes the second.
func mergeBooleans(types []TypeNode) []TypeNode {
	ti, fi := -1, -1
	for i, t := range types {
		if ti < 0 && isBoolLiteral(t, "true") {
			ti = i
		}
		if fi < 0 && isBoolLiteral(t, "false") {
			fi = i
		}
	}
	if ti < 0 || fi < 0 {
		return types
	}
	first, second := min(ti, fi), max(ti, fi)
	out := make([]TypeNode, 0, len(types)-1)
	for i, t := range types {
		switch i {
		case first:
			out = append(out, NewIntrinsic(IntrinsicBoolean))
		case second:
		default:
			out = append(out, t)
		}
	}
	return out
}

func isNullish(t TypeNode, i Intrinsic) bool {
	n, ok := t.(*IntrinsicNode)
	return ok && n.Name == nil && n.Intrinsic == i
}

// trailNullish moves null then undefined to the end of the list.
func trailNullish(types []TypeNode) []TypeNode {
	var null, undef TypeNode
	out := make([]TypeNode, 0, len(types))
	for _, t := range types {
		switch {
		case isNullish(t, IntrinsicNull):
			null = t
		case isNullish(t, IntrinsicUndefined):
			undef = t
		default:
			out = append(out, t)
		}
	}
	if null != nil {
		out = append(out, null)
	}
	if undef != nil {
		out = append(out, undef)
	}
	return out
}

// ObjectProperties returns the properties an object-like node contributes:
// the object's own properties, or the merged properties of an intersection.
func ObjectProperties(t TypeNode) ([]*PropertyNode, bool) {
	switch n := t.(type) {
	case *ObjectNode:
		return n.Properties, true
	case *IntersectionNode:
		if n.Properties != nil {
			return n.Properties, true
		}
	}
	return nil, false
}

// mergedProperties merges the properties of object members; a later member
// wins on a name clash. Returns nil when no member is object-like.
func mergedProperties(members []TypeNode) []*PropertyNode {
	var merged []*PropertyNode
	index := map[string]int{}
	found := false
	for _, m := range members {
		props, ok := ObjectProperties(m)
		if !ok {
			continue
		}
		found = true
		for _, p := range props {
			if i, ok := index[p.Name]; ok {
				merged[i] = p
				continue
			}
			index[p.Name] = len(merged)
			merged = append(merged, p)
		}
	}
	if !found {
		return nil
	}
	if merged == nil {
		merged = []*PropertyNode{}
	}
	return merged
}
