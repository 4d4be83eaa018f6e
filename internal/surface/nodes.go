// Package surface defines the normalized type AST produced by the resolver.
// Nodes are immutable once constructed; every node projects to a plain keyed
// structure through ToObject, which is the wire format consumers assert on.
package surface

// Kind identifies the variant of a TypeNode.
type Kind string

const (
	KindIntrinsic     Kind = "intrinsic"
	KindLiteral       Kind = "literal"
	KindReference     Kind = "reference"
	KindArray         Kind = "array"
	KindTuple         Kind = "tuple"
	KindObject        Kind = "object"
	KindUnion         Kind = "union"
	KindIntersection  Kind = "intersection"
	KindFunction      Kind = "function"
	KindComponent     Kind = "component"
	KindClass         Kind = "class"
	KindEnum          Kind = "enum"
	KindTypeParameter Kind = "typeParameter"
	KindExternal      Kind = "external"
)

// TypeNode is one node of the type AST.
type TypeNode interface {
	Kind() Kind
	// TypeName returns the display/identity name, nil for anonymous nodes.
	TypeName() *TypeName
	ToObject() map[string]any
}

// Intrinsic names a built-in primitive.
type Intrinsic string

const (
	IntrinsicAny       Intrinsic = "any"
	IntrinsicUnknown   Intrinsic = "unknown"
	IntrinsicNever     Intrinsic = "never"
	IntrinsicVoid      Intrinsic = "void"
	IntrinsicString    Intrinsic = "string"
	IntrinsicNumber    Intrinsic = "number"
	IntrinsicBoolean   Intrinsic = "boolean"
	IntrinsicBigInt    Intrinsic = "bigint"
	IntrinsicSymbol    Intrinsic = "symbol"
	IntrinsicUndefined Intrinsic = "undefined"
	IntrinsicNull      Intrinsic = "null"
	IntrinsicObject    Intrinsic = "object"
	IntrinsicFunction  Intrinsic = "function"
)

// IntrinsicNode is a primitive type, optionally named through an alias.
type IntrinsicNode struct {
	Name      *TypeName
	Intrinsic Intrinsic
}

// NewIntrinsic returns an unnamed intrinsic node.
func NewIntrinsic(i Intrinsic) *IntrinsicNode {
	return &IntrinsicNode{Intrinsic: i}
}

func (n *IntrinsicNode) Kind() Kind          { return KindIntrinsic }
func (n *IntrinsicNode) TypeName() *TypeName { return n.Name }
func (n *IntrinsicNode) ToObject() map[string]any {
	obj := base(n)
	obj["intrinsic"] = string(n.Intrinsic)
	return obj
}

// LiteralNode is a literal type. Value is the source text of the literal:
// double-quoted strings, numbers, true/false, bigints with an n suffix.
type LiteralNode struct {
	Name  *TypeName
	Value string
}

func (n *LiteralNode) Kind() Kind          { return KindLiteral }
func (n *LiteralNode) TypeName() *TypeName { return n.Name }
func (n *LiteralNode) ToObject() map[string]any {
	obj := base(n)
	obj["value"] = n.Value
	return obj
}

// ReferenceNode is a non-owning reference to a named type that is not
// expanded in place.
type ReferenceNode struct {
	Name *TypeName
}

func (n *ReferenceNode) Kind() Kind               { return KindReference }
func (n *ReferenceNode) TypeName() *TypeName      { return n.Name }
func (n *ReferenceNode) ToObject() map[string]any { return base(n) }

// ExternalNode stands for a type reached from a package outside the project.
type ExternalNode struct {
	Name    *TypeName
	Package string
}

func (n *ExternalNode) Kind() Kind          { return KindExternal }
func (n *ExternalNode) TypeName() *TypeName { return n.Name }
func (n *ExternalNode) ToObject() map[string]any {
	obj := base(n)
	if n.Package != "" {
		obj["package"] = n.Package
	}
	return obj
}

type ArrayNode struct {
	Name        *TypeName
	ElementType TypeNode
}

func (n *ArrayNode) Kind() Kind          { return KindArray }
func (n *ArrayNode) TypeName() *TypeName { return n.Name }
func (n *ArrayNode) ToObject() map[string]any {
	obj := base(n)
	obj["elementType"] = project(n.ElementType)
	return obj
}

type TupleNode struct {
	Name     *TypeName
	Elements []TypeNode
}

func (n *TupleNode) Kind() Kind          { return KindTuple }
func (n *TupleNode) TypeName() *TypeName { return n.Name }
func (n *TupleNode) ToObject() map[string]any {
	obj := base(n)
	obj["elements"] = projectAll(n.Elements)
	return obj
}

// IndexSignature is the `[key: string]: T` part of an object shape.
type IndexSignature struct {
	// KeyType is "string" or "number".
	KeyType Intrinsic
	Type    TypeNode
}

// ObjectNode is an expanded object shape. An empty property list with no
// index signature is the opaque placeholder used for cycles and for shapes
// the resolution policy declined to expand.
type ObjectNode struct {
	Name           *TypeName
	Properties     []*PropertyNode
	IndexSignature *IndexSignature
}

func (n *ObjectNode) Kind() Kind          { return KindObject }
func (n *ObjectNode) TypeName() *TypeName { return n.Name }
func (n *ObjectNode) ToObject() map[string]any {
	obj := base(n)
	obj["properties"] = projectProperties(n.Properties)
	if n.IndexSignature != nil {
		obj["indexSignature"] = map[string]any{
			"keyType": string(n.IndexSignature.KeyType),
			"type":    project(n.IndexSignature.Type),
		}
	}
	return obj
}

// IsEmpty reports whether the object carries no shape information.
func (n *ObjectNode) IsEmpty() bool {
	return len(n.Properties) == 0 && n.IndexSignature == nil
}

// ParameterNode is one parameter of a signature.
type ParameterNode struct {
	Name          string
	Type          TypeNode
	Optional      bool
	Rest          bool
	Documentation *Documentation
}

func (p *ParameterNode) toObject() map[string]any {
	obj := map[string]any{
		"name":     p.Name,
		"type":     project(p.Type),
		"optional": p.Optional,
	}
	if p.Rest {
		obj["rest"] = true
	}
	putDoc(obj, p.Documentation)
	return obj
}

// SignatureNode is one call or construct signature.
type SignatureNode struct {
	TypeParameters []*TypeParameterNode
	Parameters     []*ParameterNode
	ReturnType     TypeNode
	Documentation  *Documentation
}

func (s *SignatureNode) toObject() map[string]any {
	params := make([]any, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = p.toObject()
	}
	obj := map[string]any{
		"parameters": params,
	}
	if s.ReturnType != nil {
		obj["returnType"] = project(s.ReturnType)
	}
	if len(s.TypeParameters) > 0 {
		tps := make([]any, len(s.TypeParameters))
		for i, tp := range s.TypeParameters {
			tps[i] = tp.ToObject()
		}
		obj["typeParameters"] = tps
	}
	putDoc(obj, s.Documentation)
	return obj
}

func projectSignatures(sigs []*SignatureNode) []any {
	out := make([]any, len(sigs))
	for i, s := range sigs {
		out[i] = s.toObject()
	}
	return out
}

type FunctionNode struct {
	Name       *TypeName
	Signatures []*SignatureNode
}

func (n *FunctionNode) Kind() Kind          { return KindFunction }
func (n *FunctionNode) TypeName() *TypeName { return n.Name }
func (n *FunctionNode) ToObject() map[string]any {
	obj := base(n)
	obj["signatures"] = projectSignatures(n.Signatures)
	return obj
}

// ComponentNode is a UI view function whose overloads were squashed into a
// single prop set.
type ComponentNode struct {
	Name       *TypeName
	Props      []*PropertyNode
	Signatures []*SignatureNode
}

func (n *ComponentNode) Kind() Kind          { return KindComponent }
func (n *ComponentNode) TypeName() *TypeName { return n.Name }
func (n *ComponentNode) ToObject() map[string]any {
	obj := base(n)
	obj["props"] = projectProperties(n.Props)
	obj["signatures"] = projectSignatures(n.Signatures)
	return obj
}

// ClassPropertyNode is an instance or static property of a class.
type ClassPropertyNode struct {
	PropertyNode
	Static   bool
	Readonly bool
}

// MethodNode is an instance or static method of a class.
type MethodNode struct {
	Name          string
	Static        bool
	Signatures    []*SignatureNode
	Documentation *Documentation
}

type ClassNode struct {
	Name                *TypeName
	ConstructSignatures []*SignatureNode
	Properties          []*ClassPropertyNode
	Methods             []*MethodNode
	TypeParameters      []string
}

func (n *ClassNode) Kind() Kind          { return KindClass }
func (n *ClassNode) TypeName() *TypeName { return n.Name }
func (n *ClassNode) ToObject() map[string]any {
	obj := base(n)
	obj["constructSignatures"] = projectSignatures(n.ConstructSignatures)
	props := make([]any, len(n.Properties))
	for i, p := range n.Properties {
		po := p.PropertyNode.toObject()
		po["static"] = p.Static
		po["readonly"] = p.Readonly
		props[i] = po
	}
	obj["properties"] = props
	methods := make([]any, len(n.Methods))
	for i, m := range n.Methods {
		mo := map[string]any{
			"name":       m.Name,
			"static":     m.Static,
			"signatures": projectSignatures(m.Signatures),
		}
		putDoc(mo, m.Documentation)
		methods[i] = mo
	}
	obj["methods"] = methods
	if len(n.TypeParameters) > 0 {
		obj["typeParameters"] = append([]string(nil), n.TypeParameters...)
	}
	return obj
}

// EnumMemberNode is one constant of an enum.
type EnumMemberNode struct {
	Name          string
	Value         TypeNode
	Documentation *Documentation
}

type EnumNode struct {
	Name    *TypeName
	Members []*EnumMemberNode
}

func (n *EnumNode) Kind() Kind          { return KindEnum }
func (n *EnumNode) TypeName() *TypeName { return n.Name }
func (n *EnumNode) ToObject() map[string]any {
	obj := base(n)
	members := make([]any, len(n.Members))
	for i, m := range n.Members {
		mo := map[string]any{"name": m.Name}
		if m.Value != nil {
			mo["value"] = project(m.Value)
		}
		putDoc(mo, m.Documentation)
		members[i] = mo
	}
	obj["members"] = members
	return obj
}

// TypeParameterNode is an unresolved generic parameter.
type TypeParameterNode struct {
	Name *TypeName
	// Constraint is the textual constraint, empty when unconstrained.
	Constraint string
	Default    TypeNode
}

func (n *TypeParameterNode) Kind() Kind          { return KindTypeParameter }
func (n *TypeParameterNode) TypeName() *TypeName { return n.Name }
func (n *TypeParameterNode) ToObject() map[string]any {
	obj := base(n)
	if n.Constraint != "" {
		obj["constraint"] = n.Constraint
	}
	if n.Default != nil {
		obj["default"] = project(n.Default)
	}
	return obj
}

func base(n TypeNode) map[string]any {
	obj := map[string]any{"nodeType": string(n.Kind())}
	if name := n.TypeName(); name != nil {
		obj["typeName"] = name.toObject()
	}
	return obj
}

func project(n TypeNode) any {
	if n == nil {
		return nil
	}
	return n.ToObject()
}

func projectAll(nodes []TypeNode) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = project(n)
	}
	return out
}

// Display renders a short human-readable form of a node, used for type
// argument printing and diagnostics.
func Display(n TypeNode) string {
	if n == nil {
		return "?"
	}
	if name := n.TypeName(); name != nil {
		return name.String()
	}
	switch v := n.(type) {
	case *IntrinsicNode:
		return string(v.Intrinsic)
	case *LiteralNode:
		return v.Value
	case *ArrayNode:
		return Display(v.ElementType) + "[]"
	case *TupleNode:
		return "[" + joinDisplay(v.Elements, ", ") + "]"
	case *UnionNode:
		return joinDisplay(v.Types, " | ")
	case *IntersectionNode:
		return joinDisplay(v.Types, " & ")
	case *ObjectNode:
		if v.IsEmpty() {
			return "{}"
		}
		return "{...}"
	}
	return string(n.Kind())
}

func joinDisplay(nodes []TypeNode, sep string) string {
	out := ""
	for i, n := range nodes {
		if i > 0 {
			out += sep
		}
		out += Display(n)
	}
	return out
}
