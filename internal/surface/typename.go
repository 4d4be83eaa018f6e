package surface

import "strings"

// TypeName identifies a named type for display and identity.
// Namespaces and TypeArguments are nil when empty.
type TypeName struct {
	Name          string
	Namespaces    []string
	TypeArguments []TypeArgument
}

// TypeArgument is one resolved generic argument of a named type.
type TypeArgument struct {
	Type TypeNode
	// IsDefault is true when the argument equals the declared default of the
	// corresponding type parameter.
	IsDefault bool
}

// NewTypeName builds a TypeName, normalizing empty slices to nil. Returns nil
// for placeholder names.
func NewTypeName(name string, namespaces []string, args []TypeArgument) *TypeName {
	if IsPlaceholderName(name) {
		return nil
	}
	tn := &TypeName{Name: name}
	if len(namespaces) > 0 {
		tn.Namespaces = append([]string(nil), namespaces...)
	}
	if len(args) > 0 {
		tn.TypeArguments = append([]TypeArgument(nil), args...)
	}
	return tn
}

// SimpleName is shorthand for a TypeName without namespaces or arguments.
func SimpleName(name string) *TypeName {
	return NewTypeName(name, nil, nil)
}

// Qualified returns the dotted name without type arguments ("ns.Name").
func (n *TypeName) Qualified() string {
	if n == nil {
		return ""
	}
	if len(n.Namespaces) == 0 {
		return n.Name
	}
	return strings.Join(n.Namespaces, ".") + "." + n.Name
}

// String renders the name with its type arguments, e.g. "ns.Map<string, T>".
func (n *TypeName) String() string {
	if n == nil {
		return ""
	}
	q := n.Qualified()
	if len(n.TypeArguments) == 0 {
		return q
	}
	args := make([]string, len(n.TypeArguments))
	for i, a := range n.TypeArguments {
		args[i] = Display(a.Type)
	}
	return q + "<" + strings.Join(args, ", ") + ">"
}

// WithPath returns a copy whose qualified name is the given dotted path.
// Type arguments are kept.
func (n *TypeName) WithPath(path string) *TypeName {
	parts := strings.Split(path, ".")
	out := &TypeName{Name: parts[len(parts)-1]}
	if len(parts) > 1 {
		out.Namespaces = parts[:len(parts)-1]
	}
	if n != nil {
		out.TypeArguments = n.TypeArguments
	}
	return out
}

func (n *TypeName) toObject() map[string]any {
	obj := map[string]any{"name": n.Name}
	if len(n.Namespaces) > 0 {
		obj["namespaces"] = append([]string(nil), n.Namespaces...)
	}
	if len(n.TypeArguments) > 0 {
		args := make([]any, len(n.TypeArguments))
		for i, a := range n.TypeArguments {
			args[i] = map[string]any{
				"type":      project(a.Type),
				"isDefault": a.IsDefault,
			}
		}
		obj["typeArguments"] = args
	}
	return obj
}

// IsPlaceholderName reports whether a checker-internal anonymous marker was
// used as the name.
func IsPlaceholderName(name string) bool {
	switch name {
	case "", "__type", "__object", "__function", "__class", "__constructor", "__call", "__index":
		return true
	}
	return name[0] == '\xfe' || strings.HasPrefix(name, "__@")
}
