// Package component recognizes exported view functions and squashes their
// overloads into one component node with a single prop set.
package component

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsgonest/typesurface/internal/surface"
)

// DefaultReturnTypeNames are the return types that mark a function as
// rendering a view.
var DefaultReturnTypeNames = []string{
	"Element", "JSX.Element", "ReactElement", "ReactNode", "ReactPortal", "View",
}

// Options configures Augment.
type Options struct {
	// ReturnTypeNames are matched against both the qualified and the bare
	// name of a signature's return type.
	ReturnTypeNames []string
	// ExactOptionalPropertyTypes leaves props that are missing from some
	// overloads optional without adding undefined to their type.
	ExactOptionalPropertyTypes bool
}

func DefaultOptions() Options {
	return Options{ReturnTypeNames: append([]string(nil), DefaultReturnTypeNames...)}
}

// Augment returns exports with every view function replaced by a component
// node. The input slice and its nodes are not modified.
func Augment(exports []*surface.ExportNode, opts Options) []*surface.ExportNode {
	names := opts.ReturnTypeNames
	if names == nil {
		names = DefaultReturnTypeNames
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}

	out := make([]*surface.ExportNode, len(exports))
	for i, e := range exports {
		out[i] = e
		fn, ok := e.Type.(*surface.FunctionNode)
		if !ok || !componentName(e.Name) || !rendersView(fn, set) {
			continue
		}
		c := *e
		c.Type = &surface.ComponentNode{
			Name:       fn.Name,
			Props:      Squash(fn.Signatures, opts.ExactOptionalPropertyTypes),
			Signatures: fn.Signatures,
		}
		out[i] = &c
	}
	return out
}

// componentName reports whether the last segment of a dotted export name is
// capitalized or the default export.
func componentName(name string) bool {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if name == "default" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

func rendersView(fn *surface.FunctionNode, names map[string]bool) bool {
	for _, sig := range fn.Signatures {
		if matchesName(sig.ReturnType, names) {
			return true
		}
	}
	return false
}

func matchesName(t surface.TypeNode, names map[string]bool) bool {
	if t == nil {
		return false
	}
	if tn := t.TypeName(); tn != nil && (names[tn.Qualified()] || names[tn.Name]) {
		return true
	}
	if u, ok := t.(*surface.UnionNode); ok {
		for _, m := range u.Types {
			if matchesName(m, names) {
				return true
			}
		}
	}
	return false
}

type merged struct {
	prop *surface.PropertyNode
	seen int
}

// Squash merges the props (first parameter) of every signature into one
// property list, in first-seen order. A name reached through different
// declarations gets the union of their types; a prop missing from any
// signature is optional and, unless exact is set, includes undefined.
func Squash(sigs []*surface.SignatureNode, exact bool) []*surface.PropertyNode {
	byName := map[string]*merged{}
	var order []string

	for _, sig := range sigs {
		inSig := map[string]bool{}
		for _, p := range propsOf(sig) {
			m, ok := byName[p.Name]
			if !ok {
				cp := *p
				m = &merged{prop: &cp}
				byName[p.Name] = m
				order = append(order, p.Name)
			} else if m.prop.ID != p.ID || m.prop.ID.IsZero() {
				m.prop.Type = surface.NewUnion(nil, []surface.TypeNode{m.prop.Type, p.Type})
				m.prop.Optional = m.prop.Optional || p.Optional
				if m.prop.Documentation == nil {
					m.prop.Documentation = p.Documentation
				}
			}
			if !inSig[p.Name] {
				inSig[p.Name] = true
				m.seen++
			}
		}
	}

	out := make([]*surface.PropertyNode, 0, len(order))
	for _, name := range order {
		m := byName[name]
		if m.seen < len(sigs) {
			m.prop.Optional = true
			if !exact && !hasUndefined(m.prop.Type) {
				m.prop.Type = surface.NewUnion(nil, []surface.TypeNode{
					m.prop.Type, surface.NewIntrinsic(surface.IntrinsicUndefined),
				})
			}
		}
		out = append(out, m.prop)
	}
	return out
}

// propsOf collects the properties of a signature's first parameter: an
// object, an intersection with object members, or each object of a union.
func propsOf(sig *surface.SignatureNode) []*surface.PropertyNode {
	if len(sig.Parameters) == 0 {
		return nil
	}
	t := sig.Parameters[0].Type
	if props, ok := surface.ObjectProperties(t); ok {
		return props
	}
	u, ok := t.(*surface.UnionNode)
	if !ok {
		return nil
	}
	var props []*surface.PropertyNode
	for _, m := range u.Types {
		if mp, ok := surface.ObjectProperties(m); ok {
			props = append(props, mp...)
		}
	}
	return props
}

func hasUndefined(t surface.TypeNode) bool {
	switch v := t.(type) {
	case *surface.UnionNode:
		return v.Has(surface.IntrinsicUndefined)
	case *surface.IntrinsicNode:
		return v.Intrinsic == surface.IntrinsicUndefined
	}
	return false
}
