package surface

import (
	"sort"

	"github.com/google/uuid"
)

// PropertyID is the identity token of a declared property. Property nodes
// derived from the same declaration share the token; the zero value means
// no identity was recorded.
type PropertyID uuid.UUID

// NewPropertyID mints a fresh identity token.
func NewPropertyID() PropertyID {
	return PropertyID(uuid.New())
}

func (id PropertyID) IsZero() bool {
	return id == PropertyID{}
}

func (id PropertyID) String() string {
	return uuid.UUID(id).String()
}

// PropertyNode is a named member of an object shape or a component's props.
type PropertyNode struct {
	Name          string
	Type          TypeNode
	Documentation *Documentation
	Optional      bool
	// ID is not part of the projection.
	ID PropertyID
}

func (p *PropertyNode) toObject() map[string]any {
	obj := map[string]any{
		"name":     p.Name,
		"type":     project(p.Type),
		"optional": p.Optional,
	}
	putDoc(obj, p.Documentation)
	return obj
}

func projectProperties(props []*PropertyNode) []any {
	out := make([]any, len(props))
	for i, p := range props {
		out[i] = p.toObject()
	}
	return out
}

// ExtendsType is one base of an interface heritage clause.
type ExtendsType struct {
	Name         string
	ResolvedName string
}

// ExportNode is one exported symbol of a module. Name may be dotted for
// namespace members ("Parent.Child").
type ExportNode struct {
	Name           string
	Type           TypeNode
	Documentation  *Documentation
	ReexportedFrom string
	ExtendsTypes   []ExtendsType
}

// IsPublic reports whether the export belongs to the public surface. In
// strict mode only exports documented as public qualify.
func (e *ExportNode) IsPublic(strict bool) bool {
	if e.Documentation == nil {
		return !strict
	}
	switch e.Documentation.Visibility {
	case VisibilityPrivate, VisibilityInternal:
		return false
	case VisibilityPublic:
		return true
	}
	return !strict
}

func (e *ExportNode) ToObject() map[string]any {
	obj := map[string]any{
		"nodeType": "export",
		"name":     e.Name,
		"type":     project(e.Type),
	}
	putDoc(obj, e.Documentation)
	if e.ReexportedFrom != "" {
		obj["reexportedFrom"] = e.ReexportedFrom
	}
	if len(e.ExtendsTypes) > 0 {
		ext := make([]any, len(e.ExtendsTypes))
		for i, x := range e.ExtendsTypes {
			xo := map[string]any{"name": x.Name}
			if x.ResolvedName != "" {
				xo["resolvedName"] = x.ResolvedName
			}
			ext[i] = xo
		}
		obj["extendsTypes"] = ext
	}
	return obj
}

// ModuleNode is the export list of one source file. Name is the path
// relative to the project root.
type ModuleNode struct {
	Name    string
	Exports []*ExportNode
}

// Export returns the export with the given name.
func (m *ModuleNode) Export(name string) *ExportNode {
	for _, e := range m.Exports {
		if e.Name == name {
			return e
		}
	}
	return nil
}

func (m *ModuleNode) ToObject() map[string]any {
	exports := make([]any, len(m.Exports))
	for i, e := range m.Exports {
		exports[i] = e.ToObject()
	}
	return map[string]any{
		"nodeType": "module",
		"name":     m.Name,
		"exports":  exports,
	}
}

// ProgramNode is the resolver output for a whole program.
type ProgramNode struct {
	Modules []*ModuleNode
}

// Module returns the module with the given name.
func (p *ProgramNode) Module(name string) *ModuleNode {
	for _, m := range p.Modules {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// SortModules orders modules by name so output does not depend on the order
// files finished resolving in.
func (p *ProgramNode) SortModules() {
	sort.SliceStable(p.Modules, func(i, j int) bool {
		return p.Modules[i].Name < p.Modules[j].Name
	})
}

func (p *ProgramNode) ToObject() map[string]any {
	modules := make([]any, len(p.Modules))
	for i, m := range p.Modules {
		modules[i] = m.ToObject()
	}
	return map[string]any{
		"nodeType": "program",
		"modules":  modules,
	}
}
