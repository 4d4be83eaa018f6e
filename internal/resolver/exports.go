package resolver

import (
	"fmt"
	"strings"

	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/docs"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/surface"
)

// heritageWrappers are utility types whose first argument names the real
// base of an extends clause.
var heritageWrappers = map[string]bool{
	"Pick":     true,
	"Omit":     true,
	"Partial":  true,
	"Required": true,
	"Readonly": true,
}

// ResolveModule resolves every export of the context's module, in the order
// the oracle reports them.
func (c *Context) ResolveModule() (*surface.ModuleNode, error) {
	defer c.pushSymbol(c.module)()

	syms, err := c.checker.ExportsOfModule(c.module)
	if err != nil {
		return nil, c.wrap(err)
	}
	mod := &surface.ModuleNode{Name: c.module, Exports: make([]*surface.ExportNode, 0, len(syms))}
	for _, sym := range syms {
		exports, err := c.resolveExport(sym, sym.Name, false)
		if err != nil {
			return nil, err
		}
		mod.Exports = append(mod.Exports, exports...)
	}
	return mod, nil
}

// resolveExport resolves one exported symbol under the dotted path it is
// reachable by. A symbol that is also a namespace yields its members after
// the primary export; a pure namespace yields only its members.
func (c *Context) resolveExport(sym *oracle.Symbol, path string, rename bool) ([]*surface.ExportNode, error) {
	defer c.pushSymbol(path)()

	target := sym
	var aliasDecl *oracle.Declaration
	if sym.Is(oracle.SymbolFlagsAlias) {
		aliasDecl = sym.FirstDeclaration()
		target = c.checker.AliasedSymbol(sym)
		if target == nil {
			c.warn(diagnostic.CategoryUnresolvedAlias, aliasDecl,
				fmt.Sprintf("export %q does not resolve to a declaration, skipped", path), "")
			return nil, nil
		}
		if aliasDecl != nil && aliasDecl.Kind == oracle.DeclarationExportSpecifier && aliasDecl.Name != target.Name {
			rename = true
		}
	}

	if isFileSymbol(target) {
		// export * as ns from "./mod"
		return c.namespaceMembers(target, path, true)
	}

	decl := target.FirstDeclaration()
	if decl != nil && !c.opts.IncludeExternalTypes && c.checker.IsExternalFile(decl.File) {
		return []*surface.ExportNode{{
			Name: path,
			Type: &surface.ExternalNode{
				Name:    surface.SimpleName(target.Name),
				Package: packageOf(decl.File),
			},
			Documentation: exportDoc(sym, target),
		}}, nil
	}

	var out []*surface.ExportNode
	if t := c.primaryType(target); t != nil {
		node, err := c.Resolve(t, Hint{Name: target.Name, Decl: decl})
		if err != nil {
			return nil, c.wrap(err)
		}
		node = exportNamed(node, path, rename)

		export := &surface.ExportNode{
			Name:          path,
			Type:          node,
			Documentation: exportDoc(sym, target),
			ExtendsTypes:  c.extendsTypes(target),
		}
		if decl != nil && decl.File != "" && decl.File != c.module {
			export.ReexportedFrom = decl.File
		}
		out = append(out, export)
	}

	if target.Is(oracle.SymbolFlagsModule) {
		members, err := c.namespaceMembers(target, path, rename)
		if err != nil {
			return nil, err
		}
		out = append(out, members...)
	}
	return out, nil
}

func (c *Context) namespaceMembers(ns *oracle.Symbol, path string, rename bool) ([]*surface.ExportNode, error) {
	if c.expanding[ns] {
		return nil, nil
	}
	c.expanding[ns] = true
	defer delete(c.expanding, ns)

	var out []*surface.ExportNode
	for _, m := range c.checker.ExportsOfSymbol(ns) {
		exports, err := c.resolveExport(m, path+"."+m.Name, rename)
		if err != nil {
			return nil, err
		}
		out = append(out, exports...)
	}
	return out, nil
}

// primaryType picks the type an export stands for: the value side of
// classes, functions and variables, the declared side of interfaces,
// aliases and enums. Pure namespaces have none.
func (c *Context) primaryType(sym *oracle.Symbol) *oracle.Type {
	switch {
	case sym.Is(oracle.SymbolFlagsClass | oracle.SymbolFlagsFunction | oracle.SymbolFlagsVariable):
		return c.checker.TypeOfSymbol(sym)
	case sym.Is(oracle.SymbolFlagsInterface | oracle.SymbolFlagsTypeAlias | oracle.SymbolFlagsEnum):
		return c.checker.DeclaredTypeOfSymbol(sym)
	case sym.Is(oracle.SymbolFlagsModule):
		return nil
	}
	if t := c.checker.DeclaredTypeOfSymbol(sym); t != nil {
		return t
	}
	return c.checker.TypeOfSymbol(sym)
}

// exportNamed applies the export path to the node's name. Renamed exports
// take the path outright; anonymous objects, functions and classes are
// named after their export.
func exportNamed(node surface.TypeNode, path string, rename bool) surface.TypeNode {
	name := node.TypeName()
	if rename && name != nil {
		return surface.Rename(node, name.WithPath(path))
	}
	if name == nil {
		switch node.(type) {
		case *surface.ObjectNode, *surface.FunctionNode, *surface.ClassNode:
			return surface.Rename(node, name.WithPath(path))
		}
	}
	return node
}

func exportDoc(alias, target *oracle.Symbol) *surface.Documentation {
	if doc := docs.ForSymbol(target); doc != nil {
		return doc
	}
	if alias != target {
		return docs.ForSymbol(alias)
	}
	return nil
}

// extendsTypes lists the extends clauses of interface and class
// declarations of sym.
func (c *Context) extendsTypes(sym *oracle.Symbol) []surface.ExtendsType {
	var out []surface.ExtendsType
	for _, d := range sym.Declarations {
		if d.Kind != oracle.DeclarationInterface && d.Kind != oracle.DeclarationClass {
			continue
		}
		for _, clause := range d.Heritage {
			if clause.Token != oracle.HeritageExtends {
				continue
			}
			for _, ht := range clause.Types {
				name, typ := ht.Expression, ht.Type
				if heritageWrappers[name] && len(ht.TypeArguments) > 0 {
					name = ht.TypeArguments[0]
					typ = nil
					if len(ht.TypeArgumentTypes) > 0 {
						typ = ht.TypeArgumentTypes[0]
					}
				}
				ext := surface.ExtendsType{Name: name}
				if typ != nil {
					if text := c.checker.TypeToString(typ); text != name {
						ext.ResolvedName = text
					}
				}
				out = append(out, ext)
			}
		}
	}
	return out
}

// packageOf returns the package a dependency file belongs to, e.g.
// "react" or "@scope/pkg".
func packageOf(file string) string {
	file = strings.ReplaceAll(file, "\\", "/")
	i := strings.LastIndex(file, "node_modules/")
	if i < 0 {
		return ""
	}
	parts := strings.Split(file[i+len("node_modules/"):], "/")
	if strings.HasPrefix(parts[0], "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}
