package resolver

import (
	"strings"

	"github.com/tsgonest/typesurface/internal/docs"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/surface"
)

// reservedStatics are members every constructor inherits from Function.
var reservedStatics = map[string]bool{
	"prototype": true,
	"length":    true,
	"name":      true,
	"caller":    true,
	"arguments": true,
	"apply":     true,
	"call":      true,
	"bind":      true,
}

// resolveClass resolves the static side of a class: construct signatures,
// instance members (through the declared instance type) and static members.
func (c *Context) resolveClass(t *oracle.Type) (surface.TypeNode, error) {
	sym := t.Symbol
	classDecl := classDeclaration(sym)

	name, err := c.typeName(t)
	if err != nil {
		return nil, err
	}
	node := &surface.ClassNode{Name: name}
	if classDecl != nil && len(classDecl.TypeParameters) > 0 {
		node.TypeParameters = append([]string(nil), classDecl.TypeParameters...)
	}

	classDoc := docs.Nearest(classDecl)
	for _, sig := range c.checker.SignaturesOfType(t, oracle.SignatureKindConstruct) {
		doc := docs.Nearest(sig.Declaration)
		if doc == nil {
			doc = classDoc
		}
		// the constructed instance is the class itself
		sn, err := c.signature(sig, doc, false)
		if err != nil {
			return nil, err
		}
		node.ConstructSignatures = append(node.ConstructSignatures, sn)
	}

	if instance := c.checker.DeclaredTypeOfSymbol(sym); instance != nil && instance != t {
		if err := c.classMembers(node, instance, classDecl, false); err != nil {
			return nil, err
		}
	}
	if err := c.classMembers(node, t, classDecl, true); err != nil {
		return nil, err
	}
	return node, nil
}

func classDeclaration(sym *oracle.Symbol) *oracle.Declaration {
	for _, d := range sym.Declarations {
		if d.Kind == oracle.DeclarationClass {
			return d
		}
	}
	return sym.FirstDeclaration()
}

// classMembers appends the public properties and methods of owner to node.
func (c *Context) classMembers(node *surface.ClassNode, owner *oracle.Type, classDecl *oracle.Declaration, static bool) error {
	for _, m := range c.checker.PropertiesOfType(owner) {
		if c.skipMember(m, classDecl, static) {
			continue
		}
		mt := c.checker.TypeOfSymbol(m)
		decl := m.FirstDeclaration()

		if isMethodDeclaration(decl) && mt != nil && len(c.checker.SignaturesOfType(mt, oracle.SignatureKindCall)) > 0 {
			method, err := c.resolveMethod(m, mt, static)
			if err != nil {
				return err
			}
			node.Methods = append(node.Methods, method)
			continue
		}

		prop, err := c.resolveProperty(m)
		if err != nil {
			return err
		}
		node.Properties = append(node.Properties, &surface.ClassPropertyNode{
			PropertyNode: *prop,
			Static:       static,
			Readonly:     isReadonly(m),
		})
	}
	return nil
}

func (c *Context) resolveMethod(m *oracle.Symbol, mt *oracle.Type, static bool) (*surface.MethodNode, error) {
	defer c.pushSymbol(m.Name)()

	method := &surface.MethodNode{Name: m.Name, Static: static, Documentation: docs.ForSymbol(m)}
	for _, sig := range c.checker.SignaturesOfType(mt, oracle.SignatureKindCall) {
		sn, err := c.resolveSignature(sig, ownDoc(sig))
		if err != nil {
			return nil, c.wrap(err)
		}
		method.Signatures = append(method.Signatures, sn)
	}
	return method, nil
}

// skipMember filters members that are not part of the public surface.
func (c *Context) skipMember(m *oracle.Symbol, classDecl *oracle.Declaration, static bool) bool {
	if m.Is(oracle.SymbolFlagsPrototype) || strings.HasPrefix(m.Name, "_") {
		return true
	}
	if doc := docs.ForSymbol(m); doc != nil && doc.IsHidden() {
		return true
	}
	decl := m.FirstDeclaration()
	if decl.Has(oracle.ModifierPrivate | oracle.ModifierProtected) {
		return true
	}
	if static && reservedStatics[m.Name] && (decl == nil || decl.Parent != classDecl) {
		return true
	}
	return false
}

func isMethodDeclaration(d *oracle.Declaration) bool {
	if d == nil {
		return false
	}
	switch d.Kind {
	case oracle.DeclarationMethod, oracle.DeclarationMethodSignature,
		oracle.DeclarationGetAccessor, oracle.DeclarationSetAccessor:
		return true
	}
	return false
}

// isReadonly: an explicit readonly modifier (also on a constructor parameter
// property), or a getter without a setter.
func isReadonly(m *oracle.Symbol) bool {
	var getter, setter bool
	for _, d := range m.Declarations {
		if d.Has(oracle.ModifierReadonly) {
			return true
		}
		switch d.Kind {
		case oracle.DeclarationGetAccessor:
			getter = true
		case oracle.DeclarationSetAccessor:
			setter = true
		}
	}
	return getter && !setter
}
