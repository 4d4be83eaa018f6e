package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/resolver"
	"github.com/tsgonest/typesurface/internal/surface"
)

func TestResolveClass(t *testing.T) {
	e := newEnv(t)
	b := e.b

	lib := b.File("node_modules/typescript/lib/lib.es5.d.ts", true)
	function := b.Interface(lib, "Function")
	length := b.AddProperty(function, "length", b.NumberType(), false)

	tp := b.TypeParameter("T", nil, nil)
	sym, instance, static := b.Class(e.file, "Counter", tp)
	classDecl := sym.FirstDeclaration()
	b.Doc(classDecl, "Counts things.")

	ctor := b.Declare(oracle.DeclarationConstructor, "constructor", classDecl)
	b.AddConstructSignature(static, b.Signature(ctor, instance, b.Parameter(ctor, "start", b.NumberType(), true)))

	b.AddMember(instance, oracle.DeclarationProperty, "count", b.NumberType(), oracle.SymbolFlagsProperty, oracle.ModifierReadonly)
	b.AddMember(instance, oracle.DeclarationGetAccessor, "label", b.StringType(), oracle.SymbolFlagsGetAccessor, 0)
	b.AddMember(instance, oracle.DeclarationProperty, "_cache", b.AnyType(), oracle.SymbolFlagsProperty, 0)
	b.AddMember(instance, oracle.DeclarationProperty, "secret", b.StringType(), oracle.SymbolFlagsProperty, oracle.ModifierPrivate)
	b.AddMember(instance, oracle.DeclarationProperty, "guarded", b.StringType(), oracle.SymbolFlagsProperty, oracle.ModifierProtected)
	hidden := b.AddMember(instance, oracle.DeclarationProperty, "hidden", b.StringType(), oracle.SymbolFlagsProperty, 0)
	b.Doc(hidden.FirstDeclaration(), "", oracle.CommentTag{Name: "internal"})

	increment := b.FunctionType(classDecl, b.VoidType(), func(d *oracle.Declaration) []*oracle.Symbol {
		return []*oracle.Symbol{b.Parameter(d, "by", b.NumberType(), true)}
	})
	method := b.AddMember(instance, oracle.DeclarationMethod, "increment", increment, oracle.SymbolFlagsMethod, 0)
	b.Doc(method.FirstDeclaration(), "Adds to the count.")

	b.AddMember(static, oracle.DeclarationProperty, "instances", b.NumberType(), oracle.SymbolFlagsProperty, oracle.ModifierStatic)
	b.AddMember(static, oracle.DeclarationProperty, "prototype", instance, oracle.SymbolFlagsProperty|oracle.SymbolFlagsPrototype, 0)
	b.ShareProperty(static, length)
	b.AddMember(static, oracle.DeclarationProperty, "name", b.StringType(), oracle.SymbolFlagsProperty, oracle.ModifierStatic)

	b.Export(e.file, sym)
	mod := e.module(t, resolver.DefaultOptions())
	require.Len(t, mod.Exports, 1)

	class, ok := mod.Exports[0].Type.(*surface.ClassNode)
	require.True(t, ok, "got %T", mod.Exports[0].Type)
	assert.Equal(t, "Counter", class.Name.Name)
	assert.Equal(t, []string{"T"}, class.TypeParameters)
	assert.Equal(t, "Counts things.", mod.Exports[0].Documentation.Description)

	t.Run("construct signatures", func(t *testing.T) {
		require.Len(t, class.ConstructSignatures, 1)
		sig := class.ConstructSignatures[0]
		assert.Nil(t, sig.ReturnType)
		require.Len(t, sig.Parameters, 1)
		assert.Equal(t, "start", sig.Parameters[0].Name)
		assert.True(t, sig.Parameters[0].Optional)
		require.NotNil(t, sig.Documentation)
		assert.Equal(t, "Counts things.", sig.Documentation.Description)
	})

	t.Run("properties", func(t *testing.T) {
		type prop struct {
			name             string
			static, readonly bool
		}
		var got []prop
		for _, p := range class.Properties {
			got = append(got, prop{p.Name, p.Static, p.Readonly})
		}
		// a static "name" declared by the class itself is kept
		assert.Equal(t, []prop{
			{"count", false, true},
			{"label", false, true},
			{"instances", true, false},
			{"name", true, false},
		}, got)
	})

	t.Run("methods", func(t *testing.T) {
		require.Len(t, class.Methods, 1)
		m := class.Methods[0]
		assert.Equal(t, "increment", m.Name)
		assert.False(t, m.Static)
		assert.Equal(t, "Adds to the count.", m.Documentation.Description)
		require.Len(t, m.Signatures, 1)
		assert.Equal(t, "by", m.Signatures[0].Parameters[0].Name)
		assert.Equal(t, "void", surface.Display(m.Signatures[0].ReturnType))
	})
}

func TestResolveClassGetterWithSetterIsWritable(t *testing.T) {
	e := newEnv(t)
	b := e.b
	sym, instance, static := b.Class(e.file, "Box")
	ctor := b.Declare(oracle.DeclarationConstructor, "constructor", sym.FirstDeclaration())
	b.AddConstructSignature(static, b.Signature(ctor, instance))

	value := b.AddMember(instance, oracle.DeclarationGetAccessor, "value", b.StringType(), oracle.SymbolFlagsAccessor, 0)
	value.Declarations = append(value.Declarations, b.Declare(oracle.DeclarationSetAccessor, "value", sym.FirstDeclaration()))

	node := e.resolve(t, static)
	class := node.(*surface.ClassNode)
	require.Len(t, class.Properties, 1)
	assert.False(t, class.Properties[0].Readonly)
	assert.Empty(t, class.Methods)
}

func TestResolveInterfaceWithConstructSignatureIsNotAClass(t *testing.T) {
	e := newEnv(t)
	b := e.b
	factory := b.Interface(e.file, "Factory")
	decl := b.Declare(oracle.DeclarationConstructSignature, "__new", factory.Symbol.FirstDeclaration())
	b.AddConstructSignature(factory, b.Signature(decl, b.StringType()))
	b.AddProperty(factory, "kind", b.StringType(), false)

	node := e.resolve(t, factory)
	assert.IsType(t, &surface.ObjectNode{}, node)
}
