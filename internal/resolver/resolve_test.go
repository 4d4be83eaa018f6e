package resolver_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/resolver"
	"github.com/tsgonest/typesurface/internal/snapshot"
	"github.com/tsgonest/typesurface/internal/surface"
)

const module = "src/index.ts"

type env struct {
	b     *snapshot.Builder
	file  *oracle.Declaration
	diags *diagnostic.Collector
}

func newEnv(t *testing.T) *env {
	t.Helper()
	b := snapshot.NewBuilder("/project")
	return &env{b: b, file: b.File(module, false), diags: diagnostic.NewCollector(false, false)}
}

func (e *env) context(opts resolver.Options) *resolver.Context {
	return resolver.NewContext(e.b.Program(), module, opts, e.diags)
}

func (e *env) resolve(t *testing.T, typ *oracle.Type) surface.TypeNode {
	t.Helper()
	node, err := e.context(resolver.DefaultOptions()).Resolve(typ, resolver.Hint{})
	require.NoError(t, err)
	require.NotNil(t, node)
	return node
}

func (e *env) module(t *testing.T, opts resolver.Options) *surface.ModuleNode {
	t.Helper()
	mod, err := e.context(opts).ResolveModule()
	require.NoError(t, err)
	return mod
}

func exportNames(mod *surface.ModuleNode) []string {
	out := make([]string, len(mod.Exports))
	for i, e := range mod.Exports {
		out[i] = e.Name
	}
	return out
}

func TestResolveUnionDedupesAndTrailsNull(t *testing.T) {
	e := newEnv(t)
	b := e.b
	// 'foo' | 'bar' | null | 'foo'
	u := b.Union(b.StringLiteral("foo"), b.StringLiteral("bar"), b.NullType(), b.StringLiteral("foo"))

	node := e.resolve(t, u)
	union, ok := node.(*surface.UnionNode)
	require.True(t, ok, "got %T", node)
	require.Len(t, union.Types, 3)
	assert.Equal(t, `"foo"`, surface.Display(union.Types[0]))
	assert.Equal(t, `"bar"`, surface.Display(union.Types[1]))
	assert.Equal(t, "null", surface.Display(union.Types[2]))
}

func TestResolveAliasedUnionKeepsName(t *testing.T) {
	e := newEnv(t)
	b := e.b
	u := b.Union(b.StringLiteral("sm"), b.StringLiteral("lg"))
	b.Alias(e.file, "Size", u)

	node := e.resolve(t, u)
	require.NotNil(t, node.TypeName())
	assert.Equal(t, "Size", node.TypeName().Name)
}

func TestResolveSingleMemberUnionCollapses(t *testing.T) {
	e := newEnv(t)
	b := e.b
	node := e.resolve(t, b.Union(b.NumberType()))
	assert.Equal(t, surface.NewIntrinsic(surface.IntrinsicNumber), node)
}

func TestResolveLiterals(t *testing.T) {
	e := newEnv(t)
	b := e.b
	tests := []struct {
		name string
		typ  *oracle.Type
		want string
	}{
		{name: "string requoted", typ: b.StringLiteral(`it's`), want: `"it's"`},
		{name: "integer", typ: b.NumberLiteral(42), want: "42"},
		{name: "fraction", typ: b.NumberLiteral(1.5), want: "1.5"},
		{name: "bigint", typ: b.BigIntLiteral("10"), want: "10n"},
		{name: "true", typ: b.BooleanLiteral(true), want: "true"},
		{name: "false", typ: b.BooleanLiteral(false), want: "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lit, ok := e.resolve(t, tt.typ).(*surface.LiteralNode)
			require.True(t, ok)
			assert.Equal(t, tt.want, lit.Value)
		})
	}
}

func TestResolveMismatchedLiteralValue(t *testing.T) {
	e := newEnv(t)
	quoted := e.b.Alone(oracle.TypeFlagsNumberLiteral)
	quoted.Value = "42"

	tests := []struct {
		name string
		typ  *oracle.Type
	}{
		{name: "boolean without value", typ: e.b.Alone(oracle.TypeFlagsBooleanLiteral)},
		{name: "number given as string", typ: quoted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e.diags = diagnostic.NewCollector(false, false)
			node := e.resolve(t, tt.typ)
			assert.Equal(t, surface.IntrinsicAny, node.(*surface.IntrinsicNode).Intrinsic)

			diags := e.diags.Diagnostics()
			require.Len(t, diags, 1)
			assert.Equal(t, diagnostic.CategoryTypeUnsupported, diags[0].Category)
		})
	}
}

func TestResolveTemplateLiteralIsString(t *testing.T) {
	e := newEnv(t)
	node := e.resolve(t, e.b.Alone(oracle.TypeFlagsTemplateLiteral))
	assert.Equal(t, surface.IntrinsicString, node.(*surface.IntrinsicNode).Intrinsic)
}

func TestResolveAliasedIntrinsic(t *testing.T) {
	e := newEnv(t)
	id := e.b.Alone(oracle.TypeFlagsString)
	e.b.Alias(e.file, "UserID", id)

	node := e.resolve(t, id)
	in, ok := node.(*surface.IntrinsicNode)
	require.True(t, ok)
	assert.Equal(t, surface.IntrinsicString, in.Intrinsic)
	assert.Equal(t, "UserID", in.Name.Name)
}

func TestResolveRecursiveShapeTerminates(t *testing.T) {
	e := newEnv(t)
	b := e.b
	// type Node = { next: Node }
	node := b.TypeLiteral(e.file)
	b.AddProperty(node, "next", node, false)
	b.Alias(e.file, "Node", node)

	obj, ok := e.resolve(t, node).(*surface.ObjectNode)
	require.True(t, ok)
	assert.Equal(t, "Node", obj.Name.Name)
	require.Len(t, obj.Properties, 1)

	next, ok := obj.Properties[0].Type.(*surface.ObjectNode)
	require.True(t, ok, "cycle should yield a placeholder object, got %T", obj.Properties[0].Type)
	assert.True(t, next.IsEmpty())
	assert.Equal(t, "Node", next.Name.Name)
}

func TestResolveMutualRecursionTerminates(t *testing.T) {
	e := newEnv(t)
	b := e.b
	a := b.Interface(e.file, "A")
	c := b.Interface(e.file, "B")
	b.AddProperty(a, "b", c, true)
	b.AddProperty(c, "a", a, true)

	obj := e.resolve(t, a).(*surface.ObjectNode)
	inner := obj.Properties[0].Type.(*surface.ObjectNode)
	assert.Equal(t, "B", inner.Name.Name)
	back := inner.Properties[0].Type.(*surface.ObjectNode)
	assert.True(t, back.IsEmpty())
	assert.Equal(t, "A", back.Name.Name)
}

func TestResolveCycleThroughCompounds(t *testing.T) {
	t.Run("union and array", func(t *testing.T) {
		e := newEnv(t)
		b := e.b
		// type Json = string | Json[]
		json := b.Union(b.StringType())
		json.Types = append(json.Types, b.Array(json))
		b.Alias(e.file, "Json", json)

		union, ok := e.resolve(t, json).(*surface.UnionNode)
		require.True(t, ok)
		assert.Equal(t, "Json", union.Name.Name)
		require.Len(t, union.Types, 2)
		assert.Equal(t, surface.IntrinsicString, union.Types[0].(*surface.IntrinsicNode).Intrinsic)

		arr, ok := union.Types[1].(*surface.ArrayNode)
		require.True(t, ok, "got %T", union.Types[1])
		elem, ok := arr.ElementType.(*surface.ObjectNode)
		require.True(t, ok, "got %T", arr.ElementType)
		assert.True(t, elem.IsEmpty())
		assert.Equal(t, "Json", elem.Name.Name)
	})
	t.Run("tuple", func(t *testing.T) {
		e := newEnv(t)
		b := e.b
		// type Pair = [Pair, number]
		pair := b.Tuple()
		b.SetTypeArguments(pair, pair, b.NumberType())
		b.Alias(e.file, "Pair", pair)

		tup, ok := e.resolve(t, pair).(*surface.TupleNode)
		require.True(t, ok)
		require.Len(t, tup.Elements, 2)
		head, ok := tup.Elements[0].(*surface.ObjectNode)
		require.True(t, ok, "got %T", tup.Elements[0])
		assert.True(t, head.IsEmpty())
		assert.Equal(t, "Pair", head.Name.Name)
		assert.Equal(t, "number", surface.Display(tup.Elements[1]))
	})
	t.Run("intersection", func(t *testing.T) {
		e := newEnv(t)
		b := e.b
		// type T = Base & { self: T }
		base := b.Interface(e.file, "Base")
		b.AddProperty(base, "id", b.StringType(), false)
		self := b.TypeLiteral(e.file)
		tt := b.Intersection(base, self)
		b.AddProperty(self, "self", tt, false)
		b.Alias(e.file, "T", tt)

		inter, ok := e.resolve(t, tt).(*surface.IntersectionNode)
		require.True(t, ok)
		assert.Equal(t, "T", inter.Name.Name)
		require.Len(t, inter.Types, 2)
		require.Len(t, inter.Properties, 2)
		assert.Equal(t, "id", inter.Properties[0].Name)
		assert.Equal(t, "self", inter.Properties[1].Name)

		placeholder, ok := inter.Properties[1].Type.(*surface.ObjectNode)
		require.True(t, ok, "got %T", inter.Properties[1].Type)
		assert.True(t, placeholder.IsEmpty())
		assert.Equal(t, "T", placeholder.Name.Name)
	})
}

func bigShape(b *snapshot.Builder, owner *oracle.Type, n int) {
	for i := range n {
		b.AddProperty(owner, fmt.Sprintf("p%02d", i), b.StringType(), false)
	}
}

// The threshold follows the default ceiling of 50 properties.
func TestResolveLargeObjectIsNotExpanded(t *testing.T) {
	t.Run("named", func(t *testing.T) {
		e := newEnv(t)
		big := e.b.Interface(e.file, "Big")
		bigShape(e.b, big, 60)

		node := e.resolve(t, big)
		ref, ok := node.(*surface.ReferenceNode)
		require.True(t, ok, "got %T", node)
		assert.Equal(t, "Big", ref.Name.Name)

		diags := e.diags.Diagnostics()
		require.Len(t, diags, 1)
		assert.Equal(t, diagnostic.CategoryTruncated, diags[0].Category)
	})
	t.Run("anonymous", func(t *testing.T) {
		e := newEnv(t)
		big := e.b.TypeLiteral(e.file)
		bigShape(e.b, big, 60)

		obj, ok := e.resolve(t, big).(*surface.ObjectNode)
		require.True(t, ok)
		assert.True(t, obj.IsEmpty())
		assert.Nil(t, obj.Name)
	})
	t.Run("at ceiling", func(t *testing.T) {
		e := newEnv(t)
		big := e.b.Interface(e.file, "Fifty")
		bigShape(e.b, big, resolver.DefaultMaxProperties)

		obj, ok := e.resolve(t, big).(*surface.ObjectNode)
		require.True(t, ok)
		assert.Len(t, obj.Properties, resolver.DefaultMaxProperties)
	})
}

func TestResolvePolicies(t *testing.T) {
	e := newEnv(t)
	b := e.b
	big := b.Interface(e.file, "Big")
	bigShape(b, big, 60)
	b.AddProperty(big, "secret", b.StringType(), false)

	opts := resolver.DefaultOptions()
	opts.ShouldResolveObject = func(name string, count, depth int) resolver.Decision {
		if name == "Big" {
			return resolver.Allow
		}
		return resolver.NoOpinion
	}
	opts.ShouldInclude = func(name string, depth int) resolver.Decision {
		if name == "secret" {
			return resolver.Deny
		}
		return resolver.NoOpinion
	}

	node, err := e.context(opts).Resolve(big, resolver.Hint{})
	require.NoError(t, err)
	obj := node.(*surface.ObjectNode)
	assert.Len(t, obj.Properties, 60)
	for _, p := range obj.Properties {
		assert.NotEqual(t, "secret", p.Name)
	}
}

func TestResolveDepthCeiling(t *testing.T) {
	e := newEnv(t)
	b := e.b
	// Level0 { child: Level1 { child: Level2 { value: string } } }
	leaf := b.Interface(e.file, "Level2")
	b.AddProperty(leaf, "value", b.StringType(), false)
	mid := b.Interface(e.file, "Level1")
	b.AddProperty(mid, "child", leaf, false)
	top := b.Interface(e.file, "Level0")
	b.AddProperty(top, "child", mid, false)

	opts := resolver.DefaultOptions()
	opts.MaxDepth = 1
	node, err := e.context(opts).Resolve(top, resolver.Hint{})
	require.NoError(t, err)

	level1 := node.(*surface.ObjectNode).Properties[0].Type
	require.IsType(t, &surface.ObjectNode{}, level1)
	level2 := level1.(*surface.ObjectNode).Properties[0].Type
	ref, ok := level2.(*surface.ReferenceNode)
	require.True(t, ok, "got %T", level2)
	assert.Equal(t, "Level2", ref.Name.Name)
}

func TestResolveIndexSignature(t *testing.T) {
	e := newEnv(t)
	b := e.b
	dict := b.TypeLiteral(e.file)
	b.AddIndex(dict, b.NumberType(), b.BooleanType(), false)
	b.AddIndex(dict, b.StringType(), b.NumberType(), false)

	obj := e.resolve(t, dict).(*surface.ObjectNode)
	require.NotNil(t, obj.IndexSignature)
	assert.Equal(t, surface.IntrinsicString, obj.IndexSignature.KeyType)
	assert.Equal(t, "number", surface.Display(obj.IndexSignature.Type))
	assert.Empty(t, obj.Properties)
}

func TestResolveIsIdempotent(t *testing.T) {
	e := newEnv(t)
	b := e.b
	props := b.Interface(e.file, "Props")
	b.AddProperty(props, "size", b.Union(b.StringLiteral("sm"), b.StringLiteral("lg"), b.UndefinedType()), true)
	b.AddProperty(props, "items", b.Array(b.NumberType()), false)
	b.AddProperty(props, "pair", b.Tuple(b.StringType(), b.NumberType()), false)
	b.AddProperty(props, "onClick", b.FunctionType(props.Symbol.FirstDeclaration(), b.VoidType(), nil), true)

	first := e.resolve(t, props)
	second := e.resolve(t, props)
	assert.Empty(t, cmp.Diff(first.ToObject(), second.ToObject()))
}

func TestResolveArrayAndTuple(t *testing.T) {
	e := newEnv(t)
	b := e.b

	arr, ok := e.resolve(t, b.Array(b.StringType())).(*surface.ArrayNode)
	require.True(t, ok)
	assert.Equal(t, "string", surface.Display(arr.ElementType))

	tup, ok := e.resolve(t, b.Tuple(b.StringType(), b.StringType(), b.NumberType())).(*surface.TupleNode)
	require.True(t, ok)
	assert.Equal(t, "[string, string, number]", surface.Display(tup))
}

func TestResolveUnsupportedDegradesToAny(t *testing.T) {
	e := newEnv(t)
	node := e.resolve(t, e.b.Alone(oracle.TypeFlagsConditional))
	assert.Equal(t, surface.IntrinsicAny, node.(*surface.IntrinsicNode).Intrinsic)

	diags := e.diags.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.CategoryTypeUnsupported, diags[0].Category)
	assert.Equal(t, diagnostic.SeverityWarning, diags[0].Severity)
}

func TestResolveGenericDefaults(t *testing.T) {
	e := newEnv(t)
	b := e.b
	tp := b.TypeParameter("T", nil, b.StringType())
	box := b.Interface(e.file, "Box", tp)
	b.AddProperty(box, "value", tp, false)

	defaulted := e.resolve(t, b.Instantiate(box, b.StringType())).(*surface.ObjectNode)
	require.Len(t, defaulted.Name.TypeArguments, 1)
	assert.True(t, defaulted.Name.TypeArguments[0].IsDefault)
	assert.Equal(t, "Box<string>", defaulted.Name.String())

	explicit := e.resolve(t, b.Instantiate(box, b.NumberType())).(*surface.ObjectNode)
	assert.False(t, explicit.Name.TypeArguments[0].IsDefault)

	param, ok := explicit.Properties[0].Type.(*surface.TypeParameterNode)
	require.True(t, ok)
	assert.Equal(t, "T", param.Name.Name)
	assert.Equal(t, "string", surface.Display(param.Default))
}

func TestResolveTypeParameterConstraint(t *testing.T) {
	e := newEnv(t)
	b := e.b
	tp := b.TypeParameter("K", b.StringType(), nil)

	node := e.resolve(t, tp).(*surface.TypeParameterNode)
	assert.Equal(t, "string", node.Constraint)
	assert.Nil(t, node.Default)
}

func TestResolveExternalTypes(t *testing.T) {
	e := newEnv(t)
	b := e.b
	react := b.File("node_modules/@types/react/index.d.ts", true)
	element := b.Interface(react, "ReactElement")
	b.AddProperty(element, "type", b.StringType(), false)
	source := b.Interface(e.file, "Source")
	kept := b.AddProperty(source, "kept", b.NumberType(), false)
	pick := b.Interface(react, "Pick")
	b.ShareProperty(pick, kept)

	props := b.Interface(e.file, "Props")
	b.AddProperty(props, "icon", element, false)
	b.AddProperty(props, "picked", pick, false)

	obj := e.resolve(t, props).(*surface.ObjectNode)
	icon, ok := obj.Properties[0].Type.(*surface.ReferenceNode)
	require.True(t, ok, "got %T", obj.Properties[0].Type)
	assert.Equal(t, "ReactElement", icon.Name.Name)

	picked, ok := obj.Properties[1].Type.(*surface.ObjectNode)
	require.True(t, ok, "allow-listed types are expanded")
	assert.Len(t, picked.Properties, 1)

	diags := e.diags.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.CategoryExternalType, diags[0].Category)
	assert.Equal(t, diagnostic.SeverityDebug, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "ReactElement")

	opts := resolver.DefaultOptions()
	opts.IncludeExternalTypes = true
	node, err := e.context(opts).Resolve(props, resolver.Hint{})
	require.NoError(t, err)
	assert.IsType(t, &surface.ObjectNode{}, node.(*surface.ObjectNode).Properties[0].Type)
}

func TestResolveDropsExternallyDeclaredProperties(t *testing.T) {
	e := newEnv(t)
	b := e.b
	lib := b.File("node_modules/lib/index.d.ts", true)
	base := b.Interface(lib, "Base")
	inherited := b.AddProperty(base, "inherited", b.StringType(), false)

	props := b.Interface(e.file, "Props")
	b.AddProperty(props, "own", b.StringType(), false)
	b.ShareProperty(props, inherited)

	obj := e.resolve(t, props).(*surface.ObjectNode)
	require.Len(t, obj.Properties, 1)
	assert.Equal(t, "own", obj.Properties[0].Name)
}

func TestResolvePropertyIDsFollowDeclarations(t *testing.T) {
	e := newEnv(t)
	b := e.b
	base := b.Interface(e.file, "Base")
	shared := b.AddProperty(base, "id", b.StringType(), false)
	b.AddProperty(base, "other", b.StringType(), false)
	derived := b.Interface(e.file, "Derived")
	b.ShareProperty(derived, shared)

	ctx := e.context(resolver.DefaultOptions())
	bn, err := ctx.Resolve(base, resolver.Hint{})
	require.NoError(t, err)
	dn, err := ctx.Resolve(derived, resolver.Hint{})
	require.NoError(t, err)

	baseProps := bn.(*surface.ObjectNode).Properties
	derivedProps := dn.(*surface.ObjectNode).Properties
	assert.False(t, baseProps[0].ID.IsZero())
	assert.Equal(t, baseProps[0].ID, derivedProps[0].ID)
	assert.NotEqual(t, baseProps[0].ID, baseProps[1].ID)
}

func TestResolveMissingPropertyType(t *testing.T) {
	e := newEnv(t)
	b := e.b
	broken := b.Interface(e.file, "Broken")
	b.AddProperty(broken, "ok", b.StringType(), false)
	b.AddProperty(broken, "lost", nil, false)
	b.Export(e.file, broken.Symbol)

	_, err := e.context(resolver.DefaultOptions()).ResolveModule()
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrMissingContext)

	var pe *resolver.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{module, "Broken", "lost"}, pe.Chain)
	assert.Contains(t, err.Error(), "src/index.ts > Broken > lost")

	diags := e.diags.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, diagnostic.CategoryMissingContext, diags[0].Category)
	assert.Equal(t, diagnostic.SeverityError, diags[0].Severity)
	assert.Equal(t, "src/index.ts > Broken > lost", diags[0].Symbol)
}

func TestResolveNilType(t *testing.T) {
	e := newEnv(t)
	_, err := e.context(resolver.DefaultOptions()).Resolve(nil, resolver.Hint{Name: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrMissingContext)
}

func TestResolveNestedCallbacksBecomeShallow(t *testing.T) {
	e := newEnv(t)
	b := e.b
	decl := e.file
	// () => () => () => () => void
	f4 := b.FunctionType(decl, b.VoidType(), nil)
	f3 := b.FunctionType(decl, f4, nil)
	f2 := b.FunctionType(decl, f3, nil)
	f1 := b.FunctionType(decl, f2, nil)

	node := e.resolve(t, f1)
	for range resolver.DefaultMaxCallbackDepth {
		fn, ok := node.(*surface.FunctionNode)
		require.True(t, ok, "got %T", node)
		require.Len(t, fn.Signatures, 1)
		node = fn.Signatures[0].ReturnType
	}
	in, ok := node.(*surface.IntrinsicNode)
	require.True(t, ok, "got %T", node)
	assert.Equal(t, surface.IntrinsicFunction, in.Intrinsic)
}

func TestResolveFunctionSignature(t *testing.T) {
	e := newEnv(t)
	b := e.b
	tp := b.TypeParameter("T", b.StringType(), nil)
	sym, fn, decl := b.Function(e.file, "format")
	b.Doc(decl, "Formats a value.", snapshot.Tag("param", "value - the value to format"))
	value := b.Parameter(decl, "value", tp, false)
	rest := b.Parameter(decl, "extra", b.Array(b.NumberType()), false)
	sig := b.Signature(decl, b.StringType(), value, rest)
	sig.TypeParameters = []*oracle.Type{tp}
	sig.HasRestParameter = true
	b.AddCallSignature(fn, sig)

	node := e.resolve(t, b.Program().TypeOfSymbol(sym))
	f, ok := node.(*surface.FunctionNode)
	require.True(t, ok)
	assert.Equal(t, "format", f.Name.Name)
	require.Len(t, f.Signatures, 1)

	s := f.Signatures[0]
	assert.Equal(t, "Formats a value.", s.Documentation.Description)
	require.Len(t, s.TypeParameters, 1)
	assert.Equal(t, "string", s.TypeParameters[0].Constraint)
	require.Len(t, s.Parameters, 2)
	assert.Equal(t, "the value to format", s.Parameters[0].Documentation.Description)
	assert.False(t, s.Parameters[0].Rest)
	assert.True(t, s.Parameters[1].Rest)
	assert.Equal(t, "string", surface.Display(s.ReturnType))
}

func TestResolveEnums(t *testing.T) {
	e := newEnv(t)
	b := e.b
	_, color := b.Enum(e.file, "Color",
		snapshot.EnumMember{Name: "Red", Value: "red", Doc: "Warm."},
		snapshot.EnumMember{Name: "Green", Value: "green"},
	)
	_, solo := b.Enum(e.file, "Solo", snapshot.EnumMember{Name: "Only", Value: float64(1)})

	t.Run("enum type", func(t *testing.T) {
		en, ok := e.resolve(t, color).(*surface.EnumNode)
		require.True(t, ok)
		assert.Equal(t, "Color", en.Name.Name)
		require.Len(t, en.Members, 2)
		assert.Equal(t, "Red", en.Members[0].Name)
		assert.Equal(t, `"red"`, surface.Display(en.Members[0].Value))
		assert.Equal(t, "Warm.", en.Members[0].Documentation.Description)
	})
	t.Run("single member enum", func(t *testing.T) {
		en, ok := e.resolve(t, solo).(*surface.EnumNode)
		require.True(t, ok, "a one-member enum resolves to the enum")
		assert.Equal(t, "Solo", en.Name.Name)
		require.Len(t, en.Members, 1)
		assert.Equal(t, "1", surface.Display(en.Members[0].Value))
	})
	t.Run("lone member", func(t *testing.T) {
		lit, ok := e.resolve(t, color.Types[0]).(*surface.LiteralNode)
		require.True(t, ok)
		assert.Equal(t, "Color.Red", lit.Name.Qualified())
		assert.Equal(t, `"red"`, lit.Value)
	})
}
