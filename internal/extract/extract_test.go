package extract_test

import (
	"context"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgonest/typesurface/internal/config"
	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/extract"
	"github.com/tsgonest/typesurface/internal/resolver"
	"github.com/tsgonest/typesurface/internal/snapshot"
	"github.com/tsgonest/typesurface/internal/surface"
)

// project builds three modules: a healthy one with a component, a broken
// one and a test file.
func project() *snapshot.Program {
	b := snapshot.NewBuilder("/project")

	card := b.File("src/card.ts", false)
	view := b.Interface(card, "View")
	b.AddProperty(view, "key", b.StringType(), false)
	props := b.Interface(card, "CardProps")
	b.AddProperty(props, "title", b.StringType(), false)
	fn, fnType, fnDecl := b.Function(card, "Card")
	b.AddCallSignature(fnType, b.Signature(fnDecl, view, b.Parameter(fnDecl, "props", props, false)))
	secret := b.Interface(card, "Secret")
	b.Doc(secret.Symbol.FirstDeclaration(), "Not for you.", snapshot.Tag("internal", ""))
	stable := b.Interface(card, "Stable")
	b.Doc(stable.Symbol.FirstDeclaration(), "Stable API.", snapshot.Tag("public", ""))
	b.Export(card, props.Symbol, fn, secret.Symbol, stable.Symbol)

	broken := b.File("src/broken.ts", false)
	bad := b.Interface(broken, "Bad")
	b.AddProperty(bad, "lost", nil, false)
	b.Export(broken, bad.Symbol)

	spec := b.File("src/card.test.ts", false)
	fixture := b.Interface(spec, "Fixture")
	b.Export(spec, fixture.Symbol)

	return b.Program()
}

func names(mod *surface.ModuleNode) []string {
	out := make([]string, len(mod.Exports))
	for i, e := range mod.Exports {
		out[i] = e.Name
	}
	return out
}

func TestRunCollectsSurvivingModules(t *testing.T) {
	res, err := extract.Run(context.Background(), project(), extract.Options{
		Resolver:  resolver.DefaultOptions(),
		Component: config.DefaultConfig().ComponentOptions(),
		Include:   []string{"src/**/*.ts"},
		Exclude:   []string{"**/*.test.ts"},
	})

	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 1)
	assert.ErrorIs(t, err, resolver.ErrMissingContext)

	require.NotNil(t, res)
	require.Len(t, res.Program.Modules, 1)
	mod := res.Program.Modules[0]
	assert.Equal(t, "src/card.ts", mod.Name)
	assert.Equal(t, []string{"CardProps", "Card", "Secret", "Stable"}, names(mod))

	c, ok := mod.Export("Card").Type.(*surface.ComponentNode)
	require.True(t, ok, "got %T", mod.Export("Card").Type)
	require.Len(t, c.Props, 1)
	assert.Equal(t, "title", c.Props[0].Name)

	failed := 0
	for _, d := range res.Diagnostics.Diagnostics() {
		if d.Category == diagnostic.CategoryModuleFailed {
			failed++
			assert.Equal(t, "src/broken.ts", d.File)
		}
	}
	assert.Equal(t, 1, failed)
}

func TestRunPublicOnly(t *testing.T) {
	opts := extract.Options{Include: []string{"src/card.ts"}, PublicOnly: true}

	res, err := extract.Run(context.Background(), project(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"CardProps", "Card", "Stable"}, names(res.Program.Modules[0]))

	opts.StrictVisibility = true
	res, err = extract.Run(context.Background(), project(), opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stable"}, names(res.Program.Modules[0]))
}

func TestRunParallelIsDeterministic(t *testing.T) {
	b := snapshot.NewBuilder("/project")
	for _, path := range []string{"src/e.ts", "src/c.ts", "src/a.ts", "src/d.ts", "src/b.ts"} {
		file := b.File(path, false)
		i := b.Interface(file, "Props")
		b.AddProperty(i, "value", b.NumberType(), false)
		b.Export(file, i.Symbol)
	}

	res, err := extract.Run(context.Background(), b.Program(), extract.Options{Workers: 4})
	require.NoError(t, err)
	var got []string
	for _, m := range res.Program.Modules {
		got = append(got, m.Name)
	}
	assert.Equal(t, []string{"src/a.ts", "src/b.ts", "src/c.ts", "src/d.ts", "src/e.ts"}, got)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extract.Run(ctx, project(), extract.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Workers = 3
	cfg.PublicOnly = true
	cfg.Resolve.StrictVisibility = true

	opts := extract.FromConfig(&cfg)
	assert.Equal(t, 3, opts.Workers)
	assert.True(t, opts.PublicOnly)
	assert.True(t, opts.StrictVisibility)
	assert.Equal(t, cfg.Include, opts.Include)
	assert.Equal(t, resolver.DefaultMaxDepth, opts.Resolver.MaxDepth)
}
