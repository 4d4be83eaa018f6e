package apidiff_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsgonest/typesurface/internal/apidiff"
	"github.com/tsgonest/typesurface/internal/surface"
)

func object(name string, props ...string) *surface.ObjectNode {
	obj := &surface.ObjectNode{Name: surface.SimpleName(name)}
	for _, p := range props {
		obj.Properties = append(obj.Properties, &surface.PropertyNode{
			Name: p, Type: surface.NewIntrinsic(surface.IntrinsicString),
		})
	}
	return obj
}

func program(modules map[string][]*surface.ExportNode) map[string]any {
	p := &surface.ProgramNode{}
	for name, exports := range modules {
		p.Modules = append(p.Modules, &surface.ModuleNode{Name: name, Exports: exports})
	}
	p.SortModules()
	return p.ToObject()
}

func export(name string, t surface.TypeNode) *surface.ExportNode {
	return &surface.ExportNode{Name: name, Type: t}
}

func TestCompare(t *testing.T) {
	old := program(map[string][]*surface.ExportNode{
		"src/a.ts": {
			export("Props", object("Props", "label")),
			export("Gone", object("Gone")),
			export("Same", object("Same", "x")),
		},
	})
	updated := program(map[string][]*surface.ExportNode{
		"src/a.ts": {
			export("Props", object("Props", "label", "size")),
			export("Same", object("Same", "x")),
		},
		"src/b.ts": {export("Fresh", object("Fresh"))},
	})

	report, err := apidiff.Compare(old, updated)
	require.NoError(t, err)
	require.Len(t, report.Changes, 3)

	type summary struct {
		module, export string
		kind           apidiff.Kind
	}
	var got []summary
	for _, c := range report.Changes {
		got = append(got, summary{c.Module, c.Export, c.Kind})
	}
	assert.Equal(t, []summary{
		{"src/a.ts", "Gone", apidiff.Removed},
		{"src/a.ts", "Props", apidiff.Changed},
		{"src/b.ts", "Fresh", apidiff.Added},
	}, got)
	assert.True(t, report.Breaking())

	var inserted []string
	for _, l := range report.Changes[1].Lines {
		if l.Op == apidiff.OpInsert {
			inserted = append(inserted, l.Text)
		}
	}
	assert.NotEmpty(t, inserted)
	assert.Contains(t, strings.Join(inserted, "\n"), `"size"`)
}

func TestCompareIdentical(t *testing.T) {
	p := program(map[string][]*surface.ExportNode{
		"src/a.ts": {export("Props", object("Props", "label"))},
	})
	report, err := apidiff.Compare(p, p)
	require.NoError(t, err)
	assert.Empty(t, report.Changes)
	assert.False(t, report.Breaking())
}

func TestCompareAdditionsOnlyAreNotBreaking(t *testing.T) {
	old := program(map[string][]*surface.ExportNode{"src/a.ts": {export("A", object("A"))}})
	updated := program(map[string][]*surface.ExportNode{"src/a.ts": {export("A", object("A")), export("B", object("B"))}})

	report, err := apidiff.Compare(old, updated)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count(apidiff.Added))
	assert.False(t, report.Breaking())
}

func TestLineDiff(t *testing.T) {
	lines := apidiff.LineDiff("a\nb\nc\n", "a\nB\nc\n")
	assert.Equal(t, []apidiff.Line{
		{Op: apidiff.OpEqual, Text: "a"},
		{Op: apidiff.OpDelete, Text: "b"},
		{Op: apidiff.OpInsert, Text: "B"},
		{Op: apidiff.OpEqual, Text: "c"},
	}, lines)
}

func TestRender(t *testing.T) {
	old := program(map[string][]*surface.ExportNode{"src/a.ts": {export("Props", object("Props", "label"))}})
	updated := program(map[string][]*surface.ExportNode{"src/a.ts": {export("Props", object("Props", "label", "size"))}})
	report, err := apidiff.Compare(old, updated)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, apidiff.Render(&buf, report, false))
	out := buf.String()
	assert.Contains(t, out, "src/a.ts\n")
	assert.Contains(t, out, "  ~ Props (changed)\n")
	assert.Contains(t, out, `    + `)
	assert.True(t, strings.HasSuffix(out, "0 added, 0 removed, 1 changed\n"), out)
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := &surface.ProgramNode{Modules: []*surface.ModuleNode{
		{Name: "src/a.ts", Exports: []*surface.ExportNode{export("Props", object("Props", "label"))}},
	}}
	data, err := surface.Marshal(p)
	require.NoError(t, err)
	path := filepath.Join(dir, "surface.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	doc, err := apidiff.LoadFile(path)
	require.NoError(t, err)
	report, err := apidiff.Compare(doc, p.ToObject())
	require.NoError(t, err)
	assert.Empty(t, report.Changes, "decoded document compares equal to its source")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"nodeType":"module"}`), 0o644))
	_, err = apidiff.LoadFile(bad)
	assert.Error(t, err)

	_, err = apidiff.LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
