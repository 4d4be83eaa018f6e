// Package apidiff compares two extracted surfaces export by export.
package apidiff

import (
	"os"
	"sort"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"gitlab.com/tozd/go/errors"

	"github.com/tsgonest/typesurface/internal/surface"
)

// Kind classifies a change to one export.
type Kind string

const (
	Added   Kind = "added"
	Removed Kind = "removed"
	Changed Kind = "changed"
)

// Op is the role of one line in a line diff.
type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

// Line is one line of a rendered export diff.
type Line struct {
	Op   Op
	Text string
}

// Change is a difference in one export.
type Change struct {
	Module string
	Export string
	Kind   Kind
	// Lines is the line diff of the export's JSON; for added and removed
	// exports every line is inserted or deleted.
	Lines []Line
}

// Report lists the changes between two surfaces, ordered by module then
// export name.
type Report struct {
	Changes []Change
}

// Count returns how many changes are of kind k.
func (r *Report) Count(k Kind) int {
	n := 0
	for _, c := range r.Changes {
		if c.Kind == k {
			n++
		}
	}
	return n
}

// Breaking reports whether any export was removed or changed.
func (r *Report) Breaking() bool {
	return r.Count(Removed) > 0 || r.Count(Changed) > 0
}

// LoadFile reads a surface document written by extract.
func LoadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading surface %s: %w", path, err)
	}
	doc, err := surface.Decode(data)
	if err != nil {
		return nil, errors.WithDetails(err, "file", path)
	}
	if doc["nodeType"] != "program" {
		return nil, errors.WithDetails(errors.New("not a surface document"), "file", path, "nodeType", doc["nodeType"])
	}
	return doc, nil
}

// Compare diffs two projected programs.
func Compare(from, to map[string]any) (*Report, error) {
	before, err := index(from)
	if err != nil {
		return nil, errors.Errorf("old surface: %w", err)
	}
	after, err := index(to)
	if err != nil {
		return nil, errors.Errorf("new surface: %w", err)
	}

	report := &Report{}
	for key, o := range before {
		n, ok := after[key]
		switch {
		case !ok:
			report.Changes = append(report.Changes, Change{
				Module: key.module, Export: key.export, Kind: Removed, Lines: whole(o, OpDelete),
			})
		case o != n:
			report.Changes = append(report.Changes, Change{
				Module: key.module, Export: key.export, Kind: Changed, Lines: LineDiff(o, n),
			})
		}
	}
	for key, n := range after {
		if _, ok := before[key]; !ok {
			report.Changes = append(report.Changes, Change{
				Module: key.module, Export: key.export, Kind: Added, Lines: whole(n, OpInsert),
			})
		}
	}

	sort.Slice(report.Changes, func(i, j int) bool {
		a, b := report.Changes[i], report.Changes[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		return a.Export < b.Export
	})
	return report, nil
}

type exportKey struct {
	module string
	export string
}

// index renders every export of a program to deterministic JSON keyed by
// module and export name.
func index(program map[string]any) (map[exportKey]string, error) {
	modules, _ := program["modules"].([]any)
	out := map[exportKey]string{}
	for _, m := range modules {
		mod, ok := m.(map[string]any)
		if !ok {
			return nil, errors.Errorf("module entry is %T, not an object", m)
		}
		name, _ := mod["name"].(string)
		exports, _ := mod["exports"].([]any)
		for _, e := range exports {
			exp, ok := e.(map[string]any)
			if !ok {
				return nil, errors.Errorf("export entry in %s is %T, not an object", name, e)
			}
			exportName, _ := exp["name"].(string)
			data, err := surface.MarshalObject(exp)
			if err != nil {
				return nil, err
			}
			out[exportKey{name, exportName}] = string(data)
		}
	}
	return out, nil
}

// LineDiff returns the line-level diff between two texts.
func LineDiff(a, b string) []Line {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var out []Line
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffpatch.DiffInsert:
			op = OpInsert
		case diffpatch.DiffDelete:
			op = OpDelete
		}
		for _, text := range splitLines(d.Text) {
			out = append(out, Line{Op: op, Text: text})
		}
	}
	return out
}

func whole(text string, op Op) []Line {
	lines := splitLines(text)
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Op: op, Text: l}
	}
	return out
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
