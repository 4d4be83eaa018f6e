package apidiff

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ContextLines is how many unchanged lines are kept around each change.
const ContextLines = 3

type palette struct {
	header, added, removed, changed, faint *color.Color
}

func newPalette(colorize bool) palette {
	p := palette{
		header:  color.New(color.Bold),
		added:   color.New(color.FgGreen),
		removed: color.New(color.FgRed),
		changed: color.New(color.FgYellow),
		faint:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.header, p.added, p.removed, p.changed, p.faint} {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Render writes the report as a unified diff per export followed by a
// summary line.
func Render(w io.Writer, r *Report, colorize bool) error {
	p := newPalette(colorize)
	module := ""
	for _, c := range r.Changes {
		if c.Module != module {
			module = c.Module
			if _, err := p.header.Fprintf(w, "%s\n", module); err != nil {
				return err
			}
		}
		mark, col := "~", p.changed
		switch c.Kind {
		case Added:
			mark, col = "+", p.added
		case Removed:
			mark, col = "-", p.removed
		}
		if _, err := col.Fprintf(w, "  %s %s (%s)\n", mark, c.Export, c.Kind); err != nil {
			return err
		}
		if c.Kind != Changed {
			continue
		}
		for _, l := range trimContext(c.Lines, ContextLines) {
			var err error
			switch l.Op {
			case OpInsert:
				_, err = p.added.Fprintf(w, "    + %s\n", l.Text)
			case OpDelete:
				_, err = p.removed.Fprintf(w, "    - %s\n", l.Text)
			default:
				_, err = p.faint.Fprintf(w, "      %s\n", l.Text)
			}
			if err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "%d added, %d removed, %d changed\n",
		r.Count(Added), r.Count(Removed), r.Count(Changed))
	return err
}

// trimContext drops unchanged lines further than n lines from any change,
// leaving a "..." marker where lines were cut.
func trimContext(lines []Line, n int) []Line {
	keep := make([]bool, len(lines))
	for i, l := range lines {
		if l.Op == OpEqual {
			continue
		}
		for j := max(0, i-n); j <= min(len(lines)-1, i+n); j++ {
			keep[j] = true
		}
	}
	var out []Line
	cut := false
	for i, l := range lines {
		if keep[i] {
			out = append(out, l)
			cut = false
			continue
		}
		if !cut {
			out = append(out, Line{Op: OpEqual, Text: "..."})
			cut = true
		}
	}
	return out
}
