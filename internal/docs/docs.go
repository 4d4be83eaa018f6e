// Package docs turns raw doc comments reported by the oracle into
// surface.Documentation values.
package docs

import (
	"strings"

	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/surface"
)

// FromComment converts a comment. Returns nil for a nil or empty comment.
//
// Recognized tags:
//   - @default, @defaultValue: default value
//   - @private, @internal, @public: visibility (first one wins)
//   - @hidden, @ignore: treated as internal
//
// Every tag is also kept in Tags, in source order.
func FromComment(c *oracle.Comment) *surface.Documentation {
	if c == nil {
		return nil
	}
	doc := &surface.Documentation{Description: strings.TrimSpace(c.Text)}
	for _, tag := range c.Tags {
		name := strings.TrimPrefix(strings.TrimSpace(tag.Name), "@")
		value := strings.TrimSpace(tag.Text)
		if name == "" {
			continue
		}
		doc.Tags = append(doc.Tags, surface.Tag{Name: name, Value: value})

		switch strings.ToLower(name) {
		case "default", "defaultvalue":
			if doc.DefaultValue == "" {
				doc.DefaultValue = value
			}
		case "private":
			setVisibility(doc, surface.VisibilityPrivate)
		case "internal", "hidden", "ignore":
			setVisibility(doc, surface.VisibilityInternal)
		case "public":
			setVisibility(doc, surface.VisibilityPublic)
		case "description":
			if doc.Description == "" {
				doc.Description = value
			}
		}
	}
	if doc.Description == "" && doc.DefaultValue == "" && doc.Visibility == surface.VisibilityUndefined && len(doc.Tags) == 0 {
		return nil
	}
	return doc
}

func setVisibility(doc *surface.Documentation, v surface.Visibility) {
	if doc.Visibility == surface.VisibilityUndefined {
		doc.Visibility = v
	}
}

// ForSymbol returns the documentation of a symbol: the value declaration's
// comment, else the first declaration carrying one.
func ForSymbol(sym *oracle.Symbol) *surface.Documentation {
	if sym == nil {
		return nil
	}
	if d := sym.ValueDeclaration; d != nil && d.Doc != nil {
		return FromComment(d.Doc)
	}
	for _, d := range sym.Declarations {
		if d.Doc != nil {
			return FromComment(d.Doc)
		}
	}
	return nil
}

// Nearest walks from decl up its parents and returns the documentation of
// the first declaration carrying a comment.
func Nearest(decl *oracle.Declaration) *surface.Documentation {
	for d := decl; d != nil; d = d.Parent {
		if d.Kind == oracle.DeclarationSourceFile {
			return nil
		}
		if d.Doc != nil {
			return FromComment(d.Doc)
		}
	}
	return nil
}

// ParamDescription returns the @param description for the named parameter.
// Accepts "name text", "name - text" and "{Type} name text".
func ParamDescription(c *oracle.Comment, param string) string {
	if c == nil {
		return ""
	}
	for _, tag := range c.Tags {
		if !strings.EqualFold(strings.TrimPrefix(tag.Name, "@"), "param") {
			continue
		}
		text := strings.TrimSpace(tag.Text)
		if strings.HasPrefix(text, "{") {
			if end := strings.Index(text, "}"); end >= 0 {
				text = strings.TrimSpace(text[end+1:])
			}
		}
		name, rest, _ := strings.Cut(text, " ")
		name = strings.Trim(name, "[]")
		if i := strings.Index(name, "="); i >= 0 {
			name = name[:i]
		}
		if name != param {
			continue
		}
		rest = strings.TrimSpace(rest)
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "-"))
		return rest
	}
	return ""
}

// ForParameter builds documentation for a signature parameter from the
// signature's comment, falling back to the parameter's own comment.
func ForParameter(sig *oracle.Declaration, param *oracle.Symbol) *surface.Documentation {
	if own := ForSymbol(param); own != nil {
		return own
	}
	for d := sig; d != nil; d = d.Parent {
		if d.Doc == nil {
			continue
		}
		if desc := ParamDescription(d.Doc, param.Name); desc != "" {
			return &surface.Documentation{Description: desc}
		}
		break
	}
	return nil
}
