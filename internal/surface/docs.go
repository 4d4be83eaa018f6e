package surface

// Visibility is the documented visibility of a symbol.
type Visibility string

const (
	VisibilityUndefined Visibility = ""
	VisibilityPublic    Visibility = "public"
	VisibilityPrivate   Visibility = "private"
	VisibilityInternal  Visibility = "internal"
)

// Documentation is the doc-comment information of a symbol.
type Documentation struct {
	Description  string
	DefaultValue string
	Visibility   Visibility
	Tags         []Tag
}

// Tag is one doc-comment block tag.
type Tag struct {
	Name  string
	Value string
}

// IsHidden reports whether the documentation marks its symbol private or
// internal.
func (d *Documentation) IsHidden() bool {
	return d != nil && (d.Visibility == VisibilityPrivate || d.Visibility == VisibilityInternal)
}

// Tag returns the value of the first tag with the given name.
func (d *Documentation) Tag(name string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, t := range d.Tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

func (d *Documentation) toObject() map[string]any {
	obj := map[string]any{}
	if d.Description != "" {
		obj["description"] = d.Description
	}
	if d.DefaultValue != "" {
		obj["defaultValue"] = d.DefaultValue
	}
	if d.Visibility != VisibilityUndefined {
		obj["visibility"] = string(d.Visibility)
	}
	if len(d.Tags) > 0 {
		tags := make([]any, len(d.Tags))
		for i, t := range d.Tags {
			tags[i] = map[string]any{"name": t.Name, "value": t.Value}
		}
		obj["tags"] = tags
	}
	return obj
}

func putDoc(obj map[string]any, d *Documentation) {
	if d == nil {
		return
	}
	if p := d.toObject(); len(p) > 0 {
		obj["documentation"] = p
	}
}
