// Package resolver turns semantic types reported by an oracle.Checker into
// surface type nodes.
//
// A Context resolves one module. It holds the visit stack that breaks type
// cycles, the chain of symbols being resolved (reported on failure), the
// object expansion policies and a diagnostics sink. A Context must not be
// shared between goroutines; give every file its own.
package resolver

import (
	"strings"

	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/oracle"
	"github.com/tsgonest/typesurface/internal/surface"
)

// Decision is a policy answer. NoOpinion falls back to the default rule.
type Decision int

const (
	NoOpinion Decision = iota
	Allow
	Deny
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case Deny:
		return "deny"
	default:
		return "no-opinion"
	}
}

const (
	DefaultMaxProperties    = 50
	DefaultMaxDepth         = 15
	DefaultMaxCallbackDepth = 3
)

// DefaultExternalAllowList names external types that are still expanded one
// level: structural utilities and component factory wrappers.
var DefaultExternalAllowList = []string{
	"Omit", "Pick", "Partial", "Required", "Readonly", "Record",
	"Exclude", "Extract", "NonNullable",
	"ForwardRefExoticComponent", "NamedExoticComponent", "MemoExoticComponent",
	"FC", "FunctionComponent",
}

// Options configures resolution. Zero numeric fields take the defaults.
type Options struct {
	// ShouldInclude decides whether a property is kept.
	ShouldInclude func(name string, depth int) Decision
	// ShouldResolveObject decides whether an object shape is expanded.
	// Default rule: propertyCount <= MaxProperties && depth <= MaxDepth.
	ShouldResolveObject func(name string, propertyCount, depth int) Decision

	IncludeExternalTypes bool
	MaxProperties        int
	MaxDepth             int
	// MaxCallbackDepth bounds how many nested function types are expanded;
	// deeper ones become the bare function intrinsic.
	MaxCallbackDepth  int
	ExternalAllowList []string
}

// DefaultOptions returns the stock policy.
func DefaultOptions() Options {
	return Options{
		MaxProperties:     DefaultMaxProperties,
		MaxDepth:          DefaultMaxDepth,
		MaxCallbackDepth:  DefaultMaxCallbackDepth,
		ExternalAllowList: append([]string(nil), DefaultExternalAllowList...),
	}
}

func (o Options) withDefaults() Options {
	if o.MaxProperties <= 0 {
		o.MaxProperties = DefaultMaxProperties
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxCallbackDepth <= 0 {
		o.MaxCallbackDepth = DefaultMaxCallbackDepth
	}
	if o.ExternalAllowList == nil {
		o.ExternalAllowList = DefaultExternalAllowList
	}
	return o
}

// Hint carries what the caller knows about where a type came from.
type Hint struct {
	// Name is used for policy decisions when the type itself is anonymous.
	Name string
	// Decl is the declaration that led to the type, for diagnostics.
	Decl *oracle.Declaration
}

// Context is the per-module resolution state.
type Context struct {
	checker oracle.Checker
	opts    Options
	diags   *diagnostic.Collector
	module  string
	allowed map[string]bool

	visiting map[*oracle.Type]bool
	chain    []string

	propertyIDs map[any]surface.PropertyID
	expanding   map[*oracle.Symbol]bool
	externals   map[string]bool

	objectDepth   int
	callbackDepth int
}

// NewContext creates a context resolving module against checker. diags may
// be nil.
func NewContext(checker oracle.Checker, module string, opts Options, diags *diagnostic.Collector) *Context {
	opts = opts.withDefaults()
	allowed := make(map[string]bool, len(opts.ExternalAllowList))
	for _, name := range opts.ExternalAllowList {
		allowed[name] = true
	}
	return &Context{
		checker:     checker,
		opts:        opts,
		diags:       diags,
		module:      module,
		allowed:     allowed,
		visiting:    map[*oracle.Type]bool{},
		propertyIDs: map[any]surface.PropertyID{},
		expanding:   map[*oracle.Symbol]bool{},
		externals:   map[string]bool{},
	}
}

// Module returns the path of the module being resolved.
func (c *Context) Module() string { return c.module }

// enter pushes t onto the visit stack; the returned func pops it.
func (c *Context) enter(t *oracle.Type) func() {
	c.visiting[t] = true
	return func() { delete(c.visiting, t) }
}

func (c *Context) onStack(t *oracle.Type) bool {
	return c.visiting[t]
}

// pushSymbol appends name to the symbol chain; the returned func pops it.
func (c *Context) pushSymbol(name string) func() {
	c.chain = append(c.chain, name)
	n := len(c.chain)
	return func() { c.chain = c.chain[:n-1] }
}

// Chain returns a copy of the current symbol chain, module first.
func (c *Context) Chain() []string {
	out := make([]string, len(c.chain))
	copy(out, c.chain)
	return out
}

// propertyID returns the identity token for a property symbol, minting one
// on first sight. Symbols sharing a declaration share the token.
func (c *Context) propertyID(sym *oracle.Symbol) surface.PropertyID {
	var key any = sym
	if d := sym.FirstDeclaration(); d != nil {
		key = d
	}
	if id, ok := c.propertyIDs[key]; ok {
		return id
	}
	id := surface.NewPropertyID()
	c.propertyIDs[key] = id
	return id
}

func (c *Context) warn(category diagnostic.Category, decl *oracle.Declaration, message, hint string) {
	c.report(diagnostic.SeverityWarning, category, decl, message, hint)
}

func (c *Context) report(sev diagnostic.Severity, category diagnostic.Category, decl *oracle.Declaration, message, hint string) {
	if c.diags == nil {
		return
	}
	d := diagnostic.Diagnostic{
		Severity: sev,
		Category: category,
		File:     c.module,
		Symbol:   strings.Join(c.chain, " > "),
		Message:  message,
		Hint:     hint,
	}
	if decl != nil && decl.File != "" {
		d.File = decl.File
		d.Line = decl.Line
	}
	c.diags.Add(d)
}

func (c *Context) shouldInclude(name string, depth int) bool {
	if f := c.opts.ShouldInclude; f != nil {
		switch f(name, depth) {
		case Allow:
			return true
		case Deny:
			return false
		}
	}
	return true
}

func (c *Context) shouldResolveObject(name string, count, depth int) bool {
	if f := c.opts.ShouldResolveObject; f != nil {
		switch f(name, count, depth) {
		case Allow:
			return true
		case Deny:
			return false
		}
	}
	return count <= c.opts.MaxProperties && depth <= c.opts.MaxDepth
}
