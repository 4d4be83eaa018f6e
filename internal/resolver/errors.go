package resolver

import (
	"strings"

	"gitlab.com/tozd/go/errors"

	"github.com/tsgonest/typesurface/internal/diagnostic"
	"github.com/tsgonest/typesurface/internal/oracle"
)

// ErrMissingContext is returned when the oracle cannot supply something the
// resolver needs, such as the type of a property symbol.
var ErrMissingContext = errors.Base("missing required context")

// ParseError records the chain of symbols being resolved when a failure
// happened (module, export, property, ...).
type ParseError struct {
	Chain []string
	Err   error
}

func (e *ParseError) Error() string {
	return "resolving " + strings.Join(e.Chain, " > ") + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// wrap attaches the current symbol chain to err. Errors that already carry
// a chain pass through unchanged.
func (c *Context) wrap(err error) error {
	if err == nil {
		return nil
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return err
	}
	chain := c.Chain()
	return errors.WithDetails(&ParseError{Chain: chain, Err: err},
		"symbols", strings.Join(chain, " > "),
		"module", c.module,
	)
}

// missingContext records a missing-context error diagnostic at decl and
// returns the wrapped error.
func (c *Context) missingContext(decl *oracle.Declaration, what string, kv ...any) error {
	c.report(diagnostic.SeverityError, diagnostic.CategoryMissingContext, decl, what, "")
	return c.wrap(missing(what, kv...))
}

func missing(what string, kv ...any) error {
	return errors.WithDetails(errors.WithMessage(ErrMissingContext, what), kv...)
}
