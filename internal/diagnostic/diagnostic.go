package diagnostic

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityInfo
	SeverityDebug
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityInfo:
		return "info"
	case SeverityDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// Level maps the severity onto a slog level.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityError:
		return slog.LevelError
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityDebug:
		return slog.LevelDebug
	default:
		return slog.LevelWarn
	}
}

// Category classifies diagnostics for filtering.
type Category string

const (
	CategoryTypeUnsupported Category = "type-unsupported"
	CategoryMissingContext  Category = "missing-context"
	CategoryExternalType    Category = "external-type"
	CategoryTruncated       Category = "truncated"
	CategoryUnresolvedAlias Category = "unresolved-alias"
	CategoryModuleFailed    Category = "module-failed"
	CategoryConfigInvalid   Category = "config-invalid"
)

// Diagnostic represents a structured diagnostic message.
type Diagnostic struct {
	Severity Severity
	Category Category
	File     string // source file path
	Line     int    // 1-based line number (0 = unknown)
	// Symbol is the dotted chain of symbols being resolved, e.g.
	// "src/button.ts > Button > props > onClick".
	Symbol  string
	Message string
	Hint    string // optional suggestion for fixing the issue
}

// String formats the diagnostic for display.
func (d Diagnostic) String() string {
	var sb strings.Builder

	if d.File != "" {
		sb.WriteString(d.File)
		if d.Line > 0 {
			sb.WriteString(fmt.Sprintf(":%d", d.Line))
		}
		sb.WriteString(" - ")
	}

	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")

	if d.Category != "" {
		sb.WriteString("[")
		sb.WriteString(string(d.Category))
		sb.WriteString("] ")
	}

	sb.WriteString(d.Message)

	if d.Symbol != "" {
		sb.WriteString(" (in ")
		sb.WriteString(d.Symbol)
		sb.WriteString(")")
	}

	if d.Hint != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(d.Hint)
	}

	return sb.String()
}

// Collector collects diagnostics during resolution. It is safe for
// concurrent use; the extract driver shares one collector across workers.
type Collector struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
	strict      bool // if true, warnings become errors
	quiet       bool // if true, suppress warnings
}

// NewCollector creates a new diagnostic collector.
func NewCollector(strict, quiet bool) *Collector {
	return &Collector{
		strict: strict,
		quiet:  quiet,
	}
}

// Add records a fully-populated diagnostic, applying strict/quiet handling
// to warnings.
func (c *Collector) Add(d Diagnostic) {
	if c == nil {
		return
	}
	if d.Severity != SeverityError && c.quiet {
		return
	}
	if d.Severity == SeverityWarning && c.strict {
		d.Severity = SeverityError
	}
	c.mu.Lock()
	c.diagnostics = append(c.diagnostics, d)
	c.mu.Unlock()
}

// Warn adds a warning diagnostic.
func (c *Collector) Warn(category Category, file string, line int, message string) {
	c.Add(Diagnostic{
		Severity: SeverityWarning,
		Category: category,
		File:     file,
		Line:     line,
		Message:  message,
	})
}

// WarnWithHint adds a warning with a suggestion.
func (c *Collector) WarnWithHint(category Category, file string, line int, message, hint string) {
	c.Add(Diagnostic{
		Severity: SeverityWarning,
		Category: category,
		File:     file,
		Line:     line,
		Message:  message,
		Hint:     hint,
	})
}

// Error adds an error diagnostic.
func (c *Collector) Error(category Category, file string, line int, message string) {
	c.Add(Diagnostic{
		Severity: SeverityError,
		Category: category,
		File:     file,
		Line:     line,
		Message:  message,
	})
}

// Info adds an informational diagnostic.
func (c *Collector) Info(category Category, file string, line int, message string) {
	c.Add(Diagnostic{
		Severity: SeverityInfo,
		Category: category,
		File:     file,
		Line:     line,
		Message:  message,
	})
}

// Merge appends every diagnostic of other. Severities are taken as recorded
// by other.
func (c *Collector) Merge(other *Collector) {
	if c == nil || other == nil || c == other {
		return
	}
	ds := other.Diagnostics()
	c.mu.Lock()
	c.diagnostics = append(c.diagnostics, ds...)
	c.mu.Unlock()
}

// Diagnostics returns a copy of all collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// Sorted returns the diagnostics ordered by file, line and message, so
// output from parallel workers is stable.
func (c *Collector) Sorted() []Diagnostic {
	ds := c.Diagnostics()
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].File != ds[j].File {
			return ds[i].File < ds[j].File
		}
		if ds[i].Line != ds[j].Line {
			return ds[i].Line < ds[j].Line
		}
		return ds[i].Message < ds[j].Message
	})
	return ds
}

// HasErrors returns true if any error-level diagnostics exist.
func (c *Collector) HasErrors() bool {
	return c.ErrorCount() > 0
}

// ErrorCount returns the number of error diagnostics.
func (c *Collector) ErrorCount() int {
	return c.count(SeverityError)
}

// WarningCount returns the number of warning diagnostics.
func (c *Collector) WarningCount() int {
	return c.count(SeverityWarning)
}

func (c *Collector) count(sev Severity) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// FormatAll formats all diagnostics as a multi-line string.
func (c *Collector) FormatAll() string {
	ds := c.Sorted()
	if len(ds) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, d := range ds {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Log emits every diagnostic as a structured record.
func (c *Collector) Log(ctx context.Context, logger *slog.Logger) {
	if logger == nil {
		return
	}
	for _, d := range c.Sorted() {
		attrs := []slog.Attr{slog.String("category", string(d.Category))}
		if d.File != "" {
			attrs = append(attrs, slog.String("file", d.File))
		}
		if d.Line > 0 {
			attrs = append(attrs, slog.Int("line", d.Line))
		}
		if d.Symbol != "" {
			attrs = append(attrs, slog.String("symbol", d.Symbol))
		}
		if d.Hint != "" {
			attrs = append(attrs, slog.String("hint", d.Hint))
		}
		logger.LogAttrs(ctx, d.Severity.Level(), d.Message, attrs...)
	}
}

// Summary returns a summary line like "2 warning(s), 1 error(s)".
func (c *Collector) Summary() string {
	if c == nil {
		return ""
	}
	warnings := c.WarningCount()
	errors := c.ErrorCount()

	parts := []string{}
	if errors > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errors))
	}
	if warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warnings))
	}
	if len(parts) == 0 {
		return "no issues"
	}
	return strings.Join(parts, ", ")
}
