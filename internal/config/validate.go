package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ValidationResult holds config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// ValidateDetailed performs thorough config validation with suggestions.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	if c.Snapshot == "" {
		result.Errors = append(result.Errors, "snapshot: path required")
	}

	// Modules
	if len(c.Include) == 0 {
		result.Errors = append(result.Errors, "include: at least one pattern required")
	}
	for _, pattern := range c.Include {
		if !strings.Contains(pattern, "*") && !strings.HasSuffix(pattern, ".ts") && !strings.HasSuffix(pattern, ".tsx") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("include: pattern %q has no wildcard or .ts extension, did you mean %q?", pattern, pattern+"/**/*.ts"))
		}
	}

	// Output is optional (empty means stdout)
	if c.Output != "" {
		if ext := filepath.Ext(c.Output); ext != ".json" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("output: must have a .json extension, got %q", ext))
		}
	}

	if c.Workers < 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("workers: must not be negative, got %d", c.Workers))
	}
	if c.LogLevel != "" && !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		result.Errors = append(result.Errors,
			fmt.Sprintf("logLevel: invalid value %q, must be one of %s", c.LogLevel, strings.Join(logLevels, ", ")))
	}

	// Resolve
	r := c.Resolve
	for name, v := range map[string]int{
		"resolve.maxProperties":    r.MaxProperties,
		"resolve.maxDepth":         r.MaxDepth,
		"resolve.maxCallbackDepth": r.MaxCallbackDepth,
	} {
		if v < 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: must not be negative, got %d", name, v))
		}
	}
	for _, pattern := range r.ExcludeProperties {
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("resolve.excludeProperties: bad pattern %q: %v", pattern, err))
		}
	}
	if r.StrictVisibility && !c.PublicOnly {
		result.Warnings = append(result.Warnings,
			"resolve.strictVisibility: has no effect unless publicOnly is enabled")
	}
	slices.Sort(result.Errors)

	return result
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}
