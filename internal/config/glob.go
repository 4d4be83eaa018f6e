package config

import (
	"path/filepath"
	"strings"
)

// MatchesGlob checks if a module path matches any of the include patterns
// and does not match any of the exclude patterns.
func MatchesGlob(filePath string, includePatterns []string, excludePatterns []string) bool {
	if len(includePatterns) == 0 {
		return false
	}

	// Normalize path separators
	filePath = filepath.ToSlash(filePath)

	// Check exclude first
	for _, pattern := range excludePatterns {
		if globMatch(filePath, filepath.ToSlash(pattern)) {
			return false
		}
	}

	for _, pattern := range includePatterns {
		if globMatch(filePath, filepath.ToSlash(pattern)) {
			return true
		}
	}

	return false
}

// MatchesNamePattern checks if a property or type name matches any of the
// given patterns. * matches any sequence, ? one character: "_*" matches
// "_cache".
func MatchesNamePattern(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

// globMatch matches a path against a glob pattern with ** support. Module
// paths are project-relative, so a pattern prefix must match from the start
// of a path segment.
func globMatch(filePath, pattern string) bool {
	if matched, _ := filepath.Match(pattern, filePath); matched {
		return true
	}

	if !strings.Contains(pattern, "**") {
		// No ** : a bare file pattern matches the basename anywhere
		if !strings.Contains(pattern, "/") {
			matched, _ := filepath.Match(pattern, filepath.Base(filePath))
			return matched
		}
		return false
	}

	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	remaining := filePath
	if prefix != "" {
		// src/**/*.ts: find the prefix directory, then match below it
		rooted := "/" + filePath
		idx := strings.Index(rooted, "/"+prefix+"/")
		if idx < 0 {
			return false
		}
		remaining = rooted[idx+len(prefix)+2:]
	}
	if suffix == "" {
		return true
	}
	if matched, _ := filepath.Match(suffix, filepath.Base(remaining)); matched {
		return true
	}
	matched, _ := filepath.Match(suffix, remaining)
	return matched
}
