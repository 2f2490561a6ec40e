// Package paths provides path normalization, test-file heuristics and
// scope glob matching shared by the analysis engines.
package paths

import (
	"regexp"
	"strings"
)

// Normalize converts a path to forward slashes. All stored paths use this
// form; comparisons elsewhere assume it.
func Normalize(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// IsTestFile reports whether a file path looks like a test by directory
// or filename convention.
func IsTestFile(path string) bool {
	p := strings.ToLower(Normalize(path))

	for _, dir := range []string{"/test/", "/tests/", "/__tests__/", "/spec/", "/testdata/"} {
		if strings.Contains(p, dir) || strings.HasPrefix(p, strings.TrimPrefix(dir, "/")) {
			return true
		}
	}

	base := p
	if idx := strings.LastIndex(p, "/"); idx >= 0 {
		base = p[idx+1:]
	}
	if strings.HasPrefix(base, "test_") {
		return true
	}
	if strings.HasSuffix(base, "_test.go") || strings.HasSuffix(base, "_test.py") {
		return true
	}
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return true
	}
	stem := base
	if idx := strings.LastIndex(base, "."); idx > 0 {
		stem = base[:idx]
	}
	return strings.HasSuffix(stem, "_test") || strings.HasSuffix(stem, "_spec")
}

// InScope reports whether path matches any of the glob patterns. Patterns
// support `*` (within a segment), `?` and `**` (across segments). An empty
// pattern list matches everything.
func InScope(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	p := Normalize(path)
	for _, pat := range patterns {
		if pat == "" || pat == "**" {
			return true
		}
		if matchGlob(pat, p) {
			return true
		}
	}
	return false
}

func matchGlob(pattern, path string) bool {
	re, err := globToRegexp(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(path)
}

// globToRegexp translates a glob with `**` support into an anchored regexp.
func globToRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	i := 0
	for i < len(pattern) {
		c := pattern[i]
		switch c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				// `**/` matches zero or more whole segments
				if i+2 < len(pattern) && pattern[i+2] == '/' {
					b.WriteString("(?:[^/]*/)*")
					i += 3
				} else {
					b.WriteString(".*")
					i += 2
				}
			} else {
				b.WriteString("[^/]*")
				i++
			}
		case '?':
			b.WriteString("[^/]")
			i++
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// Dir returns the directory part of a normalized path, or "." when the
// path has no directory component.
func Dir(p string) string {
	p = Normalize(p)
	if idx := strings.LastIndex(p, "/"); idx > 0 {
		return p[:idx]
	}
	return "."
}

// TopDir returns the first path segment, or "." for bare filenames. Used
// for directory breakdowns of large layers.
func TopDir(p string) string {
	p = Normalize(p)
	if idx := strings.Index(p, "/"); idx > 0 {
		return p[:idx]
	}
	return "."
}
