package fs

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// Matcher decides whether a file name belongs to the supported set.
// Patterns are matched case-insensitively against the base name.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
}

// NewMatcher compiles glob patterns such as "*.png".
func NewMatcher(patterns ...string) (*Matcher, error) {
	m := &Matcher{}
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, p)
		m.globs = append(m.globs, g)
	}
	return m, nil
}

// ExtensionMatcher builds a matcher from bare extensions ("png", ".jpg").
func ExtensionMatcher(exts []string) *Matcher {
	patterns := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.TrimPrefix(strings.ToLower(ext), ".")
		if ext == "" {
			continue
		}
		patterns = append(patterns, "*."+ext)
	}
	// Extensions never contain glob metacharacters we do not control.
	m, err := NewMatcher(patterns...)
	if err != nil {
		return &Matcher{}
	}
	return m
}

// Match reports whether name matches any pattern.
func (m *Matcher) Match(name string) bool {
	if m == nil {
		return false
	}
	base := strings.ToLower(filepath.Base(name))
	for _, g := range m.globs {
		if g.Match(base) {
			return true
		}
	}
	return false
}

// Patterns returns the compiled patterns in their normalized form.
func (m *Matcher) Patterns() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.patterns...)
}
