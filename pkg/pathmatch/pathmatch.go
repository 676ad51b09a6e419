// Package pathmatch matches slash-separated paths against glob patterns the way find -path does.
//
// Unlike path.Match, the wildcards are not stopped by separators:
//   - * matches any run of characters, / included
//   - ? matches any single character, / included
//   - [...] and [!...] match one character from (or outside) a set
//   - \ makes the next character literal
//
// A pattern must match the whole path.
package pathmatch

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

var (
	// ErrUnclosedClass is returned for a '[' without a matching ']'.
	ErrUnclosedClass = errors.New("unclosed character class")
	// ErrTrailingEscape is returned for a pattern ending in a lone '\'.
	ErrTrailingEscape = errors.New("trailing backslash")
)

var compiled sync.Map //nolint:gochecknoglobals // compiled patterns are shared by all matchers

// Match reports whether path matches pattern.
func Match(pattern, path string) (bool, error) {
	re, err := compile(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(path), nil
}

// Matcher holds a set of compiled patterns.
type Matcher struct {
	patterns []*regexp.Regexp
}

// NewMatcher compiles patterns once for repeated matching.
func NewMatcher(patterns []string) (*Matcher, error) {
	m := &Matcher{patterns: make([]*regexp.Regexp, 0, len(patterns))}

	for _, pattern := range patterns {
		re, err := compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}

		m.patterns = append(m.patterns, re)
	}

	return m, nil
}

// Len returns the number of patterns.
func (m *Matcher) Len() int {
	return len(m.patterns)
}

// MatchAny reports whether any of the given paths matches any pattern.
func (m *Matcher) MatchAny(paths ...string) bool {
	for _, re := range m.patterns {
		for _, path := range paths {
			if re.MatchString(path) {
				return true
			}
		}
	}

	return false
}

func compile(pattern string) (*regexp.Regexp, error) {
	if re, ok := compiled.Load(pattern); ok {
		return re.(*regexp.Regexp), nil //nolint:forcetypeassert // only *regexp.Regexp is stored
	}

	expr, err := translate(pattern)
	if err != nil {
		return nil, err
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", pattern, err)
	}

	compiled.Store(pattern, re)

	return re, nil
}

// translate rewrites a glob into an anchored regular expression.
// The (?s) flag lets '.' match a newline, as find does.
func translate(pattern string) (string, error) {
	var expr strings.Builder

	expr.WriteString(`(?s)^`)

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			expr.WriteString(`.*`)
		case '?':
			expr.WriteString(`.`)
		case '\\':
			if i+1 == len(pattern) {
				return "", fmt.Errorf("%w in %q", ErrTrailingEscape, pattern)
			}

			i++
			expr.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		case '[':
			end, err := classEnd(pattern, i)
			if err != nil {
				return "", err
			}

			expr.WriteString(class(pattern[i+1 : end]))

			i = end
		default:
			expr.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
		}
	}

	expr.WriteString(`$`)

	return expr.String(), nil
}

// classEnd returns the index of the ']' closing the class opened at start.
// A ']' directly after the opening bracket (or after '!') is literal.
func classEnd(pattern string, start int) (int, error) {
	i := start + 1

	if i < len(pattern) && pattern[i] == '!' {
		i++
	}

	if i < len(pattern) && pattern[i] == ']' {
		i++
	}

	if end := strings.IndexByte(pattern[i:], ']'); end >= 0 {
		return i + end, nil
	}

	return 0, fmt.Errorf("%w in %q", ErrUnclosedClass, pattern)
}

// class converts the body of a bracket expression into a regexp class.
func class(body string) string {
	var out strings.Builder

	out.WriteByte('[')

	if strings.HasPrefix(body, "!") {
		out.WriteByte('^')

		body = body[1:]
	}

	for i := range len(body) {
		switch c := body[i]; c {
		case '\\', '[', ']', '^':
			out.WriteByte('\\')
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}

	out.WriteByte(']')

	return out.String()
}
