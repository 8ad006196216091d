package navigation

import (
	"fmt"
	"net/url"
	"strings"
)

type segment struct {
	literal string
	capture string
}

// Pattern is a compiled path template. Segments prefixed with ':' are named
// captures that bind exactly one non-empty path segment.
type Pattern struct {
	raw      string
	segments []segment
	names    []string
}

// Compile parses a path template such as "/mrs/:id/edit".
func Compile(pattern string) (Pattern, error) {
	if pattern == "" {
		return Pattern{}, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	if !strings.HasPrefix(pattern, "/") {
		return Pattern{}, fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, pattern)
	}

	p := Pattern{raw: pattern}
	seen := make(map[string]bool)

	for _, part := range split(pattern) {
		if part == "" {
			return Pattern{}, fmt.Errorf("%w: %q contains an empty segment", ErrInvalidPattern, pattern)
		}
		if !strings.HasPrefix(part, ":") {
			p.segments = append(p.segments, segment{literal: part})
			continue
		}

		name := part[1:]
		if name == "" {
			return Pattern{}, fmt.Errorf("%w: %q has an unnamed capture", ErrInvalidPattern, pattern)
		}
		if seen[name] {
			return Pattern{}, fmt.Errorf("%w: %q captures %q twice", ErrInvalidPattern, pattern, name)
		}
		seen[name] = true

		p.segments = append(p.segments, segment{capture: name})
		p.names = append(p.names, name)
	}

	return p, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) String() string {
	return p.raw
}

// Names returns the capture names in declaration order.
func (p Pattern) Names() []string {
	return append([]string(nil), p.names...)
}

// Match reports whether path structurally matches the pattern and returns
// the captured values. A trailing slash on path is not significant.
func (p Pattern) Match(path string) (map[string]string, bool) {
	if path == "" {
		path = "/"
	}
	parts := split(path)
	if len(parts) != len(p.segments) {
		return nil, false
	}

	params := make(map[string]string, len(p.names))
	for i, seg := range p.segments {
		part := parts[i]
		if seg.capture == "" {
			if part != seg.literal {
				return nil, false
			}
			continue
		}

		if part == "" {
			return nil, false
		}
		value, err := url.PathUnescape(part)
		if err != nil {
			return nil, false
		}
		params[seg.capture] = value
	}

	return params, true
}

// Expand fills the pattern's captures from params and returns the path.
func (p Pattern) Expand(params map[string]string) (string, error) {
	if len(p.segments) == 0 {
		return "/", nil
	}

	var sb strings.Builder
	for _, seg := range p.segments {
		sb.WriteByte('/')
		if seg.capture == "" {
			sb.WriteString(seg.literal)
			continue
		}
		value := params[seg.capture]
		if value == "" {
			return "", fmt.Errorf("%w: %q requires %q", ErrMissingParam, p.raw, seg.capture)
		}
		sb.WriteString(url.PathEscape(value))
	}
	return sb.String(), nil
}

func split(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	trimmed = strings.TrimSuffix(trimmed, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
