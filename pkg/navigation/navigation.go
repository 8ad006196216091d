// Package navigation provides an ordered route table that maps URL path
// patterns to view templates and controllers.
//
// Routes are declared once through a Provider and frozen into an immutable
// Table. Resolution walks the entries in declaration order and the first
// structural match wins; paths that match nothing resolve to the fallback
// redirect declared with Otherwise.
//
// Controllers are carried by type parameter rather than looked up by name,
// so an unresolvable controller is a compile error instead of a navigation
// failure.
package navigation

import (
	"errors"
	"fmt"
)

// Route binds a view template to the controller that drives it.
type Route[C any] struct {
	Template   string
	Controller C
	Title      string
}

// Entry is a declared route with its compiled pattern.
type Entry[C any] struct {
	Pattern Pattern
	Route   Route[C]
}

// Match is the outcome of resolving a path against a Table.
// Exactly one of Entry or Redirect is set when the table declares a fallback.
type Match[C any] struct {
	Entry    *Entry[C]
	Params   map[string]string
	Redirect string
}

// Matched reports whether the path selected a declared entry.
func (m Match[C]) Matched() bool {
	return m.Entry != nil
}

// Param returns the captured value for name, or "" when absent.
func (m Match[C]) Param(name string) string {
	return m.Params[name]
}

// Provider collects route declarations. It is the registration hook handed
// to route initializers and is single-use: Build freezes it.
type Provider[C any] struct {
	entries  []Entry[C]
	fallback string
	errs     []error
	built    bool
}

// NewProvider creates an empty Provider.
func NewProvider[C any]() *Provider[C] {
	return &Provider[C]{}
}

// When declares a route. Declaration order is resolution order.
func (p *Provider[C]) When(pattern string, route Route[C]) *Provider[C] {
	if p.built {
		p.errs = append(p.errs, fmt.Errorf("%w: when %s", ErrProviderBuilt, pattern))
		return p
	}

	compiled, err := Compile(pattern)
	if err != nil {
		p.errs = append(p.errs, err)
		return p
	}

	for _, e := range p.entries {
		if e.Pattern.raw == compiled.raw {
			p.errs = append(p.errs, fmt.Errorf("%w: %s", ErrDuplicatePattern, pattern))
			return p
		}
	}

	p.entries = append(p.entries, Entry[C]{Pattern: compiled, Route: route})
	return p
}

// Otherwise declares the redirect target for paths that match no route.
func (p *Provider[C]) Otherwise(redirectTo string) *Provider[C] {
	if p.built {
		p.errs = append(p.errs, fmt.Errorf("%w: otherwise %s", ErrProviderBuilt, redirectTo))
		return p
	}
	p.fallback = redirectTo
	return p
}

// Build validates the declarations and returns the frozen Table.
// The fallback, when declared, must resolve to one of the declared routes.
func (p *Provider[C]) Build() (*Table[C], error) {
	if p.built {
		return nil, ErrProviderBuilt
	}
	p.built = true

	if len(p.errs) > 0 {
		return nil, errors.Join(p.errs...)
	}

	t := &Table[C]{
		entries:  append([]Entry[C](nil), p.entries...),
		fallback: p.fallback,
	}

	if t.fallback != "" {
		if t.fallback[0] != '/' {
			return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidRedirect, t.fallback)
		}
		if _, _, ok := t.lookup(t.fallback); !ok {
			return nil, fmt.Errorf("%w: %q does not match a declared route", ErrInvalidRedirect, t.fallback)
		}
	}

	return t, nil
}

// Table is an immutable, ordered route table. It is safe for concurrent use.
type Table[C any] struct {
	entries  []Entry[C]
	fallback string
}

// Resolve selects the first entry whose pattern matches path. When nothing
// matches, the returned Match carries the fallback redirect.
func (t *Table[C]) Resolve(path string) Match[C] {
	if i, params, ok := t.lookup(path); ok {
		entry := t.entries[i]
		return Match[C]{Entry: &entry, Params: params}
	}
	return Match[C]{Redirect: t.fallback}
}

// Entries returns the declared entries in resolution order.
func (t *Table[C]) Entries() []Entry[C] {
	return append([]Entry[C](nil), t.entries...)
}

// Fallback returns the redirect target for unmatched paths.
func (t *Table[C]) Fallback() string {
	return t.fallback
}

// URL expands the declared pattern with params.
func (t *Table[C]) URL(pattern string, params map[string]string) (string, error) {
	for _, e := range t.entries {
		if e.Pattern.raw == pattern {
			return e.Pattern.Expand(params)
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownPattern, pattern)
}

func (t *Table[C]) lookup(path string) (int, map[string]string, bool) {
	for i, e := range t.entries {
		if params, ok := e.Pattern.Match(path); ok {
			return i, params, true
		}
	}
	return -1, nil, false
}
