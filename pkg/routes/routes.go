// Package routes declares HTTP routes as data so they can be registered on a
// ServeMux and described in an OpenAPI document from one source.
package routes

import (
	"net/http"

	"github.com/motech/mrs/pkg/openapi"
)

// Route is a single method + pattern binding.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group is a set of routes sharing a prefix and OpenAPI tags.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Register adds every route in the group tree to mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		register(mux, "", g)
	}
}

func register(mux *http.ServeMux, parent string, g Group) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(r.Method+" "+prefix+r.Pattern, r.Handler)
	}
	for _, child := range g.Children {
		register(mux, prefix, child)
	}
}

// AddToSpec documents the group tree under basePath. Operations without tags
// inherit the group's.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	if len(g.Tags) > 0 && g.Description != "" {
		spec.Tags = append(spec.Tags, &openapi.Tag{Name: g.Tags[0], Description: g.Description})
	}

	prefix := basePath + g.Prefix
	for _, r := range g.Routes {
		if r.OpenAPI == nil {
			continue
		}
		op := *r.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}
		spec.AddOperation(prefix+r.Pattern, r.Method, &op)
	}

	for _, child := range g.Children {
		child.AddToSpec(prefix, spec)
	}
}
