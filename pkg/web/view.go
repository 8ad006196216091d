package web

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/angelofallars/htmx-go"
)

// ErrNotFound signals that a view resolved but its subject does not exist.
var ErrNotFound = errors.New("not found")

// Controller drives one or more views. Serve is called once per request with
// the view the navigation table selected.
type Controller interface {
	Serve(w http.ResponseWriter, r *http.Request, v *View) error
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(w http.ResponseWriter, r *http.Request, v *View) error

func (f ControllerFunc) Serve(w http.ResponseWriter, r *http.Request, v *View) error {
	return f(w, r, v)
}

// View is the resolved route for one request.
type View struct {
	Template string
	Title    string
	Pattern  string
	Path     string
	Params   map[string]string

	host *ViewHost
	w    http.ResponseWriter
	r    *http.Request
}

// Param returns a captured path value.
func (v *View) Param(name string) string {
	return v.Params[name]
}

// URL prefixes an app-relative path with the module base path.
func (v *View) URL(path string) string {
	return v.host.templates.BasePath() + path
}

// Render writes the view with status 200.
func (v *View) Render(data any) error {
	return v.RenderStatus(http.StatusOK, data, "")
}

// RenderStatus writes the view with status and an optional flash message.
// htmx requests receive only the content block and an HX-Push-Url header.
// Nothing is written when the template fails.
func (v *View) RenderStatus(status int, data any, flash string) error {
	vd := ViewData{
		Title:    v.Title,
		BasePath: v.host.templates.BasePath(),
		Path:     v.Path,
		Params:   v.Params,
		Data:     data,
		Flash:    flash,
	}

	var buf bytes.Buffer
	partial := htmx.IsHTMX(v.r)
	if partial {
		if err := v.host.templates.RenderPartial(&buf, v.Template, vd); err != nil {
			return err
		}
	} else if err := v.host.templates.Render(&buf, v.host.layout, v.Template, vd); err != nil {
		return err
	}

	v.w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if partial {
		resp := htmx.NewResponse().StatusCode(status)
		if v.r.Method == http.MethodGet {
			resp = resp.PushURL(v.URL(v.Path))
		}
		if status >= http.StatusBadRequest {
			resp = swapErrors(resp, v.host.target)
		}
		if err := resp.Write(v.w); err != nil {
			return err
		}
	} else {
		v.w.WriteHeader(status)
	}

	_, err := buf.WriteTo(v.w)
	return err
}

// swapErrors asks htmx to swap an error response it would otherwise discard.
func swapErrors(resp htmx.Response, target string) htmx.Response {
	resp = resp.Reswap(htmx.SwapInnerHTML)
	if target != "" {
		resp = resp.Retarget(target)
	}
	return resp
}

// Redirect sends the client to an app-relative path: 303 after a POST,
// HX-Redirect for htmx requests, 302 otherwise.
func (v *View) Redirect(path string) {
	v.host.redirect(v.w, v.r, v.URL(path))
}
