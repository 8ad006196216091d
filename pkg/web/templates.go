// Package web renders server-side views selected by a navigation table.
//
// Templates are parsed once at startup: every view is a clone of the layout
// set with the view file parsed into it, so each view owns its own "content"
// block. Full requests execute a layout; htmx requests execute only the
// view's "content" block.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/angelofallars/htmx-go"
)

// ContentBlock is the template every view defines and every layout includes.
const ContentBlock = "content"

// ViewData is passed to every template execution.
type ViewData struct {
	Title    string
	BasePath string
	Path     string
	Params   map[string]string
	Data     any
	Flash    string
}

// TemplateSet holds pre-parsed templates keyed by view file name.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses layouts matching layoutGlob from layoutFS, then clones
// them once per view and parses the view from viewDir within viewFS.
// funcs may be nil.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewDir, basePath string, views []string, funcs template.FuncMap) (*TemplateSet, error) {
	layouts, err := template.New("").Funcs(funcs).ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	viewSub, err := fs.Sub(viewFS, viewDir)
	if err != nil {
		return nil, fmt.Errorf("view dir %s: %w", viewDir, err)
	}

	parsed := make(map[string]*template.Template, len(views))
	for _, name := range views {
		if _, ok := parsed[name]; ok {
			continue
		}

		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", name, err)
		}
		if _, err := t.ParseFS(viewSub, name); err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		if t.Lookup(ContentBlock) == nil {
			return nil, fmt.Errorf("view %s does not define %q", name, ContentBlock)
		}
		parsed[name] = t
	}

	return &TemplateSet{
		views:    parsed,
		basePath: basePath,
	}, nil
}

func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// Has reports whether view was parsed.
func (ts *TemplateSet) Has(view string) bool {
	_, ok := ts.views[view]
	return ok
}

// Render executes layout with view's content block. BasePath is filled when empty.
func (ts *TemplateSet) Render(w io.Writer, layout, view string, data ViewData) error {
	t, err := ts.lookup(view)
	if err != nil {
		return err
	}
	ts.prepare(w, &data)
	return t.ExecuteTemplate(w, layout, data)
}

// RenderPartial executes only the view's content block.
func (ts *TemplateSet) RenderPartial(w io.Writer, view string, data ViewData) error {
	t, err := ts.lookup(view)
	if err != nil {
		return err
	}
	ts.prepare(w, &data)
	return t.ExecuteTemplate(w, ContentBlock, data)
}

// ErrorHandler renders view inside layout with the given status. htmx
// requests receive the content block with HX-Reswap set.
func (ts *TemplateSet) ErrorHandler(layout, view string, status int, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ViewData{Title: title, Path: r.URL.Path}

		var buf bytes.Buffer
		partial := htmx.IsHTMX(r)
		var err error
		if partial {
			err = ts.RenderPartial(&buf, view, data)
		} else {
			err = ts.Render(&buf, layout, view, data)
		}
		if err != nil {
			http.Error(w, http.StatusText(status), status)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if partial {
			if err := swapErrors(htmx.NewResponse().StatusCode(status), "").Write(w); err != nil {
				return
			}
		} else {
			w.WriteHeader(status)
		}
		buf.WriteTo(w)
	}
}

func (ts *TemplateSet) lookup(view string) (*template.Template, error) {
	t, ok := ts.views[view]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", view)
	}
	return t, nil
}

func (ts *TemplateSet) prepare(w io.Writer, data *ViewData) {
	if data.BasePath == "" {
		data.BasePath = ts.basePath
	}
	if rw, ok := w.(http.ResponseWriter); ok && rw.Header().Get("Content-Type") == "" {
		rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
}
