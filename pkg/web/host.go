package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/angelofallars/htmx-go"
	"github.com/motech/mrs/pkg/navigation"
)

// Observer is notified of navigation outcomes.
type Observer interface {
	Resolved(pattern string)
	Redirected(from, to string)
}

// ErrorHandler writes a response for an error returned by a controller.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// ViewHost serves requests by resolving them against a navigation table and
// invoking the selected controller.
type ViewHost struct {
	table     *navigation.Table[Controller]
	templates *TemplateSet
	layout    string
	logger    *slog.Logger
	observer  Observer
	onError   ErrorHandler
	target    string
}

// NewViewHost binds table to templates. Every template in table must be in templates.
func NewViewHost(table *navigation.Table[Controller], templates *TemplateSet, layout string, logger *slog.Logger) (*ViewHost, error) {
	for _, e := range table.Entries() {
		if !templates.Has(e.Route.Template) {
			return nil, errors.New("view host: template not loaded: " + e.Route.Template)
		}
		if e.Route.Controller == nil {
			return nil, errors.New("view host: nil controller for " + e.Pattern.String())
		}
	}

	h := &ViewHost{
		table:     table,
		templates: templates,
		layout:    layout,
		logger:    logger,
	}
	h.onError = h.defaultError
	return h, nil
}

func (h *ViewHost) SetObserver(o Observer) {
	h.observer = o
}

func (h *ViewHost) SetErrorHandler(fn ErrorHandler) {
	h.onError = fn
}

// SetSwapTarget names the element htmx error renders are swapped into.
func (h *ViewHost) SetSwapTarget(selector string) {
	h.target = selector
}

func (h *ViewHost) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.EscapedPath()
	m := h.table.Resolve(path)

	if !m.Matched() {
		if m.Redirect == "" {
			h.onError(w, r, ErrNotFound)
			return
		}
		if h.observer != nil {
			h.observer.Redirected(path, m.Redirect)
		}
		h.logger.Debug("navigation fallback", "path", path, "redirect", m.Redirect)
		h.redirect(w, r, h.templates.BasePath()+m.Redirect)
		return
	}

	route := m.Entry.Route
	if h.observer != nil {
		h.observer.Resolved(m.Entry.Pattern.String())
	}

	view := &View{
		Template: route.Template,
		Title:    route.Title,
		Pattern:  m.Entry.Pattern.String(),
		Path:     path,
		Params:   m.Params,
		host:     h,
		w:        w,
		r:        r,
	}

	if err := route.Controller.Serve(w, r, view); err != nil {
		h.onError(w, r, err)
	}
}

func (h *ViewHost) redirect(w http.ResponseWriter, r *http.Request, target string) {
	if htmx.IsHTMX(r) {
		if err := htmx.NewResponse().Redirect(target).Write(w); err != nil {
			h.logger.Error("htmx redirect failed", "error", err)
		}
		return
	}

	code := http.StatusFound
	if r.Method == http.MethodPost {
		code = http.StatusSeeOther
	}
	http.Redirect(w, r, target, code)
}

func (h *ViewHost) defaultError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	h.logger.Error("controller failed", "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
