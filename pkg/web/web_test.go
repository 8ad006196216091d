package web_test

import (
	"bytes"
	"embed"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/motech/mrs/pkg/navigation"
	"github.com/motech/mrs/pkg/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/layouts/*
var layoutFS embed.FS

//go:embed testdata/views/*
var viewFS embed.FS

//go:embed testdata/static/*
var staticFS embed.FS

var testViews = []string{"home.html", "item.html", "broken.html", "404.html"}

func newTemplates(t *testing.T) *web.TemplateSet {
	t.Helper()
	ts, err := web.NewTemplateSet(layoutFS, viewFS, "testdata/layouts/*.html", "testdata/views", "/app", testViews, nil)
	require.NoError(t, err)
	return ts
}

func TestNewTemplateSet_Errors(t *testing.T) {
	tests := []struct {
		name  string
		glob  string
		dir   string
		views []string
	}{
		{"bad layout glob", "nonexistent/*.html", "testdata/views", testViews},
		{"missing view", "testdata/layouts/*.html", "testdata/views", []string{"missing.html"}},
		{"no content block", "testdata/layouts/*.html", "testdata/views", []string{"nocontent.html"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := web.NewTemplateSet(layoutFS, viewFS, tt.glob, tt.dir, "/app", tt.views, nil)
			assert.Error(t, err)
		})
	}
}

func TestTemplateSet_Render(t *testing.T) {
	ts := newTemplates(t)
	rec := httptest.NewRecorder()

	err := ts.Render(rec, "test.html", "home.html", web.ViewData{Title: "Dashboard", Data: "hello", Flash: "saved"})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "<title>Dashboard</title>")
	assert.Contains(t, body, `data-basepath="/app"`)
	assert.Contains(t, body, "Home Page")
	assert.Contains(t, body, `<p class="flash">saved</p>`)

	assert.Error(t, ts.Render(rec, "test.html", "missing.html", web.ViewData{}))
}

func TestTemplateSet_RenderPartial(t *testing.T) {
	ts := newTemplates(t)
	var buf bytes.Buffer

	require.NoError(t, ts.RenderPartial(&buf, "home.html", web.ViewData{Data: "x"}))
	assert.NotContains(t, buf.String(), "<!DOCTYPE html>")
	assert.Contains(t, buf.String(), "Home Page")
}

func TestTemplateSet_ErrorHandler(t *testing.T) {
	ts := newTemplates(t)
	rec := httptest.NewRecorder()

	ts.ErrorHandler("test.html", "404.html", http.StatusNotFound, "Not Found")(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "/nowhere")
	assert.Contains(t, rec.Body.String(), "<!DOCTYPE html>")
	assert.Empty(t, rec.Header().Get("HX-Reswap"))

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	ts.ErrorHandler("test.html", "404.html", http.StatusNotFound, "Not Found")(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "innerHTML", rec.Header().Get("HX-Reswap"))
	assert.NotContains(t, rec.Body.String(), "<!DOCTYPE html>")
	assert.Contains(t, rec.Body.String(), "/nowhere")
}

type recordingObserver struct {
	resolved   []string
	redirected [][2]string
}

func (o *recordingObserver) Resolved(pattern string) {
	o.resolved = append(o.resolved, pattern)
}

func (o *recordingObserver) Redirected(from, to string) {
	o.redirected = append(o.redirected, [2]string{from, to})
}

func newHost(t *testing.T) (*web.ViewHost, *recordingObserver) {
	t.Helper()

	render := web.ControllerFunc(func(w http.ResponseWriter, r *http.Request, v *web.View) error {
		return v.Render("hello")
	})
	failing := web.ControllerFunc(func(w http.ResponseWriter, r *http.Request, v *web.View) error {
		switch v.Param("id") {
		case "missing":
			return web.ErrNotFound
		case "invalid":
			return v.RenderStatus(http.StatusUnprocessableEntity, nil, "check the form")
		}
		if r.Method == http.MethodPost {
			v.Redirect("/home")
			return nil
		}
		return v.Render(nil)
	})

	table, err := navigation.NewProvider[web.Controller]().
		When("/home", navigation.Route[web.Controller]{Template: "home.html", Controller: render, Title: "Home"}).
		When("/items/:id", navigation.Route[web.Controller]{Template: "item.html", Controller: failing, Title: "Item"}).
		When("/broken", navigation.Route[web.Controller]{Template: "broken.html", Controller: render}).
		Otherwise("/home").
		Build()
	require.NoError(t, err)

	host, err := web.NewViewHost(table, newTemplates(t), "test.html", slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	obs := &recordingObserver{}
	host.SetObserver(obs)
	return host, obs
}

func TestViewHost_RendersMatchedView(t *testing.T) {
	host, obs := newHost(t)
	rec := httptest.NewRecorder()

	host.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Item</title>")
	assert.Contains(t, rec.Body.String(), "Item 42")
	assert.Equal(t, []string{"/items/:id"}, obs.resolved)
}

func TestViewHost_FallbackRedirect(t *testing.T) {
	host, obs := newHost(t)
	rec := httptest.NewRecorder()

	host.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/app/home", rec.Header().Get("Location"))
	assert.Equal(t, [][2]string{{"/unknown", "/home"}}, obs.redirected)
}

func TestViewHost_HTMX(t *testing.T) {
	host, _ := newHost(t)

	t.Run("partial render", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/items/7", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()

		host.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/app/items/7", rec.Header().Get("HX-Push-Url"))
		assert.NotContains(t, rec.Body.String(), "<!DOCTYPE html>")
		assert.Contains(t, rec.Body.String(), "Item 7")
	})

	t.Run("fallback redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()

		host.ServeHTTP(rec, req)

		assert.Equal(t, "/app/home", rec.Header().Get("HX-Redirect"))
		assert.Empty(t, rec.Header().Get("Location"))
	})
}

func TestViewHost_EscapedCapture(t *testing.T) {
	host, obs := newHost(t)

	req := httptest.NewRequest(http.MethodGet, "/items/100%25", nil)
	rec := httptest.NewRecorder()
	host.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Item 100%")
	assert.Equal(t, []string{"/items/:id"}, obs.resolved)
	assert.Empty(t, obs.redirected)
}

func TestViewHost_HTMXErrorSwap(t *testing.T) {
	host, _ := newHost(t)
	host.SetSwapTarget("main")

	req := httptest.NewRequest(http.MethodPost, "/items/invalid", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	host.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "innerHTML", rec.Header().Get("HX-Reswap"))
	assert.Equal(t, "main", rec.Header().Get("HX-Retarget"))
	assert.Contains(t, rec.Body.String(), "Item invalid")
	assert.NotContains(t, rec.Body.String(), "<!DOCTYPE html>")

	req = httptest.NewRequest(http.MethodGet, "/items/7", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	host.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("HX-Reswap"))
}

func TestViewHost_TemplateFailureWritesNothing(t *testing.T) {
	host, _ := newHost(t)

	rec := httptest.NewRecorder()
	host.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/broken", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "before failure")
}

func TestViewHost_PostRedirect(t *testing.T) {
	host, _ := newHost(t)
	rec := httptest.NewRecorder()

	host.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items/5", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/app/home", rec.Header().Get("Location"))
}

func TestViewHost_ErrorHandler(t *testing.T) {
	host, _ := newHost(t)

	rec := httptest.NewRecorder()
	host.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var got error
	host.SetErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	})

	rec = httptest.NewRecorder()
	host.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/missing", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, errors.Is(got, web.ErrNotFound))
}

func TestNewViewHost_MissingTemplate(t *testing.T) {
	table, err := navigation.NewProvider[web.Controller]().
		When("/other", navigation.Route[web.Controller]{
			Template:   "other.html",
			Controller: web.ControllerFunc(func(http.ResponseWriter, *http.Request, *web.View) error { return nil }),
		}).
		Build()
	require.NoError(t, err)

	_, err = web.NewViewHost(table, newTemplates(t), "test.html", slog.New(slog.DiscardHandler))
	assert.Error(t, err)
}

func TestRouter_Fallback(t *testing.T) {
	r := web.NewRouter()
	r.HandleFunc("GET /exists", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("exists"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	r.SetFallback(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("fallback"))
	}))

	for path, want := range map[string]string{"/exists": "exists", "/nope": "fallback"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Body.String())
	}
}

func TestStatic(t *testing.T) {
	rec := httptest.NewRecorder()
	web.DistServer(staticFS, "testdata/static", "/dist/")(rec, httptest.NewRequest(http.MethodGet, "/dist/app.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console.log")

	rec = httptest.NewRecorder()
	web.PublicFile(staticFS, "testdata/static", "test.txt")(rec, httptest.NewRequest(http.MethodGet, "/test.txt", nil))
	body, _ := io.ReadAll(rec.Result().Body)
	assert.Contains(t, string(body), "test content")

	rec = httptest.NewRecorder()
	web.PublicFile(staticFS, "testdata/static", "missing.txt")(rec, httptest.NewRequest(http.MethodGet, "/missing.txt", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	routes := web.PublicFileRoutes(staticFS, "testdata/static", "test.txt", "app.js")
	require.Len(t, routes, 2)
	assert.Equal(t, "/app.js", routes[1].Pattern)
}
