package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/motech/mrs/pkg/openapi"
	"github.com/motech/mrs/pkg/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(w http.ResponseWriter, r *http.Request) {}

func patientGroup() routes.Group {
	return routes.Group{
		Prefix:      "/patients",
		Tags:        []string{"Patients"},
		Description: "Patient records",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: noop, OpenAPI: &openapi.Operation{Summary: "List"}},
			{Method: "GET", Pattern: "/{id}", Handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(r.PathValue("id")))
			}, OpenAPI: &openapi.Operation{Summary: "Find", Tags: []string{"Lookup"}}},
			{Method: "DELETE", Pattern: "/{id}", Handler: noop},
		},
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, patientGroup())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/patients/MT-1", nil))
	assert.Equal(t, "MT-1", rec.Body.String())

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/patients/MT-1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestGroup_AddToSpec(t *testing.T) {
	spec := openapi.NewSpec("MRS API", "0.1.0")
	patientGroup().AddToSpec("/api", spec)

	list := spec.Paths["/api/patients"]
	require.NotNil(t, list)
	assert.Equal(t, []string{"Patients"}, list.Get.Tags)

	find := spec.Paths["/api/patients/{id}"]
	require.NotNil(t, find)
	assert.Equal(t, []string{"Lookup"}, find.Get.Tags)
	assert.Nil(t, find.Delete)

	require.Len(t, spec.Tags, 1)
	assert.Equal(t, "Patients", spec.Tags[0].Name)
}
