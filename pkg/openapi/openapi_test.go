package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/motech/mrs/pkg/openapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefs(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Patient", openapi.SchemaRef("Patient").Ref)
	assert.Equal(t, "#/components/responses/NotFound", openapi.ResponseRef("NotFound").Ref)

	body := openapi.RequestBodyJSON("PatientCommand", true)
	assert.True(t, body.Required)
	assert.Equal(t, "#/components/schemas/PatientCommand", body.Content["application/json"].Schema.Ref)

	param := openapi.PathParam("id", "MOTECH ID")
	assert.Equal(t, "path", param.In)
	assert.True(t, param.Required)
}

func TestNewComponents(t *testing.T) {
	c := openapi.NewComponents()
	for _, name := range []string{"BadRequest", "NotFound", "Conflict"} {
		assert.Contains(t, c.Responses, name)
	}

	c.AddSchemas(map[string]*openapi.Schema{"Patient": {Type: "object"}})
	assert.Contains(t, c.Schemas, "Patient")
	assert.Contains(t, c.Schemas, "PageRequest")
}

func TestSpec_AddOperation(t *testing.T) {
	spec := openapi.NewSpec("MRS API", "0.1.0")
	spec.AddOperation("/patients", http.MethodGet, &openapi.Operation{Summary: "List"})
	spec.AddOperation("/patients", http.MethodPost, &openapi.Operation{Summary: "Create"})
	spec.AddOperation("/patients", "PATCH", &openapi.Operation{Summary: "ignored"})

	item := spec.Paths["/patients"]
	require.NotNil(t, item)
	assert.Equal(t, "List", item.Get.Summary)
	assert.Equal(t, "Create", item.Post.Summary)
	assert.Nil(t, item.Put)
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec("MRS API", "0.1.0")
	doc, err := openapi.MarshalJSON(spec)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	openapi.ServeSpec(doc)(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, "3.1.0", decoded["openapi"])
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_OPENAPI_TITLE", "Facility API")

	cfg := &openapi.Config{}
	require.NoError(t, cfg.Finalize(&openapi.ConfigEnv{Title: "TEST_OPENAPI_TITLE"}))
	assert.Equal(t, "Facility API", cfg.Title)
	assert.NotEmpty(t, cfg.Description)
	assert.Empty(t, cfg.Servers)
}

func TestConfig_Servers(t *testing.T) {
	t.Setenv("TEST_OPENAPI_SERVERS", " https://mrs.example.org , ,http://localhost:8080")

	cfg := &openapi.Config{Servers: []string{"https://ignored.example.org"}}
	require.NoError(t, cfg.Finalize(&openapi.ConfigEnv{Servers: "TEST_OPENAPI_SERVERS"}))
	assert.Equal(t, []string{"https://mrs.example.org", "http://localhost:8080"}, cfg.Servers)

	cfg.Merge(&openapi.Config{Description: "Facility registry"})
	assert.Len(t, cfg.Servers, 2)

	spec := openapi.NewSpec(cfg.Title, "1.0.0")
	cfg.Apply(spec)
	assert.Equal(t, "Facility registry", spec.Info.Description)
	require.Len(t, spec.Servers, 2)
	assert.Equal(t, "https://mrs.example.org", spec.Servers[0].URL)
}
