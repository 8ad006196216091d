package api

import (
	"net/http"

	"github.com/motech/mrs/internal/patients"
	"github.com/motech/mrs/pkg/openapi"
	"github.com/motech/mrs/pkg/routes"
	"github.com/motech/mrs/web/docs"
)

func registerRoutes(mux *http.ServeMux, spec *openapi.Spec, basePath string, runtime *Runtime, domain *Domain) {
	patientsHandler := patients.NewHandler(domain.Patients, runtime.Logger, runtime.Pagination)
	docsHandler := docs.NewHandler(basePath + "/openapi.json")

	groups := []routes.Group{
		patientsHandler.Routes(),
	}

	spec.Components.AddSchemas(patients.Spec.Schemas())
	for _, g := range groups {
		g.AddToSpec(basePath, spec)
	}

	routes.Register(mux, append(groups, docsHandler.Routes())...)
}
