// Package mrs wires the MRS patient views into the app's navigation table.
package mrs

import (
	"github.com/motech/mrs/pkg/navigation"
	"github.com/motech/mrs/pkg/web"
)

// View templates served by the MRS routes.
const (
	PatientsTemplate = "patients.html"
	FormTemplate     = "form.html"
)

// Route patterns declared by Configure.
const (
	DashboardPath = "/dashboard"
	NewPath       = "/mrs/new"
	EditPattern   = "/mrs/:id/edit"
)

// Configure declares the MRS routes on p. It is called once while the app
// module is built; the resulting table is owned by the caller.
func Configure(p *navigation.Provider[web.Controller], dashboard, manage web.Controller) {
	p.
		When(DashboardPath, navigation.Route[web.Controller]{Template: PatientsTemplate, Controller: dashboard, Title: "Patients"}).
		When(NewPath, navigation.Route[web.Controller]{Template: FormTemplate, Controller: manage, Title: "Register Patient"}).
		When(EditPattern, navigation.Route[web.Controller]{Template: FormTemplate, Controller: manage, Title: "Edit Patient"}).
		Otherwise(DashboardPath)
}
