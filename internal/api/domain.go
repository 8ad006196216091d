package api

import "github.com/motech/mrs/internal/patients"

// Domain holds the domain systems served by the API.
type Domain struct {
	Patients patients.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Patients: patients.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
