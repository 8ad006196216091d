package patients

import (
	"context"

	"github.com/motech/mrs/pkg/pagination"
)

// System manages patient registrations. Patients are addressed by MOTECH ID.
type System interface {
	// List returns a page of patients matching the search and filters.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Patient], error)

	Find(ctx context.Context, motechID string) (*Patient, error)

	// Create validates cmd and registers a new patient.
	Create(ctx context.Context, cmd Command) (*Patient, error)

	// Update validates cmd and replaces the patient's details. The MOTECH ID
	// itself may change.
	Update(ctx context.Context, motechID string, cmd Command) (*Patient, error)

	Delete(ctx context.Context, motechID string) error
}
