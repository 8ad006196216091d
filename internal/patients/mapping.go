package patients

import (
	"database/sql"
	"net/url"
	"strings"

	"github.com/motech/mrs/pkg/query"
	"github.com/motech/mrs/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "patients", "p").
	Project("id", "ID").
	Project("motech_id", "MotechID").
	Project("first_name", "FirstName").
	Project("middle_name", "MiddleName").
	Project("last_name", "LastName").
	Project("preferred_name", "PreferredName").
	Project("gender", "Gender").
	Project("date_of_birth", "DateOfBirth").
	Project("birth_date_estimated", "BirthDateEstimated").
	Project("address", "Address").
	Project("facility", "Facility").
	Project("dead", "Dead").
	Project("death_date", "DeathDate").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

const returning = `RETURNING id, motech_id, first_name, middle_name, last_name, preferred_name,
	gender, date_of_birth, birth_date_estimated, address, facility, dead, death_date,
	created_at, updated_at`

var defaultSort = query.SortField{Field: "LastName"}

var searchFields = []string{"MotechID", "FirstName", "LastName", "PreferredName"}

func scanPatient(s repository.Scanner) (Patient, error) {
	var p Patient
	var gender string
	var death sql.NullTime
	err := s.Scan(
		&p.ID, &p.MotechID, &p.FirstName, &p.MiddleName, &p.LastName, &p.PreferredName,
		&gender, &p.DateOfBirth, &p.BirthDateEstimated, &p.Address, &p.Facility,
		&p.Dead, &death, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Gender = Gender(gender)
	if death.Valid {
		p.DeathDate = &death.Time
	}
	return p, err
}

// Filters narrows List results.
type Filters struct {
	Facility *string
	Gender   *string
}

// FiltersFromQuery reads facility and gender from query values.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if v := strings.TrimSpace(values.Get("facility")); v != "" {
		f.Facility = &v
	}
	if v := strings.ToUpper(strings.TrimSpace(values.Get("gender"))); v == string(GenderMale) || v == string(GenderFemale) {
		f.Gender = &v
	}
	return f
}

func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Facility", f.Facility).
		WhereEquals("Gender", f.Gender)
}
