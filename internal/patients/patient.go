// Package patients manages MOTECH patient registrations: the records the MRS
// dashboard lists and the manage form creates and edits.
package patients

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and form format for calendar dates.
const DateLayout = "2006-01-02"

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Patient is a registered person identified within MOTECH by MotechID.
type Patient struct {
	ID                 uuid.UUID  `json:"id"`
	MotechID           string     `json:"motech_id"`
	FirstName          string     `json:"first_name"`
	MiddleName         string     `json:"middle_name,omitempty"`
	LastName           string     `json:"last_name"`
	PreferredName      string     `json:"preferred_name,omitempty"`
	Gender             Gender     `json:"gender"`
	DateOfBirth        time.Time  `json:"date_of_birth"`
	BirthDateEstimated bool       `json:"birth_date_estimated"`
	Address            string     `json:"address,omitempty"`
	Facility           string     `json:"facility"`
	Dead               bool       `json:"dead"`
	DeathDate          *time.Time `json:"death_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// FullName joins first, middle, and last names.
func (p Patient) FullName() string {
	name := p.FirstName
	if p.MiddleName != "" {
		name += " " + p.MiddleName
	}
	return name + " " + p.LastName
}

// Age returns whole years between DateOfBirth and at, or the death date when dead.
func (p Patient) Age(at time.Time) int {
	end := at
	if p.Dead && p.DeathDate != nil {
		end = *p.DeathDate
	}
	years := end.Year() - p.DateOfBirth.Year()
	if end.YearDay() < p.DateOfBirth.YearDay() {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
