package patients

import (
	"strings"
	"time"
)

// Command is the create and update payload. Dates use DateLayout.
type Command struct {
	MotechID           string `json:"motech_id" form:"motech_id" validate:"required,max=32,motechid"`
	FirstName          string `json:"first_name" form:"first_name" validate:"required,max=100"`
	MiddleName         string `json:"middle_name" form:"middle_name" validate:"max=100"`
	LastName           string `json:"last_name" form:"last_name" validate:"required,max=100"`
	PreferredName      string `json:"preferred_name" form:"preferred_name" validate:"max=100"`
	Gender             Gender `json:"gender" form:"gender" validate:"required,oneof=M F"`
	DateOfBirth        string `json:"date_of_birth" form:"date_of_birth" validate:"required,datetime=2006-01-02"`
	BirthDateEstimated bool   `json:"birth_date_estimated" form:"birth_date_estimated"`
	Address            string `json:"address" form:"address" validate:"max=255"`
	Facility           string `json:"facility" form:"facility" validate:"required,max=100"`
	Dead               bool   `json:"dead" form:"dead"`
	DeathDate          string `json:"death_date" form:"death_date" validate:"required_if=Dead true"`
}

// CommandFromPatient pre-fills a Command for editing p.
func CommandFromPatient(p Patient) Command {
	cmd := Command{
		MotechID:           p.MotechID,
		FirstName:          p.FirstName,
		MiddleName:         p.MiddleName,
		LastName:           p.LastName,
		PreferredName:      p.PreferredName,
		Gender:             p.Gender,
		DateOfBirth:        p.DateOfBirth.Format(DateLayout),
		BirthDateEstimated: p.BirthDateEstimated,
		Address:            p.Address,
		Facility:           p.Facility,
		Dead:               p.Dead,
	}
	if p.DeathDate != nil {
		cmd.DeathDate = p.DeathDate.Format(DateLayout)
	}
	return cmd
}

// Normalize trims whitespace and canonicalizes case.
func (c *Command) Normalize() {
	c.MotechID = strings.TrimSpace(c.MotechID)
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.MiddleName = strings.TrimSpace(c.MiddleName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.PreferredName = strings.TrimSpace(c.PreferredName)
	c.Gender = Gender(strings.ToUpper(strings.TrimSpace(string(c.Gender))))
	c.DateOfBirth = strings.TrimSpace(c.DateOfBirth)
	c.Address = strings.TrimSpace(c.Address)
	c.Facility = strings.TrimSpace(c.Facility)
	c.DeathDate = strings.TrimSpace(c.DeathDate)
	if !c.Dead {
		c.DeathDate = ""
	}
}

// Dates parses DateOfBirth and DeathDate. DeathDate is nil when empty.
func (c Command) Dates() (time.Time, *time.Time, error) {
	dob, err := time.Parse(DateLayout, c.DateOfBirth)
	if err != nil {
		return time.Time{}, nil, err
	}
	if c.DeathDate == "" {
		return dob, nil, nil
	}
	death, err := time.Parse(DateLayout, c.DeathDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	return dob, &death, nil
}
