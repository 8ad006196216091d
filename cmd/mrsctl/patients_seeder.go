package main

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/motech/mrs/internal/patients"
)

//go:embed seeds/*.json
var seedFiles embed.FS

func init() {
	registerSeeder(&PatientSeeder{})
}

// PatientSeedData is the JSON structure of a patient seed file.
type PatientSeedData struct {
	Patients []patients.Command `json:"patients"`
}

// PatientSeeder upserts patients by MOTECH ID from the embedded seed file or
// an external one.
type PatientSeeder struct {
	file string
	now  func() time.Time
}

func (s *PatientSeeder) Name() string {
	return "patients"
}

func (s *PatientSeeder) Description() string {
	return "Seeds demonstration patient registrations"
}

// SetFile overrides the embedded seed file.
func (s *PatientSeeder) SetFile(path string) {
	s.file = path
}

func (s *PatientSeeder) Seed(ctx context.Context, tx *sql.Tx) (int, error) {
	data, err := s.load()
	if err != nil {
		return 0, err
	}

	for _, cmd := range data.Patients {
		if err := s.save(ctx, tx, cmd); err != nil {
			return 0, fmt.Errorf("save patient %s: %w", cmd.MotechID, err)
		}
	}

	return len(data.Patients), nil
}

func (s *PatientSeeder) load() (*PatientSeedData, error) {
	var (
		content []byte
		err     error
	)

	if s.file != "" {
		content, err = os.ReadFile(s.file)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	} else {
		content, err = seedFiles.ReadFile("seeds/patients.json")
		if err != nil {
			return nil, fmt.Errorf("read embedded seed file: %w", err)
		}
	}

	var data PatientSeedData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	now := time.Now
	if s.now != nil {
		now = s.now
	}
	for i := range data.Patients {
		data.Patients[i].Normalize()
		if err := data.Patients[i].Validate(now()); err != nil {
			return nil, fmt.Errorf("seed patient %d: %w", i, err)
		}
	}

	return &data, nil
}

func (s *PatientSeeder) save(ctx context.Context, tx *sql.Tx, cmd patients.Command) error {
	dob, death, err := cmd.Dates()
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO patients(motech_id, first_name, middle_name, last_name, preferred_name,
			gender, date_of_birth, birth_date_estimated, address, facility, dead, death_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (motech_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			middle_name = EXCLUDED.middle_name,
			last_name = EXCLUDED.last_name,
			preferred_name = EXCLUDED.preferred_name,
			gender = EXCLUDED.gender,
			date_of_birth = EXCLUDED.date_of_birth,
			birth_date_estimated = EXCLUDED.birth_date_estimated,
			address = EXCLUDED.address,
			facility = EXCLUDED.facility,
			dead = EXCLUDED.dead,
			death_date = EXCLUDED.death_date,
			updated_at = NOW()`,
		cmd.MotechID, cmd.FirstName, cmd.MiddleName, cmd.LastName, cmd.PreferredName,
		string(cmd.Gender), dob, cmd.BirthDateEstimated, cmd.Address, cmd.Facility, cmd.Dead, death,
	)
	return err
}
