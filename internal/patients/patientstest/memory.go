// Package patientstest provides an in-memory patients.System for tests.
package patientstest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/motech/mrs/internal/patients"
	"github.com/motech/mrs/pkg/pagination"
)

// Memory is a patients.System backed by a map. Now fixes the clock used
// for validation.
type Memory struct {
	mu       sync.Mutex
	patients map[string]patients.Patient
	cfg      pagination.Config
	Now      time.Time
}

var _ patients.System = (*Memory)(nil)

func NewMemory(seed ...patients.Patient) *Memory {
	m := &Memory{
		patients: make(map[string]patients.Patient),
		cfg:      pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		Now:      time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
	}
	for _, p := range seed {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		m.patients[p.MotechID] = p
	}
	return m
}

func (m *Memory) List(_ context.Context, page pagination.PageRequest, filters patients.Filters) (*pagination.PageResult[patients.Patient], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	page.Normalize(m.cfg)

	var matched []patients.Patient
	for _, p := range m.patients {
		if filters.Facility != nil && p.Facility != *filters.Facility {
			continue
		}
		if filters.Gender != nil && string(p.Gender) != *filters.Gender {
			continue
		}
		if page.Search != nil && !matches(p, *page.Search) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].LastName != matched[j].LastName {
			return matched[i].LastName < matched[j].LastName
		}
		return matched[i].MotechID < matched[j].MotechID
	})

	total := len(matched)
	start := min(page.Offset(), total)
	end := min(start+page.PageSize, total)

	result := pagination.NewPageResult(matched[start:end], total, page.Page, page.PageSize)
	return &result, nil
}

func (m *Memory) Find(_ context.Context, motechID string) (*patients.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.patients[motechID]
	if !ok {
		return nil, patients.ErrNotFound
	}
	return &p, nil
}

func (m *Memory) Create(_ context.Context, cmd patients.Command) (*patients.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.build(cmd)
	if err != nil {
		return nil, err
	}
	if _, ok := m.patients[p.MotechID]; ok {
		return nil, patients.ErrDuplicate
	}

	p.ID = uuid.New()
	p.CreatedAt = m.Now
	p.UpdatedAt = m.Now
	m.patients[p.MotechID] = p
	return &p, nil
}

func (m *Memory) Update(_ context.Context, motechID string, cmd patients.Command) (*patients.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.patients[motechID]
	if !ok {
		return nil, patients.ErrNotFound
	}

	p, err := m.build(cmd)
	if err != nil {
		return nil, err
	}
	if p.MotechID != motechID {
		if _, taken := m.patients[p.MotechID]; taken {
			return nil, patients.ErrDuplicate
		}
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = m.Now
	delete(m.patients, motechID)
	m.patients[p.MotechID] = p
	return &p, nil
}

func (m *Memory) Delete(_ context.Context, motechID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.patients[motechID]; !ok {
		return patients.ErrNotFound
	}
	delete(m.patients, motechID)
	return nil
}

// Len returns the number of stored patients.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.patients)
}

func (m *Memory) build(cmd patients.Command) (patients.Patient, error) {
	cmd.Normalize()
	if err := cmd.Validate(m.Now); err != nil {
		return patients.Patient{}, err
	}

	dob, death, err := cmd.Dates()
	if err != nil {
		return patients.Patient{}, err
	}
	p := patients.Patient{
		MotechID:           cmd.MotechID,
		FirstName:          cmd.FirstName,
		MiddleName:         cmd.MiddleName,
		LastName:           cmd.LastName,
		PreferredName:      cmd.PreferredName,
		Gender:             cmd.Gender,
		DateOfBirth:        dob,
		BirthDateEstimated: cmd.BirthDateEstimated,
		Address:            cmd.Address,
		Facility:           cmd.Facility,
		Dead:               cmd.Dead,
		DeathDate:          death,
	}
	return p, nil
}

func matches(p patients.Patient, search string) bool {
	s := strings.ToLower(search)
	for _, field := range []string{p.MotechID, p.FirstName, p.LastName, p.PreferredName} {
		if strings.Contains(strings.ToLower(field), s) {
			return true
		}
	}
	return false
}
