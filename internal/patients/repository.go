package patients

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/motech/mrs/pkg/pagination"
	"github.com/motech/mrs/pkg/query"
	"github.com/motech/mrs/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "patients"),
		pagination: pagination,
		now:        time.Now,
	}
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Patient], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, searchFields...)

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	patients, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPatient)
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}

	result := pagination.NewPageResult(patients, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, motechID string) (*Patient, error) {
	q, args := query.NewBuilder(projection, defaultSort).
		WhereEquals("MotechID", &motechID).
		Build()

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPatient)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*Patient, error) {
	cmd.Normalize()
	if err := cmd.Validate(r.now()); err != nil {
		return nil, err
	}
	dob, death, err := cmd.Dates()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	q := `
		INSERT INTO patients(motech_id, first_name, middle_name, last_name, preferred_name,
			gender, date_of_birth, birth_date_estimated, address, facility, dead, death_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		` + returning

	args := []any{
		cmd.MotechID, cmd.FirstName, cmd.MiddleName, cmd.LastName, cmd.PreferredName,
		string(cmd.Gender), dob, cmd.BirthDateEstimated, cmd.Address, cmd.Facility, cmd.Dead, death,
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Patient, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPatient)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("patient registered", "motech_id", p.MotechID, "facility", p.Facility)
	return &p, nil
}

func (r *repo) Update(ctx context.Context, motechID string, cmd Command) (*Patient, error) {
	cmd.Normalize()
	if err := cmd.Validate(r.now()); err != nil {
		return nil, err
	}
	dob, death, err := cmd.Dates()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	q := `
		UPDATE patients
		SET motech_id = $2, first_name = $3, middle_name = $4, last_name = $5, preferred_name = $6,
			gender = $7, date_of_birth = $8, birth_date_estimated = $9, address = $10,
			facility = $11, dead = $12, death_date = $13, updated_at = NOW()
		WHERE motech_id = $1
		` + returning

	args := []any{
		motechID,
		cmd.MotechID, cmd.FirstName, cmd.MiddleName, cmd.LastName, cmd.PreferredName,
		string(cmd.Gender), dob, cmd.BirthDateEstimated, cmd.Address, cmd.Facility, cmd.Dead, death,
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Patient, error) {
		return repository.QueryOne(ctx, tx, q, args, scanPatient)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("patient updated", "motech_id", p.MotechID, "previous_motech_id", motechID)
	return &p, nil
}

func (r *repo) Delete(ctx context.Context, motechID string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM patients WHERE motech_id = $1", motechID)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("patient deleted", "motech_id", motechID)
	return nil
}
