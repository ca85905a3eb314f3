package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/cohort-tools-api/internal/models"
)

// CohortRepository manages persistence for cohort records.
type CohortRepository struct {
	db *sqlx.DB
}

// NewCohortRepository constructs a CohortRepository.
func NewCohortRepository(db *sqlx.DB) *CohortRepository {
	return &CohortRepository{db: db}
}

// Create inserts a new cohort and sets its generated identifier.
func (r *CohortRepository) Create(ctx context.Context, cohort *models.Cohort) error {
	row := newCohortRow(cohort)
	row.ID = uuid.NewString()
	const query = `INSERT INTO cohorts (` + cohortColumns + `)
        VALUES (:id, :cohort_slug, :cohort_name, :program, :format, :campus, :start_date, :end_date, :in_progress, :program_manager, :lead_teacher, :total_hours)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return translateWriteError("create cohort", err)
	}
	cohort.ID = row.ID
	return nil
}

// List returns every cohort in insertion order.
func (r *CohortRepository) List(ctx context.Context) ([]models.Cohort, error) {
	const query = `SELECT ` + cohortColumns + ` FROM cohorts ORDER BY created_at`
	var rows []cohortRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list cohorts: %w", err)
	}
	cohorts := make([]models.Cohort, 0, len(rows))
	for _, row := range rows {
		cohorts = append(cohorts, row.model())
	}
	return cohorts, nil
}

// FindByID fetches a cohort by identifier.
func (r *CohortRepository) FindByID(ctx context.Context, id string) (*models.Cohort, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	const query = `SELECT ` + cohortColumns + ` FROM cohorts WHERE id = $1`
	var row cohortRow
	if err := r.db.GetContext(ctx, &row, query, key); err != nil {
		return nil, translateReadError("find cohort", err)
	}
	cohort := row.model()
	return &cohort, nil
}

// Update applies the fields present in patch and returns the new version.
func (r *CohortRepository) Update(ctx context.Context, id string, patch models.CohortPatch) (*models.Cohort, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return r.FindByID(ctx, key)
	}

	var a assignments
	a.addString("cohort_slug", patch.CohortSlug)
	a.addString("cohort_name", patch.CohortName)
	a.addString("program", patch.Program)
	a.addString("format", patch.Format)
	a.addString("campus", patch.Campus)
	if patch.StartDate != nil {
		a.add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		a.add("end_date", *patch.EndDate)
	}
	if patch.InProgress != nil {
		a.add("in_progress", *patch.InProgress)
	}
	a.addString("program_manager", patch.ProgramManager)
	a.addString("lead_teacher", patch.LeadTeacher)
	if patch.TotalHours != nil {
		a.add("total_hours", *patch.TotalHours)
	}
	a.addNull("start_date", patch.ClearStartDate)
	a.addNull("end_date", patch.ClearEndDate)
	a.addNull("in_progress", patch.ClearInProgress)
	a.addNull("total_hours", patch.ClearTotalHours)

	query := fmt.Sprintf(`UPDATE cohorts SET %s WHERE id = $%d RETURNING %s`, a.clause(), len(a.args)+1, cohortColumns)
	var row cohortRow
	if err := r.db.GetContext(ctx, &row, query, append(a.args, key)...); err != nil {
		return nil, translateReadError("update cohort", err)
	}
	cohort := row.model()
	return &cohort, nil
}

// Delete removes a cohort and returns it as last stored.
func (r *CohortRepository) Delete(ctx context.Context, id string) (*models.Cohort, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	const query = `DELETE FROM cohorts WHERE id = $1 RETURNING ` + cohortColumns
	var row cohortRow
	if err := r.db.GetContext(ctx, &row, query, key); err != nil {
		return nil, translateReadError("delete cohort", err)
	}
	cohort := row.model()
	return &cohort, nil
}
