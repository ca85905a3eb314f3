package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/cohort-tools-api/internal/models"
)

const studentDetailSelect = `SELECT s.id, s.first_name, s.last_name, s.email, s.phone, s.linkedin_url, s.languages, s.program, s.background, s.image, s.projects, s.cohort_id,
        c.id AS "cohort.id", c.cohort_slug AS "cohort.cohort_slug", c.cohort_name AS "cohort.cohort_name", c.program AS "cohort.program",
        c.format AS "cohort.format", c.campus AS "cohort.campus", c.start_date AS "cohort.start_date", c.end_date AS "cohort.end_date",
        c.in_progress AS "cohort.in_progress", c.program_manager AS "cohort.program_manager", c.lead_teacher AS "cohort.lead_teacher",
        c.total_hours AS "cohort.total_hours"
        FROM students s LEFT JOIN cohorts c ON c.id = s.cohort_id`

// StudentRepository manages persistence for student records. Reads returning
// StudentDetail join the referenced cohort.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a new student and sets its generated identifier.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	row := newStudentRow(student)
	row.ID = uuid.NewString()
	if row.CohortID != nil {
		key, err := parseID(*row.CohortID)
		if err != nil {
			return err
		}
		row.CohortID = &key
	}
	const query = `INSERT INTO students (` + studentColumns + `)
        VALUES (:id, :first_name, :last_name, :email, :phone, :linkedin_url, :languages, :program, :background, :image, :projects, :cohort_id)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return translateWriteError("create student", err)
	}
	student.ID = row.ID
	student.CohortID = row.CohortID
	student.Normalize()
	return nil
}

// List returns every student with its cohort populated.
func (r *StudentRepository) List(ctx context.Context) ([]models.StudentDetail, error) {
	return r.selectDetails(ctx, "list students", studentDetailSelect+` ORDER BY s.created_at`)
}

// ListByCohort returns the students referencing cohortID, populated.
func (r *StudentRepository) ListByCohort(ctx context.Context, cohortID string) ([]models.StudentDetail, error) {
	key, err := parseID(cohortID)
	if err != nil {
		return nil, err
	}
	return r.selectDetails(ctx, "list students by cohort", studentDetailSelect+` WHERE s.cohort_id = $1 ORDER BY s.created_at`, key)
}

// FindByID fetches a populated student.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row studentDetailRow
	if err := r.db.GetContext(ctx, &row, studentDetailSelect+` WHERE s.id = $1`, key); err != nil {
		return nil, translateReadError("find student", err)
	}
	detail := row.model()
	return &detail, nil
}

// Update applies the fields present in patch and returns the new version with
// the cohort left as a reference.
func (r *StudentRepository) Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row studentRow
	if patch.Empty() {
		if err := r.db.GetContext(ctx, &row, `SELECT `+studentColumns+` FROM students WHERE id = $1`, key); err != nil {
			return nil, translateReadError("find student", err)
		}
		student := row.model()
		return &student, nil
	}

	var a assignments
	a.addString("first_name", patch.FirstName)
	a.addString("last_name", patch.LastName)
	a.addString("email", patch.Email)
	a.addString("phone", patch.Phone)
	a.addString("linkedin_url", patch.LinkedinURL)
	if patch.Languages != nil {
		a.add("languages", stringArray(*patch.Languages))
	}
	a.addString("program", patch.Program)
	a.addString("background", patch.Background)
	a.addString("image", patch.Image)
	if patch.Projects != nil {
		a.add("projects", stringArray(*patch.Projects))
	}
	if patch.CohortID != nil {
		if *patch.CohortID == "" {
			a.add("cohort_id", nil)
		} else {
			cohortKey, err := parseID(*patch.CohortID)
			if err != nil {
				return nil, err
			}
			a.add("cohort_id", cohortKey)
		}
	}

	query := fmt.Sprintf(`UPDATE students SET %s WHERE id = $%d RETURNING %s`, a.clause(), len(a.args)+1, studentColumns)
	if err := r.db.GetContext(ctx, &row, query, append(a.args, key)...); err != nil {
		return nil, translateReadError("update student", err)
	}
	student := row.model()
	return &student, nil
}

// Delete removes a student and returns it as last stored.
func (r *StudentRepository) Delete(ctx context.Context, id string) (*models.Student, error) {
	key, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var row studentRow
	if err := r.db.GetContext(ctx, &row, `DELETE FROM students WHERE id = $1 RETURNING `+studentColumns, key); err != nil {
		return nil, translateReadError("delete student", err)
	}
	student := row.model()
	return &student, nil
}

// CountByCohort counts students referencing cohortID.
func (r *StudentRepository) CountByCohort(ctx context.Context, cohortID string) (int64, error) {
	key, err := parseID(cohortID)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM students WHERE cohort_id = $1`, key); err != nil {
		return 0, fmt.Errorf("count students by cohort: %w", err)
	}
	return total, nil
}

// DeleteByCohort removes every student referencing cohortID.
func (r *StudentRepository) DeleteByCohort(ctx context.Context, cohortID string) (int64, error) {
	key, err := parseID(cohortID)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE cohort_id = $1`, key)
	if err != nil {
		return 0, fmt.Errorf("delete students by cohort: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete students by cohort: %w", err)
	}
	return n, nil
}

func (r *StudentRepository) selectDetails(ctx context.Context, op, query string, args ...interface{}) ([]models.StudentDetail, error) {
	var rows []studentDetailRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	students := make([]models.StudentDetail, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.model())
	}
	return students, nil
}

func stringArray(values []string) pq.StringArray {
	if values == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(values)
}
