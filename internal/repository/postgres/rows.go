package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/repository"
)

const uniqueViolation = "23505"

const cohortColumns = `id, cohort_slug, cohort_name, program, format, campus, start_date, end_date, in_progress, program_manager, lead_teacher, total_hours`

const studentColumns = `id, first_name, last_name, email, phone, linkedin_url, languages, program, background, image, projects, cohort_id`

type cohortRow struct {
	ID             string     `db:"id"`
	CohortSlug     string     `db:"cohort_slug"`
	CohortName     string     `db:"cohort_name"`
	Program        string     `db:"program"`
	Format         string     `db:"format"`
	Campus         string     `db:"campus"`
	StartDate      *time.Time `db:"start_date"`
	EndDate        *time.Time `db:"end_date"`
	InProgress     *bool      `db:"in_progress"`
	ProgramManager string     `db:"program_manager"`
	LeadTeacher    string     `db:"lead_teacher"`
	TotalHours     *float64   `db:"total_hours"`
}

func newCohortRow(c *models.Cohort) cohortRow {
	return cohortRow{
		ID:             c.ID,
		CohortSlug:     c.CohortSlug,
		CohortName:     c.CohortName,
		Program:        c.Program,
		Format:         c.Format,
		Campus:         c.Campus,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		InProgress:     c.InProgress,
		ProgramManager: c.ProgramManager,
		LeadTeacher:    c.LeadTeacher,
		TotalHours:     c.TotalHours,
	}
}

func (r cohortRow) model() models.Cohort {
	return models.Cohort{
		ID:             r.ID,
		CohortSlug:     r.CohortSlug,
		CohortName:     r.CohortName,
		Program:        r.Program,
		Format:         r.Format,
		Campus:         r.Campus,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		InProgress:     r.InProgress,
		ProgramManager: r.ProgramManager,
		LeadTeacher:    r.LeadTeacher,
		TotalHours:     r.TotalHours,
	}
}

// joinedCohortRow is the cohort side of a LEFT JOIN; every column may be NULL.
type joinedCohortRow struct {
	ID             *string    `db:"id"`
	CohortSlug     *string    `db:"cohort_slug"`
	CohortName     *string    `db:"cohort_name"`
	Program        *string    `db:"program"`
	Format         *string    `db:"format"`
	Campus         *string    `db:"campus"`
	StartDate      *time.Time `db:"start_date"`
	EndDate        *time.Time `db:"end_date"`
	InProgress     *bool      `db:"in_progress"`
	ProgramManager *string    `db:"program_manager"`
	LeadTeacher    *string    `db:"lead_teacher"`
	TotalHours     *float64   `db:"total_hours"`
}

func (r joinedCohortRow) model() *models.Cohort {
	if r.ID == nil {
		return nil
	}
	return &models.Cohort{
		ID:             *r.ID,
		CohortSlug:     deref(r.CohortSlug),
		CohortName:     deref(r.CohortName),
		Program:        deref(r.Program),
		Format:         deref(r.Format),
		Campus:         deref(r.Campus),
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		InProgress:     r.InProgress,
		ProgramManager: deref(r.ProgramManager),
		LeadTeacher:    deref(r.LeadTeacher),
		TotalHours:     r.TotalHours,
	}
}

type studentRow struct {
	ID          string         `db:"id"`
	FirstName   string         `db:"first_name"`
	LastName    string         `db:"last_name"`
	Email       string         `db:"email"`
	Phone       string         `db:"phone"`
	LinkedinURL string         `db:"linkedin_url"`
	Languages   pq.StringArray `db:"languages"`
	Program     string         `db:"program"`
	Background  string         `db:"background"`
	Image       string         `db:"image"`
	Projects    pq.StringArray `db:"projects"`
	CohortID    *string        `db:"cohort_id"`
}

func newStudentRow(s *models.Student) studentRow {
	profile := s.StudentProfile
	profile.Normalize()
	return studentRow{
		ID:          s.ID,
		FirstName:   profile.FirstName,
		LastName:    profile.LastName,
		Email:       profile.Email,
		Phone:       profile.Phone,
		LinkedinURL: profile.LinkedinURL,
		Languages:   pq.StringArray(profile.Languages),
		Program:     profile.Program,
		Background:  profile.Background,
		Image:       profile.Image,
		Projects:    pq.StringArray(profile.Projects),
		CohortID:    s.CohortID,
	}
}

func (r studentRow) profile() models.StudentProfile {
	p := models.StudentProfile{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		LinkedinURL: r.LinkedinURL,
		Languages:   []string(r.Languages),
		Program:     r.Program,
		Background:  r.Background,
		Image:       r.Image,
		Projects:    []string(r.Projects),
	}
	p.Normalize()
	return p
}

func (r studentRow) model() models.Student {
	return models.Student{ID: r.ID, StudentProfile: r.profile(), CohortID: r.CohortID}
}

// studentDetailRow scans a student joined with its cohort. Cohort columns are
// aliased as "cohort.<column>".
type studentDetailRow struct {
	studentRow
	Cohort joinedCohortRow `db:"cohort"`
}

func (r studentDetailRow) model() models.StudentDetail {
	return models.StudentDetail{ID: r.ID, StudentProfile: r.profile(), Cohort: r.Cohort.model()}
}

type userRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r userRow) model() models.User {
	return models.User{ID: r.ID, Email: r.Email, PasswordHash: r.PasswordHash, Name: r.Name, CreatedAt: r.CreatedAt}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return parsed.String(), nil
}

func translateReadError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return translateWriteError(op, err)
}

func translateWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// assignments accumulates "column = $n" fragments for a partial UPDATE.
type assignments struct {
	sets []string
	args []interface{}
}

func (a *assignments) add(column string, value interface{}) {
	a.args = append(a.args, value)
	a.sets = append(a.sets, fmt.Sprintf("%s = $%d", column, len(a.args)))
}

func (a *assignments) addString(column string, value *string) {
	if value != nil {
		a.add(column, *value)
	}
}

func (a *assignments) addNull(column string, on bool) {
	if on {
		a.sets = append(a.sets, column+" = NULL")
	}
}

func (a *assignments) clause() string {
	return strings.Join(a.sets, ", ")
}
