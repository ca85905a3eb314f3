package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/repository"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var cohortRowColumns = []string{"id", "cohort_slug", "cohort_name", "program", "format", "campus", "start_date", "end_date", "in_progress", "program_manager", "lead_teacher", "total_hours"}

var studentRowColumns = []string{"id", "first_name", "last_name", "email", "phone", "linkedin_url", "languages", "program", "background", "image", "projects", "cohort_id"}

var studentDetailColumns = append(append([]string{}, studentRowColumns...),
	"cohort.id", "cohort.cohort_slug", "cohort.cohort_name", "cohort.program", "cohort.format", "cohort.campus",
	"cohort.start_date", "cohort.end_date", "cohort.in_progress", "cohort.program_manager", "cohort.lead_teacher", "cohort.total_hours")

func TestCohortRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	args := make([]driver.Value, len(cohortRowColumns))
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	mock.ExpectExec("INSERT INTO cohorts").WithArgs(args...).WillReturnResult(sqlmock.NewResult(1, 1))

	cohort := &models.Cohort{CohortSlug: "w1", CohortName: "Web1"}
	require.NoError(t, repo.Create(context.Background(), cohort))
	_, err := uuid.Parse(cohort.ID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryCreateDuplicateSlug(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	mock.ExpectExec("INSERT INTO cohorts").WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.Create(context.Background(), &models.Cohort{CohortSlug: "w1"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestCohortRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	id := uuid.NewString()
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT "+cohortColumns+" FROM cohorts WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(cohortRowColumns).
			AddRow(id, "w1", "Web1", "Web Dev", "Full Time", "Berlin", start, nil, true, "", "", 360.0))

	cohort, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Web1", cohort.CohortName)
	require.NotNil(t, cohort.StartDate)
	assert.True(t, start.Equal(*cohort.StartDate))
	assert.Nil(t, cohort.EndDate)
	require.NotNil(t, cohort.InProgress)
	assert.True(t, *cohort.InProgress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	mock.ExpectQuery("FROM cohorts WHERE id").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrInvalidID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryList(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cohorts ORDER BY created_at")).
		WillReturnRows(sqlmock.NewRows(cohortRowColumns).
			AddRow(uuid.NewString(), "w1", "Web1", "", "", "", nil, nil, nil, "", "", nil).
			AddRow(uuid.NewString(), "d1", "Data1", "", "", "", nil, nil, nil, "", "", nil))

	cohorts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, cohorts, 2)
	assert.Equal(t, "Data1", cohorts[1].CohortName)
	assert.Nil(t, cohorts[0].TotalHours)
}

func TestCohortRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	id := uuid.NewString()
	name, hours := "Web2", 400.0
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE cohorts SET cohort_name = $1, total_hours = $2 WHERE id = $3 RETURNING "+cohortColumns)).
		WithArgs("Web2", 400.0, id).
		WillReturnRows(sqlmock.NewRows(cohortRowColumns).
			AddRow(id, "w1", "Web2", "", "", "", nil, nil, nil, "", "", 400.0))

	cohort, err := repo.Update(context.Background(), id, models.CohortPatch{CohortName: &name, TotalHours: &hours})
	require.NoError(t, err)
	assert.Equal(t, "Web2", cohort.CohortName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryUpdateClearsOptionalFields(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	id := uuid.NewString()
	name := "Web2"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE cohorts SET cohort_name = $1, start_date = NULL, total_hours = NULL WHERE id = $2 RETURNING "+cohortColumns)).
		WithArgs("Web2", id).
		WillReturnRows(sqlmock.NewRows(cohortRowColumns).
			AddRow(id, "w1", "Web2", "", "", "", nil, nil, nil, "", "", nil))

	cohort, err := repo.Update(context.Background(), id, models.CohortPatch{CohortName: &name, ClearStartDate: true, ClearTotalHours: true})
	require.NoError(t, err)
	assert.Nil(t, cohort.StartDate)
	assert.Nil(t, cohort.TotalHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCohortRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCohortRepository(db)

	id := uuid.NewString()
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM cohorts WHERE id = $1 RETURNING")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(cohortRowColumns).
			AddRow(id, "w1", "Web1", "", "", "", nil, nil, nil, "", "", nil))

	cohort, err := repo.Delete(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, cohort.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListPopulatesCohort(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	cohortID := uuid.NewString()
	dangling := uuid.NewString()
	mock.ExpectQuery(regexp.QuoteMeta("FROM students s LEFT JOIN cohorts c ON c.id = s.cohort_id ORDER BY s.created_at")).
		WillReturnRows(sqlmock.NewRows(studentDetailColumns).
			AddRow(uuid.NewString(), "A", "B", "a@b.com", "", "", "{English,Spanish}", "", "", "", "{}", cohortID,
				cohortID, "w1", "Web1", "Web Dev", "Full Time", "Berlin", nil, nil, nil, "", "", nil).
			AddRow(uuid.NewString(), "C", "D", "", "", "", "{}", "", "", "", "{}", dangling,
				nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil))

	students, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, []string{"English", "Spanish"}, students[0].Languages)
	assert.Equal(t, []string{}, students[0].Projects)
	require.NotNil(t, students[0].Cohort)
	assert.Equal(t, "Web1", students[0].Cohort.CohortName)
	assert.Nil(t, students[1].Cohort)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListByCohort(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	cohortID := uuid.NewString()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.cohort_id = $1 ORDER BY s.created_at")).
		WithArgs(cohortID).
		WillReturnRows(sqlmock.NewRows(studentDetailColumns))

	students, err := repo.ListByCohort(context.Background(), cohortID)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	args := make([]driver.Value, len(studentRowColumns))
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	mock.ExpectExec("INSERT INTO students").WithArgs(args...).WillReturnResult(sqlmock.NewResult(1, 1))

	cohortID := uuid.NewString()
	student := &models.Student{StudentProfile: models.StudentProfile{FirstName: "A"}, CohortID: &cohortID}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.NotEmpty(t, student.ID)
	assert.Equal(t, []string{}, student.Languages)

	bad := "cohort-1"
	err := repo.Create(context.Background(), &models.Student{CohortID: &bad})
	assert.ErrorIs(t, err, repository.ErrInvalidID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateClearsCohort(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	id := uuid.NewString()
	email, none := "new@example.com", ""
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE students SET email = $1, cohort_id = $2 WHERE id = $3 RETURNING "+studentColumns)).
		WithArgs("new@example.com", nil, id).
		WillReturnRows(sqlmock.NewRows(studentRowColumns).
			AddRow(id, "A", "B", "new@example.com", "", "", "{}", "", "", "", "{}", nil))

	student, err := repo.Update(context.Background(), id, models.StudentPatch{Email: &email, CohortID: &none})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", student.Email)
	assert.Nil(t, student.CohortID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	first := "A"
	mock.ExpectQuery("UPDATE students SET").WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), uuid.NewString(), models.StudentPatch{FirstName: &first})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStudentRepositoryCohortMaintenance(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	cohortID := uuid.NewString()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM students WHERE cohort_id = $1")).
		WithArgs(cohortID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM students WHERE cohort_id = $1")).
		WithArgs(cohortID).
		WillReturnResult(sqlmock.NewResult(0, 2))

	count, err := repo.CountByCohort(context.Background(), cohortID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	removed, err := repo.DeleteByCohort(context.Background(), cohortID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), "ada@example.com", "hash", "Ada", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{Email: "Ada@Example.com", PasswordHash: "hash", Name: "Ada"}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "name", "created_at"}).
			AddRow(user.ID, "ada@example.com", "hash", "Ada", time.Now()))

	found, err := repo.FindByEmail(context.Background(), "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").WillReturnError(&pq.Error{Code: uniqueViolation})

	err := repo.Create(context.Background(), &models.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestEnsureSchema(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()

	for range schema {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}
