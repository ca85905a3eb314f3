package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/repository"
)

// fakeStore keeps cohorts and students in memory with insertion order and
// hex-like identifiers so malformed ids can be simulated.
type fakeStore struct {
	seq         int
	cohorts     map[string]models.Cohort
	cohortOrder []string
	students    map[string]models.Student
	order       []string
	err         error
}

func newFakeStore() *fakeStore {
	return &fakeStore{cohorts: map[string]models.Cohort{}, students: map[string]models.Student{}}
}

func (f *fakeStore) nextID() string {
	f.seq++
	return fmt.Sprintf("%024x", f.seq)
}

func validID(id string) bool {
	return len(id) == 24 && strings.Trim(id, "0123456789abcdef") == ""
}

type fakeCohortRepo struct{ *fakeStore }

func (r fakeCohortRepo) Create(ctx context.Context, cohort *models.Cohort) error {
	if r.err != nil {
		return r.err
	}
	if cohort.CohortSlug != "" {
		for _, existing := range r.cohorts {
			if existing.CohortSlug == cohort.CohortSlug {
				return repository.ErrDuplicate
			}
		}
	}
	cohort.ID = r.nextID()
	r.cohorts[cohort.ID] = *cohort
	r.cohortOrder = append(r.cohortOrder, cohort.ID)
	return nil
}

func (r fakeCohortRepo) List(ctx context.Context) ([]models.Cohort, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := []models.Cohort{}
	for _, id := range r.cohortOrder {
		if c, ok := r.cohorts[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r fakeCohortRepo) FindByID(ctx context.Context, id string) (*models.Cohort, error) {
	if r.err != nil {
		return nil, r.err
	}
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	c, ok := r.cohorts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r fakeCohortRepo) Update(ctx context.Context, id string, patch models.CohortPatch) (*models.Cohort, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(c)
	r.cohorts[id] = *c
	return c, nil
}

func (r fakeCohortRepo) Delete(ctx context.Context, id string) (*models.Cohort, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(r.cohorts, id)
	return c, nil
}

type fakeStudentRepo struct{ *fakeStore }

func (r fakeStudentRepo) Create(ctx context.Context, student *models.Student) error {
	if r.err != nil {
		return r.err
	}
	if student.CohortID != nil && !validID(*student.CohortID) {
		return repository.ErrInvalidID
	}
	student.ID = r.nextID()
	student.Normalize()
	r.students[student.ID] = *student
	r.order = append(r.order, student.ID)
	return nil
}

func (r fakeStudentRepo) populate(s models.Student) models.StudentDetail {
	detail := models.StudentDetail{ID: s.ID, StudentProfile: s.StudentProfile}
	if s.CohortID != nil {
		if c, ok := r.cohorts[*s.CohortID]; ok {
			detail.Cohort = &c
		}
	}
	return detail
}

func (r fakeStudentRepo) List(ctx context.Context) ([]models.StudentDetail, error) {
	if r.err != nil {
		return nil, r.err
	}
	result := []models.StudentDetail{}
	for _, id := range r.order {
		if s, ok := r.students[id]; ok {
			result = append(result, r.populate(s))
		}
	}
	return result, nil
}

func (r fakeStudentRepo) ListByCohort(ctx context.Context, cohortID string) ([]models.StudentDetail, error) {
	if !validID(cohortID) {
		return nil, repository.ErrInvalidID
	}
	result := []models.StudentDetail{}
	for _, id := range r.order {
		if s, ok := r.students[id]; ok && s.CohortID != nil && *s.CohortID == cohortID {
			result = append(result, r.populate(s))
		}
	}
	return result, nil
}

func (r fakeStudentRepo) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	detail := r.populate(s)
	return &detail, nil
}

func (r fakeStudentRepo) Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&s)
	s.Normalize()
	r.students[id] = s
	return &s, nil
}

func (r fakeStudentRepo) Delete(ctx context.Context, id string) (*models.Student, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	s, ok := r.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.students, id)
	return &s, nil
}

func (r fakeStudentRepo) CountByCohort(ctx context.Context, cohortID string) (int64, error) {
	students, err := r.ListByCohort(ctx, cohortID)
	return int64(len(students)), err
}

func (r fakeStudentRepo) DeleteByCohort(ctx context.Context, cohortID string) (int64, error) {
	students, err := r.ListByCohort(ctx, cohortID)
	if err != nil {
		return 0, err
	}
	for _, s := range students {
		delete(r.students, s.ID)
	}
	return int64(len(students)), nil
}

type fakeUserRepo struct {
	users map[string]models.User
	err   error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]models.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	user.Email = strings.ToLower(user.Email)
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = fmt.Sprintf("%024x", len(r.users)+1)
	user.CreatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type fakeRevocations struct {
	revoked map[string]time.Duration
	err     error
}

func (f *fakeRevocations) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	if f.revoked == nil {
		f.revoked = map[string]time.Duration{}
	}
	f.revoked[jti] = ttl
	return nil
}

func (f *fakeRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[jti]
	return ok, nil
}

func strPtr(v string) *string { return &v }
