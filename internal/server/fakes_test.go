package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/repository"
)

// memoryStore is an in-memory record store good enough to drive the router.
type memoryStore struct {
	seq      int
	cohorts  []models.Cohort
	students []models.Student
	users    []models.User
}

func (m *memoryStore) nextID() string {
	m.seq++
	return fmt.Sprintf("%024x", m.seq)
}

func checkID(id string) error {
	if len(id) != 24 || strings.Trim(id, "0123456789abcdef") != "" {
		return repository.ErrInvalidID
	}
	return nil
}

func (m *memoryStore) cohortIndex(id string) int {
	for i := range m.cohorts {
		if m.cohorts[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *memoryStore) studentIndex(id string) int {
	for i := range m.students {
		if m.students[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *memoryStore) detail(s models.Student) models.StudentDetail {
	d := models.StudentDetail{ID: s.ID, StudentProfile: s.StudentProfile}
	if s.CohortID != nil {
		if i := m.cohortIndex(*s.CohortID); i >= 0 {
			c := m.cohorts[i]
			d.Cohort = &c
		}
	}
	return d
}

type memoryCohorts struct{ *memoryStore }

func (r memoryCohorts) Create(ctx context.Context, cohort *models.Cohort) error {
	cohort.ID = r.nextID()
	r.cohorts = append(r.cohorts, *cohort)
	return nil
}

func (r memoryCohorts) List(ctx context.Context) ([]models.Cohort, error) {
	return append([]models.Cohort{}, r.cohorts...), nil
}

func (r memoryCohorts) FindByID(ctx context.Context, id string) (*models.Cohort, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	i := r.cohortIndex(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	c := r.cohorts[i]
	return &c, nil
}

func (r memoryCohorts) Update(ctx context.Context, id string, patch models.CohortPatch) (*models.Cohort, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	i := r.cohortIndex(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&r.cohorts[i])
	c := r.cohorts[i]
	return &c, nil
}

func (r memoryCohorts) Delete(ctx context.Context, id string) (*models.Cohort, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	i := r.cohortIndex(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	c := r.cohorts[i]
	r.cohorts = append(r.cohorts[:i], r.cohorts[i+1:]...)
	return &c, nil
}

type memoryStudents struct{ *memoryStore }

func (r memoryStudents) Create(ctx context.Context, student *models.Student) error {
	if student.CohortID != nil {
		if err := checkID(*student.CohortID); err != nil {
			return err
		}
	}
	student.ID = r.nextID()
	r.students = append(r.students, *student)
	return nil
}

func (r memoryStudents) List(ctx context.Context) ([]models.StudentDetail, error) {
	result := []models.StudentDetail{}
	for _, s := range r.students {
		result = append(result, r.detail(s))
	}
	return result, nil
}

func (r memoryStudents) ListByCohort(ctx context.Context, cohortID string) ([]models.StudentDetail, error) {
	if err := checkID(cohortID); err != nil {
		return nil, err
	}
	result := []models.StudentDetail{}
	for _, s := range r.students {
		if s.CohortID != nil && *s.CohortID == cohortID {
			result = append(result, r.detail(s))
		}
	}
	return result, nil
}

func (r memoryStudents) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	i := r.studentIndex(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	d := r.detail(r.students[i])
	return &d, nil
}

func (r memoryStudents) Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	i := r.studentIndex(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&r.students[i])
	s := r.students[i]
	return &s, nil
}

func (r memoryStudents) Delete(ctx context.Context, id string) (*models.Student, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	i := r.studentIndex(id)
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	s := r.students[i]
	r.students = append(r.students[:i], r.students[i+1:]...)
	return &s, nil
}

func (r memoryStudents) CountByCohort(ctx context.Context, cohortID string) (int64, error) {
	var n int64
	for _, s := range r.students {
		if s.CohortID != nil && *s.CohortID == cohortID {
			n++
		}
	}
	return n, nil
}

func (r memoryStudents) DeleteByCohort(ctx context.Context, cohortID string) (int64, error) {
	kept := r.students[:0]
	var n int64
	for _, s := range r.students {
		if s.CohortID != nil && *s.CohortID == cohortID {
			n++
			continue
		}
		kept = append(kept, s)
	}
	r.students = kept
	return n, nil
}

type memoryUsers struct{ *memoryStore }

func (r memoryUsers) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.nextID()
	r.users = append(r.users, *user)
	return nil
}

func (r memoryUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memoryUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	for _, u := range r.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}
