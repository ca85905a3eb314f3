package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cohort-tools-api/internal/models"
)

// StudentRequest is the payload for creating or updating a student. Absent
// fields are left untouched on update; null or an empty string unsets the
// field, and a null or empty cohort clears the reference.
type StudentRequest struct {
	FirstName   *string   `json:"firstName"`
	LastName    *string   `json:"lastName"`
	Email       *string   `json:"email" validate:"omitempty,contact_email"`
	Phone       *string   `json:"phone"`
	LinkedinURL *string   `json:"linkedinUrl"`
	Languages   *[]string `json:"languages" validate:"omitempty,dive,language"`
	Program     *string   `json:"program" validate:"omitempty,program"`
	Background  *string   `json:"background"`
	Image       *string   `json:"image"`
	Projects    *[]string `json:"projects"`
	Cohort      *string   `json:"cohort"`

	nulls map[string]bool
}

// UnmarshalJSON decodes the payload and remembers which keys were null.
func (r *StudentRequest) UnmarshalJSON(data []byte) error {
	type plain StudentRequest
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	nulls, err := nullKeys(data)
	if err != nil {
		return err
	}
	*r = StudentRequest(decoded)
	r.nulls = nulls
	return nil
}

// Patch converts the request into a store patch.
func (r StudentRequest) Patch() models.StudentPatch {
	return models.StudentPatch{
		FirstName:   orEmpty(r.FirstName, r.nulls["firstName"]),
		LastName:    orEmpty(r.LastName, r.nulls["lastName"]),
		Email:       orEmpty(r.Email, r.nulls["email"]),
		Phone:       orEmpty(r.Phone, r.nulls["phone"]),
		LinkedinURL: orEmpty(r.LinkedinURL, r.nulls["linkedinUrl"]),
		Languages:   orNoItems(r.Languages, r.nulls["languages"]),
		Program:     orEmpty(r.Program, r.nulls["program"]),
		Background:  orEmpty(r.Background, r.nulls["background"]),
		Image:       orEmpty(r.Image, r.nulls["image"]),
		Projects:    orNoItems(r.Projects, r.nulls["projects"]),
		CohortID:    orEmpty(r.Cohort, r.nulls["cohort"]),
	}
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      StudentRepository
	validator *validator.Validate
	logger    *zap.Logger
	opts      RecordOptions
}

// NewStudentService constructs the student service.
func NewStudentService(repo StudentRepository, validate *validator.Validate, logger *zap.Logger, opts RecordOptions) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	registerSchemaValidations(validate)
	return &StudentService{repo: repo, validator: validate, logger: logger, opts: opts}
}

// Create registers a new student. The cohort stays an unresolved reference in
// the result.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	student := &models.Student{}
	req.Patch().Apply(student)
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, storeError(err, "student", "create student")
	}
	return student, nil
}

// List returns every student with its cohort populated.
func (s *StudentService) List(ctx context.Context) ([]models.StudentDetail, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(err, "student", "list students")
	}
	return students, nil
}

// ListByCohort returns the students of one cohort. An unknown cohort yields an
// empty list.
func (s *StudentService) ListByCohort(ctx context.Context, cohortID string) ([]models.StudentDetail, error) {
	students, err := s.repo.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, storeError(err, "cohort", "list cohort students")
	}
	return students, nil
}

// Get returns detailed student information.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if s.opts.missing(err) {
			return nil, nil
		}
		return nil, storeError(err, "student", "load student")
	}
	return student, nil
}

// Update merges the present fields into the student and returns the result.
func (s *StudentService) Update(ctx context.Context, id string, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid student payload")
	}
	student, err := s.repo.Update(ctx, id, req.Patch())
	if err != nil {
		if s.opts.missing(err) {
			return nil, nil
		}
		return nil, storeError(err, "student", "update student")
	}
	return student, nil
}

// Delete removes a student and returns it as last stored.
func (s *StudentService) Delete(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.Delete(ctx, id)
	if err != nil {
		if s.opts.missing(err) {
			return nil, nil
		}
		return nil, storeError(err, "student", "delete student")
	}
	s.logger.Debug("student deleted", zap.String("student_id", id))
	return student, nil
}
