package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/pkg/config"
	appErrors "github.com/noah-isme/cohort-tools-api/pkg/errors"
)

// CohortRequest is the payload for creating or updating a cohort. Absent
// fields are left untouched on update; null or an empty string unsets the
// field.
type CohortRequest struct {
	CohortSlug     *string    `json:"cohortSlug"`
	CohortName     *string    `json:"cohortName"`
	Program        *string    `json:"program" validate:"omitempty,program"`
	Format         *string    `json:"format" validate:"omitempty,cohort_format"`
	Campus         *string    `json:"campus" validate:"omitempty,campus"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	InProgress     *bool      `json:"inProgress"`
	ProgramManager *string    `json:"programManager"`
	LeadTeacher    *string    `json:"leadTeacher"`
	TotalHours     *float64   `json:"totalHours" validate:"omitempty,gte=0"`

	nulls map[string]bool
}

// UnmarshalJSON decodes the payload and remembers which keys were null.
func (r *CohortRequest) UnmarshalJSON(data []byte) error {
	type plain CohortRequest
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	nulls, err := nullKeys(data)
	if err != nil {
		return err
	}
	*r = CohortRequest(decoded)
	r.nulls = nulls
	return nil
}

// Patch converts the request into a store patch.
func (r CohortRequest) Patch() models.CohortPatch {
	return models.CohortPatch{
		CohortSlug:      orEmpty(r.CohortSlug, r.nulls["cohortSlug"]),
		CohortName:      orEmpty(r.CohortName, r.nulls["cohortName"]),
		Program:         orEmpty(r.Program, r.nulls["program"]),
		Format:          orEmpty(r.Format, r.nulls["format"]),
		Campus:          orEmpty(r.Campus, r.nulls["campus"]),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		InProgress:      r.InProgress,
		ProgramManager:  orEmpty(r.ProgramManager, r.nulls["programManager"]),
		LeadTeacher:     orEmpty(r.LeadTeacher, r.nulls["leadTeacher"]),
		TotalHours:      r.TotalHours,
		ClearStartDate:  r.StartDate == nil && r.nulls["startDate"],
		ClearEndDate:    r.EndDate == nil && r.nulls["endDate"],
		ClearInProgress: r.InProgress == nil && r.nulls["inProgress"],
		ClearTotalHours: r.TotalHours == nil && r.nulls["totalHours"],
	}
}

// CohortService handles cohort use-cases.
type CohortService struct {
	cohorts   CohortRepository
	students  StudentRepository
	validator *validator.Validate
	logger    *zap.Logger
	opts      RecordOptions
}

// NewCohortService constructs the cohort service. students is consulted by
// the forbid and cascade delete policies.
func NewCohortService(cohorts CohortRepository, students StudentRepository, validate *validator.Validate, logger *zap.Logger, opts RecordOptions) *CohortService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CohortDeletePolicy == "" {
		opts.CohortDeletePolicy = config.DeletePolicyOrphan
	}
	registerSchemaValidations(validate)
	return &CohortService{cohorts: cohorts, students: students, validator: validate, logger: logger, opts: opts}
}

// Create stores a new cohort.
func (s *CohortService) Create(ctx context.Context, req CohortRequest) (*models.Cohort, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid cohort payload")
	}
	cohort := &models.Cohort{}
	req.Patch().Apply(cohort)
	if err := s.cohorts.Create(ctx, cohort); err != nil {
		return nil, storeError(err, "cohort", "create cohort")
	}
	return cohort, nil
}

// List returns every cohort.
func (s *CohortService) List(ctx context.Context) ([]models.Cohort, error) {
	cohorts, err := s.cohorts.List(ctx)
	if err != nil {
		return nil, storeError(err, "cohort", "list cohorts")
	}
	return cohorts, nil
}

// Get returns one cohort. A missing cohort yields nil without error unless
// strict not-found handling is enabled.
func (s *CohortService) Get(ctx context.Context, id string) (*models.Cohort, error) {
	cohort, err := s.cohorts.FindByID(ctx, id)
	if err != nil {
		if s.opts.missing(err) {
			return nil, nil
		}
		return nil, storeError(err, "cohort", "load cohort")
	}
	return cohort, nil
}

// Update merges the present fields into the cohort and returns the result.
func (s *CohortService) Update(ctx context.Context, id string, req CohortRequest) (*models.Cohort, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid cohort payload")
	}
	cohort, err := s.cohorts.Update(ctx, id, req.Patch())
	if err != nil {
		if s.opts.missing(err) {
			return nil, nil
		}
		return nil, storeError(err, "cohort", "update cohort")
	}
	return cohort, nil
}

// Delete removes a cohort according to the configured delete policy.
func (s *CohortService) Delete(ctx context.Context, id string) (*models.Cohort, error) {
	switch s.opts.CohortDeletePolicy {
	case config.DeletePolicyForbid:
		count, err := s.students.CountByCohort(ctx, id)
		if err != nil {
			return nil, storeError(err, "cohort", "count cohort students")
		}
		if count > 0 {
			return nil, appErrors.Clone(appErrors.ErrCohortInUse, "")
		}
	case config.DeletePolicyCascade:
		if _, err := s.cohorts.FindByID(ctx, id); err != nil {
			if s.opts.missing(err) {
				return nil, nil
			}
			return nil, storeError(err, "cohort", "load cohort")
		}
		removed, err := s.students.DeleteByCohort(ctx, id)
		if err != nil {
			return nil, storeError(err, "cohort", "delete cohort students")
		}
		s.logger.Info("cascaded cohort delete", zap.String("cohort_id", id), zap.Int64("students_removed", removed))
	}

	cohort, err := s.cohorts.Delete(ctx, id)
	if err != nil {
		if s.opts.missing(err) {
			return nil, nil
		}
		return nil, storeError(err, "cohort", "delete cohort")
	}
	return cohort, nil
}
