package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/repository"
	appErrors "github.com/noah-isme/cohort-tools-api/pkg/errors"
)

// CohortRepository is the cohort side of the record store.
type CohortRepository interface {
	Create(ctx context.Context, cohort *models.Cohort) error
	List(ctx context.Context) ([]models.Cohort, error)
	FindByID(ctx context.Context, id string) (*models.Cohort, error)
	Update(ctx context.Context, id string, patch models.CohortPatch) (*models.Cohort, error)
	Delete(ctx context.Context, id string) (*models.Cohort, error)
}

// StudentRepository is the student side of the record store. Reads returning
// StudentDetail have the cohort reference populated.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	List(ctx context.Context) ([]models.StudentDetail, error)
	ListByCohort(ctx context.Context, cohortID string) ([]models.StudentDetail, error)
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error)
	Delete(ctx context.Context, id string) (*models.Student, error)
	CountByCohort(ctx context.Context, cohortID string) (int64, error)
	DeleteByCohort(ctx context.Context, cohortID string) (int64, error)
}

// UserRepository stores API accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// RecordOptions tunes how single-record operations behave.
type RecordOptions struct {
	// StrictNotFound answers 404 for missing records instead of a null body.
	StrictNotFound bool
	// CohortDeletePolicy is one of orphan, forbid or cascade.
	CohortDeletePolicy string
}

var (
	cohortPrograms = []string{"Web Dev", "UX/UI", "Data Analytics", "Cybersecurity"}
	cohortFormats  = []string{"Full Time", "Part Time"}
	cohortCampuses = []string{"Madrid", "Barcelona", "Miami", "Paris", "Berlin", "Amsterdam", "Lisbon", "Remote"}
	languages      = []string{"English", "Spanish", "French", "German", "Portuguese", "Dutch", "Other"}
)

// registerSchemaValidations installs the enum rules shared by cohort and
// student payloads. An empty string passes so updates can unset a field.
func registerSchemaValidations(v *validator.Validate) {
	enum := func(tag string, allowed []string) {
		v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if value == "" {
				return true
			}
			for _, candidate := range allowed {
				if value == candidate {
					return true
				}
			}
			return false
		})
	}
	enum("program", cohortPrograms)
	enum("cohort_format", cohortFormats)
	enum("campus", cohortCampuses)
	enum("language", languages)
	v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || v.Var(value, "email") == nil
	})
}

// storeError maps record store failures onto API errors.
func storeError(err error, entity, action string) error {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		return appErrors.Wrap(err, appErrors.ErrInvalidID.Code, appErrors.ErrInvalidID.Status, "malformed "+entity+" id")
	case errors.Is(err, repository.ErrDuplicate):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, entity+" already exists")
	case errors.Is(err, repository.ErrNotFound):
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to "+action)
	}
}

// missing reports whether err is a not-found that should be answered with an
// empty result rather than an error.
func (o RecordOptions) missing(err error) bool {
	return !o.StrictNotFound && errors.Is(err, repository.ErrNotFound)
}

// nullKeys returns the top-level keys of a JSON object whose value is an
// explicit null.
func nullKeys(data []byte) (map[string]bool, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	nulls := make(map[string]bool)
	for key, value := range raw {
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			nulls[key] = true
		}
	}
	return nulls, nil
}

// orEmpty turns an explicit null into the empty string, which unsets the field.
func orEmpty(v *string, null bool) *string {
	if v == nil && null {
		empty := ""
		return &empty
	}
	return v
}

// orNoItems turns an explicit null list into an empty one.
func orNoItems(v *[]string, null bool) *[]string {
	if v == nil && null {
		none := []string{}
		return &none
	}
	return v
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}
