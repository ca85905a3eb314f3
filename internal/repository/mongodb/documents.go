package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/repository"
)

const (
	cohortCollection  = "cohorts"
	studentCollection = "students"
	userCollection    = "users"
)

type cohortDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	CohortSlug     string             `bson:"cohortSlug,omitempty"`
	CohortName     string             `bson:"cohortName,omitempty"`
	Program        string             `bson:"program,omitempty"`
	Format         string             `bson:"format,omitempty"`
	Campus         string             `bson:"campus,omitempty"`
	StartDate      *time.Time         `bson:"startDate,omitempty"`
	EndDate        *time.Time         `bson:"endDate,omitempty"`
	InProgress     *bool              `bson:"inProgress,omitempty"`
	ProgramManager string             `bson:"programManager,omitempty"`
	LeadTeacher    string             `bson:"leadTeacher,omitempty"`
	TotalHours     *float64           `bson:"totalHours,omitempty"`
}

// studentFields is inlined into both the stored and the populated student
// shapes. It is held in a named field since the bson codec skips embedded
// unexported types.
type studentFields struct {
	FirstName   string   `bson:"firstName,omitempty"`
	LastName    string   `bson:"lastName,omitempty"`
	Email       string   `bson:"email,omitempty"`
	Phone       string   `bson:"phone,omitempty"`
	LinkedinURL string   `bson:"linkedinUrl,omitempty"`
	Languages   []string `bson:"languages"`
	Program     string   `bson:"program,omitempty"`
	Background  string   `bson:"background,omitempty"`
	Image       string   `bson:"image,omitempty"`
	Projects    []string `bson:"projects"`
}

type studentDocument struct {
	ID     primitive.ObjectID  `bson:"_id,omitempty"`
	Fields studentFields       `bson:",inline"`
	Cohort *primitive.ObjectID `bson:"cohort,omitempty"`
}

// populatedStudentDocument is the shape produced by the cohort $lookup.
type populatedStudentDocument struct {
	ID     primitive.ObjectID `bson:"_id"`
	Fields studentFields      `bson:",inline"`
	Cohort *cohortDocument    `bson:"cohort,omitempty"`
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Name         string             `bson:"name"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", repository.ErrInvalidID, id)
	}
	return oid, nil
}

func newCohortDocument(c *models.Cohort) cohortDocument {
	return cohortDocument{
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

func (d cohortDocument) model() models.Cohort {
	return models.Cohort{
		ID:             d.ID.Hex(),
		CohortSlug:     d.CohortSlug,
		CohortName:     d.CohortName,
		Program:        d.Program,
		Format:         d.Format,
		Campus:         d.Campus,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		InProgress:     d.InProgress,
		ProgramManager: d.ProgramManager,
		LeadTeacher:    d.LeadTeacher,
		TotalHours:     d.TotalHours,
	}
}

func newStudentFields(p models.StudentProfile) studentFields {
	p.Normalize()
	return studentFields{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Phone:       p.Phone,
		LinkedinURL: p.LinkedinURL,
		Languages:   p.Languages,
		Program:     p.Program,
		Background:  p.Background,
		Image:       p.Image,
		Projects:    p.Projects,
	}
}

func (f studentFields) profile() models.StudentProfile {
	p := models.StudentProfile{
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Email:       f.Email,
		Phone:       f.Phone,
		LinkedinURL: f.LinkedinURL,
		Languages:   f.Languages,
		Program:     f.Program,
		Background:  f.Background,
		Image:       f.Image,
		Projects:    f.Projects,
	}
	p.Normalize()
	return p
}

func (d studentDocument) model() models.Student {
	student := models.Student{ID: d.ID.Hex(), StudentProfile: d.Fields.profile()}
	if d.Cohort != nil {
		id := d.Cohort.Hex()
		student.CohortID = &id
	}
	return student
}

func (d populatedStudentDocument) model() models.StudentDetail {
	detail := models.StudentDetail{ID: d.ID.Hex(), StudentProfile: d.Fields.profile()}
	if d.Cohort != nil {
		cohort := d.Cohort.model()
		detail.Cohort = &cohort
	}
	return detail
}

func (d userDocument) model() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Name:         d.Name,
		CreatedAt:    d.CreatedAt,
	}
}
