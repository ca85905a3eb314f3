package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/repository"
)

// CohortRepository manages the cohorts collection.
type CohortRepository struct {
	coll *mongo.Collection
}

// NewCohortRepository constructs a CohortRepository.
func NewCohortRepository(db *mongo.Database) *CohortRepository {
	return &CohortRepository{coll: db.Collection(cohortCollection)}
}

// Create inserts a cohort and sets its generated identifier.
func (r *CohortRepository) Create(ctx context.Context, cohort *models.Cohort) error {
	doc := newCohortDocument(cohort)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translateWriteError("create cohort", err)
	}
	cohort.ID = doc.ID.Hex()
	return nil
}

// List returns every cohort in natural order.
func (r *CohortRepository) List(ctx context.Context) ([]models.Cohort, error) {
	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list cohorts: %w", err)
	}
	var docs []cohortDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cohorts: %w", err)
	}
	cohorts := make([]models.Cohort, 0, len(docs))
	for _, doc := range docs {
		cohorts = append(cohorts, doc.model())
	}
	return cohorts, nil
}

// FindByID fetches a cohort by identifier.
func (r *CohortRepository) FindByID(ctx context.Context, id string) (*models.Cohort, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc cohortDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, translateReadError("find cohort", err)
	}
	cohort := doc.model()
	return &cohort, nil
}

// Update merges patch into the stored cohort and returns the new version.
func (r *CohortRepository) Update(ctx context.Context, id string, patch models.CohortPatch) (*models.Cohort, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return r.FindByID(ctx, id)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc cohortDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, cohortUpdate(patch), opts).Decode(&doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("update cohort: %w", repository.ErrDuplicate)
		}
		return nil, translateReadError("update cohort", err)
	}
	cohort := doc.model()
	return &cohort, nil
}

// Delete removes a cohort and returns it as last stored.
func (r *CohortRepository) Delete(ctx context.Context, id string) (*models.Cohort, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc cohortDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, translateReadError("delete cohort", err)
	}
	cohort := doc.model()
	return &cohort, nil
}

func cohortUpdate(p models.CohortPatch) bson.D {
	var set, unset bson.D
	setString := func(key string, v *string) {
		if v == nil {
			return
		}
		if *v == "" {
			unset = append(unset, bson.E{Key: key, Value: ""})
			return
		}
		set = append(set, bson.E{Key: key, Value: *v})
	}
	setString("cohortSlug", p.CohortSlug)
	setString("cohortName", p.CohortName)
	setString("program", p.Program)
	setString("format", p.Format)
	setString("campus", p.Campus)
	setString("programManager", p.ProgramManager)
	setString("leadTeacher", p.LeadTeacher)
	if p.StartDate != nil {
		set = append(set, bson.E{Key: "startDate", Value: *p.StartDate})
	}
	if p.EndDate != nil {
		set = append(set, bson.E{Key: "endDate", Value: *p.EndDate})
	}
	if p.InProgress != nil {
		set = append(set, bson.E{Key: "inProgress", Value: *p.InProgress})
	}
	if p.TotalHours != nil {
		set = append(set, bson.E{Key: "totalHours", Value: *p.TotalHours})
	}
	drop := func(key string, on bool) {
		if on {
			unset = append(unset, bson.E{Key: key, Value: ""})
		}
	}
	drop("startDate", p.ClearStartDate)
	drop("endDate", p.ClearEndDate)
	drop("inProgress", p.ClearInProgress)
	drop("totalHours", p.ClearTotalHours)
	return updateDocument(set, unset)
}

func updateDocument(set, unset bson.D) bson.D {
	update := bson.D{}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}

func translateReadError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func translateWriteError(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
