package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/repository"
)

// StudentRepository manages the students collection. Reads that return
// StudentDetail join the referenced cohort with $lookup.
type StudentRepository struct {
	coll *mongo.Collection
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{coll: db.Collection(studentCollection)}
}

// Create inserts a student and sets its generated identifier.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	doc := studentDocument{ID: primitive.NewObjectID(), Fields: newStudentFields(student.StudentProfile)}
	if student.CohortID != nil {
		cohortID, err := parseID(*student.CohortID)
		if err != nil {
			return err
		}
		doc.Cohort = &cohortID
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translateWriteError("create student", err)
	}
	student.ID = doc.ID.Hex()
	student.Normalize()
	return nil
}

// List returns every student with its cohort populated.
func (r *StudentRepository) List(ctx context.Context) ([]models.StudentDetail, error) {
	return r.aggregate(ctx, "list students", bson.D{})
}

// ListByCohort returns the students referencing cohortID, populated.
func (r *StudentRepository) ListByCohort(ctx context.Context, cohortID string) ([]models.StudentDetail, error) {
	oid, err := parseID(cohortID)
	if err != nil {
		return nil, err
	}
	return r.aggregate(ctx, "list students by cohort", bson.D{{Key: "cohort", Value: oid}})
}

// FindByID fetches a populated student.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	students, err := r.aggregate(ctx, "find student", bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, repository.ErrNotFound
	}
	return &students[0], nil
}

// Update merges patch into the stored student and returns the new version
// with the cohort left as a reference.
func (r *StudentRepository) Update(ctx context.Context, id string, patch models.StudentPatch) (*models.Student, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	filter := bson.D{{Key: "_id", Value: oid}}
	var doc studentDocument
	if patch.Empty() {
		if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
			return nil, translateReadError("find student", err)
		}
		student := doc.model()
		return &student, nil
	}
	update, err := studentUpdate(patch)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("update student: %w", repository.ErrDuplicate)
		}
		return nil, translateReadError("update student", err)
	}
	student := doc.model()
	return &student, nil
}

// Delete removes a student and returns it as last stored.
func (r *StudentRepository) Delete(ctx context.Context, id string) (*models.Student, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc studentDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, translateReadError("delete student", err)
	}
	student := doc.model()
	return &student, nil
}

// CountByCohort counts students referencing cohortID.
func (r *StudentRepository) CountByCohort(ctx context.Context, cohortID string) (int64, error) {
	oid, err := parseID(cohortID)
	if err != nil {
		return 0, err
	}
	n, err := r.coll.CountDocuments(ctx, bson.D{{Key: "cohort", Value: oid}})
	if err != nil {
		return 0, fmt.Errorf("count students by cohort: %w", err)
	}
	return n, nil
}

// DeleteByCohort removes every student referencing cohortID.
func (r *StudentRepository) DeleteByCohort(ctx context.Context, cohortID string) (int64, error) {
	oid, err := parseID(cohortID)
	if err != nil {
		return 0, err
	}
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "cohort", Value: oid}})
	if err != nil {
		return 0, fmt.Errorf("delete students by cohort: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *StudentRepository) aggregate(ctx context.Context, op string, match bson.D) ([]models.StudentDetail, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	pipeline = append(pipeline, populateCohort()...)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var docs []populatedStudentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	students := make([]models.StudentDetail, 0, len(docs))
	for _, doc := range docs {
		students = append(students, doc.model())
	}
	return students, nil
}

// populateCohort replaces the cohort reference with the cohort document.
// Dangling references leave the field absent.
func populateCohort() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: cohortCollection},
			{Key: "localField", Value: "cohort"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "cohort"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$cohort"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func studentUpdate(p models.StudentPatch) (bson.D, error) {
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
	setList := func(key string, v *[]string) {
		if v == nil {
			return
		}
		list := *v
		if list == nil {
			list = []string{}
		}
		set = append(set, bson.E{Key: key, Value: list})
	}
	setString("firstName", p.FirstName)
	setString("lastName", p.LastName)
	setString("email", p.Email)
	setString("phone", p.Phone)
	setString("linkedinUrl", p.LinkedinURL)
	setString("program", p.Program)
	setString("background", p.Background)
	setString("image", p.Image)
	setList("languages", p.Languages)
	setList("projects", p.Projects)
	if p.CohortID != nil {
		if *p.CohortID == "" {
			unset = append(unset, bson.E{Key: "cohort", Value: ""})
		} else {
			oid, err := parseID(*p.CohortID)
			if err != nil {
				return nil, err
			}
			set = append(set, bson.E{Key: "cohort", Value: oid})
		}
	}
	return updateDocument(set, unset), nil
}
