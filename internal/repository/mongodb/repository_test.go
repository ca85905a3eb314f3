package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/noah-isme/cohort-tools-api/internal/models"
	"github.com/noah-isme/cohort-tools-api/internal/repository"
)

const (
	cohortNS  = "cohort-tools-api.cohorts"
	studentNS = "cohort-tools-api.students"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestCohortRepositoryCreate(t *testing.T) {
	mt := newMock(t)
	mt.Run("assigns object id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewCohortRepository(mt.DB)

		hours := 360.0
		cohort := &models.Cohort{CohortSlug: "w1", CohortName: "Web1", TotalHours: &hours}
		require.NoError(mt, repo.Create(context.Background(), cohort))

		_, err := primitive.ObjectIDFromHex(cohort.ID)
		assert.NoError(mt, err)
	})
	mt.Run("duplicate slug", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}))
		repo := NewCohortRepository(mt.DB)

		err := repo.Create(context.Background(), &models.Cohort{CohortSlug: "w1"})
		assert.ErrorIs(mt, err, repository.ErrDuplicate)
	})
}

func TestCohortRepositoryFindByID(t *testing.T) {
	mt := newMock(t)
	mt.Run("found", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, cohortNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "cohortSlug", Value: "w1"},
			{Key: "cohortName", Value: "Web1"},
			{Key: "totalHours", Value: 360.0},
		}))
		repo := NewCohortRepository(mt.DB)

		cohort, err := repo.FindByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), cohort.ID)
		assert.Equal(mt, "Web1", cohort.CohortName)
		require.NotNil(mt, cohort.TotalHours)
		assert.Equal(mt, 360.0, *cohort.TotalHours)
	})
	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, cohortNS, mtest.FirstBatch))
		repo := NewCohortRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
	mt.Run("malformed id", func(mt *mtest.T) {
		repo := NewCohortRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), "not-an-id")
		assert.ErrorIs(mt, err, repository.ErrInvalidID)
	})
}

func TestCohortRepositoryList(t *testing.T) {
	mt := newMock(t)
	mt.Run("natural order", func(mt *mtest.T) {
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, cohortNS, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: first}, {Key: "cohortName", Value: "Web1"}},
			bson.D{{Key: "_id", Value: second}, {Key: "cohortName", Value: "Data1"}},
		))
		repo := NewCohortRepository(mt.DB)

		cohorts, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, cohorts, 2)
		assert.Equal(mt, first.Hex(), cohorts[0].ID)
		assert.Equal(mt, "Data1", cohorts[1].CohortName)
	})
}

func TestCohortRepositoryUpdateAndDelete(t *testing.T) {
	mt := newMock(t)
	mt.Run("update returns new document", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{{Key: "_id", Value: oid}, {Key: "cohortName", Value: "Web2"}}},
		})
		repo := NewCohortRepository(mt.DB)

		name := "Web2"
		cohort, err := repo.Update(context.Background(), oid.Hex(), models.CohortPatch{CohortName: &name})
		require.NoError(mt, err)
		assert.Equal(mt, "Web2", cohort.CohortName)
	})
	mt.Run("delete returns removed document", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(bson.D{
			{Key: "ok", Value: 1},
			{Key: "value", Value: bson.D{{Key: "_id", Value: oid}, {Key: "cohortSlug", Value: "w1"}}},
		})
		repo := NewCohortRepository(mt.DB)

		cohort, err := repo.Delete(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, "w1", cohort.CohortSlug)
	})
}

func TestCohortUpdateDocument(t *testing.T) {
	name, empty := "Web2", ""
	progress := true
	update := cohortUpdate(models.CohortPatch{CohortName: &name, Campus: &empty, InProgress: &progress})

	assert.Equal(t, bson.D{
		{Key: "$set", Value: bson.D{{Key: "cohortName", Value: "Web2"}, {Key: "inProgress", Value: true}}},
		{Key: "$unset", Value: bson.D{{Key: "campus", Value: ""}}},
	}, update)
}

func TestCohortUpdateDocumentClearsOptionalFields(t *testing.T) {
	update := cohortUpdate(models.CohortPatch{ClearEndDate: true, ClearInProgress: true})

	assert.Equal(t, bson.D{
		{Key: "$unset", Value: bson.D{{Key: "endDate", Value: ""}, {Key: "inProgress", Value: ""}}},
	}, update)
}

func TestStudentDocumentInlinesProfile(t *testing.T) {
	cohortID := primitive.NewObjectID()
	doc := studentDocument{
		ID:     primitive.NewObjectID(),
		Fields: newStudentFields(models.StudentProfile{FirstName: "Ada", Languages: []string{"English"}}),
		Cohort: &cohortID,
	}

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var flat bson.M
	require.NoError(t, bson.Unmarshal(raw, &flat))
	assert.Equal(t, "Ada", flat["firstName"])
	assert.Equal(t, cohortID, flat["cohort"])
	assert.NotContains(t, flat, "fields")

	var decoded studentDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	assert.Equal(t, "Ada", decoded.model().FirstName)
	assert.Equal(t, []string{"English"}, decoded.model().Languages)
}

func TestStudentRepositoryListByCohortPopulates(t *testing.T) {
	mt := newMock(t)
	mt.Run("populated", func(mt *mtest.T) {
		cohortID, studentID := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, studentNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: studentID},
			{Key: "firstName", Value: "A"},
			{Key: "lastName", Value: "B"},
			{Key: "languages", Value: bson.A{"English"}},
			{Key: "cohort", Value: bson.D{{Key: "_id", Value: cohortID}, {Key: "cohortName", Value: "Web1"}}},
		}))
		repo := NewStudentRepository(mt.DB)

		students, err := repo.ListByCohort(context.Background(), cohortID.Hex())
		require.NoError(mt, err)
		require.Len(mt, students, 1)
		assert.Equal(mt, studentID.Hex(), students[0].ID)
		assert.Equal(mt, []string{"English"}, students[0].Languages)
		assert.Equal(mt, []string{}, students[0].Projects)
		require.NotNil(mt, students[0].Cohort)
		assert.Equal(mt, "Web1", students[0].Cohort.CohortName)
	})
	mt.Run("dangling reference", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, studentNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "firstName", Value: "Orphan"},
		}))
		repo := NewStudentRepository(mt.DB)

		students, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, students, 1)
		assert.Nil(mt, students[0].Cohort)
	})
	mt.Run("no matches", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, studentNS, mtest.FirstBatch))
		repo := NewStudentRepository(mt.DB)

		students, err := repo.ListByCohort(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.NotNil(mt, students)
		assert.Empty(mt, students)
	})
}

func TestStudentRepositoryFindByIDMissing(t *testing.T) {
	mt := newMock(t)
	mt.Run("missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, studentNS, mtest.FirstBatch))
		repo := NewStudentRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, repository.ErrNotFound)
	})
}

func TestStudentRepositoryCreate(t *testing.T) {
	mt := newMock(t)
	mt.Run("with cohort reference", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewStudentRepository(mt.DB)

		cohortID := primitive.NewObjectID().Hex()
		student := &models.Student{StudentProfile: models.StudentProfile{FirstName: "A", LastName: "B"}, CohortID: &cohortID}
		require.NoError(mt, repo.Create(context.Background(), student))
		assert.NotEmpty(mt, student.ID)
		assert.Equal(mt, []string{}, student.Languages)
	})
	mt.Run("malformed cohort reference", func(mt *mtest.T) {
		repo := NewStudentRepository(mt.DB)

		bad := "cohort-1"
		err := repo.Create(context.Background(), &models.Student{CohortID: &bad})
		assert.ErrorIs(mt, err, repository.ErrInvalidID)
	})
}

func TestStudentRepositoryCohortMaintenance(t *testing.T) {
	mt := newMock(t)
	mt.Run("count", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, studentNS, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: 1},
			{Key: "n", Value: int32(2)},
		}))
		repo := NewStudentRepository(mt.DB)

		n, err := repo.CountByCohort(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.Equal(mt, int64(2), n)
	})
	mt.Run("delete many", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(3)}))
		repo := NewStudentRepository(mt.DB)

		n, err := repo.DeleteByCohort(context.Background(), primitive.NewObjectID().Hex())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})
}

func TestStudentUpdateDocument(t *testing.T) {
	email, none := "new@example.com", ""
	languages := []string{"Spanish"}
	update, err := studentUpdate(models.StudentPatch{Email: &email, Languages: &languages, CohortID: &none})
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "$set", Value: bson.D{{Key: "email", Value: "new@example.com"}, {Key: "languages", Value: []string{"Spanish"}}}},
		{Key: "$unset", Value: bson.D{{Key: "cohort", Value: ""}}},
	}, update)

	bad := "xyz"
	_, err = studentUpdate(models.StudentPatch{CohortID: &bad})
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestUserRepository(t *testing.T) {
	mt := newMock(t)
	mt.Run("create lower-cases email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewUserRepository(mt.DB)

		user := &models.User{Email: "Ada@Example.com", PasswordHash: "hash", Name: "Ada"}
		require.NoError(mt, repo.Create(context.Background(), user))
		assert.Equal(mt, "ada@example.com", user.Email)
		assert.False(mt, user.CreatedAt.IsZero())
	})
	mt.Run("find by email", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "cohort-tools-api.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: oid},
			{Key: "email", Value: "ada@example.com"},
			{Key: "password", Value: "hash"},
			{Key: "name", Value: "Ada"},
		}))
		repo := NewUserRepository(mt.DB)

		user, err := repo.FindByEmail(context.Background(), "ADA@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), user.ID)
		assert.Equal(mt, "hash", user.PasswordHash)
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := newMock(t)
	mt.Run("creates all indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		assert.NoError(mt, EnsureIndexes(context.Background(), mt.DB))
	})
}
