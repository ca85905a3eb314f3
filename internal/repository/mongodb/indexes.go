package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes declares the collection schema: unique cohort slugs (when
// set), unique user emails and a lookup index on the student cohort reference.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		cohortCollection: {{
			Keys: bson.D{{Key: "cohortSlug", Value: 1}},
			Options: options.Index().
				SetName("cohortSlug_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "cohortSlug", Value: bson.D{{Key: "$type", Value: "string"}}}}),
		}},
		studentCollection: {{
			Keys:    bson.D{{Key: "cohort", Value: 1}},
			Options: options.Index().SetName("cohort_lookup"),
		}},
		userCollection: {{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("email_unique").SetUnique(true),
		}},
	}
	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}
	return nil
}
