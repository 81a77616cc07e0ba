package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoSetRepository struct {
	collection *mongo.Collection
}

// NewMongoSetRepository creates a new Set repository.
func NewMongoSetRepository(db *mongo.Database) repository.SetRepository {
	return &mongoSetRepository{
		collection: db.Collection(setCollectionName),
	}
}

func (r *mongoSetRepository) CreateMany(ctx context.Context, sets []domain.Set) error {
	if len(sets) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(sets))
	for i := range sets {
		sets[i].ID = uuid.NewString()
		sets[i].CreatedAt = now
		docs[i] = sets[i]
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("create sets: %w", err)
	}
	return nil
}

func (r *mongoSetRepository) ListByWorkoutExercises(ctx context.Context, workoutExerciseIDs []string) ([]domain.Set, error) {
	if len(workoutExerciseIDs) == 0 {
		return []domain.Set{}, nil
	}
	filter := bson.M{"workoutExerciseId": bson.M{"$in": workoutExerciseIDs}}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	return decodeAll[domain.Set](ctx, cursor)
}

func (r *mongoSetRepository) DeleteByWorkoutExercises(ctx context.Context, workoutExerciseIDs []string) error {
	if len(workoutExerciseIDs) == 0 {
		return nil
	}
	filter := bson.M{"workoutExerciseId": bson.M{"$in": workoutExerciseIDs}}
	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete sets: %w", err)
	}
	return nil
}
