package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoWorkoutExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutExerciseRepository creates a new WorkoutExercise repository.
func NewMongoWorkoutExerciseRepository(db *mongo.Database) repository.WorkoutExerciseRepository {
	return &mongoWorkoutExerciseRepository{
		collection: db.Collection(workoutExerciseCollectionName),
	}
}

func (r *mongoWorkoutExerciseRepository) Create(ctx context.Context, link *domain.WorkoutExercise) (string, error) {
	link.ID = uuid.NewString()
	link.CreatedAt = time.Now().UTC()
	if _, err := r.collection.InsertOne(ctx, link); err != nil {
		return "", fmt.Errorf("create workout exercise: %w", err)
	}
	return link.ID, nil
}

func (r *mongoWorkoutExerciseRepository) CountByWorkout(ctx context.Context, workoutID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"workoutId": workoutID})
	if err != nil {
		return 0, fmt.Errorf("count workout exercises: %w", err)
	}
	return count, nil
}

func (r *mongoWorkoutExerciseRepository) FindFirst(ctx context.Context, workoutID, exerciseID string) (*domain.WorkoutExercise, error) {
	var link domain.WorkoutExercise
	filter := bson.M{"workoutId": workoutID, "exerciseId": exerciseID}
	opts := options.FindOne().SetSort(bson.D{{Key: "order", Value: 1}})
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&link); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *mongoWorkoutExerciseRepository) ListByWorkouts(ctx context.Context, workoutIDs []string) ([]domain.WorkoutExercise, error) {
	if len(workoutIDs) == 0 {
		return []domain.WorkoutExercise{}, nil
	}
	filter := bson.M{"workoutId": bson.M{"$in": workoutIDs}}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list workout exercises: %w", err)
	}
	return decodeAll[domain.WorkoutExercise](ctx, cursor)
}

func (r *mongoWorkoutExerciseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete workout exercise: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoWorkoutExerciseRepository) DeleteByWorkout(ctx context.Context, workoutID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"workoutId": workoutID}); err != nil {
		return fmt.Errorf("delete workout exercises: %w", err)
	}
	return nil
}
