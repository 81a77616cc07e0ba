package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/san98215/fitness-app/internal/domain"
	"github.com/san98215/fitness-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoMediaRepository stores workout media metadata. The files live in S3.
type mongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new Media repository.
func NewMongoMediaRepository(db *mongo.Database) repository.MediaRepository {
	return &mongoMediaRepository{
		collection: db.Collection(mediaCollectionName),
	}
}

func (r *mongoMediaRepository) Create(ctx context.Context, media *domain.Media) (string, error) {
	media.ID = uuid.NewString()
	if _, err := r.collection.InsertOne(ctx, media); err != nil {
		return "", fmt.Errorf("create media: %w", err)
	}
	return media.ID, nil
}

func (r *mongoMediaRepository) GetByID(ctx context.Context, id string) (*domain.Media, error) {
	var media domain.Media
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&media); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &media, nil
}

func (r *mongoMediaRepository) ListByWorkout(ctx context.Context, workoutID string) ([]domain.Media, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"workoutId": workoutID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return decodeAll[domain.Media](ctx, cursor)
}

func (r *mongoMediaRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoMediaRepository) DeleteByWorkout(ctx context.Context, workoutID string) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"workoutId": workoutID}); err != nil {
		return fmt.Errorf("delete workout media: %w", err)
	}
	return nil
}
