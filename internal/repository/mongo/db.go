// Package mongo implements the repositories on MongoDB. Transactions need a
// replica set or sharded cluster; a standalone server rejects them.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san98215/fitness-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Default connection timeout
const defaultTimeout = 10 * time.Second

const (
	userCollectionName            = "users"
	exerciseCollectionName        = "exercises"
	workoutCollectionName         = "workouts"
	workoutExerciseCollectionName = "workout_exercises"
	setCollectionName             = "sets"
	mediaCollectionName           = "media"
)

// ConnectDB establishes a connection to MongoDB using the provided URI and
// pings the primary before returning.
func ConnectDB(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
		return nil, err
	}
	return client, nil
}

// DisconnectDB gracefully disconnects the MongoDB client.
func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes of every collection. Call during startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		userCollectionName: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		exerciseCollectionName: {
			{Keys: bson.D{{Key: "muscleGroup", Value: 1}, {Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}},
		},
		workoutCollectionName: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		},
		workoutExerciseCollectionName: {
			{Keys: bson.D{{Key: "workoutId", Value: 1}, {Key: "order", Value: 1}}},
			{Keys: bson.D{{Key: "workoutId", Value: 1}, {Key: "exerciseId", Value: 1}}},
		},
		setCollectionName: {
			{Keys: bson.D{{Key: "workoutExerciseId", Value: 1}, {Key: "order", Value: 1}}},
		},
		mediaCollectionName: {
			{Keys: bson.D{{Key: "workoutId", Value: 1}}},
		},
	}

	var errs []error
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			errs = append(errs, fmt.Errorf("create indexes for %s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

type store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore returns a repository.Store backed by db. The client is used to
// start transaction sessions.
func NewStore(client *mongo.Client, db *mongo.Database) repository.Store {
	return &store{client: client, db: db}
}

func (s *store) Users() repository.UserRepository {
	return NewMongoUserRepository(s.db)
}

func (s *store) Exercises() repository.ExerciseRepository {
	return NewMongoExerciseRepository(s.db)
}

func (s *store) Workouts() repository.WorkoutRepository {
	return NewMongoWorkoutRepository(s.db)
}

func (s *store) WorkoutExercises() repository.WorkoutExerciseRepository {
	return NewMongoWorkoutExerciseRepository(s.db)
}

func (s *store) Sets() repository.SetRepository {
	return NewMongoSetRepository(s.db)
}

func (s *store) Media() repository.MediaRepository {
	return NewMongoMediaRepository(s.db)
}

// Transaction runs fn inside a session transaction. The context handed to fn
// carries the session, so repositories must be called with it.
func (s *store) Transaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s)
	})
	return err
}

// decodeAll drains cursor into a non-nil slice.
func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	defer cursor.Close(ctx)
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
