package repositories

import (
	"context"
	"time"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository defines the interface for the activity log
type ActivityRepository interface {
	RecordActivity(ctx context.Context, activity *models.Activity) error
	GetActivitiesByUserID(ctx context.Context, userID uint, limit int64) ([]models.Activity, error)
}

// MongoActivityRepository implements ActivityRepository for MongoDB
type MongoActivityRepository struct {
	collection *mongo.Collection
}

// NewMongoActivityRepository creates a new MongoActivityRepository
func NewMongoActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{collection: db.Collection("activities")}
}

// RecordActivity inserts one activity document
func (r *MongoActivityRepository) RecordActivity(ctx context.Context, activity *models.Activity) error {
	activity.ID = primitive.NewObjectID()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, activity)
	return err
}

// GetActivitiesByUserID retrieves the latest activities of a user
func (r *MongoActivityRepository) GetActivitiesByUserID(ctx context.Context, userID uint, limit int64) ([]models.Activity, error) {
	activities := []models.Activity{}
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// NoopActivityRepository is used when no MongoDB is configured.
type NoopActivityRepository struct{}

func (NoopActivityRepository) RecordActivity(context.Context, *models.Activity) error { return nil }

func (NoopActivityRepository) GetActivitiesByUserID(context.Context, uint, int64) ([]models.Activity, error) {
	return []models.Activity{}, nil
}
