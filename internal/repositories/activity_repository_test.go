package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoActivityRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("record assigns an id", func(mt *mtest.T) {
		repo := NewMongoActivityRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		activity := &models.Activity{UserID: 1, Action: models.ActionArticleCreated, TargetType: "article", TargetKey: "hello"}
		require.NoError(mt, repo.RecordActivity(context.Background(), activity))
		assert.False(mt, activity.ID.IsZero())
		assert.False(mt, activity.CreatedAt.IsZero())
	})

	mt.Run("record surfaces write errors", func(mt *mtest.T) {
		repo := NewMongoActivityRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.RecordActivity(context.Background(), &models.Activity{UserID: 1})
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})

	mt.Run("list decodes documents", func(mt *mtest.T) {
		repo := NewMongoActivityRepository(mt.DB)
		ns := mt.DB.Name() + ".activities"
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "user_id", Value: int64(7)},
				{Key: "action", Value: models.ActionUserFollowed},
				{Key: "target_type", Value: "user"},
				{Key: "target_key", Value: "alice"},
				{Key: "created_at", Value: at},
			},
		))

		activities, err := repo.GetActivitiesByUserID(context.Background(), 7, 20)
		require.NoError(mt, err)
		require.Len(mt, activities, 1)
		assert.Equal(mt, uint(7), activities[0].UserID)
		assert.Equal(mt, models.ActionUserFollowed, activities[0].Action)
		assert.Equal(mt, "alice", activities[0].TargetKey)
		assert.True(mt, at.Equal(activities[0].CreatedAt))
	})

	mt.Run("list of an unknown user is empty", func(mt *mtest.T) {
		repo := NewMongoActivityRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".activities", mtest.FirstBatch))

		activities, err := repo.GetActivitiesByUserID(context.Background(), 99, 20)
		require.NoError(mt, err)
		assert.NotNil(mt, activities)
		assert.Empty(mt, activities)
	})
}

func TestNoopActivityRepository(t *testing.T) {
	var repo ActivityRepository = NoopActivityRepository{}
	require.NoError(t, repo.RecordActivity(context.Background(), &models.Activity{}))

	activities, err := repo.GetActivitiesByUserID(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, activities)
}
