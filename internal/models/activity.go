package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity actions recorded to the activity log.
const (
	ActionArticleCreated     = "article_created"
	ActionArticleUpdated     = "article_updated"
	ActionArticleDeleted     = "article_deleted"
	ActionArticleFavorited   = "article_favorited"
	ActionArticleUnfavorited = "article_unfavorited"
	ActionCommentCreated     = "comment_created"
	ActionCommentDeleted     = "comment_deleted"
	ActionUserFollowed       = "user_followed"
	ActionUserUnfollowed     = "user_unfollowed"
)

// Activity is one user action stored in MongoDB
type Activity struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     uint               `json:"user_id" bson:"user_id"`
	Action     string             `json:"action" bson:"action"`
	TargetType string             `json:"target_type" bson:"target_type"` // article, comment, user
	TargetKey  string             `json:"target_key" bson:"target_key"`   // slug, comment id or username
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}

type ActivityResponse struct {
	Activities []Activity `json:"activities"`
}
