package models

import "time"

// Favorite records that a user favorited an article. The pair is unique.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_favorite_user_article"`
	ArticleID uint      `json:"article_id" gorm:"index;uniqueIndex:idx_favorite_user_article"`
	CreatedAt time.Time `json:"created_at"`
}
