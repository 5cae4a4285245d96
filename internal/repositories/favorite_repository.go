package repositories

import (
	"context"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository defines the interface for favorite data operations
type FavoriteRepository interface {
	UpsertFavorite(ctx context.Context, userID, articleID uint) error
	DeleteFavorite(ctx context.Context, userID, articleID uint) error
	HasFavorited(ctx context.Context, userID, articleID uint) (bool, error)
	CountByArticle(ctx context.Context, articleID uint) (int64, error)
	CountByArticles(ctx context.Context, articleIDs []uint) (map[uint]int64, error)
	FavoritedAmong(ctx context.Context, userID uint, articleIDs []uint) (map[uint]bool, error)
}

// PostgresFavoriteRepository implements FavoriteRepository on gorm
type PostgresFavoriteRepository struct {
	db *gorm.DB
}

// NewPostgresFavoriteRepository creates a new PostgresFavoriteRepository
func NewPostgresFavoriteRepository(db *gorm.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

// UpsertFavorite inserts the edge unless it already exists.
func (r *PostgresFavoriteRepository) UpsertFavorite(ctx context.Context, userID, articleID uint) error {
	fav := &models.Favorite{UserID: userID, ArticleID: articleID}
	return translate(r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(fav).Error)
}

// DeleteFavorite removes the edge. Removing a missing edge is not an error.
func (r *PostgresFavoriteRepository) DeleteFavorite(ctx context.Context, userID, articleID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Favorite{}).Error
	return translate(err)
}

// HasFavorited checks if a user has favorited a specific article
func (r *PostgresFavoriteRepository) HasFavorited(ctx context.Context, userID, articleID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

// CountByArticle retrieves the number of favorites of one article
func (r *PostgresFavoriteRepository) CountByArticle(ctx context.Context, articleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).Where("article_id = ?", articleID).Count(&count).Error
	return count, translate(err)
}

type articleCount struct {
	ArticleID uint
	Count     int64
}

// CountByArticles counts favorites for a page of articles with one grouped query.
// Articles without favorites are absent from the map.
func (r *PostgresFavoriteRepository) CountByArticles(ctx context.Context, articleIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return counts, nil
	}
	var rows []articleCount
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Select("article_id, COUNT(*) AS count").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, row := range rows {
		counts[row.ArticleID] = row.Count
	}
	return counts, nil
}

// FavoritedAmong reports which of articleIDs the user has favorited, in one query.
func (r *PostgresFavoriteRepository) FavoritedAmong(ctx context.Context, userID uint, articleIDs []uint) (map[uint]bool, error) {
	favorited := make(map[uint]bool)
	if len(articleIDs) == 0 {
		return favorited, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ? AND article_id IN ?", userID, articleIDs).
		Pluck("article_id", &ids).Error
	if err != nil {
		return nil, translate(err)
	}
	for _, id := range ids {
		favorited[id] = true
	}
	return favorited, nil
}
