package repositories

import (
	"context"
	"strings"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleFilter is a conjunction of optional conditions. Zero fields are ignored.
type ArticleFilter struct {
	Tag            string // substring of the tag list
	AuthorUsername string // exact username of the author
	FavoritedBy    *uint  // only articles favorited by this user
	FollowedBy     *uint  // only articles whose author this user follows
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article *models.Article) error
	GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	FindArticles(ctx context.Context, filter ArticleFilter, limit, offset int) ([]models.Article, error)
	CountArticles(ctx context.Context, filter ArticleFilter) (int64, error)
	UpdateArticle(ctx context.Context, id uint, fields map[string]interface{}) error
	DeleteArticle(ctx context.Context, id uint) error
}

// PostgresArticleRepository implements ArticleRepository on gorm
type PostgresArticleRepository struct {
	db *gorm.DB
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository
func NewPostgresArticleRepository(db *gorm.DB) *PostgresArticleRepository {
	return &PostgresArticleRepository{db: db}
}

// CreateArticle inserts the article and loads its author. A taken slug yields ErrConflict.
func (r *PostgresArticleRepository) CreateArticle(ctx context.Context, article *models.Article) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(article).Error; err != nil {
		return translate(err)
	}
	return translate(db.Preload("Author").First(article, article.ID).Error)
}

// GetArticleBySlug retrieves an article and its author by slug
func (r *PostgresArticleRepository) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).Preload("Author").Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

// FindArticles returns a page of matching articles, newest first, ties broken by id.
func (r *PostgresArticleRepository) FindArticles(ctx context.Context, filter ArticleFilter, limit, offset int) ([]models.Article, error) {
	var articles []models.Article
	err := r.filtered(ctx, filter).
		Preload("Author").
		Order("articles.created_at DESC").
		Order("articles.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	return articles, translate(err)
}

// CountArticles counts all matching articles, ignoring pagination.
func (r *PostgresArticleRepository) CountArticles(ctx context.Context, filter ArticleFilter) (int64, error) {
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error
	return total, translate(err)
}

func (r *PostgresArticleRepository) filtered(ctx context.Context, f ArticleFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Article{})
	if f.Tag != "" {
		q = q.Where(`articles.tag_list LIKE ? ESCAPE '\'`, "%"+escapeLike(f.Tag)+"%")
	}
	if f.AuthorUsername != "" {
		q = q.Where("articles.author_id IN (?)",
			r.db.Model(&models.User{}).Select("id").Where("username = ?", f.AuthorUsername))
	}
	if f.FavoritedBy != nil {
		q = q.Where("articles.id IN (?)",
			r.db.Model(&models.Favorite{}).Select("article_id").Where("user_id = ?", *f.FavoritedBy))
	}
	if f.FollowedBy != nil {
		q = q.Where("articles.author_id IN (?)",
			r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", *f.FollowedBy))
	}
	return q
}

// UpdateArticle applies a partial update. Keys are column names.
func (r *PostgresArticleRepository) UpdateArticle(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.Article{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteArticle removes the article together with its comments and favorites.
func (r *PostgresArticleRepository) DeleteArticle(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Article{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return translate(err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
