package services

import (
	"context"
	"log"

	"github.com/anonto42/medium-clone/backend/internal/errs"
	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
)

// ArticleService implements the article use cases: CRUD, listing, feed and favorites.
type ArticleService struct {
	articles  repositories.ArticleRepository
	users     repositories.UserRepository
	favorites repositories.FavoriteRepository
	follows   repositories.FollowRepository
	slugs     *SlugGenerator
	activity  *ActivityService
	clock     Clock
}

func NewArticleService(
	articles repositories.ArticleRepository,
	users repositories.UserRepository,
	favorites repositories.FavoriteRepository,
	follows repositories.FollowRepository,
	activity *ActivityService,
	clock Clock,
) *ArticleService {
	return &ArticleService{
		articles:  articles,
		users:     users,
		favorites: favorites,
		follows:   follows,
		slugs:     NewSlugGenerator(articles, clock),
		activity:  activity,
		clock:     clock,
	}
}

// Create stores a new article authored by userID under a unique slug.
func (s *ArticleService) Create(ctx context.Context, req models.CreateArticleRequest, userID uint) (*models.ArticleResponse, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		if isNotFound(err) {
			return nil, errs.New(errs.BadRequest, errs.UserNotFound)
		}
		return nil, internal(err)
	}

	slug, err := s.slugs.Generate(ctx, req.Title, 0)
	if err != nil {
		return nil, internal(err)
	}

	now := s.clock.Now()
	article := &models.Article{
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		TagList:     models.JoinTags(req.TagList),
		AuthorID:    userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.articles.CreateArticle(ctx, article); err != nil {
		return nil, storeError(err, "", errs.SlugExists)
	}
	log.Printf("article %q created by user %d", article.Slug, userID)
	s.activity.Record(ctx, userID, models.ActionArticleCreated, "article", article.Slug)

	return s.respond(ctx, article, &userID)
}

// Get returns one article enriched for the viewer, who may be nil.
func (s *ArticleService) Get(ctx context.Context, slug string, viewerID *uint) (*models.ArticleResponse, error) {
	article, err := s.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, errs.ArticleNotFound, "")
	}
	return s.respond(ctx, article, viewerID)
}

// Update applies a partial update. Only the author may update; a changed title regenerates the slug.
func (s *ArticleService) Update(ctx context.Context, slug string, req models.UpdateArticleRequest, userID uint) (*models.ArticleResponse, error) {
	found, lookupErr := s.articles.GetArticleBySlug(ctx, slug)
	article, err := AssertArticleOwner(found, lookupErr, userID, errs.ArticleForbiddenUpdate)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil && *req.Title != article.Title {
		newSlug, err := s.slugs.Generate(ctx, *req.Title, article.ID)
		if err != nil {
			return nil, internal(err)
		}
		fields["title"] = *req.Title
		fields["slug"] = newSlug
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Body != nil {
		fields["body"] = *req.Body
	}
	if req.TagList != nil {
		fields["tag_list"] = models.JoinTags(req.TagList)
	}
	if len(fields) > 0 {
		fields["updated_at"] = s.clock.Now()
	}

	if err := s.articles.UpdateArticle(ctx, article.ID, fields); err != nil {
		return nil, storeError(err, errs.ArticleNotFound, errs.SlugExists)
	}
	if newSlug, ok := fields["slug"].(string); ok {
		slug = newSlug
	}
	s.activity.Record(ctx, userID, models.ActionArticleUpdated, "article", slug)

	updated, err := s.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, errs.ArticleNotFound, "")
	}
	return s.respond(ctx, updated, &userID)
}

// Delete removes an article owned by userID and returns it as it was.
func (s *ArticleService) Delete(ctx context.Context, slug string, userID uint) (*models.ArticleResponse, error) {
	found, lookupErr := s.articles.GetArticleBySlug(ctx, slug)
	article, err := AssertArticleOwner(found, lookupErr, userID, errs.ArticleForbiddenDelete)
	if err != nil {
		return nil, err
	}
	resp, err := s.respond(ctx, article, &userID)
	if err != nil {
		return nil, err
	}
	if err := s.articles.DeleteArticle(ctx, article.ID); err != nil {
		return nil, storeError(err, errs.ArticleNotFound, "")
	}
	log.Printf("article %q deleted by user %d", slug, userID)
	s.activity.Record(ctx, userID, models.ActionArticleDeleted, "article", slug)
	return resp, nil
}

// SetFavorite adds (on) or removes the user's favorite. Both directions are idempotent.
func (s *ArticleService) SetFavorite(ctx context.Context, slug string, userID uint, on bool) (*models.ArticleResponse, error) {
	article, err := s.articles.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, storeError(err, errs.ArticleNotFound, "")
	}

	action := models.ActionArticleFavorited
	if on {
		err = s.favorites.UpsertFavorite(ctx, userID, article.ID)
	} else {
		action = models.ActionArticleUnfavorited
		err = s.favorites.DeleteFavorite(ctx, userID, article.ID)
	}
	if err != nil {
		return nil, internal(err)
	}
	s.activity.Record(ctx, userID, action, "article", slug)

	return s.respond(ctx, article, &userID)
}

func (s *ArticleService) respond(ctx context.Context, article *models.Article, viewerID *uint) (*models.ArticleResponse, error) {
	views, err := s.enrich(ctx, []models.Article{*article}, viewerID)
	if err != nil {
		return nil, err
	}
	return &models.ArticleResponse{Article: views[0]}, nil
}
