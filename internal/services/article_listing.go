package services

import (
	"context"
	"fmt"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLimit = 20
	MinLimit     = 1
	MaxLimit     = 100

	msgFavoritedUserMissing = "No articles found for the specified favorited user"
	msgNoMatch              = "No articles found matching the filters"
	msgOffsetPastEnd        = "No articles found for the current offset"
)

// NormalizePagination applies the defaults and clamps: limit 0 becomes 20, then limit is
// clamped to [1,100] and offset to >= 0.
func NormalizePagination(limit, offset int) (int, int) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// NewPageMeta computes pagination metadata. limit must be positive.
func NewPageMeta(total int64, limit, offset int) models.PageMeta {
	l := int64(limit)
	totalPages := int(total / l)
	if total%l != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}
	return models.PageMeta{
		Total:       total,
		Page:        offset/limit + 1,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: int64(offset) < total-l,
		HasPrevPage: offset > 0,
	}
}

func listMessage(returned int, total int64) string {
	switch {
	case returned > 0:
		return fmt.Sprintf("Retrieved %d articles successfully", returned)
	case total == 0:
		return msgNoMatch
	default:
		return msgOffsetPastEnd
	}
}

// List returns a filtered page of articles enriched for the viewer, who may be nil.
func (s *ArticleService) List(ctx context.Context, q models.ListArticlesQuery, viewerID *uint) (*models.ArticleList, error) {
	limit, offset := NormalizePagination(q.Limit, q.Offset)
	filter := repositories.ArticleFilter{Tag: q.Tag, AuthorUsername: q.Author}

	if q.Favorited != "" {
		user, err := s.users.GetUserByUsername(ctx, q.Favorited)
		if err != nil {
			if isNotFound(err) {
				return &models.ArticleList{
					Data:    []models.ArticleView{},
					Meta:    NewPageMeta(0, limit, 0),
					Message: msgFavoritedUserMissing,
				}, nil
			}
			return nil, internal(err)
		}
		filter.FavoritedBy = &user.ID
	}

	return s.listPage(ctx, filter, limit, offset, viewerID)
}

// Feed lists articles written by authors the viewer follows.
func (s *ArticleService) Feed(ctx context.Context, q models.ListArticlesQuery, viewerID uint) (*models.ArticleList, error) {
	limit, offset := NormalizePagination(q.Limit, q.Offset)
	filter := repositories.ArticleFilter{FollowedBy: &viewerID}
	return s.listPage(ctx, filter, limit, offset, &viewerID)
}

func (s *ArticleService) listPage(ctx context.Context, filter repositories.ArticleFilter, limit, offset int, viewerID *uint) (*models.ArticleList, error) {
	var (
		total    int64
		articles []models.Article
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = s.articles.CountArticles(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		articles, err = s.articles.FindArticles(gctx, filter, limit, offset)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, internal(err)
	}

	views, err := s.enrich(ctx, articles, viewerID)
	if err != nil {
		return nil, err
	}
	return &models.ArticleList{
		Data:    views,
		Meta:    NewPageMeta(total, limit, offset),
		Message: listMessage(len(views), total),
	}, nil
}

// enrich attaches favoritesCount to every article and, for a viewer, the favorited and
// author-following flags. It issues at most three queries regardless of page size.
func (s *ArticleService) enrich(ctx context.Context, articles []models.Article, viewerID *uint) ([]models.ArticleView, error) {
	views := make([]models.ArticleView, 0, len(articles))
	if len(articles) == 0 {
		return views, nil
	}

	articleIDs := make([]uint, len(articles))
	authorIDs := make([]uint, 0, len(articles))
	seenAuthor := make(map[uint]bool)
	for i := range articles {
		articleIDs[i] = articles[i].ID
		if !seenAuthor[articles[i].AuthorID] {
			seenAuthor[articles[i].AuthorID] = true
			authorIDs = append(authorIDs, articles[i].AuthorID)
		}
	}

	var (
		counts    map[uint]int64
		favorited = map[uint]bool{}
		following = map[uint]bool{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.favorites.CountByArticles(gctx, articleIDs)
		return err
	})
	if viewerID != nil {
		viewer := *viewerID
		g.Go(func() error {
			var err error
			favorited, err = s.favorites.FavoritedAmong(gctx, viewer, articleIDs)
			return err
		})
		g.Go(func() error {
			var err error
			following, err = s.follows.FollowingAmong(gctx, viewer, authorIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, internal(err)
	}

	for i := range articles {
		a := &articles[i]
		views = append(views, a.ToView(favorited[a.ID], counts[a.ID], following[a.AuthorID]))
	}
	return views, nil
}
