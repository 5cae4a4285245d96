package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/medium-clone/backend/internal/repositories"
	"github.com/gosimple/slug"
)

// SlugGenerator derives unique article slugs from titles.
//
// Uniqueness is checked before the insert, so two articles with the same title created within
// the same millisecond can still collide; the unique index on articles.slug then rejects the
// second insert with a Conflict.
type SlugGenerator struct {
	articles repositories.ArticleRepository
	clock    Clock
}

func NewSlugGenerator(articles repositories.ArticleRepository, clock Clock) *SlugGenerator {
	return &SlugGenerator{articles: articles, clock: clock}
}

// Generate returns the slug of title, suffixed with the current unix milliseconds when another
// article already owns it. excludeID is the article being updated, or 0.
func (g *SlugGenerator) Generate(ctx context.Context, title string, excludeID uint) (string, error) {
	candidate := slug.Make(title)

	existing, err := g.articles.GetArticleBySlug(ctx, candidate)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return candidate, nil
	case err != nil:
		return "", err
	case existing.ID == excludeID:
		return candidate, nil
	}
	return fmt.Sprintf("%s-%d", candidate, g.clock.Now().UnixMilli()), nil
}
