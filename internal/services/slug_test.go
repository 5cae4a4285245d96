package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugGenerator(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	articles := repositories.NewPostgresArticleRepository(db)
	users := repositories.NewPostgresUserRepository(db)

	author := &models.User{Username: "writer", Email: "writer@example.com", Password: "x"}
	require.NoError(t, users.CreateUser(ctx, author))

	clock := newFakeClock(0)
	gen := NewSlugGenerator(articles, clock)

	t.Run("free slug is used as is", func(t *testing.T) {
		got, err := gen.Generate(ctx, "Hello World", 0)
		require.NoError(t, err)
		assert.Equal(t, "hello-world", got)
	})

	existing := &models.Article{Slug: "hello-world", Title: "Hello World", AuthorID: author.ID}
	require.NoError(t, articles.CreateArticle(ctx, existing))

	t.Run("taken slug gets a millisecond suffix", func(t *testing.T) {
		got, err := gen.Generate(ctx, "Hello World", 0)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("hello-world-%d", clock.now.UnixMilli()), got)
	})

	t.Run("slug owned by the excluded article is kept", func(t *testing.T) {
		got, err := gen.Generate(ctx, "Hello World", existing.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello-world", got)
	})

	t.Run("punctuation and diacritics are normalised", func(t *testing.T) {
		got, err := gen.Generate(ctx, "  Café   au Lait!! ", 0)
		require.NoError(t, err)
		assert.Equal(t, "cafe-au-lait", got)
	})
}

func TestSlugGeneratorUsesInjectedClock(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	author := env.seedUser(t, "clocky")
	env.seedArticle(t, author, "Same Title")

	clock := &fakeClock{now: time.UnixMilli(1700000000123).UTC()}
	got, err := NewSlugGenerator(repositories.NewPostgresArticleRepository(env.db), clock).Generate(ctx, "Same Title", 0)
	require.NoError(t, err)
	assert.Equal(t, "same-title-1700000000123", got)
}
