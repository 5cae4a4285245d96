package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/anonto42/medium-clone/backend/internal/repositories"
	"github.com/anonto42/medium-clone/backend/internal/token"
	"github.com/anonto42/medium-clone/backend/pkg/config"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeClock returns start on the first call and advances by step on every later call.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

type testEnv struct {
	db        *gorm.DB
	clock     *fakeClock
	tokens    *token.Manager
	userRepo  *repositories.PostgresUserRepository
	articles  *ArticleService
	comments  *CommentService
	profiles  *ProfileService
	users     *UserService
	activity  *ActivityService
	favorites *repositories.PostgresFavoriteRepository
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenGorm("sqlite://:memory:", false)
	require.NoError(t, err)
	require.NoError(t, config.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	clock := newFakeClock(time.Second)

	userRepo := repositories.NewPostgresUserRepository(db)
	articleRepo := repositories.NewPostgresArticleRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	favoriteRepo := repositories.NewPostgresFavoriteRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)

	tokens := token.NewManager("test-secret", time.Hour)
	activity := NewActivityService(repositories.NoopActivityRepository{}, clock)

	return &testEnv{
		db:        db,
		clock:     clock,
		tokens:    tokens,
		userRepo:  userRepo,
		favorites: favoriteRepo,
		activity:  activity,
		users:     NewUserService(userRepo, tokens, nil).WithHashCost(bcrypt.MinCost),
		profiles:  NewProfileService(userRepo, followRepo, activity),
		articles:  NewArticleService(articleRepo, userRepo, favoriteRepo, followRepo, activity, clock),
		comments:  NewCommentService(commentRepo, articleRepo, followRepo, activity, clock),
	}
}

func (env *testEnv) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "unused"}
	require.NoError(t, env.userRepo.CreateUser(context.Background(), user))
	return user
}

func (env *testEnv) seedArticle(t *testing.T, author *models.User, title string, tags ...string) models.ArticleView {
	t.Helper()
	resp, err := env.articles.Create(context.Background(), models.CreateArticleRequest{
		Title:       title,
		Description: "about " + title,
		Body:        "body of " + title,
		TagList:     tags,
	}, author.ID)
	require.NoError(t, err)
	return resp.Article
}

func uintPtr(v uint) *uint { return &v }
