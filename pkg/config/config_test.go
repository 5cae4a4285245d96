package config

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DATABASE_URL", "MONGO_URI", "JWT_SECRET", "TOKEN_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "sqlite://medium.db", cfg.DatabaseURL)
	assert.Equal(t, "", cfg.MongoURI)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.IsProd())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("ENV", "production")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadInvalidTTLFallsBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "tomorrow")
	assert.Equal(t, 24*time.Hour, Load().TokenTTL)
}

func TestInitDBWithSQLite(t *testing.T) {
	cfg := &Config{Env: "test", DatabaseURL: "sqlite://:memory:"}

	db, err := InitDB(cfg)
	require.NoError(t, err)
	defer db.CloseDB()

	assert.Nil(t, db.Mongo)
	for _, table := range []string{"users", "articles", "comments", "favorites", "follows"} {
		assert.True(t, db.SQL.Migrator().HasTable(table), table)
	}
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: newGormLogger(log.New(&buf, "", 0), false)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, AutoMigrate(db))

	var user models.User
	err = db.First(&user, 42).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	err = db.Table("missing_table").First(&user).Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "missing_table")
}

func TestGormLoggerSilentInProduction(t *testing.T) {
	var buf bytes.Buffer
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: newGormLogger(log.New(&buf, "", 0), true)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	var user models.User
	require.Error(t, db.Table("missing_table").First(&user).Error)
	assert.Empty(t, buf.String())
}
