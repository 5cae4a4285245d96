package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anonto42/medium-clone/backend/internal/models"
	"github.com/glebarez/sqlite"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

// DB holds the database connections. Mongo is nil when MONGO_URI is unset.
type DB struct {
	SQL   *gorm.DB
	Mongo *mongo.Client
}

// InitDB opens the relational store, migrates it and connects MongoDB when configured.
func InitDB(cfg *Config) (*DB, error) {
	sqlDB, err := OpenGorm(cfg.DatabaseURL, cfg.IsProd())
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(sqlDB); err != nil {
		return nil, fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Println("Relational auto-migrations completed for all models.")

	db := &DB{SQL: sqlDB}
	if cfg.MongoURI == "" {
		log.Println("MONGO_URI not set, activity log disabled.")
		return db, nil
	}
	db.Mongo, err = initMongo(cfg.MongoURI)
	if err != nil {
		db.CloseDB()
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	return db, nil
}

// newGormLogger reports slow queries and errors in development. A missed
// First is an ordinary lookup result and is not logged.
func newGormLogger(w logger.Writer, isProd bool) logger.Interface {
	level := logger.Warn
	if isProd {
		level = logger.Silent
	}
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// OpenGorm opens a gorm connection for a postgres DSN or a sqlite:// URL.
func OpenGorm(databaseURL string, isProd bool) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: newGormLogger(log.New(os.Stdout, "\r\n", log.LstdFlags), isProd)}

	var (
		db  *gorm.DB
		err error
	)
	if path, ok := strings.CutPrefix(databaseURL, sqlitePrefix); ok {
		db, err = gorm.Open(sqlite.Open(path), gormConfig)
	} else {
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Ping the database to verify connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(databaseURL, sqlitePrefix) {
		// every connection to :memory: is a separate database
		sqlDB.SetMaxOpenConns(1)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to the relational database!")
	return db, nil
}

// AutoMigrate creates or updates the tables of all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Comment{},
		&models.Favorite{},
		&models.Follow{},
	)
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.SQL != nil {
		sqlDB, err := db.SQL.DB()
		if err != nil {
			log.Printf("Error getting SQL DB from GORM: %v\n", err)
		} else {
			if err := sqlDB.Close(); err != nil {
				log.Printf("Error closing relational connection: %v\n", err)
			} else {
				log.Println("Relational connection closed.")
			}
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Printf("Error closing MongoDB connection: %v\n", err)
		} else {
			log.Println("MongoDB connection closed.")
		}
	}
}
