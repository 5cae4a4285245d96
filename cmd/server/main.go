package main

import (
	"context"
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/medium-clone/backend/internal/router"
	"github.com/anonto42/medium-clone/backend/pkg/config"
	"github.com/anonto42/medium-clone/backend/pkg/firebase"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Firebase login is optional
	var firebaseAuth *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseAuth, err = firebase.NewAuthClient(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, firebase login disabled.")
	}

	e := router.NewServer(cfg, db.SQL, db.Mongo, firebaseAuth)

	// Start server
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
