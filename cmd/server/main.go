package main

import (
	"context"
	"log"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"

	"github.com/arpansahu/portfolio-api/internal/router"
	"github.com/arpansahu/portfolio-api/pkg/config"
	"github.com/arpansahu/portfolio-api/pkg/firebase"
	"github.com/arpansahu/portfolio-api/pkg/mailer"
	"github.com/arpansahu/portfolio-api/pkg/storage"
	"github.com/arpansahu/portfolio-api/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Error reporting
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
		}); err != nil {
			log.Fatalf("Failed to initialize Sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	ctx := context.Background()

	// Firebase backs social login; without credentials the endpoint is off.
	var firebaseAuthClient *auth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuthClient = firebaseApp.AuthClient
	} else {
		log.Println("Firebase credentials not configured; social login disabled.")
	}

	// S3 backs resume storage; without a bucket those routes report 503.
	var store *storage.S3Storage
	if cfg.S3Bucket != "" {
		store, err = storage.NewS3Storage(ctx, storage.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("S3 bucket not configured; resume storage disabled.")
	}

	m := mailer.New(mailer.Config{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		FromEmail:  cfg.FromEmail,
		FromName:   cfg.FromName,
		AdminEmail: cfg.AdminEmail,
		Protocol:   cfg.Protocol,
		Domain:     cfg.Domain,
	})

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e, cfg.SentryDSN != "")

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, firebaseAuthClient, m, store, cfg)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
