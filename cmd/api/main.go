package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adesao-api/internal/config"
	"github.com/adesao-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/adesao-api/internal/infrastructure/jwt"
	"github.com/adesao-api/internal/infrastructure/partner"
	"github.com/adesao-api/internal/infrastructure/registry"
	s3infra "github.com/adesao-api/internal/infrastructure/s3"
	"github.com/adesao-api/internal/infrastructure/smtp"
	"github.com/adesao-api/internal/infrastructure/sns"
	"github.com/adesao-api/internal/infrastructure/viacep"
	transporthttp "github.com/adesao-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// Response archive (optional — disabled without a bucket).
	var archive *s3infra.Archive
	if cfg.S3ResponseBucket != "" {
		archive = s3infra.NewArchive(s3infra.NewClient(cfg), cfg.S3ResponseBucket)
	}

	// Ops notifier (optional — graceful fallback).
	var notifier sns.OpsNotifier
	if cfg.SNSTopicARN != "" {
		if n, err := sns.NewNotifier(cfg); err == nil {
			notifier = n
		} else {
			log.Printf("WARN: SNS notifier not available: %v", err)
		}
	}

	deps := &transporthttp.Deps{
		RegistrationRepo: dynamo.NewRegistrationRepo(dynamoClient, cfg.DynamoTables.Registrations, cfg.DynamoTables.RegistrationClaims),
		Partner:          partner.NewClient(cfg.UpstreamBaseURL),
		Registry:         registry.NewClient(cfg.RegistryAPIURL, cfg.RegistryAPIToken),
		ViaCEP:           viacep.NewClient(cfg.ViaCEPBaseURL),
		Archive:          archive,
		Notifier:         notifier,
		Mailer:           smtp.NewMailer(cfg),
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
