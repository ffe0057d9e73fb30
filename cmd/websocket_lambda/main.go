package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/transaction-backoffice/pkg/bootstrap"
	"github.com/chris/transaction-backoffice/pkg/config"
	wshandlers "github.com/chris/transaction-backoffice/pkg/handlers/websockets"
	"github.com/chris/transaction-backoffice/pkg/logging"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.Storage.Backend == config.BackendDynamoDB && cfg.Storage.ConnectionsTable == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME environment variable not set")
	}
	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	app, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}

	lambda.Start(wshandlers.NewHandler(app.Store, logger).Route)
}
