package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/transaction-backoffice/pkg/bootstrap"
	"github.com/chris/transaction-backoffice/pkg/config"
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
	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	app, err := bootstrap.New(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize services: %v", err)
	}

	// Partial batch responses require ReportBatchItemFailures on the event source mapping.
	lambda.Start(NewWorker(app.Coordinator, logger).Handle)
}
