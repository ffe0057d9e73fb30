package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/chris/transaction-backoffice/pkg/bootstrap"
	"github.com/chris/transaction-backoffice/pkg/config"
	"github.com/chris/transaction-backoffice/pkg/lifecycle"
	"github.com/chris/transaction-backoffice/pkg/logging"
	"github.com/joho/godotenv"
)

const performedBy = "system:escalation"

// Escalator raises the priority of stale pending transactions.
type Escalator interface {
	EscalateStale(ctx context.Context, olderThan time.Duration, performedBy string) (lifecycle.EscalationResult, error)
}

// sweep escalates once. Per-transaction failures are logged and left for the next run.
func sweep(ctx context.Context, q Escalator, age time.Duration, logger *slog.Logger) error {
	logger.InfoContext(ctx, "starting pending escalation", "olderThan", age.String())

	result, err := q.EscalateStale(ctx, age, performedBy)
	if err != nil {
		logger.ErrorContext(ctx, "failed to escalate pending transactions", "error", err)
		return err
	}

	for id, err := range result.Failed {
		logger.WarnContext(ctx, "transaction not escalated", "transactionId", id, "error", err)
	}
	logger.InfoContext(ctx, "pending escalation finished", "escalated", len(result.Escalated), "failed", len(result.Failed))
	return nil
}

func main() {
	// Load environment variables for local testing.
	godotenv.Load()

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

	// Triggered by an EventBridge Schedule.
	lambda.Start(func(ctx context.Context) error {
		return sweep(ctx, app.Queue, cfg.Pending.EscalationAge, logger)
	})
}
