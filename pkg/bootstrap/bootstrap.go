// Package bootstrap assembles the services shared by the server and the lambdas.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/transaction-backoffice/pkg/audit"
	"github.com/chris/transaction-backoffice/pkg/batch"
	"github.com/chris/transaction-backoffice/pkg/config"
	"github.com/chris/transaction-backoffice/pkg/events"
	"github.com/chris/transaction-backoffice/pkg/handlers"
	"github.com/chris/transaction-backoffice/pkg/lifecycle"
	"github.com/chris/transaction-backoffice/pkg/query"
	"github.com/chris/transaction-backoffice/pkg/scheduler"
	"github.com/chris/transaction-backoffice/pkg/storage"
	dydbstore "github.com/chris/transaction-backoffice/pkg/storage/dynamodb"
	"github.com/chris/transaction-backoffice/pkg/storage/memory"
	"github.com/chris/transaction-backoffice/pkg/websockets"
)

// Backend is a storage implementation that also tracks dashboard connections.
type Backend interface {
	storage.Storage
	storage.WebSocketManager
}

// App holds the wired services.
type App struct {
	Config      config.Config
	Logger      *slog.Logger
	Store       Backend
	Audit       *audit.Logger
	Machine     *lifecycle.StateMachine
	Queue       *lifecycle.PendingQueue
	Coordinator *batch.Coordinator
	Query       *query.Service

	// Hub is the local dashboard feed. It is nil when an API Gateway
	// WebSocket endpoint is configured.
	Hub *websockets.Hub
}

// New builds an App from cfg. AWS configuration is only loaded when a
// component needs it.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var awsCfg *aws.Config
	loadAWS := func() (aws.Config, error) {
		if awsCfg != nil {
			return *awsCfg, nil
		}
		c, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
		}
		awsCfg = &c
		return c, nil
	}

	store, err := newStore(cfg.Storage, loadAWS)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Logger: logger, Store: store}

	var sqsClient *sqs.Client
	if cfg.Queues.EventsQueueURL != "" || cfg.Queues.BatchQueueURL != "" {
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		sqsClient = sqs.NewFromConfig(c)
	}

	publishers := events.Multi{}
	if cfg.Queues.EventsQueueURL != "" {
		publishers = append(publishers, events.NewSQSPublisher(sqsClient, cfg.Queues.EventsQueueURL))
	}
	if cfg.WebSocket.APIEndpoint != "" {
		if cfg.Storage.Backend == config.BackendDynamoDB && cfg.Storage.ConnectionsTable == "" {
			return nil, errors.New("DYNAMODB_CONNECTIONS_TABLE_NAME is required when WEBSOCKET_API_ENDPOINT is set")
		}
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, websockets.NewStatusFeed(websockets.NewPublisher(c, store, store, cfg.WebSocket.APIEndpoint)))
	} else {
		app.Hub = websockets.NewHub(logger)
		publishers = append(publishers, websockets.NewStatusFeed(app.Hub))
	}

	var sched scheduler.Scheduler
	if cfg.Queues.BatchQueueURL != "" {
		sched = scheduler.NewSQSScheduler(sqsClient, cfg.Queues.BatchQueueURL)
	}

	opts := lifecycle.Options{StoreTimeout: cfg.Storage.Timeout, Logger: logger}
	app.Audit = audit.NewLogger(store, logger)
	app.Machine = lifecycle.NewStateMachine(store, app.Audit, publishers, opts)
	app.Queue = lifecycle.NewPendingQueue(store, app.Machine, app.Audit, opts)
	app.Coordinator = batch.NewCoordinator(store, app.Machine, batch.Options{
		Scheduler:    sched,
		Logger:       logger,
		StoreTimeout: cfg.Storage.Timeout,
	})
	app.Query = query.NewService(store, app.Audit, cfg.Storage.Timeout)

	return app, nil
}

func newStore(cfg config.StorageConfig, loadAWS func() (aws.Config, error)) (Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendDynamoDB:
		c, err := loadAWS()
		if err != nil {
			return nil, err
		}
		return dydbstore.New(dynamodb.NewFromConfig(c), dydbstore.Tables{
			Transactions: cfg.TransactionsTable,
			Logs:         cfg.LogsTable,
			Batches:      cfg.BatchesTable,
			ExternalIDs:  cfg.ExternalIDsTable,
			Connections:  cfg.ConnectionsTable,
		}), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// Services exposes the App to the HTTP handlers.
func (a *App) Services() handlers.Services {
	return handlers.Services{
		Machine:     a.Machine,
		Queue:       a.Queue,
		Reader:      a.Query,
		Coordinator: a.Coordinator,
	}
}
