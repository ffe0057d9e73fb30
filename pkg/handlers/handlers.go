package handlers

import (
	"net/http"

	"github.com/chris/transaction-backoffice/pkg/api"
	"github.com/chris/transaction-backoffice/pkg/handlers/batches"
	"github.com/chris/transaction-backoffice/pkg/handlers/logs"
	"github.com/chris/transaction-backoffice/pkg/handlers/pending"
	"github.com/chris/transaction-backoffice/pkg/handlers/respond"
	"github.com/chris/transaction-backoffice/pkg/handlers/transactions"
)

// ApiHandler implements the generated server interface by composing the
// per-resource handlers.
type ApiHandler struct {
	*transactions.TransactionsHandler
	*pending.PendingHandler
	*logs.LogsHandler
	*batches.BatchesHandler
}

// Services are the application services behind the API.
type Services struct {
	Machine transactions.StatusChanger
	Queue   interface {
		transactions.Enqueuer
		pending.Queue
	}
	Reader      transactions.Reader
	Coordinator batches.Coordinator
}

// NewApiHandler creates a new ApiHandler.
func NewApiHandler(s Services) *ApiHandler {
	return &ApiHandler{
		TransactionsHandler: transactions.NewTransactionsHandler(s.Machine, s.Queue, s.Reader),
		PendingHandler:      pending.NewPendingHandler(s.Queue),
		LogsHandler:         logs.NewLogsHandler(s.Reader),
		BatchesHandler:      batches.NewBatchesHandler(s.Coordinator),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// GetHealth reports liveness.
func (h *ApiHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, api.Health{Status: "ok"})
}
