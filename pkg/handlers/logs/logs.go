package logs

import (
	"context"
	"net/http"

	"github.com/chris/transaction-backoffice/pkg/api"
	"github.com/chris/transaction-backoffice/pkg/handlers/respond"
	"github.com/chris/transaction-backoffice/pkg/mapping"
	"github.com/chris/transaction-backoffice/pkg/models"
)

// Reader lists audit logs.
type Reader interface {
	ListLogs(ctx context.Context, transactionID string, limit int) ([]models.TransactionLog, error)
}

// LogsHandler holds the dependencies for log-related handlers.
type LogsHandler struct {
	Reader Reader
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(reader Reader) *LogsHandler {
	return &LogsHandler{Reader: reader}
}

// ListLogs returns the logs of one transaction or the most recent logs overall.
func (h *LogsHandler) ListLogs(w http.ResponseWriter, r *http.Request, params api.ListLogsParams) {
	var txID string
	if params.TransactionId != nil {
		txID = *params.TransactionId
	}
	var limit int
	if params.Limit != nil {
		limit = *params.Limit
	}

	entries, err := h.Reader.ListLogs(r.Context(), txID, limit)
	if err != nil {
		respond.Error(w, r, "retrieve logs", err)
		return
	}

	respond.JSON(w, http.StatusOK, api.TransactionLogList{Items: mapping.ToApiTransactionLogs(entries)})
}
