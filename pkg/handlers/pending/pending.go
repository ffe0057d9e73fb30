package pending

import (
	"context"
	"net/http"

	"github.com/chris/transaction-backoffice/pkg/api"
	"github.com/chris/transaction-backoffice/pkg/handlers/respond"
	"github.com/chris/transaction-backoffice/pkg/lifecycle"
	"github.com/chris/transaction-backoffice/pkg/mapping"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
)

// Queue is the pending queue as seen by the HTTP layer.
type Queue interface {
	List(ctx context.Context, filter storage.PendingFilter) ([]models.PendingTransaction, error)
	Annotate(ctx context.Context, req lifecycle.AnnotateRequest) (*models.PendingTransaction, error)
	DequeueAndResolve(ctx context.Context, txID string, resolution models.TransactionStatus, reason, performedBy string) (*models.Transaction, error)
}

// PendingHandler holds the dependencies for pending queue handlers.
type PendingHandler struct {
	Queue Queue
}

// NewPendingHandler creates a new PendingHandler.
func NewPendingHandler(queue Queue) *PendingHandler {
	return &PendingHandler{Queue: queue}
}

// ListPendingTransactions returns the pending set, highest priority first.
func (h *PendingHandler) ListPendingTransactions(w http.ResponseWriter, r *http.Request, params api.ListPendingTransactionsParams) {
	filter := storage.PendingFilter{}
	if params.MerchantId != nil {
		filter.MerchantID = *params.MerchantId
	}
	if params.Type != nil {
		t, err := models.ParseTransactionType(string(*params.Type))
		if err != nil {
			respond.Error(w, r, "list pending transactions", err)
			return
		}
		filter.Type = t
	}

	pending, err := h.Queue.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, "list pending transactions", err)
		return
	}

	respond.JSON(w, http.StatusOK, api.TransactionList{Items: mapping.ToApiPendingTransactions(pending)})
}

// UpdatePendingTransaction changes the reason or priority of a pending transaction.
func (h *PendingHandler) UpdatePendingTransaction(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	var body api.PendingUpdateRequest
	if !respond.Decode(w, r, &body) {
		return
	}

	priority, err := mapping.ToDomainPriority(body.Priority)
	if err != nil {
		respond.Error(w, r, "update pending transaction", err)
		return
	}
	req := lifecycle.AnnotateRequest{
		TransactionID: transactionId,
		Priority:      priority,
		PerformedBy:   body.PerformedBy,
	}
	if body.Reason != nil {
		req.Reason = *body.Reason
	}

	updated, err := h.Queue.Annotate(r.Context(), req)
	if err != nil {
		respond.Error(w, r, "update pending transaction", err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTransaction(&updated.Transaction))
}

// ResolvePendingTransaction completes, fails or cancels a pending transaction.
func (h *PendingHandler) ResolvePendingTransaction(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	var body api.ResolveRequest
	if !respond.Decode(w, r, &body) {
		return
	}

	resolution, err := models.ParseTransactionStatus(string(body.Resolution))
	if err != nil {
		respond.Error(w, r, "resolve pending transaction", err)
		return
	}
	reason := ""
	if body.Reason != nil {
		reason = *body.Reason
	}

	resolved, err := h.Queue.DequeueAndResolve(r.Context(), transactionId, resolution, reason, body.PerformedBy)
	if err != nil {
		respond.Error(w, r, "resolve pending transaction", err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTransaction(resolved))
}
