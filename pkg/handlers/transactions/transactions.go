package transactions

import (
	"context"
	"net/http"

	"github.com/chris/transaction-backoffice/pkg/api"
	"github.com/chris/transaction-backoffice/pkg/handlers/respond"
	"github.com/chris/transaction-backoffice/pkg/lifecycle"
	"github.com/chris/transaction-backoffice/pkg/mapping"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/query"
)

// StatusChanger applies manual status changes and notes.
type StatusChanger interface {
	Transition(ctx context.Context, req lifecycle.TransitionRequest) (*models.Transaction, error)
	AddNote(ctx context.Context, txID, note, performedBy string) (models.TransactionLog, error)
}

// Enqueuer admits new transactions.
type Enqueuer interface {
	Enqueue(ctx context.Context, req lifecycle.EnqueueRequest) (*models.Transaction, error)
}

// Reader answers transaction and log lookups.
type Reader interface {
	ListTransactions(ctx context.Context, p query.Params) (*query.Page, error)
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)
	ListLogs(ctx context.Context, transactionID string, limit int) ([]models.TransactionLog, error)
}

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Machine StatusChanger
	Queue   Enqueuer
	Reader  Reader
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(machine StatusChanger, queue Enqueuer, reader Reader) *TransactionsHandler {
	return &TransactionsHandler{Machine: machine, Queue: queue, Reader: reader}
}

// ListTransactions handles GET /transactions.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request, params api.ListTransactionsParams) {
	p := query.Params{
		Search:     deref(params.Search),
		Status:     deref(params.Status),
		MerchantID: deref(params.MerchantId),
		Type:       string(deref(params.Type)),
		DateFrom:   deref(params.DateFrom),
		DateTo:     deref(params.DateTo),
		SortBy:     string(deref(params.SortBy)),
		SortOrder:  string(deref(params.SortOrder)),
		Page:       deref(params.Page),
		PageSize:   deref(params.PageSize),
	}

	page, err := h.Reader.ListTransactions(r.Context(), p)
	if err != nil {
		respond.Error(w, r, "list transactions", err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTransactionPage(page))
}

// CreateTransaction handles the logic for admitting a new transaction into the pending queue.
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var newTx api.NewTransaction
	if !respond.Decode(w, r, &newTx) {
		return
	}

	domainTx, err := mapping.ToDomainNewTransaction(&newTx)
	if err != nil {
		respond.Error(w, r, "create transaction", err)
		return
	}
	priority, err := mapping.ToDomainPriority(newTx.Priority)
	if err != nil {
		respond.Error(w, r, "create transaction", err)
		return
	}

	created, err := h.Queue.Enqueue(r.Context(), lifecycle.EnqueueRequest{
		Transaction:             domainTx,
		Reason:                  deref(newTx.Reason),
		Priority:                priority,
		EstimatedCompletionTime: newTx.EstimatedCompletionTime,
		PerformedBy:             newTx.PerformedBy,
	})
	if err != nil {
		respond.Error(w, r, "create transaction", err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiTransaction(created))
}

// GetTransactionById handles the logic for retrieving a transaction by its ID.
func (h *TransactionsHandler) GetTransactionById(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	tx, err := h.Reader.GetTransaction(r.Context(), transactionId)
	if err != nil {
		respond.Error(w, r, "retrieve transaction", err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTransaction(tx))
}

// ChangeTransactionStatus applies a manual status change.
func (h *TransactionsHandler) ChangeTransactionStatus(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	var body api.StatusChangeRequest
	if !respond.Decode(w, r, &body) {
		return
	}

	target, err := models.ParseTransactionStatus(body.Status)
	if err != nil {
		respond.Error(w, r, "change transaction status", err)
		return
	}
	priority, err := mapping.ToDomainPriority(body.Priority)
	if err != nil {
		respond.Error(w, r, "change transaction status", err)
		return
	}

	updated, err := h.Machine.Transition(r.Context(), lifecycle.TransitionRequest{
		TransactionID: transactionId,
		Target:        target,
		Reason:        deref(body.Reason),
		PerformedBy:   body.PerformedBy,
		Priority:      priority,
	})
	if err != nil {
		respond.Error(w, r, "change transaction status", err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiTransaction(updated))
}

// ListTransactionLogs returns the audit trail of one transaction, newest first.
func (h *TransactionsHandler) ListTransactionLogs(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	ctx := r.Context()
	if _, err := h.Reader.GetTransaction(ctx, transactionId); err != nil {
		respond.Error(w, r, "retrieve transaction", err)
		return
	}

	entries, err := h.Reader.ListLogs(ctx, transactionId, 0)
	if err != nil {
		respond.Error(w, r, "list transaction logs", err)
		return
	}

	respond.JSON(w, http.StatusOK, api.TransactionLogList{Items: mapping.ToApiTransactionLogs(entries)})
}

// AddTransactionNote records an administrative note.
func (h *TransactionsHandler) AddTransactionNote(w http.ResponseWriter, r *http.Request, transactionId api.TransactionId) {
	var body api.NoteRequest
	if !respond.Decode(w, r, &body) {
		return
	}

	entry, err := h.Machine.AddNote(r.Context(), transactionId, body.Note, body.PerformedBy)
	if err != nil {
		respond.Error(w, r, "add note", err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiTransactionLog(&entry))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
