package batches

import (
	"context"
	"net/http"

	"github.com/chris/transaction-backoffice/pkg/api"
	"github.com/chris/transaction-backoffice/pkg/batch"
	"github.com/chris/transaction-backoffice/pkg/handlers/respond"
	"github.com/chris/transaction-backoffice/pkg/mapping"
	"github.com/chris/transaction-backoffice/pkg/models"
)

// Coordinator runs batch operations.
type Coordinator interface {
	Submit(ctx context.Context, req batch.SubmitRequest) (*models.BatchOperation, error)
	Get(ctx context.Context, batchID string) (*models.BatchOperation, error)
	Cancel(ctx context.Context, batchID, performedBy string) (*models.BatchOperation, error)
}

// BatchesHandler holds the dependencies for batch-related handlers.
type BatchesHandler struct {
	Coordinator Coordinator
}

// NewBatchesHandler creates a new BatchesHandler.
func NewBatchesHandler(coordinator Coordinator) *BatchesHandler {
	return &BatchesHandler{Coordinator: coordinator}
}

// SubmitBatch creates a batch and either runs it or schedules it.
func (h *BatchesHandler) SubmitBatch(w http.ResponseWriter, r *http.Request) {
	var body api.NewBatchOperation
	if !respond.Decode(w, r, &body) {
		return
	}

	req, err := mapping.ToDomainSubmitRequest(&body)
	if err != nil {
		respond.Error(w, r, "submit batch", err)
		return
	}

	b, err := h.Coordinator.Submit(r.Context(), req)
	if err != nil {
		respond.Error(w, r, "submit batch", err)
		return
	}

	status := http.StatusCreated
	if req.Deferred {
		status = http.StatusAccepted
	}
	h.write(w, r, status, b)
}

// GetBatchById returns a batch with its item outcomes and counts.
func (h *BatchesHandler) GetBatchById(w http.ResponseWriter, r *http.Request, batchId api.BatchId) {
	b, err := h.Coordinator.Get(r.Context(), batchId.String())
	if err != nil {
		respond.Error(w, r, "retrieve batch", err)
		return
	}
	h.write(w, r, http.StatusOK, b)
}

// CancelBatch cancels a batch that has not started.
func (h *BatchesHandler) CancelBatch(w http.ResponseWriter, r *http.Request, batchId api.BatchId) {
	var body api.CancelBatchRequest
	if !respond.Decode(w, r, &body) {
		return
	}

	b, err := h.Coordinator.Cancel(r.Context(), batchId.String(), body.PerformedBy)
	if err != nil {
		respond.Error(w, r, "cancel batch", err)
		return
	}
	h.write(w, r, http.StatusOK, b)
}

func (h *BatchesHandler) write(w http.ResponseWriter, r *http.Request, status int, b *models.BatchOperation) {
	out, err := mapping.ToApiBatchOperation(b)
	if err != nil {
		respond.Error(w, r, "write batch", err)
		return
	}
	respond.JSON(w, status, out)
}
