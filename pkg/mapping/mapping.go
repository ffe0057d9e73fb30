// Package mapping converts between the generated API types and the domain models.
package mapping

import (
	"fmt"
	"strings"

	"github.com/chris/transaction-backoffice/pkg/api"
	"github.com/chris/transaction-backoffice/pkg/batch"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/query"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	out := &api.Transaction{
		Id:           tx.ID,
		MerchantId:   tx.MerchantID,
		Type:         api.TransactionType(tx.Type),
		Amount:       tx.Amount.String(),
		Currency:     tx.Currency,
		Status:       api.TransactionStatus(tx.Status),
		Description:  optString(tx.Description),
		ExternalId:   optString(tx.ExternalID),
		CustomerName: optString(tx.CustomerName),
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
		CompletedAt:  tx.CompletedAt,
	}
	if !tx.Fee.IsZero() {
		out.Fee = optString(tx.Fee.String())
	}
	if !tx.FeeRate.IsZero() {
		out.FeeRate = optString(tx.FeeRate.String())
	}
	if tx.CustomerEmail != "" {
		email := openapi_types.Email(tx.CustomerEmail)
		out.CustomerEmail = &email
	}
	if len(tx.Metadata) > 0 {
		metadata := tx.Metadata
		out.Metadata = &metadata
	}
	if tx.Pending != nil {
		since := tx.Pending.Since
		priority := api.Priority(tx.Pending.Priority)
		out.PendingSince = &since
		out.PendingReason = optString(tx.Pending.Reason)
		out.Priority = &priority
		out.EstimatedCompletionTime = tx.Pending.EstimatedCompletionTime
	}
	return out
}

// ToApiTransactions converts a slice of transactions. The result is never nil.
func ToApiTransactions(txs []models.Transaction) []api.Transaction {
	out := make([]api.Transaction, len(txs))
	for i := range txs {
		out[i] = *ToApiTransaction(&txs[i])
	}
	return out
}

// ToApiPendingTransactions converts the pending queue view.
func ToApiPendingTransactions(pending []models.PendingTransaction) []api.Transaction {
	out := make([]api.Transaction, len(pending))
	for i := range pending {
		out[i] = *ToApiTransaction(&pending[i].Transaction)
	}
	return out
}

// ToApiTransactionPage converts one page of a transaction listing.
func ToApiTransactionPage(page *query.Page) *api.TransactionPage {
	return &api.TransactionPage{
		Items:      ToApiTransactions(page.Items),
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		PageSize:   page.PageSize,
	}
}

// ToDomainNewTransaction converts an API NewTransaction into the transaction
// to enqueue. Amounts are parsed here; status and timestamps are left to the queue.
func ToDomainNewTransaction(newTx *api.NewTransaction) (*models.Transaction, error) {
	amount, err := parseDecimal("amount", &newTx.Amount)
	if err != nil {
		return nil, err
	}
	fee, err := parseDecimal("fee", newTx.Fee)
	if err != nil {
		return nil, err
	}
	feeRate, err := parseDecimal("feeRate", newTx.FeeRate)
	if err != nil {
		return nil, err
	}
	txType, err := models.ParseTransactionType(string(newTx.Type))
	if err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:            deref(newTx.Id),
		MerchantID:    strings.TrimSpace(newTx.MerchantId),
		Type:          txType,
		Amount:        amount,
		Currency:      newTx.Currency,
		Fee:           fee,
		FeeRate:       feeRate,
		Description:   deref(newTx.Description),
		ExternalID:    deref(newTx.ExternalId),
		CustomerName:  deref(newTx.CustomerName),
		CustomerEmail: string(deref(newTx.CustomerEmail)),
	}
	if newTx.Metadata != nil {
		tx.Metadata = *newTx.Metadata
	}
	return tx, nil
}

// ToDomainPriority converts an optional API priority. Nil is the empty priority.
func ToDomainPriority(p *api.Priority) (models.Priority, error) {
	if p == nil {
		return "", nil
	}
	return models.ParsePriority(string(*p))
}

// ToApiTransactionLog converts a domain TransactionLog model to an API TransactionLog model.
func ToApiTransactionLog(entry *models.TransactionLog) *api.TransactionLog {
	out := &api.TransactionLog{
		Id:            entry.ID,
		TransactionId: entry.TransactionID,
		Action:        entry.Action,
		Status:        api.TransactionStatus(entry.Status),
		Message:       entry.Message,
		PerformedBy:   entry.PerformedBy,
		Timestamp:     entry.Timestamp,
	}
	if len(entry.Details) > 0 {
		details := entry.Details
		out.Details = &details
	}
	return out
}

// ToApiTransactionLogs converts a slice of logs. The result is never nil.
func ToApiTransactionLogs(entries []models.TransactionLog) []api.TransactionLog {
	out := make([]api.TransactionLog, len(entries))
	for i := range entries {
		out[i] = *ToApiTransactionLog(&entries[i])
	}
	return out
}

// ToDomainSubmitRequest converts an API NewBatchOperation.
func ToDomainSubmitRequest(newBatch *api.NewBatchOperation) (batch.SubmitRequest, error) {
	batchType, err := models.ParseBatchType(string(newBatch.Type))
	if err != nil {
		return batch.SubmitRequest{}, err
	}
	action, err := models.ParseBatchAction(string(newBatch.Action))
	if err != nil {
		return batch.SubmitRequest{}, err
	}
	return batch.SubmitRequest{
		Type:           batchType,
		Action:         action,
		TransactionIDs: newBatch.TransactionIds,
		PerformedBy:    newBatch.PerformedBy,
		Reason:         deref(newBatch.Reason),
		Deferred:       deref(newBatch.Deferred),
	}, nil
}

// ToApiBatchOperation converts a domain BatchOperation, including its derived counts.
func ToApiBatchOperation(b *models.BatchOperation) (*api.BatchOperation, error) {
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse batch id %q: %w", b.ID, err)
	}

	counts := b.Counts()
	items := make([]api.BatchOperationItem, len(b.Items))
	for i, item := range b.Items {
		items[i] = api.BatchOperationItem{
			TransactionId: item.TransactionID,
			Status:        api.BatchItemStatus(item.Status),
			ErrorCode:     optString(item.ErrorCode),
			ErrorMessage:  optString(item.ErrorMessage),
			ProcessedAt:   item.ProcessedAt,
		}
	}
	ids := b.TransactionIDs
	if ids == nil {
		ids = []string{}
	}

	return &api.BatchOperation{
		Id:             id,
		Type:           api.BatchType(b.Type),
		Action:         api.BatchAction(b.Action),
		TransactionIds: ids,
		Status:         api.BatchStatus(b.Status),
		Items:          items,
		Counts: api.BatchCounts{
			Total:     counts.Total,
			Succeeded: counts.Succeeded,
			Failed:    counts.Failed,
			Skipped:   counts.Skipped,
		},
		Reason:      optString(b.Reason),
		CreatedBy:   b.CreatedBy,
		CreatedAt:   b.CreatedAt,
		CompletedAt: b.CompletedAt,
	}, nil
}

func parseDecimal(field string, s *string) (decimal.Decimal, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s is not a decimal: %q", models.ErrValidation, field, *s)
	}
	return d, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
