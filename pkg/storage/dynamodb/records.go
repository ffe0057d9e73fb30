package dynamodb

import (
	"fmt"
	"time"

	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/shopspring/decimal"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// recentLogsKey is the single partition of the recent-logs index.
const recentLogsKey = "LOGS"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(timeLayout, s)
}

func parseTimePtr(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// transactionRecord is a row of the transactions table. Decimals are stored
// as strings to keep their exact scale.
type transactionRecord struct {
	ID            string            `dynamodbav:"id"`
	MerchantID    string            `dynamodbav:"merchant_id"`
	Type          string            `dynamodbav:"type"`
	Amount        string            `dynamodbav:"amount"`
	Currency      string            `dynamodbav:"currency"`
	Status        string            `dynamodbav:"status"`
	Fee           string            `dynamodbav:"fee"`
	FeeRate       string            `dynamodbav:"fee_rate"`
	Description   string            `dynamodbav:"description,omitempty"`
	ExternalID    string            `dynamodbav:"external_id,omitempty"`
	CustomerName  string            `dynamodbav:"customer_name,omitempty"`
	CustomerEmail string            `dynamodbav:"customer_email,omitempty"`
	Metadata      map[string]string `dynamodbav:"metadata,omitempty"`
	CreatedAt     string            `dynamodbav:"created_at"`
	UpdatedAt     string            `dynamodbav:"updated_at"`
	CompletedAt   string            `dynamodbav:"completed_at,omitempty"`

	PendingSince            string `dynamodbav:"pending_since,omitempty"`
	PendingReason           string `dynamodbav:"pending_reason,omitempty"`
	Priority                string `dynamodbav:"priority,omitempty"`
	EstimatedCompletionTime string `dynamodbav:"estimated_completion_time,omitempty"`
}

func toTransactionRecord(tx *models.Transaction) transactionRecord {
	r := transactionRecord{
		ID:            tx.ID,
		MerchantID:    tx.MerchantID,
		Type:          string(tx.Type),
		Amount:        tx.Amount.String(),
		Currency:      tx.Currency,
		Status:        string(tx.Status),
		Fee:           tx.Fee.String(),
		FeeRate:       tx.FeeRate.String(),
		Description:   tx.Description,
		ExternalID:    tx.ExternalID,
		CustomerName:  tx.CustomerName,
		CustomerEmail: tx.CustomerEmail,
		Metadata:      tx.Metadata,
		CreatedAt:     formatTime(tx.CreatedAt),
		UpdatedAt:     formatTime(tx.UpdatedAt),
		CompletedAt:   formatTimePtr(tx.CompletedAt),
	}
	if tx.Pending != nil {
		r.PendingSince = formatTime(tx.Pending.Since)
		r.PendingReason = tx.Pending.Reason
		r.Priority = string(tx.Pending.Priority)
		r.EstimatedCompletionTime = formatTimePtr(tx.Pending.EstimatedCompletionTime)
	}
	return r
}

func (r transactionRecord) toModel() (*models.Transaction, error) {
	tx := &models.Transaction{
		ID:            r.ID,
		MerchantID:    r.MerchantID,
		Type:          models.TransactionType(r.Type),
		Currency:      r.Currency,
		Status:        models.TransactionStatus(r.Status),
		Description:   r.Description,
		ExternalID:    r.ExternalID,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Metadata:      r.Metadata,
	}

	var err error
	if tx.Amount, err = parseDecimal(r.Amount); err != nil {
		return nil, fmt.Errorf("invalid amount on transaction %s: %w", r.ID, err)
	}
	if tx.Fee, err = parseDecimal(r.Fee); err != nil {
		return nil, fmt.Errorf("invalid fee on transaction %s: %w", r.ID, err)
	}
	if tx.FeeRate, err = parseDecimal(r.FeeRate); err != nil {
		return nil, fmt.Errorf("invalid fee rate on transaction %s: %w", r.ID, err)
	}
	if tx.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, fmt.Errorf("invalid created_at on transaction %s: %w", r.ID, err)
	}
	if tx.UpdatedAt, err = parseTime(r.UpdatedAt); err != nil {
		return nil, fmt.Errorf("invalid updated_at on transaction %s: %w", r.ID, err)
	}
	if tx.CompletedAt, err = parseTimePtr(r.CompletedAt); err != nil {
		return nil, fmt.Errorf("invalid completed_at on transaction %s: %w", r.ID, err)
	}

	if tx.Status == models.PENDING && r.PendingSince != "" {
		since, err := parseTime(r.PendingSince)
		if err != nil {
			return nil, fmt.Errorf("invalid pending_since on transaction %s: %w", r.ID, err)
		}
		eta, err := parseTimePtr(r.EstimatedCompletionTime)
		if err != nil {
			return nil, fmt.Errorf("invalid estimated_completion_time on transaction %s: %w", r.ID, err)
		}
		tx.Pending = &models.PendingInfo{
			Since:                   since,
			Reason:                  r.PendingReason,
			Priority:                models.Priority(r.Priority),
			EstimatedCompletionTime: eta,
		}
	}
	return tx, nil
}

func toTransactions(records []transactionRecord) ([]models.Transaction, error) {
	txs := make([]models.Transaction, 0, len(records))
	for _, r := range records {
		tx, err := r.toModel()
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, nil
}

// logRecord is a row of the logs table.
type logRecord struct {
	TransactionID string            `dynamodbav:"transaction_id"`
	SK            string            `dynamodbav:"sk"`
	ID            string            `dynamodbav:"id"`
	Action        string            `dynamodbav:"action"`
	Status        string            `dynamodbav:"status"`
	Message       string            `dynamodbav:"message"`
	PerformedBy   string            `dynamodbav:"performed_by"`
	Details       map[string]string `dynamodbav:"details,omitempty"`
	Timestamp     string            `dynamodbav:"timestamp"`
	GSI1PK        string            `dynamodbav:"gsi1pk"`
}

func toLogRecord(l models.TransactionLog) logRecord {
	ts := formatTime(l.Timestamp)
	return logRecord{
		TransactionID: l.TransactionID,
		SK:            ts + "#" + l.ID,
		ID:            l.ID,
		Action:        l.Action,
		Status:        string(l.Status),
		Message:       l.Message,
		PerformedBy:   l.PerformedBy,
		Details:       l.Details,
		Timestamp:     ts,
		GSI1PK:        recentLogsKey,
	}
}

func (r logRecord) toModel() (models.TransactionLog, error) {
	ts, err := parseTime(r.Timestamp)
	if err != nil {
		return models.TransactionLog{}, fmt.Errorf("invalid timestamp on log %s: %w", r.ID, err)
	}
	return models.TransactionLog{
		ID:            r.ID,
		TransactionID: r.TransactionID,
		Action:        r.Action,
		Status:        models.TransactionStatus(r.Status),
		Message:       r.Message,
		PerformedBy:   r.PerformedBy,
		Details:       r.Details,
		Timestamp:     ts,
	}, nil
}

// externalIDRecord reserves a (merchant, external id) pair.
type externalIDRecord struct {
	MerchantExternal string `dynamodbav:"merchant_external"`
	TransactionID    string `dynamodbav:"transaction_id"`
}

func externalKey(merchantID, externalID string) string {
	return merchantID + "#" + externalID
}

// batchRecord is a row of the batches table.
type batchRecord struct {
	ID             string            `dynamodbav:"id"`
	Type           string            `dynamodbav:"type"`
	Action         string            `dynamodbav:"action"`
	TransactionIDs []string          `dynamodbav:"transaction_ids"`
	Status         string            `dynamodbav:"status"`
	Items          []batchItemRecord `dynamodbav:"items"`
	Reason         string            `dynamodbav:"reason,omitempty"`
	CreatedBy      string            `dynamodbav:"created_by"`
	CreatedAt      string            `dynamodbav:"created_at"`
	CompletedAt    string            `dynamodbav:"completed_at,omitempty"`
}

type batchItemRecord struct {
	TransactionID string `dynamodbav:"transaction_id"`
	Status        string `dynamodbav:"status"`
	ErrorCode     string `dynamodbav:"error_code,omitempty"`
	ErrorMessage  string `dynamodbav:"error_message,omitempty"`
	ProcessedAt   string `dynamodbav:"processed_at"`
}

func toBatchItemRecord(item models.BatchOperationItem) batchItemRecord {
	return batchItemRecord{
		TransactionID: item.TransactionID,
		Status:        string(item.Status),
		ErrorCode:     item.ErrorCode,
		ErrorMessage:  item.ErrorMessage,
		ProcessedAt:   formatTime(item.ProcessedAt),
	}
}

func toBatchRecord(b *models.BatchOperation) batchRecord {
	r := batchRecord{
		ID:             b.ID,
		Type:           string(b.Type),
		Action:         string(b.Action),
		TransactionIDs: append([]string{}, b.TransactionIDs...),
		Status:         string(b.Status),
		Items:          make([]batchItemRecord, 0, len(b.Items)),
		Reason:         b.Reason,
		CreatedBy:      b.CreatedBy,
		CreatedAt:      formatTime(b.CreatedAt),
		CompletedAt:    formatTimePtr(b.CompletedAt),
	}
	for _, item := range b.Items {
		r.Items = append(r.Items, toBatchItemRecord(item))
	}
	return r
}

func (r batchRecord) toModel() (*models.BatchOperation, error) {
	b := &models.BatchOperation{
		ID:             r.ID,
		Type:           models.BatchType(r.Type),
		Action:         models.BatchAction(r.Action),
		TransactionIDs: r.TransactionIDs,
		Status:         models.BatchStatus(r.Status),
		Items:          make([]models.BatchOperationItem, 0, len(r.Items)),
		Reason:         r.Reason,
		CreatedBy:      r.CreatedBy,
	}

	var err error
	if b.CreatedAt, err = parseTime(r.CreatedAt); err != nil {
		return nil, fmt.Errorf("invalid created_at on batch %s: %w", r.ID, err)
	}
	if b.CompletedAt, err = parseTimePtr(r.CompletedAt); err != nil {
		return nil, fmt.Errorf("invalid completed_at on batch %s: %w", r.ID, err)
	}
	for _, item := range r.Items {
		processedAt, err := parseTime(item.ProcessedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid processed_at on batch %s: %w", r.ID, err)
		}
		b.Items = append(b.Items, models.BatchOperationItem{
			TransactionID: item.TransactionID,
			Status:        models.BatchItemStatus(item.Status),
			ErrorCode:     item.ErrorCode,
			ErrorMessage:  item.ErrorMessage,
			ProcessedAt:   processedAt,
		})
	}
	return b, nil
}
