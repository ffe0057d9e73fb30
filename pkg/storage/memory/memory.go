// Package memory is a process-local implementation of the storage contract.
// It backs local runs (STORAGE_BACKEND=memory) and component tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/google/uuid"
)

// Store is a thread-safe in-memory store. Every mutation holds the write
// lock for its whole duration, which makes status changes and their log
// appends atomic.
type Store struct {
	mu           sync.RWMutex
	transactions map[string]*models.Transaction
	order        []string
	externalIDs  map[string]string
	logs         []models.TransactionLog
	batches      map[string]*models.BatchOperation
	connections  map[string]struct{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		transactions: make(map[string]*models.Transaction),
		externalIDs:  make(map[string]string),
		batches:      make(map[string]*models.BatchOperation),
		connections:  make(map[string]struct{}),
	}
}

// Make sure we conform to the interfaces
var (
	_ storage.Storage          = (*Store)(nil)
	_ storage.WebSocketManager = (*Store)(nil)
)

func externalKey(merchantID, externalID string) string {
	return merchantID + "#" + externalID
}

func cloneTransaction(tx *models.Transaction) *models.Transaction {
	c := *tx
	c.Metadata = maps.Clone(tx.Metadata)
	if tx.CompletedAt != nil {
		t := *tx.CompletedAt
		c.CompletedAt = &t
	}
	if tx.Pending != nil {
		p := *tx.Pending
		if p.EstimatedCompletionTime != nil {
			t := *p.EstimatedCompletionTime
			p.EstimatedCompletionTime = &t
		}
		c.Pending = &p
	}
	return &c
}

func cloneBatch(b *models.BatchOperation) *models.BatchOperation {
	c := *b
	c.TransactionIDs = append([]string(nil), b.TransactionIDs...)
	c.Items = append([]models.BatchOperationItem(nil), b.Items...)
	if b.CompletedAt != nil {
		t := *b.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

func cloneLog(l models.TransactionLog) models.TransactionLog {
	l.Details = maps.Clone(l.Details)
	return l
}

func (s *Store) checkContext(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return storage.Unavailable(op, err)
	}
	return nil
}

// GetTransaction retrieves a transaction by its ID.
func (s *Store) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	if err := s.checkContext(ctx, "get transaction"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[txID]
	if !ok {
		return nil, fmt.Errorf("transaction with ID %s: %w", txID, storage.ErrNotFound)
	}
	return cloneTransaction(tx), nil
}

// QueryTransactions returns matching transactions in insertion order.
func (s *Store) QueryTransactions(ctx context.Context, filter storage.TransactionFilter) ([]models.Transaction, error) {
	if err := s.checkContext(ctx, "query transactions"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Transaction, 0, len(s.order))
	for _, id := range s.order {
		tx := s.transactions[id]
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		if filter.MerchantID != "" && tx.MerchantID != filter.MerchantID {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.From != nil && tx.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && tx.CreatedAt.After(*filter.To) {
			continue
		}
		result = append(result, *cloneTransaction(tx))
	}
	return result, nil
}

// CreateTransaction stores tx and its creation log.
func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction, log models.TransactionLog) error {
	if err := s.checkContext(ctx, "create transaction"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[tx.ID]; ok {
		return fmt.Errorf("transaction with ID %s: %w", tx.ID, storage.ErrAlreadyExists)
	}
	if tx.ExternalID != "" {
		if _, ok := s.externalIDs[externalKey(tx.MerchantID, tx.ExternalID)]; ok {
			return fmt.Errorf("external ID %s: %w", tx.ExternalID, storage.ErrDuplicateExternalID)
		}
		s.externalIDs[externalKey(tx.MerchantID, tx.ExternalID)] = tx.ID
	}

	s.transactions[tx.ID] = cloneTransaction(tx)
	s.order = append(s.order, tx.ID)
	s.logs = append(s.logs, cloneLog(log))
	return nil
}

// SaveTransactionStatus applies change if the stored status still equals change.ExpectedStatus.
func (s *Store) SaveTransactionStatus(ctx context.Context, change storage.StatusChange) error {
	if err := s.checkContext(ctx, "save transaction status"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[change.TransactionID]
	if !ok {
		return fmt.Errorf("transaction with ID %s: %w", change.TransactionID, storage.ErrNotFound)
	}
	if tx.Status != change.ExpectedStatus {
		return fmt.Errorf("transaction %s is %s, expected %s: %w", tx.ID, tx.Status, change.ExpectedStatus, storage.ErrConcurrentModification)
	}

	s.transactions[tx.ID] = change.Apply(tx)
	s.logs = append(s.logs, cloneLog(change.Log))
	return nil
}

// AppendLog stores entry.
func (s *Store) AppendLog(ctx context.Context, entry models.TransactionLog) (string, error) {
	if err := s.checkContext(ctx, "append log"); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.logs {
		if l.ID == entry.ID {
			return "", fmt.Errorf("log with ID %s: %w", entry.ID, storage.ErrAlreadyExists)
		}
	}
	s.logs = append(s.logs, cloneLog(entry))
	return entry.ID, nil
}

// QueryLogs returns logs newest first.
func (s *Store) QueryLogs(ctx context.Context, transactionID string, limit int32) ([]models.TransactionLog, error) {
	if err := s.checkContext(ctx, "query logs"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.TransactionLog, 0)
	for _, l := range s.logs {
		if transactionID == "" || l.TransactionID == transactionID {
			result = append(result, cloneLog(l))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].ID > result[j].ID
		}
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	if limit > 0 && int(limit) < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// ListPending returns pending transactions in insertion order.
func (s *Store) ListPending(ctx context.Context, filter storage.PendingFilter) ([]models.Transaction, error) {
	if err := s.checkContext(ctx, "list pending transactions"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Transaction, 0)
	for _, id := range s.order {
		tx := s.transactions[id]
		if tx.Status != models.PENDING || tx.Pending == nil {
			continue
		}
		if filter.MerchantID != "" && tx.MerchantID != filter.MerchantID {
			continue
		}
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.OlderThan != nil && !tx.Pending.Since.Before(*filter.OlderThan) {
			continue
		}
		result = append(result, *cloneTransaction(tx))
	}
	return result, nil
}

// SavePendingMetadata updates the queue attributes of a pending transaction.
func (s *Store) SavePendingMetadata(ctx context.Context, txID string, update storage.PendingUpdate, log models.TransactionLog) error {
	if err := s.checkContext(ctx, "save pending metadata"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[txID]
	if !ok {
		return fmt.Errorf("transaction with ID %s: %w", txID, storage.ErrNotFound)
	}
	if tx.Status != models.PENDING || tx.Pending == nil {
		return fmt.Errorf("transaction %s is %s: %w", txID, tx.Status, storage.ErrConcurrentModification)
	}

	tx.Pending.Reason = update.Reason
	tx.Pending.Priority = update.Priority
	tx.UpdatedAt = update.UpdatedAt
	s.logs = append(s.logs, cloneLog(log))
	return nil
}

// ClearPendingMetadata removes the queue attributes of a non-pending transaction.
func (s *Store) ClearPendingMetadata(ctx context.Context, txID string) error {
	if err := s.checkContext(ctx, "clear pending metadata"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.transactions[txID]
	if !ok {
		return fmt.Errorf("transaction with ID %s: %w", txID, storage.ErrNotFound)
	}
	if tx.Status == models.PENDING {
		return fmt.Errorf("transaction %s is still pending: %w", txID, storage.ErrConcurrentModification)
	}
	tx.Pending = nil
	return nil
}

// CreateBatch stores batch, assigning an ID when it has none.
func (s *Store) CreateBatch(ctx context.Context, batch *models.BatchOperation) (string, error) {
	if err := s.checkContext(ctx, "create batch"); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}
	if _, ok := s.batches[batch.ID]; ok {
		return "", fmt.Errorf("batch with ID %s: %w", batch.ID, storage.ErrAlreadyExists)
	}
	s.batches[batch.ID] = cloneBatch(batch)
	return batch.ID, nil
}

// GetBatch retrieves a batch by its ID.
func (s *Store) GetBatch(ctx context.Context, batchID string) (*models.BatchOperation, error) {
	if err := s.checkContext(ctx, "get batch"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.batches[batchID]
	if !ok {
		return nil, fmt.Errorf("batch with ID %s: %w", batchID, storage.ErrNotFound)
	}
	return cloneBatch(b), nil
}

// AppendBatchItem records item at position index.
func (s *Store) AppendBatchItem(ctx context.Context, batchID string, index int, item models.BatchOperationItem) error {
	if err := s.checkContext(ctx, "append batch item"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[batchID]
	if !ok {
		return fmt.Errorf("batch with ID %s: %w", batchID, storage.ErrNotFound)
	}
	if len(b.Items) != index {
		return fmt.Errorf("batch %s has %d items, cannot write position %d: %w", batchID, len(b.Items), index, storage.ErrConcurrentModification)
	}
	b.Items = append(b.Items, item)
	return nil
}

// SetBatchStatus moves a batch from expected to status.
func (s *Store) SetBatchStatus(ctx context.Context, batchID string, expected, status models.BatchStatus, completedAt *time.Time) error {
	if err := s.checkContext(ctx, "set batch status"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[batchID]
	if !ok {
		return fmt.Errorf("batch with ID %s: %w", batchID, storage.ErrNotFound)
	}
	if b.Status != expected {
		return fmt.Errorf("batch %s is %s, expected %s: %w", batchID, b.Status, expected, storage.ErrConcurrentModification)
	}
	b.Status = status
	if completedAt != nil {
		t := *completedAt
		b.CompletedAt = &t
	}
	return nil
}

// AddConnection registers a dashboard connection.
func (s *Store) AddConnection(ctx context.Context, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connections[connectionID] = struct{}{}
	return nil
}

// RemoveConnection forgets a dashboard connection.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.connections, connectionID)
	return nil
}

// GetAllConnections lists the registered dashboard connections.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.connections))
	for id := range s.connections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
