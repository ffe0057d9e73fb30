package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chris/transaction-backoffice/pkg/audit"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
)

// Params are the raw list parameters as received from a caller.
type Params struct {
	Search     string
	Status     string
	MerchantID string
	Type       string
	DateFrom   string
	DateTo     string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// Page is one page of a transaction listing.
type Page struct {
	Items      []models.Transaction
	TotalItems int
	TotalPages int
	Page       int
	PageSize   int
}

// Service answers transaction and log listings. It never writes.
type Service struct {
	store   storage.TransactionReader
	logs    *audit.Logger
	timeout time.Duration
}

// NewService creates a Service. A zero timeout leaves calls unbounded by the service.
func NewService(store storage.TransactionReader, logs *audit.Logger, timeout time.Duration) *Service {
	return &Service{store: store, logs: logs, timeout: timeout}
}

// ListTransactions filters, sorts and paginates transactions. The backend
// receives the pushed-down part of the filter; the full predicate is
// re-applied here.
func (s *Service) ListTransactions(ctx context.Context, p Params) (*Page, error) {
	filter, err := ParseFilter(p)
	if err != nil {
		return nil, err
	}
	field, err := ParseSortField(p.SortBy)
	if err != nil {
		return nil, err
	}
	order, err := ParseSortOrder(p.SortOrder)
	if err != nil {
		return nil, err
	}
	page, pageSize := normalizePage(p.Page, p.PageSize)

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	candidates, err := s.store.QueryTransactions(ctx, storage.TransactionFilter{
		Status:     filter.Status,
		MerchantID: filter.MerchantID,
		Type:       filter.Type,
		From:       filter.From,
		To:         filter.To,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	matched := make([]models.Transaction, 0, len(candidates))
	for i := range candidates {
		if Match(&candidates[i], filter) {
			matched = append(matched, candidates[i])
		}
	}
	Sort(matched, field, order)

	return &Page{
		Items:      Paginate(matched, page, pageSize),
		TotalItems: len(matched),
		TotalPages: TotalPages(len(matched), pageSize),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// GetTransaction returns one transaction.
func (s *Service) GetTransaction(ctx context.Context, txID string) (*models.Transaction, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", txID, err)
	}
	return tx, nil
}

// ListLogs returns the logs of transactionID, or the most recent logs
// system-wide when transactionID is empty. limit only applies to the latter.
func (s *Service) ListLogs(ctx context.Context, transactionID string, limit int) ([]models.TransactionLog, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if transactionID != "" {
		return s.logs.ListByTransaction(ctx, transactionID)
	}
	return s.logs.ListRecent(ctx, limit)
}

// ParseFilter converts raw parameters into a Filter.
func ParseFilter(p Params) (Filter, error) {
	f := Filter{
		Search:     strings.TrimSpace(p.Search),
		MerchantID: strings.TrimSpace(p.MerchantID),
	}

	if st := strings.TrimSpace(p.Status); st != "" && !strings.EqualFold(st, StatusAll) {
		status, err := models.ParseTransactionStatus(st)
		if err != nil {
			return Filter{}, err
		}
		f.Status = status
	}
	if strings.TrimSpace(p.Type) != "" {
		t, err := models.ParseTransactionType(p.Type)
		if err != nil {
			return Filter{}, err
		}
		f.Type = t
	}

	from, to, err := NormalizeRange(p.DateFrom, p.DateTo)
	if err != nil {
		return Filter{}, err
	}
	f.From, f.To = from, to
	return f, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
