// Package query is the read side of the back-office: filtering, sorting and
// pagination over transactions, plus the log views.
package query

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/chris/transaction-backoffice/pkg/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// StatusAll disables the status filter.
const StatusAll = "all"

// endOfDay is added to a date-only upper bound.
const endOfDay = 24*time.Hour - time.Millisecond

// SortField names a sortable transaction attribute.
type SortField string

const (
	SortByID         SortField = "id"
	SortByMerchantID SortField = "merchantId"
	SortByType       SortField = "type"
	SortByAmount     SortField = "amount"
	SortByCurrency   SortField = "currency"
	SortByStatus     SortField = "status"
	SortByCreatedAt  SortField = "createdAt"
	SortByUpdatedAt  SortField = "updatedAt"
)

var sortFields = []SortField{
	SortByID, SortByMerchantID, SortByType, SortByAmount,
	SortByCurrency, SortByStatus, SortByCreatedAt, SortByUpdatedAt,
}

// ParseSortField accepts a field name in any case. Empty is createdAt.
func ParseSortField(s string) (SortField, error) {
	if strings.TrimSpace(s) == "" {
		return SortByCreatedAt, nil
	}
	for _, f := range sortFields {
		if strings.EqualFold(string(f), strings.TrimSpace(s)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: cannot sort by %q", models.ErrValidation, s)
}

// SortOrder is asc or desc.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// ParseSortOrder accepts asc or desc in any case. Empty is desc.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", Desc:
		return Desc, nil
	case Asc:
		return Asc, nil
	}
	return "", fmt.Errorf("%w: unknown sort order %q", models.ErrValidation, s)
}

// Filter is a parsed transaction predicate. Zero values match everything.
type Filter struct {
	Search     string
	Status     models.TransactionStatus
	MerchantID string
	Type       models.TransactionType
	From       *time.Time
	To         *time.Time
}

// Match reports whether tx satisfies every predicate of f. Search is a
// case-insensitive substring match over the ID, merchant, description and
// customer name and email. Both date bounds are inclusive.
func Match(tx *models.Transaction, f Filter) bool {
	if f.Status != "" && tx.Status != f.Status {
		return false
	}
	if f.MerchantID != "" && tx.MerchantID != f.MerchantID {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.From != nil && tx.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && tx.CreatedAt.After(*f.To) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		for _, field := range []string{tx.ID, tx.MerchantID, tx.Description, tx.CustomerName, tx.CustomerEmail} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	}
	return true
}

// Sort orders txs by field. The sort is stable, so ties keep their input order.
func Sort(txs []models.Transaction, field SortField, order SortOrder) {
	less := lessFunc(field)
	sort.SliceStable(txs, func(i, j int) bool {
		if order == Asc {
			return less(&txs[i], &txs[j])
		}
		return less(&txs[j], &txs[i])
	})
}

func lessFunc(field SortField) func(a, b *models.Transaction) bool {
	switch field {
	case SortByID:
		return func(a, b *models.Transaction) bool { return a.ID < b.ID }
	case SortByMerchantID:
		return func(a, b *models.Transaction) bool { return a.MerchantID < b.MerchantID }
	case SortByType:
		return func(a, b *models.Transaction) bool { return a.Type < b.Type }
	case SortByAmount:
		return func(a, b *models.Transaction) bool { return a.Amount.LessThan(b.Amount) }
	case SortByCurrency:
		return func(a, b *models.Transaction) bool { return a.Currency < b.Currency }
	case SortByStatus:
		return func(a, b *models.Transaction) bool { return a.Status < b.Status }
	case SortByUpdatedAt:
		return func(a, b *models.Transaction) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	default:
		return func(a, b *models.Transaction) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

// TotalPages is ceil(totalItems/pageSize), never less than 1.
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 1
	}
	return int(math.Ceil(float64(totalItems) / float64(pageSize)))
}

// Paginate returns the 1-based page of items. A page past the end is empty.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

// NormalizeRange parses the date bounds. Each bound is either a date
// (2006-01-02) or an RFC 3339 timestamp; a date-only upper bound covers the
// whole day up to 23:59:59.999. Empty bounds are nil.
func NormalizeRange(from, to string) (*time.Time, *time.Time, error) {
	start, _, err := parseBound(from)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid dateFrom: %w", models.ErrValidation, err)
	}
	end, dateOnly, err := parseBound(to)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: invalid dateTo: %w", models.ErrValidation, err)
	}
	if end != nil && dateOnly {
		e := end.Add(endOfDay)
		end = &e
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, fmt.Errorf("%w: dateFrom is after dateTo", models.ErrValidation)
	}
	return start, end, nil
}

func parseBound(s string) (*time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return &t, true, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil, false, err
	}
	t = t.UTC()
	return &t, false, nil
}
