package transactions

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/transaction-backoffice/pkg/api"
	"github.com/chris/transaction-backoffice/pkg/handlers/transactions/mocks"
	"github.com/chris/transaction-backoffice/pkg/lifecycle"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/query"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func newHandler() (*TransactionsHandler, *mocks.StatusChanger, *mocks.Enqueuer, *mocks.Reader) {
	machine := new(mocks.StatusChanger)
	queue := new(mocks.Enqueuer)
	reader := new(mocks.Reader)
	return NewTransactionsHandler(machine, queue, reader), machine, queue, reader
}

func pendingTransaction(id string) *models.Transaction {
	return &models.Transaction{
		ID:         id,
		MerchantID: "M1",
		Type:       models.TypeDeposit,
		Amount:     decimal.RequireFromString("125.50"),
		Currency:   "USD",
		Status:     models.PENDING,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
		Pending:    &models.PendingInfo{Since: createdAt, Reason: "review", Priority: models.PriorityHigh},
	}
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestCreateTransaction(t *testing.T) {
	high := api.PriorityHigh
	newTx := api.NewTransaction{
		MerchantId:  "M1",
		Type:        api.TransactionTypeDeposit,
		Amount:      "125.50",
		Currency:    "USD",
		Priority:    &high,
		PerformedBy: "admin@backoffice",
	}

	t.Run("Success", func(t *testing.T) {
		handler, _, queue, _ := newHandler()
		queue.On("Enqueue", mock.Anything, mock.MatchedBy(func(req lifecycle.EnqueueRequest) bool {
			return req.Transaction.MerchantID == "M1" &&
				req.Transaction.Amount.Equal(decimal.RequireFromString("125.50")) &&
				req.Priority == models.PriorityHigh &&
				req.PerformedBy == "admin@backoffice"
		})).Return(pendingTransaction("TX1"), nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/transactions", jsonBody(t, newTx))
		rr := httptest.NewRecorder()
		handler.CreateTransaction(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var out api.Transaction
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, "TX1", out.Id)
		assert.Equal(t, api.PriorityHigh, *out.Priority)
		queue.AssertExpectations(t)
	})

	t.Run("Invalid Currency", func(t *testing.T) {
		handler, _, queue, _ := newHandler()
		body := newTx
		body.Currency = "usd"

		req := httptest.NewRequest(http.MethodPost, "/transactions", jsonBody(t, body))
		rr := httptest.NewRecorder()
		handler.CreateTransaction(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "currency")
		queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})

	t.Run("Already Pending", func(t *testing.T) {
		handler, _, queue, _ := newHandler()
		queue.On("Enqueue", mock.Anything, mock.Anything).Return(nil, models.ErrAlreadyPending).Once()

		req := httptest.NewRequest(http.MethodPost, "/transactions", jsonBody(t, newTx))
		rr := httptest.NewRecorder()
		handler.CreateTransaction(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Storage Error", func(t *testing.T) {
		handler, _, queue, _ := newHandler()
		queue.On("Enqueue", mock.Anything, mock.Anything).Return(nil, storage.Unavailable("create transaction", errors.New("throttled"))).Once()

		req := httptest.NewRequest(http.MethodPost, "/transactions", jsonBody(t, newTx))
		rr := httptest.NewRecorder()
		handler.CreateTransaction(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	})
}

func TestChangeTransactionStatus(t *testing.T) {
	body := api.StatusChangeRequest{Status: "cancelled", PerformedBy: "ops"}

	t.Run("Success", func(t *testing.T) {
		handler, machine, _, _ := newHandler()
		canceled := pendingTransaction("TX1")
		canceled.Status = models.CANCELED
		canceled.Pending = nil
		machine.On("Transition", mock.Anything, mock.MatchedBy(func(req lifecycle.TransitionRequest) bool {
			return req.TransactionID == "TX1" && req.Target == models.CANCELED && req.PerformedBy == "ops"
		})).Return(canceled, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/transactions/TX1/status", jsonBody(t, body))
		rr := httptest.NewRecorder()
		handler.ChangeTransactionStatus(rr, req, "TX1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var out api.Transaction
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, api.TransactionStatusCanceled, out.Status)
		machine.AssertExpectations(t)
	})

	t.Run("Invalid Transition", func(t *testing.T) {
		handler, machine, _, _ := newHandler()
		machine.On("Transition", mock.Anything, mock.Anything).Return(nil, models.ErrInvalidTransition).Once()

		req := httptest.NewRequest(http.MethodPost, "/transactions/TX1/status", jsonBody(t, body))
		rr := httptest.NewRecorder()
		handler.ChangeTransactionStatus(rr, req, "TX1")

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		handler, machine, _, _ := newHandler()
		machine.On("Transition", mock.Anything, mock.Anything).Return(nil, storage.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/transactions/NOPE/status", jsonBody(t, body))
		rr := httptest.NewRecorder()
		handler.ChangeTransactionStatus(rr, req, "NOPE")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Unknown Status", func(t *testing.T) {
		handler, machine, _, _ := newHandler()

		req := httptest.NewRequest(http.MethodPost, "/transactions/TX1/status",
			jsonBody(t, api.StatusChangeRequest{Status: "settled", PerformedBy: "ops"}))
		rr := httptest.NewRecorder()
		handler.ChangeTransactionStatus(rr, req, "TX1")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		machine.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything)
	})
}

func TestGetTransactionById(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, _, reader := newHandler()
		reader.On("GetTransaction", mock.Anything, "TX1").Return(pendingTransaction("TX1"), nil).Once()

		rr := httptest.NewRecorder()
		handler.GetTransactionById(rr, httptest.NewRequest(http.MethodGet, "/transactions/TX1", nil), "TX1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var out api.Transaction
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, "125.5", out.Amount)
		reader.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		handler, _, _, reader := newHandler()
		reader.On("GetTransaction", mock.Anything, "NOPE").Return(nil, storage.ErrNotFound).Once()

		rr := httptest.NewRecorder()
		handler.GetTransactionById(rr, httptest.NewRequest(http.MethodGet, "/transactions/NOPE", nil), "NOPE")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListTransactions(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, _, reader := newHandler()
		status, page := "all", 2
		reader.On("ListTransactions", mock.Anything, mock.MatchedBy(func(p query.Params) bool {
			return p.Status == "all" && p.Page == 2 && p.PageSize == 0
		})).Return(&query.Page{
			Items:      []models.Transaction{*pendingTransaction("TX1")},
			TotalItems: 21,
			TotalPages: 2,
			Page:       2,
			PageSize:   20,
		}, nil).Once()

		rr := httptest.NewRecorder()
		handler.ListTransactions(rr, httptest.NewRequest(http.MethodGet, "/transactions", nil),
			api.ListTransactionsParams{Status: &status, Page: &page})

		assert.Equal(t, http.StatusOK, rr.Code)
		var out api.TransactionPage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, 21, out.TotalItems)
		assert.Len(t, out.Items, 1)
		reader.AssertExpectations(t)
	})

	t.Run("Validation Error", func(t *testing.T) {
		handler, _, _, reader := newHandler()
		reader.On("ListTransactions", mock.Anything, mock.Anything).Return(nil, models.ErrValidation).Once()

		rr := httptest.NewRecorder()
		handler.ListTransactions(rr, httptest.NewRequest(http.MethodGet, "/transactions", nil), api.ListTransactionsParams{})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListTransactionLogs(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, _, reader := newHandler()
		reader.On("GetTransaction", mock.Anything, "TX1").Return(pendingTransaction("TX1"), nil).Once()
		reader.On("ListLogs", mock.Anything, "TX1", 0).Return([]models.TransactionLog{
			{ID: "L2", TransactionID: "TX1", Action: "STATUS_CHANGED_TO_COMPLETED", Status: models.COMPLETED, Timestamp: createdAt.Add(time.Minute)},
			{ID: "L1", TransactionID: "TX1", Action: models.ActionTransactionCreated, Status: models.PENDING, Timestamp: createdAt},
		}, nil).Once()

		rr := httptest.NewRecorder()
		handler.ListTransactionLogs(rr, httptest.NewRequest(http.MethodGet, "/transactions/TX1/logs", nil), "TX1")

		assert.Equal(t, http.StatusOK, rr.Code)
		var out api.TransactionLogList
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		require.Len(t, out.Items, 2)
		assert.Equal(t, "L2", out.Items[0].Id)
		reader.AssertExpectations(t)
	})

	t.Run("Unknown Transaction", func(t *testing.T) {
		handler, _, _, reader := newHandler()
		reader.On("GetTransaction", mock.Anything, "NOPE").Return(nil, storage.ErrNotFound).Once()

		rr := httptest.NewRecorder()
		handler.ListTransactionLogs(rr, httptest.NewRequest(http.MethodGet, "/transactions/NOPE/logs", nil), "NOPE")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		reader.AssertNotCalled(t, "ListLogs", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAddTransactionNote(t *testing.T) {
	body := api.NoteRequest{Note: "customer called", PerformedBy: "ops"}

	t.Run("Success", func(t *testing.T) {
		handler, machine, _, _ := newHandler()
		machine.On("AddNote", mock.Anything, "TX1", "customer called", "ops").Return(models.TransactionLog{
			ID: "L3", TransactionID: "TX1", Action: models.ActionNoteAdded, Status: models.PENDING, Message: "customer called", PerformedBy: "ops", Timestamp: createdAt,
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/transactions/TX1/notes", jsonBody(t, body))
		rr := httptest.NewRecorder()
		handler.AddTransactionNote(rr, req, "TX1")

		assert.Equal(t, http.StatusCreated, rr.Code)
		machine.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		handler, machine, _, _ := newHandler()
		machine.On("AddNote", mock.Anything, "TX1", "customer called", "ops").Return(models.TransactionLog{}, errors.New("append failed")).Once()

		req := httptest.NewRequest(http.MethodPost, "/transactions/TX1/notes", jsonBody(t, body))
		rr := httptest.NewRecorder()
		handler.AddTransactionNote(rr, req, "TX1")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Contains(t, rr.Body.String(), "Failed to add note")
	})
}
