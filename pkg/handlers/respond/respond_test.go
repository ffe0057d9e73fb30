package respond

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	cases := map[error]int{
		storage.ErrNotFound:                        http.StatusNotFound,
		models.ErrValidation:                       http.StatusBadRequest,
		models.ErrInvalidTransition:                http.StatusConflict,
		models.ErrInvalidState:                     http.StatusConflict,
		models.ErrAlreadyPending:                   http.StatusConflict,
		storage.ErrConcurrentModification:          http.StatusConflict,
		storage.ErrDuplicateExternalID:             http.StatusConflict,
		storage.Unavailable("get", assert.AnError): http.StatusServiceUnavailable,
		assert.AnError:                             http.StatusInternalServerError,
	}
	for err, want := range cases {
		t.Run(err.Error(), func(t *testing.T) {
			wrapped := fmt.Errorf("failed to do something: %w", err)
			assert.Equal(t, want, StatusCode(wrapped))
		})
	}
}

func TestError(t *testing.T) {
	t.Run("Unavailable Sets Retry-After", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)

		Error(rr, req, "list transactions", storage.Unavailable("query transactions", assert.AnError))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, RetryAfterSeconds, rr.Header().Get("Retry-After"))
		assert.Contains(t, rr.Body.String(), "Failed to list transactions")
	})

	t.Run("Not Found", func(t *testing.T) {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/transactions/TX1", nil)

		Error(rr, req, "get transaction", storage.ErrNotFound)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Empty(t, rr.Header().Get("Retry-After"))
	})
}

type body struct {
	Amount      string `json:"amount" validate:"required,positive_amount"`
	PerformedBy string `json:"performedBy" validate:"required"`
}

func TestDecode(t *testing.T) {
	cases := map[string]struct {
		payload string
		ok      bool
	}{
		"valid":          {`{"amount":"1.00","performedBy":"admin"}`, true},
		"malformed":      {`{"amount":`, false},
		"failed checks":  {`{"amount":"-1","performedBy":"admin"}`, false},
		"missing fields": {`{}`, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.payload))

			var dst body
			ok := Decode(rr, req, &dst)

			assert.Equal(t, tc.ok, ok)
			if !tc.ok {
				assert.Equal(t, http.StatusBadRequest, rr.Code)
			}
		})
	}
}
