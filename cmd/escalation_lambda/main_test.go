package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/chris/transaction-backoffice/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockEscalator struct {
	mock.Mock
}

func (m *mockEscalator) EscalateStale(ctx context.Context, olderThan time.Duration, performedBy string) (lifecycle.EscalationResult, error) {
	args := m.Called(ctx, olderThan, performedBy)
	return args.Get(0).(lifecycle.EscalationResult), args.Error(1)
}

func TestSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		var buf bytes.Buffer
		q := new(mockEscalator)
		q.On("EscalateStale", ctx, 30*time.Minute, performedBy).Return(lifecycle.EscalationResult{
			Escalated: []string{"tx-1"},
			Failed:    map[string]error{"tx-2": errors.New("concurrent modification")},
		}, nil).Once()

		err := sweep(ctx, q, 30*time.Minute, slog.New(slog.NewTextHandler(&buf, nil)))

		assert.NoError(t, err)
		assert.Contains(t, buf.String(), "transactionId=tx-2")
		assert.Contains(t, buf.String(), "escalated=1")
		q.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		q := new(mockEscalator)
		q.On("EscalateStale", ctx, time.Minute, performedBy).Return(lifecycle.EscalationResult{}, errors.New("storage unavailable")).Once()

		err := sweep(ctx, q, time.Minute, slog.New(slog.DiscardHandler))

		assert.EqualError(t, err, "storage unavailable")
	})
}
