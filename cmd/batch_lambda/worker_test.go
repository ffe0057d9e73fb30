package main

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/chris/transaction-backoffice/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockStarter struct {
	mock.Mock
}

func (m *mockStarter) Start(ctx context.Context, batchID string) (*models.BatchOperation, error) {
	args := m.Called(ctx, batchID)
	b, _ := args.Get(0).(*models.BatchOperation)
	return b, args.Error(1)
}

func sqsEvent(bodies ...string) events.SQSEvent {
	var e events.SQSEvent
	for i, body := range bodies {
		e.Records = append(e.Records, events.SQSMessage{MessageId: fmt.Sprintf("msg-%d", i), Body: body})
	}
	return e
}

func TestWorkerHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		starter := new(mockStarter)
		starter.On("Start", ctx, "batch-1").Return(&models.BatchOperation{ID: "batch-1", Status: models.BatchCompleted}, nil).Once()

		resp, _ := NewWorker(starter, nil).Handle(ctx, sqsEvent(`{"batchId":"batch-1"}`))

		assert.Empty(t, resp.BatchItemFailures)
		starter.AssertExpectations(t)
	})

	t.Run("Acknowledged Failures", func(t *testing.T) {
		starter := new(mockStarter)
		starter.On("Start", ctx, "started").Return(nil, fmt.Errorf("%w: batch started is processing", models.ErrInvalidState)).Once()
		starter.On("Start", ctx, "missing").Return(nil, fmt.Errorf("batch with ID missing: %w", storage.ErrNotFound)).Once()

		resp, _ := NewWorker(starter, nil).Handle(ctx, sqsEvent(`{"batchId":"started"}`, `{"batchId":"missing"}`, `not json`))

		assert.Empty(t, resp.BatchItemFailures)
		starter.AssertExpectations(t)
	})

	t.Run("Storage Error", func(t *testing.T) {
		starter := new(mockStarter)
		starter.On("Start", ctx, "batch-1").Return(nil, storage.Unavailable("get batch", context.DeadlineExceeded)).Once()
		starter.On("Start", ctx, "batch-2").Return(&models.BatchOperation{ID: "batch-2", Status: models.BatchCompleted}, nil).Once()

		resp, _ := NewWorker(starter, nil).Handle(ctx, sqsEvent(`{"batchId":"batch-1"}`, `{"batchId":"batch-2"}`))

		assert.Equal(t, []events.SQSBatchItemFailure{{ItemIdentifier: "msg-0"}}, resp.BatchItemFailures)
	})
}
