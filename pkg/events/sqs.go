package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/chris/transaction-backoffice/pkg/models"
)

// EventTypeStatusChanged is set as the eventType message attribute so
// consumers can route without decoding the body.
const EventTypeStatusChanged = "transaction.status_changed"

// SQSAPI is the subset of the SQS client used to send messages.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher implements the Publisher interface using AWS SQS. The
// notification service consumes the queue.
type SQSPublisher struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSPublisher creates a new SQSPublisher.
func NewSQSPublisher(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Publisher = (*SQSPublisher)(nil)

// PublishStatusChanged sends the event to the notification queue.
func (p *SQSPublisher) PublishStatusChanged(ctx context.Context, event models.StatusChangedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status change event for SQS: %w", err)
	}

	_, err = p.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.QueueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(EventTypeStatusChanged),
			},
			"transactionId": {
				DataType:    aws.String("String"),
				StringValue: aws.String(event.TransactionID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send status change event for transaction %s to SQS: %w", event.TransactionID, err)
	}

	return nil
}
