package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// SQSAPI is the subset of the SQS client used to send messages.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSScheduler implements the Scheduler interface using AWS SQS.
type SQSScheduler struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSScheduler creates a new SQSScheduler.
func NewSQSScheduler(client SQSAPI, queueURL string) *SQSScheduler {
	return &SQSScheduler{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Scheduler = (*SQSScheduler)(nil)

// ScheduleBatch sends the batch ID to an SQS queue; the batch worker starts it.
func (s *SQSScheduler) ScheduleBatch(ctx context.Context, batchID string) error {
	body, err := json.Marshal(BatchJob{BatchID: batchID})
	if err != nil {
		return fmt.Errorf("failed to marshal batch job for SQS: %w", err)
	}

	_, err = s.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(s.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

// ParseBatchJob decodes a message body produced by ScheduleBatch.
func ParseBatchJob(body string) (BatchJob, error) {
	var job BatchJob
	if err := json.Unmarshal([]byte(body), &job); err != nil {
		return BatchJob{}, fmt.Errorf("failed to unmarshal batch job: %w", err)
	}
	if job.BatchID == "" {
		return BatchJob{}, fmt.Errorf("batch job has no batchId")
	}
	return job, nil
}
