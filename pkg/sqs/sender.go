package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// BatchMessage represents a message to be sent in batch
type BatchMessage struct {
	MessageID string `json:"messageId"`
	Body      any    `json:"body"`
}

// BatchResult represents the result of a batch send operation
type BatchResult struct {
	Successful []string `json:"successful"`
	Failed     []string `json:"failed"`
}

// SQSClient defines the interface for SQS operations used by the Sender
type SQSClient interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	SendMessageBatch(ctx context.Context, params *sqs.SendMessageBatchInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error)
}

// Sender handles sending messages to SQS queues
type Sender struct {
	sqsClient SQSClient

	mu        sync.Mutex
	queueURLs map[string]string
}

// NewSender creates and returns a new Sender
func NewSender(sqsClient SQSClient) *Sender {
	return &Sender{
		sqsClient: sqsClient,
		queueURLs: make(map[string]string),
	}
}

// SendMessage serializes the provided body to JSON and sends it to the specified queue
func (s *Sender) SendMessage(queueName string, body any) error {
	ctx := context.Background()

	queueURL, err := s.getQueueURL(ctx, queueName)
	if err != nil {
		return fmt.Errorf("failed to get queue URL for %s: %w", queueName, err)
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to serialize message body to JSON: %w", err)
	}

	messageBody := string(jsonBody)
	_, err = s.sqsClient.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(queueURL),
		MessageBody: aws.String(messageBody),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to queue %s: %w", queueName, err)
	}

	return nil
}

// SendMessageBatch sends up to 10 messages per SQS batch call, reporting
// per-message success and failure by the caller-provided message id.
func (s *Sender) SendMessageBatch(queueName string, messages []BatchMessage) (*BatchResult, error) {
	ctx := context.Background()

	queueURL, err := s.getQueueURL(ctx, queueName)
	if err != nil {
		return nil, fmt.Errorf("failed to get queue URL for %s: %w", queueName, err)
	}

	result := &BatchResult{}

	for start := 0; start < len(messages); start += 10 {
		end := start + 10
		if end > len(messages) {
			end = len(messages)
		}
		chunk := messages[start:end]

		entries := make([]types.SendMessageBatchRequestEntry, len(chunk))
		for i, msg := range chunk {
			jsonBody, err := json.Marshal(msg.Body)
			if err != nil {
				result.Failed = append(result.Failed, msg.MessageID)
				continue
			}
			entries[i] = types.SendMessageBatchRequestEntry{
				Id:          aws.String(msg.MessageID),
				MessageBody: aws.String(string(jsonBody)),
			}
		}

		output, err := s.sqsClient.SendMessageBatch(ctx, &sqs.SendMessageBatchInput{
			QueueUrl: aws.String(queueURL),
			Entries:  entries,
		})
		if err != nil {
			for _, msg := range chunk {
				result.Failed = append(result.Failed, msg.MessageID)
			}
			continue
		}

		for _, entry := range output.Successful {
			if entry.Id != nil {
				result.Successful = append(result.Successful, *entry.Id)
			}
		}
		for _, entry := range output.Failed {
			if entry.Id != nil {
				result.Failed = append(result.Failed, *entry.Id)
			}
		}
	}

	return result, nil
}

// getQueueURL resolves and caches the URL for a queue name
func (s *Sender) getQueueURL(ctx context.Context, queueName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if url, ok := s.queueURLs[queueName]; ok {
		return url, nil
	}

	output, err := s.sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{
		QueueName: aws.String(queueName),
	})
	if err != nil {
		return "", err
	}

	s.queueURLs[queueName] = *output.QueueUrl
	return *output.QueueUrl, nil
}
