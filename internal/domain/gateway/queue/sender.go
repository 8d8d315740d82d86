package queue

// BatchMessage is one message of a batch send, addressed by a caller-chosen
// identifier that is echoed back in the batch result.
type BatchMessage struct {
	MessageID string
	Body      any
}

// BatchResult reports which message ids of a batch were accepted.
type BatchResult struct {
	Successful []string
	Failed     []string
}

// Sender is the outbound port for queue publishing.
type Sender interface {
	// SendMessage publishes a single message body to the named queue
	SendMessage(queueName string, body any) error
	// SendMessageBatch publishes a batch, chunking as the transport requires
	SendMessageBatch(queueName string, messages []BatchMessage) (*BatchResult, error)
}
