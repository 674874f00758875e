package queue

import "context"

type Sender interface {
	// SendMessage publishes body as JSON and returns the broker's message id.
	SendMessage(ctx context.Context, queueName string, body any) (string, error)
}
