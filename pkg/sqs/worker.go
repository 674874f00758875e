package sqs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"weather-reminder/pkg/log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
)

// HealthStatus of a worker.
type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)

// Handler processes one message. A nil error deletes the message from the queue.
type Handler interface {
	HandleMessage(ctx context.Context, msg types.Message) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, msg types.Message) error

func (f HandlerFunc) HandleMessage(ctx context.Context, msg types.Message) error {
	return f(ctx, msg)
}

// WorkerConfig defines the configuration options for a Worker.
type WorkerConfig struct {
	MaxNumberOfMessages int32
	WaitTimeSeconds     int32
	PoolSize            int
	// ErrorBackoff is the pause after a failed receive call.
	ErrorBackoff time.Duration
}

// WorkerHealth reports whether the polling loop is alive and its last receive error.
type WorkerHealth struct {
	Status  HealthStatus
	Details map[string]string
}

// Worker long-polls a queue and hands messages to a Handler.
type Worker struct {
	client    Client
	queueName string
	queueURL  string
	config    WorkerConfig
	handler   Handler

	running   atomic.Bool
	processed atomic.Int64
	failed    atomic.Int64
	lastError atomic.Value
}

// NewWorker resolves the queue URL and validates the configuration.
// Zero values default to 10 messages, 20 seconds of wait time and a pool of 1.
func NewWorker(ctx context.Context, client Client, queueName string, handler Handler, config *WorkerConfig) (*Worker, error) {
	cfg := WorkerConfig{MaxNumberOfMessages: 10, WaitTimeSeconds: 20, PoolSize: 1, ErrorBackoff: 5 * time.Second}
	if config != nil {
		if config.MaxNumberOfMessages != 0 {
			cfg.MaxNumberOfMessages = config.MaxNumberOfMessages
		}
		if config.WaitTimeSeconds != 0 {
			cfg.WaitTimeSeconds = config.WaitTimeSeconds
		}
		if config.PoolSize != 0 {
			cfg.PoolSize = config.PoolSize
		}
		if config.ErrorBackoff != 0 {
			cfg.ErrorBackoff = config.ErrorBackoff
		}
	}

	if cfg.MaxNumberOfMessages < 1 || cfg.MaxNumberOfMessages > 10 {
		return nil, errors.New("maxNumberOfMessages must be between 1 and 10")
	}
	if cfg.WaitTimeSeconds < 1 || cfg.WaitTimeSeconds > 20 {
		return nil, errors.New("waitTimeSeconds must be between 1 and 20")
	}
	if cfg.PoolSize < 1 {
		return nil, errors.New("poolSize must be greater than 0")
	}

	queueURL, err := resolveQueueURL(ctx, client, queueName)
	if err != nil {
		return nil, fmt.Errorf("unable to get queue URL: %w", err)
	}

	return &Worker{
		client:    client,
		queueName: queueName,
		queueURL:  queueURL,
		config:    cfg,
		handler:   handler,
	}, nil
}

// Start polls with PoolSize goroutines and blocks until ctx is canceled.
func (w *Worker) Start(ctx context.Context) {
	var wg sync.WaitGroup
	w.running.Store(true)
	defer w.running.Store(false)

	for i := 0; i < w.config.PoolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.pollMessages(ctx)
		}()
	}

	wg.Wait()
}

func (w *Worker) pollMessages(ctx context.Context) {
	for ctx.Err() == nil {
		output, err := w.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(w.queueURL),
			MaxNumberOfMessages: w.config.MaxNumberOfMessages,
			WaitTimeSeconds:     w.config.WaitTimeSeconds,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.lastError.Store(err.Error())
			log.Error("Failed to receive messages", zap.String("queue", w.queueName), zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.config.ErrorBackoff):
			}
			continue
		}

		for _, msg := range output.Messages {
			w.handleMessage(ctx, msg)
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg types.Message) {
	messageID := aws.ToString(msg.MessageId)

	if err := w.handler.HandleMessage(ctx, msg); err != nil {
		w.failed.Add(1)
		log.Error("Failed to process message",
			zap.String("queue", w.queueName),
			zap.String("message_id", messageID),
			zap.Error(err))
		return
	}
	w.processed.Add(1)

	_, err := w.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(w.queueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Error("Failed to delete message",
			zap.String("queue", w.queueName),
			zap.String("message_id", messageID),
			zap.Error(err))
		return
	}
	log.Debug("Message processed", zap.String("queue", w.queueName), zap.String("message_id", messageID))
}

// HealthCheck reports the worker as up while its polling loop runs.
func (w *Worker) HealthCheck() WorkerHealth {
	status := StatusDown
	if w.running.Load() {
		status = StatusUp
	}

	details := map[string]string{
		"queue":     w.queueName,
		"processed": strconv.FormatInt(w.processed.Load(), 10),
		"failed":    strconv.FormatInt(w.failed.Load(), 10),
	}
	if lastError, ok := w.lastError.Load().(string); ok {
		details["last_error"] = lastError
	}

	return WorkerHealth{Status: status, Details: details}
}
