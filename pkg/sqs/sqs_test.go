package sqs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type fakeClient struct {
	mu           sync.Mutex
	urlLookups   int
	sent         []string
	pending      []types.Message
	deleted      []string
	receiveCalls int
}

func (f *fakeClient) GetQueueUrl(_ context.Context, params *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urlLookups++
	if aws.ToString(params.QueueName) == "missing" {
		return nil, errors.New("queue does not exist")
	}
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String("https://sqs.local/" + aws.ToString(params.QueueName))}, nil
}

func (f *fakeClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, aws.ToString(params.MessageBody))
	return &sqs.SendMessageOutput{MessageId: aws.String("id-1")}, nil
}

func (f *fakeClient) ReceiveMessage(ctx context.Context, _ *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	f.receiveCalls++
	messages := f.pending
	f.pending = nil
	f.mu.Unlock()
	if len(messages) == 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
	return &sqs.ReceiveMessageOutput{Messages: messages}, nil
}

func (f *fakeClient) DeleteMessage(_ context.Context, params *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(params.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func TestSenderCachesQueueURL(t *testing.T) {
	client := &fakeClient{}
	sender := NewSender(client)

	for i := 0; i < 3; i++ {
		id, err := sender.SendMessage(context.Background(), "mail", map[string]string{"to": "a@b.c"})
		if err != nil {
			t.Fatalf("SendMessage: %v", err)
		}
		if id != "id-1" {
			t.Fatalf("message id = %q", id)
		}
	}

	if client.urlLookups != 1 {
		t.Errorf("queue URL resolved %d times, want 1", client.urlLookups)
	}
	if len(client.sent) != 3 || client.sent[0] != `{"to":"a@b.c"}` {
		t.Errorf("sent = %v", client.sent)
	}
}

func TestSenderUnknownQueue(t *testing.T) {
	if _, err := NewSender(&fakeClient{}).SendMessage(context.Background(), "missing", "x"); err == nil {
		t.Fatal("expected error for unknown queue")
	}
}

func TestNewWorkerValidation(t *testing.T) {
	handler := HandlerFunc(func(context.Context, types.Message) error { return nil })
	if _, err := NewWorker(context.Background(), &fakeClient{}, "mail", handler, &WorkerConfig{MaxNumberOfMessages: 11}); err == nil {
		t.Error("expected error for 11 messages")
	}
	if _, err := NewWorker(context.Background(), &fakeClient{}, "mail", handler, &WorkerConfig{WaitTimeSeconds: 21}); err == nil {
		t.Error("expected error for 21 seconds")
	}
	if _, err := NewWorker(context.Background(), &fakeClient{}, "missing", handler, nil); err == nil {
		t.Error("expected error for unknown queue")
	}
}

func TestWorkerDeletesOnlyHandledMessages(t *testing.T) {
	client := &fakeClient{pending: []types.Message{
		{MessageId: aws.String("1"), ReceiptHandle: aws.String("r1"), Body: aws.String("ok")},
		{MessageId: aws.String("2"), ReceiptHandle: aws.String("r2"), Body: aws.String("fail")},
	}}

	handled := make(chan string, 2)
	handler := HandlerFunc(func(_ context.Context, msg types.Message) error {
		handled <- aws.ToString(msg.Body)
		if aws.ToString(msg.Body) == "fail" {
			return errors.New("boom")
		}
		return nil
	})

	worker, err := NewWorker(context.Background(), client, "mail", handler, nil)
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	for i := 0; i < 2; i++ {
		select {
		case <-handled:
		case <-time.After(2 * time.Second):
			t.Fatal("messages were not handled")
		}
	}

	deadline := time.Now().Add(time.Second)
	for worker.HealthCheck().Details["failed"] != "1" && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if health := worker.HealthCheck(); health.Status != StatusUp {
		t.Errorf("running worker status = %s", health.Status)
	}

	cancel()
	<-done

	client.mu.Lock()
	defer client.mu.Unlock()
	if len(client.deleted) != 1 || client.deleted[0] != "r1" {
		t.Errorf("deleted = %v, want [r1]", client.deleted)
	}
	health := worker.HealthCheck()
	if health.Status != StatusDown || health.Details["processed"] != "1" || health.Details["failed"] != "1" {
		t.Errorf("health after stop = %+v", health)
	}
}
