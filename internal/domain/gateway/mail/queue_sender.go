package mail

import (
	"context"
	"errors"

	"weather-reminder/internal/domain/gateway/queue"
	"weather-reminder/internal/domain/model"
	"weather-reminder/pkg/log"

	"go.uber.org/zap"
)

// QueueSender publishes messages to the mail queue. A worker delivers them later over SMTP.
type QueueSender struct {
	sender    queue.Sender
	queueName string
	from      string
}

var _ Sender = (*QueueSender)(nil)

func NewQueueSender(sender queue.Sender, queueName string, from string) *QueueSender {
	return &QueueSender{sender: sender, queueName: queueName, from: from}
}

func (s *QueueSender) Send(ctx context.Context, message model.MailMessage) error {
	if len(message.To) == 0 {
		return &DeliveryError{Err: errors.New("message has no recipient")}
	}
	if message.From == "" {
		message.From = s.from
	}

	messageID, err := s.sender.SendMessage(ctx, s.queueName, message)
	if err != nil {
		return &DeliveryError{Recipient: recipients(message), Err: err}
	}

	log.Debug("Mail enqueued",
		zap.String("queue", s.queueName),
		zap.String("message_id", messageID),
		zap.Strings("to", message.To))
	return nil
}
