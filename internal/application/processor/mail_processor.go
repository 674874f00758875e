package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"weather-reminder/internal/domain/gateway/mail"
	"weather-reminder/internal/domain/model"
	"weather-reminder/pkg/log"
	"weather-reminder/pkg/msg"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
)

// MailProcessor delivers the mail messages enqueued by the notifier.
type MailProcessor struct {
	sender mail.Sender
}

func NewMailProcessor(sender mail.Sender) *MailProcessor {
	return &MailProcessor{
		sender: sender,
	}
}

// HandleMessage implements the sqs.Handler interface. A returned error leaves the message on the queue for redelivery,
// so only transport failures are returned. Messages that can never be delivered are logged and dropped.
func (p *MailProcessor) HandleMessage(ctx context.Context, message types.Message) error {
	messageID := aws.ToString(message.MessageId)
	if message.Body == nil {
		log.Error("Dropping mail message without body", zap.String("message_id", messageID))
		return nil
	}

	var mailMessage model.MailMessage
	if err := json.Unmarshal([]byte(*message.Body), &mailMessage); err != nil {
		log.Error("Dropping malformed mail message", zap.String("message_id", messageID), zap.Error(err))
		return nil
	}

	if err := p.sender.Send(ctx, mailMessage); err != nil {
		var deliveryErr *mail.DeliveryError
		if errors.As(err, &deliveryErr) && deliveryErr.Permanent {
			log.Error("Dropping undeliverable mail message",
				zap.String("message_id", messageID),
				zap.String("recipient", deliveryErr.Recipient),
				zap.Error(err))
			return nil
		}
		return fmt.Errorf("failed to deliver mail message %s: %w", messageID, err)
	}

	for _, to := range mailMessage.To {
		log.Info(msg.GetMessage("mail.sent", to), zap.String("message_id", messageID))
	}
	return nil
}
