package mail

import (
	"context"
	"fmt"
	"strings"

	"weather-reminder/internal/domain/model"
)

// Sender delivers one email. Failures are returned as *DeliveryError.
type Sender interface {
	Send(ctx context.Context, message model.MailMessage) error
}

// DeliveryError reports a message that could not be built or handed to the transport.
// Permanent is set when the message itself is invalid, so retrying it cannot succeed.
type DeliveryError struct {
	Recipient string
	Permanent bool
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mail delivery to %s failed: %v", e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

func recipients(message model.MailMessage) string {
	return strings.Join(message.To, ",")
}
