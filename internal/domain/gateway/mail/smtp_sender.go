package mail

import (
	"bytes"
	"context"
	"errors"
	"time"

	"weather-reminder/internal/domain/model"

	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig holds the outgoing server settings. Auth is plain and only used when Username is set.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// TLSPolicy is one of "mandatory", "opportunistic" or "none".
	TLSPolicy string
	Timeout   time.Duration
	From      string
}

type SMTPSender struct {
	config SMTPConfig
}

var _ Sender = (*SMTPSender)(nil)

func NewSMTPSender(config SMTPConfig) *SMTPSender {
	if config.Port == 0 {
		config.Port = 587
	}
	if config.Timeout <= 0 {
		config.Timeout = 15 * time.Second
	}
	return &SMTPSender{config: config}
}

func (s *SMTPSender) Send(ctx context.Context, message model.MailMessage) error {
	msg, err := s.buildMsg(message)
	if err != nil {
		return &DeliveryError{Recipient: recipients(message), Permanent: true, Err: err}
	}

	client, err := gomail.NewClient(s.config.Host, s.clientOptions()...)
	if err != nil {
		return &DeliveryError{Recipient: recipients(message), Err: err}
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return &DeliveryError{Recipient: recipients(message), Err: err}
	}
	return nil
}

func (s *SMTPSender) clientOptions() []gomail.Option {
	options := []gomail.Option{
		gomail.WithPort(s.config.Port),
		gomail.WithTimeout(s.config.Timeout),
	}

	switch s.config.TLSPolicy {
	case "none":
		options = append(options, gomail.WithTLSPolicy(gomail.NoTLS))
	case "opportunistic":
		options = append(options, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	default:
		options = append(options, gomail.WithTLSPolicy(gomail.TLSMandatory))
	}

	if s.config.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.config.Username),
			gomail.WithPassword(s.config.Password),
		)
	}
	return options
}

// buildMsg validates the addresses and assembles the MIME message.
func (s *SMTPSender) buildMsg(message model.MailMessage) (*gomail.Msg, error) {
	if len(message.To) == 0 {
		return nil, errors.New("message has no recipient")
	}

	from := message.From
	if from == "" {
		from = s.config.From
	}

	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, err
	}
	if err := msg.To(message.To...); err != nil {
		return nil, err
	}
	msg.Subject(message.Subject)
	msg.SetBodyString(gomail.TypeTextPlain, message.Body)

	for _, attachment := range message.Attachments {
		err := msg.AttachReader(attachment.Filename, bytes.NewReader(attachment.Content),
			gomail.WithFileContentType(gomail.ContentType(attachment.ContentType)))
		if err != nil {
			return nil, err
		}
	}
	return msg, nil
}
