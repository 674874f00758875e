package mail

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"weather-reminder/internal/domain/model"
)

func forecastMessage(to ...string) model.MailMessage {
	return model.MailMessage{
		To:      to,
		Subject: "You weather forecast.",
		Attachments: []model.MailAttachment{{
			Filename:    "forecast.json",
			ContentType: "application/json",
			Content:     []byte(`[{"name":"City_40_40"}]`),
		}},
	}
}

func TestSMTPSenderBuildMsg(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{Host: "localhost", From: "noreply@weather.test"})

	msg, err := sender.buildMsg(forecastMessage("user@example.com"))
	if err != nil {
		t.Fatalf("buildMsg: %v", err)
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	raw := buf.String()

	for _, want := range []string{"noreply@weather.test", "user@example.com", "You weather forecast.", "forecast.json", "application/json"} {
		if !strings.Contains(raw, want) {
			t.Errorf("message does not contain %q:\n%s", want, raw)
		}
	}
}

func TestSMTPSenderRejectsMalformedRecipient(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{Host: "localhost", From: "noreply@weather.test"})

	err := sender.Send(context.Background(), forecastMessage("not an address"))
	var deliveryErr *DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Fatalf("err = %v, want *DeliveryError", err)
	}
	if deliveryErr.Recipient != "not an address" || !deliveryErr.Permanent {
		t.Errorf("delivery error = %+v, want permanent failure for %q", deliveryErr, "not an address")
	}

	if _, err := sender.buildMsg(model.MailMessage{Subject: "x"}); err == nil {
		t.Error("expected error without recipients")
	}
}

type fakeQueue struct {
	queueName string
	bodies    []any
	err       error
}

func (f *fakeQueue) SendMessage(_ context.Context, queueName string, body any) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.queueName = queueName
	f.bodies = append(f.bodies, body)
	return "message-1", nil
}

func TestQueueSender(t *testing.T) {
	queue := &fakeQueue{}
	sender := NewQueueSender(queue, "weather-mail", "noreply@weather.test")

	if err := sender.Send(context.Background(), forecastMessage("user@example.com")); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if queue.queueName != "weather-mail" || len(queue.bodies) != 1 {
		t.Fatalf("queue = %+v", queue)
	}
	message := queue.bodies[0].(model.MailMessage)
	if message.From != "noreply@weather.test" || message.Attachments[0].Filename != "forecast.json" {
		t.Errorf("enqueued message = %+v", message)
	}
}

func TestQueueSenderWrapsErrors(t *testing.T) {
	broker := errors.New("broker down")
	sender := NewQueueSender(&fakeQueue{err: broker}, "weather-mail", "noreply@weather.test")

	err := sender.Send(context.Background(), forecastMessage("user@example.com"))
	var deliveryErr *DeliveryError
	if !errors.As(err, &deliveryErr) || !errors.Is(err, broker) {
		t.Fatalf("err = %v", err)
	}
	if err := sender.Send(context.Background(), model.MailMessage{}); err == nil {
		t.Fatal("expected error without recipients")
	}
}
