package channels_test

import (
	"context"
	"errors"
	"testing"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/notification"
	"notifyservice/internal/infrastructure/channels"
)

func TestSendRecordsHistory(t *testing.T) {
	hub := channels.NewHub(nil)
	ctx := context.Background()

	if err := hub.Send(ctx, notification.ChannelEmail, "a@example.com", "Order shipped", "body"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := hub.Send(ctx, notification.ChannelSMS, "+15550001", "", "short body"); err != nil {
		t.Fatalf("send: %v", err)
	}

	sent := hub.Sent()
	if len(sent) != 2 {
		t.Fatalf("history length = %d, want 2", len(sent))
	}
	if sent[0].Channel != notification.ChannelEmail || sent[0].Recipient != "a@example.com" || !sent[0].OK {
		t.Fatalf("unexpected first record: %+v", sent[0])
	}
	if sent[1].Channel != notification.ChannelSMS || sent[1].Body != "short body" {
		t.Fatalf("unexpected second record: %+v", sent[1])
	}
}

func TestSendUnknownChannel(t *testing.T) {
	hub := channels.NewHub(nil)

	err := hub.Send(context.Background(), notification.Channel("pigeon"), "x", "s", "b")
	var derr *domain.DomainError
	if !errors.As(err, &derr) || derr.Code != domain.ErrorCodeUnknownChannel {
		t.Fatalf("expected UNKNOWN_CHANNEL error, got %v", err)
	}
	if hub.SentCount() != 0 {
		t.Fatalf("unknown channel must not be recorded, history = %d", hub.SentCount())
	}
}

func TestFailChannelInjectsAndRestores(t *testing.T) {
	hub := channels.NewHub(nil)
	ctx := context.Background()
	boom := errors.New("gateway down")

	hub.FailChannel(notification.ChannelSMS, boom)
	if err := hub.Send(ctx, notification.ChannelSMS, "+15550001", "", "b"); !errors.Is(err, boom) {
		t.Fatalf("expected injected failure, got %v", err)
	}
	if err := hub.Send(ctx, notification.ChannelEmail, "a@example.com", "s", "b"); err != nil {
		t.Fatalf("email must be unaffected: %v", err)
	}

	sent := hub.Sent()
	if len(sent) != 2 || sent[0].OK || !sent[1].OK {
		t.Fatalf("failed attempts must still be recorded: %+v", sent)
	}

	hub.FailChannel(notification.ChannelSMS, nil)
	if err := hub.Send(ctx, notification.ChannelSMS, "+15550001", "", "b"); err != nil {
		t.Fatalf("channel must be restored: %v", err)
	}
}

func TestReset(t *testing.T) {
	hub := channels.NewHub(nil)
	_ = hub.Send(context.Background(), notification.ChannelEmail, "a@example.com", "s", "b")
	hub.Reset()
	if hub.SentCount() != 0 {
		t.Fatalf("history not cleared, count = %d", hub.SentCount())
	}
}
