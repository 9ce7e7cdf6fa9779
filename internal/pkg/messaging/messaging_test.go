package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

func TestNewConsumeOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []ConsumeOption
		want consumeOptions
	}{
		{
			name: "defaults",
			want: consumeOptions{concurrency: 1, buffer: 1},
		},
		{
			name: "all set",
			opts: []ConsumeOption{WithConcurrency(4), WithQueueGroup("g"), WithAutoAck(true), WithBuffer(16), nil},
			want: consumeOptions{concurrency: 4, queueGroup: "g", autoAck: true, buffer: 16},
		},
		{
			name: "negative concurrency",
			opts: []ConsumeOption{WithConcurrency(-1)},
			want: consumeOptions{concurrency: 1, buffer: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newConsumeOptions(tt.opts...); got != tt.want {
				t.Fatalf("newConsumeOptions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNATSMessage_Accessors(t *testing.T) {
	// Arrange
	raw := nats.NewMsg("otp_issued")
	raw.Data = []byte(`{"phone":"+1"}`)
	raw.Header.Add("cID", "abc")
	raw.Header.Add("cID", "def")
	at := time.Unix(1700000000, 0)

	// Act
	msg := newNATSMessage(raw, at)

	// Assert
	if string(msg.Body()) != `{"phone":"+1"}` {
		t.Fatalf("Body() = %s", msg.Body())
	}
	if msg.Header("cID") != "abc" {
		t.Fatalf("Header() = %q", msg.Header("cID"))
	}
	if len(msg.Headers()) != 2 {
		t.Fatalf("Headers() = %v", msg.Headers())
	}
	if msg.Subject() != "otp_issued" || !msg.Timestamp().Equal(at) {
		t.Fatalf("Subject/Timestamp = %s %s", msg.Subject(), msg.Timestamp())
	}
}

func TestNATSMessage_AckWithoutReplyIsNoop(t *testing.T) {
	msg := newNATSMessage(&nats.Msg{Subject: "s"}, time.Now())

	if err := msg.Ack(context.Background()); err != nil {
		t.Fatalf("Ack() error = %v", err)
	}
	if err := msg.Nack(context.Background()); err != nil {
		t.Fatalf("Nack() after Ack error = %v", err)
	}
	if !msg.responded.Load() {
		t.Fatalf("expected message to be marked as responded")
	}
}

func TestNATSMessage_AckCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg := newNATSMessage(&nats.Msg{Subject: "s"}, time.Now())
	if err := msg.Ack(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Ack() error = %v, want context.Canceled", err)
	}
	if msg.responded.Load() {
		t.Fatalf("canceled ack must not mark the message as responded")
	}
}

func TestCallHandler_RecoversPanic(t *testing.T) {
	err := callHandler(context.Background(), "otp_issued", func() error {
		panic("boom")
	})
	if err == nil {
		t.Fatalf("expected error from panicking handler")
	}

	errBoom := errors.New("boom")
	if err := callHandler(context.Background(), "s", func() error { return errBoom }); !errors.Is(err, errBoom) {
		t.Fatalf("callHandler() error = %v, want %v", err, errBoom)
	}
}

func TestNewNATS_RequiresURL(t *testing.T) {
	if _, err := NewNATS(NATSConfig{}); !errors.Is(err, ErrNATSURLRequired) {
		t.Fatalf("NewNATS() error = %v, want %v", err, ErrNATSURLRequired)
	}
}
