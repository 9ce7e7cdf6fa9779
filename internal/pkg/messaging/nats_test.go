package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startNATS(t *testing.T) *NATS {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	ctr, err := testcontainers.Run(ctx, "nats:2.10-alpine",
		testcontainers.WithExposedPorts("4222/tcp"),
		testcontainers.WithWaitStrategy(wait.ForListeningPort("4222/tcp")),
	)
	testcontainers.CleanupContainer(t, ctr)
	if err != nil {
		t.Fatalf("start nats container: %v", err)
	}

	url, err := ctr.PortEndpoint(ctx, "4222/tcp", "nats")
	if err != nil {
		t.Fatalf("nats endpoint: %v", err)
	}

	n, err := NewNATS(NATSConfig{URL: url, Options: []nats.Option{nats.Name("messaging-test")}})
	if err != nil {
		t.Fatalf("NewNATS() error = %v", err)
	}
	t.Cleanup(func() { _ = n.Close() })

	return n
}

func TestNATS_PublishConsume(t *testing.T) {
	// Arrange
	n := startNATS(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	got := make(chan Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- n.Consume(ctx, "otp_issued", func(_ context.Context, msg Message) error {
			got <- msg
			return nil
		}, WithQueueGroup("otp_issued_notification"), WithAutoAck(true))
	}()

	// Act
	deadline := time.After(10 * time.Second)
	var msg Message
	for msg == nil {
		if _, err := n.Publish(ctx, "otp_issued", OutgoingMessage{
			Body:    []byte(`{"phone":"+15551234567"}`),
			Headers: []Header{{Key: "cID", Value: []byte("cid-1")}},
		}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		select {
		case msg = <-got:
		case <-time.After(200 * time.Millisecond):
		case <-deadline:
			t.Fatalf("timed out waiting for message")
		}
	}

	// Assert
	if string(msg.Body()) != `{"phone":"+15551234567"}` || msg.Header("cID") != "cid-1" {
		t.Fatalf("message = %s %v", msg.Body(), msg.Headers())
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Consume() error = %v, want context.Canceled", err)
	}
}

func TestNATS_PublishValidation(t *testing.T) {
	n := startNATS(t)

	if _, err := n.Publish(context.Background(), "", OutgoingMessage{}); !errors.Is(err, ErrNATSSubjectRequired) {
		t.Fatalf("Publish() error = %v, want %v", err, ErrNATSSubjectRequired)
	}
	if _, err := n.Publish(context.Background(), "s", OutgoingMessage{Delay: time.Second}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Publish() error = %v, want %v", err, ErrUnsupported)
	}

	if err := n.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := n.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
}
