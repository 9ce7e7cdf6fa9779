package inbound

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/backlink/internal/notification/usecase"
	"github.com/shandysiswandi/backlink/internal/pkg/config"
	"github.com/shandysiswandi/backlink/internal/pkg/instrument"
	"github.com/shandysiswandi/backlink/internal/pkg/messaging"
	"github.com/shandysiswandi/backlink/internal/shared/event"
)

type fakeMessage struct {
	body    []byte
	headers map[string]string
}

func (m fakeMessage) Body() []byte { return m.body }

func (m fakeMessage) Headers() []messaging.Header {
	out := make([]messaging.Header, 0, len(m.headers))
	for k, v := range m.headers {
		out = append(out, messaging.Header{Key: k, Value: []byte(v)})
	}
	return out
}

func (m fakeMessage) Header(key string) string { return m.headers[key] }

func (fakeMessage) Subject() string { return event.OTPIssuedDestination }

func (fakeMessage) Timestamp() time.Time { return time.Time{} }

func (fakeMessage) Ack(context.Context) error { return nil }

func (fakeMessage) Nack(context.Context) error { return nil }

type fakeUC struct {
	in  usecase.ConsumeOTPIssuedInput
	cID string
	err error
}

func (f *fakeUC) ConsumeOTPIssued(ctx context.Context, in usecase.ConsumeOTPIssuedInput) error {
	f.in = in
	f.cID = instrument.GetCorrelationID(ctx)
	return f.err
}

type staticID string

func (s staticID) Generate() string { return string(s) }

func TestMQHandler_OTPIssuedNotification(t *testing.T) {
	tests := []struct {
		name    string
		msg     fakeMessage
		ucErr   error
		wantErr bool
		wantCID string
		called  bool
	}{
		{
			name: "forwards payload with correlation id",
			msg: fakeMessage{
				body:    []byte(`{"phone":"+6281234567890","code":"482913","expires_at":"2026-01-01T09:10:00Z"}`),
				headers: map[string]string{event.HeaderCorrelationID: "cid-1"},
			},
			wantCID: "cid-1",
			called:  true,
		},
		{
			name:    "generates correlation id",
			msg:     fakeMessage{body: []byte(`{"phone":"+6281234567890","code":"482913"}`)},
			wantCID: "generated",
			called:  true,
		},
		{
			name: "malformed body is acknowledged",
			msg:  fakeMessage{body: []byte(`not json`)},
		},
		{
			name:    "send failure is returned for redelivery",
			msg:     fakeMessage{body: []byte(`{"phone":"+6281234567890","code":"482913"}`)},
			ucErr:   errors.New("sms down"),
			wantErr: true,
			wantCID: "generated",
			called:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			uc := &fakeUC{err: tt.ucErr}
			h := &MQHandler{uc: uc, uuid: staticID("generated"), ins: instrument.NewNoop()}

			// Act
			err := h.OTPIssuedNotification(context.Background(), tt.msg)

			// Assert
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.called {
				if uc.in.Phone != "" {
					t.Fatalf("usecase must not be called, got %+v", uc.in)
				}
				return
			}
			if uc.in.Phone != "+6281234567890" || uc.in.Code != "482913" {
				t.Fatalf("input = %+v", uc.in)
			}
			if uc.cID != tt.wantCID {
				t.Fatalf("correlation id = %q, want %q", uc.cID, tt.wantCID)
			}
		})
	}
}

func TestConsumers(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		wantNames []string
		wantConc  int
	}{
		{name: "all by default", yaml: "modules: {notification: {enabled: true}}", wantNames: []string{event.OTPIssuedConsumerNotification}, wantConc: 1},
		{name: "selected", yaml: "modules: {notification: {consumer_names: otp_issued_notification, concurrency: 4}}", wantNames: []string{event.OTPIssuedConsumerNotification}, wantConc: 4},
		{name: "none matching", yaml: "modules: {notification: {consumer_names: other}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cfg, err := config.NewViperFromBytes("yaml", []byte(tt.yaml))
			if err != nil {
				t.Fatalf("NewViperFromBytes() error = %v", err)
			}

			// Act
			got := consumers(&MQHandler{}, cfg)

			// Assert
			if len(got) != len(tt.wantNames) {
				t.Fatalf("consumers = %d, want %d", len(got), len(tt.wantNames))
			}
			for i, c := range got {
				if c.name != tt.wantNames[i] || c.topic != event.OTPIssuedDestination || c.concurrency != tt.wantConc {
					t.Fatalf("consumer = %+v", c)
				}
			}
		})
	}
}
