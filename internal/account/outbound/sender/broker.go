package sender

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/backlink/internal/pkg/instrument"
	"github.com/shandysiswandi/backlink/internal/pkg/messaging"
	"github.com/shandysiswandi/backlink/internal/pkg/otp"
	"github.com/shandysiswandi/backlink/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

// Broker hands verification codes to the notification module over the broker.
type Broker struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewBroker(client messaging.Publisher, ins instrument.Instrumentation) *Broker {
	return &Broker{client: client, ins: ins}
}

func (b *Broker) Send(ctx context.Context, d otp.Delivery) error {
	ctx, span := b.ins.Tracer("account.outbound.sender").Start(ctx, "Broker.Send")
	defer span.End()

	body, err := json.Marshal(event.OTPIssuedMessage{
		Phone:     d.Subject,
		Code:      d.Code,
		ExpiresAt: d.ExpiresAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := b.client.Publish(ctx, event.OTPIssuedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: event.HeaderCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
