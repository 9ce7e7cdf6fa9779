package sender

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/backlink/internal/pkg/instrument"
	"github.com/shandysiswandi/backlink/internal/pkg/otp"
	"github.com/shandysiswandi/backlink/internal/pkg/sms"
	"go.opentelemetry.io/otel/codes"
)

// SMS delivers verification codes as text messages through an SMS provider.
type SMS struct {
	client  sms.SMS
	appName string
	ins     instrument.Instrumentation
}

func NewSMS(client sms.SMS, appName string, ins instrument.Instrumentation) *SMS {
	return &SMS{client: client, appName: appName, ins: ins}
}

func (s *SMS) Send(ctx context.Context, d otp.Delivery) error {
	ctx, span := s.ins.Tracer("account.outbound.sender").Start(ctx, "SMS.Send")
	defer span.End()

	id, err := s.client.Send(ctx, d.Subject, sms.VerificationText(s.appName, d.Code, d.TTL()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	slog.DebugContext(ctx, "verification sms sent", "phone", d.Subject, "message_id", id)
	return nil
}
