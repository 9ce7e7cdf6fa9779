package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/backlink/internal/pkg/idempotency"
	"github.com/shandysiswandi/backlink/internal/pkg/sms"
)

type ConsumeOTPIssuedInput struct {
	Phone     string    `validate:"required,e164"`
	Code      string    `validate:"required,numeric,len=6"`
	ExpiresAt time.Time `validate:"required"`
}

// ConsumeOTPIssued texts a verification code to its phone number. Invalid and
// already expired messages are dropped; only a failed send returns an error.
func (s *Usecase) ConsumeOTPIssued(ctx context.Context, in ConsumeOTPIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOTPIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	ttl := in.ExpiresAt.Sub(s.clock.Now())
	if ttl <= 0 {
		slog.WarnContext(ctx, "skip sending expired verification code", "phone", in.Phone, "expires_at", in.ExpiresAt)
		return nil
	}

	send := func(ctx context.Context) error {
		id, err := s.sms.Send(ctx, in.Phone, sms.VerificationText(s.appName, in.Code, ttl))
		if err != nil {
			slog.ErrorContext(ctx, "failed to send verification sms", "phone", in.Phone, "error", err)
			return err
		}

		slog.InfoContext(ctx, "verification sms sent", "phone", in.Phone, "message_id", id)
		return nil
	}

	if s.idemp == nil {
		return send(ctx)
	}

	key := "otp_issued:" + in.Phone + ":" + in.ExpiresAt.UTC().Format(time.RFC3339Nano)
	if err := s.idemp.Exec(ctx, key, send); err != nil {
		if errors.Is(err, idempotency.ErrAlreadyCompleted) {
			slog.InfoContext(ctx, "verification sms already handled", "phone", in.Phone)
			return nil
		}
		return err
	}

	return nil
}
