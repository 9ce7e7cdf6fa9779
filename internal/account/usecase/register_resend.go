package usecase

import (
	"context"

	"github.com/shandysiswandi/backlink/internal/pkg/goerror"
)

type RegisterResendInput struct {
	Phone string `validate:"required,e164"`
}

func (s *Usecase) RegisterResend(ctx context.Context, in RegisterResendInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterResend")
	defer span.End()

	in.Phone = normalizePhone(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	res, err := s.registry.Resend(ctx, in.Phone)
	if err != nil {
		return nil, s.mapOTPError(ctx, "resend", in.Phone, err)
	}

	s.recordOutcome(ctx, "resend", "issued")
	return &RegisterOutput{Phone: res.Subject, ExpiresAt: res.ExpiresAt}, nil
}
