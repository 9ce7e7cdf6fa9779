package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/backlink/internal/account/entity"
	"github.com/shandysiswandi/backlink/internal/pkg/goerror"
	"github.com/shandysiswandi/backlink/internal/pkg/jwt"
)

type RegisterVerifyInput struct {
	Phone string `validate:"required,e164"`
	OTP   string `validate:"required,numeric,len=6"`
}

type RegisterVerifyOutput struct {
	AccessToken string
	User        entity.User
}

func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) (*RegisterVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	in.Phone = normalizePhone(in.Phone)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	pending, err := s.registry.Verify(ctx, in.Phone, in.OTP)
	if err != nil {
		return nil, s.mapOTPError(ctx, "verify", in.Phone, err)
	}
	s.recordOutcome(ctx, "verify", "verified")

	now := s.clock.Now()
	user := entity.User{
		ID:              s.uid.Generate(),
		Username:        pending.Username,
		Email:           pending.Email,
		Phone:           pending.Phone,
		PasswordHash:    pending.PasswordHash,
		Role:            pending.Role,
		PhoneVerifiedAt: now,
		CreatedAt:       now,
	}

	err = s.repoDB.CreateUser(ctx, user)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "account created while verification was pending", "phone", user.Phone)
		return nil, goerror.NewBusiness("Account already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "phone", user.Phone, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(jwt.Subject{UserID: user.ID, Phone: user.Phone, Role: user.Role.String()})
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RegisterVerifyOutput{AccessToken: token, User: user}, nil
}
