package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/backlink/internal/account/entity"
	"github.com/shandysiswandi/backlink/internal/pkg/goerror"
	"github.com/shandysiswandi/backlink/internal/pkg/hash"
)

type RegisterInput struct {
	Username string `validate:"required,username"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,password"`
	Phone    string `validate:"required,e164"`
	Role     string `validate:"required,oneof=buyer publisher"`
}

type RegisterOutput struct {
	Phone     string
	ExpiresAt time.Time
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Phone = normalizePhone(in.Phone)
	in.Role = entity.RoleFromString(in.Role).String()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.ensureAvailable(ctx, in); err != nil {
		return nil, err
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if errors.Is(err, hash.ErrPasswordTooLong) {
		return nil, goerror.NewInvalidInput(nil, "password", "password is too long")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	res, err := s.registry.Request(ctx, in.Phone, entity.PendingRegistration{
		Username:     in.Username,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: string(hashedPassword),
		Role:         entity.Role(in.Role),
	})
	if err != nil {
		return nil, s.mapOTPError(ctx, "register", in.Phone, err)
	}

	s.recordOutcome(ctx, "register", "issued")
	return &RegisterOutput{Phone: res.Subject, ExpiresAt: res.ExpiresAt}, nil
}

func (s *Usecase) ensureAvailable(ctx context.Context, in RegisterInput) error {
	checks := []struct {
		field string
		value string
		msg   string
		get   func(context.Context, string) (*entity.User, error)
	}{
		{field: "username", value: in.Username, msg: "Username already taken", get: s.repoDB.GetUserByUsername},
		{field: "email", value: in.Email, msg: "Email already registered", get: s.repoDB.GetUserByEmail},
		{field: "phone", value: in.Phone, msg: "Phone number already registered", get: s.repoDB.GetUserByPhone},
	}

	for _, c := range checks {
		_, err := c.get(ctx, c.value)
		if err == nil {
			return goerror.NewBusiness(c.msg, goerror.CodeConflict, c.field, "already registered")
		}
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get user by "+c.field, c.field, c.value, "error", err)
			return goerror.NewServer(err)
		}
	}

	return nil
}
