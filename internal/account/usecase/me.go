package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/backlink/internal/account/entity"
	"github.com/shandysiswandi/backlink/internal/pkg/goerror"
	"github.com/shandysiswandi/backlink/internal/pkg/jwt"
)

func (s *Usecase) Me(ctx context.Context) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "Me")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "authenticated user not found", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return user, nil
}
