package inbound

import (
	"context"

	"github.com/shandysiswandi/backlink/internal/account/entity"
	"github.com/shandysiswandi/backlink/internal/account/usecase"
	"github.com/shandysiswandi/backlink/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	RegisterResend(ctx context.Context, in usecase.RegisterResendInput) (*usecase.RegisterOutput, error)
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) (*usecase.RegisterVerifyOutput, error)

	Me(ctx context.Context) (*entity.User, error)
}

// PublicRoutes lists the endpoints reachable without a bearer token.
var PublicRoutes = []string{
	"POST /api/v1/auth/register",
	"POST /api/v1/auth/verify-otp",
	"POST /api/v1/auth/resend-otp",
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/verify-otp", end.RegisterVerify)
	r.POST("/api/v1/auth/resend-otp", end.RegisterResend)

	r.GET("/api/v1/account/me", end.Me)
}
