package inbound

import (
	"github.com/shandysiswandi/backlink/internal/account/usecase"
	"github.com/shandysiswandi/backlink/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for phone-verified signup.
type HTTPEndpoint struct {
	uc uc
}

// Register starts a signup and sends a verification code to the phone.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	return RegisterResponse{Phone: resp.Phone, ExpiresAt: resp.ExpiresAt}, nil
}

// RegisterResend replaces the pending code with a new one.
func (h *HTTPEndpoint) RegisterResend(r *router.Request) (any, error) {
	var req RegisterResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterResend(r.Context(), usecase.RegisterResendInput{Phone: req.Phone})
	if err != nil {
		return nil, err
	}

	return RegisterResendResponse{Phone: resp.Phone, ExpiresAt: resp.ExpiresAt}, nil
}

// RegisterVerify checks the code, creates the account and issues an access token.
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req RegisterVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		Phone: req.Phone,
		OTP:   req.OTP,
	})
	if err != nil {
		return nil, err
	}

	return RegisterVerifyResponse{
		AccessToken: resp.AccessToken,
		User:        toUserResponse(resp.User),
	}, nil
}

func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	user, err := h.uc.Me(r.Context())
	if err != nil {
		return nil, err
	}

	return toUserResponse(*user), nil
}
