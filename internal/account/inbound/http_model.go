package inbound

import (
	"time"

	"github.com/shandysiswandi/backlink/internal/account/entity"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (RegisterResponse) Message() string {
	return "Verification code sent. Please check your phone."
}

type RegisterResendRequest struct {
	Phone string `json:"phone"`
}

type RegisterResendResponse struct {
	Phone     string    `json:"phone"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (RegisterResendResponse) Message() string {
	return "A new verification code has been sent."
}

type RegisterVerifyRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type RegisterVerifyResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

func (RegisterVerifyResponse) Message() string {
	return "Phone number verified. Registration complete."
}

type UserResponse struct {
	ID              int64     `json:"id,string"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	PhoneVerifiedAt time.Time `json:"phone_verified_at"`
	CreatedAt       time.Time `json:"created_at"`
}

func toUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Phone:           u.Phone,
		Role:            u.Role.String(),
		PhoneVerifiedAt: u.PhoneVerifiedAt,
		CreatedAt:       u.CreatedAt,
	}
}
