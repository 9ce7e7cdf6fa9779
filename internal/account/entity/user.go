package entity

import "time"

type User struct {
	ID              int64
	Username        string
	Email           string
	Phone           string
	PasswordHash    string
	Role            Role
	PhoneVerifiedAt time.Time
	CreatedAt       time.Time
}

// PendingRegistration is held by the OTP registry until the phone is verified.
type PendingRegistration struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"password_hash"`
	Role         Role   `json:"role"`
}
