package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidSigningMethod = errors.New("jwt: unexpected signing method")
	ErrSigningKeyTooShort   = errors.New("jwt: HS512 key must be at least 64 bytes")
	ErrTokenExpired         = errors.New("jwt: token expired")
	ErrInvalidToken         = errors.New("jwt: invalid token")
)

// JWT issues access tokens for verified accounts and validates them on
// authenticated routes.
type JWT interface {
	Generate(sub Subject) (string, error)
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

// Config holds the signing key and the registered claim values stamped on
// every token. Clock and UUID are required.
type Config struct {
	Secret    []byte
	Issuer    string
	Audiences []string
	TTL       time.Duration
	Clock     clocker
	UUID      generator
}

// Subject is the account a token is issued for.
type Subject struct {
	UserID int64
	Phone  string
	Role   string
}

// Claims are the registered claims plus the account fields carried in the
// token body.
type Claims struct {
	jwt.RegisteredClaims

	UserID int64  `json:"user_id,string"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
}
