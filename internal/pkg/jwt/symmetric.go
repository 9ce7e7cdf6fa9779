package jwt

import (
	"errors"
	"strconv"

	libJWT "github.com/golang-jwt/jwt/v5"
)

const minHS512KeyLen = 64

// Symmetric signs and checks HS512 tokens with a shared secret.
type Symmetric struct {
	cfg    Config
	parser *libJWT.Parser
}

// NewHS512 returns a Symmetric bound to cfg. The secret must be at least 512 bits.
func NewHS512(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) < minHS512KeyLen {
		return nil, ErrSigningKeyTooShort
	}

	parser := libJWT.NewParser(
		libJWT.WithIssuer(cfg.Issuer),
		libJWT.WithAudience(cfg.Audiences...),
		libJWT.WithValidMethods([]string{libJWT.SigningMethodHS512.Alg()}),
		libJWT.WithIssuedAt(),
		libJWT.WithExpirationRequired(),
		libJWT.WithTimeFunc(cfg.Clock.Now),
	)

	return &Symmetric{cfg: cfg, parser: parser}, nil
}

func (s *Symmetric) claimsFor(sub Subject) Claims {
	now := s.cfg.Clock.Now()

	return Claims{
		RegisteredClaims: libJWT.RegisteredClaims{
			ID:        s.cfg.UUID.Generate(),
			Subject:   strconv.FormatInt(sub.UserID, 10),
			Issuer:    s.cfg.Issuer,
			Audience:  s.cfg.Audiences,
			IssuedAt:  libJWT.NewNumericDate(now),
			NotBefore: libJWT.NewNumericDate(now),
			ExpiresAt: libJWT.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		UserID: sub.UserID,
		Phone:  sub.Phone,
		Role:   sub.Role,
	}
}

// Generate returns a signed access token for sub valid for cfg.TTL.
func (s *Symmetric) Generate(sub Subject) (string, error) {
	return libJWT.NewWithClaims(libJWT.SigningMethodHS512, s.claimsFor(sub)).SignedString(s.cfg.Secret)
}

func (s *Symmetric) key(t *libJWT.Token) (any, error) {
	if _, ok := t.Method.(*libJWT.SigningMethodHMAC); !ok {
		return nil, ErrInvalidSigningMethod
	}
	return s.cfg.Secret, nil
}

// Verify checks signature, issuer, audience and lifetime, and returns the claims.
func (s *Symmetric) Verify(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := s.parser.ParseWithClaims(tokenStr, &claims, s.key)
	switch {
	case errors.Is(err, libJWT.ErrTokenExpired):
		return Claims{}, ErrTokenExpired
	case err != nil:
		return Claims{}, err
	case !token.Valid:
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
