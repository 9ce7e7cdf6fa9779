package jwt

import "context"

type claimsKey struct{}

// SetAuth returns a copy of ctx carrying clm.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, clm)
}

// GetAuth returns the claims stored by SetAuth, or nil for anonymous requests.
func GetAuth(ctx context.Context) *Claims {
	if clm, ok := ctx.Value(claimsKey{}).(Claims); ok {
		return &clm
	}
	return nil
}
