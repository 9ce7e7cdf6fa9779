// Package jwt signs and verifies the HS512 access tokens returned after a
// phone number is verified, and carries their claims through request contexts.
package jwt
