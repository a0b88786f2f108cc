// Package auth implements the token-based authentication layer: issuing
// signed, time-limited bearer tokens, verifying them, hashing passwords, and
// the per-request middleware that resolves a token into an authenticated user.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies HMAC-SHA256 signed JWTs. Tokens are
// self-contained: validity is fully determined by the token's signed claims,
// the signing secret, and the clock. Nothing is persisted, so there is no
// revocation before natural expiry.
//
// Decode failures surface as the jwt/v5 sentinels: jwt.ErrTokenMalformed,
// jwt.ErrTokenSignatureInvalid, jwt.ErrTokenExpired.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a TokenService. The secret is shared, immutable,
// process-wide; concurrent use needs no locking.
func NewTokenService(secret []byte, lifetime time.Duration) *TokenService {
	return &TokenService{secret: secret, lifetime: lifetime}
}

// Issue mints a token for subject with exp = now + lifetime. The returned
// expiresIn is the lifetime in whole seconds, the same unit the exp claim is
// signed with, so callers can report an expiry hint alongside the token.
func (s *TokenService) Issue(subject string) (token string, expiresIn int64, err error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return signed, int64(s.lifetime.Seconds()), nil
}

// ExtractSubject decodes the token and returns its subject claim. The decode
// validates signature and expiry, so an expired or tampered token fails here.
func (s *TokenService) ExtractSubject(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsValid reports whether token is a currently valid credential for subject.
// A bad, expired, or mismatched token is a normal "not authenticated" outcome,
// never an error. The expiry check is exclusive: a token is invalid at the
// exact expiry instant.
func (s *TokenService) IsValid(token, subject string) bool {
	sub, err := s.ExtractSubject(token)
	return err == nil && sub == subject
}

func (s *TokenService) keyFunc(t *jwt.Token) (interface{}, error) {
	return s.secret, nil
}
